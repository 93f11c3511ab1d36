package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimTail(t *testing.T) {
	messages := []Message{
		{Role: RoleUser, Content: "1"},
		{Role: RoleAssistant, Content: "2"},
		{Role: RoleUser, Content: "3"},
	}

	assert.Equal(t, messages[1:], TrimTail(messages, 2))
	assert.Equal(t, messages, TrimTail(messages, 10))
	assert.Nil(t, TrimTail(messages, 0))
	assert.Empty(t, TrimTail(nil, 3))
}

func TestPreferencesClone(t *testing.T) {
	prefs := Preferences{Budget: 1000, Interests: []string{"beach"}}

	clone := prefs.Clone()
	clone.Interests[0] = "food"

	assert.Equal(t, []string{"beach"}, prefs.Interests)
	assert.Equal(t, 1000, clone.Budget)
}
