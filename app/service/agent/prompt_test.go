package agent

import (
	"strings"
	"testing"

	"ariatravel/app/model"

	"github.com/stretchr/testify/assert"
)

func TestSystemContextKeepsPlaceholdersInValues(t *testing.T) {
	destinations := sample()
	destinations[0].Description = "Look for {history} and {query} carved in marble"

	state := &ConversationState{
		CurrentQuery: "what does {budget} mean in {destinations}?",
		Messages: []model.Message{
			{Role: model.RoleUser, Content: "is {intent} a place?"},
		},
		Destinations: destinations,
	}
	intent := Intent{Type: IntentGeneral}

	first := buildSystemContext(state, intent)
	for range 50 {
		assert.Equal(t, first, buildSystemContext(state, intent))
	}

	assert.Contains(t, first, `- User query: "what does {budget} mean in {destinations}?"`)
	assert.Contains(t, first, "Look for {history} and {query} carved in marble")
	assert.Contains(t, first, "user: is {intent} a place?")
	assert.Contains(t, first, "Budget: Not specified")
	assert.Contains(t, first, "- Intent type: general")
	assert.Equal(t, 1, strings.Count(first, "AVAILABLE DESTINATIONS DATA:"))
}

func TestSystemContextKeepsPersonaExamples(t *testing.T) {
	prompt := buildSystemContext(&ConversationState{}, Intent{Type: IntentGeneral})

	assert.Contains(t, prompt, "🏛️ **{Destination Name}** in {Location}")
	assert.Contains(t, prompt, "No destination data available")
	assert.Contains(t, prompt, "No recent messages")
	assert.Contains(t, prompt, "Interests: None, Last mentioned destination: None")
}
