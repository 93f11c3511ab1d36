package catalog

import (
	"context"
	"testing"

	"ariatravel/app/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	svc := NewWithSources(nil)

	destination, ok := svc.Find(context.Background(), 4)
	require.True(t, ok)
	assert.Equal(t, "Goa Beaches", destination.Name)

	_, ok = svc.Find(context.Background(), 404)
	assert.False(t, ok)
}

func TestFindUsesSource(t *testing.T) {
	src := &fakeSource{destinations: []model.Destination{{ID: 42, Name: "Hampi", Category: "Historical"}}}
	svc := NewWithSources(nil, NamedSource{Name: "backend", Source: src})

	destination, ok := svc.Find(context.Background(), 42)
	require.True(t, ok)
	assert.Equal(t, "Hampi", destination.Name)
}

func TestSearch(t *testing.T) {
	svc := NewWithSources(nil)

	names := func(destinations []model.Destination) []string {
		var result []string
		for _, d := range destinations {
			result = append(result, d.Name)
		}
		return result
	}

	assert.Equal(t, []string{"Golden Temple", "Goa Beaches"}, names(svc.Search(context.Background(), "ARCHITECTURE", 10)))
	assert.Equal(t, []string{"Rajasthan Palaces"}, names(svc.Search(context.Background(), "jaipur", 10)))
	assert.Equal(t, []string{"Golden Temple"}, names(svc.Search(context.Background(), "architecture", 1)))
	assert.Empty(t, svc.Search(context.Background(), "atlantis", 10))
	assert.Empty(t, svc.Search(context.Background(), "   ", 10))
}

func TestCategories(t *testing.T) {
	svc := NewWithSources(nil)

	assert.Equal(t, []string{"Adventure", "Beach", "Historical", "Nature", "Religious"}, svc.Categories(context.Background()))
}
