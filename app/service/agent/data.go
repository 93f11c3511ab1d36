package agent

import (
	"context"
	"sync"

	"ariatravel/app/model"
)

type IntentType string

const (
	IntentDestination IntentType = "destination"
	IntentBudget      IntentType = "budget"
	IntentItinerary   IntentType = "itinerary"
	IntentFood        IntentType = "food"
	IntentCulture     IntentType = "culture"
	IntentTiming      IntentType = "timing"
	IntentGeneral     IntentType = "general"
)

type Intent struct {
	Type        IntentType
	Entities    []string
	Preferences model.Preferences
	Contextual  bool
}

// ConversationState is everything remembered about one session.
type ConversationState struct {
	Messages     []model.Message
	CurrentQuery string
	Preferences  model.Preferences
	Destinations []model.Destination
}

// Catalog supplies destination records. It never returns an empty slice.
type Catalog interface {
	Destinations(ctx context.Context, query model.DestinationQuery) []model.Destination
}

// Turn is the input handed to each provider for one user message.
type Turn struct {
	State   *ConversationState
	Intent  Intent
	History []model.Message

	catalog Catalog
	once    sync.Once
}

// Destinations loads the catalog snapshot on first use.
func (t *Turn) Destinations(ctx context.Context) []model.Destination {
	t.once.Do(func() {
		if t.catalog == nil {
			return
		}
		t.State.Destinations = t.catalog.Destinations(ctx, model.DestinationQuery{Limit: catalogLimit})
	})

	return t.State.Destinations
}
