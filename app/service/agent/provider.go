package agent

import (
	"context"
	"log/slog"

	"ariatravel/app/model"
)

// Provider is one tier of the reply chain. A provider that has nothing to say
// returns false and the next one is asked.
type Provider interface {
	Name() string
	Attempt(ctx context.Context, turn *Turn) (string, bool)
}

type Backend interface {
	Query(ctx context.Context, message string, history []model.Message, prefs model.Preferences) (string, bool)
}

type Generator interface {
	Generate(ctx context.Context, systemContext, userQuery string) (string, error)
}

type backendProvider struct {
	backend Backend
}

func NewBackendProvider(backend Backend) Provider {
	return &backendProvider{backend: backend}
}

func (p *backendProvider) Name() string {
	return "backend"
}

func (p *backendProvider) Attempt(ctx context.Context, turn *Turn) (string, bool) {
	return p.backend.Query(ctx, turn.State.CurrentQuery, turn.History, turn.State.Preferences)
}

type modelProvider struct {
	generator Generator
}

func NewModelProvider(generator Generator) Provider {
	return &modelProvider{generator: generator}
}

func (p *modelProvider) Name() string {
	return "model"
}

func (p *modelProvider) Attempt(ctx context.Context, turn *Turn) (string, bool) {
	turn.Destinations(ctx)

	reply, err := p.generator.Generate(ctx, buildSystemContext(turn.State, turn.Intent), turn.State.CurrentQuery)
	if err != nil {
		slog.Warn("Hosted model failed", "error", err)
		return "", false
	}

	return reply, true
}

type localProvider struct{}

func NewLocalProvider() Provider {
	return localProvider{}
}

func (localProvider) Name() string {
	return "local"
}

func (localProvider) Attempt(ctx context.Context, turn *Turn) (string, bool) {
	return generateLocalResponse(turn.Intent, turn.State.Preferences, turn.Destinations(ctx)), true
}
