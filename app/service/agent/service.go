package agent

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"ariatravel/app/client/fastapi"
	"ariatravel/app/client/llm"
	"ariatravel/app/config"
	"ariatravel/app/model"
	"ariatravel/app/service/catalog"

	"github.com/samber/do"
)

const (
	catalogLimit     = catalog.DefaultLimit
	retainedHistory  = 5
	defaultSessionID = "default"
)

type Service struct {
	catalog   Catalog
	providers []Provider
	sessions  *sessions

	cleanupInterval time.Duration
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	providers := []Provider{
		NewBackendProvider(do.MustInvoke[*fastapi.Client](di)),
	}
	if client := do.MustInvoke[*llm.Client](di); client != nil {
		providers = append(providers, NewModelProvider(client))
	}
	providers = append(providers, NewLocalProvider())

	return NewService(do.MustInvoke[*catalog.Service](di), cfg.Session, providers...), nil
}

// NewService builds the assistant over an explicit provider chain. The chain
// should end with a provider that always answers.
func NewService(catalog Catalog, cfg config.Session, providers ...Provider) *Service {
	return &Service{
		catalog:         catalog,
		providers:       providers,
		sessions:        newSessions(cfg.IdleTimeout),
		cleanupInterval: cfg.CleanupInterval,
	}
}

// ProviderNames lists the reply chain in the order it is tried.
func (s *Service) ProviderNames() []string {
	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		names = append(names, p.Name())
	}

	return names
}

func (s *Service) ActiveSessions() int {
	return s.sessions.len()
}

// ProcessMessage answers one user message within a session. history, when
// given, replaces what the session remembers; otherwise the retained messages
// are used. It always returns a non-empty reply.
func (s *Service) ProcessMessage(ctx context.Context, sessionID, message string, history []model.Message) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Assistant pipeline panicked",
				"session", sessionID,
				"panic", r,
			)
			reply = fallbackMessage
		}
	}()

	if sessionID == "" {
		sessionID = defaultSessionID
	}

	sess := s.sessions.acquire(sessionID)
	defer s.sessions.release(sess)

	state := &sess.state
	if len(history) == 0 {
		history = state.Messages
	}

	state.CurrentQuery = message
	state.Messages = append(append([]model.Message(nil), model.TrimTail(history, retainedHistory)...),
		model.Message{Role: model.RoleUser, Content: message})
	state.Destinations = nil

	updatePreferences(&state.Preferences, message)
	intent := analyzeIntent(state)

	turn := &Turn{
		State:   state,
		Intent:  intent,
		History: history,
		catalog: s.catalog,
	}

	start := time.Now()
	provider := "none"

	for _, p := range s.providers {
		text, ok := p.Attempt(ctx, turn)
		if ok && strings.TrimSpace(text) != "" {
			reply = text
			provider = p.Name()
			break
		}
	}

	if reply == "" {
		reply = fallbackMessage
	}

	state.Messages = append(state.Messages, model.Message{Role: model.RoleAssistant, Content: reply})

	slog.Info("Processed message",
		"session", sessionID,
		"intent", intent.Type,
		"contextual", intent.Contextual,
		"provider", provider,
		"duration", time.Since(start),
	)

	return reply
}

// Preferences returns a copy of what the session has learned so far.
func (s *Service) Preferences(sessionID string) model.Preferences {
	if sessionID == "" {
		sessionID = defaultSessionID
	}

	sess := s.sessions.acquire(sessionID)
	defer s.sessions.release(sess)

	return sess.state.Preferences.Clone()
}

// RunCleanupLoop drops idle sessions until ctx is done.
func (s *Service) RunCleanupLoop(ctx context.Context) {
	s.sessions.runCleanupLoop(ctx, s.cleanupInterval)
}
