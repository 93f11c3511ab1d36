package agent

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type session struct {
	mu    sync.Mutex
	state ConversationState

	// guarded by sessions.mu
	active   int
	lastSeen time.Time
}

// sessions keeps one conversation state per session id. Calls for one session
// serialize on the session mutex, different sessions run in parallel.
type sessions struct {
	mu          sync.Mutex
	items       map[string]*session
	idleTimeout time.Duration
	now         func() time.Time
}

func newSessions(idleTimeout time.Duration) *sessions {
	return &sessions{
		items:       make(map[string]*session),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// acquire returns the locked session for id, creating it if needed. The caller
// must call release.
func (r *sessions) acquire(id string) *session {
	r.mu.Lock()
	s, ok := r.items[id]
	if !ok {
		s = &session{}
		r.items[id] = s
	}
	s.active++
	s.lastSeen = r.now()
	r.mu.Unlock()

	s.mu.Lock()

	return s
}

func (r *sessions) release(s *session) {
	s.mu.Unlock()

	r.mu.Lock()
	s.active--
	s.lastSeen = r.now()
	r.mu.Unlock()
}

func (r *sessions) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.items)
}

func (r *sessions) cleanup() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0

	for id, s := range r.items {
		if s.active == 0 && now.Sub(s.lastSeen) > r.idleTimeout {
			delete(r.items, id)
			removed++
		}
	}

	return removed
}

func (r *sessions) runCleanupLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := r.cleanup(); removed > 0 {
				slog.Debug("Expired idle sessions", "count", removed)
			}
		}
	}
}
