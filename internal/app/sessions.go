package app

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/dkeye/aircast/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SessionStore is an in-memory TTL table of host-page access grants.
// Entries are created out-of-band (never by the signaling flow) and swept
// on a fixed interval. Nothing survives a restart.
type SessionStore struct {
	mu       sync.Mutex
	clk      clock.Clock
	maxAge   time.Duration
	sessions map[domain.SessionID]domain.Session
}

func NewSessionStore(clk clock.Clock, maxAge time.Duration) *SessionStore {
	return &SessionStore{
		clk:      clk,
		maxAge:   maxAge,
		sessions: make(map[domain.SessionID]domain.Session),
	}
}

// Create mints a new session for role and returns it.
func (s *SessionStore) Create(role domain.Role) domain.Session {
	sess := domain.Session{
		ID:        domain.SessionID(uuid.NewString()),
		Role:      role,
		CreatedAt: s.clk.Now(),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	log.Info().Str("module", "app.sessions").Str("role", string(role)).Msg("session created")
	return sess
}

// Get resolves id to a still-valid session. Expired entries are treated
// as absent even before the sweeper removes them.
func (s *SessionStore) Get(id domain.SessionID) (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || sess.ExpiredAt(s.clk.Now(), s.maxAge) {
		return domain.Session{}, false
	}
	return sess, true
}

// MaxAge returns the configured session lifetime.
func (s *SessionStore) MaxAge() time.Duration {
	return s.maxAge
}

// Len reports the number of stored entries, expired or not.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) sweep() {
	now := s.clk.Now()
	s.mu.Lock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.ExpiredAt(now, s.maxAge) {
			delete(s.sessions, id)
			removed++
		}
	}
	s.mu.Unlock()
	if removed > 0 {
		log.Info().Str("module", "app.sessions").Int("removed", removed).Msg("swept expired sessions")
	}
}

// StartSweeper runs the periodic sweep until ctx is canceled. Holders of
// expired sessions are not notified; their next gated request redirects.
func (s *SessionStore) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := s.clk.Ticker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}
