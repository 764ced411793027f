package sessionstore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/getmockd/xmlad/pkg/logging"
	"github.com/getmockd/xmlad/pkg/xmla/session"
	"github.com/google/uuid"
)

// Interface compliance check.
var _ session.Service = (*Store)(nil)

type entry struct {
	session  session.Session
	owner    string
	created  time.Time
	lastSeen time.Time
}

// Store is a thread-safe in-memory session.Service.
type Store struct {
	mu          sync.RWMutex
	sessions    map[string]*entry
	ttl         time.Duration
	maxSessions int
	clock       clock.Clock
	log         *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the wall clock, for tests.
func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMaxSessions caps the number of live sessions. Zero means no cap.
func WithMaxSessions(n int) Option {
	return func(s *Store) {
		if n >= 0 {
			s.maxSessions = n
		}
	}
}

// New creates a store whose sessions expire after ttl without use. A ttl of
// zero or less keeps sessions until they are ended.
func New(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		clock:    clock.New(),
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BeginSession opens a session owned by caller. It returns nil when the
// store is full.
func (s *Store) BeginSession(_ context.Context, req session.BeginSession, caller session.Caller) *session.Session {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.sweepLocked(now)
		if len(s.sessions) >= s.maxSessions {
			s.log.Warn("session limit reached", "max", s.maxSessions, "user", caller.User)
			return nil
		}
	}

	sess := session.Session{
		SessionID:      uuid.NewString(),
		MustUnderstand: req.MustUnderstand,
	}
	s.sessions[sess.SessionID] = &entry{
		session:  sess,
		owner:    caller.User,
		created:  now,
		lastSeen: now,
	}
	s.log.Info("session opened", "sessionId", sess.SessionID, "user", caller.User, "addr", caller.Addr)
	return &sess
}

// CheckSession reports whether the session exists, has not expired and
// belongs to caller. A successful check extends the session's lifetime.
func (s *Store) CheckSession(_ context.Context, sess session.Session, caller session.Caller) bool {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sess.SessionID]
	if !ok {
		return false
	}
	if s.expired(e, now) {
		delete(s.sessions, sess.SessionID)
		s.log.Info("session expired", "sessionId", sess.SessionID)
		return false
	}
	if e.owner != caller.User {
		s.log.Warn("session used by another user", "sessionId", sess.SessionID, "owner", e.owner, "user", caller.User)
		return false
	}
	e.lastSeen = now
	return true
}

// EndSession removes the session. Unknown ids are ignored.
func (s *Store) EndSession(_ context.Context, req session.EndSession, caller session.Caller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[req.SessionID]
	if !ok || e.owner != caller.User {
		return
	}
	delete(s.sessions, req.SessionID)
	s.log.Info("session closed", "sessionId", req.SessionID, "user", caller.User)
}

// Len returns the number of stored sessions, including expired sessions not
// yet swept.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(now)
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := s.clock.Ticker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.log.Debug("expired sessions removed", "count", n)
			}
		}
	}
}

func (s *Store) sweepLocked(now time.Time) int {
	removed := 0
	for id, e := range s.sessions {
		if s.expired(e, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *Store) expired(e *entry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl
}
