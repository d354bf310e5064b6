package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stwalsh4118/atlas/portal/internal/logger"
	"github.com/stwalsh4118/atlas/portal/internal/metrics"
	"github.com/stwalsh4118/atlas/portal/internal/models"
)

// ErrSessionNotFound is returned for unknown or expired wizard sessions.
var ErrSessionNotFound = errors.New("wizard session not found")

// minSweepInterval bounds how often Run scans for idle sessions.
const minSweepInterval = time.Second

type session struct {
	wizard   *Wizard
	lastSeen time.Time
}

// Store keeps one Wizard per transfer flow, keyed by a random id.
// Sessions idle for longer than the TTL are dropped.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// NewStore creates an empty session store. m may be nil.
func NewStore(ttl time.Duration, log *logger.Logger, m *metrics.Metrics) *Store {
	return &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
		log:      log.Component("wizard_store"),
		metrics:  m,
	}
}

// Create starts a new wizard for property and returns its session id.
func (s *Store) Create(property models.PropertyPanel) (string, *Wizard) {
	id := uuid.New().String()
	w := New(property)

	s.mu.Lock()
	s.sessions[id] = &session{wizard: w, lastSeen: s.now()}
	count := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(count)
	s.log.Debug("Wizard session created", map[string]interface{}{
		"session_id": id,
		"parcel_id":  property.ParcelID,
	})
	return id, w
}

// Get returns the wizard for id and refreshes its idle timer.
func (s *Store) Get(id string) (*Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := s.now()
	if s.expired(sess, now) {
		delete(s.sessions, id)
		s.metrics.SetActiveSessions(len(s.sessions))
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = now
	return sess.wizard, nil
}

// Discard drops the session for id. It reports whether one existed.
func (s *Store) Discard(id string) bool {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	count := len(s.sessions)
	s.mu.Unlock()

	if ok {
		s.metrics.SetActiveSessions(count)
	}
	return ok
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were dropped.
func (s *Store) Sweep() int {
	s.mu.Lock()
	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	count := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(count)
	if removed > 0 {
		s.log.Info("Expired wizard sessions removed", map[string]interface{}{
			"removed":   removed,
			"remaining": count,
		})
	}
	return removed
}

func (s *Store) expired(sess *session, now time.Time) bool {
	return now.Sub(sess.lastSeen) > s.ttl
}

// Run sweeps expired sessions until ctx is cancelled.
func (s *Store) Run(ctx context.Context) {
	interval := s.ttl / 2
	if interval < minSweepInterval {
		interval = minSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
