// Package memory provides an in-process implementation of the storage.Store
// interface. Sessions live only as long as the process.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/friendsplit/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store with a mutex-guarded map.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*storage.Session
	now      func() time.Time
	closed   bool
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		sessions: make(map[string]*storage.Session),
		now:      time.Now,
	}
}

func (s *Store) checkOpen() error {
	if s.closed {
		return fmt.Errorf("session store is closed")
	}
	return nil
}

// snapshot copies a session so callers never share the stored roster.
func snapshot(sess *storage.Session) *storage.Session {
	cp := *sess
	cp.State.Friends = slices.Clone(sess.State.Friends)
	return &cp
}

// CreateSession stores a new session.
func (s *Store) CreateSession(ctx context.Context, session *storage.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}

	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt == 0 {
		session.CreatedAt = s.now().Unix()
	}
	if session.UpdatedAt == 0 {
		session.UpdatedAt = session.CreatedAt
	}
	if _, exists := s.sessions[session.ID]; exists {
		return fmt.Errorf("session already exists: %s", session.ID)
	}

	s.sessions[session.ID] = snapshot(session)
	return nil
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(ctx context.Context, sessionID string) (*storage.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrSessionNotFound, sessionID)
	}
	return snapshot(sess), nil
}

// UpdateSession applies fn while holding the store lock.
func (s *Store) UpdateSession(ctx context.Context, sessionID string, fn storage.TransitionFunc) (*storage.Session, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return nil, false, err
	}

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, false, fmt.Errorf("%w: %s", storage.ErrSessionNotFound, sessionID)
	}

	next, changed := fn(sess.State)
	if changed {
		sess.State = next
		sess.UpdatedAt = s.now().Unix()
	}
	return snapshot(sess), changed, nil
}

// DeleteSession removes a session by ID.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return fmt.Errorf("%w: %s", storage.ErrSessionNotFound, sessionID)
	}
	delete(s.sessions, sessionID)
	return nil
}

// PruneSessions drops sessions idle since before.
func (s *Store) PruneSessions(ctx context.Context, before int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.UpdatedAt < before {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// CountSessions returns the number of stored sessions.
func (s *Store) CountSessions(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions), nil
}

// Close drops every session. Further calls fail.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]*storage.Session)
	s.closed = true
	return nil
}
