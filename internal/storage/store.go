// Package storage provides abstractions for session state storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/friendsplit/internal/billsplit"
)

// ErrSessionNotFound is returned when a session ID does not resolve.
var ErrSessionNotFound = errors.New("session not found")

// Session is one renderer session and the state it exclusively owns.
type Session struct {
	// ID is the unique identifier for the session (UUID format).
	ID string

	// State is the friend list and form state of the session.
	State billsplit.State

	// CreatedAt is the Unix timestamp when the session was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last transition.
	UpdatedAt int64
}

// TransitionFunc computes the next state of a session. It reports whether
// the state changed.
type TransitionFunc func(billsplit.State) (billsplit.State, bool)

// Store defines the interface for session storage operations.
// This abstraction keeps the service layer independent of where sessions
// live.
type Store interface {
	// CreateSession stores a new session.
	// The session.ID and timestamps are populated by the store when unset.
	CreateSession(ctx context.Context, session *Session) error

	// GetSession retrieves a snapshot of a session by ID.
	// Returns ErrSessionNotFound if the session does not exist.
	GetSession(ctx context.Context, sessionID string) (*Session, error)

	// UpdateSession runs fn against the session's current state and stores
	// the result when fn reports a change. No other update of the same
	// session can interleave with fn.
	UpdateSession(ctx context.Context, sessionID string, fn TransitionFunc) (*Session, bool, error)

	// DeleteSession removes a session.
	// Returns ErrSessionNotFound if the session does not exist.
	DeleteSession(ctx context.Context, sessionID string) error

	// PruneSessions removes sessions not updated since before (Unix seconds)
	// and returns how many were removed.
	PruneSessions(ctx context.Context, before int64) (int, error)

	// CountSessions returns the number of live sessions.
	CountSessions(ctx context.Context) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
