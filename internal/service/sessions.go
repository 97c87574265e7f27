package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/friendsplit/internal/billsplit"
	"github.com/mmynk/friendsplit/internal/metrics"
	"github.com/mmynk/friendsplit/internal/storage"
	"github.com/mmynk/friendsplit/internal/view"
)

// Sessions drives billsplit state machines held in a storage.Store. Both the
// Connect service and the HTML renderer go through it.
type Sessions struct {
	store    storage.Store
	splitter *billsplit.Splitter
	metrics  *metrics.Metrics
	ttl      time.Duration
	now      func() time.Time
}

// NewSessions creates a Sessions over store. Sessions idle for longer than
// ttl are removed by Prune; a zero ttl keeps them forever.
func NewSessions(store storage.Store, splitter *billsplit.Splitter, m *metrics.Metrics, ttl time.Duration) *Sessions {
	return &Sessions{
		store:    store,
		splitter: splitter,
		metrics:  m,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Currency returns the currency amounts are shown in.
func (s *Sessions) Currency() string {
	return s.splitter.Currency()
}

// TTL returns how long an idle session is kept. Zero means forever.
func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

// View derives the render-ready view of a session.
func (s *Sessions) View(sess *storage.Session) *view.View {
	v := view.Build(sess.State, s.splitter.Currency())
	return &v
}

// Create starts a new session with the initial state.
func (s *Sessions) Create(ctx context.Context) (*storage.Session, error) {
	sess := &storage.Session{State: s.splitter.NewState()}
	if err := s.store.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.refreshGauge(ctx)
	slog.Info("Session created", "session_id", sess.ID, "friends", len(sess.State.Friends))
	return sess, nil
}

// Get returns the current snapshot of a session.
func (s *Sessions) Get(ctx context.Context, sessionID string) (*storage.Session, error) {
	return s.store.GetSession(ctx, sessionID)
}

// Dispatch applies events, in order, to the session as one atomic update.
// applied reports whether every event was accepted; rejected events leave
// the state as it was before them.
func (s *Sessions) Dispatch(ctx context.Context, sessionID string, events ...billsplit.Event) (*storage.Session, bool, error) {
	allApplied := true
	sess, _, err := s.store.UpdateSession(ctx, sessionID, func(st billsplit.State) (billsplit.State, bool) {
		anyApplied := false
		for _, e := range events {
			var ok bool
			st, ok = s.splitter.Apply(st, e)
			s.metrics.ObserveTransition(e.Op(), ok)
			if ok {
				anyApplied = true
				slog.Debug("Transition applied", "session_id", sessionID, "op", e.Op())
			} else {
				allApplied = false
				slog.Debug("Transition ignored", "session_id", sessionID, "op", e.Op())
			}
		}
		return st, anyApplied
	})
	if err != nil {
		return nil, false, err
	}
	return sess, allApplied && len(events) > 0, nil
}

// End discards a session.
func (s *Sessions) End(ctx context.Context, sessionID string) error {
	if err := s.store.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	s.refreshGauge(ctx)
	slog.Info("Session ended", "session_id", sessionID)
	return nil
}

// Prune removes sessions idle for longer than the TTL.
func (s *Sessions) Prune(ctx context.Context) (int, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	removed, err := s.store.PruneSessions(ctx, s.now().Add(-s.ttl).Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune sessions: %w", err)
	}
	if removed > 0 {
		s.refreshGauge(ctx)
		slog.Info("Pruned idle sessions", "removed", removed)
	}
	return removed, nil
}

// RunPruner calls Prune every interval until ctx is done.
func (s *Sessions) RunPruner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Prune(ctx); err != nil {
				slog.Warn("Session prune failed", "error", err)
			}
		}
	}
}

func (s *Sessions) refreshGauge(ctx context.Context) {
	n, err := s.store.CountSessions(ctx)
	if err != nil {
		slog.Warn("Failed to count sessions", "error", err)
		return
	}
	s.metrics.SetSessions(n)
}
