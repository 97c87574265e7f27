package middleware

import (
	"context"
	"errors"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/friendsplit/pkg/api"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// SessionIDKey is the context key for storing the caller's session ID.
const SessionIDKey contextKey = "session_id"

// ErrMissingSession is returned when a call needs a session but carries none.
var ErrMissingSession = errors.New("missing " + api.SessionHeader + " header")

// GetSessionID extracts the session ID from the context.
// Returns empty string if not found.
func GetSessionID(ctx context.Context) string {
	sessionID, _ := ctx.Value(SessionIDKey).(string)
	return sessionID
}

// WithSessionID returns a copy of ctx carrying sessionID.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDKey, sessionID)
}

// RequireSession returns an interceptor that reads the session header and
// adds the session ID to the request context. Every procedure except
// CreateSession requires the header.
func RequireSession() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			sessionID := strings.TrimSpace(req.Header().Get(api.SessionHeader))
			if sessionID == "" {
				if req.Spec().Procedure == api.SplitterServiceCreateSessionProcedure {
					return next(ctx, req)
				}
				return nil, connect.NewError(connect.CodeUnauthenticated, ErrMissingSession)
			}
			return next(WithSessionID(ctx, sessionID), req)
		}
	}
}

// AttachSession returns a client interceptor that sends sessionID with every
// call.
func AttachSession(sessionID string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				req.Header().Set(api.SessionHeader, sessionID)
			}
			return next(ctx, req)
		}
	}
}
