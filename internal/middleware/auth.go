package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/planbuddy/internal/auth"
	"github.com/mmynk/planbuddy/internal/session"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// SessionKey is the context key for storing the resolved *session.Session.
	SessionKey contextKey = "session"
)

var ErrSessionClosed = errors.New("session expired or logged out")

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetSession extracts the caller's session from the context.
// Returns nil if not found.
func GetSession(ctx context.Context) *session.Session {
	s, _ := ctx.Value(SessionKey).(*session.Session)
	return s
}

// WithSession returns a copy of ctx carrying s and its user ID.
func WithSession(ctx context.Context, s *session.Session) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, s.User.ID)
	return context.WithValue(ctx, SessionKey, s)
}

// SessionResolver looks up open sessions by ID.
type SessionResolver interface {
	Get(id string) (*session.Session, bool)
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", auth.ErrMissingToken
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}

func resolve(jwtManager *auth.JWTManager, sessions SessionResolver, header string) (*session.Session, error) {
	tokenString, err := bearerToken(header)
	if err != nil {
		return nil, err
	}
	claims, err := jwtManager.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	s, ok := sessions.Get(claims.SessionID)
	if !ok || s.User.ID != claims.UserID {
		return nil, ErrSessionClosed
	}
	return s, nil
}

// RequireAuth returns an interceptor that validates the bearer token and
// resolves it to an open session, which is added to the request context.
func RequireAuth(jwtManager *auth.JWTManager, sessions SessionResolver) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			s, err := resolve(jwtManager, sessions, req.Header().Get("Authorization"))
			if err != nil {
				slog.Warn("Unauthenticated request", "procedure", req.Spec().Procedure, "error", err)
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}
			return next(WithSession(ctx, s), req)
		}
	}
}

// OptionalAuth returns an interceptor that resolves the session if a valid
// token is present, but allows requests without one.
func OptionalAuth(jwtManager *auth.JWTManager, sessions SessionResolver) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if s, err := resolve(jwtManager, sessions, req.Header().Get("Authorization")); err == nil {
				ctx = WithSession(ctx, s)
			}
			return next(ctx, req)
		}
	}
}
