package utils

import (
	"context"

	"servicehub/internal/data/entity"
)

type contextKey string

const sessionKey contextKey = "session"

// SetSessionContext attaches the authenticated session to the request context.
func SetSessionContext(ctx context.Context, session *entity.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSessionFromContext returns the session set by the auth middleware.
// Handlers read it once and pass it on explicitly.
func GetSessionFromContext(ctx context.Context) (*entity.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*entity.Session)
	if !ok || session == nil {
		return nil, false
	}
	return session, true
}
