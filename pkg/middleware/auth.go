package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"servicehub/internal/data/entity"
	"servicehub/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// SessionClaims is the payload of a backend-issued session token. The user
// id travels in the standard subject claim.
type SessionClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// ParseSession verifies an HS256 session token and turns it into a Session.
func ParseSession(token, secret string, now time.Time) (*entity.Session, error) {
	if token == "" {
		return nil, errors.New("missing token")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	claims := &SessionClaims{}
	if _, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}); err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	if claims.Subject == "" {
		return nil, errors.New("session token has no subject")
	}

	role := entity.UserRole(claims.Role)
	switch role {
	case entity.RoleCustomer, entity.RoleProvider, entity.RoleAdmin:
	case "":
		role = entity.RoleCustomer
	default:
		return nil, fmt.Errorf("unknown role %q", claims.Role)
	}

	return &entity.Session{
		UserID:    claims.Subject,
		Role:      role,
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Auth validates the bearer token and stores the resulting session in the
// request context.
func Auth(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			session, err := ParseSession(strings.TrimSpace(token), secret, time.Now())
			if err != nil {
				logger.Warn("Invalid or expired session",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetSessionContext(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects sessions whose role is not listed. It must run after
// Auth.
func RequireRole(logger *zap.Logger, roles ...entity.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := utils.GetSessionFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !slices.Contains(roles, session.Role) {
				logger.Warn("Role check: access denied",
					zap.String("user_id", session.UserID),
					zap.String("role", string(session.Role)),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Admin - only admins pass
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole(logger, entity.RoleAdmin)
}
