package entity

import "time"

// Session is the authenticated caller. It is built once per request by the
// auth middleware and handed explicitly to every service call that needs it.
type Session struct {
	UserID    string
	Role      UserRole
	Token     string
	ExpiresAt time.Time
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
