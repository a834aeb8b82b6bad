package user

import (
	"time"
)

// Account is a registered user. PasswordHash is a bcrypt hash and never
// leaves the service.
type Account struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session is an issued bearer token bound to one account.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
