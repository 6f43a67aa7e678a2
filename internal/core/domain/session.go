package domain

import "time"

// Session is one authenticated login. LogoutAt, once set, never changes.
type Session struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	AccessToken string     `json:"-"`
	LoginAt     time.Time  `json:"login_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
	LogoutAt    *time.Time `json:"logout_at,omitempty"`
}

// SignedOut reports whether a logout timestamp has been recorded.
func (s *Session) SignedOut() bool {
	return s.LogoutAt != nil
}

// Expired reports whether the session validity window has elapsed at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// TokenClaims is what a session token decodes to.
type TokenClaims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
