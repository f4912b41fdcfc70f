package domain

import "time"

// Identity is an authentication record keyed by a verified contact target.
// An identity can exist without a profile (a signup that never completed).
type Identity struct {
	ID        string
	Target    string
	CreatedAt time.Time
}

// AuthSession records an issued bearer token so it can be revoked on
// sign-out. Tokens are stored by fingerprint only.
type AuthSession struct {
	ID         string
	IdentityID string
	TokenHash  string
	ExpiresAt  time.Time
	RevokedAt  *time.Time
	CreatedAt  time.Time
}

// Active reports whether the session is usable at the given time.
func (s AuthSession) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
