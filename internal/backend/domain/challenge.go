package domain

import "time"

// PendingProfile carries the not-yet-committed registration fields a signup
// client supplies alongside a code request, so the eventual profile creation
// can be correlated with the verified contact target.
type PendingProfile struct {
	FirstName   string
	LastName    string
	Username    string
	DateOfBirth string // optional, YYYY-MM-DD
}

// Challenge is one outstanding verification-code challenge for a contact
// target. The code itself is never stored, only its argon2id hash.
type Challenge struct {
	ID         string
	Target     string // email address or phone number the code was sent to
	CodeHash   string
	Attempts   int
	Pending    *PendingProfile // nil for bare login code requests
	ExpiresAt  time.Time
	VerifiedAt *time.Time
	CreatedAt  time.Time
}

// Expired reports whether the challenge is past its expiry at the given time.
func (c Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
