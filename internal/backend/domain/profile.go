package domain

import "time"

// Profile is a completed user registration attached to an identity.
type Profile struct {
	ID          string
	IdentityID  string
	Username    string // normalized: lowercase, alphanumeric and underscore
	FirstName   string
	LastName    string
	Email       string
	DateOfBirth string // optional, YYYY-MM-DD
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
