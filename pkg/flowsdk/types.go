package flowsdk

import "time"

// ContactMethod selects how a verification code is delivered.
type ContactMethod string

const (
	ContactEmail ContactMethod = "email"
	ContactPhone ContactMethod = "phone"
)

// PendingProfileParams carries the profile fields accumulated during signup.
// They ride along with the code request so the backend can correlate the
// eventual profile creation.
type PendingProfileParams struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Username    string `json:"username"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
}

// SendCodeRequest asks the service to deliver a verification code.
type SendCodeRequest struct {
	Target  string                `json:"target"`
	Profile *PendingProfileParams `json:"profile,omitempty"`
}

// VerifyCodeRequest redeems a delivered code.
type VerifyCodeRequest struct {
	Target string `json:"target"`
	Code   string `json:"code"`
}

// VerifyCodeResponse is returned on successful verification.
type VerifyCodeResponse struct {
	IdentityID string                `json:"identity_id"`
	Token      string                `json:"token"`
	HasProfile bool                  `json:"has_profile"`
	Profile    *PendingProfileParams `json:"profile,omitempty"`
}

// CreateProfileRequest creates the profile for the authenticated identity.
type CreateProfileRequest struct {
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
}

// ProfileResponse is the wire shape of a profile.
type ProfileResponse struct {
	ID          string    `json:"id"`
	IdentityID  string    `json:"identity_id"`
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email,omitempty"`
	DateOfBirth string    `json:"date_of_birth,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// UsernameAvailabilityResponse reports whether a username is unclaimed.
type UsernameAvailabilityResponse struct {
	Available bool `json:"available"`
}

// CreateDreamRequest records a new dream.
type CreateDreamRequest struct {
	Content string `json:"content"`
}

// DreamResponse is the wire shape of a dream. Interpretation holds a
// placeholder until the service's asynchronous interpreter has run, at which
// point Interpreted flips to true.
type DreamResponse struct {
	ID              string    `json:"id"`
	Content         string    `json:"content"`
	Interpretation  string    `json:"interpretation"`
	UniquenessScore int       `json:"uniqueness_score"`
	Interpreted     bool      `json:"interpreted"`
	CreatedAt       time.Time `json:"created_at"`
}

// HealthResponse is returned by the liveness and readiness endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database,omitempty"`
}

// ErrorResponse is the service's error body shape.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
