package flowsdk

import (
	"fmt"
	"strings"
)

// Stage identifies a step of the signup flow.
type Stage int

const (
	StageChooseMethod Stage = iota
	StageEnterContact
	StageEnterDetails
	StageEnterUsername
	StageAwaitingCode
	StageCommitted
)

func (s Stage) String() string {
	switch s {
	case StageChooseMethod:
		return "choose_method"
	case StageEnterContact:
		return "enter_contact"
	case StageEnterDetails:
		return "enter_details"
	case StageEnterUsername:
		return "enter_username"
	case StageAwaitingCode:
		return "awaiting_code"
	case StageCommitted:
		return "committed"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// ValidationError is a local, recoverable input problem. It is surfaced
// inline next to the offending field and never treated as a system error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const (
	minUsernameLength = 3
	minPhoneDigits    = 8
)

// PendingSignup is the registration data accumulated across stages, not yet
// committed anywhere.
type PendingSignup struct {
	ContactMethod ContactMethod
	ContactValue  string
	FirstName     string
	LastName      string
	Username      string
	DateOfBirth   string
}

// Profile returns the wire shape of the pending fields, or nil when no
// username has been chosen yet.
func (p PendingSignup) Profile() *PendingProfileParams {
	if p.Username == "" {
		return nil
	}
	return &PendingProfileParams{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Username:    p.Username,
		DateOfBirth: p.DateOfBirth,
	}
}

// SignupFlow carries a PendingSignup across a fixed, linear sequence of
// stages without premature server commitment. It is not safe for concurrent
// use; a flow belongs to one user interaction at a time.
type SignupFlow struct {
	stage   Stage
	pending PendingSignup
}

// NewSignupFlow starts a flow at the method-selection stage.
func NewSignupFlow() *SignupFlow {
	return &SignupFlow{stage: StageChooseMethod}
}

// Stage returns the current stage.
func (f *SignupFlow) Stage() Stage { return f.stage }

// Pending returns a copy of the accumulated data.
func (f *SignupFlow) Pending() PendingSignup { return f.pending }

// ChooseMethod selects phone or email and moves to contact entry. Any
// previously entered contact value is discarded.
func (f *SignupFlow) ChooseMethod(method ContactMethod) error {
	if f.stage != StageChooseMethod {
		return fmt.Errorf("cannot choose method from stage %s", f.stage)
	}
	f.pending.ContactMethod = method
	f.pending.ContactValue = ""
	f.stage = StageEnterContact
	return nil
}

// SubmitContact validates the contact value against the chosen method's shape
// and advances to the details stage. No server call is made.
func (f *SignupFlow) SubmitContact(value string) error {
	if f.stage != StageEnterContact {
		return fmt.Errorf("cannot submit contact from stage %s", f.stage)
	}

	value = strings.TrimSpace(value)
	switch f.pending.ContactMethod {
	case ContactEmail:
		if !strings.Contains(value, "@") {
			return &ValidationError{Field: "contact", Message: "enter a valid email address"}
		}
	case ContactPhone:
		if countDigits(value) < minPhoneDigits {
			return &ValidationError{Field: "contact", Message: "enter a valid phone number"}
		}
	default:
		return &ValidationError{Field: "contact", Message: "choose phone or email first"}
	}

	f.pending.ContactValue = value
	f.stage = StageEnterDetails
	return nil
}

// SubmitDetails validates the name fields and advances to username entry.
func (f *SignupFlow) SubmitDetails(firstName, lastName, dateOfBirth string) error {
	if f.stage != StageEnterDetails {
		return fmt.Errorf("cannot submit details from stage %s", f.stage)
	}

	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return &ValidationError{Field: "first_name", Message: "first name is required"}
	}
	if lastName == "" {
		return &ValidationError{Field: "last_name", Message: "last name is required"}
	}

	f.pending.FirstName = firstName
	f.pending.LastName = lastName
	f.pending.DateOfBirth = strings.TrimSpace(dateOfBirth)
	f.stage = StageEnterUsername
	return nil
}

// SubmitUsername validates the normalized username and its availability state
// and advances to the code stage. A check still in flight blocks submission
// the same way a taken name does: the user waits for it to settle.
func (f *SignupFlow) SubmitUsername(username string, availability AvailabilityState) error {
	if f.stage != StageEnterUsername {
		return fmt.Errorf("cannot submit username from stage %s", f.stage)
	}

	normalized := NormalizeUsername(username)
	if len(normalized) < minUsernameLength {
		return &ValidationError{Field: "username", Message: "usernames need at least 3 letters, numbers, or underscores"}
	}

	switch availability {
	case AvailabilityAvailable:
		// proceed
	case AvailabilityChecking, AvailabilityIdle:
		return &ValidationError{Field: "username", Message: "still checking that username, one moment"}
	case AvailabilityTaken:
		return &ValidationError{Field: "username", Message: "this username is already taken"}
	default:
		return &ValidationError{Field: "username", Message: "username availability is unknown"}
	}

	f.pending.Username = normalized
	f.stage = StageAwaitingCode
	return nil
}

// Back moves to the previous stage, discarding the data the abandoned stage
// collected. Permitted from every stage except Committed; never touches the
// network.
func (f *SignupFlow) Back() error {
	switch f.stage {
	case StageChooseMethod:
		return nil
	case StageEnterContact:
		f.pending.ContactMethod = ""
		f.pending.ContactValue = ""
		f.stage = StageChooseMethod
	case StageEnterDetails:
		f.pending.FirstName = ""
		f.pending.LastName = ""
		f.pending.DateOfBirth = ""
		f.stage = StageEnterContact
	case StageEnterUsername:
		f.pending.Username = ""
		f.stage = StageEnterDetails
	case StageAwaitingCode:
		f.stage = StageEnterUsername
	case StageCommitted:
		return fmt.Errorf("cannot navigate back from a committed flow")
	}
	return nil
}

// ReturnToUsername sends the flow back to username entry after a uniqueness
// conflict, clearing the claimed name.
func (f *SignupFlow) ReturnToUsername() {
	if f.stage == StageAwaitingCode {
		f.pending.Username = ""
		f.stage = StageEnterUsername
	}
}

// Commit marks the flow complete. Irreversible.
func (f *SignupFlow) Commit() error {
	if f.stage != StageAwaitingCode {
		return fmt.Errorf("cannot commit from stage %s", f.stage)
	}
	f.stage = StageCommitted
	return nil
}

// NormalizeUsername lowercases a username and strips every character outside
// [a-z0-9_]. Idempotent: normalizing an already normalized name returns the
// identical string.
func NormalizeUsername(username string) string {
	lowered := strings.ToLower(strings.TrimSpace(username))

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
