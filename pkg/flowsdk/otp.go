package flowsdk

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const (
	// CodeLength is the number of digit positions in a verification code.
	CodeLength = 6

	// ResendCooldownSeconds is the countdown before a code can be re-sent.
	ResendCooldownSeconds = 60
)

// ChallengeStatus is the lifecycle state of one code challenge.
type ChallengeStatus int

const (
	StatusEntering ChallengeStatus = iota
	StatusSubmitting
	StatusVerified
	StatusRejected
)

// VerifyOutcome classifies what a verification attempt led to.
type VerifyOutcome int

const (
	// OutcomeCommitted: a session was established.
	OutcomeCommitted VerifyOutcome = iota

	// OutcomeInvalidCode: wrong code; entered digits are retained so the
	// user can correct a typo.
	OutcomeInvalidCode

	// OutcomeUsernameTaken: another signup claimed the username between the
	// availability check and commit. The identity has been signed back out
	// and the flow returned to username entry.
	OutcomeUsernameTaken

	// OutcomeNoProfile: login path hit an identity that never completed
	// signup. The identity has been signed out; the caller presents a
	// create-account or try-different-contact choice.
	OutcomeNoProfile

	// OutcomeError: some other remote failure, translated to a retryable
	// user-facing message.
	OutcomeError
)

// VerifyResult is the user-facing outcome of a verification attempt. Warning
// carries a non-blocking notice for outcomes that still commit.
type VerifyResult struct {
	Outcome VerifyOutcome
	Message string
	Warning string
	User    *User
}

var (
	ErrCodeRequestFailed = errors.New("we couldn't send your code, try again")
	ErrResendUnavailable = errors.New("wait for the countdown before resending")
)

// ChallengeController manages the lifecycle of one 6-digit code challenge:
// digit entry with auto-submit, the countdown-gated resend, and the branching
// outcomes of verification. It is the boundary between backend error shapes
// and human-readable text; no remote failure propagates raw.
type ChallengeController struct {
	// TickInterval is how often the resend countdown decrements. Defaults
	// to one second.
	TickInterval time.Duration

	Logger *slog.Logger

	client   *Client
	sessions *SessionStore
	flow     *SignupFlow // nil on the login path

	mu      sync.Mutex
	target  string
	digits  [CodeLength]string
	focus   int
	seconds int
	status  ChallengeStatus
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewChallengeController creates a controller. flow is the signup flow whose
// pending fields ride along with the code request, or nil for the login path.
func NewChallengeController(client *Client, sessions *SessionStore, flow *SignupFlow) *ChallengeController {
	return &ChallengeController{
		TickInterval: time.Second,
		Logger:       slog.Default(),
		client:       client,
		sessions:     sessions,
		flow:         flow,
	}
}

// RequestCode sends a verification code to target and resets the challenge:
// digits cleared, countdown restarted from 60. On remote failure nothing is
// reset and ErrCodeRequestFailed is returned for the retry prompt.
func (c *ChallengeController) RequestCode(ctx context.Context, target string) error {
	var profile *PendingProfileParams
	if c.flow != nil {
		profile = c.flow.Pending().Profile()
	}

	if err := c.client.SendCode(ctx, target, profile); err != nil {
		c.Logger.Warn("code request failed", "target", target, "err", err)
		return ErrCodeRequestFailed
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = target
	c.resetChallengeLocked()
	return nil
}

// resetChallengeLocked clears digits, restarts the countdown, and guarantees
// the old countdown can no longer tick into the new challenge.
func (c *ChallengeController) resetChallengeLocked() {
	c.stopCountdownLocked()

	c.digits = [CodeLength]string{}
	c.focus = 0
	c.seconds = ResendCooldownSeconds
	c.status = StatusEntering

	stopCh := make(chan struct{})
	doneCh := make(chan struct{})
	c.stopCh = stopCh
	c.doneCh = doneCh

	interval := c.TickInterval
	if interval <= 0 {
		interval = time.Second
	}

	go func() {
		defer close(doneCh)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.mu.Lock()
				if c.stopCh != stopCh {
					// A newer challenge owns the countdown now.
					c.mu.Unlock()
					return
				}
				if c.seconds > 0 {
					c.seconds--
				}
				finished := c.seconds == 0
				c.mu.Unlock()
				if finished {
					return
				}
			case <-stopCh:
				return
			}
		}
	}()
}

func (c *ChallengeController) stopCountdownLocked() {
	if c.stopCh != nil {
		close(c.stopCh)
		c.stopCh = nil
	}
}

// Close cancels the countdown. Call on teardown so no ticks happen after the
// owning view is gone.
func (c *ChallengeController) Close() {
	c.mu.Lock()
	c.stopCountdownLocked()
	doneCh := c.doneCh
	c.mu.Unlock()

	if doneCh != nil {
		<-doneCh
	}
}

// EnterDigit places a single character at position. Multi-character input is
// rejected as a no-op. Entering the last position with every slot filled
// triggers verification exactly once; the result is returned when that
// happens, nil otherwise.
func (c *ChallengeController) EnterDigit(ctx context.Context, position int, value string) *VerifyResult {
	c.mu.Lock()
	if position < 0 || position >= CodeLength || len(value) != 1 {
		c.mu.Unlock()
		return nil
	}
	if c.status == StatusSubmitting || c.status == StatusVerified {
		c.mu.Unlock()
		return nil
	}

	c.digits[position] = value
	c.status = StatusEntering
	if position < CodeLength-1 {
		c.focus = position + 1
	}

	submit := position == CodeLength-1 && c.completeLocked()
	var code string
	if submit {
		code = strings.Join(c.digits[:], "")
	}
	c.mu.Unlock()

	if !submit {
		return nil
	}
	result := c.Verify(ctx, code)
	return &result
}

// Backspace clears the digit at position, or moves focus back one slot when
// the position is already empty.
func (c *ChallengeController) Backspace(position int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if position < 0 || position >= CodeLength {
		return
	}
	if c.digits[position] == "" {
		if position > 0 {
			c.focus = position - 1
		}
		return
	}
	c.digits[position] = ""
	c.focus = position
}

func (c *ChallengeController) completeLocked() bool {
	for _, d := range c.digits {
		if d == "" {
			return false
		}
	}
	return true
}

// Resend re-requests a code for the current target. Only permitted once the
// countdown has reached zero; it clears all digits and restarts the countdown.
func (c *ChallengeController) Resend(ctx context.Context) error {
	c.mu.Lock()
	if c.seconds > 0 {
		c.mu.Unlock()
		return ErrResendUnavailable
	}
	target := c.target
	c.mu.Unlock()

	return c.RequestCode(ctx, target)
}

// Verify checks the code with the service and drives the branching outcomes.
// Every remote failure resolves to a user-facing VerifyResult; nothing
// propagates raw.
func (c *ChallengeController) Verify(ctx context.Context, code string) VerifyResult {
	c.mu.Lock()
	target := c.target
	c.status = StatusSubmitting
	c.mu.Unlock()

	session, err := c.client.VerifyCode(ctx, target, code)
	if err != nil {
		return c.rejectOnVerifyError(err)
	}

	signup := c.flow != nil && c.flow.Pending().Username != ""
	var result VerifyResult
	if signup {
		result = c.commitSignup(ctx, session)
	} else {
		result = c.commitLogin(ctx, session)
	}

	c.mu.Lock()
	if result.Outcome == OutcomeCommitted {
		c.status = StatusVerified
		c.stopCountdownLocked()
	} else {
		c.status = StatusRejected
	}
	c.mu.Unlock()

	return result
}

func (c *ChallengeController) rejectOnVerifyError(err error) VerifyResult {
	c.mu.Lock()
	c.status = StatusRejected
	c.mu.Unlock()

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case ErrorCodeInvalidCode:
			// Digits are retained so the user can fix a typo.
			return VerifyResult{Outcome: OutcomeInvalidCode, Message: "Invalid code. Check the digits and try again."}
		case ErrorCodeTooManyAttempts:
			return VerifyResult{Outcome: OutcomeError, Message: "Too many attempts. Request a new code."}
		case ErrorCodeNoActiveChallenge:
			return VerifyResult{Outcome: OutcomeError, Message: "That code has expired. Request a new one."}
		}
	}

	c.Logger.Warn("code verification failed", "err", err)
	return VerifyResult{Outcome: OutcomeError, Message: "We couldn't verify your code. Please try again."}
}

// commitSignup creates the profile for a freshly verified identity and
// establishes the session. A username uniqueness conflict here is a genuine
// race (another signup claimed the name after the availability check): the
// identity is signed back out and the flow returns to username entry.
func (c *ChallengeController) commitSignup(ctx context.Context, session *Session) VerifyResult {
	pending := c.flow.Pending()

	profile, err := session.CreateProfile(ctx, CreateProfileRequest{
		Username:    pending.Username,
		FirstName:   pending.FirstName,
		LastName:    pending.LastName,
		DateOfBirth: pending.DateOfBirth,
	})

	switch {
	case IsUsernameTaken(err):
		if signOutErr := session.SignOut(ctx); signOutErr != nil {
			c.Logger.Warn("sign-out after username conflict failed", "err", signOutErr)
		}
		c.flow.ReturnToUsername()
		return VerifyResult{Outcome: OutcomeUsernameTaken, Message: "Username already taken. Pick another one."}

	case err != nil:
		// The identity itself is valid; blocking here would orphan a usable
		// credential with no way to retry profile creation from this flow.
		c.Logger.Warn("profile creation failed, establishing session anyway", "err", err)
		user := User{
			ID:        session.IdentityID(),
			FirstName: pending.FirstName,
			LastName:  pending.LastName,
			Username:  pending.Username,
		}
		if pending.ContactMethod == ContactEmail {
			user.Email = pending.ContactValue
		}
		c.sessions.SetUser(user, session.SignOut)
		_ = c.flow.Commit()
		return VerifyResult{
			Outcome: OutcomeCommitted,
			Warning: "Your account was created, but we couldn't finish your profile. You can complete it later.",
			User:    &user,
		}
	}

	user := User{
		ID:        profile.ID,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Username:  profile.Username,
		Email:     profile.Email,
	}
	c.sessions.SetUser(user, session.SignOut)
	_ = c.flow.Commit()
	return VerifyResult{Outcome: OutcomeCommitted, User: &user}
}

// commitLogin fetches the existing profile for a verified identity. An
// identity without a profile never completed signup: it is signed out
// immediately rather than left half-authenticated.
func (c *ChallengeController) commitLogin(ctx context.Context, session *Session) VerifyResult {
	noProfile := func() VerifyResult {
		if err := session.SignOut(ctx); err != nil {
			c.Logger.Warn("sign-out of profileless identity failed", "err", err)
		}
		return VerifyResult{
			Outcome: OutcomeNoProfile,
			Message: "No account found for this contact. Create one, or try a different contact.",
		}
	}

	if !session.HasProfile() {
		return noProfile()
	}

	profile, err := c.client.FetchProfileByIdentity(ctx, session.IdentityID())
	if err != nil {
		if IsNotFound(err) {
			return noProfile()
		}
		c.Logger.Warn("profile fetch failed", "err", err)
		if signOutErr := session.SignOut(ctx); signOutErr != nil {
			c.Logger.Warn("sign-out after profile fetch failure failed", "err", signOutErr)
		}
		return VerifyResult{Outcome: OutcomeError, Message: "We couldn't load your account. Please try again."}
	}

	user := User{
		ID:        profile.ID,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Username:  profile.Username,
		Email:     profile.Email,
	}
	c.sessions.SetUser(user, session.SignOut)
	return VerifyResult{Outcome: OutcomeCommitted, User: &user}
}

// Digits returns a copy of the entered digit slots.
func (c *ChallengeController) Digits() [CodeLength]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.digits
}

// FocusIndex returns the slot that should receive the next keystroke.
func (c *ChallengeController) FocusIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focus
}

// SecondsRemaining returns the resend countdown.
func (c *ChallengeController) SecondsRemaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seconds
}

// Status returns the challenge lifecycle state.
func (c *ChallengeController) Status() ChallengeStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Target returns the contact value the current code was sent to.
func (c *ChallengeController) Target() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}
