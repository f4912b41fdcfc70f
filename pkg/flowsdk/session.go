package flowsdk

import (
	"context"
	"sync"
)

// User is the process-wide identity a SessionStore holds.
type User struct {
	ID          string
	FirstName   string
	LastName    string
	Username    string
	Email       string
	IsAnonymous bool
}

// RestoreFunc attempts to restore a previously persisted user, returning nil
// when there is nothing to restore.
type RestoreFunc func(ctx context.Context) (*User, error)

// SignOutFunc invalidates the remote session backing the current user.
type SignOutFunc func(ctx context.Context) error

// SessionStore holds process-wide authentication state. All mutation flows
// through Initialize, SetUser, SetAnonymous, and Logout; readers get copies.
// Invariant: IsAuthenticated reports true exactly when a user is set.
type SessionStore struct {
	// Restore is consulted once, on Initialize.
	Restore RestoreFunc

	mu       sync.RWMutex
	user     *User
	signOut  SignOutFunc
	initOnce sync.Once
}

// NewSessionStore creates an empty, unauthenticated store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Initialize attempts to restore a persisted session. Idempotent: only the
// first call runs the restore, later calls are no-ops.
func (s *SessionStore) Initialize(ctx context.Context) error {
	var restoreErr error
	s.initOnce.Do(func() {
		if s.Restore == nil {
			return
		}
		user, err := s.Restore(ctx)
		if err != nil {
			restoreErr = err
			return
		}
		if user != nil {
			s.SetUser(*user, nil)
		}
	})
	return restoreErr
}

// SetUser replaces the current user. The optional signOut hook is invoked by
// Logout to invalidate the remote session backing this user.
func (s *SessionStore) SetUser(user User, signOut SignOutFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	s.signOut = signOut
}

// SetAnonymous installs a synthetic guest identity so the app is usable
// without signup.
func (s *SessionStore) SetAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &User{
		FirstName:   "Guest",
		Username:    "guest",
		IsAnonymous: true,
	}
	s.signOut = nil
}

// Logout clears the current user and invalidates the remote session. Local
// state is cleared even when the remote call fails; the error is returned so
// callers can log it.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	signOut := s.signOut
	s.user = nil
	s.signOut = nil
	s.mu.Unlock()

	if signOut != nil {
		return signOut(ctx)
	}
	return nil
}

// CurrentUser returns a copy of the current user, or nil when unauthenticated.
func (s *SessionStore) CurrentUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// IsAuthenticated reports whether a user (registered or guest) is set.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}
