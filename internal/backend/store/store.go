package store

import (
	"context"
	"errors"

	"github.com/soloday/soloday/internal/backend/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories are exposed as methods to keep concerns
// tidy and to make transaction scoping explicit.
type Store interface {
	Challenges() Challenges
	Identities() Identities
	Profiles() Profiles
	AuthSessions() AuthSessions
	Dreams() Dreams

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped store.
type Tx interface {
	Challenges() Challenges
	Identities() Identities
	Profiles() Profiles
	AuthSessions() AuthSessions
	Dreams() Dreams

	Commit() error
	Rollback() error
}

type Challenges interface {
	// CreateChallenge inserts a new challenge (id is provided via ULID).
	CreateChallenge(ctx context.Context, c domain.Challenge) error

	// GetActiveChallengeByTarget returns the newest unverified, unexpired
	// challenge for a target.
	GetActiveChallengeByTarget(ctx context.Context, target string) (domain.Challenge, error)

	// IncrementChallengeAttempts bumps the failed attempt counter and returns
	// the new count.
	IncrementChallengeAttempts(ctx context.Context, id string) (int, error)

	// MarkChallengeVerified stamps verified_at so the challenge cannot be
	// redeemed twice.
	MarkChallengeVerified(ctx context.Context, id string) error

	// DeleteChallengesForTarget removes all challenges for a target. Called
	// before issuing a fresh code so only one challenge is live per target.
	DeleteChallengesForTarget(ctx context.Context, target string) error

	// DeleteExpiredChallenges is housekeeping.
	DeleteExpiredChallenges(ctx context.Context) error
}

type Identities interface {
	CreateIdentity(ctx context.Context, id domain.Identity) error
	GetIdentityByID(ctx context.Context, id string) (domain.Identity, error)
	GetIdentityByTarget(ctx context.Context, target string) (domain.Identity, error)
}

type Profiles interface {
	// CreateProfile inserts a new profile. Returns ErrAlreadyExists on a
	// username or identity uniqueness violation.
	CreateProfile(ctx context.Context, p domain.Profile) error

	GetProfileByID(ctx context.Context, id string) (domain.Profile, error)
	GetProfileByIdentity(ctx context.Context, identityID string) (domain.Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (domain.Profile, error)
}

type AuthSessions interface {
	CreateAuthSession(ctx context.Context, s domain.AuthSession) error

	// GetAuthSessionByTokenHash returns the session for a token fingerprint.
	GetAuthSessionByTokenHash(ctx context.Context, hash string) (domain.AuthSession, error)

	// RevokeAuthSession stamps revoked_at for the token fingerprint.
	RevokeAuthSession(ctx context.Context, hash string) error

	// DeleteExpiredAuthSessions is housekeeping.
	DeleteExpiredAuthSessions(ctx context.Context) error
}

type Dreams interface {
	CreateDream(ctx context.Context, d domain.Dream) error
	GetDreamByID(ctx context.Context, id string) (domain.Dream, error)

	// ListUninterpretedDreams returns up to limit dreams awaiting the
	// interpreter worker, oldest first.
	ListUninterpretedDreams(ctx context.Context, limit int) ([]domain.Dream, error)

	// SetDreamInterpretation records the computed interpretation and score
	// and stamps interpreted_at.
	SetDreamInterpretation(ctx context.Context, id, interpretation string, score int) error
}
