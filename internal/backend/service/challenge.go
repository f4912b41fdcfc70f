package service

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
	"golang.org/x/time/rate"

	"github.com/soloday/soloday/internal/backend/domain"
	"github.com/soloday/soloday/internal/backend/store"
	"github.com/soloday/soloday/internal/backend/token"
	"github.com/soloday/soloday/pkg/cryptox"
	"github.com/soloday/soloday/pkg/idx"
)

const (
	codeTTL           = 10 * time.Minute
	maxVerifyAttempts = 5

	// Resend throttle per target: one code every 30 seconds with a small
	// burst so a user can immediately re-request a lost code once.
	resendEvery = 30 * time.Second
	resendBurst = 2
)

var (
	ErrTooManyCodeRequests = errors.New("too many code requests for this target")
	ErrNoActiveChallenge   = errors.New("no active challenge for this target")
	ErrInvalidCode         = errors.New("invalid verification code")
	ErrTooManyAttempts     = errors.New("too many failed verification attempts")
)

// ChallengeService issues one-time verification codes and redeems them for
// bearer tokens. A successful verification creates the identity on first use.
type ChallengeService struct {
	Store  store.Store
	Tokens *token.Manager
	Sender CodeSender

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// VerifyResult is the outcome of a successful code verification.
type VerifyResult struct {
	IdentityID string
	Token      string
	ExpiresAt  time.Time
	HasProfile bool
	Pending    *domain.PendingProfile
}

// SendCode generates a fresh six-digit code for the target, stores its hash,
// and hands the plaintext to the configured sender. Any previous challenge for
// the target is invalidated. The optional pending profile is stashed with the
// challenge so signup details survive until verification.
func (s *ChallengeService) SendCode(ctx context.Context, target string, pending *domain.PendingProfile) error {
	if !s.limiter(target).Allow() {
		return ErrTooManyCodeRequests
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	hash, err := cryptox.HashCode(code)
	if err != nil {
		return fmt.Errorf("failed to hash code: %w", err)
	}

	now := time.Now().UTC()
	challenge := domain.Challenge{
		ID:        idx.New().String(),
		Target:    target,
		CodeHash:  hash,
		Pending:   pending,
		ExpiresAt: now.Add(codeTTL),
		CreatedAt: now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Challenges().DeleteChallengesForTarget(ctx, target); err != nil {
			return fmt.Errorf("failed to clear previous challenges: %w", err)
		}
		if err := tx.Challenges().CreateChallenge(ctx, challenge); err != nil {
			return fmt.Errorf("failed to store challenge: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.Sender.Send(ctx, target, code); err != nil {
		return fmt.Errorf("failed to deliver code: %w", err)
	}

	return nil
}

// VerifyCode checks a submitted code against the active challenge for the
// target. On success it finds or creates the identity, issues a bearer token,
// and records the session so the token can be revoked later.
func (s *ChallengeService) VerifyCode(ctx context.Context, target, code string) (VerifyResult, error) {
	challenge, err := s.Store.Challenges().GetActiveChallengeByTarget(ctx, target)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return VerifyResult{}, ErrNoActiveChallenge
		}
		return VerifyResult{}, fmt.Errorf("failed to load challenge: %w", err)
	}

	if challenge.Attempts >= maxVerifyAttempts {
		return VerifyResult{}, ErrTooManyAttempts
	}

	if err := cryptox.VerifyCode(code, challenge.CodeHash); err != nil {
		attempts, incErr := s.Store.Challenges().IncrementChallengeAttempts(ctx, challenge.ID)
		if incErr != nil {
			return VerifyResult{}, fmt.Errorf("failed to record attempt: %w", incErr)
		}
		if attempts >= maxVerifyAttempts {
			return VerifyResult{}, ErrTooManyAttempts
		}
		return VerifyResult{}, ErrInvalidCode
	}

	var identity domain.Identity
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Challenges().MarkChallengeVerified(ctx, challenge.ID); err != nil {
			return fmt.Errorf("failed to mark challenge verified: %w", err)
		}

		identity, err = tx.Identities().GetIdentityByTarget(ctx, target)
		if errors.Is(err, store.ErrNotFound) {
			identity = domain.Identity{
				ID:        idx.New().String(),
				Target:    target,
				CreatedAt: time.Now().UTC(),
			}
			return tx.Identities().CreateIdentity(ctx, identity)
		}
		return err
	})
	if err != nil {
		return VerifyResult{}, err
	}

	bearer, expiresAt, err := s.Tokens.Issue(identity.ID)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	session := domain.AuthSession{
		ID:         idx.New().String(),
		IdentityID: identity.ID,
		TokenHash:  cryptox.FingerprintToken(bearer),
		ExpiresAt:  expiresAt,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Store.AuthSessions().CreateAuthSession(ctx, session); err != nil {
		return VerifyResult{}, fmt.Errorf("failed to record session: %w", err)
	}

	hasProfile := true
	if _, err := s.Store.Profiles().GetProfileByIdentity(ctx, identity.ID); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return VerifyResult{}, fmt.Errorf("failed to check profile: %w", err)
		}
		hasProfile = false
	}

	return VerifyResult{
		IdentityID: identity.ID,
		Token:      bearer,
		ExpiresAt:  expiresAt,
		HasProfile: hasProfile,
		Pending:    challenge.Pending,
	}, nil
}

// SignOut revokes the session behind a bearer token. Unknown tokens are a
// no-op so sign-out stays idempotent.
func (s *ChallengeService) SignOut(ctx context.Context, bearer string) error {
	hash := cryptox.FingerprintToken(bearer)
	if err := s.Store.AuthSessions().RevokeAuthSession(ctx, hash); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *ChallengeService) limiter(target string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.limiters == nil {
		s.limiters = make(map[string]*rate.Limiter)
	}
	lim, ok := s.limiters[target]
	if !ok {
		lim = rate.NewLimiter(rate.Every(resendEvery), resendBurst)
		s.limiters[target] = lim
	}
	return lim
}

// generateCode derives a six-digit HOTP code from a throwaway random secret.
// The secret is discarded; only the argon2id hash of the code is stored.
func generateCode() (string, error) {
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	secret := base32.StdEncoding.EncodeToString(raw)

	return hotp.GenerateCodeCustom(secret, 0, hotp.ValidateOpts{
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
}
