package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/soloday/soloday/internal/backend/domain"
	"github.com/soloday/soloday/internal/backend/store"
	"github.com/soloday/soloday/internal/backend/store/drivers/sqlite"
	"github.com/soloday/soloday/internal/backend/token"
)

// captureSender records the last code handed to it so tests can redeem it.
type captureSender struct {
	target string
	code   string
}

func (s *captureSender) Send(_ context.Context, target, code string) error {
	s.target = target
	s.code = code
	return nil
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newChallengeService(t *testing.T) (*ChallengeService, *captureSender) {
	t.Helper()

	sender := &captureSender{}
	svc := &ChallengeService{
		Store:  newTestStore(t),
		Tokens: token.NewManager("test-secret", "soloday-test", time.Hour),
		Sender: sender,
	}
	return svc, sender
}

func TestSendAndVerifyCode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, sender := newChallengeService(t)

	require.NoError(t, svc.SendCode(ctx, "user@example.com", nil))
	require.Equal(t, "user@example.com", sender.target)
	require.Len(t, sender.code, 6)

	result, err := svc.VerifyCode(ctx, "user@example.com", sender.code)
	require.NoError(t, err)
	require.NotEmpty(t, result.IdentityID)
	require.NotEmpty(t, result.Token)
	require.False(t, result.HasProfile)

	// The identity must be reused on a second verification cycle.
	require.NoError(t, svc.SendCode(ctx, "user@example.com", nil))
	second, err := svc.VerifyCode(ctx, "user@example.com", sender.code)
	require.NoError(t, err)
	require.Equal(t, result.IdentityID, second.IdentityID)
}

func TestVerifyCodePreservesPendingProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, sender := newChallengeService(t)

	pending := &domain.PendingProfile{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Username:    "ada_l",
		DateOfBirth: "1815-12-10",
	}
	require.NoError(t, svc.SendCode(ctx, "ada@example.com", pending))

	result, err := svc.VerifyCode(ctx, "ada@example.com", sender.code)
	require.NoError(t, err)
	require.NotNil(t, result.Pending)
	require.Equal(t, "ada_l", result.Pending.Username)
}

func TestVerifyCodeRejectsWrongCode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, sender := newChallengeService(t)

	require.NoError(t, svc.SendCode(ctx, "user@example.com", nil))

	wrong := "000000"
	if sender.code == wrong {
		wrong = "000001"
	}

	_, err := svc.VerifyCode(ctx, "user@example.com", wrong)
	require.ErrorIs(t, err, ErrInvalidCode)

	// The right code still works after a single failure.
	result, err := svc.VerifyCode(ctx, "user@example.com", sender.code)
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
}

func TestVerifyCodeBoundsAttempts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, sender := newChallengeService(t)

	require.NoError(t, svc.SendCode(ctx, "user@example.com", nil))

	wrong := "000000"
	if sender.code == wrong {
		wrong = "000001"
	}

	for i := 0; i < maxVerifyAttempts-1; i++ {
		_, err := svc.VerifyCode(ctx, "user@example.com", wrong)
		require.ErrorIs(t, err, ErrInvalidCode)
	}

	_, err := svc.VerifyCode(ctx, "user@example.com", wrong)
	require.ErrorIs(t, err, ErrTooManyAttempts)

	// Even the right code is refused once the challenge is burned.
	_, err = svc.VerifyCode(ctx, "user@example.com", sender.code)
	require.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestVerifyCodeWithoutChallenge(t *testing.T) {
	t.Parallel()

	svc, _ := newChallengeService(t)

	_, err := svc.VerifyCode(context.Background(), "nobody@example.com", "123456")
	require.ErrorIs(t, err, ErrNoActiveChallenge)
}

func TestSendCodeThrottlesPerTarget(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _ := newChallengeService(t)

	for i := 0; i < resendBurst; i++ {
		require.NoError(t, svc.SendCode(ctx, "burst@example.com", nil))
	}
	require.ErrorIs(t, svc.SendCode(ctx, "burst@example.com", nil), ErrTooManyCodeRequests)

	// Other targets are unaffected.
	require.NoError(t, svc.SendCode(ctx, "other@example.com", nil))
}

func TestSendCodeInvalidatesPreviousChallenge(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, sender := newChallengeService(t)

	require.NoError(t, svc.SendCode(ctx, "user@example.com", nil))
	first := sender.code

	require.NoError(t, svc.SendCode(ctx, "user@example.com", nil))
	second := sender.code

	if first != second {
		_, err := svc.VerifyCode(ctx, "user@example.com", first)
		require.ErrorIs(t, err, ErrInvalidCode)
	}

	result, err := svc.VerifyCode(ctx, "user@example.com", second)
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
}

func TestSignOutRevokesSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, sender := newChallengeService(t)

	require.NoError(t, svc.SendCode(ctx, "user@example.com", nil))
	result, err := svc.VerifyCode(ctx, "user@example.com", sender.code)
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, result.Token))

	// Idempotent: revoking again is fine.
	require.NoError(t, svc.SignOut(ctx, result.Token))
}
