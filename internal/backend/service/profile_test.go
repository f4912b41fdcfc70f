package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/soloday/soloday/internal/backend/domain"
	"github.com/soloday/soloday/internal/backend/store"
	"github.com/soloday/soloday/pkg/idx"
)

func newIdentity(t *testing.T, st store.Store, target string) domain.Identity {
	t.Helper()

	identity := domain.Identity{
		ID:        idx.New().String(),
		Target:    target,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, st.Identities().CreateIdentity(context.Background(), identity))
	return identity
}

func TestCreateProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	svc := &ProfileService{Store: st}
	identity := newIdentity(t, st, "ada@example.com")

	profile, err := svc.CreateProfile(ctx, identity.ID, CreateProfileParams{
		Username:    "Ada_L",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		DateOfBirth: "1815-12-10",
	})
	require.NoError(t, err)
	require.Equal(t, "ada_l", profile.Username, "username must be stored normalized")
	require.Equal(t, "ada@example.com", profile.Email, "email targets populate the profile email")

	got, err := svc.GetProfileByIdentity(ctx, identity.ID)
	require.NoError(t, err)
	require.Equal(t, profile.ID, got.ID)
}

func TestCreateProfileRejectsDuplicateUsername(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	svc := &ProfileService{Store: st}

	first := newIdentity(t, st, "+15550001111")
	second := newIdentity(t, st, "+15550002222")

	_, err := svc.CreateProfile(ctx, first.ID, CreateProfileParams{Username: "taken_name"})
	require.NoError(t, err)

	// Different casing and punctuation normalize to the same name.
	_, err = svc.CreateProfile(ctx, second.ID, CreateProfileParams{Username: "Taken-Name"})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestCreateProfileRejectsSecondProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	svc := &ProfileService{Store: st}
	identity := newIdentity(t, st, "+15550003333")

	_, err := svc.CreateProfile(ctx, identity.ID, CreateProfileParams{Username: "first_name"})
	require.NoError(t, err)

	_, err = svc.CreateProfile(ctx, identity.ID, CreateProfileParams{Username: "second_name"})
	require.ErrorIs(t, err, ErrProfileExists)
}

func TestCreateProfileRejectsShortUsername(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	svc := &ProfileService{Store: st}
	identity := newIdentity(t, st, "+15550004444")

	// Normalization strips the punctuation, leaving too little behind.
	_, err := svc.CreateProfile(context.Background(), identity.ID, CreateProfileParams{Username: "a-!"})
	require.ErrorIs(t, err, ErrUsernameInvalid)
}

func TestUsernameAvailable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	svc := &ProfileService{Store: st}
	identity := newIdentity(t, st, "ada@example.com")

	available, err := svc.UsernameAvailable(ctx, "Fresh_Name")
	require.NoError(t, err)
	require.True(t, available)

	_, err = svc.CreateProfile(ctx, identity.ID, CreateProfileParams{Username: "fresh_name"})
	require.NoError(t, err)

	available, err = svc.UsernameAvailable(ctx, "Fresh_Name")
	require.NoError(t, err)
	require.False(t, available)

	available, err = svc.UsernameAvailable(ctx, "ab")
	require.NoError(t, err)
	require.False(t, available, "names below the minimum length are never available")
}

func TestNormalizeUsername(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Ada_L":        "ada_l",
		"  spaced  ":   "spaced",
		"MiXeD123":     "mixed123",
		"dots.and-das": "dotsanddas",
		"émile":        "mile",
	}
	for input, want := range cases {
		require.Equal(t, want, normalizeUsername(input))
	}

	// Normalization is idempotent.
	for input := range cases {
		once := normalizeUsername(input)
		require.Equal(t, once, normalizeUsername(once))
	}
}
