package flowsdk

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionStoreInvariant(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewSessionStore()

	// Through every reachable state, authenticated tracks user presence.
	require.False(t, store.IsAuthenticated())
	require.Nil(t, store.CurrentUser())

	store.SetUser(User{ID: "u1", Username: "jane"}, nil)
	require.True(t, store.IsAuthenticated())
	require.NotNil(t, store.CurrentUser())

	require.NoError(t, store.Logout(ctx))
	require.False(t, store.IsAuthenticated())
	require.Nil(t, store.CurrentUser())

	store.SetAnonymous()
	require.True(t, store.IsAuthenticated())
	require.True(t, store.CurrentUser().IsAnonymous)

	require.NoError(t, store.Logout(ctx))
	require.False(t, store.IsAuthenticated())
}

func TestSessionStoreInitializeIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var restores atomic.Int32
	store := NewSessionStore()
	store.Restore = func(context.Context) (*User, error) {
		restores.Add(1)
		return &User{ID: "restored", Username: "jane"}, nil
	}

	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.Initialize(ctx))

	require.Equal(t, int32(1), restores.Load(), "restore runs once")
	require.True(t, store.IsAuthenticated())
	require.Equal(t, "restored", store.CurrentUser().ID)
}

func TestSessionStoreInitializeNothingToRestore(t *testing.T) {
	t.Parallel()

	store := NewSessionStore()
	store.Restore = func(context.Context) (*User, error) { return nil, nil }

	require.NoError(t, store.Initialize(context.Background()))
	require.False(t, store.IsAuthenticated())
}

func TestLogoutInvalidatesRemoteSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var signOuts atomic.Int32
	store := NewSessionStore()
	store.SetUser(User{ID: "u1"}, func(context.Context) error {
		signOuts.Add(1)
		return nil
	})

	require.NoError(t, store.Logout(ctx))
	require.Equal(t, int32(1), signOuts.Load(), "logout invalidates the remote session")
}

func TestLogoutClearsLocallyEvenWhenRemoteFails(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewSessionStore()
	store.SetUser(User{ID: "u1"}, func(context.Context) error {
		return errors.New("network down")
	})

	err := store.Logout(ctx)
	require.Error(t, err)
	require.False(t, store.IsAuthenticated(), "local state clears regardless of the remote result")
}

func TestCurrentUserReturnsCopy(t *testing.T) {
	t.Parallel()

	store := NewSessionStore()
	store.SetUser(User{ID: "u1", Username: "jane"}, nil)

	user := store.CurrentUser()
	user.Username = "mutated"

	require.Equal(t, "jane", store.CurrentUser().Username, "readers cannot mutate store state")
}
