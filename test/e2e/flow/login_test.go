package flow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soloday/soloday/pkg/flowsdk"
)

func TestLoginExistingAccount(t *testing.T) {
	t.Parallel()
	svc := setupService(t)
	ctx := t.Context()

	signupUser(t, ctx, svc, janeEmail, "janedoe")

	ctrl, sessions := startLogin(t, ctx, svc, janeEmail)
	result := enterCode(t, ctx, ctrl, svc.Sender.LastCode(t, janeEmail))

	require.Equal(t, flowsdk.OutcomeCommitted, result.Outcome)
	require.True(t, sessions.IsAuthenticated())
	require.Equal(t, "janedoe", sessions.CurrentUser().Username)
	require.Equal(t, "Jane", sessions.CurrentUser().FirstName)
}

func TestLoginWithoutProfileSignsOut(t *testing.T) {
	t.Parallel()
	svc := setupService(t)
	ctx := t.Context()

	// A contact that verified a code once but never created a profile.
	ctrl, sessions := startLogin(t, ctx, svc, "stranger@example.com")
	result := enterCode(t, ctx, ctrl, svc.Sender.LastCode(t, "stranger@example.com"))

	require.Equal(t, flowsdk.OutcomeNoProfile, result.Outcome)
	require.NotEmpty(t, result.Message)
	require.False(t, sessions.IsAuthenticated())
	require.Nil(t, sessions.CurrentUser())
}

func TestLogoutRevokesRemoteSession(t *testing.T) {
	t.Parallel()
	svc := setupService(t)
	ctx := t.Context()

	// Sign up directly through the SDK so the bearer token is in hand.
	require.NoError(t, svc.Client.SendCode(ctx, janeEmail, nil))
	session, err := svc.Client.VerifyCode(ctx, janeEmail, svc.Sender.LastCode(t, janeEmail))
	require.NoError(t, err)

	_, err = session.CreateProfile(ctx, flowsdk.CreateProfileRequest{
		Username:  "janedoe",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)

	require.NoError(t, session.SignOut(ctx))

	// The revoked token is rejected from then on.
	_, err = session.CreateDream(ctx, "a dream after sign-out")
	require.Error(t, err)
	var apiErr *flowsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, flowsdk.ErrorCodeInvalidToken, apiErr.Code)
}

func TestSessionStoreLogoutClearsUser(t *testing.T) {
	t.Parallel()
	svc := setupService(t)
	ctx := t.Context()

	sessions := signupUser(t, ctx, svc, janeEmail, "janedoe")
	require.True(t, sessions.IsAuthenticated())

	require.NoError(t, sessions.Logout(ctx))
	require.False(t, sessions.IsAuthenticated())
	require.Nil(t, sessions.CurrentUser())
}
