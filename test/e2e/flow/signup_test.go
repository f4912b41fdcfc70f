package flow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soloday/soloday/pkg/flowsdk"
)

func TestSignupEndToEnd(t *testing.T) {
	t.Parallel()
	svc := setupService(t)
	ctx := t.Context()

	flow, ctrl, sessions := startSignup(t, ctx, svc, janeEmail, "Jane.Doe123")

	// The raw name is normalized before it rides along with the code request.
	require.Equal(t, "janedoe123", flow.Pending().Username)

	result := enterCode(t, ctx, ctrl, svc.Sender.LastCode(t, janeEmail))
	require.Equal(t, flowsdk.OutcomeCommitted, result.Outcome)
	require.NotNil(t, result.User)
	require.Equal(t, "janedoe123", result.User.Username)
	require.Equal(t, janeEmail, result.User.Email)

	require.Equal(t, flowsdk.StageCommitted, flow.Stage())
	require.Equal(t, flowsdk.StatusVerified, ctrl.Status())

	user := sessions.CurrentUser()
	require.NotNil(t, user)
	require.True(t, sessions.IsAuthenticated())
	require.False(t, user.IsAnonymous)

	// The committed profile is publicly fetchable.
	profile, err := svc.Client.FetchProfile(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "janedoe123", profile.Username)
	require.Equal(t, "Jane", profile.FirstName)
	require.Equal(t, "Doe", profile.LastName)
}

func TestSignupInvalidCodeThenCorrection(t *testing.T) {
	t.Parallel()
	svc := setupService(t)
	ctx := t.Context()

	_, ctrl, sessions := startSignup(t, ctx, svc, janeEmail, "janedoe")
	code := svc.Sender.LastCode(t, janeEmail)

	// Flip the last digit so only one position is wrong.
	wrong := code[:5] + string('0'+(code[5]-'0'+1)%10)
	result := enterCode(t, ctx, ctrl, wrong)
	require.Equal(t, flowsdk.OutcomeInvalidCode, result.Outcome)
	require.Equal(t, flowsdk.StatusRejected, ctrl.Status())
	require.False(t, sessions.IsAuthenticated())

	// Digits survive the rejection so the user can fix the typo in place.
	digits := ctrl.Digits()
	for i := 0; i < flowsdk.CodeLength; i++ {
		require.Equal(t, string(wrong[i]), digits[i])
	}

	// Correct only the last digit and resubmit.
	fixed := ctrl.EnterDigit(ctx, flowsdk.CodeLength-1, string(code[5]))
	require.NotNil(t, fixed)
	require.Equal(t, flowsdk.OutcomeCommitted, fixed.Outcome)
	require.True(t, sessions.IsAuthenticated())
}

func TestSignupUsernameConflictRecovery(t *testing.T) {
	t.Parallel()
	svc := setupService(t)
	ctx := t.Context()

	// Another user claims the name first.
	signupUser(t, ctx, svc, "first@example.com", "wanted_name")

	// Jane's availability check ran before the claim, so her flow reaches the
	// code stage believing the name is free.
	flow := flowsdk.NewSignupFlow()
	require.NoError(t, flow.ChooseMethod(flowsdk.ContactEmail))
	require.NoError(t, flow.SubmitContact(janeEmail))
	require.NoError(t, flow.SubmitDetails("Jane", "Doe", "1995-04-12"))
	require.NoError(t, flow.SubmitUsername("wanted_name", flowsdk.AvailabilityAvailable))

	sessions := flowsdk.NewSessionStore()
	ctrl := flowsdk.NewChallengeController(svc.Client, sessions, flow)
	ctrl.TickInterval = 0
	t.Cleanup(ctrl.Close)

	require.NoError(t, ctrl.RequestCode(ctx, janeEmail))
	result := enterCode(t, ctx, ctrl, svc.Sender.LastCode(t, janeEmail))

	// The conflict surfaces at commit: no session survives and the flow is
	// back at username entry with the claimed name cleared.
	require.Equal(t, flowsdk.OutcomeUsernameTaken, result.Outcome)
	require.False(t, sessions.IsAuthenticated())
	require.Equal(t, flowsdk.StageEnterUsername, flow.Stage())
	require.Empty(t, flow.Pending().Username)

	// The other fields are still there, so recovery is just a new name and a
	// fresh code.
	require.Equal(t, "Jane", flow.Pending().FirstName)
	require.NoError(t, flow.SubmitUsername("other_name", flowsdk.AvailabilityAvailable))
	require.NoError(t, ctrl.RequestCode(ctx, janeEmail))
	retry := enterCode(t, ctx, ctrl, svc.Sender.LastCode(t, janeEmail))
	require.Equal(t, flowsdk.OutcomeCommitted, retry.Outcome)
	require.Equal(t, "other_name", sessions.CurrentUser().Username)
}

func TestSignupUsernameCheckAgainstService(t *testing.T) {
	t.Parallel()
	svc := setupService(t)
	ctx := t.Context()

	available, err := svc.Client.CheckUsername(ctx, "fresh_name")
	require.NoError(t, err)
	require.True(t, available)

	signupUser(t, ctx, svc, "first@example.com", "fresh_name")

	// Taken, and normalization means the decorated form is the same name.
	available, err = svc.Client.CheckUsername(ctx, "fresh_name")
	require.NoError(t, err)
	require.False(t, available)

	available, err = svc.Client.CheckUsername(ctx, "Fresh.Name!")
	require.NoError(t, err)
	require.False(t, available)
}
