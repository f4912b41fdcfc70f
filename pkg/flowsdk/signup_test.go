package flowsdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func advanceToUsername(t *testing.T, f *SignupFlow) {
	t.Helper()
	require.NoError(t, f.ChooseMethod(ContactEmail))
	require.NoError(t, f.SubmitContact("jane@example.com"))
	require.NoError(t, f.SubmitDetails("Jane", "Doe", ""))
}

func TestSignupFlowHappyPath(t *testing.T) {
	t.Parallel()

	f := NewSignupFlow()
	require.Equal(t, StageChooseMethod, f.Stage())

	advanceToUsername(t, f)
	require.Equal(t, StageEnterUsername, f.Stage())

	require.NoError(t, f.SubmitUsername("JaneDoe123", AvailabilityAvailable))
	require.Equal(t, StageAwaitingCode, f.Stage())
	require.Equal(t, "janedoe123", f.Pending().Username, "username is stored normalized")

	require.NoError(t, f.Commit())
	require.Equal(t, StageCommitted, f.Stage())
}

func TestSignupFlowContactValidation(t *testing.T) {
	t.Parallel()

	t.Run("email requires at sign", func(t *testing.T) {
		f := NewSignupFlow()
		require.NoError(t, f.ChooseMethod(ContactEmail))

		err := f.SubmitContact("not-an-email")
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		require.Equal(t, StageEnterContact, f.Stage(), "failed validation keeps the stage")
	})

	t.Run("phone requires enough digits", func(t *testing.T) {
		f := NewSignupFlow()
		require.NoError(t, f.ChooseMethod(ContactPhone))

		var valErr *ValidationError
		require.ErrorAs(t, f.SubmitContact("123"), &valErr)
		require.NoError(t, f.SubmitContact("+1 555 000 1111"))
		require.Equal(t, StageEnterDetails, f.Stage())
	})

	t.Run("names are required", func(t *testing.T) {
		f := NewSignupFlow()
		require.NoError(t, f.ChooseMethod(ContactEmail))
		require.NoError(t, f.SubmitContact("jane@example.com"))

		var valErr *ValidationError
		require.ErrorAs(t, f.SubmitDetails("", "Doe", ""), &valErr)
		require.ErrorAs(t, f.SubmitDetails("Jane", "   ", ""), &valErr)
	})
}

func TestSignupFlowUsernameGating(t *testing.T) {
	t.Parallel()

	var valErr *ValidationError

	t.Run("too short after normalization", func(t *testing.T) {
		f := NewSignupFlow()
		advanceToUsername(t, f)
		require.ErrorAs(t, f.SubmitUsername("a-!", AvailabilityAvailable), &valErr)
		require.Equal(t, StageEnterUsername, f.Stage())
	})

	t.Run("in-flight check blocks submission", func(t *testing.T) {
		f := NewSignupFlow()
		advanceToUsername(t, f)
		require.ErrorAs(t, f.SubmitUsername("janedoe", AvailabilityChecking), &valErr)
		require.Equal(t, StageEnterUsername, f.Stage())
	})

	t.Run("taken blocks submission", func(t *testing.T) {
		f := NewSignupFlow()
		advanceToUsername(t, f)
		require.ErrorAs(t, f.SubmitUsername("janedoe", AvailabilityTaken), &valErr)
		require.Equal(t, StageEnterUsername, f.Stage())
	})
}

func TestSignupFlowBackNavigation(t *testing.T) {
	t.Parallel()

	f := NewSignupFlow()
	advanceToUsername(t, f)
	require.NoError(t, f.SubmitUsername("janedoe", AvailabilityAvailable))

	// Walk all the way back; each step discards the abandoned stage's data.
	require.NoError(t, f.Back())
	require.Equal(t, StageEnterUsername, f.Stage())

	require.NoError(t, f.Back())
	require.Equal(t, StageEnterDetails, f.Stage())
	require.Empty(t, f.Pending().Username)

	require.NoError(t, f.Back())
	require.Equal(t, StageEnterContact, f.Stage())
	require.Empty(t, f.Pending().FirstName)

	require.NoError(t, f.Back())
	require.Equal(t, StageChooseMethod, f.Stage())
	require.Empty(t, f.Pending().ContactValue)

	// Back from the first stage is a no-op.
	require.NoError(t, f.Back())
	require.Equal(t, StageChooseMethod, f.Stage())
}

func TestSignupFlowCommittedIsTerminal(t *testing.T) {
	t.Parallel()

	f := NewSignupFlow()
	advanceToUsername(t, f)
	require.NoError(t, f.SubmitUsername("janedoe", AvailabilityAvailable))
	require.NoError(t, f.Commit())

	require.Error(t, f.Back())
	require.Equal(t, StageCommitted, f.Stage())
}

func TestSignupFlowReturnToUsername(t *testing.T) {
	t.Parallel()

	f := NewSignupFlow()
	advanceToUsername(t, f)
	require.NoError(t, f.SubmitUsername("janedoe", AvailabilityAvailable))

	f.ReturnToUsername()
	require.Equal(t, StageEnterUsername, f.Stage())
	require.Empty(t, f.Pending().Username, "the conflicting name is cleared")
}

func TestNormalizeUsername(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"JaneDoe123":   "janedoe123",
		"  spaced  ":   "spaced",
		"dots.and-da":  "dotsandda",
		"under_score":  "under_score",
		"MiXeD!@#case": "mixedcase",
	}
	for input, want := range cases {
		require.Equal(t, want, NormalizeUsername(input))
	}
}

func TestNormalizeUsernameIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"JaneDoe123", "already_normal", "We!rd--Input", "", "a"}
	for _, input := range inputs {
		once := NormalizeUsername(input)
		require.Equal(t, once, NormalizeUsername(once))
	}
}
