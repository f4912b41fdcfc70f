package flow_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	httpapi "github.com/soloday/soloday/internal/backend/http"
	"github.com/soloday/soloday/internal/backend/service"
	"github.com/soloday/soloday/internal/backend/store/drivers/sqlite"
	"github.com/soloday/soloday/internal/backend/token"
	"github.com/soloday/soloday/pkg/flowsdk"
)

/*
 * Common helpers for end-to-end flow tests. The full service runs in-process
 * against an in-memory database, with the code sender captured so tests can
 * read the codes that would have gone out over SMS or email.
 */

const janeEmail = "jane.doe@example.com"

// captureSender records delivered codes per target instead of sending them.
type captureSender struct {
	mu    sync.Mutex
	codes map[string]string
}

func (s *captureSender) Send(_ context.Context, target, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.codes == nil {
		s.codes = make(map[string]string)
	}
	s.codes[target] = code
	return nil
}

// LastCode returns the most recent code delivered to target.
func (s *captureSender) LastCode(t *testing.T, target string) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[target]
	require.True(t, ok, "no code was sent to %s", target)
	return code
}

// testService is the in-process service under test plus the hooks the tests
// drive it through.
type testService struct {
	Client *flowsdk.Client
	Sender *captureSender
}

// setupService starts the full HTTP service in-process and returns an SDK
// client pointed at it. The interpreter worker runs on a tight interval so
// dream interpretations resolve within test timeouts.
func setupService(t *testing.T) *testService {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	tokens := token.NewManager("e2e-test-secret", "soloday-test", time.Hour)
	sender := &captureSender{}

	router := httpapi.NewRouter(tokens, "e2e", st, logger)
	router.ChallengeService = &service.ChallengeService{Store: st, Tokens: tokens, Sender: sender}
	router.ProfileService = &service.ProfileService{Store: st}
	router.DreamService = &service.DreamService{Store: st}
	router.ApplyRoutes()

	interpreter := service.NewInterpreterService(st, logger, 20*time.Millisecond)
	interpreter.Start()
	t.Cleanup(interpreter.Stop)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testService{
		Client: flowsdk.NewClient(server.URL),
		Sender: sender,
	}
}

// enterCode types a six-digit code into the controller one digit at a time,
// returning the verification result triggered by the final digit.
func enterCode(t *testing.T, ctx context.Context, ctrl *flowsdk.ChallengeController, code string) *flowsdk.VerifyResult {
	t.Helper()
	require.Len(t, code, flowsdk.CodeLength)

	var result *flowsdk.VerifyResult
	for i, r := range code {
		result = ctrl.EnterDigit(ctx, i, string(r))
	}
	require.NotNil(t, result, "entering the final digit should auto-submit")
	return result
}

// startSignup drives a signup flow up to the awaiting-code stage and requests
// the first code.
func startSignup(t *testing.T, ctx context.Context, svc *testService, target, username string) (*flowsdk.SignupFlow, *flowsdk.ChallengeController, *flowsdk.SessionStore) {
	t.Helper()

	flow := flowsdk.NewSignupFlow()
	require.NoError(t, flow.ChooseMethod(flowsdk.ContactEmail))
	require.NoError(t, flow.SubmitContact(target))
	require.NoError(t, flow.SubmitDetails("Jane", "Doe", "1995-04-12"))

	available, err := svc.Client.CheckUsername(ctx, username)
	require.NoError(t, err)
	require.True(t, available, "username %s should be available", username)
	require.NoError(t, flow.SubmitUsername(username, flowsdk.AvailabilityAvailable))

	sessions := flowsdk.NewSessionStore()
	ctrl := flowsdk.NewChallengeController(svc.Client, sessions, flow)
	ctrl.TickInterval = time.Millisecond
	t.Cleanup(ctrl.Close)

	require.NoError(t, ctrl.RequestCode(ctx, target))
	return flow, ctrl, sessions
}

// startLogin requests a login code for an existing or unknown contact.
func startLogin(t *testing.T, ctx context.Context, svc *testService, target string) (*flowsdk.ChallengeController, *flowsdk.SessionStore) {
	t.Helper()

	sessions := flowsdk.NewSessionStore()
	ctrl := flowsdk.NewChallengeController(svc.Client, sessions, nil)
	ctrl.TickInterval = time.Millisecond
	t.Cleanup(ctrl.Close)

	require.NoError(t, ctrl.RequestCode(ctx, target))
	return ctrl, sessions
}

// signupUser completes a full signup and returns the session store holding the
// authenticated user.
func signupUser(t *testing.T, ctx context.Context, svc *testService, target, username string) *flowsdk.SessionStore {
	t.Helper()

	flow, ctrl, sessions := startSignup(t, ctx, svc, target, username)
	result := enterCode(t, ctx, ctrl, svc.Sender.LastCode(t, target))
	require.Equal(t, flowsdk.OutcomeCommitted, result.Outcome)
	require.Equal(t, flowsdk.StageCommitted, flow.Stage())
	require.True(t, sessions.IsAuthenticated())
	return sessions
}
