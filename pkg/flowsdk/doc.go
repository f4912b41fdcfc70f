/*
Package flowsdk provides a client SDK for the Soloday service and the staged
signup workflow built on top of it.

# Overview

The package is organized around two layers:

  - Client / Session: a typed wrapper over the service's HTTP contract.
    Client covers unauthenticated operations (requesting codes, checking
    usernames, fetching public profiles); a successful code verification
    returns a Session for authenticated operations (creating a profile,
    recording dreams, signing out).
  - Workflow components: SignupFlow (staged form state machine),
    AvailabilityChecker (debounced username availability),
    ChallengeController (one-time code entry with countdown-gated resend),
    Poller (bounded polling for asynchronously computed results), and
    SessionStore (process-wide identity state).

Create a Client to start a flow:

	client := flowsdk.NewClient("https://api.soloday.app")

	flow := flowsdk.NewSignupFlow()
	flow.ChooseMethod(flowsdk.ContactEmail)
	// ... accumulate stages, then hand off to the challenge controller

	ctrl := flowsdk.NewChallengeController(client, sessions, flow)
	ctrl.RequestCode(ctx, "jane@example.com")

The challenge controller owns the boundary between backend error shapes and
user-facing outcomes: remote failures never propagate raw to callers.
*/
package flowsdk
