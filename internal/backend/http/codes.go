package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/soloday/soloday/internal/backend/domain"
	"github.com/soloday/soloday/internal/backend/service"
	"github.com/soloday/soloday/pkg/flowsdk"
	"github.com/soloday/soloday/pkg/httpx"
	"github.com/soloday/soloday/pkg/slogx"
)

type SendCodeHandler struct {
	ChallengeService *service.ChallengeService
}

// ServeHTTP handles verification code requests.
//
//	@Summary		Request a verification code
//	@Description	Sends a one-time code to the target contact. A profile object marks the
//	@Description	signup path: its fields are stashed with the challenge until verification.
//	@Tags			Codes
//	@Accept			json
//	@Param			request	body	flowsdk.SendCodeRequest	true	"target and optional pending profile"
//	@Success		202	"code dispatched"
//	@Failure		400	{object}	flowsdk.ErrorResponse	"malformed request"
//	@Failure		429	{object}	flowsdk.ErrorResponse	"per-target throttle tripped"
//	@Router			/v1/codes [post].
func (h *SendCodeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req flowsdk.SendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Target == "" {
		flowsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	var pending *domain.PendingProfile
	if req.Profile != nil {
		pending = &domain.PendingProfile{
			FirstName:   req.Profile.FirstName,
			LastName:    req.Profile.LastName,
			Username:    req.Profile.Username,
			DateOfBirth: req.Profile.DateOfBirth,
		}
	}

	if err := h.ChallengeService.SendCode(ctx, req.Target, pending); err != nil {
		if errors.Is(err, service.ErrTooManyCodeRequests) {
			flowsdk.ErrRateLimited.WriteError(w)
			return
		}
		log.Error("failed to send code", "err", err)
		flowsdk.ErrServerError.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

type VerifyCodeHandler struct {
	ChallengeService *service.ChallengeService
}

// ServeHTTP handles code verification.
//
//	@Summary		Verify a code
//	@Description	Redeems a delivered code for a bearer token. The identity is created on
//	@Description	first verification; has_profile tells the client whether signup finished.
//	@Tags			Codes
//	@Accept			json
//	@Produce		json
//	@Param			request	body		flowsdk.VerifyCodeRequest	true	"target and code"
//	@Success		200		{object}	flowsdk.VerifyCodeResponse
//	@Failure		401		{object}	flowsdk.ErrorResponse	"wrong code"
//	@Failure		404		{object}	flowsdk.ErrorResponse	"no active challenge"
//	@Failure		429		{object}	flowsdk.ErrorResponse	"attempt bound exhausted"
//	@Router			/v1/codes/verify [post].
func (h *VerifyCodeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req flowsdk.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Target == "" || req.Code == "" {
		flowsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	result, err := h.ChallengeService.VerifyCode(ctx, req.Target, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveChallenge):
			flowsdk.ErrNoActiveChallenge.WriteError(w)
		case errors.Is(err, service.ErrInvalidCode):
			flowsdk.ErrInvalidCode.WriteError(w)
		case errors.Is(err, service.ErrTooManyAttempts):
			flowsdk.ErrTooManyAttempts.WriteError(w)
		default:
			log.Error("failed to verify code", "err", err)
			flowsdk.ErrServerError.WriteError(w)
		}
		return
	}

	resp := flowsdk.VerifyCodeResponse{
		IdentityID: result.IdentityID,
		Token:      result.Token,
		HasProfile: result.HasProfile,
	}
	if result.Pending != nil {
		resp.Profile = &flowsdk.PendingProfileParams{
			FirstName:   result.Pending.FirstName,
			LastName:    result.Pending.LastName,
			Username:    result.Pending.Username,
			DateOfBirth: result.Pending.DateOfBirth,
		}
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, resp)
}
