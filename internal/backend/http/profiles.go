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

func profileToResponse(p domain.Profile) flowsdk.ProfileResponse {
	return flowsdk.ProfileResponse{
		ID:          p.ID,
		IdentityID:  p.IdentityID,
		Username:    p.Username,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       p.Email,
		DateOfBirth: p.DateOfBirth,
		CreatedAt:   p.CreatedAt,
	}
}

type CreateProfileHandler struct {
	ProfileService *service.ProfileService
}

// ServeHTTP creates the profile for the authenticated identity.
//
//	@Summary		Create profile
//	@Description	Completes signup for a verified identity. The username must be unique;
//	@Description	a race lost to another signup returns the username_taken code.
//	@Tags			Profiles
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		flowsdk.CreateProfileRequest	true	"profile fields"
//	@Success		201		{object}	flowsdk.ProfileResponse
//	@Failure		400		{object}	flowsdk.ErrorResponse	"invalid username"
//	@Failure		401		{object}	flowsdk.ErrorResponse	"invalid or missing token"
//	@Failure		409		{object}	flowsdk.ErrorResponse	"username taken or profile exists"
//	@Router			/v1/profiles [post].
func (h *CreateProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identityID := identityFromContext(ctx)
	if identityID == "" {
		flowsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req flowsdk.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		flowsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	profile, err := h.ProfileService.CreateProfile(ctx, identityID, service.CreateProfileParams{
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameInvalid):
			flowsdk.ErrUsernameInvalid.WriteError(w)
		case errors.Is(err, service.ErrUsernameTaken):
			flowsdk.ErrUsernameTaken.WriteError(w)
		case errors.Is(err, service.ErrProfileExists):
			flowsdk.ErrProfileExists.WriteError(w)
		default:
			log.Error("failed to create profile", "identity_id", identityID, "err", err)
			flowsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, profileToResponse(profile))
}

type GetProfileHandler struct {
	ProfileService *service.ProfileService
}

// ServeHTTP fetches a profile by id.
//
//	@Summary		Get profile
//	@Tags			Profiles
//	@Produce		json
//	@Param			id	path		string	true	"profile id"
//	@Success		200	{object}	flowsdk.ProfileResponse
//	@Failure		404	{object}	flowsdk.ErrorResponse
//	@Router			/v1/profiles/{id} [get].
func (h *GetProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	profile, err := h.ProfileService.GetProfileByID(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			flowsdk.ErrProfileNotFound.WriteError(w)
			return
		}
		log.Error("failed to load profile", "err", err)
		flowsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, profileToResponse(profile))
}

type IdentityProfileHandler struct {
	ProfileService *service.ProfileService
}

// ServeHTTP fetches the profile belonging to an identity. A 404 here is the
// login path's signal that the identity never completed signup.
//
//	@Summary		Get profile by identity
//	@Tags			Profiles
//	@Produce		json
//	@Param			id	path		string	true	"identity id"
//	@Success		200	{object}	flowsdk.ProfileResponse
//	@Failure		404	{object}	flowsdk.ErrorResponse
//	@Router			/v1/identities/{id}/profile [get].
func (h *IdentityProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	profile, err := h.ProfileService.GetProfileByIdentity(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			flowsdk.ErrProfileNotFound.WriteError(w)
			return
		}
		log.Error("failed to load profile", "err", err)
		flowsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, profileToResponse(profile))
}
