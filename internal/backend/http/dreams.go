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

func dreamToResponse(d domain.Dream) flowsdk.DreamResponse {
	return flowsdk.DreamResponse{
		ID:              d.ID,
		Content:         d.Content,
		Interpretation:  d.Interpretation,
		UniquenessScore: d.UniquenessScore,
		Interpreted:     d.Interpreted(),
		CreatedAt:       d.CreatedAt,
	}
}

type CreateDreamHandler struct {
	DreamService *service.DreamService
}

// ServeHTTP records a new dream.
//
//	@Summary		Record a dream
//	@Description	Stores the dream with a placeholder interpretation. The interpreter worker
//	@Description	fills in the real one asynchronously; poll the dream until interpreted.
//	@Tags			Dreams
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		flowsdk.CreateDreamRequest	true	"dream content"
//	@Success		201		{object}	flowsdk.DreamResponse
//	@Failure		400		{object}	flowsdk.ErrorResponse	"empty content"
//	@Failure		401		{object}	flowsdk.ErrorResponse
//	@Failure		404		{object}	flowsdk.ErrorResponse	"identity has no profile"
//	@Router			/v1/dreams [post].
func (h *CreateDreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identityID := identityFromContext(ctx)
	if identityID == "" {
		flowsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req flowsdk.CreateDreamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		flowsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	dream, err := h.DreamService.CreateDream(ctx, identityID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyDream):
			flowsdk.ErrInvalidRequest.WriteError(w)
		case errors.Is(err, service.ErrProfileNotFound):
			flowsdk.ErrProfileNotFound.WriteError(w)
		default:
			log.Error("failed to record dream", "identity_id", identityID, "err", err)
			flowsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, dreamToResponse(dream))
}

type GetDreamHandler struct {
	DreamService *service.DreamService
}

// ServeHTTP fetches the current value of a dream.
//
//	@Summary		Get dream
//	@Tags			Dreams
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"dream id"
//	@Success		200	{object}	flowsdk.DreamResponse
//	@Failure		404	{object}	flowsdk.ErrorResponse
//	@Router			/v1/dreams/{id} [get].
func (h *GetDreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identityID := identityFromContext(ctx)
	if identityID == "" {
		flowsdk.ErrInvalidToken.WriteError(w)
		return
	}

	dream, err := h.DreamService.GetDream(ctx, identityID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrDreamNotFound) {
			flowsdk.ErrDreamNotFound.WriteError(w)
			return
		}
		log.Error("failed to load dream", "err", err)
		flowsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, dreamToResponse(dream))
}
