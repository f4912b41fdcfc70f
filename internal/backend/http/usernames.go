package http

import (
	"net/http"

	"github.com/soloday/soloday/internal/backend/service"
	"github.com/soloday/soloday/pkg/flowsdk"
	"github.com/soloday/soloday/pkg/httpx"
	"github.com/soloday/soloday/pkg/slogx"
)

type UsernameHandler struct {
	ProfileService *service.ProfileService
}

// ServeHTTP answers username availability lookups.
//
//	@Summary		Check username availability
//	@Description	Reports whether the normalized form of the name is unclaimed. Names under
//	@Description	3 normalized characters are never available.
//	@Tags			Usernames
//	@Produce		json
//	@Param			name	path		string	true	"candidate username"
//	@Success		200		{object}	flowsdk.UsernameAvailabilityResponse
//	@Router			/v1/usernames/{name} [get].
func (h *UsernameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	available, err := h.ProfileService.UsernameAvailable(ctx, r.PathValue("name"))
	if err != nil {
		log.Error("failed to check username", "err", err)
		flowsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, flowsdk.UsernameAvailabilityResponse{Available: available})
}
