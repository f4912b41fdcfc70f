package http

import (
	"net/http"

	"github.com/soloday/soloday/internal/backend/service"
	"github.com/soloday/soloday/pkg/flowsdk"
	"github.com/soloday/soloday/pkg/slogx"
)

type SignOutHandler struct {
	ChallengeService *service.ChallengeService
}

// ServeHTTP revokes the presented token. Idempotent.
//
//	@Summary		Sign out
//	@Description	Revokes the bearer token's session so it is rejected from now on.
//	@Tags			Session
//	@Security		BearerAuth
//	@Success		204	"session revoked"
//	@Failure		401	{object}	flowsdk.ErrorResponse
//	@Router			/v1/session/signout [post].
func (h *SignOutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.ChallengeService.SignOut(ctx, bearerFromRequest(r)); err != nil {
		log.Error("failed to sign out", "err", err)
		flowsdk.ErrServerError.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
