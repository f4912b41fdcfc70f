package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/soloday/soloday/internal/backend/store"
	"github.com/soloday/soloday/internal/backend/token"
	"github.com/soloday/soloday/pkg/cryptox"
	"github.com/soloday/soloday/pkg/flowsdk"
	"github.com/soloday/soloday/pkg/httpx"
	"github.com/soloday/soloday/pkg/slogx"
)

// AuthnMiddleware verifies the bearer token and confirms the session behind
// it has not been revoked or expired. The identity id is injected into the
// request context for downstream handlers.
func AuthnMiddleware(tokens *token.Manager, st store.Store) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				flowsdk.ErrInvalidToken.WriteError(w)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			identityID, err := tokens.Verify(raw)
			if err != nil {
				log.Warn("token verification failed", "err", err)
				flowsdk.ErrInvalidToken.WriteError(w)
				return
			}

			// Signed-out tokens stay cryptographically valid until expiry;
			// the session record is what makes revocation stick.
			session, err := st.AuthSessions().GetAuthSessionByTokenHash(ctx, cryptox.FingerprintToken(raw))
			if err != nil || !session.Active(time.Now().UTC()) || session.IdentityID != identityID {
				flowsdk.ErrInvalidToken.WriteError(w)
				return
			}

			ctx = context.WithValue(ctx, httpx.CtxKeyIdentityID, identityID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// identityFromContext returns the authenticated identity id, or empty when
// the request skipped the authn middleware.
func identityFromContext(ctx context.Context) string {
	id, _ := ctx.Value(httpx.CtxKeyIdentityID).(string)
	return id
}

// bearerFromRequest extracts the raw bearer token. Only valid behind the
// authn middleware.
func bearerFromRequest(r *http.Request) string {
	return strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer"))
}
