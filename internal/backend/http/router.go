package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/soloday/soloday/internal/backend/service"
	"github.com/soloday/soloday/internal/backend/store"
	"github.com/soloday/soloday/internal/backend/token"
	"github.com/soloday/soloday/pkg/httpx"
	"github.com/soloday/soloday/pkg/slogx"

	_ "github.com/soloday/soloday/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	tokens       *token.Manager
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	ChallengeService *service.ChallengeService
	ProfileService   *service.ProfileService
	DreamService     *service.DreamService
}

func NewRouter(
	tokens *token.Manager,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		tokens:       tokens,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerCodes()
	r.registerProfiles()
	r.registerUsernames()
	r.registerDreams()
	r.registerSession()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Soloday API
//	@version		0.1.0
//	@description	Code-gated signup and authentication for the Soloday app, plus dream
//	@description	recording with asynchronously computed interpretations.
//
//	@contact.name				Soloday Team
//	@contact.url				https://github.com/soloday/soloday
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token issued by code verification. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerCodes() {
	sendHandler := &SendCodeHandler{ChallengeService: r.ChallengeService}
	verifyHandler := &VerifyCodeHandler{ChallengeService: r.ChallengeService}

	// Code issuance and verification are the brute-forceable surface, so
	// both sit behind the strict per-IP limit.
	r.Mux.Handle("POST /v1/codes",
		httpx.Chain(sendHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/codes/verify",
		httpx.Chain(verifyHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerProfiles() {
	createHandler := &CreateProfileHandler{ProfileService: r.ProfileService}
	getHandler := &GetProfileHandler{ProfileService: r.ProfileService}
	identityHandler := &IdentityProfileHandler{ProfileService: r.ProfileService}

	r.Mux.Handle("POST /v1/profiles",
		httpx.Chain(createHandler,
			AuthnMiddleware(r.tokens, r.store),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/profiles/{id}",
		httpx.Chain(getHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/identities/{id}/profile",
		httpx.Chain(identityHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerUsernames() {
	h := &UsernameHandler{ProfileService: r.ProfileService}

	// Hit on every debounced keystroke, so the limit is lenient.
	r.Mux.Handle("GET /v1/usernames/{name}",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerDreams() {
	createHandler := &CreateDreamHandler{DreamService: r.DreamService}
	getHandler := &GetDreamHandler{DreamService: r.DreamService}

	r.Mux.Handle("POST /v1/dreams",
		httpx.Chain(createHandler,
			AuthnMiddleware(r.tokens, r.store),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Polled every 3 seconds while an interpretation is pending.
	r.Mux.Handle("GET /v1/dreams/{id}",
		httpx.Chain(getHandler,
			AuthnMiddleware(r.tokens, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSession() {
	h := &SignOutHandler{ChallengeService: r.ChallengeService}

	r.Mux.Handle("POST /v1/session/signout",
		httpx.Chain(h,
			AuthnMiddleware(r.tokens, r.store),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
