package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/veligame/adminpanel/internal/panel/service"
	"github.com/veligame/adminpanel/internal/panel/store"
	"github.com/veligame/adminpanel/pkg/httpx"
	"github.com/veligame/adminpanel/pkg/jwtx"
	"github.com/veligame/adminpanel/pkg/slogx"

	_ "github.com/veligame/adminpanel/api/panel" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	configurations store.Configurations

	AuthService          *service.AuthService
	UserService          *service.UserService
	ConfigurationService *service.ConfigurationService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	configurations store.Configurations,
	cors httpx.CORSConfig,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:            http.NewServeMux(),
		verifier:       verifier,
		buildVersion:   buildVersion,
		startTime:      time.Now(),
		store:          st,
		configurations: configurations,
		logger:         logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORSMiddleware(cors),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerConfigurations()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
	r.Mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Game Admin Panel API
//	@version		0.1.0
//	@description	Backend for the game administration panel: account login and
//	@description	registration with short-lived JWT access tokens, user record
//	@description	management, and building-configuration tuning data.
//	@description
//	@description	All tokens are signed using HS256 (HMAC-SHA256) with a shared secret.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	loginHandler := &LoginHandler{AuthService: r.AuthService}
	registerHandler := &RegisterHandler{AuthService: r.AuthService}

	// Both routes are exempt from the bearer guard. Strict rate limit by
	// IP to slow down credential stuffing and bulk signups.
	r.Mux.Handle("POST /api/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	secure := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	// The frontend consumes these at /users; /api/users is kept as an
	// alias so callers using the prefixed form keep working.
	for _, prefix := range []string{"", "/api"} {
		r.Mux.Handle("GET "+prefix+"/users", secure(h.HandleList))
		r.Mux.Handle("GET "+prefix+"/users/{id}", secure(h.HandleGet))
		r.Mux.Handle("POST "+prefix+"/users", secure(h.HandleCreate))
		r.Mux.Handle("PUT "+prefix+"/users/{id}", secure(h.HandleUpdate))
		r.Mux.Handle("DELETE "+prefix+"/users/{id}", secure(h.HandleDelete))
	}
}

func (r *Router) registerConfigurations() {
	h := &ConfigurationsHandler{ConfigurationService: r.ConfigurationService}

	secure := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /api/configurations", secure(h.HandleList))
	r.Mux.Handle("POST /api/configurations", secure(h.HandleCreate))
	r.Mux.Handle("DELETE /api/configurations/{id}", secure(h.HandleDelete))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.configurations),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
