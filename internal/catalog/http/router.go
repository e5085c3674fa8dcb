package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/openshelf/catalog/internal/catalog/domain"
	"github.com/openshelf/catalog/internal/catalog/service"
	"github.com/openshelf/catalog/pkg/httpx"
	"github.com/openshelf/catalog/pkg/jwtx"
	"github.com/openshelf/catalog/pkg/slogx"

	_ "github.com/openshelf/catalog/api" // Swagger docs
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

	AuthService    *service.AuthService
	ProductService *service.ProductService
}

func NewRouter(verifier jwtx.Verifier, buildVersion string, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProducts()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			OpenShelf Catalog API
//	@version		0.1.0
//	@description	Product catalog service with JWT session authentication and
//	@description	server-side token revocation.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /login - strict rate limit (authentication attempts)
	loginHandler := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /logout - deliberately unauthenticated: the whole point is that
	// an expired or otherwise unverifiable token can still be revoked.
	logoutHandler := &LogoutHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerProducts() {
	h := &ProductHandler{ProductService: r.ProductService}

	// Reads are public.
	r.Mux.Handle("GET /products",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /products/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// Writes require a live (non-revoked) session of any role.
	authed := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.BearerAuth(r.verifier, r.AuthService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /products", authed(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("PUT /products/{id}", authed(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("DELETE /products/{id}", authed(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerAdmin() {
	r.Mux.Handle("GET /admin",
		httpx.Chain(AdminHandler(),
			httpx.BearerAuth(r.verifier, r.AuthService),
			httpx.RequireRole(domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /check",
		httpx.Chain(CheckHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
