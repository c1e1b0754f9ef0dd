package http

import (
	"net/http"

	"github.com/cryptokey/dashboard-api/internal/application/account"
	"github.com/cryptokey/dashboard-api/internal/application/dashboard"
	"github.com/cryptokey/dashboard-api/internal/application/dispatch"
	"github.com/cryptokey/dashboard-api/internal/config"
	"github.com/cryptokey/dashboard-api/internal/infrastructure/identity"
	jwtinfra "github.com/cryptokey/dashboard-api/internal/infrastructure/jwt"
	"github.com/cryptokey/dashboard-api/internal/transport/http/handler"
	appmiddleware "github.com/cryptokey/dashboard-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         UserRepository
	EmailLogRepo     EmailLogRepository
	Mailer           dispatch.Mailer
	IdentityProvider identity.Provider
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to public send and auth endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	dispatchSvc := dispatch.NewService(deps.Mailer, deps.UserRepo, deps.EmailLogRepo)
	accountSvc := account.NewService(deps.IdentityProvider, deps.UserRepo, dispatchSvc, deps.JWTProvider)
	dashboardSvc := dashboard.NewService(deps.UserRepo, deps.EmailLogRepo, dispatchSvc)

	healthH := handler.NewHealthHandler()
	sendH := handler.NewSendHandler(dispatchSvc)
	authH := handler.NewAuthHandler(accountSvc)
	usersH := handler.NewUsersHandler(dashboardSvc)

	r.Route("/api", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/send", sendH.Send)
		r.With(sensitiveRL.Limit).Post("/send/welcome", sendH.Welcome)
		r.With(sensitiveRL.Limit).Post("/send/status", sendH.Status)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/auth/register", authH.Register)
		r.With(sensitiveRL.Limit).Post("/auth/sessions", authH.Sessions)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/users", usersH.List)
			r.Get("/users/{userID}/emails", usersH.Emails)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole("admin"))

				r.Post("/users/resend-welcome", usersH.ResendWelcome)
			})
		})
	})

	return r
}
