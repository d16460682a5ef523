package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phone-auth-api/internal/application/verification"
	"github.com/phone-auth-api/internal/config"
	"github.com/phone-auth-api/internal/transport/http/handler"
	appmiddleware "github.com/phone-auth-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	// Cross-origin requests are allowed from any configured origin; the
	// signed identity token, not the request origin, is the security boundary.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	diagnostics := cfg.AppEnv != "production"

	svc := verification.NewService(verification.ServiceDeps{
		RecordRepo:  deps.VerificationRepo,
		UserRepo:    deps.UserRepo,
		CodeSender:  deps.CodeSender,
		TokenSigner: deps.JWTProvider,
		CodeTTL:     cfg.CodeTTL,
	})

	healthH := handler.NewHealthHandler()
	verificationH := handler.NewVerificationHandler(svc, diagnostics)
	userH := handler.NewUserHandler(deps.UserRepo, diagnostics)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)

		r.Post("/verification/request", verificationH.Request)
		r.Post("/verification/confirm", verificationH.Confirm)

		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.JWTProvider))
			r.Get("/users/me", userH.Me)
		})
	})

	return r
}
