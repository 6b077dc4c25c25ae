package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/wisker-app/wisker/internal/api/handlers"
	"github.com/wisker-app/wisker/internal/api/middleware"
	"github.com/wisker-app/wisker/internal/config"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/pkg/metrics"
)

// Handlers collects everything the router mounts
type Handlers struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Subscription *handlers.SubscriptionHandler
	Plan         *handlers.PlanHandler
	Promo        *handlers.PromoHandler
	Payment      *handlers.PaymentHandler
	Streak       *handlers.StreakHandler
	Subject      *handlers.SubjectHandler
	Note         *handlers.NoteHandler
	Tool         *handlers.ToolHandler
	Upload       *handlers.UploadHandler
	User         *handlers.UserHandler
}

// New builds the HTTP handler tree
func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.Server.FrontendURL))
	r.Use(metrics.Middleware())
	r.Use(middleware.RateLimit(50, 100))

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/swagger/*", httpSwagger.WrapHandler)
		r.Handle("/metrics", metrics.Handler())

		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)

		r.Post("/api/v1/auth/register", h.Auth.Register)
		r.Post("/api/v1/auth/login", h.Auth.Login)
		r.Post("/api/v1/auth/refresh", h.Auth.Refresh)
		r.Post("/api/v1/auth/logout", h.Auth.Logout)

		// Pricing page
		r.Get("/api/v1/plans", h.Plan.List)

		// Gateway events are authenticated by signature, not by JWT
		r.Post("/api/v1/payments/webhook", h.Payment.Webhook)
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Auth.JWTSecret))

		r.Get("/api/v1/auth/me", h.Auth.Me)
		r.Delete("/api/v1/auth/me", h.Auth.DeleteAccount)

		r.Route("/api/v1/subscription", func(r chi.Router) {
			r.Get("/", h.Subscription.Get)
			r.Delete("/", h.Subscription.Cancel)
			r.Put("/plan", h.Subscription.UpdatePlan)
			r.Get("/limits/{type}", h.Subscription.GetLimit)
		})

		r.Route("/api/v1/payments", func(r chi.Router) {
			r.Post("/checkout", h.Payment.Checkout)
			r.Get("/sessions/{id}", h.Payment.VerifySession)
		})

		r.Post("/api/v1/promo/validate", h.Promo.Validate)

		r.Route("/api/v1/streak", func(r chi.Router) {
			r.Get("/", h.Streak.Get)
			r.Post("/activity", h.Streak.Record)
		})

		r.Route("/api/v1/subjects", func(r chi.Router) {
			r.Get("/", h.Subject.List)
			r.Post("/", h.Subject.Create)
			r.Get("/{id}", h.Subject.Get)
			r.Put("/{id}", h.Subject.Update)
			r.Delete("/{id}", h.Subject.Delete)
			r.Get("/{id}/notes", h.Note.ListBySubject)
		})

		r.Route("/api/v1/notes", func(r chi.Router) {
			r.Post("/", h.Note.Create)
			r.Get("/{id}", h.Note.Get)
			r.Put("/{id}", h.Note.Update)
			r.Delete("/{id}", h.Note.Delete)
			r.Post("/{id}/upload", h.Upload.Upload)
			r.Get("/{id}/tools", h.Tool.ListByNote)
		})

		r.Route("/api/v1/tools", func(r chi.Router) {
			r.Get("/", h.Tool.List)
			r.Post("/generate", h.Tool.Generate)
			r.Get("/{id}", h.Tool.Get)
			r.Delete("/{id}", h.Tool.Delete)
		})

		// Admin routes
		r.Route("/api/v1/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(cfg.Auth.AdminEmails))

			r.Get("/users", h.User.AdminList)

			r.Route("/plans", func(r chi.Router) {
				r.Get("/", h.Plan.AdminList)
				r.Post("/", h.Plan.AdminCreate)
				r.Put("/{type}", h.Plan.AdminUpdate)
				r.Delete("/{type}", h.Plan.AdminDelete)
			})

			r.Route("/promos", func(r chi.Router) {
				r.Get("/", h.Promo.AdminList)
				r.Post("/", h.Promo.AdminCreate)
				r.Put("/{code}", h.Promo.AdminUpdate)
				r.Delete("/{code}", h.Promo.AdminDelete)
			})
		})
	})

	return r
}
