// Package router wires the HTTP handlers onto a chi mux.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/adapter/http/handler"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/auth/domain"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/metrics"
)

type Handlers struct {
	Listings *handler.ListingHandler
	Auth     *handler.AuthHandler
	System   *handler.SystemHandler
}

func New(serviceName string, h Handlers, auth middleware.Authenticator, mm *metrics.MetricsManager, log *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.Logger(log.Named("http")))
	r.Use(middleware.Metrics(mm))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))

	r.Get("/healthz", h.System.HandleHealth)
	r.Get("/api/tips/current", h.System.HandleCurrentTip)

	SetupListingRoutes(r, h.Listings, auth, log)
	SetupAuthRoutes(r, h.Auth, auth, log)
	return r
}

func SetupListingRoutes(r chi.Router, h *handler.ListingHandler, auth middleware.Authenticator, log *logger.Logger) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalJWTAuth(auth, log))
		r.Get("/api/listings", h.HandleBrowse)
		r.Get("/api/listings/{id}", h.HandleGetListing)
		r.Get("/api/listings/{id}/contact", h.HandleContact)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(auth, log))
		r.Post("/api/listings", h.HandleCreateListing)
		r.Get("/api/me/listings", h.HandleMyListings)
		r.Post("/api/favorites/{id}", h.HandleToggleFavorite)
		r.Get("/api/favorites", h.HandleGetFavorites)

		r.With(middleware.RequireRole(domain.RoleAdmin)).
			Patch("/api/admin/listings/{id}/status", h.HandleSetStatus)
	})
}

func SetupAuthRoutes(r chi.Router, h *handler.AuthHandler, auth middleware.Authenticator, log *logger.Logger) {
	r.Post("/api/login", h.HandleLogin)
	r.Post("/api/auth/{provider}/start", h.HandleStartFlow)
	r.Get("/api/auth/{provider}/callback", h.HandleOAuthCallback)
	r.Get("/api/auth/verify", h.HandleVerify)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(auth, log))
		r.Get("/api/auth/me", h.HandleMe)
		r.Post("/api/auth/logout", h.HandleLogout)
	})
}
