package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/yeonhwa/bloomdesk/internal/http/auth"
	"github.com/yeonhwa/bloomdesk/internal/http/customer"
	"github.com/yeonhwa/bloomdesk/internal/http/deposit"
	"github.com/yeonhwa/bloomdesk/internal/http/expense"
	"github.com/yeonhwa/bloomdesk/internal/http/photocard"
	"github.com/yeonhwa/bloomdesk/internal/http/push"
	"github.com/yeonhwa/bloomdesk/internal/http/report"
	"github.com/yeonhwa/bloomdesk/internal/http/reservation"
	"github.com/yeonhwa/bloomdesk/internal/http/sale"
	"github.com/yeonhwa/bloomdesk/internal/http/settings"
	"github.com/yeonhwa/bloomdesk/internal/http/stats"
	"github.com/yeonhwa/bloomdesk/internal/http/upload"
)

type Handlers struct {
	Sales        *sale.Handler
	Customers    *customer.Handler
	Expenses     *expense.Handler
	Reservations *reservation.Handler
	Deposits     *deposit.Handler
	PhotoCards   *photocard.Handler
	Settings     *settings.Handler
	Stats        *stats.Handler
	Push         *push.Handler
	Reports      *report.Handler
	Uploads      *upload.Handler
}

// New assembles the full API. Reads are open; mutations require a verified
// bearer token.
func New(h Handlers, verifier *auth.Verifier, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(verifier.Middleware)

	authed := auth.RequireAuth

	router.Route("/api/v1", func(r chi.Router) {
		jsonOnly := middleware.AllowContentType("application/json")

		r.Route("/sales", func(r chi.Router) {
			r.Use(jsonOnly)
			h.Sales.Routes(r, authed)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Use(jsonOnly)
			h.Customers.Routes(r, authed)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Use(jsonOnly)
			h.Expenses.Routes(r, authed)
		})

		r.Route("/reservations", func(r chi.Router) {
			r.Use(jsonOnly)
			h.Reservations.Routes(r, authed)
		})

		r.Route("/deposits", func(r chi.Router) {
			r.Use(jsonOnly)
			h.Deposits.Routes(r, authed)
		})

		r.Route("/photo-cards", func(r chi.Router) {
			r.Use(jsonOnly)
			h.PhotoCards.Routes(r, authed)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Use(jsonOnly)
			h.Settings.Routes(r, authed)
		})

		r.Route("/stats", h.Stats.Routes)

		r.Route("/push", func(r chi.Router) {
			r.Use(jsonOnly)
			h.Push.Routes(r, authed)
		})

		r.Route("/reports", h.Reports.Routes)
	})

	// Photo uploads are multipart, photo reads are plain files; both live
	// outside the JSON-only API tree.
	router.Route("/photos", func(r chi.Router) {
		h.Uploads.Routes(r, authed)
	})

	return router
}
