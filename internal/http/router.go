package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hannahwr/nestcare/internal/http/auth"
	"github.com/hannahwr/nestcare/internal/http/billing"
	"github.com/hannahwr/nestcare/internal/http/expense"
	"github.com/hannahwr/nestcare/internal/http/family"
	"github.com/hannahwr/nestcare/internal/http/offering"
	"github.com/hannahwr/nestcare/internal/http/report"
	"github.com/hannahwr/nestcare/internal/http/schedule"
	"github.com/hannahwr/nestcare/internal/http/session"
)

func New(
	authV1 *auth.Handler,
	familiesV1 *family.Handler,
	offeringsV1 *offering.Handler,
	schedulesV1 *schedule.Handler,
	sessionsV1 *session.Handler,
	expensesV1 *expense.Handler,
	paymentsV1 *billing.Handler,
	reportsV1 *report.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(authV1.Middleware)

			r.Route("/families", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				familiesV1.Routes(r)
				paymentsV1.UnpaidRoutes(r)
			})

			r.Route("/offerings", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				offeringsV1.Routes(r)
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				schedulesV1.Routes(r)
			})

			r.Route("/unavailabilities", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				schedulesV1.UnavailabilityRoutes(r)
			})

			r.Route("/sessions", func(r chi.Router) {
				// Multipart CSV upload lives on this subtree, so no
				// content-type restriction here.
				sessionsV1.Routes(r)
				expensesV1.SessionRoutes(r)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				expensesV1.Routes(r)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				paymentsV1.Routes(r)
			})

			r.Route("/reports", func(r chi.Router) {
				reportsV1.Routes(r)
			})
		})
	})

	return router
}
