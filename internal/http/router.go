package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"furnipay/internal/http/deduction"
	"furnipay/internal/http/export"
	"furnipay/internal/http/importcsv"
	"furnipay/internal/http/matching"
	"furnipay/internal/http/order"
	"furnipay/internal/http/payment"
	"furnipay/internal/http/worker"
)

func New(
	ordersV1 *order.Handler,
	paymentsV1 *payment.Handler,
	workersV1 *worker.Handler,
	deductionsV1 *deduction.Handler,
	importV1 *importcsv.Handler,
	matchingV1 *matching.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			ordersV1.Routes(r)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			paymentsV1.Routes(r)
		})

		r.Route("/workers", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			workersV1.Routes(r)
		})

		r.Route("/deductions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			deductionsV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)

		r.Route("/matching", func(r chi.Router) {
			matchingV1.Routes(r)
		})

		r.Route("/export", exportV1.Routes)
	})

	return router
}
