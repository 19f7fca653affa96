/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. zap logger: Structured request logging
  4. CORS:       Cross-origin requests for frontend

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/companies", func(r chi.Router) {
			r.Get("/", h.ListCompanies)
			r.Post("/", h.CreateCompany)
			r.Get("/{id}", h.GetCompany)
			r.Put("/{id}", h.UpdateCompany)
			r.Post("/{id}/archive", h.ArchiveCompany)
			r.Get("/{id}/deletable", h.CompanyDeletable)
			r.Get("/{id}/balance", h.CompanyBalance)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", h.ListBankAccounts)
			r.Post("/", h.CreateBankAccount)
			r.Get("/{id}", h.GetBankAccount)
			r.Put("/{id}", h.UpdateBankAccount)
			r.Post("/{id}/archive", h.ArchiveBankAccount)
			r.Get("/{id}/deletable", h.BankAccountDeletable)
			r.Get("/{id}/balance", h.BankAccountBalance)
		})

		r.Route("/cards", func(r chi.Router) {
			r.Get("/", h.ListCreditCards)
			r.Post("/", h.CreateCreditCard)
			r.Get("/{id}", h.GetCreditCard)
			r.Put("/{id}", h.UpdateCreditCard)
			r.Post("/{id}/archive", h.ArchiveCreditCard)
			r.Get("/{id}/deletable", h.CreditCardDeletable)
			r.Get("/{id}/invoice", h.CreditCardInvoice)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.ListCategories)
			r.Post("/", h.CreateCategory)
			r.Get("/{id}", h.GetCategory)
			r.Put("/{id}", h.UpdateCategory)
			r.Post("/{id}/archive", h.ArchiveCategory)
			r.Get("/{id}/deletable", h.CategoryDeletable)
		})

		r.Route("/providers", func(r chi.Router) {
			r.Get("/", h.ListServiceProviders)
			r.Post("/", h.CreateServiceProvider)
			r.Get("/{id}", h.GetServiceProvider)
			r.Put("/{id}", h.UpdateServiceProvider)
			r.Post("/{id}/archive", h.ArchiveServiceProvider)
			r.Get("/{id}/deletable", h.ServiceProviderDeletable)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", h.ListTransactions)
			r.Post("/", h.CreateTransaction)
			r.Post("/purchases", h.RecordCardPurchase)
			r.Post("/adjustments", h.RecordAdjustment)
			r.Get("/{id}", h.GetTransaction)
			r.Put("/{id}", h.UpdateTransaction)
			r.Delete("/{id}", h.DeleteTransaction)
			r.Post("/{id}/confirm", h.ConfirmProvision)
		})

		r.Route("/invoice-payments", func(r chi.Router) {
			r.Get("/", h.ListInvoicePayments)
			r.Post("/", h.CreateInvoicePayment)
		})

		r.Get("/summary", h.GetSummary)
		r.Get("/audit", h.RunAudit)

		r.Route("/closings", func(r chi.Router) {
			r.Get("/", h.ListMonthClosings)
			r.Get("/{yearMonth}/checklist", h.MonthChecklist)
			r.Post("/{yearMonth}/close", h.CloseMonth)
			r.Post("/{yearMonth}/reopen", h.ReopenMonth)
		})

		// Dev helper; resets the store
		r.Post("/seed", h.SeedData)
	})

	return r
}

// requestLogger emits one structured line per completed request.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
