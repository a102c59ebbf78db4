package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/emilhuseynli/cardpay-backend/internal/api/handlers"
	"github.com/emilhuseynli/cardpay-backend/internal/config"
	"github.com/emilhuseynli/cardpay-backend/internal/ledger"
	"github.com/emilhuseynli/cardpay-backend/internal/metrics"
	"github.com/emilhuseynli/cardpay-backend/internal/middleware"
	"github.com/emilhuseynli/cardpay-backend/internal/services"
)

func NewRouter(cfg config.Config, us *services.UserService, eng *ledger.Engine, authmw *middleware.AuthMiddleware) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: cfg.CORSOrigin != "*",
	}))

	authH := handlers.NewAuthHandler(us)
	ledgerH := handlers.NewLedgerHandler(eng, us)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/signup", authH.Signup)
		r.Post("/auth/login", authH.Login)
		r.Post("/auth/refresh", authH.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(authmw.Auth)
			r.Get("/me", ledgerH.Me)
			r.Get("/balance", ledgerH.Balance)
			r.Post("/transfers", ledgerH.Transfer)
			r.Post("/topups", ledgerH.TopUp)
			r.Get("/transactions", ledgerH.List)
			r.Get("/transactions/totals", ledgerH.Totals)
		})
	})

	return r
}
