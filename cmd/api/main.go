package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emilhuseynli/cardpay-backend/internal/api"
	"github.com/emilhuseynli/cardpay-backend/internal/auth"
	"github.com/emilhuseynli/cardpay-backend/internal/config"
	"github.com/emilhuseynli/cardpay-backend/internal/db"
	"github.com/emilhuseynli/cardpay-backend/internal/ledger"
	"github.com/emilhuseynli/cardpay-backend/internal/logger"
	"github.com/emilhuseynli/cardpay-backend/internal/metrics"
	"github.com/emilhuseynli/cardpay-backend/internal/middleware"
	"github.com/emilhuseynli/cardpay-backend/internal/repository/postgres"
	"github.com/emilhuseynli/cardpay-backend/internal/services"
	"github.com/emilhuseynli/cardpay-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	userSvc := services.NewUserService(repos.Users, repos.Accounts, tm)
	engine := ledger.NewEngine(repos.Ledger, repos.Accounts, repos.Transactions, repos.AuditLogs, wp)
	authmw := middleware.NewAuthMiddleware(tm, repos.Accounts)

	r := api.NewRouter(cfg, userSvc, engine, authmw)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
