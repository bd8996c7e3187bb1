package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/api-sage/deposit-ledger/internal/adapter/http/controller"
	"github.com/api-sage/deposit-ledger/internal/adapter/http/middleware"
	"github.com/api-sage/deposit-ledger/internal/adapter/http/router"
	"github.com/api-sage/deposit-ledger/internal/adapter/repository/postgres"
	"github.com/api-sage/deposit-ledger/internal/config"
	"github.com/api-sage/deposit-ledger/internal/observability/metrics"
	"github.com/api-sage/deposit-ledger/internal/security/auth"
	"github.com/api-sage/deposit-ledger/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	defaultPlans, err := config.DefaultPlans()
	if err != nil {
		log.Fatalf("load default plans: %v", err)
	}
	if err := postgres.SeedDefaultPlans(ctx, db, defaultPlans); err != nil {
		log.Fatalf("seed default plans: %v", err)
	}

	clientRepo := postgres.NewClientRepository(db)
	planRepo := postgres.NewDepositPlanRepository(db)
	depositRepo := postgres.NewDepositRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	tokens := auth.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL)

	clientService := services.NewClientService(clientRepo)
	planService := services.NewDepositPlanService(planRepo)
	depositService := services.NewDepositService(depositRepo, clientRepo, planRepo, transactionRepo)
	analyticsService := services.NewAnalyticsService(depositRepo)
	portalService := services.NewPortalService(clientRepo, tokens)

	adminControllers := []router.RouteRegistrar{
		controller.NewClientController(clientService),
		controller.NewDepositPlanController(planService),
		controller.NewDepositController(depositService),
		controller.NewAnalyticsController(analyticsService),
	}
	portalController := controller.NewPortalController(portalService, depositService, planService)

	mux := router.New(
		adminControllers,
		portalController,
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey),
		middleware.BearerAuth(tokens),
	)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      metrics.HTTPMetricsMiddleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("deposit ledger listening on %s", cfg.ListenAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server stopped: %v", err)
	}
}
