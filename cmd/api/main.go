package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/thitipat-dev/petshop-backend/api/routes"
	checkoutsvc "github.com/thitipat-dev/petshop-backend/internal/checkout"
	"github.com/thitipat-dev/petshop-backend/internal/discounts"
	"github.com/thitipat-dev/petshop-backend/internal/orders"
	"github.com/thitipat-dev/petshop-backend/internal/products"
	"github.com/thitipat-dev/petshop-backend/internal/repo"
	"github.com/thitipat-dev/petshop-backend/internal/settings"
	"github.com/thitipat-dev/petshop-backend/pkg/config"
	"github.com/thitipat-dev/petshop-backend/pkg/db"
	"github.com/thitipat-dev/petshop-backend/pkg/logger"
	"github.com/thitipat-dev/petshop-backend/pkg/metrics"
	"github.com/thitipat-dev/petshop-backend/pkg/migrate"
	"github.com/thitipat-dev/petshop-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)
	orderMetrics := metrics.NewOrderMetrics(registry)

	conn := dbClient.DB()
	settingsRepo := settings.NewRepository(conn)
	productsRepo := products.NewRepository(conn)
	discountsRepo := discounts.NewRepository(conn)
	ordersRepo := orders.NewRepository(conn)
	txRunner := repo.NewTxRunner(conn)

	discountsService, err := discounts.NewService(discountsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create discounts service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(settingsRepo, discountsService, productsRepo, checkoutMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(ordersRepo, discountsRepo, txRunner, checkoutService, redisClient, orderMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:    cfg,
			Logger:    logg,
			DB:        dbClient,
			Redis:     redisClient,
			Registry:  registry,
			Checkout:  checkoutService,
			Orders:    ordersService,
			Discounts: discountsService,
			Products:  productsRepo,
			Settings:  settingsRepo,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
