package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sellerdesk/sellerdesk-backend/api/routes"
	"github.com/sellerdesk/sellerdesk-backend/internal/orders"
	"github.com/sellerdesk/sellerdesk-backend/pkg/config"
	"github.com/sellerdesk/sellerdesk-backend/pkg/enums"
	"github.com/sellerdesk/sellerdesk-backend/pkg/logger"
	"github.com/sellerdesk/sellerdesk-backend/pkg/metrics"
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

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		logg.Error(context.Background(), "failed to load timezone", err)
		os.Exit(1)
	}

	var seed []orders.Order
	if cfg.Seed.Path != "" {
		seed, err = orders.LoadSeed(cfg.Seed.Path)
		if err != nil {
			logg.Error(context.Background(), "failed to load seed orders", err)
			os.Exit(1)
		}
		ctx := logg.WithField(context.Background(), "count", len(seed))
		logg.Info(ctx, "loaded seed orders")
	}

	store, err := orders.NewStore(seed, orders.WithLocation(loc))
	if err != nil {
		logg.Error(context.Background(), "failed to build order store", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	orderMetrics := metrics.NewOrderMetrics(registry)

	refreshGauges := func() {
		counts := make(map[string]int)
		for _, order := range store.List() {
			counts[order.Status.String()]++
		}
		for _, status := range enums.OrderStatuses() {
			orderMetrics.SetStatusCount(status.String(), counts[status.String()])
		}
	}
	refreshGauges()

	store.Subscribe(func(notice orders.ChangeNotice) {
		if notice.From != "" && notice.From != notice.To {
			orderMetrics.ObserveTransition(notice.From.String(), notice.To.String())
		}
		refreshGauges()
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":    cfg.App.Env,
		"addr":   addr,
		"orders": len(seed),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:         addr,
		Handler:      routes.NewRouter(cfg, logg, store, orderMetrics, registry),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
