package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	docs "main/docs"
	appmarketdata "main/internal/application/service/marketdata"
	"main/internal/config"
	"main/internal/infrastructure/broker"
	"main/internal/infrastructure/feed"
	infrainstruments "main/internal/infrastructure/instruments"
	infrahttp "main/internal/interfaces/http"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()

	catalog, err := infrainstruments.NewRepository(cfg.Instruments.File)
	if err != nil {
		logger.Fatalf("failed to load instrument catalog: %v", err)
	}

	engine := appmarketdata.NewService(catalog, appmarketdata.Config{
		Timeframes:   cfg.MarketData.Timeframes,
		Retention:    cfg.MarketData.Retention,
		BackfillSeed: cfg.Feed.Seed,
	}, logger)

	for _, inst := range catalog.List() {
		for _, tf := range engine.Timeframes() {
			if err := engine.Backfill(inst.Symbol, tf, cfg.MarketData.BackfillCount); err != nil {
				logger.WithError(err).WithFields(logrus.Fields{
					"symbol":    inst.Symbol,
					"timeframe": tf,
				}).Warn("initial backfill failed")
			}
		}
	}
	logger.WithFields(logrus.Fields{
		"instruments": len(catalog.List()),
		"timeframes":  len(engine.Timeframes()),
		"candles":     cfg.MarketData.BackfillCount,
	}).Info("series seeded")

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	g, gctx := errgroup.WithContext(ctx)

	scheduler := feed.NewScheduler(engine, catalog, feed.NewGenerator(cfg.Feed.Seed), feed.SchedulerConfig{
		MinInterval: cfg.Feed.MinInterval,
		MaxInterval: cfg.Feed.MaxInterval,
	}, logger)
	g.Go(func() error {
		return scheduler.Run(gctx)
	})

	if cfg.RabbitMQ.URL != "" {
		publisher, err := broker.NewPublisher(cfg.RabbitMQ, logger)
		if err != nil {
			logger.Fatalf("failed to init broker publisher: %v", err)
		}
		defer publisher.Close()

		symbols := make([]string, 0, len(catalog.List()))
		for _, inst := range catalog.List() {
			symbols = append(symbols, inst.Symbol)
		}
		if err := publisher.Attach(engine, symbols, engine.Timeframes()); err != nil {
			logger.Fatalf("failed to attach broker publisher: %v", err)
		}
		g.Go(func() error {
			return publisher.Run(gctx)
		})
	}

	cacheTTL := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	handler := infrahttp.NewHandler(engine, catalog, redisClient, cacheTTL)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr(),
		Handler: handler,
	}

	go func() {
		logger.Infof("HTTP server listening on %s", cfg.HTTP.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown error: %v", err)
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("background workers stopped with error: %v", err)
	}
	logger.Info("server stopped")
}
