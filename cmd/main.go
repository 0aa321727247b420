package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/controller"
	"taskboard/internal/password"
	"taskboard/internal/queue"
	"taskboard/internal/repository/open"
	"taskboard/internal/routes"
	"taskboard/internal/service"
	"taskboard/internal/token"
	"taskboard/internal/worker"
	"taskboard/pkg/logger"
)

func main() {
	ctx := context.Background()
	cfg := config.Get()
	if cfg == nil {
		os.Exit(1)
	}
	logger.Configure(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := open.Store(ctx, cfg)
	if err != nil {
		logger.Error(ctx, "Store not available; exiting", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	tokens, err := token.New([]byte(cfg.JWTSecret), cfg.TokenTTL, nil)
	if err != nil {
		logger.Error(ctx, "Token service init failed", "error", err)
		os.Exit(1)
	}

	checks := map[string]controller.Pinger{"store": store}
	opts := service.TasksOptions{RequireOwnerOnDelete: cfg.RequireOwnerDelete}
	if !cfg.RequireOwnerDelete {
		logger.Warn(ctx, "Task delete does not check ownership; set TASK_DELETE_REQUIRE_OWNER=true to enforce it")
	}

	// Redis is optional; without it every list goes to the store.
	var taskCache *cache.TaskCache
	if cfg.CacheEnabled() {
		client, err := cache.NewClient(ctx, cfg.RedisURL, cfg.RedisPoolSize)
		if err != nil {
			logger.Error(ctx, "Redis unavailable; continuing without cache", "error", err)
		} else {
			taskCache = cache.New(client, cfg.CacheTTL)
			defer taskCache.Close()
			opts.Cache = taskCache
			checks["redis"] = taskCache
		}
	}

	// Kafka is optional; without it no events are published and no worker runs.
	var publisher *queue.Publisher
	if cfg.EventsEnabled() {
		queue.EnsureTopic(ctx, cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaPartitions)
		publisher = queue.NewPublisher(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
		defer publisher.Close()
		opts.Events = publisher
	}

	accounts := service.NewAccounts(store, password.NewHasher(cfg.BcryptCost), tokens)
	tasks := service.NewTasks(store, opts)

	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	if publisher != nil && taskCache != nil {
		go worker.NewWarmer(tasks).Run(workerCtx, cfg.KafkaBrokers, cfg.KafkaTopic)
	}

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      routes.Router(controller.New(accounts, tasks, checks), tokens),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		logger.Info(ctx, "HTTP server listening", "port", cfg.HTTPPort, "store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Server shutdown error", "error", err)
	}
	stopWorker()
	logger.Info(ctx, "Server stopped")
}
