package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrollo/retailgen/internal/config"
	"github.com/mrollo/retailgen/internal/db"
	"github.com/mrollo/retailgen/internal/queue"
	"github.com/mrollo/retailgen/internal/repository"
	"github.com/mrollo/retailgen/internal/worker"
)

func main() {
	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("starting retailgen worker")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Connect to database
	database, err := db.New(db.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	logger.Info("connected to database")

	// Apply schema migrations
	if err := database.Migrate(); err != nil {
		logger.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Connect to Redis queue
	queueClient, err := queue.NewRedisClient(queue.RedisConfig{
		URL:       cfg.Queue.RedisURL,
		QueueName: cfg.Queue.QueueName,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer queueClient.Close()

	// Initialize repositories
	runRepo := repository.NewRunRepository(database.DB)
	customerRepo := repository.NewCustomerRepository(database.DB)
	orderRepo := repository.NewOrderRepository(database.DB)
	transactionRepo := repository.NewTransactionRepository(database.DB)
	statsRepo := repository.NewStatsRepository(database.DB)

	// Initialize run processor
	processor := worker.NewRunProcessor(
		runRepo,
		customerRepo,
		orderRepo,
		transactionRepo,
		statsRepo,
		cfg.Generation,
		logger,
	)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start consuming run jobs
	consumerErrors := make(chan error, 1)
	go func() {
		consumerErrors <- queueClient.Consume(ctx, processor.HandleJob)
	}()

	// Wait for interrupt signal or consumer error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-consumerErrors:
		if err != nil && err != context.Canceled {
			logger.Error("consumer error", slog.String("error", err.Error()))
			os.Exit(1)
		}

	case sig := <-quit:
		logger.Info("shutting down worker", slog.String("signal", sig.String()))

		// Cancel context to stop consumer
		cancel()

		// Give the consumer time to notice the cancellation; a run in
		// flight still finishes or fails on its own terms.
		time.Sleep(5 * time.Second)

		logger.Info("worker stopped gracefully")
	}
}
