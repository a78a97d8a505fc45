package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/snackmarket/api"
	"github.com/example/snackmarket/pkg/config"
	"github.com/example/snackmarket/pkg/discovery"
	"github.com/example/snackmarket/pkg/events"
	"github.com/example/snackmarket/pkg/market"
	"github.com/example/snackmarket/pkg/repository"
	"go.uber.org/zap"
)

func main() {
	// Load config
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting snack market",
		zap.String("name", cfg.Server.Name),
		zap.Int("port", cfg.Server.Port))

	// Connect to MySQL and migrate
	db, err := repository.NewMySQL(&cfg.MySQL)
	if err != nil {
		logger.Fatal("Failed to connect to MySQL", zap.Error(err))
	}

	products := repository.NewProductRepository(db)
	orders := repository.NewOrderRepository(db)
	users := repository.NewUserRepository(db)

	svc := market.NewService(products, orders, users, logger)

	ctx := context.Background()

	// Redis cache for unread counts
	cache := repository.NewRedisCache(&cfg.Redis, logger)
	if err := cache.Ping(ctx); err != nil {
		logger.Warn("Redis connection failed, continuing without cache", zap.Error(err))
	} else {
		svc.SetUnreadCache(cache)
		defer cache.Close()
	}

	// MongoDB audit trail
	audit, err := repository.NewMongoAuditLog(&cfg.MongoDB)
	if err != nil {
		logger.Warn("MongoDB connection failed, continuing without audit log", zap.Error(err))
	} else if pingErr := audit.Ping(ctx); pingErr != nil {
		logger.Warn("MongoDB ping failed, continuing without audit log", zap.Error(pingErr))
		audit.Close(ctx)
	} else {
		svc.SetAuditLog(audit)
		defer audit.Close(ctx)
	}

	// RabbitMQ order events
	publisher, err := events.NewPublisher(&cfg.AMQP, logger)
	if err != nil {
		logger.Warn("RabbitMQ connection failed, continuing without events", zap.Error(err))
	} else {
		svc.SetEventPublisher(publisher)
		defer publisher.Close()
	}

	// Register in etcd for edge routing
	instance := &discovery.Instance{
		Name: cfg.Server.Name,
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	}
	registry, err := discovery.NewRegistry(&cfg.Etcd)
	if err != nil {
		logger.Warn("Failed to connect to etcd, continuing without registration", zap.Error(err))
		registry = nil
	} else if err := registry.Register(ctx, instance); err != nil {
		logger.Warn("Failed to register instance", zap.Error(err))
	}

	// Start HTTP server in goroutine
	server := api.NewServer(cfg, logger, svc, users)
	server.SetupRoutes()

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			serverErr <- err
		}
	}()

	logger.Info("Snack market started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-serverErr:
		logger.Fatal("Server error", zap.Error(err))
	}

	if registry != nil {
		if err := registry.Deregister(ctx, instance); err != nil {
			logger.Error("Failed to deregister instance", zap.Error(err))
		}
		registry.Close()
	}

	logger.Info("Snack market stopped")
}
