package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/purplewallet/wallet-service/internal/pkg/config"
	"github.com/purplewallet/wallet-service/internal/pkg/database"
	"github.com/purplewallet/wallet-service/internal/pkg/health"
	"github.com/purplewallet/wallet-service/internal/pkg/logger"
	"github.com/purplewallet/wallet-service/internal/pkg/middleware"
	"github.com/purplewallet/wallet-service/internal/pkg/nats"
	nrpkg "github.com/purplewallet/wallet-service/internal/pkg/newrelic"
	"github.com/purplewallet/wallet-service/services/wallet/gateway"
	"github.com/purplewallet/wallet-service/services/wallet/handler"
	"github.com/purplewallet/wallet-service/services/wallet/repository"
	"github.com/purplewallet/wallet-service/services/wallet/usecase"
)

func main() {
	appName := "wallet-service"
	configPath := "config/wallet.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	// Set global logger for application-wide access
	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresClient.Close()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	// Initialize NATS client
	natsClient, err := nats.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	defer natsClient.Close()

	if !natsClient.IsConnected() {
		zapLogger.Fatal("NATS client not connected")
	}

	// Initialize repositories
	store := repository.NewStore(configs, postgresClient.GetDB())
	walletRepo := repository.NewWalletRepo(configs, postgresClient.GetDB())
	transactionRepo := repository.NewTransactionRepo(configs, postgresClient.GetDB())
	idempotencyRepo := repository.NewIdempotencyRepo(configs, redisClient)
	listCache := repository.NewListCacheRepo(configs, redisClient)

	// Initialize gateway
	walletGW := gateway.NewWalletGW(natsClient)

	// Initialize usecase
	walletUC, err := usecase.NewWalletUC(configs, store, walletRepo, transactionRepo, idempotencyRepo, listCache, walletGW)
	if err != nil {
		zapLogger.Fatal("Failed to initialize wallet use case", logger.Err(err))
	}

	// Initialize handlers
	walletHandler := handler.NewHandler(walletUC, configs)

	// Start the expiry sweeper
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	sweeper := usecase.NewSweeper(configs, store, transactionRepo, walletUC)
	go sweeper.Start(sweeperCtx)

	// Initialize Echo server
	e := echo.New()

	// Add middlewares (panic recovery should be first)
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Initialize API key middleware
	apiKeyMiddleware := middleware.NewAPIKeyMiddleware(&configs.APIKey)

	// Initialize enhanced health service
	healthService := health.NewHealthService(zapLogger)
	healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))
	healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
	healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))

	// Register enhanced health endpoints
	health.RegisterEnhancedHealthEndpoints(e, appName, configs.App.Version, healthService)

	// Register service routes, rate limiting the user-facing surface
	var userMiddlewares []echo.MiddlewareFunc
	if configs.Server.RateLimitPerMinute > 0 {
		userMiddlewares = append(userMiddlewares,
			middleware.UserRateLimiter(configs.Server.RateLimitPerMinute, time.Minute, redisClient.GetClient()))
	}
	walletHandler.RegisterRoutes(e, apiKeyMiddleware, userMiddlewares...)

	// Start server in goroutine
	go func() {
		addr := fmt.Sprintf(":%d", configs.Server.Port)
		zapLogger.Info("Starting HTTP server",
			logger.String("address", addr),
			logger.String("app", appName))

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", logger.Err(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	zapLogger.Info("Received shutdown signal", logger.String("signal", sig.String()))

	// Stop the sweeper before tearing down its dependencies
	stopSweeper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	zapLogger.Info("Shutting down HTTP server...")
	if err := e.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", logger.Err(err))
	}

	zapLogger.Info("Closing PostgreSQL connection...")
	postgresClient.Close()

	zapLogger.Info("Closing Redis connection...")
	if err := redisClient.Close(); err != nil {
		zapLogger.Error("Error closing Redis connection", logger.Err(err))
	}

	zapLogger.Info("Closing NATS connection...")
	natsClient.Close()

	if nrApp != nil {
		zapLogger.Info("Shutting down New Relic...")
		nrApp.Shutdown(10 * time.Second)
	}

	zapLogger.Info("Server exiting gracefully")
}
