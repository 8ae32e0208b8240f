package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"cafe-order/internal/handler"
	"cafe-order/internal/repositories"
	"cafe-order/internal/router"
	"cafe-order/internal/service"
	"cafe-order/internal/store"
	"cafe-order/pkg/database"
	"cafe-order/pkg/envconfig"
	"cafe-order/pkg/flags"
	"cafe-order/pkg/logger"
	"cafe-order/pkg/shutdownsetup"
)

func main() {
	// Parse command-line flags
	flagConfig := flags.Parse()

	if err := flagConfig.Validate(); err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		return
	}

	envErr := envconfig.LoadEnvFile(".env")

	loggerConfig := logger.Config{
		Level:        envconfig.GetLogLevel(),
		Format:       envconfig.GetEnv("LOG_FORMAT", "json"),
		Output:       envconfig.GetEnv("LOG_OUTPUT", "stdout"),
		EnableCaller: envconfig.GetEnv("LOG_ENABLE_CALLER", "true") == "true",
		Environment:  envconfig.GetEnv("ENVIRONMENT", "development"),
	}

	appLogger := logger.New(loggerConfig)

	if envErr != nil {
		appLogger.Warn("Failed to load .env file", "error", envErr)
	} else {
		appLogger.Debug(".env file loaded successfully")
	}

	appLogger.Info("Starting cafe ordering application",
		"environment", loggerConfig.Environment,
		"storage", flagConfig.Storage,
		"log_level", loggerConfig.Level)

	// Select the storage backend
	var collectionStore store.Store
	switch flagConfig.Storage {
	case "postgres":
		dbConfig := envconfig.LoadDatabaseConfig()
		db, err := database.NewConnection(dbConfig, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to establish database connection", "error", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				appLogger.Error("Failed to close database connection", "error", err)
			}
		}()

		if err := db.HealthCheck(); err != nil {
			appLogger.Fatal("Database health check failed", "error", err)
		}

		pgStore, err := store.NewPostgresStore(db, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize postgres store", "error", err)
		}
		collectionStore = pgStore
	default:
		fileStore, err := store.NewFileStore(flagConfig.DataDir, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize file store", "error", err)
		}
		collectionStore = fileStore
	}

	// Seed fixture collections on first run
	if err := store.SeedIfEmpty(collectionStore, appLogger); err != nil {
		appLogger.Fatal("Failed to seed collections", "error", err)
	}

	// Initialize repositories
	orderRepo := repositories.NewOrderRepository(collectionStore, appLogger)
	menuRepo := repositories.NewMenuRepository(collectionStore, appLogger)
	userRepo := repositories.NewUserRepository(collectionStore, appLogger)
	cartRepo := repositories.NewCartRepository(collectionStore, appLogger)

	// Initialize services
	customerService := service.NewCustomerService(orderRepo, menuRepo, userRepo, cartRepo, nil, appLogger)
	adminService := service.NewAdminService(orderRepo, menuRepo, userRepo, nil, appLogger)

	// Initialize handlers
	menuHandler := handler.NewMenuHandler(customerService, appLogger)
	orderHandler := handler.NewOrderHandler(customerService, appLogger)
	customerHandler := handler.NewCustomerHandler(customerService, appLogger)
	adminHandler := handler.NewAdminHandler(adminService, appLogger)

	mux := router.NewRouter(menuHandler, orderHandler, customerHandler, adminHandler)

	httpHandler := appLogger.HTTPMiddleware(mux)

	initialPort := flagConfig.Port
	if initialPort == "" {
		initialPort = envconfig.GetEnv("PORT", "8080")
	}
	host := envconfig.GetEnv("HOST", "localhost")

	port := initialPort

	server := &http.Server{
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		server.Addr = host + ":" + port

		go func() {
			appLogger.Info("Starting HTTP server",
				"host", host,
				"port", port,
				"address", server.Addr)

			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLogger.Error("Server error", "error", err)
				serverErrors <- err
			}
		}()

		select {
		case err := <-serverErrors:
			if strings.Contains(err.Error(), "address already in use") && i < maxRetries-1 {
				portNum := 8080 + i + 1
				port = fmt.Sprintf("%d", portNum)
				appLogger.Warn("Port already in use, trying alternative port",
					"current_port", server.Addr,
					"next_port", port)
				continue
			} else {
				appLogger.Error("Failed to start server after retries", "error", err)
				return
			}
		case <-time.After(200 * time.Millisecond):
			appLogger.Info("Server started successfully", "port", port)
		}

		break
	}

	select {
	case err := <-serverErrors:
		appLogger.Error("Could not start server", "error", err)
		return
	default:
		shutdownsetup.SetupGracefulShutdown(server, appLogger)
	}
}
