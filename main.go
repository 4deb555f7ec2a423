package main

import (
	"context"
	"errors"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"tradeJournal/config"
	"tradeJournal/internal/adapters/httpapi"
	"tradeJournal/internal/adapters/logger"
	"tradeJournal/internal/adapters/redisstore"
	"tradeJournal/internal/adapters/sqlitestore"
	"tradeJournal/internal/app"
	"tradeJournal/internal/ports"
	"tradeJournal/internal/tradeimport"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := logger.NewZapLogger(cfg.LogLevel)
	defer appLogger.Sync()
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	// 3. Initialize Store
	store, closeStore, err := buildStore(cfg, appLogger)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize trade store")
		log.Fatalf("FATAL: Failed to initialize trade store: %v", err)
	}
	defer closeStore()
	appLogger.Info(context.Background(), "Trade store initialized", map[string]interface{}{"backend": cfg.StoreBackend})

	// 4. Initialize Parser
	parser, err := tradeimport.New(tradeimport.Config{Logger: appLogger})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize import parser")
		log.Fatalf("FATAL: Failed to initialize import parser: %v", err)
	}

	// 5. Initialize Application Service
	svc, err := app.NewJournalService(appLogger, store, parser, cfg.ImportPreview)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize journal service")
		log.Fatalf("FATAL: Failed to initialize journal service: %v", err)
	}
	appLogger.Info(context.Background(), "Journal service initialized")

	// 6. Set up HTTP server
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	httpapi.NewHandler(svc, appLogger).RegisterRoutes(router)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// 7. Run until interrupted, then drain in-flight requests
	errCh := make(chan error, 1)
	go func() {
		appLogger.Info(context.Background(), "HTTP server listening", map[string]interface{}{"addr": cfg.HTTPAddr})
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		appLogger.Info(context.Background(), "Shutdown signal received", map[string]interface{}{"signal": sig.String()})
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			appLogger.Error(context.Background(), err, "HTTP server shutdown failed")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error(context.Background(), err, "HTTP server exited with error")
			log.Fatalf("FATAL: HTTP server exited with error: %v", err)
		}
	}

	appLogger.Info(context.Background(), "Application finished gracefully.")
}

// buildStore constructs the configured TradeStore backend and a close func.
func buildStore(cfg *config.Config, appLogger ports.Logger) (ports.TradeStore, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store, err := redisstore.New(redisstore.Config{
			Client: client,
			Key:    cfg.TradesKey,
			Logger: appLogger,
		})
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		if err := store.Ping(context.Background()); err != nil {
			client.Close()
			return nil, nil, err
		}
		return store, func() { client.Close() }, nil
	default:
		store, err := sqlitestore.New(sqlitestore.Config{
			DBPath: cfg.DBPath,
			Logger: appLogger,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}
}
