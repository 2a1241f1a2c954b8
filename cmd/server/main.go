package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"account_service/internal/config"
	"account_service/internal/handler"
	"account_service/internal/middleware"
	"account_service/internal/repository"
	"account_service/internal/service"
	"account_service/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	if envErr != nil {
		logger.Info("no .env file found, relying on environment variables")
	}
	if cfg.JWTExpiration > 0 {
		logger.Info("session tokens expire", zap.Duration("ttl", cfg.JWTExpiration))
	}

	// --- Database Connection ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := config.ConnectDB(ctx, &cfg.DB, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	if err := config.RunMigrations(ctx, dbPool); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}
	logger.Info("migrations applied")

	// --- Wiring ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpiration)
	userRepo := repository.NewUserRepository(dbPool)
	accountService := service.NewAccountService(userRepo, jwtUtil, logger)
	authHandler := handler.NewAuthHandler(accountService, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := newRouter(routerDeps{
		authHandler:    authHandler,
		authMiddleware: middleware.JWTAuthMiddleware(jwtUtil),
		db:             dbPool,
		logger:         logger,
		corsOrigins:    cfg.CORSAllowedOrigins,
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
