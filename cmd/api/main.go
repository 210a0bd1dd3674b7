package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/presensia/presensia/internal/api"
	"github.com/presensia/presensia/internal/auth"
	"github.com/presensia/presensia/internal/config"
	"github.com/presensia/presensia/internal/database"
	"github.com/presensia/presensia/internal/face"
	"github.com/presensia/presensia/internal/facematch"
	"github.com/presensia/presensia/internal/repository"
	"github.com/presensia/presensia/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting Presensia API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
	)

	timezone, err := cfg.Timezone()
	if err != nil {
		return err
	}

	// Database pool
	pool, err := database.NewPool(context.Background(), cfg.DatabaseURL, database.DefaultPoolConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Embedding provider
	embeddingProvider, err := face.NewEmbeddingProvider(cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedding provider: %w", err)
	}
	logger.Info("embedding provider ready", slog.String("provider", embeddingProvider.Name()))

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiry)

	deps := &api.Dependencies{
		DB:             pool,
		UserRepo:       repository.NewUserRepository(pool),
		SessionRepo:    repository.NewSessionRepository(pool),
		EnrollmentRepo: repository.NewEnrollmentRepository(pool),
		ProfileRepo:    repository.NewProfileRepository(pool),
		AttendanceRepo: repository.NewAttendanceRepository(pool),
		ActivityRepo:   repository.NewActivityLogRepository(pool),
		JWTService:     jwtService,
		Provider:       embeddingProvider,
		Admission: service.AdmissionConfig{
			Policy:        facematch.Policy(cfg.IdentityPolicy),
			MinConfidence: cfg.MatchMinConfidence,
			Timezone:      timezone,
		},
		Registration: service.RegistrationConfig{
			MinDecodeRate: cfg.MinDecodeRate,
		},
		SubmitLimit:  cfg.SubmitRateLimit,
		SubmitWindow: cfg.SubmitRateWindow,
	}

	// Setup router
	router := api.NewRouter(logger, deps)
	router.Setup()

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server...")
	if err := router.Shutdown(); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	<-shutdownCtx.Done()
	logger.Info("server stopped")

	return nil
}
