// Package main is the entrypoint of the event management API server.
//
// @title Event Management API
// @version 1.0
// @description REST API for managing events, user accounts, and event registrations.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/kunal2899/event-management-api/config"
	_ "github.com/kunal2899/event-management-api/docs"
	"github.com/kunal2899/event-management-api/internal/adapters/auth"
	"github.com/kunal2899/event-management-api/internal/adapters/email"
	delivery "github.com/kunal2899/event-management-api/internal/delivery/http"
	"github.com/kunal2899/event-management-api/internal/delivery/http/controllers"
	"github.com/kunal2899/event-management-api/internal/delivery/http/middleware"
	"github.com/kunal2899/event-management-api/internal/repository/postgres"
	"github.com/kunal2899/event-management-api/internal/services"
)

func main() {
	logger := config.NewLogger()
	if err := run(logger); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(cfg, logger); err != nil {
		return err
	}

	// Adapters
	hasher := auth.NewBcryptHasher(0)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKey,
			SecretAccessKey: cfg.Email.AWSSecretKey,
		},
	})
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}
	renderer := email.NewTemplateRenderer()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	participantRepo := postgres.NewParticipantRepository(db)

	// Services
	emailService := services.NewEmailService(mailer, renderer)
	userService := services.NewUserService(userRepo, participantRepo, hasher, tokenIssuer, emailService, logger)
	eventService := services.NewEventService(eventRepo, participantRepo, userRepo, emailService, logger)

	// Controllers and routing
	userController := controllers.NewUserController(logger, userService)
	eventController := controllers.NewEventController(logger, eventService)
	mux := delivery.NewRouter(userController, eventController, tokenVerifier, logger)

	handler := middleware.LoggingMiddleware(logger, mux)
	if len(cfg.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.AllowedOrigins, handler)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// runMigrations applies pending schema migrations. Skipped when MIGRATIONS_DIR
// is unset, for deployments that manage the schema externally.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	if cfg.MigrationsDir == "" {
		logger.Info("MIGRATIONS_DIR not set, skipping migrations")
		return nil
	}
	m, err := migrate.New("file://"+cfg.MigrationsDir, cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("database schema up to date")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}
	logger.Info("database migrations applied")
	return nil
}
