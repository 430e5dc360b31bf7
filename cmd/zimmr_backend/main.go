package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/adapters/email"
	"github.com/SscSPs/zimmr_backend/internal/adapters/pdf"
	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/core/services"
	"github.com/SscSPs/zimmr_backend/internal/handlers"
	"github.com/SscSPs/zimmr_backend/internal/middleware"
	"github.com/SscSPs/zimmr_backend/internal/platform/config"
	"github.com/SscSPs/zimmr_backend/internal/platform/database"
	"github.com/SscSPs/zimmr_backend/internal/platform/scheduler"
	"github.com/SscSPs/zimmr_backend/internal/repositories/database/pgsql"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title ZIMMR Backend API
// @version 1.0
// @description Scheduling, customer portal and billing backend for craftsmen.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return err
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		return err
	}

	mailer, err := newMailer(cfg, logger)
	if err != nil {
		return err
	}
	container := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), mailer, pdf.NewRenderer())

	jobs := scheduler.New(logger)
	if err := jobs.AddReminderJob(cfg.ReminderCron, container.Reminder); err != nil {
		return err
	}
	jobs.Start()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		middleware.MetricsMiddleware(),
		gin.Recovery(),
		cors.New(corsConfig(cfg)),
	)
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}
	if err := handlers.RegisterRoutes(r, cfg, container, dbPool); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	jobs.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

func newMailer(cfg *config.Config, logger *slog.Logger) (portssvc.Mailer, error) {
	if !cfg.MailEnabled() {
		logger.Warn("SMTP_HOST not set, e-mails are only logged")
		return email.NewLogMailer(logger), nil
	}
	return email.NewSMTPMailer(cfg)
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowOrigins = []string{cfg.FrontendBaseURL}
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	c.ExposeHeaders = []string{"Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	return c
}
