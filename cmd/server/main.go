package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"

	"flight-intent-service/internal/app"
	"flight-intent-service/internal/infrastructure/config"
	"flight-intent-service/internal/infrastructure/oauth"
	"flight-intent-service/internal/infrastructure/router"
	"flight-intent-service/internal/interface/api"
	"flight-intent-service/internal/interface/gmail"
	"flight-intent-service/internal/usecase"
	"flight-intent-service/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Flight Intent Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize", "error", err)
	}

	// Gmail intake needs the request log to skip mail it already handled
	if cfg.GmailEnabled {
		if application.Logs == nil {
			log.Fatal("Gmail intake requires MONGODB_DSN")
		}

		mailRouter := router.NewSubjectRouter(log)
		mailRouter.Register(usecase.NewBookingMailHandler(application.Processor, "booking", cfg.GmailSubjects))
		orchestrator := usecase.NewMailOrchestrator(application.Logs, mailRouter, log.With("component", "mail"))

		gmailOAuth := oauth.NewGmailOAuth(
			cfg.GmailClientID,
			cfg.GmailClientSecret,
			cfg.GmailRefreshToken,
			log,
		)

		intake, err := gmail.NewIntake(ctx, application.Logs, orchestrator, log.With("component", "gmail"),
			cfg.GmailPollInterval, option.WithTokenSource(gmailOAuth.GetTokenSource(ctx)))
		if err != nil {
			log.Fatal("Failed to create Gmail intake", "error", err)
		}

		// Start Gmail polling in a goroutine
		go intake.StartPolling(ctx)
	}

	gin.SetMode(gin.ReleaseMode)
	handler := api.NewHandler(
		application.Parser,
		application.Resolver,
		application.Processor,
		application.Logs,
		application.Checks,
		log.With("component", "api"),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(handler, application.Registry, log),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	application.Close(shutdownCtx)

	log.Info("Flight Intent Service stopped")
}
