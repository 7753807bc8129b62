package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-reservation-api/internal/config"
	"github.com/go-reservation-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-reservation-api/internal/infrastructure/jwt"
	"github.com/go-reservation-api/internal/infrastructure/memory"
	"github.com/go-reservation-api/internal/infrastructure/smtp"
	"github.com/go-reservation-api/internal/infrastructure/sns"
	"github.com/go-reservation-api/internal/observability"
	transporthttp "github.com/go-reservation-api/internal/transport/http"
	"github.com/joho/godotenv"
)

const sweepInterval = time.Minute

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()
	setupLogger(cfg)
	if envErr != nil {
		slog.Info("no .env file found, reading from environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Fails startup rather than serving logins that cannot be verified.
	tokens, err := jwtinfra.NewProvider(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		fatal("jwt provider", err)
	}

	dynamoClient, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		fatal("dynamodb client", err)
	}
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)

	var sessions transporthttp.SessionStore
	switch cfg.SessionStore {
	case "memory":
		store := memory.NewSessionStore()
		go store.RunSweeper(ctx, sweepInterval)
		sessions = store
	default:
		sessions = dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions)
	}

	mailer := smtp.NewMailer(cfg)

	deps := &transporthttp.Deps{
		CustomerRepo:    dynamo.NewCustomerRepo(dynamoClient, cfg.DynamoTables.Customers),
		SessionStore:    sessions,
		ReservationRepo: dynamo.NewReservationRepo(dynamoClient, cfg.DynamoTables.Reservations),
		Tokens:          tokens,
		Verification:    smtp.NewVerificationSender(mailer, cfg.OTPTTL),
		Metrics:         observability.NewMetrics(),
	}
	// SNS publisher (optional; reservations are still stored without it).
	if pub, err := sns.NewPublisher(ctx, cfg); err == nil {
		deps.Publisher = pub
	} else {
		slog.Warn("reservation notifications disabled", "err", err)
	}

	router := transporthttp.NewRouter(ctx, cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv, "session_store", cfg.SessionStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("server error", err)
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fatal("forced shutdown", err)
	}
	slog.Info("server stopped")
}

func setupLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var h slog.Handler
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		opts.Level = slog.LevelDebug
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
