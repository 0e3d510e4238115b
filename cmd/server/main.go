// Gift registry API server.
//
// @title Gift Registry API
// @version 1.0
// @description Gift registry with email-confirmed reservations.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"giftregistry/config"
	_ "giftregistry/docs"
	"giftregistry/internal/adapters/auth"
	"giftregistry/internal/adapters/email"
	"giftregistry/internal/adapters/notify"
	"giftregistry/internal/adapters/store/local"
	"giftregistry/internal/adapters/store/supabase"
	delivery "giftregistry/internal/delivery/http"
	"giftregistry/internal/delivery/http/controllers"
	"giftregistry/internal/delivery/http/middleware"
	"giftregistry/internal/domain"
	"giftregistry/internal/repository"
	"giftregistry/internal/repository/postgres"
	"giftregistry/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)

	// Storage backend. Only the local file store gets the starter gifts; a
	// shared backend is seeded out of band.
	var (
		store domain.GiftStore
		guard domain.ReservationGuard
		seed  []*domain.Gift
	)
	switch cfg.StoreBackend {
	case config.BackendSupabase:
		store = supabase.New(supabase.Config{
			BaseURL: cfg.SupabaseURL,
			APIKey:  cfg.SupabaseAnonKey,
			Table:   cfg.SupabaseTable,
		}, nil)
	case config.BackendPostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		pg := postgres.NewGiftStore(db)
		store = pg
		guard = pg
	case config.BackendLocal:
		store = local.New(cfg.LocalStorePath)
		seed = domain.DefaultGifts()
	default:
		logger.Error("unknown store backend", "backend", cfg.StoreBackend)
		os.Exit(1)
	}
	repo := repository.NewGiftRepository(store, seed)

	// Confirmation dispatch. A configured dispatcher URL takes precedence
	// over in-process email delivery.
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.SenderEmail,
		FromName:    cfg.SenderName,
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		},
		Resend: email.ResendConfig{APIKey: cfg.ResendAPIKey},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	mailNotifier := services.NewMailNotifier(mailer, email.NewTemplateRenderer())
	var notifier domain.ReservationNotifier = mailNotifier
	if cfg.DispatchURL != "" {
		notifier = notify.NewWebhookDispatcher(cfg.DispatchURL, nil)
	}

	siteURL := strings.TrimSuffix(cfg.SiteURL, "/")
	giftService := services.NewGiftService(logger, repo, guard, auth.NewTokenSource(), notifier, siteURL)

	// Admin gate.
	pins := auth.NewPinChecker(cfg.AdminPIN, cfg.AdminPINHash)
	issuer := auth.NewJWTIssuer(cfg.JWTSecret)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	requireAdmin := middleware.RequireAdmin(verifier, logger)

	mux := delivery.NewRouter(
		controllers.NewGiftController(logger, giftService),
		controllers.NewReservationController(logger, giftService),
		controllers.NewAuthController(logger, pins, issuer, cfg.AdminTokenTTL),
		controllers.NewNotificationController(logger, mailNotifier),
		requireAdmin,
	)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "port", cfg.Port, "backend", cfg.StoreBackend, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}
