package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend names accepted in STORE_BACKEND.
const (
	BackendLocal    = "local"
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
)

// Config holds all configuration for the application. It is built once at
// startup and passed to the components that need it; nothing reads the
// environment after Load returns.
type Config struct {
	Environment string
	LogLevel    string
	Port        string
	SiteURL     string

	CORSAllowedOrigins []string

	// Storage backend selection.
	StoreBackend    string
	LocalStorePath  string
	SupabaseURL     string
	SupabaseAnonKey string
	SupabaseTable   string
	DatabaseURL     string

	// Admin gate.
	AdminPIN      string
	AdminPINHash  string
	JWTSecret     string
	AdminTokenTTL time.Duration

	// Confirmation dispatch. When DispatchURL is set the notification is
	// POSTed to that external dispatcher; otherwise it is emailed in-process.
	DispatchURL   string
	EmailProvider string
	SenderEmail   string
	SenderName    string
	ResendAPIKey  string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// Load loads configuration from environment variables.
// It attempts to load from .env file if not in production.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production .env might not exist and we rely on system environment
	// variables, so a missing file is only a warning.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:        env,
		LogLevel:           strings.ToLower(os.Getenv("LOG_LEVEL")),
		Port:               os.Getenv("PORT"),
		SiteURL:            os.Getenv("SITE_URL"),
		StoreBackend:       strings.ToLower(os.Getenv("STORE_BACKEND")),
		LocalStorePath:     os.Getenv("LOCAL_STORE_PATH"),
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:    os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseTable:      os.Getenv("SUPABASE_TABLE"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		AdminPIN:           os.Getenv("ADMIN_PIN"),
		AdminPINHash:       os.Getenv("ADMIN_PIN_HASH"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		DispatchURL:        os.Getenv("DISPATCH_URL"),
		EmailProvider:      os.Getenv("EMAIL_PROVIDER"),
		SenderEmail:        os.Getenv("SENDER_EMAIL"),
		SenderName:         os.Getenv("SENDER_NAME"),
		ResendAPIKey:       os.Getenv("RESEND_API_KEY"),
		AWSRegion:          os.Getenv("AWS_REGION"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = strings.Split(origins, ",")
	}

	// Set defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.SiteURL == "" {
		cfg.SiteURL = "http://localhost:" + cfg.Port + "/"
	}
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = BackendLocal
	}
	if cfg.LocalStorePath == "" {
		cfg.LocalStorePath = "data/gifts.json"
	}
	if cfg.SupabaseTable == "" {
		cfg.SupabaseTable = "gifts_registry"
	}
	if cfg.EmailProvider == "" {
		cfg.EmailProvider = "noop"
	}

	cfg.AdminTokenTTL = 12 * time.Hour
	if s := os.Getenv("ADMIN_TOKEN_TTL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			cfg.AdminTokenTTL = d
		} else {
			log.Printf("Warning: invalid ADMIN_TOKEN_TTL %q, using default", s)
		}
	}

	return cfg, nil
}
