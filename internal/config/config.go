package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Borrow approval modes
const (
	ApprovalAuto  = "auto"
	ApprovalStaff = "staff"
)

// Auth modes
const (
	AuthModeToken      = "token"
	AuthModeAuthorizer = "authorizer"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port        string
	CORSOrigins string
	LogLevel    string
	LogFormat   string

	// Database configuration
	DBType            string // mysql, mariadb, postgres, sqlite, sqlite-pure, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int
	DBLogLevel        string

	// Authentication
	AuthMode      string
	JWTSecret     string
	JWTTTL        time.Duration
	AuthzURL      string
	AuthzClientID string

	// Borrowing policy
	LoanPeriod               time.Duration
	MaxConcurrentBorrows     int
	BorrowApprovalMode       string
	OverdueCountsTowardLimit bool
	OverdueSweepSchedule     string

	// File storage and validation
	StorageDir         string
	MaxUploadBytes     int64
	DocumentExtensions []string
	CoverExtensions    []string
	PreviewExtensions  []string

	// Listing cache
	ListingCacheSize int
	ListingCacheTTL  time.Duration

	// Notifications
	NotifyWebhookURL string
	NotifyTimeout    time.Duration

	// Rate limits, max requests per window
	LoginRateLimit    int
	LoginWindow       time.Duration
	RegisterRateLimit int
	RegisterWindow    time.Duration
}

// Load loads configuration from the environment, after applying an optional .env file
func Load() (*Config, error) {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg := &Config{
		Port:        getEnv("PORT", "3000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),

		DBType:            getEnv("DB_TYPE", "sqlite"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", ""),
		DBDatabase:        getEnv("DB_DATABASE", "library.db"),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		DBLogLevel:        getEnv("DB_LOG_LEVEL", "warn"),

		AuthMode:      getEnv("AUTH_MODE", AuthModeToken),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTTTL:        getEnvAsDuration("JWT_TTL", 24*time.Hour),
		AuthzURL:      getEnv("AUTHZ_URL", ""),
		AuthzClientID: getEnv("AUTHZ_CLIENT_ID", ""),

		LoanPeriod:               getEnvAsDuration("LOAN_PERIOD", 14*24*time.Hour),
		MaxConcurrentBorrows:     getEnvAsInt("MAX_CONCURRENT_BORROWS", 3),
		BorrowApprovalMode:       getEnv("BORROW_APPROVAL_MODE", ApprovalStaff),
		OverdueCountsTowardLimit: getEnvAsBool("OVERDUE_COUNTS_TOWARD_LIMIT", true),
		OverdueSweepSchedule:     os.Getenv("OVERDUE_SWEEP_SCHEDULE"),

		StorageDir:         getEnv("STORAGE_DIR", "./media"),
		MaxUploadBytes:     int64(getEnvAsInt("MAX_UPLOAD_BYTES", 10<<20)),
		DocumentExtensions: getEnvAsList("DOCUMENT_EXTENSIONS", []string{"pdf", "doc", "docx", "txt"}),
		CoverExtensions:    getEnvAsList("COVER_EXTENSIONS", []string{"jpg", "jpeg", "png", "gif"}),
		PreviewExtensions:  getEnvAsList("PREVIEW_EXTENSIONS", []string{"pdf", "jpg", "jpeg", "png", "txt"}),

		ListingCacheSize: getEnvAsInt("LISTING_CACHE_SIZE", 128),
		ListingCacheTTL:  getEnvAsDuration("LISTING_CACHE_TTL", 30*time.Second),

		NotifyWebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		NotifyTimeout:    getEnvAsDuration("NOTIFY_TIMEOUT", 3*time.Second),

		LoginRateLimit:    getEnvAsInt("LOGIN_RATE_LIMIT", 5),
		LoginWindow:       getEnvAsDuration("LOGIN_RATE_WINDOW", time.Minute),
		RegisterRateLimit: getEnvAsInt("REGISTER_RATE_LIMIT", 3),
		RegisterWindow:    getEnvAsDuration("REGISTER_RATE_WINDOW", 5*time.Minute),
	}
	if _, set := os.LookupEnv("OVERDUE_SWEEP_SCHEDULE"); !set {
		cfg.OverdueSweepSchedule = "@every 1h"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and policy values
func (cfg *Config) Validate() error {
	if cfg.DBDatabase == "" {
		return fmt.Errorf("DB_DATABASE is required")
	}
	switch cfg.AuthMode {
	case AuthModeToken:
		if cfg.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required")
		}
	case AuthModeAuthorizer:
		if cfg.AuthzURL == "" {
			return fmt.Errorf("AUTHZ_URL is required")
		}
		if cfg.AuthzClientID == "" {
			return fmt.Errorf("AUTHZ_CLIENT_ID is required")
		}
	default:
		return fmt.Errorf("unsupported AUTH_MODE: %s", cfg.AuthMode)
	}
	if cfg.BorrowApprovalMode != ApprovalAuto && cfg.BorrowApprovalMode != ApprovalStaff {
		return fmt.Errorf("BORROW_APPROVAL_MODE must be %q or %q", ApprovalAuto, ApprovalStaff)
	}
	if cfg.MaxConcurrentBorrows < 1 {
		return fmt.Errorf("MAX_CONCURRENT_BORROWS must be at least 1")
	}
	if cfg.LoanPeriod <= 0 {
		return fmt.Errorf("LOAN_PERIOD must be positive")
	}
	if cfg.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a bool or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go duration syntax ("336h", "30s")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, lower-casing and trimming dots
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		v = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(v)), ".")
		if v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
