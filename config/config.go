package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	// SignupModeSimulated keeps signups local: a fixed delay stands in for the network call
	SignupModeSimulated = "simulated"
	// SignupModeResend registers the contact with Resend and emails the e-book
	SignupModeResend = "resend"
)

type Config struct {
	ServerPort     string
	DBPath         string
	Environment    string
	AppURL         string
	AllowedOrigins []string
	LogLevel       string
	ContentPath    string
	// Page behaviour
	HeaderScrollThreshold float64
	SubmitCooldown        time.Duration
	DuplicateWindow       time.Duration
	SimulatedDelay        time.Duration
	SessionIdleTimeout    time.Duration
	// Signup integration
	SignupMode    string
	SignupTimeout time.Duration
	// Email (Resend)
	ResendAPIKey     string
	ResendAudienceID string
	EmailFrom        string
	EmailFromName    string
	EmailTestMode    bool // When true, emails are logged instead of sent
	// E-book asset (Cloudflare R2 when configured, local directory otherwise)
	AssetsDir         string
	EbookKey          string
	EbookLinkTTL      time.Duration
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
	R2Endpoint        string
	// Background jobs (cron specs)
	ExpirePagesSchedule    string
	CleanupEntriesSchedule string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, using system environment variables")
	}

	signupMode := strings.ToLower(getEnv("SIGNUP_MODE", SignupModeSimulated))
	if signupMode != SignupModeSimulated && signupMode != SignupModeResend {
		zap.L().Warn("Unknown SIGNUP_MODE, falling back to simulated", zap.String("mode", signupMode))
		signupMode = SignupModeSimulated
	}

	return &Config{
		ServerPort:            getEnv("SERVER_PORT", "8080"),
		DBPath:                getEnv("DB_PATH", "db/app.db"),
		Environment:           getEnv("ENVIRONMENT", "development"),
		AppURL:                getEnv("APP_URL", "http://localhost:8080"),
		AllowedOrigins:        strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		ContentPath:           getEnv("CONTENT_PATH", "content/landing.yaml"),
		HeaderScrollThreshold: getEnvFloat("HEADER_SCROLL_THRESHOLD", 100),
		SubmitCooldown:        getEnvDuration("SUBMIT_COOLDOWN", 5*time.Second),
		DuplicateWindow:       getEnvDuration("DUPLICATE_WINDOW", 30*time.Second),
		SimulatedDelay:        getEnvDuration("SIMULATED_DELAY", 2*time.Second),
		SessionIdleTimeout:    getEnvDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		SignupMode:            signupMode,
		SignupTimeout:         getEnvDuration("SIGNUP_TIMEOUT", 10*time.Second),
		ResendAPIKey:          getEnv("RESEND_API_KEY", ""),
		ResendAudienceID:      getEnv("RESEND_AUDIENCE_ID", ""),
		EmailFrom:             getEnv("EMAIL_FROM", "hello@minicakes.shop"),
		EmailFromName:         getEnv("EMAIL_FROM_NAME", "Mini-Cakes"),
		EmailTestMode:         getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		AssetsDir:             getEnv("ASSETS_DIR", "assets"),
		EbookKey:              getEnv("EBOOK_KEY", "ebook/mini-cakes.pdf"),
		EbookLinkTTL:          getEnvDuration("EBOOK_LINK_TTL", 72*time.Hour),
		R2AccountID:           getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:         getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:     getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:          getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:           getEnv("R2_PUBLIC_URL", ""),
		R2Endpoint:            getEnv("R2_ENDPOINT", ""),

		ExpirePagesSchedule:    getEnv("EXPIRE_PAGES_SCHEDULE", "@every 1m"),
		CleanupEntriesSchedule: getEnv("CLEANUP_ENTRIES_SCHEDULE", "@hourly"),
	}
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		zap.L().Debug("Using default value", zap.String("key", key), zap.String("default", defaultValue))
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 0 {
		zap.L().Warn("Invalid numeric value, using default", zap.String("key", key), zap.String("value", value))
		return defaultValue
	}
	return parsed
}

// getEnvDuration accepts Go duration strings ("5s") or plain milliseconds ("5000")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if ms, err := strconv.Atoi(value); err == nil && ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed < 0 {
		zap.L().Warn("Invalid duration value, using default", zap.String("key", key), zap.String("value", value))
		return defaultValue
	}
	return parsed
}
