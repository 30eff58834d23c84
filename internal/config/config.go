package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ServiceAuth        = "auth-service"
	ServiceMealPlanner = "meal-planner-service"
	ServiceNutritionAI = "nutrition-ai-service"
)

// placeholderSecret is the value shipped in example env files.
const placeholderSecret = "changeme_generate_secure_jwt_secret_key_here"

var defaultPorts = map[string]string{
	ServiceAuth:        "8000",
	ServiceMealPlanner: "8001",
	ServiceNutritionAI: "8002",
}

type Config struct {
	// Application
	Service string
	AppName string
	AppEnv  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration
	CORSOrigins      []string

	// Rate limiting (a limit <= 0 disables it)
	AIRateLimit    int
	AIRateWindow   time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration

	// TrustProxy keys rate limits on X-Forwarded-For / X-Real-IP instead of the socket address.
	TrustProxy bool

	// LLM provider (OpenAI-compatible chat completions)
	LLMAPIKey    string
	LLMBaseURL   string
	LLMModel     string
	LLMChatModel string
	LLMTimeout   time.Duration

	// Cross-service
	AuthServiceURL     string
	AuthServiceTimeout time.Duration

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible, optional: avatar endpoints are disabled without a bucket)
	S3Region               string
	S3Bucket               string
	S3AccessKey            string
	S3SecretKey            string
	S3Endpoint             string
	S3PresignExpiryPublic  time.Duration
	S3PresignExpiryPrivate time.Duration
}

// Load reads the configuration for the named service.
// Each service gets its own default port and its own database file.
func Load(service string) *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		Service: service,
		AppName: envString("APP_NAME", "MacroMind"),
		AppEnv:  envString("APP_ENV", "development"),
		Port:    envString("PORT", defaultPorts[service]),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/"+service+".db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret:        envRequired("JWT_SECRET"),
		JWTAccessExpiry:  envDuration("JWT_ACCESS_EXPIRY", 30*time.Minute),
		JWTRefreshExpiry: envDuration("JWT_REFRESH_EXPIRY", 168*time.Hour), // 7 days
		CORSOrigins:      envList("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173,http://localhost:5174"),

		// Rate limiting
		AIRateLimit:    envInt("AI_RATE_LIMIT", 10),
		AIRateWindow:   envDuration("AI_RATE_WINDOW", time.Minute),
		AuthRateLimit:  envInt("AUTH_RATE_LIMIT", 20),
		AuthRateWindow: envDuration("AUTH_RATE_WINDOW", time.Minute),
		TrustProxy:     envBool("TRUSTED_PROXY", false),

		// LLM
		LLMAPIKey:    envString("LLM_API_KEY", ""),
		LLMBaseURL:   envString("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMModel:     envString("LLM_MODEL", "gpt-4o-mini"),
		LLMChatModel: envString("LLM_CHAT_MODEL", "gpt-3.5-turbo"),
		LLMTimeout:   envDuration("LLM_TIMEOUT", 60*time.Second),

		// Cross-service
		AuthServiceURL:     envString("AUTH_SERVICE_URL", "http://localhost:8000"),
		AuthServiceTimeout: envDuration("AUTH_SERVICE_TIMEOUT", 5*time.Second),

		// Email (RESEND_API_KEY optional in development)
		EmailFrom:    envString("EMAIL_FROM", "noreply@macromind.app"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage
		S3Region:               envString("S3_REGION", "us-east-1"),
		S3Bucket:               envString("S3_BUCKET", ""),
		S3AccessKey:            envString("S3_ACCESS_KEY", ""),
		S3SecretKey:            envString("S3_SECRET_KEY", ""),
		S3Endpoint:             envString("S3_ENDPOINT", ""),
		S3PresignExpiryPublic:  envDuration("S3_PRESIGN_EXPIRY_PUBLIC", 168*time.Hour),
		S3PresignExpiryPrivate: envDuration("S3_PRESIGN_EXPIRY_PRIVATE", 1*time.Hour),
	}

	if cfg.JWTSecret == placeholderSecret {
		slog.Error("JWT_SECRET is using the placeholder value, set a secure key")
		os.Exit(1)
	}

	warnDisabledLimits(cfg)

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures services that only degrade in development are configured.
func validateProduction(cfg *Config) {
	if cfg.Service == ServiceAuth && cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
	if cfg.Service != ServiceAuth && cfg.LLMAPIKey == "" {
		slog.Warn("LLM_API_KEY not set, generation will use fallback content")
	}
}

func warnDisabledLimits(cfg *Config) {
	if cfg.AuthRateLimit <= 0 {
		slog.Warn("AUTH_RATE_LIMIT <= 0, auth rate limiting disabled", "value", cfg.AuthRateLimit)
	}
	if cfg.AIRateLimit <= 0 {
		slog.Warn("AI_RATE_LIMIT <= 0, AI rate limiting disabled", "value", cfg.AIRateLimit)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envList(key, def string) []string {
	var out []string
	for _, part := range strings.Split(envString(key, def), ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// StorageEnabled reports whether an S3 bucket is configured.
func (c *Config) StorageEnabled() bool {
	return c.S3Bucket != ""
}

// LLMConfigured reports whether provider credentials are present.
func (c *Config) LLMConfigured() bool {
	return c.LLMAPIKey != ""
}
