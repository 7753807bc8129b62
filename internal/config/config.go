package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort        string
	AppEnv         string
	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	JWTSecret  string
	JWTExpiry  time.Duration
	OTPTTL     time.Duration
	BcryptCost int

	SessionStore      string // "dynamo" | "memory"
	SessionTTL        time.Duration
	SessionCookieName string
	CookieSecure      bool

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion              string
	SNSReservationTopicARN string // optional; reservation notifications are skipped when empty

	AllowedOrigins []string // CORS allowed origins; "*" is ignored since cookies are credentials
	TrustedProxies []string // addresses or CIDRs whose X-Forwarded-For is honored by the rate limiter
	RateLimitRPS   float64
	RateLimitBurst int
	APIDocsURL     string
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Customers    string
	Sessions     string
	Reservations string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:        getEnv("APP_PORT", "3000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		DynamoTables: DynamoTables{
			Customers:    getEnv("DYNAMO_TABLE_CUSTOMERS", "customers"),
			Sessions:     getEnv("DYNAMO_TABLE_SESSIONS", "sessions"),
			Reservations: getEnv("DYNAMO_TABLE_RESERVATIONS", "reservations"),
		},

		JWTSecret:  getEnv("JWT_SECRET", ""),
		JWTExpiry:  getEnvDuration("JWT_EXPIRY", time.Hour),
		OTPTTL:     getEnvDuration("OTP_TTL", 5*time.Minute),
		BcryptCost: getEnvInt("BCRYPT_COST", 10),

		SessionStore:      getEnv("SESSION_STORE", "dynamo"),
		SessionTTL:        getEnvDuration("SESSION_TTL", 24*time.Hour),
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "sid"),
		CookieSecure:      getEnvBool("COOKIE_SECURE", true),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion:              getEnv("SNS_REGION", "us-east-1"),
		SNSReservationTopicARN: getEnv("SNS_RESERVATION_TOPIC_ARN", ""),

		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", "http://localhost:5173"),
		TrustedProxies: getEnvList("TRUSTED_PROXIES", ""),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
		APIDocsURL:     getEnv("API_DOCS_URL", "https://api-docs-url.com"),
	}
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvList splits a comma-separated value, dropping blank entries.
func getEnvList(key, fallback string) []string {
	var out []string
	for _, v := range strings.Split(getEnv(key, fallback), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
