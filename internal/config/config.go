// Package config provides centralized configuration management for the
// service. It loads configuration from environment variables with sensible
// defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Submit   SubmitConfig
	Auth     AuthConfig
	Captcha  CaptchaConfig
	Rate     RateLimitConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 0 for SSE)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"0s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	// MaxConns is the maximum number of connections in the pool (default: 20)
	MaxConns int `env:"DB_MAX_CONNS" default:"20"`

	// MinConns is the minimum number of connections to keep open (default: 4)
	MinConns int `env:"DB_MIN_CONNS" default:"4"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// StorageConfig holds CV object storage settings (S3-compatible).
type StorageConfig struct {
	// Endpoint is the S3-compatible endpoint; empty means AWS S3 proper
	Endpoint string `env:"STORAGE_ENDPOINT"`

	// Region is the storage region (default: eu-central-1)
	Region string `env:"STORAGE_REGION" default:"eu-central-1"`

	// Bucket is the bucket holding uploaded CVs (required)
	Bucket string `env:"STORAGE_BUCKET" required:"true"`

	// AccessKey and SecretKey are the static credentials (required)
	AccessKey string `env:"STORAGE_ACCESS_KEY" required:"true"`
	SecretKey string `env:"STORAGE_SECRET_KEY" required:"true"`

	// KeyPrefix namespaces uploaded objects (default: cvs/)
	KeyPrefix string `env:"STORAGE_KEY_PREFIX" default:"cvs/"`

	// PublicBaseURL is the base URL under which stored objects resolve (required)
	PublicBaseURL string `env:"STORAGE_PUBLIC_BASE_URL" required:"true"`

	// UsePathStyle forces path-style addressing, needed for MinIO (default: true)
	UsePathStyle bool `env:"STORAGE_USE_PATH_STYLE" default:"true"`

	// Timeout bounds a single upload transfer (default: 30s)
	Timeout time.Duration `env:"STORAGE_TIMEOUT" default:"30s"`

	// RetryMaxAttempts bounds SDK retries on transient failures (default: 3)
	RetryMaxAttempts int `env:"STORAGE_RETRY_MAX_ATTEMPTS" default:"3"`
}

// SubmitConfig holds submission pipeline settings.
type SubmitConfig struct {
	// MaxFileSize is the maximum allowed CV size in bytes (default: 10MiB)
	MaxFileSize int64 `env:"SUBMIT_MAX_FILE_SIZE" default:"10485760"`

	// MaxConcurrent is the maximum number of submissions in flight (default: 4)
	MaxConcurrent int `env:"SUBMIT_MAX_CONCURRENT" default:"4"`

	// Timeout bounds one submission end to end (default: 2m)
	Timeout time.Duration `env:"SUBMIT_TIMEOUT" default:"2m"`

	// MaxWait bounds how long a submission waits for a free processing slot
	// before being rejected (default: 10s). Kept well below Timeout so a
	// saturated queue turns clients away quickly.
	MaxWait time.Duration `env:"SUBMIT_MAX_WAIT" default:"10s"`
}

// AuthConfig holds reviewer authentication settings.
type AuthConfig struct {
	// ReviewerEmail is the authorized reviewer login (required)
	ReviewerEmail string `env:"AUTH_REVIEWER_EMAIL" required:"true"`

	// ReviewerPasswordHash is the bcrypt hash of the reviewer password (required)
	ReviewerPasswordHash string `env:"AUTH_REVIEWER_PASSWORD_HASH" required:"true"`

	// JWTSecret signs session tokens (required)
	JWTSecret string `env:"AUTH_JWT_SECRET" required:"true"`

	// TokenTTL is the session token lifetime (default: 12h)
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL" default:"12h"`
}

// CaptchaConfig holds bot-verification settings. Disabled by default; when
// disabled, submissions are accepted without a verification token.
type CaptchaConfig struct {
	// Enabled turns bot verification on (default: false)
	Enabled bool `env:"CAPTCHA_ENABLED" default:"false"`

	// Secret is the server-side verification secret
	Secret string `env:"CAPTCHA_SECRET"`

	// VerifyURL is the token verification endpoint
	VerifyURL string `env:"CAPTCHA_VERIFY_URL" default:"https://www.google.com/recaptcha/api/siteverify"`

	// Timeout bounds one verification call (default: 10s)
	Timeout time.Duration `env:"CAPTCHA_TIMEOUT" default:"10s"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
