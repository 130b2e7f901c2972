// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// AuthorityHost is the host of the authority that issues asset keys.
	AuthorityHost string
	// AuthorityAccessToken is the management token used to request asset keys.
	AuthorityAccessToken string
	// AuthorityTimeout bounds each asset key request to the authority.
	AuthorityTimeout time.Duration

	// SpaceID is the space this deployment serves.
	SpaceID string
	// EnvironmentID is the environment within the space.
	EnvironmentID string

	// SecureAssetHost is the parent host of the embargoed asset CDN; asset
	// subdomains (images, assets, downloads, videos) hang off it.
	SecureAssetHost string
	// PublicBaseURL is this proxy's externally visible base URL, used when
	// rewriting asset URLs in content documents.
	PublicBaseURL string

	// SignedURLTTL is the default validity window of signed URLs when the
	// caller does not request one.
	SignedURLTTL time.Duration
	// KeyCacheJanitorInterval is how often expired asset key cache entries
	// are swept. Zero disables the sweep.
	KeyCacheJanitorInterval time.Duration

	// RequestAuthToken is the static bearer token required on signing
	// requests. Empty means requests are not authenticated by this service.
	RequestAuthToken string

	// RateLimitEnabled indicates whether per-IP rate limiting of signing requests is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for signing request rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Authority
		AuthorityHost:        env.GetString("AUTHORITY_HOST", "api.contentful.com"),
		AuthorityAccessToken: env.GetString("AUTHORITY_ACCESS_TOKEN", ""),
		AuthorityTimeout:     env.GetDuration("AUTHORITY_TIMEOUT_SECONDS", 30, time.Second),

		// Scope
		SpaceID:       env.GetString("SPACE_ID", ""),
		EnvironmentID: env.GetString("ENVIRONMENT_ID", "master"),

		// Asset hosts
		SecureAssetHost: env.GetString("SECURE_ASSET_HOST", "secure.ctfassets.net"),
		PublicBaseURL:   env.GetString("PUBLIC_BASE_URL", "http://localhost:8080"),

		// Signing
		SignedURLTTL:            env.GetDuration("SIGNED_URL_TTL_SECONDS", 900, time.Second),
		KeyCacheJanitorInterval: env.GetDuration("KEY_CACHE_JANITOR_INTERVAL_MINUTES", 60, time.Minute),

		// Request authentication
		RequestAuthToken: env.GetString("REQUEST_AUTH_TOKEN", ""),

		// Rate Limiting (per-IP, signing endpoints)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "embargo"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	case "info", "warn", "error":
		return "release"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
