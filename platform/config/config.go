// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTSecret() string
}

// AuthServiceConfig provides settings needed by the auth service.
type AuthServiceConfig interface {
	JWTConfig
	GetSessionTokenTTL() time.Duration
	GetMagicLinkTokenTTL() time.Duration
	GetAppBaseURL() string
}

// OAuthConfig provides settings for the Google OAuth sign-in flow.
type OAuthConfig interface {
	GetGoogleClientID() string
	GetGoogleClientSecret() string
	GetOAuthRedirectURL() string
	IsOAuthEnabled() bool
}

// EmailConfig provides settings for email sending.
type EmailConfig interface {
	GetEmailProvider() string // "resend", "smtp" or "" (disabled)
	GetResendAPIKey() string
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// GeocoderConfig provides settings for the external geocoding service.
type GeocoderConfig interface {
	GetMapsAPIKey() string
	IsGeocoderEnabled() bool
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// RedisConfig provides settings for the Redis cache.
type RedisConfig interface {
	GetRedisURL() string
	GetCitiesCacheTTL() time.Duration
}

// OnboardingConfig provides settings for the location onboarding step.
type OnboardingConfig interface {
	// GetLocationSelectorMode returns "list" (static dataset + filter) or
	// "map" (geocoder-backed resolution).
	GetLocationSelectorMode() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	DatabaseURL          string
	JWTSecret            string
	SessionTokenTTL      time.Duration
	MagicLinkTokenTTL    time.Duration
	AppBaseURL           string
	CORSAllowAll         bool
	CORSOrigins          []string
	CORSAllowCreds       bool
	EmailProvider        string
	ResendAPIKey         string
	SMTPHost             string
	SMTPPort             int
	SMTPUsername         string
	SMTPPassword         string
	EmailFromName        string
	EmailFromAddress     string
	GoogleClientID       string
	GoogleClientSecret   string
	OAuthRedirectURL     string
	MapsAPIKey           string
	RedisURL             string
	CitiesCacheTTL       time.Duration
	LocationSelectorMode string
}

// Load reads configuration from the environment, with .env as a fallback for
// local development. Missing required values produce an error, not a panic.
func Load() (*Config, error) {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		SessionTokenTTL:      getDuration("SESSION_TOKEN_TTL", 24*time.Hour),
		MagicLinkTokenTTL:    getDuration("MAGIC_LINK_TOKEN_TTL", 15*time.Minute),
		AppBaseURL:           getEnv("APP_BASE_URL", "http://localhost:3000"),
		CORSAllowAll:         getBool("CORS_ALLOW_ALL", false),
		CORSOrigins:          getList("CORS_ORIGINS"),
		CORSAllowCreds:       getBool("CORS_ALLOW_CREDENTIALS", true),
		EmailProvider:        strings.ToLower(os.Getenv("EMAIL_PROVIDER")),
		ResendAPIKey:         os.Getenv("RESEND_API_KEY"),
		SMTPHost:             os.Getenv("SMTP_HOST"),
		SMTPPort:             getInt("SMTP_PORT", 587),
		SMTPUsername:         os.Getenv("SMTP_USERNAME"),
		SMTPPassword:         os.Getenv("SMTP_PASSWORD"),
		EmailFromName:        getEnv("EMAIL_FROM_NAME", "Colabatr"),
		EmailFromAddress:     getEnv("EMAIL_FROM_ADDRESS", "noreply@colabatr.com"),
		GoogleClientID:       os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:   os.Getenv("GOOGLE_CLIENT_SECRET"),
		OAuthRedirectURL:     os.Getenv("OAUTH_REDIRECT_URL"),
		MapsAPIKey:           os.Getenv("GOOGLE_MAPS_API_KEY"),
		RedisURL:             os.Getenv("REDIS_URL"),
		CitiesCacheTTL:       getDuration("CITIES_CACHE_TTL", 12*time.Hour),
		LocationSelectorMode: getEnv("LOCATION_SELECTOR_MODE", "list"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if mode := cfg.LocationSelectorMode; mode != "list" && mode != "map" {
		return nil, fmt.Errorf("LOCATION_SELECTOR_MODE must be \"list\" or \"map\", got %q", mode)
	}

	return cfg, nil
}

// =============================================================================
// Interface Implementations
// =============================================================================

func (c *Config) GetDatabaseURL() string                 { return c.DatabaseURL }
func (c *Config) GetJWTSecret() string                   { return c.JWTSecret }
func (c *Config) GetSessionTokenTTL() time.Duration      { return c.SessionTokenTTL }
func (c *Config) GetMagicLinkTokenTTL() time.Duration    { return c.MagicLinkTokenTTL }
func (c *Config) GetAppBaseURL() string                  { return c.AppBaseURL }
func (c *Config) GetGoogleClientID() string              { return c.GoogleClientID }
func (c *Config) GetGoogleClientSecret() string          { return c.GoogleClientSecret }
func (c *Config) GetOAuthRedirectURL() string            { return c.OAuthRedirectURL }
func (c *Config) GetEmailProvider() string               { return c.EmailProvider }
func (c *Config) GetResendAPIKey() string                { return c.ResendAPIKey }
func (c *Config) GetSMTPHost() string                    { return c.SMTPHost }
func (c *Config) GetSMTPPort() int                       { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string                { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string                { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string               { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string            { return c.EmailFromAddress }
func (c *Config) GetMapsAPIKey() string                  { return c.MapsAPIKey }
func (c *Config) GetHTTPAddr() string                    { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool                  { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string               { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool                { return c.CORSAllowCreds }
func (c *Config) GetRedisURL() string                    { return c.RedisURL }
func (c *Config) GetCitiesCacheTTL() time.Duration       { return c.CitiesCacheTTL }
func (c *Config) GetLocationSelectorMode() string        { return c.LocationSelectorMode }

func (c *Config) IsOAuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.OAuthRedirectURL != ""
}

func (c *Config) IsGeocoderEnabled() bool {
	return c.MapsAPIKey != ""
}

// =============================================================================
// Env Helpers
// =============================================================================

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
