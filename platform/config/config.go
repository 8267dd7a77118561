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

// JWTConfig provides admin token validation settings for middleware.
type JWTConfig interface {
	GetAdminJWTSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetPublicRateLimit() float64
	GetPublicRateBurst() int
}

// ListingsConfig provides settings for the listings catalog.
type ListingsConfig interface {
	GetListingsSource() string
	GetListingsCacheTTL() time.Duration
	GetAppBaseURL() string
}

// GeminiConfig provides settings for the Gemini-backed assistant.
type GeminiConfig interface {
	GetGeminiAPIKey() string
	GetChatModel() string
	GetGroundedModel() string
	GetDescriptionModel() string
	GetChatSessionTTL() time.Duration
}

// CacheConfig provides settings for the shared answer cache.
type CacheConfig interface {
	GetRedisURL() string
	GetAICacheTTL() time.Duration
	IsCacheEnabled() bool
}

// SchedulerConfig provides settings for the asynq scheduler.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	IsSchedulerEnabled() bool
}

// SMTPConfig provides settings for outgoing email.
type SMTPConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetAgentInboxAddress() string
	IsEmailEnabled() bool
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinioBucketListingImages() string
	IsMinIOEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                      string
	HTTPAddr                 string
	DatabaseURL              string
	AdminJWTSecret           string
	CORSAllowAll             bool
	CORSOrigins              []string
	CORSAllowCreds           bool
	PublicRateLimit          float64
	PublicRateBurst          int
	AppBaseURL               string
	ListingsSource           string
	ListingsCacheTTL         time.Duration
	GeminiAPIKey             string
	ChatModel                string
	GroundedModel            string
	DescriptionModel         string
	ChatSessionTTL           time.Duration
	RedisURL                 string
	RedisTLSInsecure         bool
	AICacheTTL               time.Duration
	AsynqQueueName           string
	AsynqConcurrency         int
	SMTPHost                 string
	SMTPPort                 int
	SMTPUsername             string
	SMTPPassword             string
	EmailFromName            string
	EmailFromAddress         string
	AgentInboxAddress        string
	MinIOEndpoint            string
	MinIOAccessKey           string
	MinIOSecretKey           string
	MinIOUseSSL              bool
	MinIOMaxFileSize         int64
	MinioBucketListingImages string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetAdminJWTSecret() string { return c.AdminJWTSecret }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string         { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool       { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string    { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool     { return c.CORSAllowCreds }
func (c *Config) GetPublicRateLimit() float64 { return c.PublicRateLimit }
func (c *Config) GetPublicRateBurst() int     { return c.PublicRateBurst }

// ListingsConfig implementation
func (c *Config) GetListingsSource() string          { return c.ListingsSource }
func (c *Config) GetListingsCacheTTL() time.Duration { return c.ListingsCacheTTL }
func (c *Config) GetAppBaseURL() string              { return c.AppBaseURL }

// GeminiConfig implementation
func (c *Config) GetGeminiAPIKey() string          { return c.GeminiAPIKey }
func (c *Config) GetChatModel() string             { return c.ChatModel }
func (c *Config) GetGroundedModel() string         { return c.GroundedModel }
func (c *Config) GetDescriptionModel() string      { return c.DescriptionModel }
func (c *Config) GetChatSessionTTL() time.Duration { return c.ChatSessionTTL }

// CacheConfig and SchedulerConfig implementation
func (c *Config) GetRedisURL() string          { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool    { return c.RedisTLSInsecure }
func (c *Config) GetAICacheTTL() time.Duration { return c.AICacheTTL }
func (c *Config) IsCacheEnabled() bool         { return c.RedisURL != "" && c.AICacheTTL > 0 }
func (c *Config) GetAsynqQueueName() string    { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int     { return c.AsynqConcurrency }
func (c *Config) IsSchedulerEnabled() bool     { return c.RedisURL != "" }

// SMTPConfig implementation
func (c *Config) GetSMTPHost() string          { return c.SMTPHost }
func (c *Config) GetSMTPPort() int             { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string      { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string      { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string     { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string  { return c.EmailFromAddress }
func (c *Config) GetAgentInboxAddress() string { return c.AgentInboxAddress }
func (c *Config) IsEmailEnabled() bool         { return c.SMTPHost != "" }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string   { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string  { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string  { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool       { return c.MinIOUseSSL }
func (c *Config) GetMinIOMaxFileSize() int64 { return c.MinIOMaxFileSize }
func (c *Config) GetMinioBucketListingImages() string {
	return c.MinioBucketListingImages
}
func (c *Config) IsMinIOEnabled() bool { return c.MinIOEndpoint != "" }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                      getEnv("APP_ENV", "development"),
		HTTPAddr:                 getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:              getEnv("DATABASE_URL", ""),
		AdminJWTSecret:           getEnv("ADMIN_JWT_SECRET", ""),
		CORSAllowAll:             corsAllowAll,
		CORSOrigins:              corsOrigins,
		CORSAllowCreds:           strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		PublicRateLimit:          mustFloat(getEnv("PUBLIC_RATE_LIMIT", "1")),
		PublicRateBurst:          mustInt(getEnv("PUBLIC_RATE_BURST", "10")),
		AppBaseURL:               strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:5173"), "/"),
		ListingsSource:           strings.ToLower(getEnv("LISTINGS_SOURCE", "postgres")),
		ListingsCacheTTL:         mustDuration(getEnv("LISTINGS_CACHE_TTL", "5m")),
		GeminiAPIKey:             getEnv("GEMINI_API_KEY", ""),
		ChatModel:                getEnv("GEMINI_CHAT_MODEL", "gemini-flash-lite-latest"),
		GroundedModel:            getEnv("GEMINI_GROUNDED_MODEL", "gemini-2.5-flash"),
		DescriptionModel:         getEnv("GEMINI_DESCRIPTION_MODEL", "gemini-2.5-pro"),
		ChatSessionTTL:           mustDuration(getEnv("CHAT_SESSION_TTL", "30m")),
		RedisURL:                 getEnv("REDIS_URL", ""),
		RedisTLSInsecure:         strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AICacheTTL:               mustDuration(getEnv("AI_CACHE_TTL", "1h")),
		AsynqQueueName:           getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:         mustInt(getEnv("ASYNQ_CONCURRENCY", "5")),
		SMTPHost:                 getEnv("SMTP_HOST", ""),
		SMTPPort:                 mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:             getEnv("SMTP_USERNAME", ""),
		SMTPPassword:             getEnv("SMTP_PASSWORD", ""),
		EmailFromName:            getEnv("EMAIL_FROM_NAME", "HomelyAI"),
		EmailFromAddress:         getEnv("EMAIL_FROM_ADDRESS", ""),
		AgentInboxAddress:        getEnv("AGENT_INBOX_ADDRESS", ""),
		MinIOEndpoint:            getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:           getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:           getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:              strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinIOMaxFileSize:         mustInt64(getEnv("MINIO_MAX_FILE_SIZE", "10485760")),
		MinioBucketListingImages: getEnv("MINIO_BUCKET_LISTING_IMAGES", "listing-images"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.AdminJWTSecret == "" {
		return fmt.Errorf("ADMIN_JWT_SECRET is required")
	}
	if c.ListingsSource != "postgres" && c.ListingsSource != "static" {
		return fmt.Errorf("LISTINGS_SOURCE must be postgres or static, got %q", c.ListingsSource)
	}
	if c.IsEmailEnabled() && (c.EmailFromAddress == "" || c.AgentInboxAddress == "") {
		return fmt.Errorf("EMAIL_FROM_ADDRESS and AGENT_INBOX_ADDRESS are required when SMTP_HOST is set")
	}
	if c.CORSAllowAll && c.CORSAllowCreds {
		return fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
