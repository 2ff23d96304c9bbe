package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	Env     string `envconfig:"APP_ENV" default:"development"`
	Port    int    `envconfig:"APP_PORT" default:"8080"`
	BaseURL string `envconfig:"BASE_URL" default:"http://localhost:5173"`
	DB      DBConfig
	CORS    CORSConfig
	JWT     JWTConfig
	Gemini  GeminiConfig
	Cache   CacheConfig
}

// database configuration
type DBConfig struct {
	DSN          string        `envconfig:"DATABASE_URL" required:"true"`
	MaxOpenConns int           `envconfig:"DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleTime  time.Duration `envconfig:"DB_MAX_IDLE_TIME" default:"15m"`
}

// CORS configuration
type CORSConfig struct {
	TrustedOrigins []string `envconfig:"CORS_TRUSTED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

// JWT configuration for the identity collaborator; tokens are optional and
// only supply the caller email claim.
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" default:""`
}

// Gemini AI configuration
type GeminiConfig struct {
	APIKey     string        `envconfig:"GEMINI_API_KEY" default:""`
	Model      string        `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	Timeout    time.Duration `envconfig:"GEMINI_TIMEOUT" default:"30s"`
	Disabled   bool          `envconfig:"DISABLE_AI" default:"false"`
	RatePerMin int           `envconfig:"GEMINI_RATE_LIMIT" default:"50"`
	Burst      int           `envconfig:"GEMINI_RATE_BURST" default:"5"`
}

// Redis cache configuration; leaving Addr empty disables the cache.
type CacheConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:""`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"CACHE_TTL" default:"10m"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Env] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, staging, production, test)", c.Env)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", c.Port)
	}
	if c.DB.MaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1")
	}
	if c.Gemini.RatePerMin < 1 {
		return fmt.Errorf("GEMINI_RATE_LIMIT must be at least 1")
	}
	if c.Gemini.Burst < 1 {
		return fmt.Errorf("GEMINI_RATE_BURST must be at least 1")
	}
	if !c.Gemini.Disabled && c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required unless DISABLE_AI is set")
	}
	if len(c.CORS.TrustedOrigins) == 0 {
		return fmt.Errorf("at least one trusted origin must be specified")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// GetCORSOrigins returns the list of trusted CORS origins
func (c *Config) GetCORSOrigins() []string {
	origins := make([]string, 0, len(c.CORS.TrustedOrigins))
	for _, origin := range c.CORS.TrustedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Env=%s, Port=%d, DB.MaxOpenConns=%d, Gemini.Model=%s, Gemini.Disabled=%t, Gemini.RateLimit=%d/min, Cache.Enabled=%t}",
		c.Env, c.Port, c.DB.MaxOpenConns, c.Gemini.Model, c.Gemini.Disabled, c.Gemini.RatePerMin, c.Cache.Addr != "")
}
