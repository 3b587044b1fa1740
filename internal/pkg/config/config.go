package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// devSessionSecret signs sessions when SESSION_SECRET is unset outside production.
const devSessionSecret = "food-notes-dev-secret-change-me"

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth    AuthConfig
	Backend BackendConfig
	Mongo   MongoConfig
	Redis   RedisConfig

	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`
}

type AuthConfig struct {
	Username     string `env:"APP_USERNAME"`
	PasswordHash string `env:"APP_PASSWORD_HASH"`

	SessionSecret     string        `env:"SESSION_SECRET"`
	SessionTTL        time.Duration `env:"SESSION_TTL,         default=24h"`
	SessionRenewAfter time.Duration `env:"SESSION_RENEW_AFTER, default=1h"`

	// DisableAuthDev lets every page through without a session.
	DisableAuthDev bool `env:"DISABLE_AUTH_DEV, default=false"`
	// ProtectAPI puts the /api routes behind the session check too.
	ProtectAPI bool `env:"PROTECT_API, default=false"`
	// LoginRateLimit is the allowed login attempts per second per client IP.
	LoginRateLimit float64 `env:"LOGIN_RATE_LIMIT, default=5"`
}

type BackendConfig struct {
	BaseURL string        `env:"API_BASE_URL"`
	APIKey  string        `env:"API_KEY"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=10s"`
}

// MongoConfig is optional: an empty URI disables the audit store.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=food_notes"`
}

// RedisConfig is optional: an empty address selects the in-memory session store.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from l. Tests pass an envconfig.MapLookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Env))
	return env == "production" || env == "prod"
}

// Check applies cross-field rules. It fixes up what can be fixed and
// returns a warning for each adjustment; unrecoverable problems are errors.
func (c *Config) Check() ([]string, error) {
	var warnings []string
	var errs []error

	if c.Auth.DisableAuthDev && c.IsProduction() {
		c.Auth.DisableAuthDev = false
		warnings = append(warnings, "DISABLE_AUTH_DEV is ignored in production")
	}

	if c.Auth.SessionSecret == "" {
		if c.IsProduction() {
			errs = append(errs, errors.New("SESSION_SECRET is required in production"))
		} else {
			c.Auth.SessionSecret = devSessionSecret
			warnings = append(warnings, "SESSION_SECRET not set, using development secret")
		}
	}

	if c.Auth.Username == "" || c.Auth.PasswordHash == "" {
		warnings = append(warnings, "APP_USERNAME or APP_PASSWORD_HASH not set, every login will fail")
	}

	if c.Backend.BaseURL == "" {
		errs = append(errs, errors.New("API_BASE_URL is required"))
	}
	if c.Backend.APIKey == "" {
		warnings = append(warnings, "API_KEY not set, backend calls will be unauthenticated")
	}

	return warnings, errors.Join(errs...)
}
