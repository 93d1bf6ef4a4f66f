package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Environment modes.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Storage drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

type Config struct {
	Port       string        `env:"PORT,        default=3000"`
	Env        string        `env:"ENV,         default=development"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,   default=24h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`
	CORSOrigin string        `env:"CORS_ORIGIN, default=http://localhost:3000"`

	Database  DatabaseConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type DatabaseConfig struct {
	Driver   string `env:"DB_DRIVER,   default=mysql"`
	Host     string `env:"DB_HOST,     default=localhost"`
	Port     int    `env:"DB_PORT,     default=3306"`
	User     string `env:"DB_USER,     default=root"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME,     default=service_catalog"`
	// DSN overrides the connection string assembled from the fields above.
	// For sqlite it is the database file path.
	DSN string `env:"DB_DSN"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=service_catalog"`
}

// RedisConfig points at the shared rate-limit store. An empty Addr selects
// the per-process in-memory store.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type RateLimitConfig struct {
	Window  time.Duration `env:"RATE_LIMIT_WINDOW,   default=15m"`
	Max     int           `env:"RATE_LIMIT_MAX,      default=100"`
	AuthMax int           `env:"AUTH_RATE_LIMIT_MAX, default=5"`
}

// Load reads configuration from the process environment, or from lookuper
// when one is given.
func Load(ctx context.Context, lookuper ...envconfig.Lookuper) (*Config, error) {
	var cfg Config
	ec := &envconfig.Config{Target: &cfg}
	if len(lookuper) > 0 && lookuper[0] != nil {
		ec.Lookuper = lookuper[0]
	}
	if err := envconfig.ProcessWith(ctx, ec); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the storage driver, the environment mode and the rate
// limit budget.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite, DriverMongo:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("config: unsupported ENV %q", c.Env)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("config: RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimit.Window)
	}
	if c.RateLimit.Max <= 0 || c.RateLimit.AuthMax <= 0 {
		return fmt.Errorf("config: RATE_LIMIT_MAX and AUTH_RATE_LIMIT_MAX must be positive, got %d and %d",
			c.RateLimit.Max, c.RateLimit.AuthMax)
	}
	return nil
}

// ErrMissingJWTSecret is returned by ValidateServer when no signing secret
// is configured.
var ErrMissingJWTSecret = errors.New("config: JWT_SECRET is required")

// ValidateServer additionally checks what the HTTP server needs. There is no
// fallback signing secret.
func (c *Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func (c *Config) IsProduction() bool { return c.Env == EnvProduction }

// RateLimitEnabled is false in test mode.
func (c *Config) RateLimitEnabled() bool { return c.Env != EnvTest }
