package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverMongoDB  = "mongodb"
	DriverPostgres = "postgres"

	EnvProduction = "production"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV" default:"development"`
	Port         int    `envconfig:"PORT" default:"3000"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS" default:"*"`
	LogFile      string `envconfig:"LOG_FILE"`

	DB struct {
		Driver    string `envconfig:"DB_DRIVER" default:"mongodb"`
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	MongoDB struct {
		URI      string        `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
		Database string        `envconfig:"MONGODB_DATABASE" default:"movies"`
		Timeout  time.Duration `envconfig:"MONGODB_TIMEOUT" default:"10s"`
	}
	Auth struct {
		JWTSecret       string        `envconfig:"AUTH_JWT_SECRET"`
		TokenTTL        time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"1h"`
		RateLimit       int           `envconfig:"AUTH_RATE_LIMIT" default:"5"`
		RateWindow      time.Duration `envconfig:"AUTH_RATE_WINDOW" default:"15m"`
		MaxLoginRetries int           `envconfig:"AUTH_MAX_LOGIN_RETRIES" default:"5"`
		LockDuration    time.Duration `envconfig:"AUTH_LOCK_DURATION" default:"15m"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	if cfg.DB.Driver != DriverMongoDB && cfg.DB.Driver != DriverPostgres {
		return nil, fmt.Errorf("load config error: unsupported DB_DRIVER %q", cfg.DB.Driver)
	}

	return cfg, nil
}

// ValidateServer checks the settings only the API server needs. Tokens must
// never be signed with an empty HMAC key.
func (c *Config) ValidateServer() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("config error: AUTH_JWT_SECRET is required")
	}
	return nil
}

// IsProduction reports whether error responses must hide internal detail.
func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// Origins splits ALLOW_ORIGINS into a list for CORS.
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
