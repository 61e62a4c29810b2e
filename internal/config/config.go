package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	// MaxQueueLimit is the hard cap on how many entries a queue listing returns.
	MaxQueueLimit = 30

	defaultAdminPassword = "admin123"
	minTokenSecretLen    = 32
)

type Config struct {
	Port                  string        `mapstructure:"PORT"`
	Env                   string        `mapstructure:"ENV"`
	LogLevel              string        `mapstructure:"LOG_LEVEL"`
	StoreDriver           string        `mapstructure:"STORE_DRIVER"`
	DatabaseURL           string        `mapstructure:"DATABASE_URL"`
	DBMaxConns            int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns            int32         `mapstructure:"DB_MIN_CONNS"`
	RedisURL              string        `mapstructure:"REDIS_URL"`
	CatalogCacheTTL       time.Duration `mapstructure:"CATALOG_CACHE_TTL"`
	NATSURL               string        `mapstructure:"NATS_URL"`
	NATSSubjectPrefix     string        `mapstructure:"NATS_SUBJECT_PREFIX"`
	AdminUsername         string        `mapstructure:"ADMIN_USERNAME"`
	AdminPassword         string        `mapstructure:"ADMIN_PASSWORD"`
	AdminPasswordHash     string        `mapstructure:"ADMIN_PASSWORD_HASH"`
	AdminTokenSecret      string        `mapstructure:"ADMIN_TOKEN_SECRET"`
	AdminTokenTTL         time.Duration `mapstructure:"ADMIN_TOKEN_TTL"`
	CORSOrigins           []string      `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS          float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst        int           `mapstructure:"RATE_LIMIT_BURST"`
	RequestTimeout        time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	StaticDir             string        `mapstructure:"STATIC_DIR"`
	QueueLimit            int           `mapstructure:"QUEUE_LIMIT"`
	LogLimit              int           `mapstructure:"LOG_LIMIT"`
	RedFlagBonusThreshold int           `mapstructure:"RED_FLAG_BONUS_THRESHOLD"`
}

var envKeys = []string{
	"PORT", "ENV", "LOG_LEVEL", "STORE_DRIVER",
	"DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS",
	"REDIS_URL", "CATALOG_CACHE_TTL",
	"NATS_URL", "NATS_SUBJECT_PREFIX",
	"ADMIN_USERNAME", "ADMIN_PASSWORD", "ADMIN_PASSWORD_HASH",
	"ADMIN_TOKEN_SECRET", "ADMIN_TOKEN_TTL",
	"CORS_ORIGINS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "REQUEST_TIMEOUT",
	"STATIC_DIR", "QUEUE_LIMIT", "LOG_LIMIT", "RED_FLAG_BONUS_THRESHOLD",
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "3000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("CATALOG_CACHE_TTL", "60s")
	v.SetDefault("NATS_SUBJECT_PREFIX", "mediqueue")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", defaultAdminPassword)
	v.SetDefault("ADMIN_TOKEN_TTL", "8h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)
	v.SetDefault("REQUEST_TIMEOUT", "15s")
	v.SetDefault("QUEUE_LIMIT", MaxQueueLimit)
	v.SetDefault("LOG_LIMIT", 20)
	v.SetDefault("RED_FLAG_BONUS_THRESHOLD", 2)

	// Unmarshal only sees keys viper knows about.
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	// .env is optional.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if origins := v.GetString("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = splitList(origins)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// UsesPostgres reports whether catalog and queue are backed by Postgres.
func (c *Config) UsesPostgres() bool {
	return c.StoreDriver == StoreDriverPostgres
}

// TokensEnabled reports whether admin session tokens can be issued.
func (c *Config) TokensEnabled() bool {
	return c.AdminTokenSecret != ""
}

// Validate checks that the configuration is safe to run.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER is %q", StoreDriverPostgres)
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverPostgres, StoreDriverMemory, c.StoreDriver)
	}

	if c.IsProduction() && c.AdminPasswordHash == "" && c.AdminPassword == defaultAdminPassword {
		return fmt.Errorf("refusing to run in production with the default admin password; set ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
	}
	if c.AdminTokenSecret != "" && len(c.AdminTokenSecret) < minTokenSecretLen {
		return fmt.Errorf("ADMIN_TOKEN_SECRET must be at least %d bytes, got %d", minTokenSecretLen, len(c.AdminTokenSecret))
	}
	if c.QueueLimit < 1 || c.QueueLimit > MaxQueueLimit {
		return fmt.Errorf("QUEUE_LIMIT must be between 1 and %d, got %d", MaxQueueLimit, c.QueueLimit)
	}
	if c.LogLimit < 1 {
		return fmt.Errorf("LOG_LIMIT must be positive, got %d", c.LogLimit)
	}
	if c.RedFlagBonusThreshold < 1 {
		return fmt.Errorf("RED_FLAG_BONUS_THRESHOLD must be at least 1, got %d", c.RedFlagBonusThreshold)
	}
	return nil
}
