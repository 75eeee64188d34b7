package config

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress           string        `env:"RUN_ADDRESS, default=:8080"`
	DatabaseDriver       string        `env:"DATABASE_DRIVER, default=sqlite"`
	DatabaseURI          string        `env:"DATABASE_URI, default=data/pontobip.db"`
	SessionSecret        string        `env:"SESSION_SECRET, default=change-me-in-production"`
	SessionTTL           time.Duration `env:"SESSION_TTL, default=24h"`
	SessionStore         string        `env:"SESSION_STORE, default=memory"`
	SessionPurgeInterval time.Duration `env:"SESSION_PURGE_INTERVAL, default=10m"`
	CookieSecure         bool          `env:"COOKIE_SECURE, default=false"`
	RewardPerPoint       int64         `env:"REWARD_PER_POINT, default=5"`
	Timezone             string        `env:"TIMEZONE, default=America/Sao_Paulo"`
	BcryptCost           int           `env:"BCRYPT_COST, default=10"`
	RankingResetSchedule string        `env:"RANKING_RESET_SCHEDULE"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
	LogLevel             string        `env:"LOG_LEVEL, default=info"`

	Redis  RedisConfig
	Avatar AvatarConfig
	Admin  AdminConfig

	location *time.Location
}

// RedisConfig configures the redis session store.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// AvatarConfig configures avatar persistence.
type AvatarConfig struct {
	Store      string `env:"AVATAR_STORE, default=local"`
	Dir        string `env:"AVATAR_DIR, default=data/avatars"`
	PublicPath string `env:"AVATAR_PUBLIC_PATH, default=/avatars"`
	DefaultURL string `env:"DEFAULT_AVATAR_URL, default=/avatars/default.png"`
	MaxBytes   int64  `env:"AVATAR_MAX_BYTES, default=2097152"`

	S3 S3Config
}

// S3Config points the avatar store at an S3 compatible bucket.
type S3Config struct {
	Bucket    string `env:"S3_BUCKET"`
	Region    string `env:"S3_REGION, default=us-east-1"`
	Endpoint  string `env:"S3_ENDPOINT"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
	PublicURL string `env:"S3_PUBLIC_URL"`
}

// AdminConfig seeds an administrator account at startup when both credentials are set.
type AdminConfig struct {
	Name     string `env:"ADMIN_NAME, default=Administrador"`
	Login    string `env:"ADMIN_MATRICULA"`
	Password string `env:"ADMIN_PASSWORD"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"

	AvatarStoreLocal = "local"
	AvatarStoreS3    = "s3"
)

const (
	defaultRewardPerPoint  = 5
	defaultSessionTTL      = 24 * time.Hour
	defaultPurgeInterval   = 10 * time.Minute
	defaultShutdownTimeout = 10 * time.Second
	defaultAvatarMaxBytes  = 2 << 20
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

// Lookup treats empty variables as unset.
func (l envLookup) Lookup(key string) (string, bool) {
	if v, ok := l(key); ok && v != "" {
		return v, true
	}
	return "", false
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{}
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   cfg,
		Lookuper: lookup,
	}); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	fs := flag.NewFlagSet("pontobip", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sessionTTLStr      = cfg.SessionTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "Database DSN or SQLite file path")
	fs.StringVar(&cfg.DatabaseDriver, "db-driver", cfg.DatabaseDriver, "Database driver: sqlite or postgres")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for signing session cookies")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Session lifetime")
	fs.StringVar(&cfg.SessionStore, "session-store", cfg.SessionStore, "Session store: memory or redis")
	fs.Int64Var(&cfg.RewardPerPoint, "reward", cfg.RewardPerPoint, "Coins credited per clock-in")
	fs.StringVar(&cfg.RankingResetSchedule, "reset-schedule", cfg.RankingResetSchedule, "Cron spec for automatic ranking reset")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.Avatar.Dir, "avatar-dir", cfg.Avatar.Dir, "Directory for locally stored avatars")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup.Lookup("SESSION_SECRET_FILE"); ok {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = strings.TrimSpace(string(content))
	}

	cfg.normalize()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.location, err = time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}

	return cfg, nil
}

func (c *Config) normalize() {
	c.DatabaseDriver = strings.ToLower(strings.TrimSpace(c.DatabaseDriver))
	c.SessionStore = strings.ToLower(strings.TrimSpace(c.SessionStore))
	c.Avatar.Store = strings.ToLower(strings.TrimSpace(c.Avatar.Store))

	if c.RewardPerPoint <= 0 {
		c.RewardPerPoint = defaultRewardPerPoint
	}

	if c.SessionTTL <= 0 {
		c.SessionTTL = defaultSessionTTL
	}

	if c.SessionPurgeInterval <= 0 {
		c.SessionPurgeInterval = defaultPurgeInterval
	}

	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}

	if c.Avatar.MaxBytes <= 0 {
		c.Avatar.MaxBytes = defaultAvatarMaxBytes
	}
}

func (c *Config) validate() error {
	if c.DatabaseURI == "" {
		return fmt.Errorf("database URI must be provided")
	}

	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
	}

	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return fmt.Errorf("unsupported session store %q", c.SessionStore)
	}

	switch c.Avatar.Store {
	case AvatarStoreLocal:
	case AvatarStoreS3:
		if c.Avatar.S3.Bucket == "" {
			return fmt.Errorf("s3 bucket must be provided for s3 avatar store")
		}
	default:
		return fmt.Errorf("unsupported avatar store %q", c.Avatar.Store)
	}

	if c.SessionSecret == "" {
		return fmt.Errorf("session secret must be provided")
	}

	if (c.Admin.Login == "") != (c.Admin.Password == "") {
		return fmt.Errorf("admin matricula and password must be provided together")
	}

	return nil
}

// Location returns the time zone used to render clock-in dates.
func (c *Config) Location() *time.Location {
	if c.location != nil {
		return c.location
	}
	return time.UTC
}
