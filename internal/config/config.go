package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
	Session SessionConfig
	Admin   AdminConfig
	MinIO   MinIOConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxBodyBytes int64
	// CORSOrigin is the single browser origin allowed to call the API
	// cross-site; empty disables CORS headers.
	CORSOrigin   string
}

// StoreConfig selects the document store backend: "memory" or "mongo".
type StoreConfig struct {
	Backend string
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// SessionConfig controls the admin session cookie and its backing store
// ("memory", "redis" or "mongo").
type SessionConfig struct {
	Backend       string
	Secret        string
	TTL           time.Duration
	CookieName    string
	SweepSchedule string
}

// AdminConfig holds the single shared admin secret. PasswordHash (bcrypt)
// takes precedence over Password when both are set.
type AdminConfig struct {
	Password     string
	PasswordHash string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	PublicURL string
}

// Production reports whether the server runs with production settings
// (secure cookies).
func (c *Config) Production() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// LoadConfig loads configuration from environment variables and .env file
// and validates it for the API server.
func LoadConfig() (*Config, error) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads configuration without validating it. Tools that need only part
// of it (music-import) check what they use themselves.
func Load() *Config {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("SERVER_MAX_BODY_MB", 50)
	v.SetDefault("STORE_BACKEND", "memory")
	v.SetDefault("MONGODB_DATABASE", "contos")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SESSION_BACKEND", "memory")
	v.SetDefault("SESSION_SECRET", "contos-para-dormir-secret-key")
	v.SetDefault("SESSION_TTL_HOURS", 24)
	v.SetDefault("SESSION_COOKIE_NAME", "contos.sid")
	v.SetDefault("SESSION_SWEEP_SCHEDULE", "@every 10m")
	v.SetDefault("MINIO_BUCKET", "contos-music")

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Environment:  v.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxBodyBytes: v.GetInt64("SERVER_MAX_BODY_MB") << 20,
			CORSOrigin:   v.GetString("SERVER_CORS_ORIGIN"),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(v.GetString("STORE_BACKEND")),
		},
		MongoDB: MongoDBConfig{
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			Backend:       strings.ToLower(v.GetString("SESSION_BACKEND")),
			Secret:        v.GetString("SESSION_SECRET"),
			TTL:           time.Duration(v.GetInt("SESSION_TTL_HOURS")) * time.Hour,
			CookieName:    v.GetString("SESSION_COOKIE_NAME"),
			SweepSchedule: v.GetString("SESSION_SWEEP_SCHEDULE"),
		},
		Admin: AdminConfig{
			Password:     v.GetString("ADMIN_PASSWORD"),
			PasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			PublicURL: v.GetString("MINIO_PUBLIC_URL"),
		},
	}
	return cfg
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Store.Backend {
	case "memory":
	case "mongo":
		if c.MongoDB.URI == "" {
			errs = append(errs, errors.New("STORE_BACKEND=mongo requires MONGODB_URI"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend))
	}
	switch c.Session.Backend {
	case "memory":
	case "redis":
		if c.Redis.Host == "" {
			errs = append(errs, errors.New("SESSION_BACKEND=redis requires REDIS_HOST"))
		}
	case "mongo":
		if c.MongoDB.URI == "" {
			errs = append(errs, errors.New("SESSION_BACKEND=mongo requires MONGODB_URI"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_BACKEND %q", c.Session.Backend))
	}
	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		errs = append(errs, errors.New("one of ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL_HOURS must be positive"))
	}
	if c.Session.Secret == "" {
		errs = append(errs, errors.New("SESSION_SECRET must not be empty"))
	}
	return errors.Join(errs...)
}
