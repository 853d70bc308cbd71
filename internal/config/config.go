package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported persistence drivers.
const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

const envProduction = "production"

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Store     StoreConfig
	Mongo     MongoConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Admin     AdminConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Driver string
}

// MongoConfig holds document store connection values.
type MongoConfig struct {
	URI                   string
	Database              string
	ConnectTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
	BcryptCost    int
}

// RateLimitConfig throttles the public auth endpoints.
type RateLimitConfig struct {
	AuthPerMinute int
}

// CORSConfig lists browser origins allowed to call the API.
type CORSConfig struct {
	FrontendURL    string
	AllowedOrigins []string
}

// AdminConfig seeds the bootstrap administrator.
type AdminConfig struct {
	Name     string
	Email    string
	Password string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	env := getEnv("APP_ENV", getEnv("NODE_ENV", "development"))

	secret := os.Getenv("JWT_SECRET")
	if secret == "" && env != envProduction {
		secret = "dev-secret"
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "blood-donation-api"),
			Env:                   env,
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", getEnv("PORT", "5000")),
			Version:               getEnv("APP_VERSION", "1.0.0"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverMongo)),
		},
		Mongo: MongoConfig{
			URI:                   getEnv("MONGO_URI", getEnv("MONGODB_URI", "mongodb://localhost:27017")),
			Database:              getEnv("MONGO_DATABASE", "blooddonation"),
			ConnectTimeoutSeconds: getEnvAsInt("MONGO_CONNECT_TIMEOUT_SECONDS", 10),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:     secret,
			TokenTTLHours: getEnvAsInt("AUTH_TOKEN_TTL_HOURS", 30*24),
			BcryptCost:    getEnvAsInt("AUTH_BCRYPT_COST", 10),
		},
		RateLimit: RateLimitConfig{
			AuthPerMinute: getEnvAsInt("RATE_LIMIT_AUTH_PER_MINUTE", 20),
		},
		CORS: CORSConfig{
			FrontendURL:    os.Getenv("FRONTEND_URL"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		},
		Admin: AdminConfig{
			Name:     getEnv("ADMIN_NAME", "Admin"),
			Email:    getEnv("ADMIN_EMAIL", "admin@blood.com"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports configuration that cannot produce a working server.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.Store.Driver {
	case StoreDriverMongo:
		if c.Mongo.URI == "" {
			return errors.New("MONGO_URI is required for the mongo store")
		}
	case StoreDriverPostgres:
		if c.Postgres.DSN == "" {
			return errors.New("POSTGRES_DSN is required for the postgres store")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsProduction reports whether the service runs in production mode.
func (a AppConfig) IsProduction() bool {
	return a.Env == envProduction
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// ConnectTimeout bounds the initial connection and ping.
func (m MongoConfig) ConnectTimeout() time.Duration {
	if m.ConnectTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(m.ConnectTimeoutSeconds) * time.Second
}

// TokenTTL returns the lifetime of issued tokens.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

// Origins returns the de-duplicated list of allowed browser origins.
func (c CORSConfig) Origins() []string {
	candidates := []string{"http://localhost:3000", "http://localhost:5000", c.FrontendURL}
	candidates = append(candidates, c.AllowedOrigins...)

	seen := make(map[string]struct{}, len(candidates))
	origins := make([]string, 0, len(candidates))
	for _, origin := range candidates {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "" {
			continue
		}
		if _, ok := seen[origin]; ok {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
