package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Blob      BlobConfig
	AI        AIConfig
	Migration MigrationConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type BlobConfig struct {
	Dir       string
	PublicURL string
}

type AIConfig struct {
	GeminiAPIKey  string
	Model         string
	RatePerMinute int
}

type MigrationConfig struct {
	Dir string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	def := func(key, fallback string) string {
		if v := opt(key); v != "" {
			return v
		}
		return fallback
	}

	cfg.App = AppConfig{
		AppName:     def("APP_NAME", "ClarityHire"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     req("DB_HOST"),
		DBPort:     def("DB_PORT", "5432"),
		DBName:     req("DB_NAME"),
		DBUser:     req("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  def("DB_SSL_MODE", "disable"),

		ConnectTimeout:        durationSeconds(opt("DB_CONNECT_TIMEOUT"), 5*time.Second),
		PoolMaxConns:          int32(intOr(opt("DB_POOL_MAX_CONNS"), 0)),
		PoolMinConns:          int32(intOr(opt("DB_POOL_MIN_CONNS"), 0)),
		PoolMaxConnLifetime:   durationSeconds(opt("DB_POOL_MAX_CONN_LIFETIME"), 0),
		PoolMaxConnIdleTime:   durationSeconds(opt("DB_POOL_MAX_CONN_IDLE_TIME"), 0),
		PoolHealthCheckPeriod: durationSeconds(opt("DB_POOL_HEALTH_CHECK_PERIOD"), 0),
	}

	cfg.Redis = RedisConfig{
		Host:     def("REDIS_HOST", "localhost"),
		Port:     def("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      durationSeconds(opt("REDIS_TTL"), 600*time.Second),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  durationMinutes(opt("JWT_ACCESS_EXPIRES_MINUTES"), 15*time.Minute),
		RefreshExpiresIn: durationMinutes(opt("JWT_REFRESH_EXPIRES_MINUTES"), 7*24*time.Hour),
	}

	cfg.Blob = BlobConfig{
		Dir:       def("BLOB_DIR", "./data/blobs"),
		PublicURL: def("BLOB_PUBLIC_URL", "/blobs"),
	}

	cfg.AI = AIConfig{
		GeminiAPIKey:  opt("GEMINI_API_KEY"),
		Model:         def("GEMINI_MODEL", "gemini-2.5-flash"),
		RatePerMinute: intOr(opt("AI_RATE_PER_MINUTE"), 20),
	}

	cfg.Migration = MigrationConfig{
		Dir: opt("MIGRATIONS_DIR"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func intOr(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func durationSeconds(raw string, fallback time.Duration) time.Duration {
	v := intOr(raw, -1)
	if v <= 0 {
		return fallback
	}
	return time.Duration(v) * time.Second
}

func durationMinutes(raw string, fallback time.Duration) time.Duration {
	v := intOr(raw, -1)
	if v <= 0 {
		return fallback
	}
	return time.Duration(v) * time.Minute
}
