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

type Config struct {
	Environment string
	Port        string
	LogLevel    string
	APIPrefix   string

	PostgresURI    string
	DBMaxOpenConns int
	DBMaxIdleConns int
	RunMigrations  bool

	RedisAddr   string
	JobCacheTTL time.Duration

	MongoURI    string
	MongoDB     string
	ActivityTTL time.Duration

	CORSAllowedOrigins []string
	FrontendHost       string

	Auth    AuthConfig
	Storage StorageConfig

	JobExpiryInterval time.Duration
	OTLPEndpoint      string
}

type AuthConfig struct {
	ClientID      string
	ClientSecret  string
	AuthorizeURL  string
	TokenURL      string
	LogoutURL     string
	RedirectURL   string
	JWTSecret     string
	JWTIssuer     string
	CookieName    string
	CookieSecure  bool
	CookieMaxAge  time.Duration
	RefreshLeeway time.Duration
}

type StorageConfig struct {
	Provider       string // s3|gcs
	S3Bucket       string
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string
	S3BaseEndpoint string
	GCSBucket      string
	UploadURLTTL   time.Duration
	DownloadURLTTL time.Duration
	MaxUploadBytes int64
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var errs []error
	intVar := func(key string, def int) int {
		n, err := strconv.Atoi(getEnv(key, strconv.Itoa(def)))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
		}
		return n
	}
	durVar := func(key string, def time.Duration) time.Duration {
		d, err := time.ParseDuration(getEnv(key, def.String()))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
		}
		return d
	}
	boolVar := func(key string, def bool) bool {
		b, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(def)))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
		}
		return b
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		APIPrefix:   getEnv("API_PREFIX", "/api"),

		PostgresURI:    os.Getenv("POSTGRES_URI"),
		DBMaxOpenConns: intVar("DB_MAX_OPEN_CONNS", 100),
		DBMaxIdleConns: intVar("DB_MAX_IDLE_CONNS", 10),
		RunMigrations:  boolVar("RUN_MIGRATIONS", true),

		RedisAddr:   firstEnv("REDIS_ADDR", "REDIS_URI", "REDIS_URL"),
		JobCacheTTL: durVar("JOB_CACHE_TTL", 5*time.Minute),

		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDB:     getEnv("MONGO_DB", "joblynk"),
		ActivityTTL: durVar("ACTIVITY_TTL", 30*24*time.Hour),

		CORSAllowedOrigins: parseCSVEnv("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:3001",
		}),
		FrontendHost: strings.TrimRight(getEnv("FE_HOST", "http://localhost:3000"), "/"),

		Auth: AuthConfig{
			ClientID:      os.Getenv("AUTH_CLIENT_ID"),
			ClientSecret:  os.Getenv("AUTH_CLIENT_SECRET"),
			AuthorizeURL:  os.Getenv("AUTH_AUTHORIZE_URL"),
			TokenURL:      os.Getenv("AUTH_TOKEN_URL"),
			LogoutURL:     os.Getenv("AUTH_LOGOUT_URL"),
			RedirectURL:   os.Getenv("AUTH_REDIRECT_URL"),
			JWTSecret:     os.Getenv("AUTH_JWT_SECRET"),
			JWTIssuer:     os.Getenv("AUTH_JWT_ISSUER"),
			CookieName:    getEnv("SESSION_COOKIE_NAME", "wos-session"),
			CookieSecure:  boolVar("SESSION_COOKIE_SECURE", false),
			CookieMaxAge:  durVar("SESSION_COOKIE_MAX_AGE", 7*24*time.Hour),
			RefreshLeeway: durVar("SESSION_REFRESH_LEEWAY", 30*time.Second),
		},
		Storage: StorageConfig{
			Provider:       strings.ToLower(getEnv("STORAGE_PROVIDER", "s3")),
			S3Bucket:       os.Getenv("S3_BUCKET_NAME"),
			S3Region:       getEnv("AWS_REGION", "us-east-1"),
			S3AccessKey:    os.Getenv("AWS_ACCESS_KEY_ID"),
			S3SecretKey:    os.Getenv("AWS_SECRET_ACCESS_KEY"),
			S3BaseEndpoint: os.Getenv("S3_BASE_ENDPOINT"),
			GCSBucket:      os.Getenv("GCS_BUCKET"),
			UploadURLTTL:   durVar("UPLOAD_URL_TTL", 60*time.Second),
			DownloadURLTTL: durVar("DOWNLOAD_URL_TTL", 300*time.Second),
			MaxUploadBytes: int64(intVar("MAX_UPLOAD_BYTES", 10<<20)),
		},

		JobExpiryInterval: durVar("JOB_EXPIRY_INTERVAL", time.Minute),
		OTLPEndpoint:      os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if cfg.PostgresURI == "" {
		errs = append(errs, errors.New("POSTGRES_URI environment variable is not set"))
	}
	switch cfg.Storage.Provider {
	case "s3", "gcs":
	default:
		errs = append(errs, fmt.Errorf("invalid STORAGE_PROVIDER %q (want s3 or gcs)", cfg.Storage.Provider))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func parseCSVEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
