package shared

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string `validate:"required"`
	MetricsAddr string

	HTTPClientTimeout time.Duration `validate:"gt=0"`
	RateLimitRPS      int           `validate:"gt=0"`
	RateLimitBurst    int           `validate:"gt=0"`

	RedisAddr string
	RedisPass string
	RedisDB   int `validate:"gte=0"`

	GoogleBase   string `validate:"required,url"`
	GoogleAPIKey string `validate:"required"`

	CloudinaryBase      string `validate:"required,url"`
	CloudinaryCloudName string `validate:"required"`
	CloudinaryAPIKey    string `validate:"required"`
	CloudinaryAPISecret string `validate:"required"`

	YelpBase   string `validate:"required,url"`
	YelpAPIKey string `validate:"required"`

	NotionBase       string `validate:"required,url"`
	NotionAPIKey     string `validate:"required"`
	NotionDatabaseID string `validate:"required"`
	NotionVersion    string `validate:"required"`

	ImportWorkers int `validate:"gt=0"`
}

// Load reads the environment, after merging an optional .env file.
func Load() Config {
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	return Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":9999"),
		MetricsAddr: env("METRICS_ADDR", ""),

		HTTPClientTimeout: time.Duration(atoi("HTTP_CLIENT_TIMEOUT_SECONDS", 30)) * time.Second,
		RateLimitRPS:      atoi("RATE_LIMIT_RPS", 5),
		RateLimitBurst:    atoi("RATE_LIMIT_BURST", 10),

		RedisAddr: env("REDIS_ADDR", ""),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),

		GoogleBase:   env("GOOGLE_PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
		GoogleAPIKey: env("GOOGLE_API_KEY", ""),

		CloudinaryBase:      env("CLOUDINARY_BASE_URL", "https://api.cloudinary.com/v1_1"),
		CloudinaryCloudName: env("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    env("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: env("CLOUDINARY_API_SECRET", ""),

		YelpBase:   env("YELP_BASE_URL", "https://api.yelp.com/v3"),
		YelpAPIKey: env("YELP_API_KEY", ""),

		NotionBase:       env("NOTION_BASE_URL", "https://api.notion.com/v1"),
		NotionAPIKey:     env("NOTION_API_KEY", ""),
		NotionDatabaseID: env("NOTION_DATABASE_ID", ""),
		NotionVersion:    env("NOTION_VERSION", "2022-06-28"),

		ImportWorkers: atoi("IMPORT_WORKERS", 4),
	}
}

// Validate reports every missing or out-of-range setting at once.
func (c Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}

// LogSummary logs the effective configuration with secrets masked.
func (c Config) LogSummary(l zerolog.Logger) {
	l.Info().
		Str("app_env", c.AppEnv).
		Str("http_addr", c.HTTPAddr).
		Str("metrics_addr", c.MetricsAddr).
		Dur("http_client_timeout", c.HTTPClientTimeout).
		Int("rate_limit_rps", c.RateLimitRPS).
		Int("rate_limit_burst", c.RateLimitBurst).
		Str("redis_addr", c.RedisAddr).
		Str("google_api_key", MaskSecret(c.GoogleAPIKey)).
		Str("cloudinary_cloud_name", c.CloudinaryCloudName).
		Str("cloudinary_api_key", MaskSecret(c.CloudinaryAPIKey)).
		Str("cloudinary_api_secret", MaskSecret(c.CloudinaryAPISecret)).
		Str("yelp_api_key", MaskSecret(c.YelpAPIKey)).
		Str("notion_api_key", MaskSecret(c.NotionAPIKey)).
		Str("notion_database_id", c.NotionDatabaseID).
		Str("notion_version", c.NotionVersion).
		Msg("configuration loaded")
}

// MaskSecret keeps the first five characters and stars the rest.
func MaskSecret(s string) string {
	if len(s) <= 5 {
		return strings.Repeat("*", len(s))
	}
	return s[:5] + strings.Repeat("*", len(s)-5)
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
