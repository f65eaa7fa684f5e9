package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Logging    LoggingConfig
	Auth       AuthConfig
	AI         AIConfig
	FoodSearch FoodSearchConfig
	Redis      RedisConfig
	Photos     PhotoConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// DatabaseConfig contains the database connection settings.
type DatabaseConfig struct {
	URL             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	UseMock         bool
}

// LoggingConfig selects the minimum log level.
type LoggingConfig struct {
	Level string
}

// AuthConfig describes how requests are tied to a user. Credentials are
// checked by the gateway in front of the service, which forwards the user id
// in UserHeader.
type AuthConfig struct {
	Session    SessionConfig
	UserHeader string
}

// SessionConfig controls the session cookie holding the meal draft.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// AIConfig configures the vision and estimation client.
type AIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// FoodSearchConfig points at the nutrition lookup proxy.
type FoodSearchConfig struct {
	URL     string
	Timeout time.Duration
}

// RedisConfig locates the activity store. An empty URL keeps activity in memory.
type RedisConfig struct {
	URL string
	TTL time.Duration
}

// PhotoConfig configures the S3 compatible bucket meal photos are archived in.
type PhotoConfig struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// Enabled reports whether enough settings are present to archive photos.
func (p PhotoConfig) Enabled() bool {
	return strings.TrimSpace(p.Bucket) != ""
}

// Load inspects the environment and builds a Config value. Outside production
// a .env file in the working directory is read first when present.
func Load() (Config, error) {
	if !strings.EqualFold(os.Getenv("APP_ENV"), "production") {
		_ = godotenv.Load()
	}

	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			os.Getenv("SERVER_ADDR"),
			os.Getenv("ADDR"),
			":8080",
		),
		ShutdownTimeout: parseDurationWithDefault(os.Getenv("SERVER_SHUTDOWN_TIMEOUT"), 5*time.Second),
	}

	cfg.Database = DatabaseConfig{
		URL: firstNonEmpty(
			os.Getenv("DATABASE_URL"),
			os.Getenv("DB_URL"),
			"",
		),
		MaxIdleConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_IDLE_CONNS"), 5),
		MaxOpenConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_OPEN_CONNS"), 20),
		ConnMaxLifetime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_LIFETIME"), 30*time.Minute),
		ConnMaxIdleTime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_IDLE_TIME"), 5*time.Minute),
		UseMock:         parseBoolWithDefault(os.Getenv("DATABASE_USE_MOCK"), false),
	}

	cfg.Logging = LoggingConfig{
		Level: firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
	}

	cfg.Auth = AuthConfig{
		Session: SessionConfig{
			Lifetime:     parseDurationWithDefault(os.Getenv("SESSION_LIFETIME"), 12*time.Hour),
			CookieName:   firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), "nutrisnap_session"),
			CookieDomain: strings.TrimSpace(os.Getenv("SESSION_COOKIE_DOMAIN")),
			CookieSecure: parseBoolWithDefault(os.Getenv("SESSION_COOKIE_SECURE"), true),
		},
		UserHeader: firstNonEmpty(os.Getenv("AUTH_USER_HEADER"), "X-User-ID"),
	}

	cfg.AI = AIConfig{
		APIKey:  firstNonEmpty(os.Getenv("OPENAI_API_KEY"), os.Getenv("AI_API_KEY")),
		Model:   strings.TrimSpace(os.Getenv("OPENAI_MODEL")),
		BaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		Timeout: parseDurationWithDefault(os.Getenv("OPENAI_TIMEOUT"), 90*time.Second),
	}

	cfg.FoodSearch = FoodSearchConfig{
		URL:     strings.TrimSpace(os.Getenv("FOOD_SEARCH_URL")),
		Timeout: parseDurationWithDefault(os.Getenv("FOOD_SEARCH_TIMEOUT"), 15*time.Second),
	}

	cfg.Redis = RedisConfig{
		URL: strings.TrimSpace(os.Getenv("REDIS_URL")),
		TTL: parseDurationWithDefault(os.Getenv("ACTIVITY_TTL"), 0),
	}

	cfg.Photos = PhotoConfig{
		Bucket:        firstNonEmpty(os.Getenv("PHOTO_BUCKET"), os.Getenv("R2_BUCKET_NAME")),
		Region:        firstNonEmpty(os.Getenv("PHOTO_REGION"), "auto"),
		Endpoint:      firstNonEmpty(os.Getenv("PHOTO_ENDPOINT"), os.Getenv("R2_ENDPOINT")),
		AccessKey:     firstNonEmpty(os.Getenv("PHOTO_ACCESS_KEY"), os.Getenv("R2_ACCESS_KEY")),
		SecretKey:     firstNonEmpty(os.Getenv("PHOTO_SECRET_KEY"), os.Getenv("R2_SECRET_KEY")),
		PublicBaseURL: firstNonEmpty(os.Getenv("PHOTO_PUBLIC_BASE_URL"), os.Getenv("R2_PUBLIC_BASE_URL")),
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}
	if cfg.Photos.Enabled() && (cfg.Photos.AccessKey == "") != (cfg.Photos.SecretKey == "") {
		return Config{}, fmt.Errorf("photo storage needs both access key and secret key")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}
