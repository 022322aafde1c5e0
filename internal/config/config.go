package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
	DriverMemory   = "memory"
)

type Config struct {
	AppEnv   string
	LogLevel slog.Level
	Port     string

	DBDriver          string
	DatabaseURL       string
	SQLitePath        string
	DBMaxOpenConns    int
	DBConnectAttempts int

	// Пустой REDIS_URL: прогнозы хранятся в памяти процесса.
	RedisURL string

	// Пустой KAFKA_BROKERS: события не публикуются.
	KafkaBrokers []string
	CityTopic    string
	UserTopic    string
	CityGroup    string

	WeatherAPIURL     string
	WeatherAPITimeout time.Duration
	RefreshInterval   time.Duration
	ForecastTTL       time.Duration
}

// Load читает .env (если есть) и переменные окружения.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env not loaded (ok for prod)", "error", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	appEnv := getEnv("APP_ENV", "dev")
	switch appEnv {
	case "dev", "prod":
	default:
		return nil, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppEnv:        appEnv,
		LogLevel:      level,
		Port:          getEnv("PORT", "8080"),
		DBDriver:      getEnv("DB_DRIVER", DriverSQLite),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    getEnv("SQLITE_PATH", "weather.db"),
		RedisURL:      os.Getenv("REDIS_URL"),
		KafkaBrokers:  splitList(os.Getenv("KAFKA_BROKERS")),
		CityTopic:     getEnv("CITY_KAFKA_TOPIC", "city-events"),
		UserTopic:     getEnv("USER_KAFKA_TOPIC", "user-events"),
		CityGroup:     getEnv("CITY_KAFKA_GROUP", "forecast-prefetcher"),
		WeatherAPIURL: getEnv("WEATHER_API_URL", "https://api.open-meteo.com"),
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for DB_DRIVER=%s", DriverPostgres)
		}
	case DriverSQLite, DriverMemory:
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q (allowed: postgres, sqlite3, memory)", cfg.DBDriver)
	}

	if cfg.DBMaxOpenConns, err = getInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.DBConnectAttempts, err = getInt("DB_CONNECT_ATTEMPTS", 10); err != nil {
		return nil, err
	}
	if cfg.DBConnectAttempts < 1 {
		return nil, fmt.Errorf("DB_CONNECT_ATTEMPTS must be >= 1, got %d", cfg.DBConnectAttempts)
	}
	if cfg.WeatherAPITimeout, err = getDuration("WEATHER_API_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getDuration("FORECAST_REFRESH_INTERVAL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ForecastTTL, err = getDuration("FORECAST_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
