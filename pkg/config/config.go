package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	App            AppConfig
	Server         ServerConfig
	Database       DatabaseConfig
	JWT            JWTConfig
	Redis          RedisConfig
	Recommendation RecommendationConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	// Disabled skips the behavior cache entirely.
	Disabled bool
}

// maxTopN is the most items a single recommendation call may return.
const maxTopN = 20

type RecommendationConfig struct {
	TopN               int
	MaxCandidates      int
	Workers            int
	SearchHistoryLimit int
	BehaviorCacheTTL   time.Duration
	Location           *time.Location
	InStockOnly        bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	requestTimeout, err := getEnvDuration("RECO_REQUEST_TIMEOUT", 3*time.Second)
	if err != nil {
		return nil, err
	}

	reco, err := loadRecommendation()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Market Recommendation API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RequestTimeout: requestTimeout,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "market"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
			Disabled:      getEnv("REDIS_DISABLED", "false") == "true",
		},
		Recommendation: reco,
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func loadRecommendation() (RecommendationConfig, error) {
	var rc RecommendationConfig
	var err error

	if rc.TopN, err = getEnvInt("RECO_TOP_N", maxTopN); err != nil {
		return rc, err
	}
	if rc.MaxCandidates, err = getEnvInt("RECO_MAX_CANDIDATES", 5000); err != nil {
		return rc, err
	}
	// zero lets the engine pick GOMAXPROCS
	if rc.Workers, err = getEnvInt("RECO_WORKERS", 0); err != nil {
		return rc, err
	}
	if rc.SearchHistoryLimit, err = getEnvInt("RECO_SEARCH_HISTORY_LIMIT", 200); err != nil {
		return rc, err
	}
	if rc.BehaviorCacheTTL, err = getEnvDuration("RECO_BEHAVIOR_CACHE_TTL", 15*time.Minute); err != nil {
		return rc, err
	}

	tz := getEnv("RECO_TIMEZONE", "UTC")
	if rc.Location, err = time.LoadLocation(tz); err != nil {
		return rc, fmt.Errorf("invalid RECO_TIMEZONE %q: %w", tz, err)
	}

	rc.InStockOnly = getEnv("RECO_IN_STOCK_ONLY", "true") == "true"

	if rc.TopN <= 0 || rc.TopN > maxTopN {
		return rc, fmt.Errorf("RECO_TOP_N must be between 1 and %d", maxTopN)
	}
	if rc.MaxCandidates <= 0 {
		return rc, errors.New("RECO_MAX_CANDIDATES must be positive")
	}

	return rc, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
