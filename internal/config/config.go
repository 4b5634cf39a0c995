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
	Embedding EmbeddingConfig
	JWT       JWTConfig
	Ranking   RankingConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	PoolMaxConns int32
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type EmbeddingConfig struct {
	ServiceURL string
	Dimension  int
	Timeout    time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type RankingConfig struct {
	MinSkillMatch  float64
	SearchLimit    int
	SkillGraphPath string
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
	opt := func(key, fallback string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return fallback
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "talent-match"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		Host:     opt("DB_HOST", "localhost"),
		Port:     opt("DB_PORT", "5432"),
		Name:     req("DB_NAME"),
		User:     req("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		SSLMode:  opt("DB_SSL_MODE", "disable"),
	}
	if v, err := parseInt(opt("DB_POOL_MAX_CONNS", "0")); err != nil {
		return Config{}, fmt.Errorf("DB_POOL_MAX_CONNS: %w", err)
	} else {
		cfg.Database.PoolMaxConns = int32(v)
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	cfg.Embedding = EmbeddingConfig{ServiceURL: req("EMBEDDING_SERVICE_URL")}
	if v, err := parseInt(opt("EMBEDDING_DIM", "384")); err != nil {
		return Config{}, fmt.Errorf("EMBEDDING_DIM: %w", err)
	} else {
		cfg.Embedding.Dimension = v
	}
	if v, err := time.ParseDuration(opt("EMBEDDING_TIMEOUT", "10s")); err != nil {
		return Config{}, fmt.Errorf("EMBEDDING_TIMEOUT: %w", err)
	} else {
		cfg.Embedding.Timeout = v
	}

	cfg.JWT = JWTConfig{
		AccessSecret:  req("JWT_ACCESS_SECRET"),
		RefreshSecret: req("JWT_REFRESH_SECRET"),
	}
	if v, err := time.ParseDuration(opt("JWT_ACCESS_TTL", "15m")); err != nil {
		return Config{}, fmt.Errorf("JWT_ACCESS_TTL: %w", err)
	} else {
		cfg.JWT.AccessTTL = v
	}
	if v, err := time.ParseDuration(opt("JWT_REFRESH_TTL", "168h")); err != nil {
		return Config{}, fmt.Errorf("JWT_REFRESH_TTL: %w", err)
	} else {
		cfg.JWT.RefreshTTL = v
	}

	cfg.Ranking = RankingConfig{SkillGraphPath: strings.TrimSpace(os.Getenv("SKILL_GRAPH_PATH"))}
	if v, err := strconv.ParseFloat(opt("MIN_SKILL_MATCH", "0.1"), 64); err != nil {
		return Config{}, fmt.Errorf("MIN_SKILL_MATCH: %w", err)
	} else {
		cfg.Ranking.MinSkillMatch = v
	}
	if v, err := parseInt(opt("SEMANTIC_SEARCH_LIMIT", "100")); err != nil {
		return Config{}, fmt.Errorf("SEMANTIC_SEARCH_LIMIT: %w", err)
	} else {
		cfg.Ranking.SearchLimit = v
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return v, nil
}
