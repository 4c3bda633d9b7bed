package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/LJTian/eztax/internal/logger"
	"github.com/joho/godotenv"
)

const (
	DefaultNewsSourceURL    = "https://www.irs.gov/newsroom/news-releases-for-current-month"
	DefaultNewsSourceOrigin = "https://www.irs.gov"
	DefaultNewsRevalidate   = time.Hour
	DefaultNewsFetchTimeout = 5 * time.Second
)

type Config struct {
	AppPort  string
	GinMode  string
	LogLevel string

	// RedisAddr 为空时使用进程内缓存
	RedisAddr string

	NewsSourceURL    string
	NewsSourceOrigin string
	NewsRevalidate   time.Duration
	NewsFetchTimeout time.Duration
	// NewsWarm 为 true 时由定时任务按 NewsRevalidate 周期预热缓存
	NewsWarm bool
}

func Load() *Config {
	// .env 不存在是正常情况，直接忽略
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:          getEnv("APP_PORT", "9000"),
		GinMode:          getEnv("GIN_MODE", "release"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		NewsSourceURL:    getEnv("NEWS_SOURCE_URL", DefaultNewsSourceURL),
		NewsSourceOrigin: strings.TrimRight(getEnv("NEWS_SOURCE_ORIGIN", DefaultNewsSourceOrigin), "/"),
		NewsRevalidate:   getDuration("NEWS_REVALIDATE", DefaultNewsRevalidate),
		NewsFetchTimeout: getDuration("NEWS_FETCH_TIMEOUT", DefaultNewsFetchTimeout),
		NewsWarm:         getBool("NEWS_WARM", true),
	}

	logger.L().Info("config loaded",
		"port", cfg.AppPort,
		"redis", cfg.RedisAddr != "",
		"revalidate", cfg.NewsRevalidate.String(),
		"fetch_timeout", cfg.NewsFetchTimeout.String(),
	)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getDuration 解析如 "1h"、"90s" 的时长；非法或非正值回退默认值
func getDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		logger.L().Warn("invalid duration, using default", "key", key, "value", raw, "default", def.String())
		return def
	}
	return d
}

func getBool(key string, def bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		logger.L().Warn("invalid bool, using default", "key", key, "value", raw)
		return def
	}
	return b
}
