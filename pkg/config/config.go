package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort string

	// Remote platform backend.
	BackendBaseURL string
	RequestTimeout time.Duration

	// Local cart persistence. StateDir holds the sqlite file; when
	// RedisAddr is set the redis store is used instead.
	StateDir      string
	RedisAddr     string
	RedisPassword string

	// Notification polling.
	PollInterval time.Duration
}

func Load() Config {
	return Config{
		AppEnv:         getEnv("APP_ENV", "dev"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		BackendBaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:3000"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		StateDir:       getEnv("STATE_DIR", defaultStateDir()),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		PollInterval:   getEnvDuration("POLL_INTERVAL", 30*time.Second),
	}
}

func defaultStateDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".shopfront"
	}
	return filepath.Join(dir, "shopfront")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		if secs, err2 := strconv.Atoi(v); err2 == nil {
			return time.Duration(secs) * time.Second
		}
		return def
	}
	return d
}
