// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"
	"sync"
)

// Config holds application configuration from environment.
type Config struct {
	HTTPPort string
	MongoURI string
	MongoDB  string
	LogLevel string

	// DefaultPageSize and MaxPageSize bound the limit query parameter.
	DefaultPageSize int64
	MaxPageSize     int64
}

var (
	cfg     *Config
	cfgOnce sync.Once
)

// Get returns the application config (loads once from env).
func Get() *Config {
	cfgOnce.Do(func() {
		cfg = &Config{
			HTTPPort:        getEnv("HTTP_PORT", "8000"),
			MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDB:         getEnv("MONGO_DB", "todo_app"),
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			DefaultPageSize: getInt64Env("DEFAULT_PAGE_SIZE", 10),
			MaxPageSize:     getInt64Env("MAX_PAGE_SIZE", 100),
		}
	})
	return cfg
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getInt64Env(key string, defaultVal int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}
