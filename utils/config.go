package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every environment-derived setting. It is built once in main
// and passed by reference into the services that need it.
type Config struct {
	DatabaseURL string
	DBUsername  string
	DBPassword  string
	DBPoolSize  int32

	RedisURL string

	AllowedHosts []string

	// SessionTTL is the lifetime of a freshly created session;
	// SessionExtension is how far every authenticated request pushes
	// expiry forward.
	SessionTTL       time.Duration
	SessionExtension time.Duration
	CleanupInterval  time.Duration

	Production bool
	Port       string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DBUsername:       os.Getenv("DB_USERNAME"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBPoolSize:       10,
		RedisURL:         os.Getenv("REDIS_URL"),
		SessionTTL:       time.Hour,
		SessionExtension: 30 * time.Minute,
		CleanupInterval:  10 * time.Minute,
		Production:       os.Getenv("PRODUCTION") == "true",
		Port:             "3000",
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is not set")
	}

	if v := os.Getenv("DB_POOL_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 {
			return nil, fmt.Errorf("invalid DB_POOL_SIZE %q", v)
		}
		cfg.DBPoolSize = int32(size)
	}

	if v := os.Getenv("SESSION_EXPIRY_TIME_INCREMENT"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes < 1 {
			return nil, fmt.Errorf("invalid SESSION_EXPIRY_TIME_INCREMENT %q", v)
		}
		cfg.SessionExtension = time.Duration(minutes) * time.Minute
	}

	if v := os.Getenv("ALLOWED_HOSTS"); v != "" {
		for _, host := range strings.Split(v, ",") {
			host = strings.TrimSpace(host)
			if host != "" {
				cfg.AllowedHosts = append(cfg.AllowedHosts, host)
			}
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	return cfg, nil
}
