package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds process configuration, loaded once at start-up.
type Config struct {
	Environment        string
	ServerPort         string
	JWTSecret          string
	JWTExpiration      time.Duration
	CORSAllowedOrigins []string
	DB                 DBConfig
}

// IsProduction reports whether APP_ENV selects production settings.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads configuration from environment variables. The caller is
// expected to have loaded any .env file first.
func Load() (*Config, error) {
	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET_KEY not set in environment")
	}

	jwtExpiration := time.Duration(0)
	if raw := strings.TrimSpace(os.Getenv("JWT_EXPIRATION_HOURS")); raw != "" {
		hours, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || hours < 0 {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS %q", raw)
		}
		jwtExpiration = time.Duration(hours) * time.Hour
	}

	dbCfg, err := LoadDBConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Environment:        getEnv("APP_ENV", "development"),
		ServerPort:         getEnv("SERVER_PORT", getEnv("PORT", "8080")),
		JWTSecret:          jwtSecret,
		JWTExpiration:      jwtExpiration,
		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		DB:                 *dbCfg,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
