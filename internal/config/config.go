package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	AppEnv        string
	Port          string
	DatabaseURL   string
	RedisURL      string
	SessionSecret string
	AdminUsername string
	AdminPassword string

	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string
	QuoteTimeout  time.Duration

	WheelSegments   []string
	SpinMinDuration time.Duration
	SpinMaxDuration time.Duration

	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisURL:      getEnv("REDIS_URL", ""),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	if cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD is required")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	var err error
	if cfg.QuoteTimeout, err = getDuration("QUOTE_TIMEOUT", 8*time.Second); err != nil {
		return nil, err
	}
	if cfg.SpinMinDuration, err = getDuration("SPIN_MIN_DURATION", 4*time.Second); err != nil {
		return nil, err
	}
	if cfg.SpinMaxDuration, err = getDuration("SPIN_MAX_DURATION", 9*time.Second); err != nil {
		return nil, err
	}
	if cfg.SpinMaxDuration < cfg.SpinMinDuration {
		return nil, fmt.Errorf("SPIN_MAX_DURATION must not be shorter than SPIN_MIN_DURATION")
	}

	cfg.WheelSegments = splitSegments(os.Getenv("WHEEL_SEGMENTS"))

	return cfg, nil
}

// splitSegments parses the comma-separated segment override. An empty result
// means the default segment list applies.
func splitSegments(s string) []string {
	if s == "" {
		return nil
	}
	var segments []string
	for _, seg := range strings.Split(s, ",") {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
