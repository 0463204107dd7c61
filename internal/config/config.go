// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs to run
type Config struct {
	// RedisAddr is the address of the Redis instance backing all state
	RedisAddr string

	// HTTPAddr is the listen address for the API server
	HTTPAddr string

	// JWTSecret signs and verifies session tokens
	JWTSecret string

	// GracePeriod is how long after session start a check-in still
	// counts as present
	GracePeriod time.Duration

	// FaceServiceURL is the base URL of the face recognition service.
	// Empty when face check-in runs in simulated mode.
	FaceServiceURL string

	// FaceMatchThreshold is the minimum similarity accepted as a match
	FaceMatchThreshold float64

	// FaceServiceSkip disables the external face service in favor of
	// the simulated matcher
	FaceServiceSkip bool
}

// Load reads configuration from the environment, picking up a .env
// file when one exists
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments set the
	// environment directly
	_ = godotenv.Load()

	cfg := &Config{
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		GracePeriod:        5 * time.Minute,
		FaceServiceURL:     os.Getenv("FACE_SERVICE_URL"),
		FaceMatchThreshold: 0.80,
		FaceServiceSkip:    os.Getenv("FACE_SERVICE_SKIP") == "true",
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if raw := os.Getenv("GRACE_PERIOD"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid GRACE_PERIOD %q: %w", raw, err)
		}
		cfg.GracePeriod = d
	}

	if raw := os.Getenv("FACE_MATCH_THRESHOLD"); raw != "" {
		var threshold float64
		if _, err := fmt.Sscanf(raw, "%f", &threshold); err != nil {
			return nil, fmt.Errorf("invalid FACE_MATCH_THRESHOLD %q: %w", raw, err)
		}
		cfg.FaceMatchThreshold = threshold
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
