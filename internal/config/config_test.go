package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("GRACE_PERIOD", "")
	t.Setenv("FACE_MATCH_THRESHOLD", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Minute, cfg.GracePeriod)
	assert.InDelta(t, 0.80, cfg.FaceMatchThreshold, 0.0001)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("GRACE_PERIOD", "10m")
	t.Setenv("FACE_MATCH_THRESHOLD", "0.9")
	t.Setenv("FACE_SERVICE_SKIP", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 10*time.Minute, cfg.GracePeriod)
	assert.InDelta(t, 0.9, cfg.FaceMatchThreshold, 0.0001)
	assert.True(t, cfg.FaceServiceSkip)
}

func TestLoadRejectsBadGracePeriod(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GRACE_PERIOD", "soon")

	_, err := Load()
	assert.Error(t, err)
}
