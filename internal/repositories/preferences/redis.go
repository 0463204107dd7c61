package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/attendify/attendify/internal/models"
	"github.com/redis/go-redis/v9"
)

// Key prefix for Redis, matching the original's localStorage naming
const prefsKeyPrefix = "attendify_prefs:"

// Config holds configuration for the Redis preferences repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed preferences repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// GetPreferences retrieves a user's preferences. Users who have never
// saved any get light mode with the blue theme.
func (r *redisRepository) GetPreferences(ctx context.Context, input *GetPreferencesInput) (*GetPreferencesOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.UserID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	prefsJSON, err := r.client.Get(ctx, prefsKeyPrefix+input.UserID).Result()
	if err != nil {
		if err == redis.Nil {
			return &GetPreferencesOutput{
				Preferences: &models.Preferences{
					UserID:   input.UserID,
					DarkMode: false,
					Theme:    models.ThemeBlue,
				},
			}, nil
		}
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	var prefs models.Preferences
	if err := json.Unmarshal([]byte(prefsJSON), &prefs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}

	return &GetPreferencesOutput{Preferences: &prefs}, nil
}

// SavePreferences stores a user's preferences
func (r *redisRepository) SavePreferences(ctx context.Context, input *SavePreferencesInput) (*SavePreferencesOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.Preferences == nil || input.Preferences.UserID == "" {
		return nil, fmt.Errorf("preferences with a user ID are required")
	}

	if !models.ValidTheme(input.Preferences.Theme) {
		return nil, fmt.Errorf("unknown color theme %q", input.Preferences.Theme)
	}

	prefsJSON, err := json.Marshal(input.Preferences)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preferences: %w", err)
	}

	err = r.client.Set(ctx, prefsKeyPrefix+input.Preferences.UserID, prefsJSON, 0).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to store preferences: %w", err)
	}

	return &SavePreferencesOutput{Preferences: input.Preferences}, nil
}
