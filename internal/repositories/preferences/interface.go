package preferences

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/attendify/attendify/internal/repositories/preferences Repository

import (
	"context"
)

// Repository persists the two user settings that survive a reload:
// the dark-mode flag and the color theme
type Repository interface {
	// GetPreferences retrieves a user's preferences, defaults when unset
	GetPreferences(ctx context.Context, input *GetPreferencesInput) (*GetPreferencesOutput, error)

	// SavePreferences stores a user's preferences
	SavePreferences(ctx context.Context, input *SavePreferencesInput) (*SavePreferencesOutput, error)
}
