package preferences

import "github.com/attendify/attendify/internal/models"

// GetPreferencesInput contains parameters for retrieving preferences
type GetPreferencesInput struct {
	UserID string
}

// GetPreferencesOutput contains the user's preferences
type GetPreferencesOutput struct {
	Preferences *models.Preferences
}

// SavePreferencesInput contains the preferences to store
type SavePreferencesInput struct {
	Preferences *models.Preferences
}

// SavePreferencesOutput contains the stored preferences
type SavePreferencesOutput struct {
	Preferences *models.Preferences
}
