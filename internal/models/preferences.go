package models

// ColorTheme is one of the dashboard accent palettes
type ColorTheme string

const (
	ThemeBlue   ColorTheme = "blue"
	ThemePurple ColorTheme = "purple"
	ThemeGreen  ColorTheme = "green"
	ThemeOrange ColorTheme = "orange"
	ThemePink   ColorTheme = "pink"
)

// ValidTheme reports whether the name is a known theme
func ValidTheme(t ColorTheme) bool {
	switch t {
	case ThemeBlue, ThemePurple, ThemeGreen, ThemeOrange, ThemePink:
		return true
	}
	return false
}

// Preferences are the only user settings that survive a reload
type Preferences struct {
	// UserID is the user the preferences belong to
	UserID string

	// DarkMode toggles the dark palette
	DarkMode bool

	// Theme is the accent color palette
	Theme ColorTheme
}
