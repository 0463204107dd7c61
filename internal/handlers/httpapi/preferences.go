package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/attendify/attendify/internal/models"
	preferencesRepo "github.com/attendify/attendify/internal/repositories/preferences"
)

func (h *Handler) getPreferences(c *gin.Context) {
	output, err := h.preferencesRepo.GetPreferences(c.Request.Context(), &preferencesRepo.GetPreferencesInput{
		UserID: c.GetString(ctxUserID),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load preferences"})
		return
	}

	c.JSON(http.StatusOK, preferencesJSON{
		DarkMode: output.Preferences.DarkMode,
		Theme:    string(output.Preferences.Theme),
	})
}

func (h *Handler) savePreferences(c *gin.Context) {
	var req preferencesJSON
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preferences body"})
		return
	}

	theme := models.ColorTheme(req.Theme)
	if !models.ValidTheme(theme) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown color theme"})
		return
	}

	output, err := h.preferencesRepo.SavePreferences(c.Request.Context(), &preferencesRepo.SavePreferencesInput{
		Preferences: &models.Preferences{
			UserID:   c.GetString(ctxUserID),
			DarkMode: req.DarkMode,
			Theme:    theme,
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save preferences"})
		return
	}

	c.JSON(http.StatusOK, preferencesJSON{
		DarkMode: output.Preferences.DarkMode,
		Theme:    string(output.Preferences.Theme),
	})
}
