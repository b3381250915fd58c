package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/mushaf/internal/settings"
)

type SettingsController struct {
	store SettingsStore
	theme ThemeState
}

func NewSettingsController(store SettingsStore, theme ThemeState) *SettingsController {
	return &SettingsController{store: store, theme: theme}
}

// SettingsResponse is the settings record plus the visual mode it resolves to.
type SettingsResponse struct {
	Settings   settings.Settings `json:"settings"`
	ActiveMode settings.Mode     `json:"activeMode"`
}

// GetSettings handles GET /api/settings
func (sc *SettingsController) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, sc.response())
}

// UpdateSettings merges the given fields into the record.
// PATCH /api/settings
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var changes map[string]any
	if err := c.ShouldBindJSON(&changes); err != nil {
		respondBadRequest(c, "invalid settings: "+err.Error())
		return
	}
	if len(changes) == 0 {
		respondBadRequest(c, "no settings given")
		return
	}

	if err := sc.store.Patch(changes); err != nil {
		switch {
		case errors.Is(err, settings.ErrUnknownSetting):
			respondError(c, http.StatusBadRequest, "unknown_setting", err.Error())
		case errors.Is(err, settings.ErrInvalidValue):
			respondError(c, http.StatusBadRequest, "invalid_value", err.Error())
		default:
			respondInternalError(c, err, "update settings")
		}
		return
	}

	c.JSON(http.StatusOK, sc.response())
}

// ResetSettings handles POST /api/settings/reset
func (sc *SettingsController) ResetSettings(c *gin.Context) {
	sc.store.Reset()
	c.JSON(http.StatusOK, sc.response())
}

// GetTheme handles GET /api/theme
func (sc *SettingsController) GetTheme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"theme": sc.theme.Theme(),
		"mode":  sc.theme.Document().ActiveMode(),
	})
}

func (sc *SettingsController) response() SettingsResponse {
	return SettingsResponse{
		Settings:   sc.store.Get(),
		ActiveMode: sc.theme.Document().ActiveMode(),
	}
}
