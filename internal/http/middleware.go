package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/mushaf/internal/settings"
)

const colorSchemeHintHeader = "Sec-CH-Prefers-Color-Scheme"

// ThemeRefresher re-resolves the active mode. Implemented by *settings.ThemeApplier.
type ThemeRefresher interface {
	Refresh() settings.Mode
}

// ColorSchemeHintMiddleware feeds the client's preferred colour scheme into
// hint and re-applies the theme when the preference changes. It also asks
// browsers to send the hint on later requests.
func ColorSchemeHintMiddleware(hint *settings.ClientHint, theme ThemeRefresher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Accept-CH", colorSchemeHintHeader)
		c.Header("Vary", colorSchemeHintHeader)

		if raw := c.GetHeader(colorSchemeHintHeader); raw != "" {
			if mode, ok := settings.ParseMode(raw); ok && hint.Set(mode) {
				theme.Refresh()
			}
		}
		c.Next()
	}
}
