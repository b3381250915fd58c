package http

import (
	"github.com/mrlokans/mushaf/internal/geolocation"
	"github.com/mrlokans/mushaf/internal/notify"
	"github.com/mrlokans/mushaf/internal/settings"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Reader state
	Bookmarks BookmarkStore
	History   HistoryStore
	Settings  SettingsStore

	// Theme resolution
	ColorSchemeHint *settings.ClientHint
	ThemeApplier    *settings.ThemeApplier

	// Remote content
	Content   ContentSource
	Schedules ScheduleSource

	// Prayer city selection and detection
	CityDirectory CityDirectory
	CitySelection CitySelection
	CityDetector  CityDetector
	IPLocator     geolocation.Locator // nil when IP lookup is not enabled

	// Notifications
	NotificationHub *notify.Hub

	// Background tasks (nil when the task queue is disabled)
	TaskQueue TaskQueue

	// Health checks by dependency name
	HealthChecks map[string]Pinger

	// CORS origins; "*" allows any
	AllowedOrigins []string

	// Application info
	Version string
}
