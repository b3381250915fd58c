package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	if cfg.ColorSchemeHint != nil && cfg.ThemeApplier != nil {
		router.Use(ColorSchemeHintMiddleware(cfg.ColorSchemeHint, cfg.ThemeApplier))
	}

	// Health endpoints
	health := NewHealthController(cfg.HealthChecks, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	// Bookmarks
	if cfg.Bookmarks != nil {
		bookmarksController := NewBookmarksController(cfg.Bookmarks)
		api.GET("/bookmarks", bookmarksController.ListBookmarks)
		api.POST("/bookmarks", bookmarksController.AddBookmark)
		api.POST("/bookmarks/toggle", bookmarksController.ToggleBookmark)
		api.GET("/bookmarks/:surah/:ayat", bookmarksController.GetBookmark)
		api.DELETE("/bookmarks/:surah/:ayat", bookmarksController.RemoveBookmark)
	}

	// Reading history
	if cfg.History != nil {
		historyController := NewHistoryController(cfg.History)
		api.GET("/history", historyController.ListHistory)
		api.GET("/history/latest", historyController.LatestHistory)
		api.POST("/history", historyController.AddVisit)
		api.DELETE("/history", historyController.ClearHistory)
	}

	// Settings and theme
	if cfg.Settings != nil && cfg.ThemeApplier != nil {
		settingsController := NewSettingsController(cfg.Settings, cfg.ThemeApplier)
		api.GET("/settings", settingsController.GetSettings)
		api.PATCH("/settings", settingsController.UpdateSettings)
		api.POST("/settings/reset", settingsController.ResetSettings)
		api.GET("/theme", settingsController.GetTheme)
	}

	// Quran content
	if cfg.Content != nil {
		surahsController := NewSurahsController(cfg.Content)
		api.GET("/surahs", surahsController.ListSurahs)
		api.GET("/surahs/:number", surahsController.GetSurah)
		api.GET("/surahs/:number/tafsir", surahsController.GetTafsir)
		api.GET("/surahs/:number/ayat/:ayat/audio", surahsController.GetAyatAudio)
		api.GET("/qaris", surahsController.ListQaris)
	}

	// Prayer schedule
	if cfg.CityDirectory != nil && cfg.Schedules != nil && cfg.CitySelection != nil && cfg.CityDetector != nil {
		shalatController := NewShalatController(cfg.CityDirectory, cfg.Schedules, cfg.CitySelection, cfg.CityDetector, cfg.IPLocator)
		api.GET("/shalat/cities", shalatController.ListCities)
		api.GET("/shalat/city", shalatController.GetSelectedCity)
		api.PUT("/shalat/city", shalatController.SelectCity)
		api.POST("/shalat/locate", shalatController.Locate)
		api.GET("/shalat/schedule", shalatController.GetSchedule)
	}

	// Task management endpoints
	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue)
		api.GET("/tasks/types", tasksController.ListTaskTypes)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
		api.POST("/tasks/:type/run", tasksController.RunTask)
	}

	// Notifications
	if cfg.NotificationHub != nil {
		router.GET("/ws/notifications", NotificationsHandler(cfg.NotificationHub))
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", colorSchemeHintHeader},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
