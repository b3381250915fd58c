package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/mushaf/internal/bookmarks"
	"github.com/mrlokans/mushaf/internal/config"
	"github.com/mrlokans/mushaf/internal/geolocation"
	"github.com/mrlokans/mushaf/internal/history"
	http_controllers "github.com/mrlokans/mushaf/internal/http"
	"github.com/mrlokans/mushaf/internal/logging"
	"github.com/mrlokans/mushaf/internal/notify"
	"github.com/mrlokans/mushaf/internal/quran"
	"github.com/mrlokans/mushaf/internal/scheduler"
	"github.com/mrlokans/mushaf/internal/settings"
	"github.com/mrlokans/mushaf/internal/shalat"
	"github.com/mrlokans/mushaf/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the listener goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	logCloser, err := logging.Setup(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()

	log.Printf("Starting Mushaf v%s", version)

	storage, err := OpenStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.Printf("Error closing storage: %v", err)
		}
	}()

	hub := notify.NewHub(originChecker(cfg.HTTP.CORSAllowedOrigins))

	// Reader state
	bookmarkRegistry := bookmarks.NewRegistry(storage.Store)
	readingLog := history.NewLog(storage.Store)
	settingsStore := settings.NewStore(storage.Store)

	fallbackMode, ok := settings.ParseMode(cfg.UI.DefaultColorScheme)
	if !ok {
		log.Printf("WARNING: Unknown DEFAULT_COLOR_SCHEME %q, using light", cfg.UI.DefaultColorScheme)
		fallbackMode = settings.ModeLight
	}
	colorSchemeHint := settings.NewClientHint(fallbackMode)
	themeApplier := settings.NewThemeApplier(settings.NewDocument(), colorSchemeHint)

	settingsStore.OnThemeChange(func(theme settings.Theme) {
		mode := themeApplier.Apply(theme)
		hub.Notify(notify.Info("Tema diperbarui", fmt.Sprintf("Tampilan %s aktif", mode)))
	})
	settingsStore.Start()

	// Remote content
	quranClient := quran.NewClient(cfg.API.QuranURL, cfg.API.Timeout)
	shalatClient := shalat.NewClient(cfg.API.ShalatURL, cfg.API.Timeout)
	cityDirectory := shalat.NewDirectory(shalatClient)
	citySelection := shalat.NewSelection(storage.Store)

	// City detection
	table := geolocation.DefaultReferenceTable()
	if cfg.Location.CityCoordinatesPath != "" {
		table, err = geolocation.LoadReferenceTableFile(cfg.Location.CityCoordinatesPath)
		if err != nil {
			log.Fatalf("Failed to load city coordinates: %v", err)
		}
		log.Printf("Loaded %d city coordinates from %s", len(table), cfg.Location.CityCoordinatesPath)
	}
	resolver := geolocation.NewResolver(table, cityDirectory, citySelection, hub)

	var ipLocator geolocation.Locator
	if cfg.Location.IPLookupEnabled {
		ipLocator = geolocation.NewIPLocator(cfg.Location.IPLocatorURL, cfg.Location.IPLocatorTimeout, true)
		log.Printf("IP based location enabled via %s", cfg.Location.IPLocatorURL)
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Tasks.DatabasePath, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewRefreshCityDirectoryQueue(cityDirectory))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	var cityRefresh *scheduler.CityRefreshScheduler
	var schedulerCancel context.CancelFunc
	if cfg.CityRefresh.Enabled {
		var queue scheduler.TaskEnqueuer
		if taskClient != nil {
			queue = taskClient
		}
		cityRefresh = scheduler.NewCityRefreshScheduler(cfg.CityRefresh.Schedule, queue, cityDirectory)

		var schedulerCtx context.Context
		schedulerCtx, schedulerCancel = context.WithCancel(context.Background())
		if err := cityRefresh.Start(schedulerCtx); err != nil {
			log.Printf("WARNING: City refresh scheduler disabled: %v", err)
			cityRefresh = nil
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Bookmarks:       bookmarkRegistry,
		History:         readingLog,
		Settings:        settingsStore,
		ColorSchemeHint: colorSchemeHint,
		ThemeApplier:    themeApplier,
		Content:         quranClient,
		Schedules:       shalatClient,
		CityDirectory:   cityDirectory,
		CitySelection:   citySelection,
		CityDetector:    resolver,
		IPLocator:       ipLocator,
		NotificationHub: hub,
		HealthChecks:    map[string]http_controllers.Pinger{"storage": storage.Store},
		AllowedOrigins:  cfg.HTTP.CORSAllowedOrigins,
		Version:         version,
	}
	if taskClient != nil {
		routerCfg.TaskQueue = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if cityRefresh != nil {
			cityRefresh.Stop()
		}
		if schedulerCancel != nil {
			schedulerCancel()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}

// originChecker limits websocket upgrades to the CORS origins. Requests
// without an Origin header come from non-browser clients and are accepted.
func originChecker(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 || slices.Contains(origins, "*") {
		return nil
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(origins, origin)
	}
}
