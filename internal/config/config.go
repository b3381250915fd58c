package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type StorageBackend string

const (
	StorageSQLite StorageBackend = "sqlite" // Local database file (default)
	StorageRedis  StorageBackend = "redis"
	StorageMemory StorageBackend = "memory" // Nothing survives a restart
)

type (
	Config struct {
		HTTP
		Global
		Database
		Storage
		Redis
		API
		Location
		UI
		Logging
		Tasks
		CityRefresh
	}

	HTTP struct {
		Port               int32
		Host               string
		CORSAllowedOrigins []string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Storage struct {
		Backend StorageBackend
	}
	Redis struct {
		Addr      string
		Password  string
		DB        int
		KeyPrefix string
		Timeout   time.Duration
	}
	API struct {
		QuranURL  string
		ShalatURL string
		Timeout   time.Duration
	}
	Location struct {
		IPLookupEnabled     bool // Consent to send the public IP to the lookup service
		IPLocatorURL        string
		IPLocatorTimeout    time.Duration
		CityCoordinatesPath string // Empty uses the bundled table
	}
	UI struct {
		DefaultColorScheme string // "light" or "dark", used when the client sends no hint
	}
	Logging struct {
		File       string // Empty logs to stderr only
		MaxSizeMB  int
		MaxBackups int
		MaxAgeDays int
	}
	Tasks struct {
		Enabled           bool
		DatabasePath      string
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	CityRefresh struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
)

// LoadDotEnv loads variables from the given files (".env" when none are
// given) without overriding ones already set. Missing files are ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err == nil {
			log.Printf("Loaded environment from %s", f)
		}
	}
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("database_path", DefaultDatabasePath)

	// Storage defaults
	v.SetDefault("storage_backend", string(StorageSQLite))
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_key_prefix", "mushaf:")
	v.SetDefault("redis_timeout", "3s")

	// Remote API defaults
	v.SetDefault("quran_api_url", DefaultQuranAPIURL)
	v.SetDefault("shalat_api_url", DefaultShalatAPIURL)
	v.SetDefault("api_timeout", "10s")

	// Location defaults
	v.SetDefault("ip_locator_enabled", false)
	v.SetDefault("ip_locator_url", DefaultIPLocatorURL)
	v.SetDefault("ip_locator_timeout", "5s")
	v.SetDefault("city_coordinates_path", "")

	v.SetDefault("default_color_scheme", "light")

	// Logging defaults
	v.SetDefault("log_file", "")
	v.SetDefault("log_max_size_mb", 10)
	v.SetDefault("log_max_backups", 3)
	v.SetDefault("log_max_age_days", 28)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("tasks_database_path", DefaultTasksDatabasePath)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "2m")
	v.SetDefault("task_release_after", "10m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	v.SetDefault("city_refresh_enabled", true)
	v.SetDefault("city_refresh_schedule", "0 3 * * *")

	return &Config{
		HTTP: HTTP{
			Port:               v.GetInt32("PORT"),
			Host:               v.GetString("HOST"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Storage: Storage{
			Backend: StorageBackend(strings.ToLower(v.GetString("STORAGE_BACKEND"))),
		},
		Redis: Redis{
			Addr:      v.GetString("REDIS_ADDR"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
			Timeout:   v.GetDuration("REDIS_TIMEOUT"),
		},
		API: API{
			QuranURL:  v.GetString("QURAN_API_URL"),
			ShalatURL: v.GetString("SHALAT_API_URL"),
			Timeout:   v.GetDuration("API_TIMEOUT"),
		},
		Location: Location{
			IPLookupEnabled:     v.GetBool("IP_LOCATOR_ENABLED"),
			IPLocatorURL:        v.GetString("IP_LOCATOR_URL"),
			IPLocatorTimeout:    v.GetDuration("IP_LOCATOR_TIMEOUT"),
			CityCoordinatesPath: v.GetString("CITY_COORDINATES_PATH"),
		},
		UI: UI{
			DefaultColorScheme: v.GetString("DEFAULT_COLOR_SCHEME"),
		},
		Logging: Logging{
			File:       v.GetString("LOG_FILE"),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			DatabasePath:      v.GetString("TASKS_DATABASE_PATH"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		CityRefresh: CityRefresh{
			Enabled:  v.GetBool("CITY_REFRESH_ENABLED"),
			Schedule: v.GetString("CITY_REFRESH_SCHEDULE"),
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
