package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the storage database
	DefaultDatabasePath = "./mushaf.db"

	// DefaultTasksDatabasePath is the default path for the background task queue
	DefaultTasksDatabasePath = "./mushaf-tasks.db"
)

// Default remote endpoints
const (
	DefaultQuranAPIURL  = "https://equran.id/api/v2"
	DefaultShalatAPIURL = "https://api.myquran.com/v2"
	DefaultIPLocatorURL = "http://ip-api.com/json/?fields=status,message,lat,lon"
)
