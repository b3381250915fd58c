package entrypoint

import (
	"fmt"
	"io"
	"log"

	"github.com/mrlokans/mushaf/internal/config"
	"github.com/mrlokans/mushaf/internal/database"
	"github.com/mrlokans/mushaf/internal/kvstore"
)

// Storage is the opened key/value store together with the backend it
// writes through.
type Storage struct {
	Store   *kvstore.Store
	Backend kvstore.Backend
	closer  io.Closer
}

// Close releases the backend connection, if it holds one.
func (s *Storage) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// OpenStorage opens the backend selected by cfg.Storage.Backend.
func OpenStorage(cfg *config.Config) (*Storage, error) {
	switch cfg.Storage.Backend {
	case config.StorageSQLite, "":
		db, err := database.NewDatabase(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		return &Storage{Store: kvstore.New(db), Backend: db, closer: db}, nil

	case config.StorageRedis:
		rb, err := kvstore.NewRedisBackend(kvstore.RedisConfig{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
			Timeout:   cfg.Redis.Timeout,
		})
		if err != nil {
			return nil, err
		}
		log.Printf("Using redis storage at %s (prefix %q)", cfg.Redis.Addr, cfg.Redis.KeyPrefix)
		return &Storage{Store: kvstore.New(rb), Backend: rb, closer: rb}, nil

	case config.StorageMemory:
		log.Printf("WARNING: Using in-memory storage. Bookmarks, history and settings are lost on restart.")
		mb := kvstore.NewMemoryBackend()
		return &Storage{Store: kvstore.New(mb), Backend: mb}, nil
	}

	return nil, fmt.Errorf("unknown storage backend %q (expected sqlite, redis or memory)", cfg.Storage.Backend)
}
