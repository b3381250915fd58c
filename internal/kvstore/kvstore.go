// Package kvstore is the persistent key/value adapter that every registry
// writes through.
//
// Values are stored as JSON documents under fixed string keys. Reads fail soft:
// a missing key, a backend error or a document that no longer decodes all yield
// the caller's default. Writes never return errors to application code; backend
// failures are logged and dropped.
//
// # Usage
//
//	store := kvstore.New(db)
//	marks := kvstore.Read(store, "quran-bookmarks", []Bookmark{})
//	kvstore.Write(store, "quran-bookmarks", marks)
package kvstore

import (
	"encoding/json"
	"errors"
	"log"
)

// ErrNotFound is returned by a Backend when the key holds no value.
var ErrNotFound = errors.New("key not found")

// Backend is the raw storage the adapter serialises into.
type Backend interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Ping() error
}

// Store wraps a Backend with JSON (de)serialisation.
type Store struct {
	backend Backend
}

// New creates a Store over the given backend.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Read returns the value stored under key decoded into T, or def when the key
// is absent, unreadable or malformed.
//
// The document is decoded on top of a copy of def, so fields missing from an
// older persisted struct keep their default values.
func Read[T any](s *Store, key string, def T) T {
	raw, err := s.backend.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("kvstore: read %q failed: %v", key, err)
		}
		return def
	}

	value := def
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		log.Printf("kvstore: discarding malformed value under %q: %v", key, err)
		return def
	}
	return value
}

// Write stores value under key. Failures are logged, never returned.
func Write[T any](s *Store, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("kvstore: encode %q failed: %v", key, err)
		return
	}
	if err := s.backend.Set(key, string(data)); err != nil {
		log.Printf("kvstore: write %q failed: %v", key, err)
	}
}

// Ping reports whether the backend is reachable.
func (s *Store) Ping() error {
	return s.backend.Ping()
}
