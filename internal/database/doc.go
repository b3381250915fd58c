// Package database is the sqlite backing store for the companion's
// per-origin persistent storage.
//
// A single table, storage_entries, maps string keys to JSON documents. The
// Database type implements kvstore.Backend so every registry (bookmarks,
// reading history, settings, selected city) persists through it.
//
// # Usage
//
//	db, err := database.NewDatabase("./mushaf.db")
//	if err != nil {
//		return err
//	}
//	defer db.Close()
//
//	store := kvstore.New(db)
package database
