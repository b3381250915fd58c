// Package bookmarks keeps the set of bookmarked ayat.
//
// Bookmarks are identified by (surah number, ayat number) and persisted as a
// single newest-first list under entities.StorageKeyBookmarks. Every mutation
// reads the whole list, changes it and writes it back.
package bookmarks

import (
	"sync"
	"time"

	"github.com/mrlokans/mushaf/internal/entities"
	"github.com/mrlokans/mushaf/internal/kvstore"
)

// Bookmark is a saved ayat. Field names match the records already persisted by
// the web client.
type Bookmark struct {
	SurahNumber     int    `json:"surahNumber"`
	SurahName       string `json:"surahName"`
	SurahNameArabic string `json:"surahNameArabic"`
	AyatNumber      int    `json:"ayatNumber"`
	AyatText        string `json:"ayatText,omitempty"`
	Timestamp       int64  `json:"timestamp"`
}

// NewBookmark is a Bookmark before it gets its creation timestamp.
type NewBookmark struct {
	SurahNumber     int    `json:"surahNumber" binding:"required,min=1,max=114"`
	SurahName       string `json:"surahName"`
	SurahNameArabic string `json:"surahNameArabic"`
	AyatNumber      int    `json:"ayatNumber" binding:"required,min=1"`
	AyatText        string `json:"ayatText,omitempty"`
}

// Registry is the bookmark collection.
type Registry struct {
	store *kvstore.Store
	now   func() time.Time

	// guards read-modify-write of the persisted list
	mu sync.Mutex
}

func NewRegistry(store *kvstore.Store) *Registry {
	return &Registry{store: store, now: time.Now}
}

// List returns all bookmarks, most recently added first.
func (r *Registry) List() []Bookmark {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// ForSurah returns the bookmarks of one surah, most recently added first.
func (r *Registry) ForSurah(surahNumber int) []Bookmark {
	var out []Bookmark
	for _, b := range r.List() {
		if b.SurahNumber == surahNumber {
			out = append(out, b)
		}
	}
	return out
}

// IsBookmarked reports whether the ayat is bookmarked.
func (r *Registry) IsBookmarked(surahNumber, ayatNumber int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return indexOf(r.load(), surahNumber, ayatNumber) >= 0
}

// Add prepends a bookmark unless the ayat is already bookmarked.
// It reports whether a bookmark was added.
func (r *Registry) Add(nb NewBookmark) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.add(nb)
}

// Remove deletes the bookmark for the ayat, if any.
// It reports whether a bookmark was removed.
func (r *Registry) Remove(surahNumber, ayatNumber int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remove(surahNumber, ayatNumber)
}

// Toggle removes the bookmark when present and adds it otherwise.
// It returns the bookmarked state after the call.
func (r *Registry) Toggle(nb NewBookmark) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.remove(nb.SurahNumber, nb.AyatNumber) {
		return false
	}
	return r.add(nb)
}

func (r *Registry) add(nb NewBookmark) bool {
	list := r.load()
	if indexOf(list, nb.SurahNumber, nb.AyatNumber) >= 0 {
		return false
	}

	b := Bookmark{
		SurahNumber:     nb.SurahNumber,
		SurahName:       nb.SurahName,
		SurahNameArabic: nb.SurahNameArabic,
		AyatNumber:      nb.AyatNumber,
		AyatText:        nb.AyatText,
		Timestamp:       r.now().UnixMilli(),
	}
	r.save(append([]Bookmark{b}, list...))
	return true
}

func (r *Registry) remove(surahNumber, ayatNumber int) bool {
	list := r.load()
	idx := indexOf(list, surahNumber, ayatNumber)
	if idx < 0 {
		return false
	}

	out := make([]Bookmark, 0, len(list)-1)
	out = append(out, list[:idx]...)
	out = append(out, list[idx+1:]...)
	r.save(out)
	return true
}

func (r *Registry) load() []Bookmark {
	return kvstore.Read(r.store, entities.StorageKeyBookmarks, []Bookmark{})
}

func (r *Registry) save(list []Bookmark) {
	kvstore.Write(r.store, entities.StorageKeyBookmarks, list)
}

func indexOf(list []Bookmark, surahNumber, ayatNumber int) int {
	for i, b := range list {
		if b.SurahNumber == surahNumber && b.AyatNumber == ayatNumber {
			return i
		}
	}
	return -1
}
