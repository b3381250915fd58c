// Package history records which surahs were opened, most recent first.
package history

import (
	"sync"
	"time"

	"github.com/mrlokans/mushaf/internal/entities"
	"github.com/mrlokans/mushaf/internal/kvstore"
)

// MaxItems caps the log; older visits are evicted first.
const MaxItems = 10

// Item is one visited surah. A surah appears at most once.
type Item struct {
	SurahNumber     int    `json:"surahNumber"`
	SurahName       string `json:"surahName"`
	SurahNameArabic string `json:"surahNameArabic"`
	AyatNumber      *int   `json:"ayatNumber,omitempty"`
	Timestamp       int64  `json:"timestamp"`
}

// Visit describes a surah being opened.
type Visit struct {
	SurahNumber     int    `json:"surahNumber" binding:"required,min=1,max=114"`
	SurahName       string `json:"surahName"`
	SurahNameArabic string `json:"surahNameArabic"`
	AyatNumber      *int   `json:"ayatNumber,omitempty"`
}

type Log struct {
	store *kvstore.Store
	now   func() time.Time
	mu    sync.Mutex
}

func NewLog(store *kvstore.Store) *Log {
	return &Log{store: store, now: time.Now}
}

// List returns the visits, most recent first.
func (l *Log) List() []Item {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

// Latest returns the most recent visit.
func (l *Log) Latest() (Item, bool) {
	items := l.List()
	if len(items) == 0 {
		return Item{}, false
	}
	return items[0], true
}

// AddVisit moves the surah to the front with a fresh timestamp and trims the
// log to MaxItems.
func (l *Log) AddVisit(v Visit) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev := l.load()
	items := make([]Item, 0, len(prev)+1)
	items = append(items, Item{
		SurahNumber:     v.SurahNumber,
		SurahName:       v.SurahName,
		SurahNameArabic: v.SurahNameArabic,
		AyatNumber:      v.AyatNumber,
		Timestamp:       l.now().UnixMilli(),
	})
	for _, it := range prev {
		if it.SurahNumber != v.SurahNumber {
			items = append(items, it)
		}
	}
	if len(items) > MaxItems {
		items = items[:MaxItems]
	}

	kvstore.Write(l.store, entities.StorageKeyReadingHistory, items)
}

// Clear empties the log.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	kvstore.Write(l.store, entities.StorageKeyReadingHistory, []Item{})
}

func (l *Log) load() []Item {
	return kvstore.Read(l.store, entities.StorageKeyReadingHistory, []Item{})
}
