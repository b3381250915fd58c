package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/mushaf/internal/bookmarks"
	"github.com/mrlokans/mushaf/internal/geolocation"
	"github.com/mrlokans/mushaf/internal/history"
	"github.com/mrlokans/mushaf/internal/quran"
	"github.com/mrlokans/mushaf/internal/settings"
	"github.com/mrlokans/mushaf/internal/shalat"
)

// This file consolidates the interfaces HTTP controllers depend on.
// Each controller takes only what it uses.

// BookmarkStore is implemented by *bookmarks.Registry.
type BookmarkStore interface {
	List() []bookmarks.Bookmark
	ForSurah(surahNumber int) []bookmarks.Bookmark
	IsBookmarked(surahNumber, ayatNumber int) bool
	Add(nb bookmarks.NewBookmark) bool
	Remove(surahNumber, ayatNumber int) bool
	Toggle(nb bookmarks.NewBookmark) bool
}

// HistoryStore is implemented by *history.Log.
type HistoryStore interface {
	List() []history.Item
	Latest() (history.Item, bool)
	AddVisit(v history.Visit)
	Clear()
}

// SettingsStore is implemented by *settings.Store.
type SettingsStore interface {
	Get() settings.Settings
	Patch(changes map[string]any) error
	Reset()
}

// ThemeState reports the theme in effect. Implemented by *settings.ThemeApplier.
type ThemeState interface {
	Theme() settings.Theme
	Document() *settings.Document
}

// ContentSource is implemented by *quran.Client.
type ContentSource interface {
	ListSurahs(ctx context.Context) ([]quran.Surah, error)
	GetSurahDetail(ctx context.Context, nomor int) (*quran.SurahDetail, error)
	GetTafsir(ctx context.Context, nomor int) (*quran.Tafsir, error)
}

// CityDirectory is implemented by *shalat.Directory.
type CityDirectory interface {
	Cities(ctx context.Context) ([]shalat.City, error)
	Search(query string) []shalat.City
}

// ScheduleSource is implemented by *shalat.Client.
type ScheduleSource interface {
	GetDailySchedule(ctx context.Context, cityID string, year, month, day int) (*shalat.Schedule, error)
}

// CitySelection is implemented by *shalat.Selection.
type CitySelection interface {
	Get() shalat.City
	Set(city shalat.City)
}

// CityDetector is implemented by *geolocation.Resolver.
type CityDetector interface {
	Detect(ctx context.Context, locator geolocation.Locator) (geolocation.Match, error)
	Detecting() bool
}

// TaskQueue is implemented by *tasks.Client.
type TaskQueue interface {
	Enqueue(task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// Pinger checks that a dependency is reachable.
type Pinger interface {
	Ping() error
}
