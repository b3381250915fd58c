// Package settings holds the reader's display and playback preferences.
//
// There is exactly one Settings record. It is created from Defaults on first
// access, updated one field at a time, and persisted under
// entities.StorageKeySettings. Changes to the theme field are pushed to
// subscribers so the active visual mode can be re-applied.
package settings

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mrlokans/mushaf/internal/entities"
	"github.com/mrlokans/mushaf/internal/kvstore"
)

type FontSize string

const (
	FontSizeSmall  FontSize = "small"
	FontSizeMedium FontSize = "medium"
	FontSizeLarge  FontSize = "large"
)

func (f FontSize) Valid() bool {
	switch f {
	case FontSizeSmall, FontSizeMedium, FontSizeLarge:
		return true
	}
	return false
}

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// Field keys accepted by Store.Update.
const (
	KeyFontSize        = "fontSize"
	KeyShowLatin       = "showLatin"
	KeyShowTranslation = "showTranslation"
	KeyTheme           = "theme"
	KeyAutoPlayNext    = "autoPlayNext"
)

var (
	ErrUnknownSetting = errors.New("unknown setting")
	ErrInvalidValue   = errors.New("invalid setting value")
)

type Settings struct {
	FontSize        FontSize `json:"fontSize"`
	ShowLatin       bool     `json:"showLatin"`
	ShowTranslation bool     `json:"showTranslation"`
	Theme           Theme    `json:"theme"`
	AutoPlayNext    bool     `json:"autoPlayNext"`
}

// Defaults returns the record used before anything was saved and after Reset.
func Defaults() Settings {
	return Settings{
		FontSize:        FontSizeMedium,
		ShowLatin:       true,
		ShowTranslation: true,
		Theme:           ThemeSystem,
		AutoPlayNext:    false,
	}
}

// Store is the settings singleton.
type Store struct {
	store *kvstore.Store

	// held across a write and its theme notification so observers see
	// theme changes in the order they were stored
	writeMu sync.Mutex

	mu        sync.Mutex
	observers []func(Theme)
}

func NewStore(store *kvstore.Store) *Store {
	return &Store{store: store}
}

// OnThemeChange registers fn to run whenever the theme field changes, and once
// from Start. fn must not write settings.
func (s *Store) OnThemeChange(fn func(Theme)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Start pushes the persisted theme to every subscriber. Call it once after
// all subscribers are registered.
func (s *Store) Start() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.notify(s.Get().Theme)
}

// Get returns the current settings.
func (s *Store) Get() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Update merges a single field into the record, leaving the others untouched.
func (s *Store) Update(key string, value any) error {
	return s.mutate(func(st *Settings) error {
		return apply(st, key, value)
	})
}

// Patch applies several fields at once. Either every change is stored or,
// on the first invalid one, none is.
func (s *Store) Patch(changes map[string]any) error {
	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return s.mutate(func(st *Settings) error {
		for _, k := range keys {
			if err := apply(st, k, changes[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Reset replaces the record with Defaults.
func (s *Store) Reset() {
	_ = s.mutate(func(st *Settings) error {
		*st = Defaults()
		return nil
	})
}

// mutate stores the result of change and notifies observers when the theme
// moved. Nothing is written when change fails.
func (s *Store) mutate(change func(*Settings) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	prev := s.load()
	next := prev
	if err := change(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	kvstore.Write(s.store, entities.StorageKeySettings, next)
	s.mu.Unlock()

	if next.Theme != prev.Theme {
		s.notify(next.Theme)
	}
	return nil
}

func (s *Store) load() Settings {
	return normalize(kvstore.Read(s.store, entities.StorageKeySettings, Defaults()))
}

func (s *Store) notify(theme Theme) {
	s.mu.Lock()
	observers := append([]func(Theme){}, s.observers...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(theme)
	}
}

// normalize replaces out-of-range enum values from old or hand-edited data.
func normalize(st Settings) Settings {
	def := Defaults()
	if !st.FontSize.Valid() {
		st.FontSize = def.FontSize
	}
	if !st.Theme.Valid() {
		st.Theme = def.Theme
	}
	return st
}

func apply(st *Settings, key string, value any) error {
	switch key {
	case KeyFontSize:
		v, err := asString(key, value)
		if err != nil {
			return err
		}
		if !FontSize(v).Valid() {
			return fmt.Errorf("%w: %s must be small, medium or large", ErrInvalidValue, key)
		}
		st.FontSize = FontSize(v)
	case KeyTheme:
		v, err := asString(key, value)
		if err != nil {
			return err
		}
		if !Theme(v).Valid() {
			return fmt.Errorf("%w: %s must be light, dark or system", ErrInvalidValue, key)
		}
		st.Theme = Theme(v)
	case KeyShowLatin:
		return setBool(&st.ShowLatin, key, value)
	case KeyShowTranslation:
		return setBool(&st.ShowTranslation, key, value)
	case KeyAutoPlayNext:
		return setBool(&st.AutoPlayNext, key, value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}
	return nil
}

func asString(key string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case FontSize:
		return string(v), nil
	case Theme:
		return string(v), nil
	}
	return "", fmt.Errorf("%w: %s expects a string, got %T", ErrInvalidValue, key, value)
}

func setBool(dst *bool, key string, value any) error {
	v, ok := value.(bool)
	if !ok {
		return fmt.Errorf("%w: %s expects a boolean, got %T", ErrInvalidValue, key, value)
	}
	*dst = v
	return nil
}
