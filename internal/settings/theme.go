package settings

import (
	"log"
	"strings"
	"sync"
)

// Mode is the visual mode actually shown: exactly one of light or dark.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// ParseMode accepts "light" or "dark" in any case.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLight:
		return ModeLight, true
	case ModeDark:
		return ModeDark, true
	}
	return "", false
}

// ColorSchemeSource answers the host's preferred colour scheme.
type ColorSchemeSource interface {
	PreferredMode() Mode
}

// ClientHint is a ColorSchemeSource fed from the Sec-CH-Prefers-Color-Scheme
// header of the most recent request.
type ClientHint struct {
	mu   sync.RWMutex
	mode Mode
}

func NewClientHint(fallback Mode) *ClientHint {
	if fallback != ModeDark {
		fallback = ModeLight
	}
	return &ClientHint{mode: fallback}
}

func (h *ClientHint) PreferredMode() Mode {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.mode
}

// Set records the client's preference and reports whether it changed.
func (h *ClientHint) Set(mode Mode) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.mode == mode {
		return false
	}
	h.mode = mode
	return true
}

// Document holds the active mode classes of the rendered page.
type Document struct {
	mu      sync.RWMutex
	classes map[Mode]bool
}

func NewDocument() *Document {
	return &Document{classes: make(map[Mode]bool)}
}

// ActiveMode returns the applied mode, or "" before the first apply.
func (d *Document) ActiveMode() Mode {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, m := range []Mode{ModeLight, ModeDark} {
		if d.classes[m] {
			return m
		}
	}
	return ""
}

func (d *Document) setMode(m Mode) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.classes, ModeLight)
	delete(d.classes, ModeDark)
	d.classes[m] = true
}

// ThemeApplier turns the theme setting into an active Mode on a Document.
type ThemeApplier struct {
	doc    *Document
	scheme ColorSchemeSource

	mu    sync.Mutex
	theme Theme
}

func NewThemeApplier(doc *Document, scheme ColorSchemeSource) *ThemeApplier {
	return &ThemeApplier{doc: doc, scheme: scheme, theme: ThemeSystem}
}

// Apply resolves theme and makes the result the only active mode.
func (a *ThemeApplier) Apply(theme Theme) Mode {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.theme = theme
	mode := a.resolve(theme)
	a.doc.setMode(mode)
	log.Printf("Theme applied: setting=%s mode=%s", theme, mode)
	return mode
}

// Refresh re-applies the last theme, picking up a changed system preference.
func (a *ThemeApplier) Refresh() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()

	mode := a.resolve(a.theme)
	a.doc.setMode(mode)
	return mode
}

// Theme returns the last applied theme setting.
func (a *ThemeApplier) Theme() Theme {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.theme
}

// Document returns the document the applier writes to.
func (a *ThemeApplier) Document() *Document {
	return a.doc
}

func (a *ThemeApplier) resolve(theme Theme) Mode {
	switch theme {
	case ThemeLight:
		return ModeLight
	case ThemeDark:
		return ModeDark
	}
	if a.scheme != nil && a.scheme.PreferredMode() == ModeDark {
		return ModeDark
	}
	return ModeLight
}
