package shalat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

const (
	searchLimit = 30
	browseLimit = 50
)

// CitySource is the remote list of cities.
type CitySource interface {
	ListCities(ctx context.Context) ([]City, error)
}

// Directory holds the most recently fetched city list.
type Directory struct {
	source CitySource

	mu        sync.RWMutex
	cities    []City
	fetchedAt time.Time

	// serialises fetches so concurrent first callers share one request
	fetchMu sync.Mutex
}

func NewDirectory(source CitySource) *Directory {
	return &Directory{source: source}
}

// Cities returns the city list, fetching it on first use.
func (d *Directory) Cities(ctx context.Context) ([]City, error) {
	if cities, ok := d.loaded(); ok {
		return cities, nil
	}

	d.fetchMu.Lock()
	defer d.fetchMu.Unlock()

	if cities, ok := d.loaded(); ok {
		return cities, nil
	}
	return d.fetch(ctx)
}

// Refresh re-fetches the list. The previous list stays in place on failure.
func (d *Directory) Refresh(ctx context.Context) (int, error) {
	d.fetchMu.Lock()
	defer d.fetchMu.Unlock()

	cities, err := d.fetch(ctx)
	return len(cities), err
}

// FetchedAt returns when the list was last fetched, zero if never.
func (d *Directory) FetchedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.fetchedAt
}

// Search filters the loaded list by a case-insensitive substring of the city
// name. An empty query browses the first cities; before the list is loaded
// the popular cities are returned.
func (d *Directory) Search(query string) []City {
	cities, ok := d.loaded()
	if !ok {
		return append([]City(nil), PopularCities...)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		if len(cities) > browseLimit {
			cities = cities[:browseLimit]
		}
		return append([]City(nil), cities...)
	}

	var out []City
	for _, c := range cities {
		if strings.Contains(strings.ToLower(c.Lokasi), query) {
			out = append(out, c)
			if len(out) == searchLimit {
				break
			}
		}
	}
	return out
}

func (d *Directory) loaded() ([]City, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cities, d.cities != nil
}

func (d *Directory) fetch(ctx context.Context) ([]City, error) {
	cities, err := d.source.ListCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("load city list: %w", err)
	}
	if cities == nil {
		cities = []City{}
	}

	d.mu.Lock()
	d.cities = cities
	d.fetchedAt = time.Now()
	d.mu.Unlock()

	log.Printf("Shalat city directory loaded: %d cities", len(cities))
	return cities, nil
}
