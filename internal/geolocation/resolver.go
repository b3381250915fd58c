package geolocation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync/atomic"

	"github.com/mrlokans/mushaf/internal/notify"
	"github.com/mrlokans/mushaf/internal/shalat"
)

var (
	ErrRequestInFlight = errors.New("location detection already in progress")
	ErrNoMatch         = errors.New("no known city near this location")
)

// CityLister supplies the prayer schedule city list.
type CityLister interface {
	Cities(ctx context.Context) ([]shalat.City, error)
}

// CitySelector persists the detected city.
type CitySelector interface {
	Set(city shalat.City)
}

const detectFailedTitle = "Gagal mendeteksi lokasi"

// Resolver detects the nearest city and makes it the selected one.
type Resolver struct {
	table     ReferenceTable
	cities    CityLister
	selection CitySelector
	notifier  notify.Notifier

	inFlight atomic.Bool
}

func NewResolver(table ReferenceTable, cities CityLister, selection CitySelector, notifier notify.Notifier) *Resolver {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Resolver{
		table:     table,
		cities:    cities,
		selection: selection,
		notifier:  notifier,
	}
}

// Detecting reports whether a detection is running.
func (r *Resolver) Detecting() bool {
	return r.inFlight.Load()
}

// Detect locates the device and selects the nearest known city. Only one
// detection runs at a time; overlapping calls return ErrRequestInFlight.
// On any failure the current selection is left as it was.
func (r *Resolver) Detect(ctx context.Context, locator Locator) (Match, error) {
	if !r.inFlight.CompareAndSwap(false, true) {
		return Match{}, ErrRequestInFlight
	}
	defer r.inFlight.Store(false)

	position, err := locator.Locate(ctx)
	if err != nil {
		r.notifier.Notify(notify.Error(detectFailedTitle, locateErrorMessage(err)))
		return Match{}, err
	}

	cities, err := r.cities.Cities(ctx)
	if err != nil {
		r.notifier.Notify(notify.Error(detectFailedTitle, "Daftar kota belum dapat dimuat"))
		return Match{}, fmt.Errorf("load cities: %w", err)
	}

	match, ok := Nearest(position, r.table, cities)
	if !ok {
		log.Printf("No reference city matches position %.4f,%.4f", position.Latitude, position.Longitude)
		return Match{}, ErrNoMatch
	}

	r.selection.Set(match.City)
	r.notifier.Notify(notify.Success(
		"Lokasi terdeteksi: "+match.City.Lokasi,
		fmt.Sprintf("Jarak sekitar %d km dari lokasi Anda", int(math.Round(match.DistanceKm))),
	))
	log.Printf("Detected city %s (%s), %.1f km away", match.City.ID, match.City.Lokasi, match.DistanceKm)
	return match, nil
}

func locateErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return "Izin lokasi ditolak. Aktifkan akses lokasi untuk mendeteksi kota Anda."
	case errors.Is(err, ErrTimeout):
		return "Waktu permintaan lokasi habis. Silakan coba lagi."
	default:
		return "Informasi lokasi tidak tersedia."
	}
}
