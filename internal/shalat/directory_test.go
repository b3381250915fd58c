package shalat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu     sync.Mutex
	cities []City
	err    error
	calls  int
}

func (f *fakeSource) ListCities(context.Context) ([]City, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.cities, f.err
}

func manyCities(n int) []City {
	cities := make([]City, n)
	for i := range cities {
		cities[i] = City{ID: fmt.Sprintf("%04d", i), Lokasi: fmt.Sprintf("KAB. CONTOH %d", i)}
	}
	return cities
}

func TestDirectory_CitiesFetchesOnce(t *testing.T) {
	src := &fakeSource{cities: PopularCities}
	dir := NewDirectory(src)

	for i := 0; i < 3; i++ {
		cities, err := dir.Cities(context.Background())
		require.NoError(t, err)
		assert.Len(t, cities, len(PopularCities))
	}
	assert.Equal(t, 1, src.calls)
	assert.False(t, dir.FetchedAt().IsZero())
}

func TestDirectory_RefreshKeepsOldListOnFailure(t *testing.T) {
	src := &fakeSource{cities: PopularCities[:2]}
	dir := NewDirectory(src)
	n, err := dir.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	src.err = errors.New("api down")
	_, err = dir.Refresh(context.Background())
	assert.Error(t, err)

	cities, err := dir.Cities(context.Background())
	require.NoError(t, err)
	assert.Len(t, cities, 2)
}

func TestDirectory_Search(t *testing.T) {
	t.Run("popular cities before load", func(t *testing.T) {
		dir := NewDirectory(&fakeSource{})
		assert.Equal(t, PopularCities, dir.Search("jakarta"))
	})

	t.Run("empty query browses first 50", func(t *testing.T) {
		dir := NewDirectory(&fakeSource{cities: manyCities(120)})
		_, err := dir.Cities(context.Background())
		require.NoError(t, err)

		assert.Len(t, dir.Search("  "), 50)
	})

	t.Run("query matches case-insensitively, capped at 30", func(t *testing.T) {
		dir := NewDirectory(&fakeSource{cities: append(manyCities(120), City{ID: "1301", Lokasi: "KOTA JAKARTA"})})
		_, err := dir.Cities(context.Background())
		require.NoError(t, err)

		assert.Len(t, dir.Search("contoh"), 30)
		assert.Equal(t, []City{{ID: "1301", Lokasi: "KOTA JAKARTA"}}, dir.Search("Jakarta"))
		assert.Empty(t, dir.Search("atlantis"))
	})
}
