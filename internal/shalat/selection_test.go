package shalat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/mushaf/internal/entities"
	"github.com/mrlokans/mushaf/internal/kvstore"
)

func TestSelection(t *testing.T) {
	backend := kvstore.NewMemoryBackend()
	sel := NewSelection(kvstore.New(backend))

	assert.Equal(t, City{ID: "1301", Lokasi: "KOTA JAKARTA"}, sel.Get(), "defaults to the first popular city")

	sel.Set(City{ID: "1609", Lokasi: "KOTA SURABAYA"})
	assert.Equal(t, "1609", sel.Get().ID)

	raw, err := backend.Get(entities.StorageKeySelectedCity)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1609","lokasi":"KOTA SURABAYA"}`, raw)
}

func TestSelection_CorruptValueFallsBack(t *testing.T) {
	backend := kvstore.NewMemoryBackend()
	require.NoError(t, backend.Set(entities.StorageKeySelectedCity, "KOTA"))
	sel := NewSelection(kvstore.New(backend))

	assert.Equal(t, PopularCities[0], sel.Get())
}
