package geolocation

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/mushaf/internal/shalat"
)

var (
	jakarta  = Coordinate{Latitude: -6.2, Longitude: 106.8}
	surabaya = Coordinate{Latitude: -7.25, Longitude: 112.75}
)

func TestDistance(t *testing.T) {
	assert.InDelta(t, 0, Distance(jakarta, jakarta), 1e-9)

	d := Distance(jakarta, surabaya)
	assert.InDelta(t, 665, d, 15, "Jakarta to Surabaya is roughly 660 km")
	assert.InDelta(t, d, Distance(surabaya, jakarta), 1e-9, "distance is symmetric")

	// A quarter of the equator.
	quarter := Distance(Coordinate{0, 0}, Coordinate{0, 90})
	assert.InDelta(t, EarthRadiusKm*math.Pi/2, quarter, 1e-6)
}

func TestCoordinate_Valid(t *testing.T) {
	assert.True(t, jakarta.Valid())
	assert.False(t, Coordinate{Latitude: 91}.Valid())
	assert.False(t, Coordinate{Longitude: -181}.Valid())
	assert.False(t, Coordinate{Latitude: math.NaN()}.Valid())
}

func TestNearest(t *testing.T) {
	table := ReferenceTable{"1301": jakarta, "1609": surabaya}
	cities := []shalat.City{
		{ID: "1301", Lokasi: "KOTA JAKARTA"},
		{ID: "1609", Lokasi: "KOTA SURABAYA"},
	}

	t.Run("closest city with its own distance", func(t *testing.T) {
		match, ok := Nearest(Coordinate{Latitude: -6.21, Longitude: 106.85}, table, cities)

		require.True(t, ok)
		assert.Equal(t, "1301", match.City.ID)
		assert.Less(t, match.DistanceKm, 10.0)
	})

	t.Run("entries absent from the city list are skipped", func(t *testing.T) {
		match, ok := Nearest(Coordinate{Latitude: -6.21, Longitude: 106.85}, table, cities[1:])

		require.True(t, ok)
		assert.Equal(t, "1609", match.City.ID)
		assert.InDelta(t, Distance(Coordinate{Latitude: -6.21, Longitude: 106.85}, surabaya), match.DistanceKm, 1e-9)
	})

	t.Run("no overlap", func(t *testing.T) {
		_, ok := Nearest(jakarta, table, []shalat.City{{ID: "9999", Lokasi: "NOWHERE"}})
		assert.False(t, ok)
	})

	t.Run("ties go to the lowest code", func(t *testing.T) {
		same := ReferenceTable{"2000": jakarta, "1000": jakarta}
		list := []shalat.City{{ID: "2000", Lokasi: "B"}, {ID: "1000", Lokasi: "A"}}

		for i := 0; i < 20; i++ {
			match, ok := Nearest(jakarta, same, list)
			require.True(t, ok)
			assert.Equal(t, "1000", match.City.ID)
		}
	})
}

func TestLoadReferenceTable(t *testing.T) {
	t.Run("default table", func(t *testing.T) {
		table := DefaultReferenceTable()

		for _, city := range shalat.PopularCities {
			_, ok := table[city.ID]
			assert.True(t, ok, "popular city %s has a coordinate", city.ID)
		}
		assert.True(t, strings.HasPrefix(table.Codes()[0], "1"))
	})

	t.Run("parses entries", func(t *testing.T) {
		table, err := LoadReferenceTable(strings.NewReader(`
cities:
  - id: "42"
    name: TEST
    lat: 1.5
    lon: -2.25
`))
		require.NoError(t, err)
		assert.Equal(t, ReferenceTable{"42": {Latitude: 1.5, Longitude: -2.25}}, table)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		for name, body := range map[string]string{
			"missing id":   "cities:\n  - lat: 1\n    lon: 1\n",
			"out of range": "cities:\n  - id: \"1\"\n    lat: 100\n    lon: 1\n",
			"duplicate":    "cities:\n  - id: \"1\"\n    lat: 1\n    lon: 1\n  - id: \"1\"\n    lat: 2\n    lon: 2\n",
			"not yaml":     "cities: [",
		} {
			_, err := LoadReferenceTable(strings.NewReader(body))
			assert.Error(t, err, name)
		}
	})
}
