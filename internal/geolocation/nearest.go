package geolocation

import "github.com/mrlokans/mushaf/internal/shalat"

// Match is the city closest to a position.
type Match struct {
	City       shalat.City `json:"city"`
	DistanceKm float64     `json:"distanceKm"`
}

// Nearest returns the city closest to user among the reference entries that
// also appear in cities. Entries missing from cities are skipped entirely, so
// the reported distance is always that of the returned city. Ties go to the
// lowest city code. ok is false when no entry appears in cities.
func Nearest(user Coordinate, table ReferenceTable, cities []shalat.City) (match Match, ok bool) {
	for _, code := range table.Codes() {
		city, found := shalat.FindCity(cities, code)
		if !found {
			continue
		}
		d := Distance(user, table[code])
		if !ok || d < match.DistanceKm {
			match = Match{City: city, DistanceKm: d}
			ok = true
		}
	}
	return match, ok
}
