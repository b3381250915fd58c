// Package shalat covers prayer schedules: the schedule API client, the
// directory of known cities, and the reader's selected city.
package shalat

// City is a location known to the prayer schedule API.
type City struct {
	ID     string `json:"id"`
	Lokasi string `json:"lokasi"`
}

// Jadwal holds the prayer times of one day, as HH:MM local time.
type Jadwal struct {
	Tanggal string `json:"tanggal"`
	Imsak   string `json:"imsak"`
	Subuh   string `json:"subuh"`
	Terbit  string `json:"terbit"`
	Dhuha   string `json:"dhuha"`
	Dzuhur  string `json:"dzuhur"`
	Ashar   string `json:"ashar"`
	Maghrib string `json:"maghrib"`
	Isya    string `json:"isya"`
	Date    string `json:"date"`
}

// Schedule is the daily schedule for a city.
type Schedule struct {
	ID     any    `json:"id,omitempty"`
	Lokasi string `json:"lokasi"`
	Daerah string `json:"daerah"`
	Jadwal Jadwal `json:"jadwal"`
}

// PopularCities are offered before the full city list has loaded. The first
// entry is the default selection.
var PopularCities = []City{
	{ID: "1301", Lokasi: "KOTA JAKARTA"},
	{ID: "1501", Lokasi: "KOTA BANDUNG"},
	{ID: "1609", Lokasi: "KOTA SURABAYA"},
	{ID: "2401", Lokasi: "KOTA SEMARANG"},
	{ID: "1208", Lokasi: "KOTA MEDAN"},
	{ID: "2101", Lokasi: "KOTA MAKASSAR"},
	{ID: "1438", Lokasi: "KOTA YOGYAKARTA"},
	{ID: "1819", Lokasi: "KOTA PALEMBANG"},
}

// FindCity returns the city with the given ID.
func FindCity(cities []City, id string) (City, bool) {
	for _, c := range cities {
		if c.ID == id {
			return c, true
		}
	}
	return City{}, false
}
