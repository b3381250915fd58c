package shalat

import (
	"github.com/mrlokans/mushaf/internal/entities"
	"github.com/mrlokans/mushaf/internal/kvstore"
)

// Selection is the reader's chosen city for the prayer schedule.
type Selection struct {
	store *kvstore.Store
}

func NewSelection(store *kvstore.Store) *Selection {
	return &Selection{store: store}
}

// Get returns the selected city, or the first popular city when nothing
// usable is stored.
func (s *Selection) Get() City {
	city := kvstore.Read(s.store, entities.StorageKeySelectedCity, City{})
	if city.ID == "" {
		return PopularCities[0]
	}
	return city
}

// Set persists city as the selection.
func (s *Selection) Set(city City) {
	kvstore.Write(s.store, entities.StorageKeySelectedCity, city)
}
