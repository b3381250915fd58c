package quran

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SurahCount is the number of surahs in the Quran.
const SurahCount = 114

var (
	ErrInvalidSurah = errors.New("surah number must be between 1 and 114")
	ErrUnknownQari  = errors.New("unknown qari")
)

func validateNomor(nomor int) error {
	if nomor < 1 || nomor > SurahCount {
		return fmt.Errorf("%w: %d", ErrInvalidSurah, nomor)
	}
	return nil
}

// SearchSurahs filters by latin name, meaning or number. The match is a
// case-insensitive substring; a blank query returns the list unchanged.
func SearchSurahs(surahs []Surah, query string) []Surah {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return surahs
	}

	out := []Surah{}
	for _, s := range surahs {
		if strings.Contains(strings.ToLower(s.NamaLatin), query) ||
			strings.Contains(strings.ToLower(s.Arti), query) ||
			strings.Contains(strconv.Itoa(s.Nomor), query) {
			out = append(out, s)
		}
	}
	return out
}

// FindQari looks a reciter up by ID.
func FindQari(id string) (Qari, bool) {
	for _, q := range Qaris {
		if q.ID == id {
			return q, true
		}
	}
	return Qari{}, false
}

// AudioURL returns the recording of the ayat by the given qari. An empty qari
// selects DefaultQari.
func (a Ayat) AudioURL(qari string) (string, error) {
	if qari == "" {
		qari = DefaultQari
	}
	if _, ok := FindQari(qari); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownQari, qari)
	}
	url, ok := a.Audio[qari]
	if !ok || url == "" {
		return "", fmt.Errorf("no recording of ayat %d by qari %s", a.NomorAyat, qari)
	}
	return url, nil
}

// FindAyat returns the ayat with the given number.
func (d *SurahDetail) FindAyat(nomor int) (Ayat, bool) {
	for _, a := range d.Ayat {
		if a.NomorAyat == nomor {
			return a, true
		}
	}
	return Ayat{}, false
}

// Neighbours returns the ayat before and after nomor within the surah. Used
// by playback to step backwards and to auto-play the next ayat.
func (d *SurahDetail) Neighbours(nomor int) (prev, next *Ayat) {
	for i := range d.Ayat {
		if d.Ayat[i].NomorAyat != nomor {
			continue
		}
		if i > 0 {
			prev = &d.Ayat[i-1]
		}
		if i+1 < len(d.Ayat) {
			next = &d.Ayat[i+1]
		}
		return prev, next
	}
	return nil, nil
}

// ForAyat returns the tafsir text of one ayat.
func (t *Tafsir) ForAyat(ayat int) (string, bool) {
	for _, ta := range t.Tafsir {
		if ta.Ayat == ayat {
			return ta.Teks, true
		}
	}
	return "", false
}
