package quran

import (
	"bytes"
	"encoding/json"
)

// AudioQari maps a qari ID ("01".."05") to an audio URL.
type AudioQari map[string]string

type Surah struct {
	Nomor       int       `json:"nomor"`
	Nama        string    `json:"nama"`
	NamaLatin   string    `json:"namaLatin"`
	JumlahAyat  int       `json:"jumlahAyat"`
	TempatTurun string    `json:"tempatTurun"`
	Arti        string    `json:"arti"`
	Deskripsi   string    `json:"deskripsi"`
	AudioFull   AudioQari `json:"audioFull"`
}

// SurahNav points at the previous or next surah.
type SurahNav struct {
	Nomor      int    `json:"nomor"`
	Nama       string `json:"nama"`
	NamaLatin  string `json:"namaLatin"`
	JumlahAyat int    `json:"jumlahAyat"`
}

type Ayat struct {
	NomorAyat     int       `json:"nomorAyat"`
	TeksArab      string    `json:"teksArab"`
	TeksLatin     string    `json:"teksLatin"`
	TeksIndonesia string    `json:"teksIndonesia"`
	Audio         AudioQari `json:"audio"`
}

type SurahDetail struct {
	Surah
	Ayat             []Ayat    `json:"ayat"`
	SuratSelanjutnya *SurahNav `json:"suratSelanjutnya"`
	SuratSebelumnya  *SurahNav `json:"suratSebelumnya"`
}

// UnmarshalJSON accepts false for a missing neighbour, which is what the API
// sends at either end of the mushaf.
func (n *SurahNav) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("false")) {
		*n = SurahNav{}
		return nil
	}
	type plain SurahNav
	return json.Unmarshal(b, (*plain)(n))
}

// UnmarshalJSON drops neighbours that decoded to nothing.
func (d *SurahDetail) UnmarshalJSON(b []byte) error {
	type plain SurahDetail
	if err := json.Unmarshal(b, (*plain)(d)); err != nil {
		return err
	}
	if d.SuratSelanjutnya != nil && d.SuratSelanjutnya.Nomor == 0 {
		d.SuratSelanjutnya = nil
	}
	if d.SuratSebelumnya != nil && d.SuratSebelumnya.Nomor == 0 {
		d.SuratSebelumnya = nil
	}
	return nil
}

type TafsirAyat struct {
	Ayat int    `json:"ayat"`
	Teks string `json:"teks"`
}

type Tafsir struct {
	Surah
	Tafsir []TafsirAyat `json:"tafsir"`
}

// Qari is a reciter whose recordings the content API serves.
type Qari struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Qaris lists the available reciters in API order.
var Qaris = []Qari{
	{ID: "01", Name: "Abdullah Al-Juhany"},
	{ID: "02", Name: "Abdul Muhsin Al-Qasim"},
	{ID: "03", Name: "Abdurrahman As-Sudais"},
	{ID: "04", Name: "Ibrahim Al-Dossari"},
	{ID: "05", Name: "Misyari Rasyid Al-Afasy"},
}

// DefaultQari is the reciter selected until the reader picks another.
const DefaultQari = "05"
