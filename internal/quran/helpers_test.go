package quran

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSurahs() []Surah {
	return []Surah{
		{Nomor: 1, NamaLatin: "Al-Fatihah", Arti: "Pembukaan"},
		{Nomor: 2, NamaLatin: "Al-Baqarah", Arti: "Sapi Betina"},
		{Nomor: 12, NamaLatin: "Yusuf", Arti: "Yusuf"},
		{Nomor: 36, NamaLatin: "Yasin", Arti: "Yasin"},
	}
}

func TestSearchSurahs(t *testing.T) {
	surahs := sampleSurahs()

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"blank returns all", "  ", []int{1, 2, 12, 36}},
		{"latin name is case-insensitive", "baqarah", []int{2}},
		{"meaning", "pembuka", []int{1}},
		{"number substring", "1", []int{1, 12}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			for _, s := range SearchSurahs(surahs, tt.query) {
				got = append(got, s.Nomor)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAyat_AudioURL(t *testing.T) {
	ayat := Ayat{NomorAyat: 1, Audio: AudioQari{
		"01": "https://cdn.example/01/001001.mp3",
		"05": "https://cdn.example/05/001001.mp3",
	}}

	url, err := ayat.AudioURL("")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/05/001001.mp3", url)

	url, err = ayat.AudioURL("01")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/01/001001.mp3", url)

	_, err = ayat.AudioURL("03")
	assert.Error(t, err)

	_, err = ayat.AudioURL("99")
	assert.ErrorIs(t, err, ErrUnknownQari)
}

func TestSurahDetail_Neighbours(t *testing.T) {
	detail := &SurahDetail{Ayat: []Ayat{{NomorAyat: 1}, {NomorAyat: 2}, {NomorAyat: 3}}}

	prev, next := detail.Neighbours(1)
	assert.Nil(t, prev)
	require.NotNil(t, next)
	assert.Equal(t, 2, next.NomorAyat)

	prev, next = detail.Neighbours(3)
	require.NotNil(t, prev)
	assert.Equal(t, 2, prev.NomorAyat)
	assert.Nil(t, next)

	prev, next = detail.Neighbours(9)
	assert.Nil(t, prev)
	assert.Nil(t, next)

	a, ok := detail.FindAyat(2)
	assert.True(t, ok)
	assert.Equal(t, 2, a.NomorAyat)
}

func TestFindQari(t *testing.T) {
	q, ok := FindQari(DefaultQari)
	assert.True(t, ok)
	assert.Equal(t, "Misyari Rasyid Al-Afasy", q.Name)
	assert.Len(t, Qaris, 5)
}
