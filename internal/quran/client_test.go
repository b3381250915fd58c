package quran

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/mushaf/internal/remote"
)

const surahListBody = `{"code":200,"message":"Data retrieved successfully","data":[
{"nomor":1,"nama":"الفاتحة","namaLatin":"Al-Fatihah","jumlahAyat":7,"tempatTurun":"Mekah","arti":"Pembukaan","deskripsi":"","audioFull":{"05":"https://cdn.example/full/001.mp3"}},
{"nomor":2,"nama":"البقرة","namaLatin":"Al-Baqarah","jumlahAyat":286,"tempatTurun":"Madinah","arti":"Sapi Betina","deskripsi":"","audioFull":{}}]}`

const surahDetailBody = `{"code":200,"message":"ok","data":{"nomor":1,"nama":"الفاتحة","namaLatin":"Al-Fatihah","jumlahAyat":7,"tempatTurun":"Mekah","arti":"Pembukaan","deskripsi":"","audioFull":{},
"ayat":[
{"nomorAyat":1,"teksArab":"بِسْمِ اللّٰهِ","teksLatin":"bismillāhir-raḥmānir-raḥīm","teksIndonesia":"Dengan nama Allah","audio":{"01":"https://cdn.example/01/001001.mp3","05":"https://cdn.example/05/001001.mp3"}},
{"nomorAyat":2,"teksArab":"اَلْحَمْدُ","teksLatin":"al-ḥamdu","teksIndonesia":"Segala puji","audio":{"05":"https://cdn.example/05/001002.mp3"}}],
"suratSelanjutnya":{"nomor":2,"nama":"البقرة","namaLatin":"Al-Baqarah","jumlahAyat":286},
"suratSebelumnya":false}}`

const tafsirBody = `{"code":200,"message":"ok","data":{"nomor":1,"namaLatin":"Al-Fatihah","jumlahAyat":7,"tafsir":[{"ayat":1,"teks":"Tafsir ayat pertama"},{"ayat":2,"teks":"Tafsir ayat kedua"}]}}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/surat":
			_, _ = w.Write([]byte(surahListBody))
		case "/surat/1":
			_, _ = w.Write([]byte(surahDetailBody))
		case "/tafsir/1":
			_, _ = w.Write([]byte(tafsirBody))
		case "/surat/2":
			_, _ = w.Write([]byte(`{"code":200,"data":`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_ListSurahs(t *testing.T) {
	client := NewClient(newTestServer(t).URL, time.Second)

	surahs, err := client.ListSurahs(context.Background())

	require.NoError(t, err)
	require.Len(t, surahs, 2)
	assert.Equal(t, "Al-Fatihah", surahs[0].NamaLatin)
	assert.Equal(t, 286, surahs[1].JumlahAyat)
	assert.Equal(t, "https://cdn.example/full/001.mp3", surahs[0].AudioFull["05"])
}

func TestClient_GetSurahDetail(t *testing.T) {
	client := NewClient(newTestServer(t).URL+"/", time.Second)

	detail, err := client.GetSurahDetail(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "Al-Fatihah", detail.NamaLatin)
	require.Len(t, detail.Ayat, 2)
	assert.Equal(t, "Segala puji", detail.Ayat[1].TeksIndonesia)
	require.NotNil(t, detail.SuratSelanjutnya)
	assert.Equal(t, 2, detail.SuratSelanjutnya.Nomor)
	assert.Nil(t, detail.SuratSebelumnya, "false decodes to no neighbour")
}

func TestClient_GetTafsir(t *testing.T) {
	client := NewClient(newTestServer(t).URL, time.Second)

	tafsir, err := client.GetTafsir(context.Background(), 1)

	require.NoError(t, err)
	text, ok := tafsir.ForAyat(2)
	assert.True(t, ok)
	assert.Equal(t, "Tafsir ayat kedua", text)

	_, ok = tafsir.ForAyat(7)
	assert.False(t, ok)
}

func TestClient_Errors(t *testing.T) {
	client := NewClient(newTestServer(t).URL, time.Second)

	t.Run("non-2xx is a fetch error", func(t *testing.T) {
		_, err := client.GetTafsir(context.Background(), 3)

		require.Error(t, err)
		var fe *remote.FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, http.StatusNotFound, fe.StatusCode)
	})

	t.Run("malformed body is a fetch error", func(t *testing.T) {
		_, err := client.GetSurahDetail(context.Background(), 2)

		assert.True(t, remote.IsFetchError(err))
	})

	t.Run("out of range surah is rejected before any request", func(t *testing.T) {
		_, err := client.GetSurahDetail(context.Background(), 115)

		assert.ErrorIs(t, err, ErrInvalidSurah)
		assert.False(t, remote.IsFetchError(err))
	})

	t.Run("unreachable server", func(t *testing.T) {
		dead := httptest.NewServer(http.NotFoundHandler())
		dead.Close()

		_, err := NewClient(dead.URL, time.Second).ListSurahs(context.Background())

		assert.True(t, remote.IsFetchError(err))
	})
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("", 0)

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, 10*time.Second, client.httpClient.Timeout)
}
