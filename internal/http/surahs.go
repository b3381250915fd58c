package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/mushaf/internal/quran"
)

type SurahsController struct {
	content ContentSource
}

func NewSurahsController(content ContentSource) *SurahsController {
	return &SurahsController{content: content}
}

// ListSurahs handles GET /api/surahs?q=
func (sc *SurahsController) ListSurahs(c *gin.Context) {
	surahs, err := sc.content.ListSurahs(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err, "list surahs")
		return
	}

	surahs = quran.SearchSurahs(surahs, c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"surahs": surahs, "total": len(surahs)})
}

// GetSurah handles GET /api/surahs/:number
func (sc *SurahsController) GetSurah(c *gin.Context) {
	detail, ok := sc.fetchDetail(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetTafsir returns the tafsir of a surah, or of one ayat with ?ayat=.
// GET /api/surahs/:number/tafsir
func (sc *SurahsController) GetTafsir(c *gin.Context) {
	nomor, ok := parseIntParam(c, "number")
	if !ok {
		return
	}
	ayat, single, ok := parseOptionalIntQuery(c, "ayat")
	if !ok {
		return
	}

	tafsir, err := sc.content.GetTafsir(c.Request.Context(), nomor)
	if err != nil {
		if errors.Is(err, quran.ErrInvalidSurah) {
			respondBadRequest(c, err.Error())
			return
		}
		respondUpstreamError(c, err, "get tafsir")
		return
	}

	if !single {
		c.JSON(http.StatusOK, tafsir)
		return
	}

	text, found := tafsir.ForAyat(ayat)
	if !found {
		respondNotFound(c, "tafsir for ayat")
		return
	}
	c.JSON(http.StatusOK, gin.H{"surah": nomor, "ayat": ayat, "teks": text})
}

// AudioResponse is the recording of one ayat and the ayat playback moves to
// next when auto-play is on.
type AudioResponse struct {
	Surah    int    `json:"surah"`
	Ayat     int    `json:"ayat"`
	Qari     string `json:"qari"`
	URL      string `json:"url"`
	NextAyat *int   `json:"nextAyat,omitempty"`
	NextURL  string `json:"nextUrl,omitempty"`
}

// GetAyatAudio handles GET /api/surahs/:number/ayat/:ayat/audio?qari=
func (sc *SurahsController) GetAyatAudio(c *gin.Context) {
	qari := c.DefaultQuery("qari", quran.DefaultQari)
	if _, ok := quran.FindQari(qari); !ok {
		respondError(c, http.StatusBadRequest, "unknown_qari", "unknown qari: "+qari)
		return
	}
	ayatNumber, ok := parseIntParam(c, "ayat")
	if !ok {
		return
	}
	detail, ok := sc.fetchDetail(c)
	if !ok {
		return
	}

	ayat, found := detail.FindAyat(ayatNumber)
	if !found {
		respondNotFound(c, "ayat")
		return
	}
	url, err := ayat.AudioURL(qari)
	if err != nil {
		respondNotFound(c, "recording")
		return
	}

	resp := AudioResponse{Surah: detail.Nomor, Ayat: ayatNumber, Qari: qari, URL: url}
	if _, next := detail.Neighbours(ayatNumber); next != nil {
		n := next.NomorAyat
		resp.NextAyat = &n
		resp.NextURL, _ = next.AudioURL(qari)
	}
	c.JSON(http.StatusOK, resp)
}

// ListQaris handles GET /api/qaris
func (sc *SurahsController) ListQaris(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"qaris": quran.Qaris, "default": quran.DefaultQari})
}

func (sc *SurahsController) fetchDetail(c *gin.Context) (*quran.SurahDetail, bool) {
	nomor, ok := parseIntParam(c, "number")
	if !ok {
		return nil, false
	}

	detail, err := sc.content.GetSurahDetail(c.Request.Context(), nomor)
	if err != nil {
		if errors.Is(err, quran.ErrInvalidSurah) {
			respondBadRequest(c, err.Error())
			return nil, false
		}
		respondUpstreamError(c, err, "get surah")
		return nil, false
	}
	return detail, true
}
