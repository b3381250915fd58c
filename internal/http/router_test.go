package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/mushaf/internal/bookmarks"
	"github.com/mrlokans/mushaf/internal/geolocation"
	"github.com/mrlokans/mushaf/internal/history"
	"github.com/mrlokans/mushaf/internal/kvstore"
	"github.com/mrlokans/mushaf/internal/notify"
	"github.com/mrlokans/mushaf/internal/quran"
	"github.com/mrlokans/mushaf/internal/remote"
	"github.com/mrlokans/mushaf/internal/settings"
	"github.com/mrlokans/mushaf/internal/shalat"
)

type fakeContent struct {
	surahs []quran.Surah
	detail map[int]*quran.SurahDetail
	tafsir map[int]*quran.Tafsir
	err    error
}

func (f *fakeContent) ListSurahs(ctx context.Context) ([]quran.Surah, error) {
	return f.surahs, f.err
}

func (f *fakeContent) GetSurahDetail(ctx context.Context, nomor int) (*quran.SurahDetail, error) {
	if nomor > quran.SurahCount {
		return nil, quran.ErrInvalidSurah
	}
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.detail[nomor]
	if !ok {
		return nil, &remote.FetchError{Resource: "surah", StatusCode: http.StatusNotFound}
	}
	return d, nil
}

func (f *fakeContent) GetTafsir(ctx context.Context, nomor int) (*quran.Tafsir, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.tafsir[nomor]
	if !ok {
		return nil, &remote.FetchError{Resource: "tafsir", StatusCode: http.StatusNotFound}
	}
	return t, nil
}

type fakeCitySource struct {
	cities []shalat.City
	err    error
}

func (f *fakeCitySource) ListCities(ctx context.Context) ([]shalat.City, error) {
	return f.cities, f.err
}

type fakeSchedules struct {
	requested []string
	err       error
}

func (f *fakeSchedules) GetDailySchedule(ctx context.Context, cityID string, year, month, day int) (*shalat.Schedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	date := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	f.requested = append(f.requested, cityID+"@"+date)
	return &shalat.Schedule{
		ID:     cityID,
		Lokasi: "KOTA " + cityID,
		Jadwal: shalat.Jadwal{Subuh: "04:13", Maghrib: "17:42", Date: date},
	}, nil
}

type testEnv struct {
	router    *gin.Engine
	bookmarks *bookmarks.Registry
	history   *history.Log
	settings  *settings.Store
	hint      *settings.ClientHint
	applier   *settings.ThemeApplier
	content   *fakeContent
	cities    *fakeCitySource
	schedules *fakeSchedules
	selection *shalat.Selection
	queue     *fakeTaskQueue
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := kvstore.New(kvstore.NewMemoryBackend())
	env := &testEnv{
		bookmarks: bookmarks.NewRegistry(store),
		history:   history.NewLog(store),
		settings:  settings.NewStore(store),
		hint:      settings.NewClientHint(settings.ModeLight),
		content:   sampleContent(),
		cities: &fakeCitySource{cities: []shalat.City{
			{ID: "1301", Lokasi: "KOTA JAKARTA"},
			{ID: "1609", Lokasi: "KOTA SURABAYA"},
			{ID: "0101", Lokasi: "KAB. ACEH BARAT"},
		}},
		schedules: &fakeSchedules{},
		selection: shalat.NewSelection(store),
		queue:     newFakeTaskQueue(),
	}
	env.applier = settings.NewThemeApplier(settings.NewDocument(), env.hint)
	env.settings.OnThemeChange(func(th settings.Theme) { env.applier.Apply(th) })
	env.settings.Start()

	directory := shalat.NewDirectory(env.cities)
	resolver := geolocation.NewResolver(geolocation.DefaultReferenceTable(), directory, env.selection, notify.Discard{})

	env.router = NewRouter(RouterConfig{
		Bookmarks:       env.bookmarks,
		History:         env.history,
		Settings:        env.settings,
		ColorSchemeHint: env.hint,
		ThemeApplier:    env.applier,
		Content:         env.content,
		Schedules:       env.schedules,
		CityDirectory:   directory,
		CitySelection:   env.selection,
		CityDetector:    resolver,
		NotificationHub: notify.NewHub(nil),
		TaskQueue:       env.queue,
		HealthChecks:    map[string]Pinger{"storage": store},
		AllowedOrigins:  []string{"*"},
		Version:         "test",
	})
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(b)
		}
		reader = bytes.NewReader([]byte(raw))
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestRouter_Ping(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "GET", "/ping", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestRouter_Health(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[HealthResponse](t, w)
	assert.Equal(t, "ok", resp.Checks["storage"])
}

func TestRouter_CORS(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "GET", "/ping", nil, "Origin", "http://localhost:5173")

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsConfig(t *testing.T) {
	assert.True(t, corsConfig(nil).AllowAllOrigins)
	assert.True(t, corsConfig([]string{"https://a.example", "*"}).AllowAllOrigins)

	cfg := corsConfig([]string{"https://a.example"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"https://a.example"}, cfg.AllowOrigins)
}

func TestRouter_OptionalGroupsAreSkipped(t *testing.T) {
	router := NewRouter(RouterConfig{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/bookmarks", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
