package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/mushaf/internal/history"
)

type historyResponse struct {
	History []history.Item `json:"history"`
	Total   int            `json:"total"`
}

func TestHistoryController(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "GET", "/api/history/latest", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	for _, n := range []int{2, 5, 2} {
		w = env.do(t, "POST", "/api/history", map[string]any{"surahNumber": n, "surahName": "S"})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = env.do(t, "GET", "/api/history", nil)
	resp := decode[historyResponse](t, w)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, 2, resp.History[0].SurahNumber)
	assert.Equal(t, 5, resp.History[1].SurahNumber)

	w = env.do(t, "GET", "/api/history/latest", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decode[history.Item](t, w).SurahNumber)

	w = env.do(t, "DELETE", "/api/history", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.history.List())
}

func TestHistoryController_Validation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/api/history", map[string]any{"surahNumber": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, "POST", "/api/history", map[string]any{"surahNumber": 1, "ayatNumber": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, "POST", "/api/history", map[string]any{"surahNumber": 1, "ayatNumber": 4})
	require.Equal(t, http.StatusCreated, w.Code)
	item, ok := env.history.Latest()
	require.True(t, ok)
	require.NotNil(t, item.AyatNumber)
	assert.Equal(t, 4, *item.AyatNumber)
}
