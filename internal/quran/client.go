// Package quran is the client for the equran.id content API and the helpers
// that work on its surah, ayat and tafsir records.
package quran

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mrlokans/mushaf/internal/remote"
)

// DefaultBaseURL is the equran.id v2 API.
const DefaultBaseURL = "https://equran.id/api/v2"

// Client fetches surahs and tafsir from the content API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// apiResponse is the envelope every content API response is wrapped in.
type apiResponse[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// ListSurahs returns all 114 surahs.
func (c *Client) ListSurahs(ctx context.Context) ([]Surah, error) {
	var resp apiResponse[[]Surah]
	if err := remote.GetJSON(ctx, c.httpClient, c.baseURL+"/surat", "surahs", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetSurahDetail returns a surah with all its ayat.
func (c *Client) GetSurahDetail(ctx context.Context, nomor int) (*SurahDetail, error) {
	if err := validateNomor(nomor); err != nil {
		return nil, err
	}

	var resp apiResponse[SurahDetail]
	url := fmt.Sprintf("%s/surat/%d", c.baseURL, nomor)
	if err := remote.GetJSON(ctx, c.httpClient, url, fmt.Sprintf("surah %d", nomor), &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// GetTafsir returns the tafsir of every ayat of a surah.
func (c *Client) GetTafsir(ctx context.Context, nomor int) (*Tafsir, error) {
	if err := validateNomor(nomor); err != nil {
		return nil, err
	}

	var resp apiResponse[Tafsir]
	url := fmt.Sprintf("%s/tafsir/%d", c.baseURL, nomor)
	if err := remote.GetJSON(ctx, c.httpClient, url, fmt.Sprintf("tafsir for surah %d", nomor), &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
