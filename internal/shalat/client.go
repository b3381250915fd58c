package shalat

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mrlokans/mushaf/internal/remote"
)

// DefaultBaseURL is the myquran.com v2 API.
const DefaultBaseURL = "https://api.myquran.com/v2"

// Client fetches cities and schedules from the prayer schedule API.
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

type envelope[T any] struct {
	Status bool `json:"status"`
	Data   T    `json:"data"`
}

// ListCities returns every city the schedule API knows.
func (c *Client) ListCities(ctx context.Context) ([]City, error) {
	var resp envelope[[]City]
	if err := remote.GetJSON(ctx, c.httpClient, c.baseURL+"/sholat/kota/semua", "shalat cities", &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, &remote.FetchError{Resource: "shalat cities", Err: fmt.Errorf("api reported failure")}
	}
	return resp.Data, nil
}

// GetDailySchedule returns the prayer times for one city and day.
func (c *Client) GetDailySchedule(ctx context.Context, cityID string, year, month, day int) (*Schedule, error) {
	if cityID == "" {
		return nil, fmt.Errorf("city id is required")
	}

	url := fmt.Sprintf("%s/sholat/jadwal/%s/%04d/%02d/%02d", c.baseURL, cityID, year, month, day)
	resource := fmt.Sprintf("shalat schedule for %s", cityID)

	var resp envelope[Schedule]
	if err := remote.GetJSON(ctx, c.httpClient, url, resource, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, &remote.FetchError{Resource: resource, Err: fmt.Errorf("api reported failure")}
	}
	return &resp.Data, nil
}
