package geolocation

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mrlokans/mushaf/internal/remote"
)

var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrPositionUnavailable = errors.New("location unavailable")
	ErrTimeout             = errors.New("location request timed out")
)

// Locator obtains the current position of the device.
type Locator interface {
	Locate(ctx context.Context) (Coordinate, error)
}

// Error codes of the browser Geolocation API.
const (
	CodePermissionDenied    = 1
	CodePositionUnavailable = 2
	CodeTimeout             = 3
)

// ReportedPosition is a position, or a failure, reported by the client.
type ReportedPosition struct {
	Coordinate *Coordinate
	ErrorCode  int
	Message    string
}

func (p ReportedPosition) Locate(ctx context.Context) (Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return Coordinate{}, fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	switch p.ErrorCode {
	case 0:
	case CodePermissionDenied:
		return Coordinate{}, p.wrap(ErrPermissionDenied)
	case CodeTimeout:
		return Coordinate{}, p.wrap(ErrTimeout)
	default:
		return Coordinate{}, p.wrap(ErrPositionUnavailable)
	}

	if p.Coordinate == nil {
		return Coordinate{}, fmt.Errorf("%w: no position reported", ErrPositionUnavailable)
	}
	if !p.Coordinate.Valid() {
		return Coordinate{}, fmt.Errorf("%w: coordinate out of range", ErrPositionUnavailable)
	}
	return *p.Coordinate, nil
}

func (p ReportedPosition) wrap(err error) error {
	if p.Message == "" {
		return err
	}
	return fmt.Errorf("%w: %s", err, p.Message)
}

// DefaultIPLocatorURL is an ip-api compatible endpoint.
const DefaultIPLocatorURL = "http://ip-api.com/json/?fields=status,message,lat,lon"

// IPLocator estimates the position from the public IP address. The lookup
// sends the address to a third party, so it only runs with consent.
type IPLocator struct {
	httpClient *http.Client
	url        string
	consent    bool
}

func NewIPLocator(url string, timeout time.Duration, consent bool) *IPLocator {
	if url == "" {
		url = DefaultIPLocatorURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &IPLocator{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		consent:    consent,
	}
}

type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (l *IPLocator) Locate(ctx context.Context) (Coordinate, error) {
	if !l.consent {
		return Coordinate{}, ErrPermissionDenied
	}

	var resp ipAPIResponse
	if err := remote.GetJSON(ctx, l.httpClient, l.url, "ip location", &resp); err != nil {
		if isTimeout(err) {
			return Coordinate{}, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return Coordinate{}, fmt.Errorf("%w: %v", ErrPositionUnavailable, err)
	}

	if !strings.EqualFold(resp.Status, "success") {
		return Coordinate{}, fmt.Errorf("%w: lookup failed: %s", ErrPositionUnavailable, resp.Message)
	}

	c := Coordinate{Latitude: resp.Lat, Longitude: resp.Lon}
	if !c.Valid() {
		return Coordinate{}, fmt.Errorf("%w: coordinate out of range", ErrPositionUnavailable)
	}
	return c, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
