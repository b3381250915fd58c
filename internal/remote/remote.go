// Package remote holds the HTTP plumbing shared by the content and prayer
// schedule API clients.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const userAgent = "Mushaf/1.0 (https://github.com/mrlokans/mushaf)"

// FetchError is a failed request to a remote API. Callers may retry.
type FetchError struct {
	Resource   string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch %s: HTTP %d", e.Resource, e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err is, or wraps, a FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// GetJSON issues a GET request and decodes a 2xx JSON body into out.
// Transport failures, non-2xx statuses and undecodable bodies are returned as
// *FetchError naming resource.
func GetJSON(ctx context.Context, client *http.Client, url, resource string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return &FetchError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{Resource: resource, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Resource: resource, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
