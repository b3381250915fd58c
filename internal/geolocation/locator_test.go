package geolocation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportedPosition_Locate(t *testing.T) {
	ctx := context.Background()

	pos, err := ReportedPosition{Coordinate: &jakarta}.Locate(ctx)
	require.NoError(t, err)
	assert.Equal(t, jakarta, pos)

	tests := []struct {
		name     string
		reported ReportedPosition
		want     error
	}{
		{"denied", ReportedPosition{ErrorCode: CodePermissionDenied, Message: "User denied Geolocation"}, ErrPermissionDenied},
		{"unavailable", ReportedPosition{ErrorCode: CodePositionUnavailable}, ErrPositionUnavailable},
		{"timeout", ReportedPosition{ErrorCode: CodeTimeout}, ErrTimeout},
		{"unknown code", ReportedPosition{ErrorCode: 7}, ErrPositionUnavailable},
		{"no coordinate", ReportedPosition{}, ErrPositionUnavailable},
		{"bad coordinate", ReportedPosition{Coordinate: &Coordinate{Latitude: 200}}, ErrPositionUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.reported.Locate(ctx)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIPLocator(t *testing.T) {
	t.Run("without consent", func(t *testing.T) {
		_, err := NewIPLocator("http://127.0.0.1:1", time.Second, false).Locate(context.Background())
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"success","lat":-6.2,"lon":106.8}`))
		}))
		defer server.Close()

		pos, err := NewIPLocator(server.URL, time.Second, true).Locate(context.Background())

		require.NoError(t, err)
		assert.Equal(t, jakarta, pos)
	})

	t.Run("lookup failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"fail","message":"private range"}`))
		}))
		defer server.Close()

		_, err := NewIPLocator(server.URL, time.Second, true).Locate(context.Background())

		assert.ErrorIs(t, err, ErrPositionUnavailable)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := NewIPLocator(server.URL, time.Second, true).Locate(context.Background())

		assert.ErrorIs(t, err, ErrPositionUnavailable)
	})

	t.Run("slow lookup times out", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		_, err := NewIPLocator(server.URL, 50*time.Millisecond, true).Locate(context.Background())

		assert.ErrorIs(t, err, ErrTimeout)
	})
}
