package geocode

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/tenant-mapper/internal/resilience"
)

func testClient(srvURL string) *Client {
	return NewClient(
		WithBaseURL(srvURL),
		WithMinDelay(time.Millisecond),
	)
}

func TestNominatimGeocode_Match(t *testing.T) {
	var gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"lat":"27.9506","lon":"-82.4572","display_name":"Tampa, FL"}]`)
	}))
	defer srv.Close()

	result, err := testClient(srv.URL).Geocode(context.Background(), "1 Main St, Tampa, FL, USA")
	require.NoError(t, err)

	assert.True(t, result.Matched)
	assert.InDelta(t, 27.9506, result.Latitude, 0.0001)
	assert.InDelta(t, -82.4572, result.Longitude, 0.0001)
	assert.Equal(t, "1 Main St, Tampa, FL, USA", gotQuery)
	assert.Equal(t, defaultUserAgent, gotUA)
}

func TestNominatimGeocode_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	result, err := testClient(srv.URL).Geocode(context.Background(), "nowhere at all")
	require.NoError(t, err)
	assert.False(t, result.Matched)
}

func TestNominatimGeocode_RateLimitedStatusIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Geocode(context.Background(), "1 Main St")
	require.Error(t, err)
	assert.True(t, resilience.IsTransient(err))
}

func TestNominatimGeocode_ServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Geocode(context.Background(), "1 Main St")
	require.Error(t, err)
	assert.True(t, resilience.IsTransient(err))
}

func TestNominatimGeocode_ClientErrorIsPermanent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Geocode(context.Background(), "1 Main St")
	require.Error(t, err)
	assert.False(t, resilience.IsTransient(err))
}

func TestNominatimGeocode_MalformedCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"lat":"not-a-number","lon":"0"}]`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Geocode(context.Background(), "1 Main St")
	assert.Error(t, err)
}
