package locality_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/flightlinehq/courser/internal/locality"
	"github.com/flightlinehq/courser/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func testLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Inf, 1)
}

func TestNominatimProvider_Locality(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	coords := models.Coordinate{Longitude: 24.0316, Latitude: 49.8419}

	t.Run("successful reverse geocoding", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "GET", req.Method)
				assert.Contains(t, req.URL.String(), "nominatim.openstreetmap.org/reverse")
				assert.Equal(t, "49.8419", req.URL.Query().Get("lat"))
				assert.Equal(t, "24.0316", req.URL.Query().Get("lon"))
				assert.Equal(t, "json", req.URL.Query().Get("format"))
				assert.Equal(
					t,
					"Courser/1.0 (https://github.com/flightlinehq/courser)",
					req.Header.Get("User-Agent"),
				)

				responseBody := `{"display_name":"Lviv, Lviv Oblast, Ukraine"}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := locality.NewNominatimProviderWithClient(mockClient, testLimiter(), logger)
		name, err := provider.Locality(ctx, coords)

		require.NoError(t, err)
		assert.Equal(t, "Lviv, Lviv Oblast, Ukraine", name)
	})

	t.Run("unable to geocode", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `{"error":"Unable to geocode"}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := locality.NewNominatimProviderWithClient(mockClient, testLimiter(), logger)
		name, err := provider.Locality(ctx, coords)

		require.Error(t, err)
		assert.Empty(t, name)
		assert.ErrorIs(t, err, locality.ErrNominatimEmptyResponse)
	})

	t.Run("HTTP error status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `{"error":"Rate limit exceeded"}`
				return &http.Response{
					StatusCode: http.StatusTooManyRequests,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := locality.NewNominatimProviderWithClient(mockClient, testLimiter(), logger)
		name, err := provider.Locality(ctx, coords)

		require.Error(t, err)
		assert.Empty(t, name)
		assert.Contains(t, err.Error(), "nominatim API returned status 429")
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString("invalid json")),
				}, nil
			},
		}

		provider := locality.NewNominatimProviderWithClient(mockClient, testLimiter(), logger)
		name, err := provider.Locality(ctx, coords)

		require.Error(t, err)
		assert.Empty(t, name)
		assert.Contains(t, err.Error(), "failed to decode nominatim response")
	})

	t.Run("transport error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		provider := locality.NewNominatimProviderWithClient(mockClient, testLimiter(), logger)
		name, err := provider.Locality(ctx, coords)

		require.Error(t, err)
		assert.Empty(t, name)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("canceled context interrupts the limiter", func(t *testing.T) {
		cctx, cancel := context.WithCancel(context.Background())
		cancel()

		provider := locality.NewNominatimProviderWithClient(&mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("request must not be sent")
				return nil, nil
			},
		}, rate.NewLimiter(rate.Limit(1), 1), logger)

		_, err := provider.Locality(cctx, coords)

		require.Error(t, err)
	})
}
