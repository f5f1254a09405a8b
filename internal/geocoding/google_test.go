package geocoding_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/hiwaldo89/admon-software-client/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

// mockGoogleAPIClient is a mock implementation of GoogleAPIClient for testing.
type mockGoogleAPIClient struct {
	geocodeFunc func(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

func (m *mockGoogleAPIClient) Geocode(
	ctx context.Context,
	r *maps.GeocodingRequest,
) ([]maps.GeocodingResult, error) {
	return m.geocodeFunc(ctx, r)
}

func TestGoogleProvider_Geocode(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("api returns error", func(t *testing.T) {
		mockClient := &mockGoogleAPIClient{
			geocodeFunc: func(_ context.Context, _ *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
				return nil, assert.AnError
			},
		}

		provider := geocoding.NewGoogleProvider(mockClient, logger)
		_, err := provider.Geocode(ctx, "some invalid place")

		require.Error(t, err)
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("api returns empty response", func(t *testing.T) {
		mockClient := &mockGoogleAPIClient{
			geocodeFunc: func(_ context.Context, _ *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
				return nil, nil
			},
		}

		provider := geocoding.NewGoogleProvider(mockClient, logger)
		coords, err := provider.Geocode(ctx, "some invalid place")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrEmptyResponse)
	})

	t.Run("successful geocoding biased to Mexico", func(t *testing.T) {
		mockClient := &mockGoogleAPIClient{
			geocodeFunc: func(_ context.Context, req *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
				assert.Equal(t, "Polanco, Miguel Hidalgo, Ciudad de México", req.Address)
				assert.Equal(t, "mx", req.Region)
				assert.Equal(t, "MX", req.Components[maps.ComponentCountry])

				return []maps.GeocodingResult{
					{Geometry: maps.AddressGeometry{Location: maps.LatLng{Lat: 19.4326, Lng: -99.1902}}},
				}, nil
			},
		}

		provider := geocoding.NewGoogleProvider(mockClient, logger)
		coords, err := provider.Geocode(ctx, "Polanco, Miguel Hidalgo, Ciudad de México")

		require.NoError(t, err)
		require.NotNil(t, coords)
		require.InEpsilon(t, 19.4326, coords.Latitude, 0.01)
		require.InEpsilon(t, -99.1902, coords.Longitude, 0.01)
	})
}
