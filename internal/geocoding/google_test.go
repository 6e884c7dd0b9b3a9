package geocoding_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/petitlyon/cartomat/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

// mockGoogleClient is a mock implementation of GoogleAPIClient for testing.
type mockGoogleClient struct {
	geocodeFunc func(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

func (m *mockGoogleClient) Geocode(
	ctx context.Context,
	r *maps.GeocodingRequest,
) ([]maps.GeocodingResult, error) {
	return m.geocodeFunc(ctx, r)
}

func TestGoogleProvider_Geocode(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("successful geocoding", func(t *testing.T) {
		mockClient := &mockGoogleClient{
			geocodeFunc: func(_ context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
				assert.Equal(t, "12 rue de la République Lyon", r.Address)
				result := maps.GeocodingResult{}
				result.Geometry.Location = maps.LatLng{Lat: 45.7646, Lng: 4.8348}
				return []maps.GeocodingResult{result}, nil
			},
		}

		provider := geocoding.NewGoogleProvider(mockClient, logger)
		coords, err := provider.Geocode(ctx, "12 rue de la République Lyon")

		require.NoError(t, err)
		require.NotNil(t, coords)
		assert.InEpsilon(t, 45.7646, coords.Latitude, 0.0001)
		assert.InEpsilon(t, 4.8348, coords.Longitude, 0.0001)
	})

	t.Run("empty response maps to ErrNoResult", func(t *testing.T) {
		mockClient := &mockGoogleClient{
			geocodeFunc: func(_ context.Context, _ *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
				return []maps.GeocodingResult{}, nil
			},
		}

		provider := geocoding.NewGoogleProvider(mockClient, logger)
		coords, err := provider.Geocode(ctx, "unknown address")

		require.Error(t, err)
		assert.Nil(t, coords)
		assert.ErrorIs(t, err, geocoding.ErrNoResult)
	})

	t.Run("API error propagates", func(t *testing.T) {
		mockClient := &mockGoogleClient{
			geocodeFunc: func(_ context.Context, _ *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
				return nil, errors.New("OVER_QUERY_LIMIT")
			},
		}

		provider := geocoding.NewGoogleProvider(mockClient, logger)
		_, err := provider.Geocode(ctx, "12 rue de la République Lyon")

		require.Error(t, err)
		assert.NotErrorIs(t, err, geocoding.ErrNoResult)
	})
}

func TestNewProvider(t *testing.T) {
	logger := slog.Default()

	t.Run("nominatim", func(t *testing.T) {
		provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
			Type:   geocoding.ProviderTypeNominatim,
			Logger: logger,
		})

		require.NoError(t, err)
		assert.IsType(t, &geocoding.NominatimProvider{}, provider)
	})

	t.Run("arcgis", func(t *testing.T) {
		provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
			Type:   geocoding.ProviderTypeArcGIS,
			Logger: logger,
		})

		require.NoError(t, err)
		assert.IsType(t, &geocoding.ArcGISProvider{}, provider)
	})

	t.Run("google requires API key", func(t *testing.T) {
		_, err := geocoding.NewProvider(geocoding.ProviderConfig{
			Type:   geocoding.ProviderTypeGoogle,
			Logger: logger,
		})

		require.Error(t, err)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := geocoding.NewProvider(geocoding.ProviderConfig{
			Type:   geocoding.ProviderType("teleporter"),
			Logger: logger,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported provider type")
	})
}
