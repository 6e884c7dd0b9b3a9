package geocoding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/petitlyon/cartomat/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider implements geocoding through the Google Maps Geocoding API.
// It exists for deployments whose addresses resist the free providers; an
// API key is required.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

// GoogleAPIClient is the subset of the Google Maps client used here,
// extracted for mocking in tests.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleProvider initializes a new GoogleProvider with the given client
// and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Geocode returns the coordinates of the provided address using the Google
// Maps Geocoding API, or ErrNoResult when the API answers with an empty
// result set.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address)

	req := maps.GeocodingRequest{Address: address}
	geocodeResponse, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}

	// ZERO_RESULTS surfaces as an empty slice, not an error.
	if len(geocodeResponse) == 0 {
		return nil, ErrNoResult
	}
	coords := geocodeResponse[0].Geometry.Location

	return &models.Coordinates{Longitude: coords.Lng, Latitude: coords.Lat}, nil
}
