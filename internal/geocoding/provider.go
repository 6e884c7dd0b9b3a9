package geocoding

import (
	"context"
	"errors"
	"net/http"

	"github.com/petitlyon/cartomat/internal/models"
)

// Provider is an interface that defines a method for geocoding an address.
// The Geocode method takes a context and an address string as input, and
// returns the corresponding coordinates and an error if any occurs.
// A provider that looked up the address but found nothing returns
// ErrNoResult; any other error means the lookup itself failed.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

// ErrNoResult is returned when a provider answered but found no match for
// the address. It is the only provider error that is a valid outcome rather
// than a failure.
var ErrNoResult = errors.New("provider found no result for address")

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
