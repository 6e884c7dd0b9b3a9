package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/petitlyon/cartomat/internal/models"
)

// ArcGISBaseURL is the endpoint of the ArcGIS World Geocoding Service.
const ArcGISBaseURL = "https://geocode.arcgis.com/arcgis/rest/services/World/GeocodeServer/findAddressCandidates"

// ArcGISProvider implements geocoding using the ArcGIS World Geocoding
// Service. Without an API key the service allows non-stored geocoding only,
// which is exactly this pipeline's use case: results end up in our own cache
// keyed by address fingerprint.
type ArcGISProvider struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the ArcGIS geocoding API
	log     *slog.Logger // Logger for logging operations
}

// arcgisResponse represents the JSON response of findAddressCandidates
// (simplified to the fields this provider reads).
type arcgisResponse struct {
	Candidates []struct {
		Location struct {
			X float64 `json:"x"` // longitude
			Y float64 `json:"y"` // latitude
		} `json:"location"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewArcGISProvider creates a new ArcGIS geocoding provider.
func NewArcGISProvider(log *slog.Logger) *ArcGISProvider {
	const timeout = 10
	return &ArcGISProvider{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: ArcGISBaseURL,
		log:     log,
	}
}

// NewArcGISProviderWithClient allows injecting a custom HTTP client.
func NewArcGISProviderWithClient(client HTTPClient, log *slog.Logger) *ArcGISProvider {
	return &ArcGISProvider{
		client:  client,
		baseURL: ArcGISBaseURL,
		log:     log,
	}
}

// Geocode converts an address into geographic coordinates using the ArcGIS
// World Geocoding Service. It returns ErrNoResult when the service reports
// no candidates.
func (ap *ArcGISProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	ap.log.DebugContext(ctx, "Geocoding using ArcGIS", "address", address)

	reqURL, err := url.Parse(ap.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("f", "json")
	query.Set("singleLine", address)
	query.Set("maxLocations", "1")
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := ap.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		ap.log.ErrorContext(ctx, "ArcGIS API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("arcgis API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var result arcgisResponse
	if err = json.Unmarshal(body, &result); err != nil {
		ap.log.ErrorContext(ctx, "Failed to parse ArcGIS response", "error", err, "body", string(body))
		return nil, fmt.Errorf("failed to decode arcgis response: %w", err)
	}

	// ArcGIS reports errors in the payload with HTTP 200.
	if result.Error != nil {
		return nil, fmt.Errorf("arcgis API returned error %d: %s", result.Error.Code, result.Error.Message)
	}

	if len(result.Candidates) == 0 {
		return nil, ErrNoResult
	}

	loc := result.Candidates[0].Location
	ap.log.DebugContext(ctx, "ArcGIS found result", "lat", loc.Y, "lon", loc.X)

	return &models.Coordinates{
		Latitude:  loc.Y,
		Longitude: loc.X,
	}, nil
}
