// Package enrich implements the enrichment orchestrator: for every record of
// a canonical table it obtains a location from each of the two configured
// provider gateways, computes the inter-provider disagreement and the
// distance to the dataset's reference center, derives the uncertainty flags,
// and transcodes the free-text fields for display.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/petitlyon/cartomat/internal/geocoding"
	"github.com/petitlyon/cartomat/internal/models"
)

var (
	// ErrProvidersUnavailable aborts a batch when either provider fails for
	// any record. Lookups already cached stay valid for the next attempt.
	ErrProvidersUnavailable = errors.New("geocoding providers unavailable")
	// ErrEncoding aborts a batch when a free-text field cannot be transcoded
	// for display. No partial table is returned.
	ErrEncoding = errors.New("failed to transcode record text for display")
)

// Disagreement thresholds, in kilometers.
const (
	uncertain50Km  = 0.05
	uncertain100Km = 0.1
	uncertain500Km = 0.5
)

// Enricher resolves every record through a primary and a secondary gateway
// and derives the distance-based columns.
type Enricher struct {
	log       *slog.Logger
	primary   *geocoding.Gateway
	secondary *geocoding.Gateway
	center    models.Coordinates
	// progress, when set, is called after each enriched record.
	progress func(done, total int)
}

// NewEnricher creates an enricher over the two gateways. center is the
// reference point the center-distance columns are computed against.
func NewEnricher(
	log *slog.Logger,
	primary, secondary *geocoding.Gateway,
	center models.Coordinates,
	progress func(done, total int),
) *Enricher {
	return &Enricher{
		log:       log,
		primary:   primary,
		secondary: secondary,
		center:    center,
		progress:  progress,
	}
}

// Enrich processes records sequentially: each one is resolved through the
// primary then the secondary gateway, both sharing the batch cache under
// provider-specific fingerprints. Any gateway error aborts the whole batch;
// everything resolved up to that point is already in the cache.
func (e *Enricher) Enrich(ctx context.Context, records []models.Record) ([]models.Record, error) {
	enriched := make([]models.Record, len(records))

	for i, rec := range records {
		location, err := e.primary.Resolve(ctx, rec.Adresse, rec.Ville)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrProvidersUnavailable, err)
		}
		locationAlt, err := e.secondary.Resolve(ctx, rec.Adresse, rec.Ville)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrProvidersUnavailable, err)
		}

		rec.Location = location
		rec.LocationAlt = locationAlt

		if location != nil && locationAlt != nil {
			distance := location.DistanceKm(*locationAlt)
			rec.DistanceBetweenKm = &distance
			rec.IsUncertain50 = distance > uncertain50Km
			rec.IsUncertain100 = distance > uncertain100Km
			rec.IsUncertain500 = distance > uncertain500Km
		}
		if location != nil {
			distance := location.DistanceKm(e.center)
			rec.DistanceToCenterPrimaryKm = &distance
		}
		if locationAlt != nil {
			distance := locationAlt.DistanceKm(e.center)
			rec.DistanceToCenterSecondaryKm = &distance
		}

		if rec.NomDisplay, err = transcodeDisplay(rec.Nom); err != nil {
			return nil, err
		}
		if rec.PrenomDisplay, err = transcodeDisplay(rec.Prenom); err != nil {
			return nil, err
		}
		if rec.AdresseDisplay, err = transcodeDisplay(rec.Adresse); err != nil {
			return nil, err
		}
		if rec.MiscDisplay, err = transcodeDisplay(rec.Misc); err != nil {
			return nil, err
		}

		enriched[i] = rec
		if e.progress != nil {
			e.progress(i+1, len(records))
		}
	}

	return enriched, nil
}

// Classify reduces a record's distance columns to the binary confidence
// contract surfaced to the renderer: uncertain when the providers disagree
// by more than 50 m or when either result lies outside radiusKm of the
// center, confident otherwise.
func Classify(rec models.Record, radiusKm float64) models.Classification {
	if rec.IsUncertain50 {
		return models.ClassUncertain
	}
	if rec.DistanceToCenterPrimaryKm != nil && *rec.DistanceToCenterPrimaryKm > radiusKm {
		return models.ClassUncertain
	}
	if rec.DistanceToCenterSecondaryKm != nil && *rec.DistanceToCenterSecondaryKm > radiusKm {
		return models.ClassUncertain
	}
	return models.ClassConfident
}
