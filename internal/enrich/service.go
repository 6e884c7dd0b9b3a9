package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/petitlyon/cartomat/internal/geocache"
	"github.com/petitlyon/cartomat/internal/geocoding"
	"github.com/petitlyon/cartomat/internal/metrics"
	"github.com/petitlyon/cartomat/internal/models"
)

// ServiceConfig wires one enrichment service.
type ServiceConfig struct {
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	Primary     geocoding.Provider // primary provider implementation
	PrimaryID   string             // its stable identifier (cache keys, metrics)
	Secondary   geocoding.Provider
	SecondaryID string
	MinInterval time.Duration // minimum delay between network calls per provider
	Center      models.Coordinates
	CachePath   string
	Progress    func(done, total int) // optional per-record callback
}

// Service runs enrichment batches with the cache lifecycle around them:
// load the cache before the batch, persist it afterwards whether the batch
// succeeded or not. The gateways are rebuilt per batch so that each batch
// owns exactly one cache instance and fresh throttle state.
type Service struct {
	log         *slog.Logger
	metrics     *metrics.Metrics
	primary     geocoding.Provider
	primaryID   string
	secondary   geocoding.Provider
	secondaryID string
	minInterval time.Duration
	center      models.Coordinates
	cachePath   string
	progress    func(done, total int)
}

// NewService creates a new enrichment service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		log:         cfg.Logger,
		metrics:     cfg.Metrics,
		primary:     cfg.Primary,
		primaryID:   cfg.PrimaryID,
		secondary:   cfg.Secondary,
		secondaryID: cfg.SecondaryID,
		minInterval: cfg.MinInterval,
		center:      cfg.Center,
		cachePath:   cfg.CachePath,
		progress:    cfg.Progress,
	}
}

// RunBatch enriches one canonical table. The geocode cache is loaded first
// and persisted again before returning, regardless of the enrichment
// outcome: a provider outage or encoding failure never discards the lookups
// already resolved, so the next attempt only pays for what is still missing.
func (s *Service) RunBatch(ctx context.Context, records []models.Record) ([]models.Record, error) {
	cache := geocache.Load(s.cachePath, s.log)

	primaryGW := geocoding.NewGateway(s.primary, s.primaryID, cache, s.minInterval, s.log, s.metrics)
	secondaryGW := geocoding.NewGateway(s.secondary, s.secondaryID, cache, s.minInterval, s.log, s.metrics)
	enricher := NewEnricher(s.log, primaryGW, secondaryGW, s.center, s.progress)

	s.log.InfoContext(ctx, "Enrichment batch started",
		"records", len(records),
		"primary", s.primaryID,
		"secondary", s.secondaryID,
		"cached_entries", cache.Len())

	enriched, err := enricher.Enrich(ctx, records)

	if saveErr := cache.Save(s.cachePath); saveErr != nil {
		s.log.ErrorContext(ctx, "Failed to persist geocode cache", "path", s.cachePath, "error", saveErr)
		if err == nil {
			err = fmt.Errorf("failed to persist geocode cache: %w", saveErr)
		}
	} else {
		s.log.DebugContext(ctx, "Geocode cache persisted", "path", s.cachePath, "entries", cache.Len())
	}

	if err != nil {
		s.metrics.Batches.WithLabelValues("failure").Inc()
		return nil, err
	}

	s.metrics.Batches.WithLabelValues("success").Inc()
	s.log.InfoContext(ctx, "Enrichment batch finished", "records", len(enriched))
	return enriched, nil
}
