package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/petitlyon/cartomat/internal/geocache"
	"github.com/petitlyon/cartomat/internal/metrics"
	"github.com/petitlyon/cartomat/internal/models"
	"golang.org/x/time/rate"
)

// ErrProviderUnavailable wraps every transport or provider failure reported
// by a gateway. Such failures are never cached: a transient outage must be
// retried on the next batch run instead of being recorded as "not found".
var ErrProviderUnavailable = errors.New("geocoding provider unavailable")

// Gateway wraps one geocoding provider with the shared cache and a
// minimum-interval throttle. The throttle state is shared across the whole
// batch: two lookups for different records made back to back still keep the
// configured distance between network calls. Cache hits, including cached
// not-found outcomes, bypass both the throttle and the network.
type Gateway struct {
	provider   Provider         // the wrapped provider
	providerID string           // stable identifier, part of every cache key
	cache      *geocache.Cache  // shared batch cache
	limiter    *rate.Limiter    // enforces the minimum inter-call interval
	log        *slog.Logger     // logger for gateway operations
	metrics    *metrics.Metrics // cache/provider counters
}

// NewGateway creates a gateway for one provider. minInterval is the minimum
// delay between two network calls made through this gateway instance.
func NewGateway(
	provider Provider,
	providerID string,
	cache *geocache.Cache,
	minInterval time.Duration,
	log *slog.Logger,
	appMetrics *metrics.Metrics,
) *Gateway {
	return &Gateway{
		provider:   provider,
		providerID: providerID,
		cache:      cache,
		limiter:    rate.NewLimiter(rate.Every(minInterval), 1),
		log:        log,
		metrics:    appMetrics,
	}
}

// ProviderID returns the stable identifier of the wrapped provider.
func (g *Gateway) ProviderID() string {
	return g.providerID
}

// Resolve returns the coordinates of "address city" through this gateway's
// provider. A nil result with a nil error means the provider found nothing;
// that outcome is cached exactly like a successful one. Errors wrap
// ErrProviderUnavailable and leave the cache untouched.
func (g *Gateway) Resolve(ctx context.Context, address, city string) (*models.Coordinates, error) {
	fullAddress := address + " " + city
	key := geocache.Fingerprint(fullAddress, g.providerID)

	if coords, ok := g.cache.Lookup(key); ok {
		g.metrics.CacheHits.WithLabelValues(g.providerID).Inc()
		g.log.DebugContext(ctx, "Geocode cache hit", "provider", g.providerID, "address", fullAddress)
		return coords, nil
	}
	g.metrics.CacheMisses.WithLabelValues(g.providerID).Inc()

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: interrupted while throttling: %w", ErrProviderUnavailable, g.providerID, err)
	}

	startTime := time.Now()
	coords, err := g.provider.Geocode(ctx, fullAddress)
	g.metrics.RequestSeconds.WithLabelValues(g.providerID).Observe(time.Since(startTime).Seconds())

	if errors.Is(err, ErrNoResult) {
		g.log.InfoContext(ctx, "Provider found no result, caching the miss",
			"provider", g.providerID, "address", fullAddress)
		g.cache.Store(key, nil)
		return nil, nil
	}
	if err != nil {
		g.metrics.ProviderErrors.WithLabelValues(g.providerID).Inc()
		return nil, fmt.Errorf("%w: %s: %w", ErrProviderUnavailable, g.providerID, err)
	}

	g.cache.Store(key, coords)
	return coords, nil
}
