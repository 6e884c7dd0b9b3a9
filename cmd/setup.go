package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/petitlyon/cartomat/internal/config"
	"github.com/petitlyon/cartomat/internal/enrich"
	"github.com/petitlyon/cartomat/internal/geocoding"
	"github.com/petitlyon/cartomat/internal/metrics"
	"github.com/petitlyon/cartomat/internal/models"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelWarn,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelError,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

// buildService assembles the enrichment service from the configuration:
// both providers through the factory, the shared metrics, and the cache
// lifecycle settings. The progress callback may be nil.
func buildService(
	cfg *config.Config,
	log *slog.Logger,
	appMetrics *metrics.Metrics,
	progress func(done, total int),
) (*enrich.Service, error) {
	primary, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:   geocoding.ProviderType(cfg.PrimaryProvider),
		APIKey: cfg.GoogleAPIKey,
		Logger: log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create primary provider: %w", err)
	}

	secondary, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:   geocoding.ProviderType(cfg.SecondaryProvider),
		APIKey: cfg.GoogleAPIKey,
		Logger: log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create secondary provider: %w", err)
	}

	return enrich.NewService(enrich.ServiceConfig{
		Logger:      log,
		Metrics:     appMetrics,
		Primary:     primary,
		PrimaryID:   cfg.PrimaryProvider,
		Secondary:   secondary,
		SecondaryID: cfg.SecondaryProvider,
		MinInterval: cfg.MinRequestInterval,
		Center:      models.Coordinates{Latitude: cfg.CenterLat, Longitude: cfg.CenterLng},
		CachePath:   cfg.CachePath,
		Progress:    progress,
	}), nil
}

func newMetrics() (*prometheus.Registry, *metrics.Metrics) {
	reg := prometheus.NewRegistry()
	return reg, metrics.NewMetrics(reg)
}
