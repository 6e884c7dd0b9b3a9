package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CacheHits      *prometheus.CounterVec
	CacheMisses    *prometheus.CounterVec
	ProviderErrors *prometheus.CounterVec
	RequestSeconds *prometheus.HistogramVec
	Batches        *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		CacheHits: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "cartomat_geocode_cache_hits_total",
			Help: "Total number of geocode lookups answered from the cache.",
		}, []string{"provider"}),
		CacheMisses: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "cartomat_geocode_cache_misses_total",
			Help: "Total number of geocode lookups that required a provider call.",
		}, []string{"provider"}),
		ProviderErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "cartomat_geocode_provider_errors_total",
			Help: "Total number of errors received from the geocoding provider APIs.",
		}, []string{"provider"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cartomat_geocode_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider APIs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		Batches: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "cartomat_enrichment_batches_total",
			Help: "Total number of enrichment batches by final status.",
		}, []string{"status"}),
	}
}
