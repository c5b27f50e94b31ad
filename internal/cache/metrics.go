package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks reads served from a fresh snapshot
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cache_hits_total",
			Help: "Total number of catalog reads served from cache",
		},
		[]string{"resource"}, // "products", "categories", "config"
	)

	// CacheMisses tracks reads that had to go to the store
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cache_misses_total",
			Help: "Total number of catalog reads that missed the cache",
		},
		[]string{"resource"},
	)

	// CacheRefreshes tracks successful reloads
	CacheRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cache_refreshes_total",
			Help: "Total number of successful cache refreshes",
		},
		[]string{"resource"},
	)

	// CacheErrors tracks failed reloads
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cache_errors_total",
			Help: "Total number of failed cache refreshes",
		},
		[]string{"resource"},
	)
)
