// Package metrics defines and registers all custom Prometheus metrics for
// the lending platform API. It is the single source of truth for metric
// names, labels, and help strings; request-level HTTP metrics come from the
// echoprometheus middleware wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lending"

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheHitsTotal counts read-through cache hits.
// Label:
//   - group: the cache group served ("users", "roles", "products")
var CacheHitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_hits_total",
		Help:      "Total number of cache hits, by cache group.",
	},
	[]string{"group"},
)

// CacheMissesTotal counts read-through cache misses, including reads that
// fell back to the store because the cache itself failed.
var CacheMissesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_misses_total",
		Help:      "Total number of cache misses, by cache group.",
	},
	[]string{"group"},
)

// CacheEvictionsTotal counts whole-group evictions performed after writes.
var CacheEvictionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_evictions_total",
		Help:      "Total number of whole-group cache evictions, by cache group.",
	},
	[]string{"group"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success" or "failure"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)
