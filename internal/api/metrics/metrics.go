// Package metrics defines the custom Prometheus metrics of the advertisement
// service. HTTP request metrics come from the echoprometheus middleware; the
// counters here cover domain outcomes it cannot see.
//
// All metrics register with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "classifieds"

// ── Advertisement metrics ─────────────────────────────────────────────────────

// AdvertisementsCreatedTotal counts advertisements written to the store.
// Idempotent replays are not counted.
var AdvertisementsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "advertisements_created_total",
		Help:      "Total number of advertisements created.",
	},
)

var AdvertisementsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "advertisements_deleted_total",
		Help:      "Total number of advertisements deleted through the API.",
	},
)

// IdempotencyTotal counts Idempotency-Key decisions on create.
// Label:
//   - result: "replay" (earlier advertisement returned) or "new"
var IdempotencyTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotency_total",
		Help:      "Total number of creates carrying an Idempotency-Key, by result.",
	},
	[]string{"result"},
)

// SearchResultSize observes how many advertisements a search returned.
var SearchResultSize = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_result_size",
		Help:      "Number of advertisements returned per search request.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
	},
)

// ── User and auth metrics ─────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
// Label:
//   - role: "user" or "admin"
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of users registered, by role.",
	},
	[]string{"role"},
)

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

// IdentityFailuresTotal counts requests rejected by the auth middleware.
// Label:
//   - reason: "missing_header", "malformed_header" or "invalid_token"
var IdentityFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identity_failures_total",
		Help:      "Total number of requests whose bearer identity was rejected, by reason.",
	},
	[]string{"reason"},
)
