// Package metrics defines the Prometheus metrics exposed on /metrics.
// All metrics register with the default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pontobip"

// HTTPRequestsTotal counts handled requests by method, route template and status code.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures handler latency by method and route template.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP request handling.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered users.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts by result.",
	},
	[]string{"result"},
)

// PointsRegisteredTotal counts clock-ins.
var PointsRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "points_registered_total",
		Help:      "Total number of clock-ins recorded.",
	},
)

// CoinsCreditedTotal sums the coins credited by clock-ins.
var CoinsCreditedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "coins_credited_total",
		Help:      "Total coins credited to balances.",
	},
)

// RankingResetsTotal counts balance resets.
// Label:
//   - trigger: "manual" or "scheduled"
var RankingResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ranking_resets_total",
		Help:      "Total number of ranking resets by trigger.",
	},
	[]string{"trigger"},
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"

	TriggerManual    = "manual"
	TriggerScheduled = "scheduled"
)
