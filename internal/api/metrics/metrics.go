// Package metrics defines and registers all custom Prometheus metrics for the
// Asha payout API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "payout"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - operation: "register" or "login"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by operation and result.",
	},
	[]string{"operation", "result"},
)

// LoginThrottledTotal counts login requests rejected by the rate limiter.
var LoginThrottledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_throttled_total",
		Help:      "Total number of login attempts rejected by the rate limiter.",
	},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentTransitionsTotal counts lifecycle transitions of payment requests.
// Labels:
//   - from: previous status ("none", "pending", "approved")
//   - to: new status
var PaymentTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_transitions_total",
		Help:      "Total number of payment request lifecycle transitions.",
	},
	[]string{"from", "to"},
)

// StatusPollDuration measures how long a single status poll takes end-to-end.
var StatusPollDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "status_poll_duration_seconds",
		Help:      "Duration of payment status lookups.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// NotificationsQueueDepth tracks the current number of lifecycle events
// waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notifications_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
