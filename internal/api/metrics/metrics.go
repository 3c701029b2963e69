// Package metrics defines and registers all custom Prometheus metrics for the
// job-board API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobboard"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthRejectionsTotal counts requests rejected by the auth middleware chain.
// Label:
//   - reason: "no_token", "invalid_token", "unknown_subject", "deactivated", "forbidden"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by authentication or role gates.",
	},
	[]string{"reason"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - outcome: "success", "failure", "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ── Upload metrics ────────────────────────────────────────────────────────────

// UploadsTotal counts upload attempts.
// Labels:
//   - purpose: "avatar" or "resume"
//   - outcome: "success", "rejected", "failed"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of file upload attempts, by purpose and outcome.",
	},
	[]string{"purpose", "outcome"},
)

// UploadSizeBytes measures accepted upload sizes.
var UploadSizeBytes = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_size_bytes",
		Help:      "Size distribution of accepted uploads.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8), // 1KiB … 16MiB
	},
	[]string{"purpose"},
)

// ── Sweeper metrics ───────────────────────────────────────────────────────────

var SweepDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweep_deleted_total",
		Help:      "Total number of orphaned files deleted by the sweeper.",
	},
)

var SweepRelocatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweep_relocated_total",
		Help:      "Total number of stray files relocated into purpose directories.",
	},
)

var SweepErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweep_errors_total",
		Help:      "Total number of per-file errors encountered while sweeping.",
	},
)

// SweepDuration measures how long a full sweep takes.
var SweepDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sweep_duration_seconds",
		Help:      "Duration of a complete sweep run.",
		Buckets:   prometheus.DefBuckets,
	},
)
