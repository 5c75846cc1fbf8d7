// Package metrics defines and registers the custom Prometheus metrics for
// the crowdfund API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crowdfund"

// PledgesTotal counts ledger outcomes.
// Labels:
//   - status: "success" or "rejected"
//   - reason: reject reason code, "none" for successful pledges
var PledgesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pledges_total",
		Help:      "Total number of pledge attempts recorded, by outcome.",
	},
	[]string{"status", "reason"},
)

// PledgeAmountTotal accumulates the money committed by successful pledges,
// in whole currency units.
var PledgeAmountTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pledge_amount_total",
		Help:      "Sum of amounts across successful pledges.",
	},
)

// PledgeReplaysTotal counts create calls answered from the idempotency
// replay cache without touching the ledger.
var PledgeReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pledge_replays_total",
		Help:      "Total number of pledge creations replayed via Idempotency-Key.",
	},
)

// PledgeProcessingDuration measures one ledger pass end-to-end, including
// store writes.
// Label:
//   - status: resulting pledge status, or "error" on storage failure
var PledgeProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pledge_processing_duration_seconds",
		Help:      "Duration of a create_pledge call from entry to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"status"},
)
