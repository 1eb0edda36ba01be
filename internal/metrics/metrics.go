// Package metrics registers the service's Prometheus collectors on the
// default registry, exposed by the api binary at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmissionsTotal counts accepted attendance submissions.
	SubmissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signsheet_submissions_total",
		Help: "Accepted attendance record submissions.",
	})

	// SubmissionsRejected counts submissions failing validation.
	SubmissionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signsheet_submissions_rejected_total",
		Help: "Submissions rejected before reaching the store.",
	})

	// DeletionsTotal counts confirmed deletions by scope (record or all).
	DeletionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "signsheet_deletions_total",
		Help: "Confirmed destructive operations.",
	}, []string{"scope"})

	// ConfirmationsArmed counts first-step delete requests.
	ConfirmationsArmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signsheet_confirmations_armed_total",
		Help: "Delete requests that armed the confirmation gate.",
	})

	// SignatureBytes tracks decoded signature payload sizes.
	SignatureBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "signsheet_signature_bytes",
		Help:    "Decoded signature PNG size in bytes.",
		Buckets: prometheus.ExponentialBuckets(256, 4, 8),
	})
)
