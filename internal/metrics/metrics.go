// Package metrics holds the Prometheus collectors of the matching service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_match_requests_total",
			Help: "Total number of match computations by scoring strategy",
		},
		[]string{"strategy"},
	)

	MatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campus_match_duration_seconds",
			Help:    "Duration of a full match computation in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"strategy"},
	)

	MatchCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "campus_match_candidates",
			Help:    "Number of candidates scored per match computation",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
	)

	// ScorerFallbacks counts candidates scored by the heuristic because the remote call failed.
	ScorerFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_scorer_fallbacks_total",
			Help: "Total number of candidates that fell back to heuristic scoring",
		},
		[]string{"reason"},
	)

	RemoteScoreParseDefaults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campus_remote_score_parse_defaults_total",
			Help: "Total number of remote answers without an extractable score",
		},
	)
)
