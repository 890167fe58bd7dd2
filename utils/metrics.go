package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MetricListMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "asset_lists",
			Name:      "mutations_total",
			Help:      "Number of committed list mutations, by operation",
		},
		[]string{"operation"},
	)

	MetricSuggestionTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "asset_lists",
			Name:      "suggestion_transitions_total",
			Help:      "Number of suggestions entering a status",
		},
		[]string{"status"},
	)

	MetricPositionRebalances = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "asset_lists",
			Name:      "position_rebalances_total",
			Help:      "Number of sibling partitions whose position keys were fully reassigned",
		},
		[]string{"scope"},
	)
)
