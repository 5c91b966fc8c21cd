// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ce

import "github.com/prometheus/client_golang/prometheus"

// fallbackReason is the label of the fallback counter.
type fallbackReason string

const (
	reasonMissingHistogram fallbackReason = "missing_histogram"
	reasonUnknownInterval  fallbackReason = "unknown_interval"
	reasonOtherKind        fallbackReason = "other_kind"
)

// Metrics counts how nodes were estimated. A nil *Metrics records nothing.
type Metrics struct {
	// HistogramNodes counts sargable nodes estimated from histograms.
	HistogramNodes prometheus.Counter

	// Fallbacks counts nodes handed to the fallback estimator, by reason.
	Fallbacks *prometheus.CounterVec

	// ZeroShortCircuits counts sargable nodes estimated as empty because
	// their input is empty.
	ZeroShortCircuits prometheus.Counter
}

// NewMetrics returns unregistered estimator metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		HistogramNodes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "docce_ce_histogram_nodes_total",
			Help: "Number of sargable nodes estimated from histograms",
		}),
		Fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docce_ce_fallback_total",
				Help: "Number of nodes estimated by the fallback estimator",
			},
			[]string{"reason"},
		),
		ZeroShortCircuits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "docce_ce_zero_short_circuit_total",
			Help: "Number of sargable nodes with an empty input",
		}),
	}
}

// Register registers the metrics with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.HistogramNodes, m.Fallbacks, m.ZeroShortCircuits} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) histogramNode() {
	if m != nil {
		m.HistogramNodes.Inc()
	}
}

func (m *Metrics) fallback(reason fallbackReason) {
	if m != nil {
		m.Fallbacks.WithLabelValues(string(reason)).Inc()
	}
}

func (m *Metrics) zeroShortCircuit() {
	if m != nil {
		m.ZeroShortCircuits.Inc()
	}
}
