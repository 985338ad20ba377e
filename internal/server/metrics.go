// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gogpu/constellation"
)

// Metrics holds the Prometheus collectors of one served graph. Each
// instance owns its registry, so several servers can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	PointerEvents *prometheus.CounterVec
	FilterChanges prometheus.Counter
}

// NewMetrics creates the collectors under namespace. The frame, particle
// and node gauges read g on every scrape.
func NewMetrics(namespace string, g *constellation.Graph) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		PointerEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pointer_events_total",
				Help:      "Pointer events forwarded to the graph",
			},
			[]string{"type"},
		),
		FilterChanges: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "filter_changes_total",
				Help:      "Category filter changes",
			},
		),
	}

	frames := prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames rendered by the graph",
		},
		func() float64 { return float64(g.Stats().Frames) },
	)
	particles := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "particles",
			Help:      "Live link particles",
		},
		func() float64 { return float64(g.Stats().Particles) },
	)
	visible := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "visible_nodes",
			Help:      "Nodes shown by the current filter",
		},
		func() float64 { return float64(g.Stats().VisibleNodes) },
	)
	source := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "data_source",
			Help:      "Set to 1 for the data source the graph uses",
		},
		[]string{"source"},
	)
	source.WithLabelValues(g.Load().Source.String()).Set(1)

	registry.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.PointerEvents,
		m.FilterChanges,
		frames,
		particles,
		visible,
		source,
	)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
