// Package metrics exposes Prometheus collectors for point decoding.
//
// A [Collector] is registered on a caller supplied prometheus.Registerer, so
// several readers can share one set of series and tests can use a private
// registry:
//
//	reg := prometheus.NewRegistry()
//	m, err := metrics.NewCollector(reg)
//	r, err := las.Open(path, las.WithMetrics(m))
//
// Series:
//
//   - las_points_decoded_total{path}: points written to caller buffers
//   - las_chunks_decoded_total{path}: chunks decoded
//   - las_chunk_decode_seconds{path}: time to fetch and decode one chunk
//
// The path label is "natural" or "custom".
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Decode path labels.
const (
	PathNatural = "natural"
	PathCustom  = "custom"
)

// Collector records decode activity. A nil *Collector is valid and records
// nothing.
type Collector struct {
	points  *prometheus.CounterVec
	chunks  *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

// NewCollector creates the collectors and registers them on reg. Collectors
// already registered by an earlier call are reused.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		points: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "las_points_decoded_total",
			Help: "Total number of points decoded into caller buffers.",
		}, []string{"path"}),
		chunks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "las_chunks_decoded_total",
			Help: "Total number of record chunks decoded.",
		}, []string{"path"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "las_chunk_decode_seconds",
			Help:    "Time to fetch and decode one chunk of records.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"path"}),
	}

	var err error
	c.points, err = register(reg, c.points)
	if err != nil {
		return nil, err
	}
	c.chunks, err = register(reg, c.chunks)
	if err != nil {
		return nil, err
	}
	c.latency, err = register(reg, c.latency)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("registering collector: %w", err)
	}
	return c, nil
}

// ObserveChunk records one decoded chunk of n points.
func (c *Collector) ObserveChunk(path string, n int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.points.WithLabelValues(path).Add(float64(n))
	c.chunks.WithLabelValues(path).Inc()
	c.latency.WithLabelValues(path).Observe(elapsed.Seconds())
}
