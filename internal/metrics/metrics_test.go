package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveChunk(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.ObserveChunk(PathNatural, 100, time.Millisecond)
	c.ObserveChunk(PathNatural, 50, time.Millisecond)
	c.ObserveChunk(PathCustom, 7, time.Millisecond)

	assert.Equal(t, 150.0, testutil.ToFloat64(c.points.WithLabelValues(PathNatural)))
	assert.Equal(t, 7.0, testutil.ToFloat64(c.points.WithLabelValues(PathCustom)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.chunks.WithLabelValues(PathNatural)))
	assert.Equal(t, 2, testutil.CollectAndCount(c.latency))
}

func TestNewCollectorReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewCollector(reg)
	require.NoError(t, err)
	b, err := NewCollector(reg)
	require.NoError(t, err)

	a.ObserveChunk(PathCustom, 3, time.Microsecond)
	b.ObserveChunk(PathCustom, 4, time.Microsecond)
	assert.Equal(t, 7.0, testutil.ToFloat64(b.points.WithLabelValues(PathCustom)))
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() { c.ObserveChunk(PathNatural, 1, time.Second) })
}
