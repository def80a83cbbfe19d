package las

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-las/internal/dtype"
	"github.com/robert-malhotra/go-las/internal/laszip"
	"github.com/robert-malhotra/go-las/internal/metrics"
	"github.com/robert-malhotra/go-las/points"
)

// DefaultChunkSize is the number of records decoded per inner pass.
const DefaultChunkSize = 50000

// Decompressor produces raw on-disk records from a compressed point stream.
type Decompressor = laszip.Decompressor

// Stream describes the compressed point stream handed to a DecompressorFactory.
type Stream = laszip.Stream

// DecompressorFactory builds a Decompressor for one stream.
type DecompressorFactory = laszip.Factory

// Metrics records decode activity. See NewMetrics.
type Metrics = metrics.Collector

// NewMetrics registers the reader collectors on reg. Collectors already
// registered on reg are reused, so readers may share one registry.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	return metrics.NewCollector(reg)
}

// Converters is a conversion registry that accepts overrides.
type Converters = dtype.Registry

// NewConverters returns a registry holding the built-in conversions.
// Use Register to replace individual pairs.
func NewConverters() *Converters {
	return dtype.New()
}

// DefaultConverters returns the registry readers use unless WithConverters
// is given.
func DefaultConverters() points.ConverterRegistry {
	return dtype.Default
}

// Option configures a Reader.
type Option func(*options)

type options struct {
	chunkSize    int
	logger       *zap.Logger
	converters   points.ConverterRegistry
	decompressor DecompressorFactory
	metrics      *Metrics
}

func defaultOptions() *options {
	return &options{
		chunkSize:  DefaultChunkSize,
		logger:     zap.NewNop(),
		converters: DefaultConverters(),
	}
}

// WithChunkSize bounds the number of records decoded per inner pass.
// Values below 1 are ignored.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// WithLogger sets the logger. Readers log nothing by default.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.logger = log
		}
	}
}

// WithConverters sets the registry used to convert attributes whose
// datatype differs from the on-disk one.
func WithConverters(reg points.ConverterRegistry) Option {
	return func(o *options) {
		if reg != nil {
			o.converters = reg
		}
	}
}

// WithDecompressor replaces the built-in block decompressor for compressed
// streams. It is required for streams using the arithmetic coder.
func WithDecompressor(f DecompressorFactory) Option {
	return func(o *options) {
		o.decompressor = f
	}
}

// WithMetrics records decoded points and chunk latency on m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}
