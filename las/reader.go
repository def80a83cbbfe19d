package las

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"go.uber.org/zap"

	binpkg "github.com/robert-malhotra/go-las/internal/binary"
	"github.com/robert-malhotra/go-las/internal/codec"
	"github.com/robert-malhotra/go-las/internal/format"
	"github.com/robert-malhotra/go-las/internal/header"
	"github.com/robert-malhotra/go-las/internal/laszip"
	"github.com/robert-malhotra/go-las/internal/metrics"
	"github.com/robert-malhotra/go-las/points"
)

// Header is the LAS public header block.
type Header = header.Header

// VLR is a variable length record.
type VLR = header.VLR

// Parameters is the LASzip compression parameter block.
type Parameters = laszip.Parameters

// Metadata describes an open point stream.
type Metadata struct {
	Header *Header
	VLRs   []VLR

	// Compression is nil for uncompressed files.
	Compression *Parameters
}

// Reader decodes the point records of one LAS or LAZ stream. A Reader is
// not safe for concurrent use.
type Reader struct {
	closer  io.Closer
	header  *Header
	vlrs    []VLR
	params  *Parameters
	decoder *codec.Decoder
	source  recordSource
	opts    *options

	index  uint64
	closed bool
}

// Open opens a LAS or LAZ file for reading.
func Open(path string, opts ...Option) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	r, err := newReader(f, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// NewReader reads a LAS or LAZ stream from rs. Close does not close rs.
func NewReader(rs io.ReadSeeker, opts ...Option) (*Reader, error) {
	return newReader(binpkg.AsReaderAt(rs), opts)
}

func newReader(ra io.ReaderAt, opts []Option) (*Reader, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	h, err := header.Read(ra)
	if err != nil {
		return nil, classify("reading header", err)
	}
	desc, err := format.New(h.PointFormatID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	vlrs, err := header.ReadVLRs(ra, h)
	if err != nil {
		return nil, classify("reading VLRs", err)
	}

	dec, err := codec.NewDecoder(desc, int(h.PointRecordLength), codec.Transform{Scale: h.Scale, Offset: h.Offset})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	r := &Reader{
		header:  h,
		vlrs:    vlrs,
		decoder: dec,
		opts:    o,
	}

	if h.Compressed {
		s := Stream{
			R:            ra,
			DataOffset:   int64(h.OffsetToPointData),
			RecordLength: int(h.PointRecordLength),
			PointCount:   h.PointCount,
		}
		src, p, err := openCompressed(s, h, desc, vlrs, o)
		if err != nil {
			return nil, err
		}
		r.source = src
		r.params = p
	} else {
		r.source = newRawSource(binpkg.NewReader(ra), h)
	}

	o.logger.Debug("opened point stream",
		zap.String("version", h.Version()),
		zap.Uint8("format", h.PointFormatID),
		zap.Uint16("record_length", h.PointRecordLength),
		zap.Uint64("points", h.PointCount),
		zap.Bool("compressed", h.Compressed))
	return r, nil
}

// classify marks header parse failures as format errors and passes I/O
// failures through.
func classify(op string, err error) error {
	if errors.Is(err, header.ErrNotLAS) ||
		errors.Is(err, header.ErrUnsupportedVersion) ||
		errors.Is(err, header.ErrInvalidHeader) {
		return fmt.Errorf("%s: %w: %w", op, ErrFormat, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Close releases the file opened by Open. It is safe to call more than once.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// PointCount returns the number of points in the stream.
func (r *Reader) PointCount() uint64 {
	return r.header.PointCount
}

// PointIndex returns the index of the next point to be read.
func (r *Reader) PointIndex() uint64 {
	return r.index
}

// RemainingPoints returns the number of points after the cursor.
func (r *Reader) RemainingPoints() uint64 {
	return r.header.PointCount - r.index
}

// NaturalLayout returns the layout that decodes every field of the stream's
// point format with its on-disk datatype, except positions, which decode to
// world coordinates as Vec3F64.
func (r *Reader) NaturalLayout() *points.Layout {
	return r.decoder.NaturalLayout()
}

// Metadata returns the header, VLRs and compression parameters.
func (r *Reader) Metadata() Metadata {
	return Metadata{
		Header:      r.header,
		VLRs:        r.vlrs,
		Compression: r.params,
	}
}

// IsCompressed reports whether the stream is LAZ compressed.
func (r *Reader) IsCompressed() bool {
	return r.header.Compressed
}

// Read decodes up to count points into a new buffer with the natural layout.
// The buffer holds fewer than count points when the stream ends first.
func (r *Reader) Read(count uint64) (*points.Interleaved, error) {
	if r.closed {
		return nil, ErrClosed
	}
	buf := points.NewInterleaved(r.NaturalLayout(), int(min(count, r.RemainingPoints())))
	_, err := r.ReadInto(buf, count)
	return buf, err
}

// ReadInto decodes up to count points and appends them to buf, returning
// the number appended.
//
// A buffer whose layout equals NaturalLayout takes the direct path. Any other
// layout is matched by attribute name: attributes the point format lacks are
// zero, and differing datatypes go through the converter registry. Records
// are decoded one chunk at a time; on error the points of earlier chunks
// stay in buf and the cursor stands after them.
func (r *Reader) ReadInto(buf points.Buffer, count uint64) (uint64, error) {
	if r.closed {
		return 0, ErrClosed
	}
	n := min(count, r.RemainingPoints())
	if n == 0 {
		return 0, nil
	}

	layout := buf.Layout()
	path := metrics.PathNatural
	var plan *codec.Plan
	if !layout.Equal(r.decoder.NaturalLayout()) {
		var err error
		if plan, err = r.decoder.Resolve(layout, r.opts.converters); err != nil {
			return 0, err
		}
		path = metrics.PathCustom
	}

	chunk := min(n, uint64(r.opts.chunkSize))
	rl := r.decoder.RecordLength()
	raw := make([]byte, int(chunk)*rl)
	out := make([]byte, int(chunk)*layout.Size())

	var done uint64
	for done < n {
		k := int(min(chunk, n-done))
		start := time.Now()

		if err := r.source.readRecords(raw[:k*rl]); err != nil {
			r.resync()
			return done, fmt.Errorf("reading points %d to %d: %w", r.index, r.index+uint64(k), err)
		}
		if plan == nil {
			r.decoder.DecodeNatural(raw, k, out)
		} else {
			r.decoder.DecodePlan(plan, raw, k, out)
		}
		buf.Append(out, k)

		r.index += uint64(k)
		done += uint64(k)

		elapsed := time.Since(start)
		r.opts.metrics.ObserveChunk(path, k, elapsed)
		r.opts.logger.Debug("decoded chunk",
			zap.String("path", path),
			zap.Int("points", k),
			zap.Uint64("index", r.index),
			zap.Duration("elapsed", elapsed))
	}
	return done, nil
}

// resync puts the source back at the cursor after a failed read.
func (r *Reader) resync() {
	if err := r.source.seekRecord(r.index); err != nil {
		r.opts.logger.Warn("repositioning after failed read",
			zap.Uint64("index", r.index),
			zap.Error(err))
	}
}

// Seek sets the cursor relative to the start (io.SeekStart), the cursor
// (io.SeekCurrent) or the end (io.SeekEnd) of the stream, in points. The
// result is clamped to [0, PointCount]. A target before the first point
// fails with ErrNegativeSeek and leaves the cursor where it was.
func (r *Reader) Seek(offset int64, whence int) (uint64, error) {
	if r.closed {
		return 0, ErrClosed
	}

	var base uint64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = r.index
	case io.SeekEnd:
		base = r.header.PointCount
	default:
		return r.index, fmt.Errorf("invalid whence %d", whence)
	}

	// Saturate rather than wrap; the result is clamped below anyway.
	target := int64(min(base, math.MaxInt64))
	if offset > 0 && target > math.MaxInt64-offset {
		target = math.MaxInt64
	} else {
		target += offset
	}
	if target < 0 {
		return r.index, fmt.Errorf("%w: %d", ErrNegativeSeek, target)
	}
	index := min(uint64(target), r.header.PointCount)
	if index == r.index {
		return index, nil
	}

	if err := r.source.seekRecord(index); err != nil {
		return r.index, fmt.Errorf("seeking to point %d: %w", index, err)
	}
	r.index = index
	return index, nil
}
