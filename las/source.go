package las

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	binpkg "github.com/robert-malhotra/go-las/internal/binary"
	"github.com/robert-malhotra/go-las/internal/filter"
	"github.com/robert-malhotra/go-las/internal/format"
	"github.com/robert-malhotra/go-las/internal/header"
	"github.com/robert-malhotra/go-las/internal/laszip"
)

// recordSource yields raw records in on-disk layout.
type recordSource interface {
	// readRecords fills raw with the next len(raw)/recordLength records.
	readRecords(raw []byte) error

	// seekRecord positions the source at record index.
	seekRecord(index uint64) error
}

// rawSource reads records straight from the point data area.
type rawSource struct {
	br           *binpkg.Reader
	dataOffset   int64
	recordLength int
}

func newRawSource(br *binpkg.Reader, h *header.Header) *rawSource {
	s := &rawSource{
		dataOffset:   int64(h.OffsetToPointData),
		recordLength: int(h.PointRecordLength),
	}
	s.br = br.At(s.dataOffset)
	return s
}

func (s *rawSource) readRecords(raw []byte) error {
	return s.br.ReadFull(raw)
}

func (s *rawSource) seekRecord(index uint64) error {
	s.br = s.br.At(s.dataOffset + int64(index)*int64(s.recordLength))
	return nil
}

// compressedSource adapts a Decompressor.
type compressedSource struct {
	d Decompressor
}

func (s *compressedSource) readRecords(raw []byte) error {
	return s.d.DecompressMany(raw)
}

func (s *compressedSource) seekRecord(index uint64) error {
	return s.d.Seek(index)
}

// openCompressed validates a compressed stream and builds its decompressor.
func openCompressed(s Stream, h *header.Header, d format.Descriptor, vlrs []header.VLR, o *options) (*compressedSource, *laszip.Parameters, error) {
	if d.IsExtended || d.HasWaveform {
		o.logger.Warn("rejecting compressed stream",
			zap.Uint8("format", d.ID),
			zap.Bool("extended", d.IsExtended),
			zap.Bool("waveform", d.HasWaveform))
		return nil, nil, fmt.Errorf("%w: compressed %s", ErrUnsupportedFeature, d)
	}

	vlr, ok := header.FindLASzipVLR(vlrs)
	if !ok {
		return nil, nil, fmt.Errorf("%w: compressed stream without LASzip VLR", ErrFormat)
	}
	p, err := laszip.Parse(vlr.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if p.RecordLength() != int(h.PointRecordLength) {
		return nil, nil, fmt.Errorf("%w: compressed items describe %d byte records, header declares %d",
			ErrFormat, p.RecordLength(), h.PointRecordLength)
	}
	s.Params = p

	factory := o.decompressor
	if factory == nil {
		if p.Coder == filter.CoderArithmetic {
			o.logger.Warn("rejecting compressed stream",
				zap.String("coder", filter.CoderName(p.Coder)))
			return nil, nil, fmt.Errorf("%w: arithmetic coder needs an external decompressor", ErrUnsupportedFeature)
		}
		factory = laszip.NewBlock
	}

	dec, err := factory(s)
	switch {
	case errors.Is(err, filter.ErrUnsupportedCoder):
		o.logger.Warn("rejecting compressed stream",
			zap.String("coder", filter.CoderName(p.Coder)))
		return nil, nil, fmt.Errorf("%w: %w", ErrUnsupportedFeature, err)
	case errors.Is(err, laszip.ErrInvalidChunkTable):
		return nil, nil, fmt.Errorf("%w: %w", ErrFormat, err)
	case err != nil:
		return nil, nil, fmt.Errorf("creating decompressor: %w", err)
	}
	return &compressedSource{d: dec}, p, nil
}
