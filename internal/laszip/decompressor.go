package laszip

import (
	"fmt"
	"io"
	"sort"

	binpkg "github.com/robert-malhotra/go-las/internal/binary"
	"github.com/robert-malhotra/go-las/internal/filter"
)

// Decompressor produces raw point records in on-disk layout from a
// compressed stream.
type Decompressor interface {
	// DecompressMany fills out with the next len(out)/recordLength records.
	DecompressMany(out []byte) error

	// Seek positions the decompressor so the next record produced is the
	// one at index.
	Seek(index uint64) error
}

// Stream describes a compressed point stream.
type Stream struct {
	R            io.ReaderAt
	DataOffset   int64
	RecordLength int
	PointCount   uint64
	Params       *Parameters
}

// Factory builds a decompressor for a stream.
type Factory func(s Stream) (Decompressor, error)

// BlockDecompressor decodes streams whose chunks are coded with a block
// codec from the filter package.
type BlockDecompressor struct {
	s        Stream
	chunks   []Chunk
	pipeline *filter.Pipeline

	chunk   int    // index of the decoded chunk, -1 if none
	decoded []byte // raw records of the current chunk
	pos     uint64 // next point index
}

// NewBlockDecompressor reads the chunk table of s and prepares the codec
// selected by its coder id.
func NewBlockDecompressor(s Stream) (*BlockDecompressor, error) {
	pipeline, err := filter.NewPipeline(s.Params.Coder, s.Params.Shuffled(), s.RecordLength)
	if err != nil {
		return nil, err
	}
	chunks, err := ReadChunkTable(s.R, s.DataOffset, s.Params, s.PointCount)
	if err != nil {
		return nil, err
	}
	return &BlockDecompressor{
		s:        s,
		chunks:   chunks,
		pipeline: pipeline,
		chunk:    -1,
	}, nil
}

// NewBlock is a Factory for BlockDecompressor.
func NewBlock(s Stream) (Decompressor, error) {
	return NewBlockDecompressor(s)
}

// Chunks returns the chunk table.
func (d *BlockDecompressor) Chunks() []Chunk {
	return d.chunks
}

func (d *BlockDecompressor) DecompressMany(out []byte) error {
	rl := d.s.RecordLength
	if len(out)%rl != 0 {
		return fmt.Errorf("output of %d bytes is not a multiple of record length %d", len(out), rl)
	}
	want := uint64(len(out) / rl)
	if d.pos+want > d.s.PointCount {
		return fmt.Errorf("requested %d records at %d, stream holds %d: %w",
			want, d.pos, d.s.PointCount, io.ErrUnexpectedEOF)
	}

	for len(out) > 0 {
		ci := d.chunkFor(d.pos)
		if err := d.load(ci); err != nil {
			return err
		}
		c := d.chunks[ci]
		start := int(d.pos-c.FirstPoint) * rl
		n := copy(out, d.decoded[start:])
		out = out[n:]
		d.pos += uint64(n / rl)
	}
	return nil
}

func (d *BlockDecompressor) Seek(index uint64) error {
	if index > d.s.PointCount {
		return fmt.Errorf("seek to %d beyond %d points", index, d.s.PointCount)
	}
	d.pos = index
	return nil
}

// chunkFor returns the index of the chunk holding point i.
func (d *BlockDecompressor) chunkFor(i uint64) int {
	return sort.Search(len(d.chunks), func(k int) bool {
		c := d.chunks[k]
		return c.FirstPoint+c.PointCount > i
	})
}

func (d *BlockDecompressor) load(ci int) error {
	if ci == d.chunk {
		return nil
	}
	c := d.chunks[ci]

	payload := make([]byte, c.ByteCount)
	if err := binpkg.NewReader(d.s.R).At(c.Offset).ReadFull(payload); err != nil {
		return fmt.Errorf("reading chunk %d: %w", ci, err)
	}
	raw, err := d.pipeline.Decode(payload)
	if err != nil {
		return fmt.Errorf("decoding chunk %d: %w", ci, err)
	}
	if want := int(c.PointCount) * d.s.RecordLength; len(raw) != want {
		return fmt.Errorf("%w: chunk %d decoded to %d bytes, want %d", ErrInvalidChunkTable, ci, len(raw), want)
	}

	d.chunk = ci
	d.decoded = raw
	return nil
}
