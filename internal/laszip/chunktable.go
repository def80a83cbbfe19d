package laszip

import (
	"errors"
	"fmt"
	"io"

	binpkg "github.com/robert-malhotra/go-las/internal/binary"
)

// ErrInvalidChunkTable is returned for missing or inconsistent chunk tables.
var ErrInvalidChunkTable = errors.New("invalid chunk table")

// Chunk locates one compressed chunk.
type Chunk struct {
	// FirstPoint is the index of the chunk's first point in the stream.
	FirstPoint uint64
	PointCount uint64

	// Offset is the absolute file offset of the chunk payload.
	Offset    int64
	ByteCount uint64
}

// ReadChunkTable reads the chunk table of the stream whose point data starts
// at dataOffset. The first eight bytes of point data hold the absolute offset
// of the table; chunk payloads follow them back to back.
func ReadChunkTable(r io.ReaderAt, dataOffset int64, p *Parameters, pointCount uint64) ([]Chunk, error) {
	br := binpkg.NewReader(r).At(dataOffset)
	tableOffset, err := br.ReadInt64()
	if err != nil {
		return nil, fmt.Errorf("reading chunk table offset: %w", err)
	}
	if tableOffset < dataOffset+8 {
		return nil, fmt.Errorf("%w: table offset %d not after point data %d", ErrInvalidChunkTable, tableOffset, dataOffset)
	}

	br = br.At(tableOffset)
	version, err := br.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("reading chunk table version: %w", err)
	}
	if version != 0 {
		return nil, fmt.Errorf("%w: version %d", ErrInvalidChunkTable, version)
	}
	count, err := br.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("reading chunk count: %w", err)
	}

	// count comes from the file; grow as entries are read.
	chunks := make([]Chunk, 0, min(count, 1024))
	offset := dataOffset + 8
	var first uint64
	for i := range int(count) {
		chunks = append(chunks, Chunk{})
		c := &chunks[i]
		if p.VariableChunks() {
			n, err := br.ReadUint32()
			if err != nil {
				return nil, fmt.Errorf("reading chunk %d point count: %w", i, err)
			}
			c.PointCount = uint64(n)
		} else {
			if first >= pointCount {
				return nil, fmt.Errorf("%w: %d chunks for %d points", ErrInvalidChunkTable, count, pointCount)
			}
			c.PointCount = min(uint64(p.ChunkSize), pointCount-first)
		}
		if c.ByteCount, err = br.ReadUint64(); err != nil {
			return nil, fmt.Errorf("reading chunk %d byte count: %w", i, err)
		}
		c.FirstPoint = first
		c.Offset = offset

		if c.PointCount > pointCount-first {
			return nil, fmt.Errorf("%w: chunks hold more than %d points", ErrInvalidChunkTable, pointCount)
		}
		if c.ByteCount > uint64(tableOffset-offset) {
			return nil, fmt.Errorf("%w: chunk %d overlaps the table", ErrInvalidChunkTable, i)
		}
		first += c.PointCount
		offset += int64(c.ByteCount)
	}
	if first != pointCount {
		return nil, fmt.Errorf("%w: chunks hold %d of %d points", ErrInvalidChunkTable, first, pointCount)
	}
	return chunks, nil
}

// WriteChunkTable writes a chunk table at the writer's position.
func WriteChunkTable(w *binpkg.Writer, p *Parameters, chunks []Chunk) error {
	if err := w.WriteUint32(0); err != nil {
		return err
	}
	if err := w.WriteUint32(uint32(len(chunks))); err != nil {
		return err
	}
	for _, c := range chunks {
		if p.VariableChunks() {
			if err := w.WriteUint32(uint32(c.PointCount)); err != nil {
				return err
			}
		}
		if err := w.WriteUint64(c.ByteCount); err != nil {
			return err
		}
	}
	return nil
}
