package laszip

import (
	"fmt"

	binpkg "github.com/robert-malhotra/go-las/internal/binary"
	"github.com/robert-malhotra/go-las/internal/filter"
)

// WriteChunks block-codes raw records and writes the point data section at
// the writer's position: the chunk table offset, the chunk payloads and the
// chunk table. sizes lists the point count of each chunk; for fixed-size
// tables every entry but the last must equal p.ChunkSize.
func WriteChunks(w *binpkg.Writer, raw []byte, recordLength int, p *Parameters, sizes []uint64) ([]Chunk, error) {
	pipeline, err := filter.NewPipeline(p.Coder, p.Shuffled(), recordLength)
	if err != nil {
		return nil, err
	}

	dataOffset := w.Pos()
	w.Skip(8)

	chunks := make([]Chunk, len(sizes))
	var first uint64
	for i, n := range sizes {
		start := int(first) * recordLength
		end := start + int(n)*recordLength
		if end > len(raw) {
			return nil, fmt.Errorf("chunk %d ends at byte %d past %d", i, end, len(raw))
		}
		payload, err := pipeline.Encode(raw[start:end])
		if err != nil {
			return nil, fmt.Errorf("encoding chunk %d: %w", i, err)
		}
		chunks[i] = Chunk{FirstPoint: first, PointCount: n, Offset: w.Pos(), ByteCount: uint64(len(payload))}
		if err := w.WriteBytes(payload); err != nil {
			return nil, err
		}
		first += n
	}

	tableOffset := w.Pos()
	if err := WriteChunkTable(w, p, chunks); err != nil {
		return nil, err
	}
	if err := w.At(dataOffset).WriteUint64(uint64(tableOffset)); err != nil {
		return nil, err
	}
	return chunks, nil
}

// ChunkSizes splits count points into fixed chunks of size points. A size
// of 0 yields a single chunk.
func ChunkSizes(count, size uint64) []uint64 {
	if size == 0 {
		size = count
	}
	var sizes []uint64
	for count > 0 {
		n := min(size, count)
		sizes = append(sizes, n)
		count -= n
	}
	return sizes
}
