package laszip

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	binpkg "github.com/robert-malhotra/go-las/internal/binary"
	"github.com/robert-malhotra/go-las/internal/filter"
)

const recordLength = 28

func params(coder uint16, chunkSize uint32, options uint32) *Parameters {
	return &Parameters{
		Compressor:   CompressorPointWiseChunked,
		Coder:        coder,
		VersionMajor: 3,
		VersionMinor: 4,
		Revision:     3,
		Options:      options,
		ChunkSize:    chunkSize,

		NumberOfSpecialEVLRs: -1,
		OffsetToSpecialEVLRs: -1,
		Items:                Items(1, recordLength),
	}
}

// rawRecords returns n records where record i is filled with byte i.
func rawRecords(n int) []byte {
	out := make([]byte, n*recordLength)
	for i := range out {
		out[i] = byte(i / recordLength)
	}
	return out
}

// stream encodes raw records after a 16 byte prefix and returns the stream.
func stream(t *testing.T, p *Parameters, n int, sizes []uint64) Stream {
	t.Helper()
	var buf binpkg.Buffer
	w := binpkg.NewWriter(&buf).At(16)
	_, err := WriteChunks(w, rawRecords(n), recordLength, p, sizes)
	require.NoError(t, err)
	return Stream{
		R:            bytes.NewReader(buf.Bytes()),
		DataOffset:   16,
		RecordLength: recordLength,
		PointCount:   uint64(n),
		Params:       p,
	}
}

func TestParametersRoundTrip(t *testing.T) {
	want := params(filter.CoderZstd, 50000, OptionShuffle)
	got, err := Parse(want.Encode())
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parameters mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, recordLength, got.RecordLength())
	assert.True(t, got.Shuffled())
	assert.False(t, got.VariableChunks())
}

func TestParseErrors(t *testing.T) {
	valid := params(filter.CoderDeflate, 100, 0).Encode()

	none := params(filter.CoderDeflate, 100, 0)
	none.Compressor = CompressorNone

	tests := []struct {
		name string
		data []byte
	}{
		{"short", valid[:20]},
		{"truncated items", valid[:len(valid)-2]},
		{"compressor none", none.Encode()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, ErrInvalidParameters)
		})
	}
}

func TestItems(t *testing.T) {
	tests := []struct {
		format uint8
		length int
		want   []Item
	}{
		{0, 20, []Item{{ItemPoint10, 20, 2}}},
		{1, 28, []Item{{ItemPoint10, 20, 2}, {ItemGPSTime11, 8, 2}}},
		{2, 26, []Item{{ItemPoint10, 20, 2}, {ItemRGB12, 6, 2}}},
		{3, 38, []Item{{ItemPoint10, 20, 2}, {ItemGPSTime11, 8, 2}, {ItemRGB12, 6, 2}, {ItemByte, 4, 2}}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Items(tt.format, tt.length), "format %d", tt.format)
	}
}

func TestChunkTable(t *testing.T) {
	t.Run("fixed", func(t *testing.T) {
		s := stream(t, params(filter.CoderDeflate, 4, 0), 10, ChunkSizes(10, 4))
		chunks, err := ReadChunkTable(s.R, s.DataOffset, s.Params, s.PointCount)
		require.NoError(t, err)
		require.Len(t, chunks, 3)
		assert.Equal(t, []uint64{0, 4, 8}, []uint64{chunks[0].FirstPoint, chunks[1].FirstPoint, chunks[2].FirstPoint})
		assert.Equal(t, uint64(2), chunks[2].PointCount)
		assert.Equal(t, int64(24), chunks[0].Offset)
		assert.Equal(t, chunks[0].Offset+int64(chunks[0].ByteCount), chunks[1].Offset)
	})

	t.Run("variable", func(t *testing.T) {
		s := stream(t, params(filter.CoderLZ4, VariableChunkSize, 0), 10, []uint64{1, 6, 3})
		chunks, err := ReadChunkTable(s.R, s.DataOffset, s.Params, s.PointCount)
		require.NoError(t, err)
		require.Len(t, chunks, 3)
		assert.Equal(t, uint64(6), chunks[1].PointCount)
		assert.Equal(t, uint64(7), chunks[2].FirstPoint)
	})

	t.Run("point count mismatch", func(t *testing.T) {
		s := stream(t, params(filter.CoderDeflate, 4, 0), 10, ChunkSizes(10, 4))
		_, err := ReadChunkTable(s.R, s.DataOffset, s.Params, 8)
		assert.ErrorIs(t, err, ErrInvalidChunkTable)
	})

	t.Run("bad table offset", func(t *testing.T) {
		data := make([]byte, 64)
		_, err := ReadChunkTable(bytes.NewReader(data), 16, params(filter.CoderDeflate, 4, 0), 1)
		assert.ErrorIs(t, err, ErrInvalidChunkTable)
	})
}

// patchTable rewrites the table entry field at fieldOffset of chunk 0.
func patchTable(t *testing.T, s Stream, fieldOffset int64, put func([]byte)) Stream {
	t.Helper()
	r := s.R.(*bytes.Reader)
	data := make([]byte, r.Size())
	_, err := r.ReadAt(data, 0)
	require.NoError(t, err)
	table := int64(binary.LittleEndian.Uint64(data[s.DataOffset:]))
	put(data[table+8+fieldOffset:])
	s.R = bytes.NewReader(data)
	return s
}

func TestChunkTableRejectsOversizedEntries(t *testing.T) {
	tests := []struct {
		name  string
		chunk uint32
		field int64
		put   func([]byte)
	}{
		{"byte count wraps int64", 4, 0, func(b []byte) { binary.LittleEndian.PutUint64(b, 1<<63|5) }},
		{"byte count past table", 4, 0, func(b []byte) { binary.LittleEndian.PutUint64(b, 1<<40) }},
		{"variable byte count wraps int64", VariableChunkSize, 4, func(b []byte) { binary.LittleEndian.PutUint64(b, 1<<63|5) }},
		{"variable point count", VariableChunkSize, 0, func(b []byte) { binary.LittleEndian.PutUint32(b, 1<<32-1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sizes := ChunkSizes(10, 4)
			s := patchTable(t, stream(t, params(filter.CoderZstd, tt.chunk, 0), 10, sizes), tt.field, tt.put)

			_, err := ReadChunkTable(s.R, s.DataOffset, s.Params, s.PointCount)
			assert.ErrorIs(t, err, ErrInvalidChunkTable)
			_, err = NewBlockDecompressor(s)
			assert.ErrorIs(t, err, ErrInvalidChunkTable)
		})
	}
}

func TestBlockDecompressorSequential(t *testing.T) {
	coders := []uint16{filter.CoderDeflate, filter.CoderZstd, filter.CoderLZ4, filter.CoderS2}
	for _, coder := range coders {
		for _, shuffle := range []uint32{0, OptionShuffle} {
			t.Run(filter.CoderName(coder), func(t *testing.T) {
				s := stream(t, params(coder, 4, shuffle), 10, ChunkSizes(10, 4))
				d, err := NewBlockDecompressor(s)
				require.NoError(t, err)

				// Reads that straddle chunk boundaries
				got := make([]byte, 0, 10*recordLength)
				for _, n := range []int{3, 3, 4} {
					out := make([]byte, n*recordLength)
					require.NoError(t, d.DecompressMany(out))
					got = append(got, out...)
				}
				assert.Equal(t, rawRecords(10), got)

				assert.Error(t, d.DecompressMany(make([]byte, recordLength)))
			})
		}
	}
}

func TestBlockDecompressorSeek(t *testing.T) {
	s := stream(t, params(filter.CoderZstd, VariableChunkSize, 0), 10, []uint64{2, 5, 3})
	d, err := NewBlockDecompressor(s)
	require.NoError(t, err)
	all := rawRecords(10)

	for _, index := range []uint64{6, 0, 9, 2, 7} {
		require.NoError(t, d.Seek(index))
		out := make([]byte, recordLength)
		require.NoError(t, d.DecompressMany(out))
		assert.Equal(t, all[index*recordLength:(index+1)*recordLength], out, "record %d", index)
	}

	require.NoError(t, d.Seek(10))
	assert.Error(t, d.Seek(11))
}

func TestBlockDecompressorRejectsArithmetic(t *testing.T) {
	s := Stream{R: bytes.NewReader(nil), RecordLength: recordLength, Params: params(filter.CoderArithmetic, 4, 0)}
	_, err := NewBlock(s)
	assert.ErrorIs(t, err, filter.ErrUnsupportedCoder)
}

func TestBlockDecompressorRecordLengthMismatch(t *testing.T) {
	s := stream(t, params(filter.CoderS2, 10, 0), 10, ChunkSizes(10, 10))
	s.RecordLength = 20
	d, err := NewBlockDecompressor(s)
	require.NoError(t, err)
	assert.ErrorIs(t, d.DecompressMany(make([]byte, 20)), ErrInvalidChunkTable)
}
