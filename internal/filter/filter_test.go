package filter

import (
	"bytes"
	"compress/zlib"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// records returns n synthetic 20-byte records with slowly varying bytes.
func records(n int) []byte {
	out := make([]byte, 0, n*20)
	for i := 0; i < n; i++ {
		for j := 0; j < 20; j++ {
			out = append(out, byte(i*j/7))
		}
	}
	return out
}

func TestCodersRoundtrip(t *testing.T) {
	original := records(500)

	for _, coder := range []uint16{CoderDeflate, CoderZstd, CoderLZ4, CoderS2} {
		t.Run(CoderName(coder), func(t *testing.T) {
			f, err := New(coder)
			require.NoError(t, err)
			assert.Equal(t, coder, f.ID())

			encoded, err := f.Encode(original)
			require.NoError(t, err)

			decoded, err := f.Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, original, decoded)
		})
	}
}

func TestDeflateReadsStandardZlib(t *testing.T) {
	original := []byte("Hello, World! This is test data for compression testing.")

	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(original)
	w.Close()

	decompressed, err := NewDeflate(DefaultDeflateLevel).Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)
}

func TestDecodeCorrupt(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}
	for _, coder := range []uint16{CoderDeflate, CoderZstd, CoderLZ4, CoderS2} {
		t.Run(CoderName(coder), func(t *testing.T) {
			f, err := New(coder)
			require.NoError(t, err)
			_, err = f.Decode(garbage)
			assert.Error(t, err)
		})
	}
}

func TestNewUnsupportedCoder(t *testing.T) {
	for _, coder := range []uint16{CoderArithmetic, 99} {
		_, err := New(coder)
		assert.ErrorIs(t, err, ErrUnsupportedCoder)
	}
	assert.Equal(t, "arithmetic", CoderName(CoderArithmetic))
	assert.Equal(t, "coder(99)", CoderName(99))
}

func TestShuffleUnshuffle(t *testing.T) {
	// Original: [A0 A1 A2 A3] [B0 B1 B2 B3] [C0 C1 C2 C3] [D0 D1 D2 D3]
	// Shuffled: [A0 B0 C0 D0] [A1 B1 C1 D1] [A2 B2 C2 D2] [A3 B3 C3 D3]
	original := []byte{
		0x01, 0x02, 0x03, 0x04,
		0x11, 0x12, 0x13, 0x14,
		0x21, 0x22, 0x23, 0x24,
		0x31, 0x32, 0x33, 0x34,
	}
	shuffled := []byte{
		0x01, 0x11, 0x21, 0x31,
		0x02, 0x12, 0x22, 0x32,
		0x03, 0x13, 0x23, 0x33,
		0x04, 0x14, 0x24, 0x34,
	}

	f := NewShuffle(4)
	assert.Equal(t, ShuffleID, f.ID())

	got, err := f.Encode(original)
	require.NoError(t, err)
	assert.Equal(t, shuffled, got)

	got, err = f.Decode(shuffled)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestShuffleTrailingBytes(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7}
	f := NewShuffle(3)

	enc, err := f.Encode(data)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 4, 2, 5, 3, 6, 7}, enc)

	dec, err := f.Decode(enc)
	require.NoError(t, err)
	assert.Equal(t, data, dec)
}

func TestShuffleSingleByte(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	result, err := NewShuffle(1).Decode(data)
	require.NoError(t, err)
	assert.Equal(t, data, result)
}

func TestPipeline(t *testing.T) {
	original := records(64)

	tests := []struct {
		name    string
		shuffle bool
		len     int
	}{
		{"codec only", false, 1},
		{"shuffle then codec", true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPipeline(CoderZstd, tt.shuffle, 20)
			require.NoError(t, err)
			assert.Equal(t, tt.len, p.Len())

			enc, err := p.Encode(original)
			require.NoError(t, err)
			dec, err := p.Decode(enc)
			require.NoError(t, err)
			assert.Equal(t, original, dec)
		})
	}
}

func TestPipelineShuffledPayloadNeedsUnshuffle(t *testing.T) {
	original := records(16)
	shuffled, err := NewPipeline(CoderS2, true, 20)
	require.NoError(t, err)
	plain, err := NewPipeline(CoderS2, false, 20)
	require.NoError(t, err)

	enc, err := shuffled.Encode(original)
	require.NoError(t, err)
	dec, err := plain.Decode(enc)
	require.NoError(t, err)
	assert.NotEqual(t, original, dec)
}

func TestNewPipelineUnsupported(t *testing.T) {
	_, err := NewPipeline(CoderArithmetic, false, 20)
	assert.ErrorIs(t, err, ErrUnsupportedCoder)
}
