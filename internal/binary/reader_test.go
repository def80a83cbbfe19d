package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderScalars(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0x42)
	binary.Write(&buf, binary.LittleEndian, uint16(0x0102))
	binary.Write(&buf, binary.LittleEndian, uint32(0xDEADBEEF))
	binary.Write(&buf, binary.LittleEndian, uint64(0x123456789ABCDEF0))
	binary.Write(&buf, binary.LittleEndian, int64(-7))
	binary.Write(&buf, binary.LittleEndian, math.Float64bits(0.01))

	r := NewReader(bytes.NewReader(buf.Bytes()))

	u8, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), u8)

	u16, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), u16)

	u32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u32)

	u64, err := r.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x123456789ABCDEF0), u64)

	i64, err := r.ReadInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(-7), i64)

	f64, err := r.ReadFloat64()
	require.NoError(t, err)
	assert.Equal(t, 0.01, f64)

	assert.Equal(t, int64(buf.Len()), r.Pos())
}

func TestReaderString(t *testing.T) {
	data := []byte("LASF\x00\x00\x00\x00tail")
	r := NewReader(bytes.NewReader(data))

	s, err := r.ReadString(8)
	require.NoError(t, err)
	assert.Equal(t, "LASF", s)

	s, err = r.ReadString(4)
	require.NoError(t, err)
	assert.Equal(t, "tail", s)
}

func TestReaderShortRead(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2, 3}))

	_, err := r.ReadUint32()
	assert.True(t, errors.Is(err, ErrShortRead) || errors.Is(err, io.EOF), "got %v", err)
	assert.Equal(t, int64(0), r.Pos(), "failed read must not advance")
}

func TestReaderSection(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6}
	for _, ra := range []io.ReaderAt{bytes.NewReader(data), NewSeekerReaderAt(bytes.NewReader(data))} {
		r := NewReader(ra).At(2)
		got, err := r.ReadSection(3)
		require.NoError(t, err)
		assert.Equal(t, []byte{3, 4, 5}, got)
		assert.Equal(t, int64(5), r.Pos())

		for _, n := range []uint64{2, 1 << 50, math.MaxUint64} {
			_, err = r.ReadSection(n)
			assert.ErrorIs(t, err, ErrShortRead, "n=%d", n)
			assert.Equal(t, int64(5), r.Pos())
		}

		got, err = r.ReadSection(0)
		require.NoError(t, err)
		assert.Nil(t, got)
	}
}

func TestReaderAt(t *testing.T) {
	data := bytes.NewReader([]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05})
	r := NewReader(data)

	r2 := r.At(3)
	v, err := r2.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x03), v)

	// Original reader should be unaffected
	v, err = r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x00), v)
}

func TestReaderSkipPeek(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x00, 0x01, 0x02, 0x03, 0x04}))

	r.Skip(2)
	p, err := r.Peek(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x03}, p)
	assert.Equal(t, int64(2), r.Pos())

	v, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x02), v)
}

// seekOnly hides the io.ReaderAt of a bytes.Reader.
type seekOnly struct {
	io.ReadSeeker
}

func TestAsReaderAt(t *testing.T) {
	br := bytes.NewReader([]byte("abcdef"))
	assert.Same(t, br, AsReaderAt(br).(*bytes.Reader))

	ra := AsReaderAt(seekOnly{br})
	_, wrapped := ra.(*SeekerReaderAt)
	require.True(t, wrapped)

	buf := make([]byte, 3)
	n, err := ra.ReadAt(buf, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "cde", string(buf))

	r := NewReader(ra).At(4)
	s, err := r.ReadString(2)
	require.NoError(t, err)
	assert.Equal(t, "ef", s)
}
