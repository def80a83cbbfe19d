package points

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterleavedAppendAndValues(t *testing.T) {
	l := MustLayout(Intensity, GPSTime)
	buf := NewInterleaved(l, 2)

	raw := make([]byte, 2*l.Size())
	binary.LittleEndian.PutUint16(raw[0:], 7)
	PutF64(raw[2:], 1.5)
	binary.LittleEndian.PutUint16(raw[10:], 9)
	PutF64(raw[12:], 2.5)

	buf.Append(raw, 1)
	buf.Append(raw[l.Size():], 1)
	require.Equal(t, 2, buf.Len())
	assert.Equal(t, raw, buf.Bytes())

	intensity, err := Values[uint16](buf, "Intensity")
	require.NoError(t, err)
	assert.Equal(t, []uint16{7, 9}, intensity)

	gps, err := Values[float64](buf, "GPSTime")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5}, gps)

	b, ok := buf.AttributeBytes(1, "Intensity")
	require.True(t, ok)
	assert.Equal(t, []byte{9, 0}, b)
}

func TestInterleavedErrors(t *testing.T) {
	buf := NewInterleaved(MustLayout(Intensity), 1)
	buf.Append([]byte{1, 0}, 1)

	_, err := buf.Value(0, "NIR")
	assert.Error(t, err)
	_, err = buf.Value(1, "Intensity")
	assert.Error(t, err)

	_, err = Values[float64](buf, "Intensity")
	assert.Error(t, err)

	_, ok := buf.AttributeBytes(-1, "Intensity")
	assert.False(t, ok)
}

func TestInterleavedImplementsBuffer(t *testing.T) {
	var b Buffer = NewInterleaved(MustLayout(Classification), 0)
	assert.Equal(t, 1, b.Layout().Size())
}
