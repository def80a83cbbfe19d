package lastest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-las/internal/format"
	"github.com/robert-malhotra/go-las/points"
)

// Value returns attribute name of point i as T.
func Value[T any](t testing.TB, buf *points.Interleaved, i int, name string) T {
	t.Helper()
	v, err := buf.Value(i, name)
	require.NoError(t, err)
	tv, ok := v.(T)
	require.True(t, ok, "%s decodes to %T", name, v)
	return tv
}

// AssertNatural compares every attribute of a natural layout buffer against
// the reference points.
func AssertNatural(t testing.TB, d format.Descriptor, buf *points.Interleaved, pts []Point, scale, offset [3]float64) {
	t.Helper()
	require.Equal(t, len(pts), buf.Len())
	for i, p := range pts {
		assert.Equal(t, World(p, scale, offset), Value[[3]float64](t, buf, i, "Position3D"), "point %d", i)
		assert.Equal(t, p.Intensity, Value[uint16](t, buf, i, "Intensity"))
		assert.Equal(t, p.Bits.ReturnNumber, Value[uint8](t, buf, i, "ReturnNumber"))
		assert.Equal(t, p.Bits.NumberOfReturns, Value[uint8](t, buf, i, "NumberOfReturns"))
		assert.Equal(t, p.Bits.ScanDirectionFlag == 1, Value[bool](t, buf, i, "ScanDirectionFlag"))
		assert.Equal(t, p.Bits.EdgeOfFlightLine == 1, Value[bool](t, buf, i, "EdgeOfFlightLine"))
		assert.Equal(t, p.Classification, Value[uint8](t, buf, i, "Classification"))
		assert.Equal(t, p.UserData, Value[uint8](t, buf, i, "UserData"))
		assert.Equal(t, p.PointSourceID, Value[uint16](t, buf, i, "PointSourceID"))
		if d.IsExtended {
			assert.Equal(t, p.Bits.ClassificationFlags, Value[uint8](t, buf, i, "ClassificationFlags"))
			assert.Equal(t, p.Bits.ScannerChannel, Value[uint8](t, buf, i, "ScannerChannel"))
			assert.Equal(t, p.ScanAngle, Value[int16](t, buf, i, "ScanAngle"))
		} else {
			assert.Equal(t, int8(p.ScanAngle), Value[int8](t, buf, i, "ScanAngle"))
		}
		if d.HasGPSTime {
			assert.Equal(t, p.GPSTime, Value[float64](t, buf, i, "GPSTime"))
		}
		if d.HasColor {
			assert.Equal(t, p.RGB, Value[[3]uint16](t, buf, i, "ColorRGB"))
		}
		if d.HasNIR {
			assert.Equal(t, p.NIR, Value[uint16](t, buf, i, "NIR"))
		}
		if d.HasWaveform {
			assert.Equal(t, p.WavePacketIndex, Value[uint8](t, buf, i, "WavePacketDescriptorIndex"))
			assert.Equal(t, p.WaveformOffset, Value[uint64](t, buf, i, "WaveformDataOffset"))
			assert.Equal(t, p.WaveformSize, Value[uint32](t, buf, i, "WaveformPacketSize"))
			assert.Equal(t, p.ReturnPointLocation, Value[float32](t, buf, i, "ReturnPointWaveformLocation"))
			assert.Equal(t, p.WaveformParams, Value[[3]float32](t, buf, i, "WaveformParameters"))
		}
	}
}
