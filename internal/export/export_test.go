package export

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-las/points"
)

var testLayout = points.MustLayout(
	points.Position3D,
	points.Classification,
	points.EdgeOfFlightLine,
	points.ColorRGB,
)

func testBuffer(t *testing.T, n int) *points.Interleaved {
	t.Helper()
	buf := points.NewInterleaved(testLayout, n)
	rec := make([]byte, testLayout.Size())
	for i := 0; i < n; i++ {
		clear(rec)
		points.PutVec3F64(rec, [3]float64{float64(i) + 0.5, float64(i) * 2, -1.25})
		rec[24] = uint8(i + 1)
		if i%2 == 1 {
			rec[25] = 1
		}
		binary.LittleEndian.PutUint16(rec[26:], uint16(100*i))
		binary.LittleEndian.PutUint16(rec[28:], uint16(200*i))
		binary.LittleEndian.PutUint16(rec[30:], 65535)
		buf.Append(rec, 1)
	}
	require.Equal(t, n, buf.Len())
	return buf
}

func TestCSV(t *testing.T) {
	var out bytes.Buffer
	w, err := New(FormatCSV, &out, testLayout)
	require.NoError(t, err)

	require.NoError(t, w.Write(testBuffer(t, 2)))
	require.NoError(t, w.Close())

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Position3D.x,Position3D.y,Position3D.z,Classification,EdgeOfFlightLine,ColorRGB.x,ColorRGB.y,ColorRGB.z", lines[0])
	assert.Equal(t, "0.5,0,-1.25,1,0,0,0,65535", lines[1])
	assert.Equal(t, "1.5,2,-1.25,2,1,100,200,65535", lines[2])
}

func TestCSVHeaderOnly(t *testing.T) {
	var out bytes.Buffer
	w := NewCSV(&out, testLayout)
	require.NoError(t, w.Close())

	assert.True(t, strings.HasPrefix(out.String(), "Position3D.x,"))
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))
}

func TestCSVMultipleBuffers(t *testing.T) {
	var out bytes.Buffer
	w := NewCSV(&out, testLayout)
	require.NoError(t, w.Write(testBuffer(t, 3)))
	require.NoError(t, w.Write(testBuffer(t, 2)))
	require.NoError(t, w.Close())

	// One header row only.
	assert.Equal(t, 6, strings.Count(out.String(), "\n"))
}

func TestJSONLines(t *testing.T) {
	var out bytes.Buffer
	w, err := New(FormatJSON, &out, testLayout)
	require.NoError(t, err)

	require.NoError(t, w.Write(testBuffer(t, 3)))
	require.NoError(t, w.Close())

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	var row struct {
		Position3D       [3]float64
		Classification   uint8
		EdgeOfFlightLine bool
		ColorRGB         [3]uint16
	}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &row))
	assert.Equal(t, [3]float64{1.5, 2, -1.25}, row.Position3D)
	assert.Equal(t, uint8(2), row.Classification)
	assert.True(t, row.EdgeOfFlightLine)
	assert.Equal(t, [3]uint16{100, 200, 65535}, row.ColorRGB)

	// Keys keep layout order.
	assert.True(t, strings.HasPrefix(lines[0], `{"Position3D":`))
}

func TestArrow(t *testing.T) {
	var out bytes.Buffer
	w, err := NewArrow(&out, testLayout)
	require.NoError(t, err)

	require.NoError(t, w.Write(testBuffer(t, 4)))
	require.NoError(t, w.Write(testBuffer(t, 2)))
	assert.Equal(t, int64(6), w.Rows())
	require.NoError(t, w.Close())

	r, err := ipc.NewFileReader(bytes.NewReader(out.Bytes()), ipc.WithAllocator(memory.NewGoAllocator()))
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, 2, r.NumRecords())
	assert.Equal(t, 4, r.Schema().NumFields())
	assert.Equal(t, arrow.PrimitiveTypes.Uint8, r.Schema().Field(1).Type)

	rec, err := r.Record(0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), rec.NumRows())

	pos := rec.Column(0).(*array.FixedSizeList)
	xyz := pos.ListValues().(*array.Float64)
	assert.Equal(t, 3*4, xyz.Len())
	assert.Equal(t, 3.5, xyz.Value(9))
	assert.Equal(t, 6.0, xyz.Value(10))

	class := rec.Column(1).(*array.Uint8)
	assert.Equal(t, uint8(4), class.Value(3))

	edge := rec.Column(2).(*array.Boolean)
	assert.False(t, edge.Value(0))
	assert.True(t, edge.Value(1))
}

func TestArrowSchemaTypes(t *testing.T) {
	layout := points.MustLayout(
		points.Position3D.WithDataType(points.Vec3F32),
		points.ScanAngle,
		points.GPSTime,
		points.WaveformDataOffset,
	)
	schema, err := ArrowSchema(layout)
	require.NoError(t, err)

	assert.Equal(t, arrow.FixedSizeListOf(3, arrow.PrimitiveTypes.Float32).String(), schema.Field(0).Type.String())
	assert.Equal(t, arrow.PrimitiveTypes.Int16, schema.Field(1).Type)
	assert.Equal(t, arrow.PrimitiveTypes.Float64, schema.Field(2).Type)
	assert.Equal(t, arrow.PrimitiveTypes.Uint64, schema.Field(3).Type)
}

func TestLayoutMismatch(t *testing.T) {
	other := points.MustLayout(points.Intensity)
	buf := points.NewInterleaved(other, 0)

	for _, format := range []string{FormatCSV, FormatJSON, FormatArrow} {
		t.Run(format, func(t *testing.T) {
			w, err := New(format, &bytes.Buffer{}, testLayout)
			require.NoError(t, err)
			assert.ErrorIs(t, w.Write(buf), ErrLayoutMismatch)
		})
	}
}

func TestUnknownFormat(t *testing.T) {
	_, err := New("parquet", &bytes.Buffer{}, testLayout)
	assert.Error(t, err)
}
