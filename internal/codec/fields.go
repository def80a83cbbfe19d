package codec

import (
	"encoding/binary"

	"github.com/robert-malhotra/go-las/internal/format"
	"github.com/robert-malhotra/go-las/points"
)

// Field is one attribute of an on-disk record.
type Field struct {
	// Attribute carries the name and the natural datatype the field
	// decodes to.
	points.Attribute

	// Offset and Width locate the field's bytes within a record. The bit
	// sub-fields share the offset and width of their packed byte(s).
	Offset int
	Width  int

	decode func(rec, dst []byte)
}

// Decode writes the field of record rec into dst in its natural datatype.
// len(dst) must be at least Size().
func (f Field) Decode(rec, dst []byte) {
	f.decode(rec, dst)
}

// Fields returns the on-disk fields of a point format in walk order.
func Fields(d format.Descriptor, t Transform) []Field {
	b := fieldBuilder{}

	b.add(points.Position3D, format.PositionSize, func(off, _ int) func(rec, dst []byte) {
		return func(rec, dst []byte) {
			var local [3]uint32
			for axis := range local {
				local[axis] = binary.LittleEndian.Uint32(rec[off+4*axis:])
			}
			points.PutVec3F64(dst, t.Apply(local))
		}
	})
	b.add(points.Intensity, format.IntensitySize, copyBytes)
	b.addBits(d)
	b.add(points.Classification, format.ClassificationSize, copyBytes)
	if d.IsExtended {
		b.add(points.UserData, format.UserDataSize, copyBytes)
		b.add(points.ScanAngle, d.ScanAngleSize(), copyBytes)
	} else {
		b.add(points.ScanAngleRank, d.ScanAngleSize(), copyBytes)
		b.add(points.UserData, format.UserDataSize, copyBytes)
	}
	b.add(points.PointSourceID, format.PointSourceIDSize, copyBytes)
	if d.HasGPSTime {
		b.add(points.GPSTime, format.GPSTimeSize, copyBytes)
	}
	if d.HasColor {
		b.add(points.ColorRGB, format.ColorSize, copyBytes)
	}
	if d.HasNIR {
		b.add(points.NIR, format.NIRSize, copyBytes)
	}
	if d.HasWaveform {
		b.add(points.WavePacketDescriptorIndex, 1, copyBytes)
		b.add(points.WaveformDataOffset, 8, copyBytes)
		b.add(points.WaveformPacketSize, 4, copyBytes)
		b.add(points.ReturnPointWaveformLocation, 4, copyBytes)
		b.add(points.WaveformParameters, 12, copyBytes)
	}
	return b.fields
}

// NaturalLayout returns the layout that mirrors the fields of a point format
// with no conversion, packed in walk order.
func NaturalLayout(d format.Descriptor) *points.Layout {
	fields := Fields(d, Transform{})
	attrs := make([]points.Attribute, len(fields))
	for i, f := range fields {
		attrs[i] = f.Attribute
	}
	return points.MustLayout(attrs...)
}

type fieldBuilder struct {
	fields []Field
	off    int
}

// add appends a field of the given on-disk width. mk receives the field's
// offset and width and returns its decoder.
func (b *fieldBuilder) add(a points.Attribute, width int, mk func(off, width int) func(rec, dst []byte)) {
	b.fields = append(b.fields, Field{Attribute: a, Offset: b.off, Width: width, decode: mk(b.off, width)})
	b.off += width
}

// addBits appends the sub-fields of the packed return/flag byte(s). They are
// decoded from the same bytes, so the cursor advances once for the group.
func (b *fieldBuilder) addBits(d format.Descriptor) {
	off, width, ext := b.off, d.BitFieldSize(), d.IsExtended
	sub := func(a points.Attribute, get func(format.BitAttributes) uint8) {
		b.fields = append(b.fields, Field{
			Attribute: a,
			Offset:    off,
			Width:     width,
			decode: func(rec, dst []byte) {
				dst[0] = get(format.DecodeBits(ext, rec[off:off+width]))
			},
		})
	}

	sub(points.ReturnNumber, func(a format.BitAttributes) uint8 { return a.ReturnNumber })
	sub(points.NumberOfReturns, func(a format.BitAttributes) uint8 { return a.NumberOfReturns })
	if ext {
		sub(points.ClassificationFlags, func(a format.BitAttributes) uint8 { return a.ClassificationFlags })
		sub(points.ScannerChannel, func(a format.BitAttributes) uint8 { return a.ScannerChannel })
	}
	sub(points.ScanDirectionFlag, func(a format.BitAttributes) uint8 { return a.ScanDirectionFlag })
	sub(points.EdgeOfFlightLine, func(a format.BitAttributes) uint8 { return a.EdgeOfFlightLine })
	b.off += width
}

func copyBytes(off, width int) func(rec, dst []byte) {
	return func(rec, dst []byte) {
		copy(dst[:width], rec[off:off+width])
	}
}
