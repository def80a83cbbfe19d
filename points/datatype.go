package points

import (
	"encoding/binary"
	"fmt"
	"math"
)

// DataType identifies the in-memory representation of a point attribute.
// All multi-byte values are stored little-endian inside a point buffer.
type DataType uint8

const (
	U8 DataType = iota + 1
	I8
	U16
	I16
	U32
	I32
	U64
	I64
	F32
	F64
	Bool
	Vec3U8
	Vec3U16
	Vec3F32
	Vec3F64
)

var dataTypeNames = map[DataType]string{
	U8:      "u8",
	I8:      "i8",
	U16:     "u16",
	I16:     "i16",
	U32:     "u32",
	I32:     "i32",
	U64:     "u64",
	I64:     "i64",
	F32:     "f32",
	F64:     "f64",
	Bool:    "bool",
	Vec3U8:  "vec3u8",
	Vec3U16: "vec3u16",
	Vec3F32: "vec3f32",
	Vec3F64: "vec3f64",
}

func (t DataType) String() string {
	if name, ok := dataTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("DataType(%d)", uint8(t))
}

// ParseDataType resolves a datatype from its String form.
func ParseDataType(name string) (DataType, error) {
	for t, n := range dataTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown datatype %q", name)
}

// Valid reports whether t is one of the declared datatypes.
func (t DataType) Valid() bool {
	_, ok := dataTypeNames[t]
	return ok
}

// Components returns 3 for vector types and 1 otherwise.
func (t DataType) Components() int {
	switch t {
	case Vec3U8, Vec3U16, Vec3F32, Vec3F64:
		return 3
	default:
		return 1
	}
}

// Element returns the scalar type of a single component.
func (t DataType) Element() DataType {
	switch t {
	case Vec3U8:
		return U8
	case Vec3U16:
		return U16
	case Vec3F32:
		return F32
	case Vec3F64:
		return F64
	default:
		return t
	}
}

// Size returns the size of one value in bytes.
func (t DataType) Size() int {
	switch t {
	case U8, I8, Bool:
		return 1
	case U16, I16:
		return 2
	case U32, I32, F32:
		return 4
	case U64, I64, F64:
		return 8
	case Vec3U8:
		return 3
	case Vec3U16:
		return 6
	case Vec3F32:
		return 12
	case Vec3F64:
		return 24
	default:
		return 0
	}
}

// Decode reads one value of type t from b and returns it as the matching Go
// type: uint8, int8, uint16, ..., bool, [3]uint8, [3]uint16, [3]float32 or
// [3]float64.
func (t DataType) Decode(b []byte) (any, error) {
	if len(b) < t.Size() || t.Size() == 0 {
		return nil, fmt.Errorf("decoding %s: need %d bytes, have %d", t, t.Size(), len(b))
	}
	le := binary.LittleEndian
	switch t {
	case U8:
		return b[0], nil
	case I8:
		return int8(b[0]), nil
	case U16:
		return le.Uint16(b), nil
	case I16:
		return int16(le.Uint16(b)), nil
	case U32:
		return le.Uint32(b), nil
	case I32:
		return int32(le.Uint32(b)), nil
	case U64:
		return le.Uint64(b), nil
	case I64:
		return int64(le.Uint64(b)), nil
	case F32:
		return math.Float32frombits(le.Uint32(b)), nil
	case F64:
		return math.Float64frombits(le.Uint64(b)), nil
	case Bool:
		return b[0] != 0, nil
	case Vec3U8:
		return [3]uint8{b[0], b[1], b[2]}, nil
	case Vec3U16:
		return [3]uint16{le.Uint16(b), le.Uint16(b[2:]), le.Uint16(b[4:])}, nil
	case Vec3F32:
		return [3]float32{
			math.Float32frombits(le.Uint32(b)),
			math.Float32frombits(le.Uint32(b[4:])),
			math.Float32frombits(le.Uint32(b[8:])),
		}, nil
	case Vec3F64:
		return [3]float64{
			math.Float64frombits(le.Uint64(b)),
			math.Float64frombits(le.Uint64(b[8:])),
			math.Float64frombits(le.Uint64(b[16:])),
		}, nil
	}
	return nil, fmt.Errorf("decoding %s: unsupported datatype", t)
}

// PutF64 stores v at b[0:8].
func PutF64(b []byte, v float64) {
	binary.LittleEndian.PutUint64(b, math.Float64bits(v))
}

// PutF32 stores v at b[0:4].
func PutF32(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

// PutVec3F64 stores v as three consecutive float64 values.
func PutVec3F64(b []byte, v [3]float64) {
	PutF64(b, v[0])
	PutF64(b[8:], v[1])
	PutF64(b[16:], v[2])
}
