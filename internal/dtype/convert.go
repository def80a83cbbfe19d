package dtype

import (
	"encoding/binary"
	"math"

	"github.com/robert-malhotra/go-las/points"
)

type kind uint8

const (
	kindUint kind = iota
	kindInt
	kindFloat
)

// number is a scalar value widened to 64 bits.
type number struct {
	kind kind
	u    uint64
	i    int64
	f    float64
}

type readFn func(b []byte) number
type writeFn func(n number, b []byte)

var le = binary.LittleEndian

var readers = map[points.DataType]readFn{
	points.U8:   func(b []byte) number { return number{kind: kindUint, u: uint64(b[0])} },
	points.U16:  func(b []byte) number { return number{kind: kindUint, u: uint64(le.Uint16(b))} },
	points.U32:  func(b []byte) number { return number{kind: kindUint, u: uint64(le.Uint32(b))} },
	points.U64:  func(b []byte) number { return number{kind: kindUint, u: le.Uint64(b)} },
	points.I8:   func(b []byte) number { return number{kind: kindInt, i: int64(int8(b[0]))} },
	points.I16:  func(b []byte) number { return number{kind: kindInt, i: int64(int16(le.Uint16(b)))} },
	points.I32:  func(b []byte) number { return number{kind: kindInt, i: int64(int32(le.Uint32(b)))} },
	points.I64:  func(b []byte) number { return number{kind: kindInt, i: int64(le.Uint64(b))} },
	points.F32:  func(b []byte) number { return number{kind: kindFloat, f: float64(math.Float32frombits(le.Uint32(b)))} },
	points.F64:  func(b []byte) number { return number{kind: kindFloat, f: math.Float64frombits(le.Uint64(b))} },
	points.Bool: func(b []byte) number { return number{kind: kindUint, u: uint64(b[0] & 1)} },
}

var writers = map[points.DataType]writeFn{
	points.U8:  func(n number, b []byte) { b[0] = uint8(n.asUint()) },
	points.U16: func(n number, b []byte) { le.PutUint16(b, uint16(n.asUint())) },
	points.U32: func(n number, b []byte) { le.PutUint32(b, uint32(n.asUint())) },
	points.U64: func(n number, b []byte) { le.PutUint64(b, n.asUint()) },
	points.I8:  func(n number, b []byte) { b[0] = uint8(int8(n.asInt())) },
	points.I16: func(n number, b []byte) { le.PutUint16(b, uint16(int16(n.asInt()))) },
	points.I32: func(n number, b []byte) { le.PutUint32(b, uint32(int32(n.asInt()))) },
	points.I64: func(n number, b []byte) { le.PutUint64(b, uint64(n.asInt())) },
	points.F32: func(n number, b []byte) { le.PutUint32(b, math.Float32bits(float32(n.asFloat()))) },
	points.F64: func(n number, b []byte) { le.PutUint64(b, math.Float64bits(n.asFloat())) },
	points.Bool: func(n number, b []byte) {
		if n.nonZero() {
			b[0] = 1
		} else {
			b[0] = 0
		}
	},
}

func (n number) asUint() uint64 {
	switch n.kind {
	case kindInt:
		return uint64(n.i)
	case kindFloat:
		if n.f < 0 {
			return uint64(int64(n.f))
		}
		return uint64(n.f)
	default:
		return n.u
	}
}

func (n number) asInt() int64 {
	switch n.kind {
	case kindUint:
		return int64(n.u)
	case kindFloat:
		return int64(n.f)
	default:
		return n.i
	}
}

func (n number) asFloat() float64 {
	switch n.kind {
	case kindUint:
		return float64(n.u)
	case kindInt:
		return float64(n.i)
	default:
		return n.f
	}
}

func (n number) nonZero() bool {
	switch n.kind {
	case kindUint:
		return n.u != 0
	case kindInt:
		return n.i != 0
	default:
		return n.f != 0
	}
}

type pair struct {
	from, to points.DataType
}

// Registry holds built-in conversions plus any registered overrides.
// A Registry is not safe for concurrent Register calls; Lookup is safe once
// registration is complete.
type Registry struct {
	custom map[pair]points.Converter
}

// Default is the registry used when no other is configured.
var Default = New()

// New creates a registry with only the built-in conversions.
func New() *Registry {
	return &Registry{custom: make(map[pair]points.Converter)}
}

// Register installs conv for the (from, to) pair, replacing any built-in.
func (r *Registry) Register(from, to points.DataType, conv points.Converter) {
	r.custom[pair{from, to}] = conv
}

// Lookup implements points.ConverterRegistry.
func (r *Registry) Lookup(from, to points.DataType) (points.Converter, bool) {
	if conv, ok := r.custom[pair{from, to}]; ok {
		return conv, true
	}
	if from == to && from.Valid() {
		return func(src, dst []byte) { copy(dst, src) }, true
	}
	if from.Components() != to.Components() {
		return nil, false
	}
	if from.Components() == 1 {
		return scalarConverter(from, to)
	}
	elem, ok := scalarConverter(from.Element(), to.Element())
	if !ok {
		return nil, false
	}
	fs, ts := from.Element().Size(), to.Element().Size()
	return func(src, dst []byte) {
		for c := 0; c < 3; c++ {
			elem(src[c*fs:(c+1)*fs], dst[c*ts:(c+1)*ts])
		}
	}, true
}

func scalarConverter(from, to points.DataType) (points.Converter, bool) {
	read, ok := readers[from]
	if !ok {
		return nil, false
	}
	write, ok := writers[to]
	if !ok {
		return nil, false
	}
	return func(src, dst []byte) {
		write(read(src), dst)
	}, true
}
