package points

import (
	"errors"
	"fmt"
)

// ErrNoConverter is returned when no conversion exists between two datatypes.
var ErrNoConverter = errors.New("no converter")

// Converter converts one value from its source representation in src to the
// target representation in dst. len(src) and len(dst) match the sizes of
// the respective datatypes.
type Converter func(src, dst []byte)

// ConverterRegistry supplies converters between datatypes.
type ConverterRegistry interface {
	// Lookup returns the converter from one datatype to another. It reports
	// false when the conversion is not supported.
	Lookup(from, to DataType) (Converter, bool)
}

// Buffer receives decoded points.
type Buffer interface {
	// Layout returns the layout points are decoded into.
	Layout() *Layout

	// Append adds n records stored back to back in raw using Layout().
	Append(raw []byte, n int)
}

// Interleaved stores points record by record in one contiguous byte slice.
type Interleaved struct {
	layout *Layout
	data   []byte
	n      int
}

// NewInterleaved creates an empty buffer with capacity for capacity points.
func NewInterleaved(layout *Layout, capacity int) *Interleaved {
	return &Interleaved{
		layout: layout,
		data:   make([]byte, 0, capacity*layout.Size()),
	}
}

func (b *Interleaved) Layout() *Layout {
	return b.layout
}

func (b *Interleaved) Append(raw []byte, n int) {
	b.data = append(b.data, raw[:n*b.layout.Size()]...)
	b.n += n
}

// Len returns the number of points in the buffer.
func (b *Interleaved) Len() int {
	return b.n
}

// Bytes returns the raw record bytes. The slice aliases the buffer.
func (b *Interleaved) Bytes() []byte {
	return b.data
}

// Point returns the raw bytes of point i.
func (b *Interleaved) Point(i int) []byte {
	size := b.layout.Size()
	return b.data[i*size : (i+1)*size]
}

// AttributeBytes returns the raw bytes of the named attribute of point i.
func (b *Interleaved) AttributeBytes(i int, name string) ([]byte, bool) {
	m, ok := b.layout.Member(name)
	if !ok || i < 0 || i >= b.n {
		return nil, false
	}
	p := b.Point(i)
	return p[m.Offset : m.Offset+m.Size()], true
}

// Value decodes the named attribute of point i. See DataType.Decode for the
// returned Go types.
func (b *Interleaved) Value(i int, name string) (any, error) {
	m, ok := b.layout.Member(name)
	if !ok {
		return nil, fmt.Errorf("attribute %q not in layout", name)
	}
	if i < 0 || i >= b.n {
		return nil, fmt.Errorf("point index %d out of range [0, %d)", i, b.n)
	}
	p := b.Point(i)
	return m.DataType.Decode(p[m.Offset : m.Offset+m.Size()])
}

// Values decodes the named attribute of every point. T must match the Go
// type DataType.Decode returns for the attribute's datatype.
func Values[T any](b *Interleaved, name string) ([]T, error) {
	out := make([]T, 0, b.n)
	for i := 0; i < b.n; i++ {
		v, err := b.Value(i, name)
		if err != nil {
			return nil, err
		}
		tv, ok := v.(T)
		if !ok {
			return nil, fmt.Errorf("attribute %q decodes to %T, not %T", name, v, *new(T))
		}
		out = append(out, tv)
	}
	return out, nil
}
