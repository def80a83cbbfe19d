package codec

import (
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-las/internal/format"
	"github.com/robert-malhotra/go-las/points"
)

// ErrRecordLength is returned when a stream declares records shorter than its
// point format requires.
var ErrRecordLength = errors.New("record length below format minimum")

// Decoder turns raw on-disk records of one stream into target records. It
// holds no per-call state and may be shared by successive reads.
type Decoder struct {
	desc         format.Descriptor
	recordLength int
	fields       []Field
	natural      *points.Layout
	offsets      []int // natural offset per field
}

// NewDecoder prepares the field table of a stream. recordLength is the
// stride between records; bytes past the format's fields are skipped.
func NewDecoder(d format.Descriptor, recordLength int, t Transform) (*Decoder, error) {
	if recordLength < d.RecordLength() {
		return nil, fmt.Errorf("%w: %s needs %d bytes, stream declares %d",
			ErrRecordLength, d, d.RecordLength(), recordLength)
	}

	fields := Fields(d, t)
	natural := NaturalLayout(d)
	offsets := make([]int, len(fields))
	for i, f := range fields {
		m, _ := natural.Member(f.Name)
		offsets[i] = m.Offset
	}
	return &Decoder{
		desc:         d,
		recordLength: recordLength,
		fields:       fields,
		natural:      natural,
		offsets:      offsets,
	}, nil
}

// Descriptor returns the stream's point format.
func (d *Decoder) Descriptor() format.Descriptor {
	return d.desc
}

// RecordLength returns the on-disk stride.
func (d *Decoder) RecordLength() int {
	return d.recordLength
}

// Fields returns the field table in walk order.
func (d *Decoder) Fields() []Field {
	return d.fields
}

// NaturalLayout returns the layout the default path decodes into.
func (d *Decoder) NaturalLayout() *points.Layout {
	return d.natural
}

// Resolve builds a plan for decoding this stream into target.
func (d *Decoder) Resolve(target *points.Layout, reg points.ConverterRegistry) (*Plan, error) {
	return Resolve(d.fields, target, reg)
}

// DecodeNatural decodes n records from raw into dst using the natural layout.
// Every field is written at its fixed natural offset.
func (d *Decoder) DecodeNatural(raw []byte, n int, dst []byte) {
	size := d.natural.Size()
	for i := 0; i < n; i++ {
		rec := raw[i*d.recordLength : (i+1)*d.recordLength]
		out := dst[i*size : (i+1)*size]
		for fi, f := range d.fields {
			f.decode(rec, out[d.offsets[fi]:])
		}
	}
}

// DecodePlan decodes n records from raw into dst following p. Target bytes
// without a source field are zero.
func (d *Decoder) DecodePlan(p *Plan, raw []byte, n int, dst []byte) {
	size := p.target.Size()
	clear(dst[:n*size])

	var scratch [24]byte
	for i := 0; i < n; i++ {
		rec := raw[i*d.recordLength : (i+1)*d.recordLength]
		out := dst[i*size : (i+1)*size]
		for _, s := range p.slots {
			if s.Field < 0 {
				continue
			}
			f := d.fields[s.Field]
			target := out[s.Offset : s.Offset+s.Size]
			if s.Convert == nil {
				f.decode(rec, target)
				continue
			}
			src := scratch[:f.Size()]
			f.decode(rec, src)
			s.Convert(src, target)
		}
	}
}
