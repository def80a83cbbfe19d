package codec

import (
	"fmt"

	"github.com/robert-malhotra/go-las/points"
)

// Slot is where one well-known attribute lands in a target record.
type Slot struct {
	Name   string
	Offset int
	Size   int

	// Convert is nil when source and target datatypes match.
	Convert points.Converter

	// Field is the index of the source field in walk order, or -1 when the
	// source format lacks the attribute and the slot is zero-filled.
	Field int
}

// Plan maps the fields of a record onto a target layout. Attributes the
// target does not declare have no slot; their source bytes are stepped over
// by the record stride.
type Plan struct {
	target *points.Layout
	slots  []Slot
}

// Resolve builds the plan for decoding fields into target. It fails with
// points.ErrNoConverter before anything is decoded when a requested attribute
// needs a conversion the registry does not provide.
func Resolve(fields []Field, target *points.Layout, reg points.ConverterRegistry) (*Plan, error) {
	byName := make(map[string]int, len(fields))
	for i, f := range fields {
		byName[f.Name] = i
	}

	p := &Plan{target: target}
	for _, a := range points.WellKnown {
		m, ok := target.Member(a.Name)
		if !ok {
			continue
		}
		slot := Slot{Name: a.Name, Offset: m.Offset, Size: m.Size(), Field: -1}

		fi, present := byName[a.Name]
		if present {
			slot.Field = fi
			src := fields[fi].DataType
			if src != m.DataType {
				conv, ok := reg.Lookup(src, m.DataType)
				if !ok {
					return nil, fmt.Errorf("attribute %q from %s to %s: %w", a.Name, src, m.DataType, points.ErrNoConverter)
				}
				slot.Convert = conv
			}
		}
		p.slots = append(p.slots, slot)
	}
	return p, nil
}

// Target returns the layout the plan decodes into.
func (p *Plan) Target() *points.Layout {
	return p.target
}

// Slots returns the resolved slots in catalogue order.
func (p *Plan) Slots() []Slot {
	return p.slots
}

// Slot returns the slot of the named attribute.
func (p *Plan) Slot(name string) (Slot, bool) {
	for _, s := range p.slots {
		if s.Name == name {
			return s, true
		}
	}
	return Slot{}, false
}
