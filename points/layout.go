package points

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errors returned when building layouts.
var (
	ErrDuplicateAttribute   = errors.New("duplicate attribute")
	ErrOverlappingAttribute = errors.New("overlapping attribute")
	ErrInvalidDataType      = errors.New("invalid datatype")
)

// Member is an attribute placed at a byte offset within a point record.
type Member struct {
	Attribute
	Offset int
}

// Layout describes the byte layout of one point record in a buffer.
// A Layout is immutable after construction.
type Layout struct {
	members []Member
	index   map[string]int
	size    int
}

// NewLayout packs attrs back to back in the given order.
func NewLayout(attrs ...Attribute) (*Layout, error) {
	members := make([]Member, len(attrs))
	offset := 0
	for i, a := range attrs {
		members[i] = Member{Attribute: a, Offset: offset}
		offset += a.Size()
	}
	return NewLayoutWithOffsets(members, offset)
}

// MustLayout is like NewLayout but panics on error. It is intended for
// package-level layout definitions.
func MustLayout(attrs ...Attribute) *Layout {
	l, err := NewLayout(attrs...)
	if err != nil {
		panic(err)
	}
	return l
}

// NewLayoutWithOffsets builds a layout from explicitly placed members.
// size is the record width; it may exceed the end of the last member to
// leave trailing padding. A size of 0 uses the end of the last member.
func NewLayoutWithOffsets(members []Member, size int) (*Layout, error) {
	l := &Layout{
		members: make([]Member, len(members)),
		index:   make(map[string]int, len(members)),
	}
	copy(l.members, members)

	end := 0
	for i, m := range l.members {
		if !m.DataType.Valid() {
			return nil, fmt.Errorf("attribute %q: %w: %s", m.Name, ErrInvalidDataType, m.DataType)
		}
		if _, dup := l.index[m.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAttribute, m.Name)
		}
		if m.Offset < 0 {
			return nil, fmt.Errorf("attribute %q: negative offset %d", m.Name, m.Offset)
		}
		l.index[m.Name] = i
		if e := m.Offset + m.Size(); e > end {
			end = e
		}
	}

	// Overlap check on members sorted by offset
	sorted := make([]Member, len(l.members))
	copy(sorted, l.members)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })
	for i := 1; i < len(sorted); i++ {
		prev := sorted[i-1]
		if prev.Offset+prev.Size() > sorted[i].Offset {
			return nil, fmt.Errorf("%w: %q and %q", ErrOverlappingAttribute, prev.Name, sorted[i].Name)
		}
	}

	if size == 0 {
		size = end
	}
	if size < end {
		return nil, fmt.Errorf("record size %d smaller than attribute extent %d", size, end)
	}
	l.size = size
	return l, nil
}

// Size returns the width of one record in bytes.
func (l *Layout) Size() int {
	return l.size
}

// Len returns the number of attributes.
func (l *Layout) Len() int {
	return len(l.members)
}

// Members returns the attributes in declaration order.
func (l *Layout) Members() []Member {
	out := make([]Member, len(l.members))
	copy(out, l.members)
	return out
}

// Member looks up an attribute by name.
func (l *Layout) Member(name string) (Member, bool) {
	i, ok := l.index[name]
	if !ok {
		return Member{}, false
	}
	return l.members[i], true
}

// Has reports whether the layout declares an attribute with the given name.
func (l *Layout) Has(name string) bool {
	_, ok := l.index[name]
	return ok
}

// Equal reports whether both layouts declare the same attributes with the
// same datatypes at the same offsets, in the same order, with the same size.
func (l *Layout) Equal(other *Layout) bool {
	if l == other {
		return true
	}
	if l == nil || other == nil {
		return false
	}
	if l.size != other.size || len(l.members) != len(other.members) {
		return false
	}
	for i, m := range l.members {
		if m != other.members[i] {
			return false
		}
	}
	return true
}

func (l *Layout) String() string {
	var sb strings.Builder
	sb.WriteString("Layout{")
	for i, m := range l.members {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s:%s@%d", m.Name, m.DataType, m.Offset)
	}
	fmt.Fprintf(&sb, "; size=%d}", l.size)
	return sb.String()
}
