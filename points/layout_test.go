package points

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLayoutPacks(t *testing.T) {
	l, err := NewLayout(Position3D, Intensity, Classification, GPSTime)
	require.NoError(t, err)

	assert.Equal(t, 24+2+1+8, l.Size())
	assert.Equal(t, 4, l.Len())

	m, ok := l.Member("GPSTime")
	require.True(t, ok)
	assert.Equal(t, 27, m.Offset)
	assert.Equal(t, F64, m.DataType)
	assert.False(t, l.Has("NIR"))
}

func TestNewLayoutErrors(t *testing.T) {
	_, err := NewLayout(Intensity, Intensity.WithDataType(F32))
	assert.ErrorIs(t, err, ErrDuplicateAttribute)

	_, err = NewLayout(Attribute{Name: "Bad", DataType: 0})
	assert.ErrorIs(t, err, ErrInvalidDataType)

	_, err = NewLayoutWithOffsets([]Member{
		{Attribute: GPSTime, Offset: 0},
		{Attribute: Intensity, Offset: 6},
	}, 0)
	assert.ErrorIs(t, err, ErrOverlappingAttribute)

	_, err = NewLayoutWithOffsets([]Member{{Attribute: GPSTime, Offset: 0}}, 4)
	assert.Error(t, err)

	_, err = NewLayoutWithOffsets([]Member{{Attribute: GPSTime, Offset: -1}}, 0)
	assert.Error(t, err)
}

func TestNewLayoutWithOffsetsPadding(t *testing.T) {
	l, err := NewLayoutWithOffsets([]Member{
		{Attribute: Intensity, Offset: 8},
		{Attribute: Classification, Offset: 0},
	}, 16)
	require.NoError(t, err)
	assert.Equal(t, 16, l.Size())

	// Declaration order is kept.
	members := l.Members()
	assert.Equal(t, "Intensity", members[0].Name)
	assert.Equal(t, "Classification", members[1].Name)
}

func TestLayoutEqual(t *testing.T) {
	a := MustLayout(Position3D, Intensity)
	b := MustLayout(Position3D, Intensity)
	assert.True(t, a.Equal(b))

	assert.False(t, a.Equal(MustLayout(Intensity, Position3D)))
	assert.False(t, a.Equal(MustLayout(Position3D, Intensity.WithDataType(U32))))
	assert.False(t, a.Equal(nil))

	padded, err := NewLayoutWithOffsets(a.Members(), a.Size()+4)
	require.NoError(t, err)
	assert.False(t, a.Equal(padded))
}

func TestMustLayoutPanics(t *testing.T) {
	assert.Panics(t, func() { MustLayout(Intensity, Intensity) })
}

func TestLayoutString(t *testing.T) {
	l := MustLayout(Intensity, Classification)
	assert.Equal(t, "Layout{Intensity:u16@0, Classification:u8@2; size=3}", l.String())
}

func TestLookupWellKnown(t *testing.T) {
	a, ok := LookupWellKnown("ColorRGB")
	require.True(t, ok)
	assert.Equal(t, Vec3U16, a.DataType)

	_, ok = LookupWellKnown("Colour")
	assert.False(t, ok)

	seen := make(map[string]bool)
	for _, a := range WellKnown {
		assert.False(t, seen[a.Name], "duplicate %s", a.Name)
		seen[a.Name] = true
	}
	assert.Len(t, WellKnown, 20)
}
