// Package format describes the LAS point data record formats.
package format

import (
	"errors"
	"fmt"
)

// ErrUnknownFormat is returned for point format ids outside 0..10.
var ErrUnknownFormat = errors.New("unknown point format")

// MaxID is the highest point format id defined by LAS 1.4.
const MaxID = 10

// Descriptor lists the optional field groups of a point format and the
// bit packing its records use.
type Descriptor struct {
	ID          uint8
	HasGPSTime  bool
	HasColor    bool
	HasNIR      bool
	HasWaveform bool

	// IsExtended selects the two-byte bit packing and the
	// user-data-before-scan-angle field order of formats 6 to 10.
	IsExtended bool
}

// descriptors is indexed by format id.
var descriptors = [MaxID + 1]Descriptor{
	{ID: 0},
	{ID: 1, HasGPSTime: true},
	{ID: 2, HasColor: true},
	{ID: 3, HasGPSTime: true, HasColor: true},
	{ID: 4, HasGPSTime: true, HasWaveform: true},
	{ID: 5, HasGPSTime: true, HasColor: true, HasWaveform: true},
	{ID: 6, HasGPSTime: true, IsExtended: true},
	{ID: 7, HasGPSTime: true, HasColor: true, IsExtended: true},
	{ID: 8, HasGPSTime: true, HasColor: true, HasNIR: true, IsExtended: true},
	{ID: 9, HasGPSTime: true, HasWaveform: true, IsExtended: true},
	{ID: 10, HasGPSTime: true, HasColor: true, HasNIR: true, HasWaveform: true, IsExtended: true},
}

// Field widths on disk, in bytes.
const (
	PositionSize       = 12
	IntensitySize      = 2
	ClassificationSize = 1
	UserDataSize       = 1
	PointSourceIDSize  = 2
	GPSTimeSize        = 8
	ColorSize          = 6
	NIRSize            = 2
	WaveformSize       = 29
)

// New returns the descriptor of point format id.
func New(id uint8) (Descriptor, error) {
	if int(id) > MaxID {
		return Descriptor{}, fmt.Errorf("%w: %d", ErrUnknownFormat, id)
	}
	return descriptors[id], nil
}

// BitFieldSize returns the width of the packed return/flag byte(s).
func (d Descriptor) BitFieldSize() int {
	if d.IsExtended {
		return 2
	}
	return 1
}

// ScanAngleSize returns the width of the scan angle field: a one-byte rank
// for regular formats, a two-byte scaled angle for extended formats.
func (d Descriptor) ScanAngleSize() int {
	if d.IsExtended {
		return 2
	}
	return 1
}

// RecordLength returns the minimum record length of the format in bytes.
// Files may declare longer records carrying extra bytes.
func (d Descriptor) RecordLength() int {
	n := PositionSize + IntensitySize + d.BitFieldSize() + ClassificationSize +
		d.ScanAngleSize() + UserDataSize + PointSourceIDSize
	if d.HasGPSTime {
		n += GPSTimeSize
	}
	if d.HasColor {
		n += ColorSize
	}
	if d.HasNIR {
		n += NIRSize
	}
	if d.HasWaveform {
		n += WaveformSize
	}
	return n
}

func (d Descriptor) String() string {
	return fmt.Sprintf("format %d", d.ID)
}
