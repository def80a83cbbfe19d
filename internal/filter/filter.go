package filter

import (
	"errors"
	"fmt"
)

// Coder ids as stored in the LASzip VLR coder field. Coder 0 is the
// arithmetic coder, which is not a block codec and is supplied externally.
const (
	CoderArithmetic uint16 = 0
	CoderDeflate    uint16 = 1
	CoderZstd       uint16 = 2
	CoderLZ4        uint16 = 3
	CoderS2         uint16 = 4

	// ShuffleID identifies the byte shuffle stage in a pipeline. It is not
	// a coder id.
	ShuffleID uint16 = 0x100
)

// ErrUnsupportedCoder is returned for coder ids without a registered codec.
var ErrUnsupportedCoder = errors.New("unsupported coder")

// Filter is the interface implemented by all chunk filters.
type Filter interface {
	// ID returns the filter identifier.
	ID() uint16

	// Decode transforms encoded data to decoded form.
	Decode(input []byte) ([]byte, error)

	// Encode is the inverse of Decode.
	Encode(input []byte) ([]byte, error)
}

// Registry maps coder ids to filter constructors.
var Registry = map[uint16]func() Filter{
	CoderDeflate: func() Filter { return NewDeflate(DefaultDeflateLevel) },
	CoderZstd:    func() Filter { return NewZstd() },
	CoderLZ4:     func() Filter { return NewLZ4() },
	CoderS2:      func() Filter { return NewS2() },
}

// coderNames maps known coder ids to their names for better error messages.
var coderNames = map[uint16]string{
	CoderArithmetic: "arithmetic",
	CoderDeflate:    "deflate",
	CoderZstd:       "zstd",
	CoderLZ4:        "lz4",
	CoderS2:         "s2",
}

// CoderName returns a display name for a coder id.
func CoderName(id uint16) string {
	if name, ok := coderNames[id]; ok {
		return name
	}
	return fmt.Sprintf("coder(%d)", id)
}

// New creates the block codec registered for a coder id.
func New(coder uint16) (Filter, error) {
	constructor, ok := Registry[coder]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCoder, CoderName(coder))
	}
	return constructor(), nil
}
