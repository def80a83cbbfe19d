package filter

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2 implements the s2 block coder.
type S2 struct{}

// NewS2 creates an s2 coder.
func NewS2() *S2 {
	return &S2{}
}

func (f *S2) ID() uint16 {
	return CoderS2
}

func (f *S2) Decode(input []byte) ([]byte, error) {
	out, err := s2.Decode(nil, input)
	if err != nil {
		return nil, fmt.Errorf("s2 decompress: %w", err)
	}
	return out, nil
}

func (f *S2) Encode(input []byte) ([]byte, error) {
	return s2.Encode(nil, input), nil
}
