package filter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// LZ4 implements the lz4 block coder using the lz4 frame format.
type LZ4 struct {
	level lz4.CompressionLevel
}

// NewLZ4 creates an lz4 coder.
func NewLZ4() *LZ4 {
	return &LZ4{level: lz4.Fast}
}

func (f *LZ4) ID() uint16 {
	return CoderLZ4
}

func (f *LZ4) Decode(input []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(input))
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	return out, nil
}

func (f *LZ4) Encode(input []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if err := w.Apply(lz4.CompressionLevelOption(f.level)); err != nil {
		return nil, fmt.Errorf("lz4 writer: %w", err)
	}
	if _, err := w.Write(input); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	return buf.Bytes(), nil
}
