// Package export writes decoded point buffers as CSV, JSON lines or Arrow IPC.
//
// Each writer is created for one layout and accepts any number of buffers
// with that layout. Vector attributes become three CSV columns named
// Name.x, Name.y and Name.z, a three element JSON array, or an Arrow fixed
// size list.
package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/robert-malhotra/go-las/points"
)

// Formats accepted by New.
const (
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatArrow = "arrow"
)

// ErrLayoutMismatch is returned when a buffer's layout differs from the
// writer's.
var ErrLayoutMismatch = errors.New("buffer layout does not match writer")

// Writer writes point buffers.
type Writer interface {
	// Write appends every point of buf.
	Write(buf *points.Interleaved) error

	// Close flushes buffered output. It does not close the underlying
	// io.Writer.
	Close() error
}

// New creates a writer for the named format.
func New(format string, w io.Writer, layout *points.Layout) (Writer, error) {
	switch format {
	case FormatCSV:
		return NewCSV(w, layout), nil
	case FormatJSON:
		return NewJSON(w, layout), nil
	case FormatArrow:
		return NewArrow(w, layout)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

func checkLayout(want *points.Layout, buf *points.Interleaved) error {
	if !want.Equal(buf.Layout()) {
		return fmt.Errorf("%w: %s vs %s", ErrLayoutMismatch, buf.Layout(), want)
	}
	return nil
}

var axes = [3]string{"x", "y", "z"}

// components splits a decoded vector value into its elements.
func components(v any) ([]any, bool) {
	switch x := v.(type) {
	case [3]uint8:
		return []any{x[0], x[1], x[2]}, true
	case [3]uint16:
		return []any{x[0], x[1], x[2]}, true
	case [3]float32:
		return []any{x[0], x[1], x[2]}, true
	case [3]float64:
		return []any{x[0], x[1], x[2]}, true
	}
	return nil, false
}
