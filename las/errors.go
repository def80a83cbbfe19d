package las

import "errors"

// Common errors
var (
	ErrFormat             = errors.New("malformed LAS file")
	ErrUnsupportedFeature = errors.New("unsupported feature")
	ErrNegativeSeek       = errors.New("seek to negative point index")
	ErrClosed             = errors.New("reader is closed")
)
