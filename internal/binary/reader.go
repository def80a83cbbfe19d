// Package binary provides positioned little-endian reads and writes used to
// parse LAS header blocks, variable length records and chunk tables.
package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"sync"
)

// ErrShortRead is returned when fewer bytes than requested are available.
var ErrShortRead = errors.New("short read")

// Reader reads little-endian values from an io.ReaderAt at a tracked
// position. LAS stores every multi-byte field little-endian.
type Reader struct {
	r   io.ReaderAt
	pos int64
}

// NewReader creates a reader positioned at offset 0.
func NewReader(r io.ReaderAt) *Reader {
	return &Reader{r: r}
}

// At returns a new reader positioned at the given offset.
// The new reader shares the underlying io.ReaderAt but has independent position.
func (r *Reader) At(offset int64) *Reader {
	return &Reader{r: r.r, pos: offset}
}

// Pos returns the current read position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// ReadFull fills buf from the current position.
func (r *Reader) ReadFull(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	n, err := r.r.ReadAt(buf, r.pos)
	if n == len(buf) {
		// io.ReaderAt may return io.EOF alongside a complete read.
		err = nil
	} else if err == nil || err == io.EOF {
		err = ErrShortRead
	}
	if err != nil {
		return err
	}
	r.pos += int64(n)
	return nil
}

// ReadBytes reads exactly n bytes from the current position.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if err := r.ReadFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	buf, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint16 reads an unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	buf, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// ReadUint32 reads an unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// ReadUint64 reads an unsigned 64-bit integer.
func (r *Reader) ReadUint64() (uint64, error) {
	buf, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

// ReadInt64 reads a signed 64-bit integer.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadFloat64 reads an IEEE 754 double.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadString reads a fixed-width field of n bytes and returns its contents up
// to the first NUL.
func (r *Reader) ReadString(n int) (string, error) {
	buf, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf), nil
}

// ReadSection reads n bytes from the current position. The buffer grows as
// data arrives, so a length read from the file cannot allocate more than the
// source holds. A source shorter than n fails with ErrShortRead.
func (r *Reader) ReadSection(n uint64) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if n > uint64(math.MaxInt64-r.pos) {
		return nil, ErrShortRead
	}
	data, err := io.ReadAll(io.NewSectionReader(r.r, r.pos, int64(n)))
	if errors.Is(err, io.ErrUnexpectedEOF) || (err == nil && uint64(len(data)) != n) {
		return nil, ErrShortRead
	}
	if err != nil {
		return nil, err
	}
	r.pos += int64(n)
	return data, nil
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int64) {
	r.pos += n
}

// Peek reads n bytes without advancing the position.
func (r *Reader) Peek(n int) ([]byte, error) {
	pos := r.pos
	buf, err := r.ReadBytes(n)
	r.pos = pos
	return buf, err
}

// SeekerReaderAt adapts an io.ReadSeeker to io.ReaderAt. Calls are serialised
// and each one moves the underlying stream position.
type SeekerReaderAt struct {
	mu sync.Mutex
	rs io.ReadSeeker
}

// NewSeekerReaderAt wraps rs. If rs already implements io.ReaderAt it is used
// by the callers directly; see AsReaderAt.
func NewSeekerReaderAt(rs io.ReadSeeker) *SeekerReaderAt {
	return &SeekerReaderAt{rs: rs}
}

// ReadAt implements io.ReaderAt.
func (s *SeekerReaderAt) ReadAt(p []byte, off int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.rs.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}
	return io.ReadFull(s.rs, p)
}

// AsReaderAt returns rs as an io.ReaderAt, wrapping it only when needed.
func AsReaderAt(rs io.ReadSeeker) io.ReaderAt {
	if ra, ok := rs.(io.ReaderAt); ok {
		return ra
	}
	return NewSeekerReaderAt(rs)
}
