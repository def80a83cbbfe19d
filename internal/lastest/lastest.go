// Package lastest builds synthetic LAS and LAZ files with known point values
// for tests.
package lastest

import (
	"encoding/binary"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	binpkg "github.com/robert-malhotra/go-las/internal/binary"
	"github.com/robert-malhotra/go-las/internal/format"
	"github.com/robert-malhotra/go-las/internal/header"
	"github.com/robert-malhotra/go-las/internal/laszip"
)

// ExtraByte fills record bytes beyond the format minimum.
const ExtraByte = 0xEE

// Point holds the on-disk values of one record.
type Point struct {
	Local          [3]uint32
	Intensity      uint16
	Bits           format.BitAttributes
	Classification uint8

	// ScanAngle is the rank for formats 0 to 5 and must then fit an int8.
	ScanAngle     int16
	UserData      uint8
	PointSourceID uint16
	GPSTime       float64
	RGB           [3]uint16
	NIR           uint16

	WavePacketIndex     uint8
	WaveformOffset      uint64
	WaveformSize        uint32
	ReturnPointLocation float32
	WaveformParams      [3]float32
}

// Points returns n deterministic points for format d. Values vary per point,
// and Y uses local coordinates above 1<<31.
func Points(d format.Descriptor, n int) []Point {
	pts := make([]Point, n)
	for i := range pts {
		p := &pts[i]
		p.Local = [3]uint32{uint32(1000 + 7*i), uint32(3_000_000_000 + 13*i), uint32(300 + 3*i)}
		p.Intensity = uint16(100*i + 1)
		p.Bits = format.BitAttributes{Extended: d.IsExtended}
		if d.IsExtended {
			p.Bits.ReturnNumber = uint8(i%15 + 1)
			p.Bits.NumberOfReturns = 15
			p.Bits.ClassificationFlags = uint8(i % 16)
			p.Bits.ScannerChannel = uint8(i % 4)
			p.ScanAngle = int16(300*i - 1500)
		} else {
			p.Bits.ReturnNumber = uint8(i%5 + 1)
			p.Bits.NumberOfReturns = 5
			p.ScanAngle = int16(3*i - 15)
		}
		p.Bits.ScanDirectionFlag = uint8(i % 2)
		p.Bits.EdgeOfFlightLine = uint8(i / 2 % 2)
		p.Classification = uint8(2 + i%5)
		p.UserData = uint8(11 * i)
		p.PointSourceID = uint16(500 + i)
		if d.HasGPSTime {
			p.GPSTime = 1000.25 + 0.5*float64(i)
		}
		if d.HasColor {
			p.RGB = [3]uint16{uint16(256 * i), uint16(512*i + 1), uint16(65535 - i)}
		}
		if d.HasNIR {
			p.NIR = uint16(4000 + i)
		}
		if d.HasWaveform {
			p.WavePacketIndex = uint8(i%3 + 1)
			p.WaveformOffset = 60000 + 1024*uint64(i)
			p.WaveformSize = 256
			p.ReturnPointLocation = 0.5 * float32(i)
			p.WaveformParams = [3]float32{0.25 * float32(i), -0.5, 1.5}
		}
	}
	return pts
}

// World returns the world coordinate of p.
func World(p Point, scale, offset [3]float64) [3]float64 {
	var w [3]float64
	for axis := range w {
		w[axis] = float64(p.Local[axis])*scale[axis] + offset[axis]
	}
	return w
}

// EncodeRecord writes p into rec in the on-disk layout of d. Bytes past the
// format minimum are set to ExtraByte.
func EncodeRecord(d format.Descriptor, p Point, rec []byte) {
	le := binary.LittleEndian
	off := 0
	put16 := func(v uint16) { le.PutUint16(rec[off:], v); off += 2 }
	put32 := func(v uint32) { le.PutUint32(rec[off:], v); off += 4 }
	put64 := func(v uint64) { le.PutUint64(rec[off:], v); off += 8 }
	put8 := func(v uint8) { rec[off] = v; off++ }

	for _, v := range p.Local {
		put32(v)
	}
	put16(p.Intensity)
	format.EncodeBits(p.Bits, rec[off:])
	off += d.BitFieldSize()
	put8(p.Classification)
	if d.IsExtended {
		put8(p.UserData)
		put16(uint16(p.ScanAngle))
	} else {
		put8(uint8(int8(p.ScanAngle)))
		put8(p.UserData)
	}
	put16(p.PointSourceID)
	if d.HasGPSTime {
		put64(math.Float64bits(p.GPSTime))
	}
	if d.HasColor {
		for _, c := range p.RGB {
			put16(c)
		}
	}
	if d.HasNIR {
		put16(p.NIR)
	}
	if d.HasWaveform {
		put8(p.WavePacketIndex)
		put64(p.WaveformOffset)
		put32(p.WaveformSize)
		put32(math.Float32bits(p.ReturnPointLocation))
		for _, v := range p.WaveformParams {
			put32(math.Float32bits(v))
		}
	}
	for ; off < len(rec); off++ {
		rec[off] = ExtraByte
	}
}

// Records encodes pts back to back with the given record length.
func Records(d format.Descriptor, pts []Point, recordLength int) []byte {
	raw := make([]byte, len(pts)*recordLength)
	for i, p := range pts {
		EncodeRecord(d, p, raw[i*recordLength:(i+1)*recordLength])
	}
	return raw
}

// File describes a synthetic LAS or LAZ file.
type File struct {
	Format uint8
	Points []Point

	// RecordLength defaults to the format minimum.
	RecordLength int
	Scale        [3]float64
	Offset       [3]float64

	// Compressed writes a block-coded LAZ stream.
	Compressed bool
	Coder      uint16
	Shuffle    bool

	// ChunkSize is the fixed chunk size in points. When ChunkSizes is set
	// the table is written as variable-size instead.
	ChunkSize  uint32
	ChunkSizes []uint64

	// OmitLASzipVLR leaves out the compression parameters of a LAZ file.
	OmitLASzipVLR bool
}

// Descriptor returns the format descriptor of f.
func (f File) Descriptor() format.Descriptor {
	d, err := format.New(f.Format)
	if err != nil {
		panic(err)
	}
	return d
}

// Header returns the public header block Bytes writes.
func (f File) Header() *header.Header {
	d := f.Descriptor()
	h := &header.Header{
		VersionMajor:       1,
		VersionMinor:       2,
		SystemIdentifier:   "lastest",
		GeneratingSoftware: "go-las fixtures",
		PointFormatID:      f.Format,
		Compressed:         f.Compressed,
		PointRecordLength:  uint16(f.recordLength()),
		PointCount:         uint64(len(f.Points)),
		Scale:              f.Scale,
		Offset:             f.Offset,
	}
	switch {
	case d.IsExtended:
		h.VersionMinor = 4
		h.HeaderSize = header.Size14
	case d.HasWaveform:
		h.VersionMinor = 3
		h.HeaderSize = header.Size13
	default:
		h.HeaderSize = header.Size10
	}
	for _, p := range f.Points {
		if r := p.Bits.ReturnNumber; r >= 1 && int(r) <= len(h.PointsByReturn) {
			h.PointsByReturn[r-1]++
		}
	}
	return h
}

// Parameters returns the LASzip parameters of a compressed file.
func (f File) Parameters() *laszip.Parameters {
	p := &laszip.Parameters{
		Compressor:           laszip.CompressorPointWiseChunked,
		Coder:                f.Coder,
		VersionMajor:         3,
		VersionMinor:         4,
		ChunkSize:            f.ChunkSize,
		NumberOfSpecialEVLRs: -1,
		OffsetToSpecialEVLRs: -1,
		Items:                laszip.Items(f.Format, f.recordLength()),
	}
	if f.Shuffle {
		p.Options |= laszip.OptionShuffle
	}
	if p.ChunkSize == 0 {
		p.ChunkSize = DefaultChunkSize
	}
	if f.ChunkSizes != nil {
		p.ChunkSize = laszip.VariableChunkSize
	}
	return p
}

func (f File) recordLength() int {
	if f.RecordLength > 0 {
		return f.RecordLength
	}
	return f.Descriptor().RecordLength()
}

// Bytes encodes the file.
func (f File) Bytes() ([]byte, error) {
	h := f.Header()
	if f.Scale == [3]float64{} {
		return nil, fmt.Errorf("scale must be set")
	}

	var vlrs []header.VLR
	if f.Compressed && !f.OmitLASzipVLR {
		vlrs = append(vlrs, header.VLR{
			UserID:      header.LASzipUserID,
			RecordID:    header.LASzipRecordID,
			Description: "lastest block coder",
			Data:        f.Parameters().Encode(),
		})
	}
	h.NumberOfVLRs = uint32(len(vlrs))
	h.OffsetToPointData = uint32(h.HeaderSize)
	for _, v := range vlrs {
		h.OffsetToPointData += uint32(header.VLRHeaderSize + len(v.Data))
	}

	var buf binpkg.Buffer
	w := binpkg.NewWriter(&buf)
	if err := h.Write(w); err != nil {
		return nil, err
	}
	for _, v := range vlrs {
		if err := header.WriteVLR(w, v); err != nil {
			return nil, err
		}
	}

	raw := Records(f.Descriptor(), f.Points, f.recordLength())
	if !f.Compressed {
		if err := w.WriteBytes(raw); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	p := f.Parameters()
	sizes := f.ChunkSizes
	if sizes == nil {
		sizes = laszip.ChunkSizes(uint64(len(f.Points)), uint64(p.ChunkSize))
	}
	if _, err := laszip.WriteChunks(w, raw, f.recordLength(), p, sizes); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Build encodes f and fails the test on error.
func Build(t testing.TB, f File) []byte {
	t.Helper()
	data, err := f.Bytes()
	require.NoError(t, err)
	return data
}

// DefaultChunkSize is the LAZ chunk size used when File.ChunkSize is 0.
const DefaultChunkSize = 50000

// DefaultScale and DefaultOffset are the transform most fixtures use.
var (
	DefaultScale  = [3]float64{0.01, 0.01, 0.001}
	DefaultOffset = [3]float64{500000, 4000000, -50}
)

// Simple returns an uncompressed file of n points in the given format with the
// default transform.
func Simple(formatID uint8, n int) File {
	d, err := format.New(formatID)
	if err != nil {
		panic(err)
	}
	return File{
		Format: formatID,
		Points: Points(d, n),
		Scale:  DefaultScale,
		Offset: DefaultOffset,
	}
}
