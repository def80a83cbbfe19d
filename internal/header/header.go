package header

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	binpkg "github.com/robert-malhotra/go-las/internal/binary"
)

// Signature is the four-byte file signature at offset 0.
var Signature = [4]byte{'L', 'A', 'S', 'F'}

// Errors
var (
	ErrNotLAS             = errors.New("not a LAS file: signature not found")
	ErrUnsupportedVersion = errors.New("unsupported LAS version")
	ErrInvalidHeader      = errors.New("invalid public header block")
)

// Minimum public header block sizes per minor version.
const (
	Size10 = 227
	Size13 = 235
	Size14 = 375
)

const (
	compressedBit  = 0x80
	formatIDMask   = 0x3F
	legacyReturns  = 5
	extendedReturn = 15
)

// Header is the LAS public header block.
type Header struct {
	FileSourceID   uint16
	GlobalEncoding uint16
	ProjectID      uuid.UUID

	VersionMajor uint8
	VersionMinor uint8

	SystemIdentifier   string
	GeneratingSoftware string
	CreationDay        uint16
	CreationYear       uint16

	HeaderSize        uint16
	OffsetToPointData uint32
	NumberOfVLRs      uint32

	// PointFormatID is the format id with the compression bits masked off.
	PointFormatID     uint8
	Compressed        bool
	PointRecordLength uint16

	// PointCount is the 64-bit count for 1.4 files when set, otherwise the
	// legacy 32-bit count.
	PointCount     uint64
	PointsByReturn [15]uint64

	Scale  [3]float64
	Offset [3]float64
	Min    [3]float64
	Max    [3]float64

	// v1.3+
	WaveformDataStart uint64

	// v1.4+
	EVLRStart uint64
	EVLRCount uint32
}

// Version returns the version as "major.minor".
func (h *Header) Version() string {
	return fmt.Sprintf("%d.%d", h.VersionMajor, h.VersionMinor)
}

// MinSize returns the smallest legal header size for the header's version.
func (h *Header) MinSize() int {
	switch {
	case h.VersionMinor >= 4:
		return Size14
	case h.VersionMinor == 3:
		return Size13
	default:
		return Size10
	}
}

// Read parses the public header block at the start of r.
func Read(r io.ReaderAt) (*Header, error) {
	br := binpkg.NewReader(r)

	sig, err := br.ReadBytes(4)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, binpkg.ErrShortRead) {
			return nil, ErrNotLAS
		}
		return nil, fmt.Errorf("reading signature: %w", err)
	}
	if [4]byte(sig) != Signature {
		return nil, ErrNotLAS
	}

	h := &Header{}
	if err := h.readFixed(br); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}

	if h.VersionMajor != 1 || h.VersionMinor > 4 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, h.Version())
	}
	if int(h.HeaderSize) < h.MinSize() {
		return nil, fmt.Errorf("%w: header size %d below %d for version %s",
			ErrInvalidHeader, h.HeaderSize, h.MinSize(), h.Version())
	}
	if h.OffsetToPointData < uint32(h.HeaderSize) {
		return nil, fmt.Errorf("%w: point data offset %d inside header", ErrInvalidHeader, h.OffsetToPointData)
	}

	if h.VersionMinor >= 3 {
		if h.WaveformDataStart, err = br.ReadUint64(); err != nil {
			return nil, fmt.Errorf("%w: reading waveform start: %w", ErrInvalidHeader, err)
		}
	}
	if h.VersionMinor >= 4 {
		if err := h.readExtended(br); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
		}
	}
	return h, nil
}

// readFixed reads the fields shared by every version, up to and including the
// bounding box.
func (h *Header) readFixed(br *binpkg.Reader) error {
	var err error
	if h.FileSourceID, err = br.ReadUint16(); err != nil {
		return err
	}
	if h.GlobalEncoding, err = br.ReadUint16(); err != nil {
		return err
	}
	guid, err := br.ReadBytes(16)
	if err != nil {
		return err
	}
	h.ProjectID = guidToUUID(guid)

	if h.VersionMajor, err = br.ReadUint8(); err != nil {
		return err
	}
	if h.VersionMinor, err = br.ReadUint8(); err != nil {
		return err
	}
	if h.SystemIdentifier, err = br.ReadString(32); err != nil {
		return err
	}
	if h.GeneratingSoftware, err = br.ReadString(32); err != nil {
		return err
	}
	if h.CreationDay, err = br.ReadUint16(); err != nil {
		return err
	}
	if h.CreationYear, err = br.ReadUint16(); err != nil {
		return err
	}
	if h.HeaderSize, err = br.ReadUint16(); err != nil {
		return err
	}
	if h.OffsetToPointData, err = br.ReadUint32(); err != nil {
		return err
	}
	if h.NumberOfVLRs, err = br.ReadUint32(); err != nil {
		return err
	}

	formatByte, err := br.ReadUint8()
	if err != nil {
		return err
	}
	h.Compressed = formatByte&compressedBit != 0
	h.PointFormatID = formatByte & formatIDMask

	if h.PointRecordLength, err = br.ReadUint16(); err != nil {
		return err
	}

	legacyCount, err := br.ReadUint32()
	if err != nil {
		return err
	}
	h.PointCount = uint64(legacyCount)
	for i := 0; i < legacyReturns; i++ {
		v, err := br.ReadUint32()
		if err != nil {
			return err
		}
		h.PointsByReturn[i] = uint64(v)
	}

	for _, dst := range []*[3]float64{&h.Scale, &h.Offset} {
		for axis := range dst {
			if dst[axis], err = br.ReadFloat64(); err != nil {
				return err
			}
		}
	}
	// Bounds are stored max x, min x, max y, min y, max z, min z.
	for axis := 0; axis < 3; axis++ {
		if h.Max[axis], err = br.ReadFloat64(); err != nil {
			return err
		}
		if h.Min[axis], err = br.ReadFloat64(); err != nil {
			return err
		}
	}
	return nil
}

func (h *Header) readExtended(br *binpkg.Reader) error {
	var err error
	if h.EVLRStart, err = br.ReadUint64(); err != nil {
		return err
	}
	if h.EVLRCount, err = br.ReadUint32(); err != nil {
		return err
	}
	count, err := br.ReadUint64()
	if err != nil {
		return err
	}
	var byReturn [extendedReturn]uint64
	for i := range byReturn {
		if byReturn[i], err = br.ReadUint64(); err != nil {
			return err
		}
	}
	// Writers fill the 64-bit fields and may zero the legacy ones.
	if count != 0 {
		h.PointCount = count
		h.PointsByReturn = byReturn
	}
	return nil
}

// guidToUUID converts the on-disk GUID (first three groups little-endian)
// into RFC 4122 byte order.
func guidToUUID(b []byte) uuid.UUID {
	var u uuid.UUID
	u[0], u[1], u[2], u[3] = b[3], b[2], b[1], b[0]
	u[4], u[5] = b[5], b[4]
	u[6], u[7] = b[7], b[6]
	copy(u[8:], b[8:16])
	return u
}

// uuidToGUID is the inverse of guidToUUID.
func uuidToGUID(u uuid.UUID) []byte {
	b := make([]byte, 16)
	b[0], b[1], b[2], b[3] = u[3], u[2], u[1], u[0]
	b[4], b[5] = u[5], u[4]
	b[6], b[7] = u[7], u[6]
	copy(b[8:], u[8:])
	return b
}
