package header

import (
	"errors"
	"fmt"
	"io"

	binpkg "github.com/robert-malhotra/go-las/internal/binary"
)

// VLR header sizes.
const (
	VLRHeaderSize  = 54
	EVLRHeaderSize = 60
)

// LASzip VLR identity.
const (
	LASzipUserID   = "laszip encoded"
	LASzipRecordID = 22204
)

// VLR is a variable length record. Extended records (EVLRs) use the same type.
type VLR struct {
	UserID      string
	RecordID    uint16
	Description string
	Data        []byte

	// Extended is set for records read from the EVLR area.
	Extended bool
}

// IsLASzipVLR reports whether a record with the given identity carries the
// LASzip compression parameters.
func IsLASzipVLR(userID string, recordID uint16) bool {
	return userID == LASzipUserID && recordID == LASzipRecordID
}

// ReadVLRs reads the header's variable length records, followed by any
// extended records of a 1.4 file.
func ReadVLRs(r io.ReaderAt, h *Header) ([]VLR, error) {
	var vlrs []VLR

	br := binpkg.NewReader(r).At(int64(h.HeaderSize))
	for i := uint32(0); i < h.NumberOfVLRs; i++ {
		v, err := readVLR(br, false)
		if err != nil {
			return nil, fmt.Errorf("reading VLR %d: %w", i, err)
		}
		if br.Pos() > int64(h.OffsetToPointData) {
			return nil, fmt.Errorf("%w: VLR %d extends past point data", ErrInvalidHeader, i)
		}
		vlrs = append(vlrs, v)
	}

	if h.EVLRCount > 0 && h.EVLRStart > 0 {
		br = br.At(int64(h.EVLRStart))
		for i := uint32(0); i < h.EVLRCount; i++ {
			v, err := readVLR(br, true)
			if err != nil {
				return nil, fmt.Errorf("reading EVLR %d: %w", i, err)
			}
			vlrs = append(vlrs, v)
		}
	}
	return vlrs, nil
}

func readVLR(br *binpkg.Reader, extended bool) (VLR, error) {
	v := VLR{Extended: extended}
	br.Skip(2) // reserved

	var err error
	if v.UserID, err = br.ReadString(16); err != nil {
		return v, err
	}
	if v.RecordID, err = br.ReadUint16(); err != nil {
		return v, err
	}

	var length uint64
	if extended {
		length, err = br.ReadUint64()
	} else {
		var l16 uint16
		l16, err = br.ReadUint16()
		length = uint64(l16)
	}
	if err != nil {
		return v, err
	}

	if v.Description, err = br.ReadString(32); err != nil {
		return v, err
	}
	if v.Data, err = br.ReadSection(length); err != nil {
		if errors.Is(err, binpkg.ErrShortRead) {
			return v, fmt.Errorf("%w: %d byte payload runs past end of file", ErrInvalidHeader, length)
		}
		return v, fmt.Errorf("reading %d byte payload: %w", length, err)
	}
	return v, nil
}

// FindLASzipVLR returns the first LASzip record in vlrs.
func FindLASzipVLR(vlrs []VLR) (VLR, bool) {
	for _, v := range vlrs {
		if IsLASzipVLR(v.UserID, v.RecordID) {
			return v, true
		}
	}
	return VLR{}, false
}
