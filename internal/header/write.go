package header

import (
	binpkg "github.com/robert-malhotra/go-las/internal/binary"
)

// Write writes the public header block at the writer's position, padding to
// HeaderSize. The legacy point count fields are filled when the count fits.
func (h *Header) Write(w *binpkg.Writer) error {
	start := w.Pos()

	if err := w.WriteBytes(Signature[:]); err != nil {
		return err
	}
	if err := w.WriteUint16(h.FileSourceID); err != nil {
		return err
	}
	if err := w.WriteUint16(h.GlobalEncoding); err != nil {
		return err
	}
	if err := w.WriteBytes(uuidToGUID(h.ProjectID)); err != nil {
		return err
	}
	if err := w.WriteUint8(h.VersionMajor); err != nil {
		return err
	}
	if err := w.WriteUint8(h.VersionMinor); err != nil {
		return err
	}
	if err := w.WriteString(h.SystemIdentifier, 32); err != nil {
		return err
	}
	if err := w.WriteString(h.GeneratingSoftware, 32); err != nil {
		return err
	}
	if err := w.WriteUint16(h.CreationDay); err != nil {
		return err
	}
	if err := w.WriteUint16(h.CreationYear); err != nil {
		return err
	}
	if err := w.WriteUint16(h.HeaderSize); err != nil {
		return err
	}
	if err := w.WriteUint32(h.OffsetToPointData); err != nil {
		return err
	}
	if err := w.WriteUint32(h.NumberOfVLRs); err != nil {
		return err
	}

	formatByte := h.PointFormatID
	if h.Compressed {
		formatByte |= compressedBit
	}
	if err := w.WriteUint8(formatByte); err != nil {
		return err
	}
	if err := w.WriteUint16(h.PointRecordLength); err != nil {
		return err
	}

	legacy := h.PointCount <= 0xFFFFFFFF && h.PointFormatID < 6
	if legacy {
		if err := w.WriteUint32(uint32(h.PointCount)); err != nil {
			return err
		}
		for i := 0; i < legacyReturns; i++ {
			if err := w.WriteUint32(uint32(h.PointsByReturn[i])); err != nil {
				return err
			}
		}
	} else {
		if err := w.WriteZeros(4 * (1 + legacyReturns)); err != nil {
			return err
		}
	}

	for _, src := range [][3]float64{h.Scale, h.Offset} {
		for _, v := range src {
			if err := w.WriteFloat64(v); err != nil {
				return err
			}
		}
	}
	for axis := 0; axis < 3; axis++ {
		if err := w.WriteFloat64(h.Max[axis]); err != nil {
			return err
		}
		if err := w.WriteFloat64(h.Min[axis]); err != nil {
			return err
		}
	}

	if h.VersionMinor >= 3 {
		if err := w.WriteUint64(h.WaveformDataStart); err != nil {
			return err
		}
	}
	if h.VersionMinor >= 4 {
		if err := w.WriteUint64(h.EVLRStart); err != nil {
			return err
		}
		if err := w.WriteUint32(h.EVLRCount); err != nil {
			return err
		}
		if err := w.WriteUint64(h.PointCount); err != nil {
			return err
		}
		for _, v := range h.PointsByReturn {
			if err := w.WriteUint64(v); err != nil {
				return err
			}
		}
	}

	return w.WriteZeros(int(int64(h.HeaderSize) - (w.Pos() - start)))
}

// WriteVLR writes v at the writer's position using the regular or extended
// record header according to v.Extended.
func WriteVLR(w *binpkg.Writer, v VLR) error {
	if err := w.WriteUint16(0); err != nil {
		return err
	}
	if err := w.WriteString(v.UserID, 16); err != nil {
		return err
	}
	if err := w.WriteUint16(v.RecordID); err != nil {
		return err
	}
	if v.Extended {
		if err := w.WriteUint64(uint64(len(v.Data))); err != nil {
			return err
		}
	} else if err := w.WriteUint16(uint16(len(v.Data))); err != nil {
		return err
	}
	if err := w.WriteString(v.Description, 32); err != nil {
		return err
	}
	return w.WriteBytes(v.Data)
}
