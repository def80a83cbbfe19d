package format

// BitAttributes holds the sub-fields packed into the return byte(s) of a
// record. ClassificationFlags and ScannerChannel are always zero for
// regular formats.
type BitAttributes struct {
	Extended            bool
	ReturnNumber        uint8
	NumberOfReturns     uint8
	ClassificationFlags uint8
	ScannerChannel      uint8
	ScanDirectionFlag   uint8
	EdgeOfFlightLine    uint8
}

// DecodeBits unpacks the bit fields at the start of b. Regular packing
// consumes one byte (3/3/1/1 bits); extended packing consumes two
// (4/4 bits, then 4/2/1/1 bits).
func DecodeBits(extended bool, b []byte) BitAttributes {
	if extended {
		lo, hi := b[0], b[1]
		return BitAttributes{
			Extended:            true,
			ReturnNumber:        lo & 0b1111,
			NumberOfReturns:     (lo >> 4) & 0b1111,
			ClassificationFlags: hi & 0b1111,
			ScannerChannel:      (hi >> 4) & 0b11,
			ScanDirectionFlag:   (hi >> 6) & 0b1,
			EdgeOfFlightLine:    (hi >> 7) & 0b1,
		}
	}
	v := b[0]
	return BitAttributes{
		ReturnNumber:      v & 0b111,
		NumberOfReturns:   (v >> 3) & 0b111,
		ScanDirectionFlag: (v >> 6) & 0b1,
		EdgeOfFlightLine:  (v >> 7) & 0b1,
	}
}

// EncodeBits packs a into dst using the packing selected by a.Extended.
// Values wider than their bit field are truncated.
func EncodeBits(a BitAttributes, dst []byte) {
	if a.Extended {
		dst[0] = a.ReturnNumber&0b1111 | (a.NumberOfReturns&0b1111)<<4
		dst[1] = a.ClassificationFlags&0b1111 | (a.ScannerChannel&0b11)<<4 |
			(a.ScanDirectionFlag&1)<<6 | (a.EdgeOfFlightLine&1)<<7
		return
	}
	dst[0] = a.ReturnNumber&0b111 | (a.NumberOfReturns&0b111)<<3 |
		(a.ScanDirectionFlag&1)<<6 | (a.EdgeOfFlightLine&1)<<7
}
