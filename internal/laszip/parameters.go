package laszip

import (
	"bytes"
	"errors"
	"fmt"

	binpkg "github.com/robert-malhotra/go-las/internal/binary"
)

// Compressor values.
const (
	CompressorNone             uint16 = 0
	CompressorPointWise        uint16 = 1
	CompressorPointWiseChunked uint16 = 2
	CompressorLayeredChunked   uint16 = 3
)

// Item types.
const (
	ItemByte       uint16 = 0
	ItemPoint10    uint16 = 6
	ItemGPSTime11  uint16 = 7
	ItemRGB12      uint16 = 8
	ItemWavepacket uint16 = 9
	ItemPoint14    uint16 = 10
	ItemRGB14      uint16 = 11
	ItemRGBNIR14   uint16 = 12
)

// VariableChunkSize marks chunk tables that store a point count per chunk.
const VariableChunkSize uint32 = 0xFFFFFFFF

// OptionShuffle requests byte shuffling of each chunk by record length.
const OptionShuffle uint32 = 1

// fixedSize is the size of the parameter block before the item list.
const fixedSize = 34

// ErrInvalidParameters is returned for malformed compression parameter blocks.
var ErrInvalidParameters = errors.New("invalid LASzip parameters")

// Item is one entry of the compressed record description.
type Item struct {
	Type    uint16
	Size    uint16
	Version uint16
}

// Parameters is the compression parameter block carried by the LASzip VLR.
type Parameters struct {
	Compressor   uint16
	Coder        uint16
	VersionMajor uint8
	VersionMinor uint8
	Revision     uint16
	Options      uint32
	ChunkSize    uint32

	NumberOfSpecialEVLRs int64
	OffsetToSpecialEVLRs int64

	Items []Item
}

// Parse decodes a parameter block from a LASzip VLR payload.
func Parse(data []byte) (*Parameters, error) {
	if len(data) < fixedSize {
		return nil, fmt.Errorf("%w: payload of %d bytes", ErrInvalidParameters, len(data))
	}

	br := binpkg.NewReader(bytes.NewReader(data))
	p := &Parameters{}

	var err error
	read16 := func(dst *uint16) {
		if err == nil {
			*dst, err = br.ReadUint16()
		}
	}
	read8 := func(dst *uint8) {
		if err == nil {
			*dst, err = br.ReadUint8()
		}
	}
	read32 := func(dst *uint32) {
		if err == nil {
			*dst, err = br.ReadUint32()
		}
	}
	read64 := func(dst *int64) {
		if err == nil {
			*dst, err = br.ReadInt64()
		}
	}

	read16(&p.Compressor)
	read16(&p.Coder)
	read8(&p.VersionMajor)
	read8(&p.VersionMinor)
	read16(&p.Revision)
	read32(&p.Options)
	read32(&p.ChunkSize)
	read64(&p.NumberOfSpecialEVLRs)
	read64(&p.OffsetToSpecialEVLRs)

	var numItems uint16
	read16(&numItems)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}

	if want := fixedSize + 6*int(numItems); len(data) < want {
		return nil, fmt.Errorf("%w: %d items need %d bytes, have %d",
			ErrInvalidParameters, numItems, want, len(data))
	}
	p.Items = make([]Item, numItems)
	for i := range p.Items {
		read16(&p.Items[i].Type)
		read16(&p.Items[i].Size)
		read16(&p.Items[i].Version)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}

	if p.Compressor == CompressorNone || p.Compressor > CompressorLayeredChunked {
		return nil, fmt.Errorf("%w: compressor %d", ErrInvalidParameters, p.Compressor)
	}
	return p, nil
}

// Encode serialises the parameter block into a VLR payload.
func (p *Parameters) Encode() []byte {
	var buf binpkg.Buffer
	w := binpkg.NewWriter(&buf)
	w.WriteUint16(p.Compressor)
	w.WriteUint16(p.Coder)
	w.WriteUint8(p.VersionMajor)
	w.WriteUint8(p.VersionMinor)
	w.WriteUint16(p.Revision)
	w.WriteUint32(p.Options)
	w.WriteUint32(p.ChunkSize)
	w.WriteUint64(uint64(p.NumberOfSpecialEVLRs))
	w.WriteUint64(uint64(p.OffsetToSpecialEVLRs))
	w.WriteUint16(uint16(len(p.Items)))
	for _, it := range p.Items {
		w.WriteUint16(it.Type)
		w.WriteUint16(it.Size)
		w.WriteUint16(it.Version)
	}
	return buf.Bytes()
}

// RecordLength returns the record length described by the item list.
func (p *Parameters) RecordLength() int {
	n := 0
	for _, it := range p.Items {
		n += int(it.Size)
	}
	return n
}

// VariableChunks reports whether each chunk stores its own point count.
func (p *Parameters) VariableChunks() bool {
	return p.ChunkSize == VariableChunkSize
}

// Shuffled reports whether chunks are byte shuffled before coding.
func (p *Parameters) Shuffled() bool {
	return p.Options&OptionShuffle != 0
}

// Items returns the item list describing a record of the given point format
// (0 to 3) and record length. Bytes beyond the format minimum are described
// by a trailing byte item.
func Items(formatID uint8, recordLength int) []Item {
	items := []Item{{Type: ItemPoint10, Size: 20, Version: 2}}
	used := 20
	if formatID == 1 || formatID == 3 {
		items = append(items, Item{Type: ItemGPSTime11, Size: 8, Version: 2})
		used += 8
	}
	if formatID == 2 || formatID == 3 {
		items = append(items, Item{Type: ItemRGB12, Size: 6, Version: 2})
		used += 6
	}
	if extra := recordLength - used; extra > 0 {
		items = append(items, Item{Type: ItemByte, Size: uint16(extra), Version: 2})
	}
	return items
}
