// Package filter implements the block codecs applied to LAZ chunks.
//
// A block-coded LAZ stream stores each chunk of raw point records as one
// compressed payload. The coder id in the LASzip VLR selects the codec:
//
//   - Deflate (1): zlib via [Deflate]
//   - Zstd (2): zstd via [Zstd]
//   - LZ4 (3): lz4 frames via [LZ4]
//   - S2 (4): s2 blocks via [S2]
//
// The arithmetic coder (0) is not a block codec; [New] reports
// [ErrUnsupportedCoder] for it. Ids 1 to 4 are private to this module and are
// not understood by LASzip or other LAZ tools.
//
// # Shuffle
//
// [Shuffle] transposes fixed-size records so byte j of every record is
// contiguous. It runs before the codec when encoding and after it when
// decoding.
//
// # Pipeline
//
//	p, err := filter.NewPipeline(filter.CoderZstd, true, recordLength)
//	raw, err := p.Decode(payload)
package filter
