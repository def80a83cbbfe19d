// Package laszip reads the compression parameters and chunk layout of LAZ
// streams.
//
// A LAZ file is a LAS file whose point format byte has bit 7 set and whose
// VLRs include the LASzip record (user id "laszip encoded", record id 22204).
// That record's payload is a [Parameters] block naming the compressor, the
// coder, the chunk size and the items that make up one point record.
//
// # Chunks
//
// Point data starts with the absolute offset of the chunk table, followed by
// the compressed chunks back to back. The table lists each chunk's byte count,
// and its point count when the chunk size is [VariableChunkSize]. Every chunk
// decompresses independently, which is what makes seeking possible.
//
// # Decompressors
//
// [Decompressor] is the contract the point reader consumes. This package
// ships [BlockDecompressor] for chunks coded with a block codec (coders 1 to
// 4). The arithmetic coder (coder 0) is supplied by callers through a
// [Factory].
//
// # Compatibility
//
// Standard LASzip writers only emit the arithmetic coder. Coders 1 to 4 and
// the shuffle option are a private block-coded dialect: LASzip, LAStools and
// PDAL cannot read files that use them, and such files should not be passed
// off as standard LAZ. Files produced by standard tools are readable only
// through a Factory that implements the arithmetic coder.
package laszip
