// Package header parses the LAS public header block and variable length
// records.
//
// The public header block starts every LAS file with the signature "LASF" and
// carries the point format, record length, point count, per-axis scale and
// offset, and the offset to the first point record. Its size grows with the
// minor version:
//
//   - 1.0 to 1.2: 227 bytes
//   - 1.3: 235 bytes, adds the waveform data packet start
//   - 1.4: 375 bytes, adds EVLRs and 64-bit point counts
//
// A compressed (LAZ) file sets bit 7 of the point format byte and stores its
// compression parameters in a VLR identified by [IsLASzipVLR].
//
// # Usage
//
//	h, err := header.Read(file)
//	if errors.Is(err, header.ErrNotLAS) {
//	    // Not a LAS file
//	}
//	vlrs, err := header.ReadVLRs(file, h)
//
// # Errors
//
//   - [ErrNotLAS]: the signature is missing
//   - [ErrUnsupportedVersion]: the version is not 1.0 to 1.4
//   - [ErrInvalidHeader]: the header is truncated or inconsistent
package header
