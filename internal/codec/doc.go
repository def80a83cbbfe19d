// Package codec decodes raw LAS point records into point buffers.
//
// A [Decoder] owns the field table of one stream: the ordered on-disk fields
// of its point format, each with its byte offset, width and a decode function
// producing the field's natural datatype. The table is built once; every read
// walks it record by record, stepping by the stream's record length so that
// extra bytes after the standard fields are skipped.
//
// # Field order
//
//	position (3 x uint32) | intensity | bit field(s) | classification |
//	scan angle rank, user data        (formats 0 to 5)
//	user data, scan angle             (formats 6 to 10)
//	| point source id | [gps time] | [rgb] | [nir] | [waveform packet]
//
// The return/flag sub-fields are decoded from the packed byte(s) as a group.
// There is no separate cursor to skip them: the record stride alone decides
// where the next record begins.
//
// # Paths
//
// [Decoder.DecodeNatural] writes every field at its offset in the natural
// layout. [Decoder.DecodePlan] follows a [Plan] built by [Resolve] for an
// arbitrary target layout: requested attributes are decoded and converted,
// attributes the source lacks are left zero, and unrequested fields are never
// touched.
package codec
