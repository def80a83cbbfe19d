// Package las reads point records from LAS and LAZ files.
//
// A [Reader] decodes records of point formats 0 to 10 into a
// [points.Buffer]. The buffer's layout is chosen by the caller: the
// stream's natural layout takes a direct path, and any other layout is
// filled by name from the well-known attribute catalogue, converting
// datatypes where needed and zero-filling attributes the point format
// does not carry.
//
// # Reading
//
//	r, err := las.Open("tile.laz", las.WithChunkSize(10000))
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	layout := points.MustLayout(
//	    points.Position3D.WithDataType(points.Vec3F32),
//	    points.Classification,
//	)
//	buf := points.NewInterleaved(layout, int(r.PointCount()))
//	if _, err := r.ReadInto(buf, r.PointCount()); err != nil {
//	    return err
//	}
//
// # Compressed Files
//
// LAZ streams whose chunks are coded with deflate, zstd, lz4 or s2 are read
// by the built-in block decompressor. These block coders are a private
// dialect: standard LAZ tools cannot read such files. Standard LAZ uses the
// arithmetic coder, and those streams need a decompressor supplied with
// [WithDecompressor]. Compressed streams using
// the extended point formats 6 to 10 or waveform fields are rejected at
// open time with [ErrUnsupportedFeature].
//
// # Seeking
//
// [Reader.Seek] takes a point offset and an io.Seek* whence and clamps the
// result to the stream. Seeking before the first point returns
// [ErrNegativeSeek].
package las
