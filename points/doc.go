// Package points describes per-point schemas and holds decoded points.
//
// A [Layout] is an ordered set of uniquely named [Attribute] values placed
// at byte offsets within a fixed-width record. Readers decode LAS records
// into any layout the caller builds; attributes are matched by name against
// the well-known catalogue ([WellKnown]) and converted between datatypes
// through a [ConverterRegistry].
//
// # Building a Layout
//
//	layout, err := points.NewLayout(
//	    points.Position3D.WithDataType(points.Vec3F32),
//	    points.Classification,
//	    points.GPSTime,
//	)
//
// # Reading Values
//
// [Interleaved] stores records back to back. Values are little-endian
// regardless of the host:
//
//	xyz, err := points.Values[[3]float32](buf, points.Position3D.Name)
package points
