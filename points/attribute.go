package points

// Attribute is a named, typed per-point value.
type Attribute struct {
	Name     string
	DataType DataType
}

// WithDataType returns a copy of a with a different datatype. It is the usual
// way to request a well-known attribute in a non-default representation:
//
//	points.Position3D.WithDataType(points.Vec3F32)
func (a Attribute) WithDataType(t DataType) Attribute {
	a.DataType = t
	return a
}

// Size returns the attribute's size in bytes.
func (a Attribute) Size() int {
	return a.DataType.Size()
}

// Well-known LAS attributes with their default datatypes.
var (
	Position3D                  = Attribute{Name: "Position3D", DataType: Vec3F64}
	Intensity                   = Attribute{Name: "Intensity", DataType: U16}
	ReturnNumber                = Attribute{Name: "ReturnNumber", DataType: U8}
	NumberOfReturns             = Attribute{Name: "NumberOfReturns", DataType: U8}
	ClassificationFlags         = Attribute{Name: "ClassificationFlags", DataType: U8}
	ScannerChannel              = Attribute{Name: "ScannerChannel", DataType: U8}
	ScanDirectionFlag           = Attribute{Name: "ScanDirectionFlag", DataType: Bool}
	EdgeOfFlightLine            = Attribute{Name: "EdgeOfFlightLine", DataType: Bool}
	Classification              = Attribute{Name: "Classification", DataType: U8}
	ScanAngleRank               = Attribute{Name: "ScanAngle", DataType: I8}
	ScanAngle                   = Attribute{Name: "ScanAngle", DataType: I16}
	UserData                    = Attribute{Name: "UserData", DataType: U8}
	PointSourceID               = Attribute{Name: "PointSourceID", DataType: U16}
	GPSTime                     = Attribute{Name: "GPSTime", DataType: F64}
	ColorRGB                    = Attribute{Name: "ColorRGB", DataType: Vec3U16}
	NIR                         = Attribute{Name: "NIR", DataType: U16}
	WavePacketDescriptorIndex   = Attribute{Name: "WavePacketDescriptorIndex", DataType: U8}
	WaveformDataOffset          = Attribute{Name: "WaveformDataOffset", DataType: U64}
	WaveformPacketSize          = Attribute{Name: "WaveformPacketSize", DataType: U32}
	ReturnPointWaveformLocation = Attribute{Name: "ReturnPointWaveformLocation", DataType: F32}
	WaveformParameters          = Attribute{Name: "WaveformParameters", DataType: Vec3F32}
)

// WellKnown lists the attributes a LAS point record can carry, in on-disk
// order for the regular formats. ScanAngle appears once; its default
// datatype depends on the point format (see ScanAngleRank and ScanAngle).
var WellKnown = []Attribute{
	Position3D,
	Intensity,
	ReturnNumber,
	NumberOfReturns,
	ClassificationFlags,
	ScannerChannel,
	ScanDirectionFlag,
	EdgeOfFlightLine,
	Classification,
	ScanAngleRank,
	UserData,
	PointSourceID,
	GPSTime,
	ColorRGB,
	NIR,
	WavePacketDescriptorIndex,
	WaveformDataOffset,
	WaveformPacketSize,
	ReturnPointWaveformLocation,
	WaveformParameters,
}

// LookupWellKnown returns the well-known attribute with the given name.
func LookupWellKnown(name string) (Attribute, bool) {
	for _, a := range WellKnown {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}
