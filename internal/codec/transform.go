package codec

import "math"

// Transform maps on-disk unsigned integer coordinates to world coordinates per axis:
// world = local * Scale + Offset, evaluated in float64.
type Transform struct {
	Scale  [3]float64
	Offset [3]float64
}

// Apply transforms one local coordinate triple.
func (t Transform) Apply(local [3]uint32) [3]float64 {
	return [3]float64{
		float64(local[0])*t.Scale[0] + t.Offset[0],
		float64(local[1])*t.Scale[1] + t.Offset[1],
		float64(local[2])*t.Scale[2] + t.Offset[2],
	}
}

// Invert returns the nearest local coordinate for a world coordinate. It is
// the inverse used when building records. Values outside the uint32 range
// saturate.
func (t Transform) Invert(world [3]float64) [3]uint32 {
	var local [3]uint32
	for axis := range local {
		v := math.Round((world[axis] - t.Offset[axis]) / t.Scale[axis])
		switch {
		case v <= 0:
			local[axis] = 0
		case v >= math.MaxUint32:
			local[axis] = math.MaxUint32
		default:
			local[axis] = uint32(v)
		}
	}
	return local
}
