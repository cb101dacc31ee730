package noise

// Range is the span of a volume before quantization.
type Range struct {
	Min, Max float32
}

// Degenerate reports a constant field, which quantizes to all zeros.
func (r Range) Degenerate() bool { return r.Max == r.Min }

// MinMax scans v once for its extremes.
func MinMax(v *Volume) Range {
	if len(v.Data) == 0 {
		return Range{}
	}
	r := Range{Min: v.Data[0], Max: v.Data[0]}
	for _, x := range v.Data[1:] {
		if x < r.Min {
			r.Min = x
		}
		if x > r.Max {
			r.Max = x
		}
	}
	return r
}

// Quantize rescales v to [0, 255] by (x-min)/(max-min)*255, clips, and
// truncates toward zero. A constant field yields zeros instead of NaN.
func Quantize(v *Volume) (*QuantizedVolume, Range) {
	r := MinMax(v)
	q := &QuantizedVolume{H: v.H, W: v.W, D: v.D, Data: make([]uint8, len(v.Data))}
	if r.Degenerate() {
		return q, r
	}
	lo := float64(r.Min)
	span := float64(r.Max) - lo
	for i, x := range v.Data {
		y := (float64(x) - lo) / span * 255.0
		switch {
		case y <= 0:
			q.Data[i] = 0
		case y >= 255:
			q.Data[i] = 255
		default:
			q.Data[i] = uint8(y)
		}
	}
	return q, r
}
