package noise

import (
	"gonum.org/v1/gonum/stat"
)

// Summary describes the value distribution of a quantized volume.
type Summary struct {
	Min, Max  uint8
	Mean      float64
	StdDev    float64
	Histogram [256]int
}

// Summarize builds a 256-bin histogram and derives the moments from it, so
// no float copy of the volume is made.
func Summarize(q *QuantizedVolume) Summary {
	var s Summary
	if len(q.Data) == 0 {
		return s
	}
	for _, v := range q.Data {
		s.Histogram[v]++
	}
	values := make([]float64, 0, 256)
	weights := make([]float64, 0, 256)
	first := true
	for v, n := range s.Histogram {
		if n == 0 {
			continue
		}
		if first {
			s.Min = uint8(v)
			first = false
		}
		s.Max = uint8(v)
		values = append(values, float64(v))
		weights = append(weights, float64(n))
	}
	if len(values) == 1 {
		s.Mean = values[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(values, weights)
	return s
}
