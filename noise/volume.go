package noise

import (
	"fmt"
	"math"
)

// Volume holds float samples indexed [h][w][d], flattened row-major.
type Volume struct {
	H, W, D int
	Data    []float32
}

// QuantizedVolume is the 8-bit counterpart of Volume, same indexing.
type QuantizedVolume struct {
	H, W, D int
	Data    []uint8
}

// MaxVoxels caps h*w*d for any volume or kernel.
const MaxVoxels = math.MaxInt32

// fitsVoxels reports whether h*w*d is at most MaxVoxels, without
// overflowing. All three must be positive.
func fitsVoxels(h, w, d int) bool {
	if w > MaxVoxels/h {
		return false
	}
	return d <= MaxVoxels/(h*w)
}

func checkDims(h, w, d int) error {
	if h <= 0 || w <= 0 || d <= 0 {
		return dimError(h, w, d)
	}
	if !fitsVoxels(h, w, d) {
		return fmt.Errorf("%w: %dx%dx%d exceeds %d voxels", ErrInvalidDimension, h, w, d, MaxVoxels)
	}
	return nil
}

// NewVolume allocates a zeroed h x w x d volume.
func NewVolume(h, w, d int) (*Volume, error) {
	if err := checkDims(h, w, d); err != nil {
		return nil, err
	}
	return &Volume{H: h, W: w, D: d, Data: make([]float32, h*w*d)}, nil
}

// NewQuantizedVolume allocates a zeroed h x w x d byte volume.
func NewQuantizedVolume(h, w, d int) (*QuantizedVolume, error) {
	if err := checkDims(h, w, d); err != nil {
		return nil, err
	}
	return &QuantizedVolume{H: h, W: w, D: d, Data: make([]uint8, h*w*d)}, nil
}

func (v *Volume) Index(h, w, d int) int          { return (h*v.W+w)*v.D + d }
func (v *Volume) At(h, w, d int) float32         { return v.Data[v.Index(h, w, d)] }
func (v *Volume) Set(h, w, d int, x float32)     { v.Data[v.Index(h, w, d)] = x }
func (v *Volume) Len() int                       { return len(v.Data) }
func (v *Volume) sameShape(o *Volume) bool       { return v.H == o.H && v.W == o.W && v.D == o.D }
func (q *QuantizedVolume) Index(h, w, d int) int { return (h*q.W+w)*q.D + d }
func (q *QuantizedVolume) At(h, w, d int) uint8  { return q.Data[q.Index(h, w, d)] }
func (q *QuantizedVolume) Set(h, w, d int, x uint8) {
	q.Data[q.Index(h, w, d)] = x
}

// Clone returns a deep copy. Callers that still need the input after
// ConvolveSeparable must clone it first.
func (v *Volume) Clone() *Volume {
	c := &Volume{H: v.H, W: v.W, D: v.D, Data: make([]float32, len(v.Data))}
	copy(c.Data, v.Data)
	return c
}

// Slice returns the h x w plane at depth d, row-major.
func (q *QuantizedVolume) Slice(d int) []uint8 {
	out := make([]uint8, 0, q.H*q.W)
	for h := 0; h < q.H; h++ {
		for w := 0; w < q.W; w++ {
			out = append(out, q.At(h, w, d))
		}
	}
	return out
}
