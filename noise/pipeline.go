package noise

import (
	"fmt"
	"math/rand"
)

// Params are the inputs of one noise texture run.
type Params struct {
	H, W, D int
	Radius  int
}

// Validate fails fast on bad dimensions, then on a bad radius.
func (p Params) Validate() error {
	if err := checkDims(p.H, p.W, p.D); err != nil {
		return err
	}
	if p.Radius <= 0 {
		return fmt.Errorf("%w: %d (must be > 0)", ErrInvalidRadius, p.Radius)
	}
	return nil
}

// Result is the output of Generate.
type Result struct {
	Volume *QuantizedVolume
	Range  Range
	Kernel *Kernel
}

// Generate runs the whole pipeline: uniform field, Gaussian kernel,
// periodic convolution, quantization. The same rng state gives the same
// bytes.
func Generate(p Params, rng *rand.Rand, opts ConvolveOptions) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	k, err := BuildKernel(p.Radius)
	if err != nil {
		return nil, err
	}
	field, err := RandomField(p.H, p.W, p.D, rng)
	if err != nil {
		return nil, err
	}
	blurred, err := Blur(field, k, opts)
	if err != nil {
		return nil, fmt.Errorf("convolve: %w", err)
	}
	q, r := Quantize(blurred)
	return &Result{Volume: q, Range: r, Kernel: k}, nil
}
