package noise

import (
	"fmt"
	"math"
)

// Kernel is a cubic weight array of side Size, indexed [i][j][k] like Volume.
// Kernels built by BuildKernel also keep the normalized 1D window they were
// formed from, which lets the convolver run three 1D passes.
type Kernel struct {
	Size    int
	Weights []float32
	window  []float64
}

func (k *Kernel) At(i, j, l int) float32 { return k.Weights[(i*k.Size+j)*k.Size+l] }

// Separable reports whether k is the outer product of a 1D window.
func (k *Kernel) Separable() bool { return k.window != nil }

// Window returns a copy of the normalized 1D window, or nil.
func (k *Kernel) Window() []float64 {
	if k.window == nil {
		return nil
	}
	return append([]float64(nil), k.window...)
}

// Sum returns the total weight (1 for built kernels, up to rounding).
func (k *Kernel) Sum() float64 {
	var s float64
	for _, w := range k.Weights {
		s += float64(w)
	}
	return s
}

// GaussianWindow samples exp(-n^2/2sigma^2) at n = i - (n-1)/2, i in [0, n).
// Even lengths have no center sample; the peak sits between the middle two.
func GaussianWindow(n int, sigma float64) []float64 {
	w := make([]float64, n)
	mid := float64(n-1) / 2
	s2 := 2 * sigma * sigma
	for i := range w {
		x := float64(i) - mid
		w[i] = math.Exp(-x * x / s2)
	}
	return w
}

// KernelSize is the side length used for a blur radius.
func KernelSize(radius int) int { return 2 * radius }

// KernelSigma is the Gaussian standard deviation used for a blur radius.
func KernelSigma(radius int) float64 { return float64(KernelSize(radius)) / 8.0 }

// BuildKernel builds the separable Gaussian blur kernel for radius r:
// side 2r, sigma 2r/8, outer product of the window along all three axes,
// normalized to unit sum.
func BuildKernel(radius int) (*Kernel, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: %d (must be > 0)", ErrInvalidRadius, radius)
	}
	if radius > MaxVoxels/2 || !fitsVoxels(2*radius, 2*radius, 2*radius) {
		return nil, fmt.Errorf("%w: %d (kernel exceeds %d weights)", ErrInvalidRadius, radius, MaxVoxels)
	}
	n := KernelSize(radius)
	w := GaussianWindow(n, KernelSigma(radius))

	// Normalizing the 1D window by its sum s normalizes the outer product by s^3.
	var s float64
	for _, x := range w {
		s += x
	}
	for i := range w {
		w[i] /= s
	}

	weights := make([]float32, n*n*n)
	p := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			wij := w[i] * w[j]
			for l := 0; l < n; l++ {
				weights[p] = float32(wij * w[l])
				p++
			}
		}
	}
	return &Kernel{Size: n, Weights: weights, window: w}, nil
}

// NewKernel wraps an arbitrary size^3 weight array, taken as given (no
// normalization). The result is always convolved directly.
func NewKernel(size int, weights []float32) (*Kernel, error) {
	if size <= 0 || !fitsVoxels(size, size, size) {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidKernel, size)
	}
	if len(weights) != size*size*size {
		return nil, fmt.Errorf("%w: %d weights for size %d (want %d)", ErrInvalidKernel, len(weights), size, size*size*size)
	}
	return &Kernel{Size: size, Weights: append([]float32(nil), weights...)}, nil
}

// IdentityKernel returns a size^3 kernel with a unit weight at the reference
// sample (size/2 on each axis) and zero elsewhere.
func IdentityKernel(size int) (*Kernel, error) {
	if size <= 0 || !fitsVoxels(size, size, size) {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidKernel, size)
	}
	weights := make([]float32, size*size*size)
	c := size / 2
	weights[(c*size+c)*size+c] = 1
	return &Kernel{Size: size, Weights: weights}, nil
}
