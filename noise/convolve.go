package noise

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ConvolveOptions tunes the convolver. The zero value runs synchronously.
type ConvolveOptions struct {
	// Workers > 1 spreads independent output lines over that many goroutines.
	// Every output sample is computed by exactly one goroutine in a fixed
	// order, so results do not depend on Workers.
	Workers int
}

// wrapTable maps (x, m) to the source index read for output x and kernel tap
// m along an axis of length n: (x + size/2 - m) mod n. The modulo is taken in
// full, so kernels longer than the axis keep wrapping around it.
func wrapTable(n, size int) []int {
	t := make([]int, n*size)
	c := size / 2
	for x := 0; x < n; x++ {
		for m := 0; m < size; m++ {
			s := (x + c - m) % n
			if s < 0 {
				s += n
			}
			t[x*size+m] = s
		}
	}
	return t
}

func parallelFor(n, workers int, fn func(lo, hi int)) error {
	if workers <= 1 || n < 2 {
		fn(0, n)
		return nil
	}
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	return g.Wait()
}

func checkConvolveArgs(v *Volume, k *Kernel) error {
	if v == nil || len(v.Data) == 0 {
		return fmt.Errorf("%w: empty volume", ErrInvalidDimension)
	}
	if err := checkDims(v.H, v.W, v.D); err != nil {
		return err
	}
	if k == nil || k.Size <= 0 || len(k.Weights) != k.Size*k.Size*k.Size {
		return fmt.Errorf("%w: malformed kernel", ErrInvalidKernel)
	}
	return nil
}

// Convolve computes the full 3D convolution of v with k under periodic
// boundaries: out[x] = sum K[m] * v[(x + L/2 - m) mod N] on every axis.
// v is left untouched; the result is a new volume of the same shape.
func Convolve(v *Volume, k *Kernel, opts ConvolveOptions) (*Volume, error) {
	if err := checkConvolveArgs(v, k); err != nil {
		return nil, err
	}
	H, W, D, L := v.H, v.W, v.D, k.Size
	th, tw, td := wrapTable(H, L), wrapTable(W, L), wrapTable(D, L)
	out := &Volume{H: H, W: W, D: D, Data: make([]float32, len(v.Data))}
	src, kw := v.Data, k.Weights

	err := parallelFor(H, opts.Workers, func(lo, hi int) {
		for h := lo; h < hi; h++ {
			for w := 0; w < W; w++ {
				for d := 0; d < D; d++ {
					var acc float64
					for i := 0; i < L; i++ {
						sh := th[h*L+i]
						for j := 0; j < L; j++ {
							base := (sh*W + tw[w*L+j]) * D
							kb := (i*L + j) * L
							for l := 0; l < L; l++ {
								wt := kw[kb+l]
								if wt == 0 {
									continue
								}
								acc += float64(wt) * float64(src[base+td[d*L+l]])
							}
						}
					}
					out.Data[(h*W+w)*D+d] = float32(acc)
				}
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// axisPass describes one 1D sweep: lines independent lines of n samples
// spaced stride apart, the first sample of line i at start(i).
type axisPass struct {
	n, stride, lines int
	start            func(line int) int
}

func runPass(dst, src []float32, p axisPass, win []float64, workers int) error {
	L := len(win)
	table := wrapTable(p.n, L)
	return parallelFor(p.lines, workers, func(lo, hi int) {
		for line := lo; line < hi; line++ {
			s := p.start(line)
			for x := 0; x < p.n; x++ {
				var acc float64
				row := table[x*L : x*L+L]
				for m, wt := range win {
					acc += wt * float64(src[s+row[m]*p.stride])
				}
				dst[s+x*p.stride] = float32(acc)
			}
		}
	})
}

// ConvolveSeparable runs the same convolution as Convolve as three 1D passes
// (H, then W, then D), each wrapping modulo its axis. Only two full volumes
// are live: v is consumed, its buffer reused as scratch and v.Data cleared.
// k must be Separable.
func ConvolveSeparable(v *Volume, k *Kernel, opts ConvolveOptions) (*Volume, error) {
	if err := checkConvolveArgs(v, k); err != nil {
		return nil, err
	}
	if !k.Separable() {
		return nil, fmt.Errorf("%w: kernel is not separable", ErrInvalidKernel)
	}
	H, W, D := v.H, v.W, v.D
	scratch := make([]float32, len(v.Data))

	passes := []struct {
		p        axisPass
		dst, src []float32
	}{
		{axisPass{n: H, stride: W * D, lines: W * D, start: func(i int) int { return i }}, scratch, v.Data},
		{axisPass{n: W, stride: D, lines: H * D, start: func(i int) int { return (i/D)*W*D + i%D }}, v.Data, scratch},
		{axisPass{n: D, stride: 1, lines: H * W, start: func(i int) int { return i * D }}, scratch, v.Data},
	}
	for _, ps := range passes {
		if err := runPass(ps.dst, ps.src, ps.p, k.window, opts.Workers); err != nil {
			return nil, err
		}
	}
	out := &Volume{H: H, W: W, D: D, Data: scratch}
	v.Data = nil
	return out, nil
}

// Blur convolves v with k, using the three-pass path when k allows it.
// Like ConvolveSeparable it takes ownership of v.
func Blur(v *Volume, k *Kernel, opts ConvolveOptions) (*Volume, error) {
	if k != nil && k.Separable() {
		return ConvolveSeparable(v, k, opts)
	}
	return Convolve(v, k, opts)
}
