package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomVolume(t *testing.T, h, w, d int, seed int64) *Volume {
	t.Helper()
	v, err := RandomField(h, w, d, NewRand(seed))
	require.NoError(t, err)
	return v
}

// deltaKernel is a separable kernel whose window is a unit impulse at size/2.
func deltaKernel(size int) *Kernel {
	k, _ := IdentityKernel(size)
	win := make([]float64, size)
	win[size/2] = 1
	k.window = win
	return k
}

func TestConvolveIdentity(t *testing.T) {
	for _, size := range []int{1, 2, 3, 4} {
		v := randomVolume(t, 5, 4, 6, int64(size))
		k, err := IdentityKernel(size)
		require.NoError(t, err)
		out, err := Convolve(v, k, ConvolveOptions{})
		require.NoError(t, err)
		assert.Equal(t, v.Data, out.Data, "size %d", size)
	}
}

func TestConvolveSeparableIdentity(t *testing.T) {
	for _, size := range []int{2, 3, 4} {
		v := randomVolume(t, 5, 4, 6, int64(size))
		want := append([]float32(nil), v.Data...)
		out, err := ConvolveSeparable(v, deltaKernel(size), ConvolveOptions{})
		require.NoError(t, err)
		assert.Equal(t, want, out.Data, "size %d", size)
	}
}

func TestConvolveWrapsAround(t *testing.T) {
	v, err := NewVolume(1, 1, 4)
	require.NoError(t, err)
	v.Set(0, 0, 0, 1)

	weights := make([]float32, 8)
	weights[0] = 0.25 // K[0][0][0]
	weights[1] = 0.75 // K[0][0][1]
	k, err := NewKernel(2, weights)
	require.NoError(t, err)

	out, err := Convolve(v, k, ConvolveOptions{})
	require.NoError(t, err)
	// Reference sample at index 1: out[d] = 0.25*v[d+1] + 0.75*v[d].
	assert.Equal(t, []float32{0.75, 0, 0, 0.25}, out.Data)
}

func shiftDepth(v *Volume) *Volume {
	s := v.Clone()
	for h := 0; h < v.H; h++ {
		for w := 0; w < v.W; w++ {
			for d := 0; d < v.D; d++ {
				s.Set(h, w, (d+1)%v.D, v.At(h, w, d))
			}
		}
	}
	return s
}

func TestConvolveTranslationEquivariant(t *testing.T) {
	const L = 8
	k, err := BuildKernel(L / 2)
	require.NoError(t, err)
	v := randomVolume(t, 1, 1, L, 9)

	for name, conv := range map[string]func(*Volume, *Kernel, ConvolveOptions) (*Volume, error){
		"direct":    Convolve,
		"separable": ConvolveSeparable,
	} {
		base, err := conv(v.Clone(), k, ConvolveOptions{})
		require.NoError(t, err, name)
		shifted, err := conv(shiftDepth(v), k, ConvolveOptions{})
		require.NoError(t, err, name)
		assert.Equal(t, shiftDepth(base).Data, shifted.Data, name)
	}
}

func TestSeparableMatchesDirect(t *testing.T) {
	cases := []struct {
		h, w, d, radius int
	}{
		{4, 4, 4, 1},
		{6, 5, 7, 2},
		{5, 3, 6, 2}, // kernel wider than W
		{3, 3, 3, 3}, // kernel wider than every axis
		{8, 8, 8, 4},
	}
	for _, c := range cases {
		k, err := BuildKernel(c.radius)
		require.NoError(t, err)
		v := randomVolume(t, c.h, c.w, c.d, int64(c.h*100+c.radius))
		direct, err := Convolve(v, k, ConvolveOptions{})
		require.NoError(t, err)
		sep, err := ConvolveSeparable(v.Clone(), k, ConvolveOptions{})
		require.NoError(t, err)
		require.True(t, direct.sameShape(sep))
		for i := range direct.Data {
			if diff := direct.Data[i] - sep.Data[i]; diff > 1e-5 || diff < -1e-5 {
				t.Fatalf("%+v: sample %d direct %v separable %v", c, i, direct.Data[i], sep.Data[i])
			}
		}
	}
}

func TestConvolveWorkersBitIdentical(t *testing.T) {
	k, err := BuildKernel(2)
	require.NoError(t, err)
	v := randomVolume(t, 9, 7, 5, 3)

	d1, err := Convolve(v, k, ConvolveOptions{Workers: 1})
	require.NoError(t, err)
	d4, err := Convolve(v, k, ConvolveOptions{Workers: 4})
	require.NoError(t, err)
	assert.Equal(t, d1.Data, d4.Data)

	s1, err := ConvolveSeparable(v.Clone(), k, ConvolveOptions{Workers: 1})
	require.NoError(t, err)
	s4, err := ConvolveSeparable(v.Clone(), k, ConvolveOptions{Workers: 4})
	require.NoError(t, err)
	assert.Equal(t, s1.Data, s4.Data)
}

func TestConvolveConstantField(t *testing.T) {
	v, err := NewVolume(4, 5, 6)
	require.NoError(t, err)
	for i := range v.Data {
		v.Data[i] = 0.5
	}
	k, err := BuildKernel(2)
	require.NoError(t, err)
	out, err := Blur(v, k, ConvolveOptions{})
	require.NoError(t, err)
	for _, x := range out.Data {
		assert.InDelta(t, 0.5, x, 1e-5)
	}
}

func TestConvolveSeparableConsumesInput(t *testing.T) {
	v := randomVolume(t, 3, 3, 3, 1)
	k, err := BuildKernel(1)
	require.NoError(t, err)
	out, err := ConvolveSeparable(v, k, ConvolveOptions{})
	require.NoError(t, err)
	assert.Nil(t, v.Data)
	assert.Len(t, out.Data, 27)
}

func TestConvolveRejectsBadInput(t *testing.T) {
	v := randomVolume(t, 3, 3, 3, 1)
	id, err := IdentityKernel(2)
	require.NoError(t, err)

	_, err = ConvolveSeparable(v, id, ConvolveOptions{})
	assert.ErrorIs(t, err, ErrInvalidKernel)

	_, err = Convolve(v, &Kernel{Size: 2, Weights: make([]float32, 3)}, ConvolveOptions{})
	assert.ErrorIs(t, err, ErrInvalidKernel)

	_, err = Convolve(&Volume{}, id, ConvolveOptions{})
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestWrapTable(t *testing.T) {
	// n=3, size=4: reference at 2, kernel longer than the axis.
	tbl := wrapTable(3, 4)
	assert.Equal(t, []int{2, 1, 0, 2}, tbl[0:4])
	assert.Equal(t, []int{0, 2, 1, 0}, tbl[4:8])
	assert.Equal(t, []int{1, 0, 2, 1}, tbl[8:12])
}

func TestBlurPicksPath(t *testing.T) {
	v := randomVolume(t, 4, 3, 5, 21)
	id, err := IdentityKernel(3)
	require.NoError(t, err)
	direct, err := Blur(v, id, ConvolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, v.Data, direct.Data)
	require.NotNil(t, v.Data, "direct path keeps its input")

	k, err := BuildKernel(1)
	require.NoError(t, err)
	want, err := ConvolveSeparable(v.Clone(), k, ConvolveOptions{})
	require.NoError(t, err)
	got, err := Blur(v, k, ConvolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, want.Data, got.Data)
	assert.Nil(t, v.Data, "separable path consumes its input")
}
