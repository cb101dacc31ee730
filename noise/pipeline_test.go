package noise

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSmallVolume(t *testing.T) {
	p := Params{H: 4, W: 4, D: 4, Radius: 1}
	res, err := Generate(p, NewRand(1234), ConvolveOptions{})
	require.NoError(t, err)

	data := VolumeBytes(res.Volume)
	require.Len(t, data, 64)
	assert.Contains(t, data, byte(0))
	assert.Contains(t, data, byte(255))
	assert.Equal(t, 2, res.Kernel.Size)
	assert.Less(t, res.Range.Min, res.Range.Max)

	again, err := Generate(p, NewRand(1234), ConvolveOptions{Workers: 3})
	require.NoError(t, err)
	assert.Equal(t, data, VolumeBytes(again.Volume))
}

func TestGenerateValidation(t *testing.T) {
	_, err := Generate(Params{H: 0, W: 4, D: 4, Radius: 0}, NewRand(1), ConvolveOptions{})
	assert.ErrorIs(t, err, ErrInvalidDimension)
	assert.NotErrorIs(t, err, ErrInvalidRadius)

	_, err = Generate(Params{H: 4, W: 4, D: 4, Radius: -1}, NewRand(1), ConvolveOptions{})
	assert.ErrorIs(t, err, ErrInvalidRadius)
}

func TestGenerateLargeRadius(t *testing.T) {
	// Kernel side 10 on a 3x4x5 volume wraps every axis more than once.
	res, err := Generate(Params{H: 3, W: 4, D: 5, Radius: 5}, NewRand(7), ConvolveOptions{})
	require.NoError(t, err)
	assert.Len(t, res.Volume.Data, 60)
}

func TestGenerateFileRoundTrip(t *testing.T) {
	res, err := Generate(Params{H: 8, W: 6, D: 4, Radius: 2}, NewRand(99), ConvolveOptions{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "noise.dat")
	require.NoError(t, SaveVolume(res.Volume, path))
	back, err := LoadVolume(path, 8, 6, 4)
	require.NoError(t, err)
	if diff := cmp.Diff(res.Volume, back); diff != "" {
		t.Errorf("volume mismatch (-want +got):\n%s", diff)
	}
}
