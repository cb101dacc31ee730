package preview

import (
	"bytes"
	"image/gif"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelsplace/noisetex/noise"
)

func testVolume(t *testing.T) *noise.QuantizedVolume {
	t.Helper()
	res, err := noise.Generate(noise.Params{H: 6, W: 8, D: 3, Radius: 2}, noise.NewRand(5), noise.ConvolveOptions{})
	require.NoError(t, err)
	return res.Volume
}

func TestWriteSlicePNG(t *testing.T) {
	q := testVolume(t)
	var buf bytes.Buffer
	require.NoError(t, WriteSlicePNG(&buf, q, 1, "kindlmann"))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Positive(t, img.Bounds().Dx())

	path := filepath.Join(t.TempDir(), "slice.png")
	require.NoError(t, SaveSlicePNG(q, 0, "heat", path))
}

func TestSlicePlotErrors(t *testing.T) {
	q := testVolume(t)
	_, err := SlicePlot(q, 3, "kindlmann")
	assert.Error(t, err)
	_, err = SlicePlot(q, -1, "kindlmann")
	assert.Error(t, err)
	_, err = SlicePlot(q, 0, "nope")
	assert.Error(t, err)
}

func TestSliceGridOrientation(t *testing.T) {
	q := testVolume(t)
	g := sliceGrid{q: q, d: 2}
	c, r := g.Dims()
	assert.Equal(t, 8, c)
	assert.Equal(t, 6, r)
	assert.Equal(t, float64(q.At(0, 4, 2)), g.Z(4, 5))
	assert.Equal(t, float64(q.At(5, 0, 2)), g.Z(0, 0))
}

func TestFrames(t *testing.T) {
	q := testVolume(t)
	frames, err := Frames(q, "blackbody")
	require.NoError(t, err)
	require.Len(t, frames, q.D)
	for d, f := range frames {
		assert.Len(t, f.Palette, 256)
		assert.Equal(t, q.At(3, 7, d), f.ColorIndexAt(7, 3))
	}
}

func TestWriteGIF(t *testing.T) {
	q := testVolume(t)
	var buf bytes.Buffer
	require.NoError(t, WriteGIF(&buf, q, "kindlmann", GIFDelay))

	g, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, g.Image, q.D)
	assert.Equal(t, []int{GIFDelay, GIFDelay, GIFDelay}, g.Delay)
	assert.Equal(t, q.At(2, 5, 1), g.Image[1].ColorIndexAt(5, 2))

	path := filepath.Join(t.TempDir(), "noise.gif")
	require.NoError(t, SaveGIF(q, "kindlmann", path, GIFDelay))
}
