// Package preview draws quantized noise volumes for a quick look: one depth
// slice as a heat map PNG, or every slice as an animated GIF.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"

	"github.com/voxelsplace/noisetex/colormap"
	"github.com/voxelsplace/noisetex/noise"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// GIFDelay is the default frame delay in 100ths of a second.
const GIFDelay = 5

// sliceGrid exposes one depth layer as a plotter.GridXYZ. Row 0 of the
// volume is drawn at the top, like an image.
type sliceGrid struct {
	q *noise.QuantizedVolume
	d int
}

func (g sliceGrid) Dims() (c, r int)   { return g.q.W, g.q.H }
func (g sliceGrid) Z(c, r int) float64 { return float64(g.q.At(g.q.H-1-r, c, g.d)) }
func (g sliceGrid) X(c int) float64    { return float64(c) }
func (g sliceGrid) Y(r int) float64    { return float64(r) }

type colors []color.Color

func (c colors) Colors() []color.Color { return c }

func checkDepth(q *noise.QuantizedVolume, depth int) error {
	if depth < 0 || depth >= q.D {
		return fmt.Errorf("depth %d out of range [0, %d)", depth, q.D)
	}
	return nil
}

// SlicePlot builds the heat map plot of layer depth through colormap cmap.
func SlicePlot(q *noise.QuantizedVolume, depth int, cmap string) (*plot.Plot, error) {
	if err := checkDepth(q, depth); err != nil {
		return nil, err
	}
	pal, err := colormap.Palette(cmap)
	if err != nil {
		return nil, err
	}
	hm := plotter.NewHeatMap(sliceGrid{q: q, d: depth}, colors(pal))
	hm.Min, hm.Max = 0, 255

	p := plot.New()
	p.Title.Text = fmt.Sprintf("noise %dx%dx%d, depth %d", q.H, q.W, q.D, depth)
	p.X.Label.Text = "w"
	p.Y.Label.Text = "h"
	p.Add(hm)
	return p, nil
}

// WriteSlicePNG renders layer depth as a PNG into w.
func WriteSlicePNG(w io.Writer, q *noise.QuantizedVolume, depth int, cmap string) error {
	p, err := SlicePlot(q, depth, cmap)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(5*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render slice: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// SaveSlicePNG writes the heat map of layer depth to filename.
func SaveSlicePNG(q *noise.QuantizedVolume, depth int, cmap, filename string) error {
	p, err := SlicePlot(q, depth, cmap)
	if err != nil {
		return err
	}
	if err := p.Save(5*vg.Inch, 5*vg.Inch, filename); err != nil {
		return fmt.Errorf("save %s: %w", filename, err)
	}
	return nil
}

// Frames returns one paletted image per depth layer. The palette is the
// 256-entry colormap, so a pixel's index is its voxel value.
func Frames(q *noise.QuantizedVolume, cmap string) ([]*image.Paletted, error) {
	pal, err := colormap.Palette(cmap)
	if err != nil {
		return nil, err
	}
	frames := make([]*image.Paletted, 0, q.D)
	for d := 0; d < q.D; d++ {
		img := image.NewPaletted(image.Rect(0, 0, q.W, q.H), pal)
		for h := 0; h < q.H; h++ {
			row := img.Pix[h*img.Stride : h*img.Stride+q.W]
			for w := range row {
				row[w] = q.At(h, w, d)
			}
		}
		frames = append(frames, img)
	}
	return frames, nil
}

// WriteGIF encodes every depth layer as an animated GIF frame.
// delay is in 100ths of a second.
func WriteGIF(w io.Writer, q *noise.QuantizedVolume, cmap string, delay int) error {
	frames, err := Frames(q, cmap)
	if err != nil {
		return err
	}
	out := &gif.GIF{
		Image:     frames,
		Delay:     make([]int, len(frames)),
		LoopCount: 0,
	}
	for i := range out.Delay {
		out.Delay[i] = delay
	}
	return gif.EncodeAll(w, out)
}

func SaveGIF(q *noise.QuantizedVolume, cmap, filename string, delay int) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WriteGIF(f, q, cmap, delay); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
