// Package colormap renders the colormap strip texture: horizontal ramps
// through named colormaps, stacked and softened with a vertical box filter.
package colormap

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"sort"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

const (
	DefaultWidth        = 256
	DefaultStripeHeight = 8
	DefaultBlurTaps     = 8
	DefaultName         = "kindlmann"
)

// DefaultStripes is the stripe order of the default strip.
var DefaultStripes = []string{
	"kindlmann",
	"extended-kindlmann",
	"blackbody",
	"extended-blackbody",
	"blue-red",
	"heat",
	"rainbow",
	"green-red",
}

func unitRange(cm palette.ColorMap) palette.ColorMap {
	cm.SetMax(1)
	cm.SetMin(0)
	return cm
}

var registry = map[string]func(n int) palette.Palette{
	"kindlmann":          func(n int) palette.Palette { return unitRange(moreland.Kindlmann()).Palette(n) },
	"extended-kindlmann": func(n int) palette.Palette { return unitRange(moreland.ExtendedKindlmann()).Palette(n) },
	"blackbody":          func(n int) palette.Palette { return unitRange(moreland.BlackBody()).Palette(n) },
	"extended-blackbody": func(n int) palette.Palette { return unitRange(moreland.ExtendedBlackBody()).Palette(n) },
	"blue-red":           func(n int) palette.Palette { return unitRange(moreland.SmoothBlueRed()).Palette(n) },
	"purple-orange":      func(n int) palette.Palette { return unitRange(moreland.SmoothPurpleOrange()).Palette(n) },
	"green-purple":       func(n int) palette.Palette { return unitRange(moreland.SmoothGreenPurple()).Palette(n) },
	"blue-tan":           func(n int) palette.Palette { return unitRange(moreland.SmoothBlueTan()).Palette(n) },
	"green-red":          func(n int) palette.Palette { return unitRange(moreland.SmoothGreenRed()).Palette(n) },
	"heat":               func(n int) palette.Palette { return palette.Heat(n, 1) },
	"rainbow":            func(n int) palette.Palette { return palette.Rainbow(n, palette.Red, palette.Magenta, 1, 1, 1) },
}

// Names lists the known colormaps, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// LUT samples colormap name at n evenly spaced points from 0 to 1.
func LUT(name string, n int) ([]color.NRGBA, error) {
	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown colormap %q", name)
	}
	if n < 2 {
		return nil, fmt.Errorf("colormap %s: need at least 2 entries, got %d", name, n)
	}
	cs := mk(n).Colors()
	if len(cs) != n {
		return nil, fmt.Errorf("colormap %s: got %d colors, want %d", name, len(cs), n)
	}
	out := make([]color.NRGBA, n)
	for i, c := range cs {
		out[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
	}
	return out, nil
}

// Palette returns the 256-entry LUT of name as a color.Palette, so index i
// is the color of voxel value i.
func Palette(name string) (color.Palette, error) {
	lut, err := LUT(name, 256)
	if err != nil {
		return nil, err
	}
	p := make(color.Palette, len(lut))
	for i, c := range lut {
		p[i] = c
	}
	return p, nil
}

// Stripe is a width x height ramp: column x has LUT entry x.
func Stripe(name string, width, height int) (*image.NRGBA, error) {
	if height <= 0 {
		return nil, fmt.Errorf("stripe height must be > 0, got %d", height)
	}
	lut, err := LUT(name, width)
	if err != nil {
		return nil, err
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x, c := range lut {
			img.SetNRGBA(x, y, c)
		}
	}
	return img, nil
}

// Strip stacks one stripe per name, top to bottom.
func Strip(names []string, width, stripeHeight int) (*image.NRGBA, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no colormaps given")
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, stripeHeight*len(names)))
	for i, name := range names {
		s, err := Stripe(name, width, stripeHeight)
		if err != nil {
			return nil, err
		}
		for y := 0; y < stripeHeight; y++ {
			dst := img.PixOffset(0, i*stripeHeight+y)
			copy(img.Pix[dst:dst+width*4], s.Pix[y*s.Stride:y*s.Stride+width*4])
		}
	}
	return img, nil
}

// reflect folds i into [0, n) mirroring about the edges with the edge
// sample repeated (d c b a | a b c d | d c b a).
func reflect(i, n int) int {
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}

// BlurVertical filters every channel with a taps x 1 box window. The window
// reference sample is at taps/2; sums are divided by taps and truncated.
func BlurVertical(img *image.NRGBA, taps int) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	if taps <= 1 {
		copy(out.Pix, img.Pix)
		return out
	}
	h := b.Dy()
	c := taps / 2
	for y := 0; y < h; y++ {
		do := out.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < b.Dx()*4; x++ {
			sum := 0
			for m := 0; m < taps; m++ {
				sy := reflect(y+c-m, h)
				sum += int(img.Pix[img.PixOffset(b.Min.X, b.Min.Y+sy)+x])
			}
			out.Pix[do+x] = uint8(sum / taps)
		}
	}
	return out
}

// Generate builds the default-sized, blurred strip for names.
func Generate(names []string) (*image.NRGBA, error) {
	img, err := Strip(names, DefaultWidth, DefaultStripeHeight)
	if err != nil {
		return nil, err
	}
	return BlurVertical(img, DefaultBlurTaps), nil
}

func SavePNG(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
