package utils

import (
	"log"

	"github.com/voxelsplace/noisetex/colormap"
)

// RunColormap writes the blurred colormap strip to outPath. An empty names
// list uses colormap.DefaultStripes.
func RunColormap(outPath string, names []string) error {
	if len(names) == 0 {
		names = colormap.DefaultStripes
	}
	img, err := colormap.Generate(names)
	if err != nil {
		return err
	}
	if err := colormap.SavePNG(img, outPath); err != nil {
		return err
	}
	log.Printf("colormap strip %dx%d (%d stripes) written to %s", img.Bounds().Dx(), img.Bounds().Dy(), len(names), outPath)
	return nil
}
