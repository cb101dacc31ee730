package utils

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/voxelsplace/noisetex/colormap"
	"github.com/voxelsplace/noisetex/noise"
)

// CreatePack bundles a raw noise volume and, if colormapPath is not empty,
// a colormap PNG into a zstd-compressed texture pack.
func CreatePack(outputFile string, dims noise.Dims, noisePath, colormapPath string) error {
	q, err := noise.LoadVolume(noisePath, dims[0], dims[1], dims[2])
	if err != nil {
		return err
	}
	var pack noise.TexPack
	pack.AddVolume(filepath.Base(noisePath), q)

	if colormapPath != "" {
		img, err := loadNRGBA(colormapPath)
		if err != nil {
			return err
		}
		pack.AddImage(filepath.Base(colormapPath), img)
	}

	start := time.Now()
	data, err := pack.Marshal(noise.PackCompZstd)
	if err != nil {
		return err
	}
	log.Printf("pack: %d entries, %d bytes, compressed in %d ms", len(pack.Entries), len(data), time.Since(start).Milliseconds())
	return os.WriteFile(outputFile, data, 0o644)
}

// UnpackToDir writes every entry of a texture pack into outputDir: volumes
// as raw .dat bytes, images as PNG.
func UnpackToDir(packFile, outputDir string) error {
	data, err := os.ReadFile(packFile)
	if err != nil {
		return err
	}
	pack, _, err := noise.UnmarshalTexPack(data)
	if err != nil {
		return fmt.Errorf("%s: %w", packFile, err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	for _, e := range pack.Entries {
		name := filepath.Base(e.Name)
		switch e.Kind {
		case noise.KindVolume:
			q, err := e.Volume()
			if err != nil {
				return err
			}
			path := filepath.Join(outputDir, name)
			if err := noise.SaveVolume(q, path); err != nil {
				return err
			}
			log.Printf("%s: volume %dx%dx%d", path, q.H, q.W, q.D)
		case noise.KindImage:
			img, err := e.Image()
			if err != nil {
				return err
			}
			if !strings.HasSuffix(strings.ToLower(name), ".png") {
				name += ".png"
			}
			path := filepath.Join(outputDir, name)
			if err := colormap.SavePNG(img, path); err != nil {
				return err
			}
			log.Printf("%s: image %dx%d", path, img.Bounds().Dx(), img.Bounds().Dy())
		default:
			return fmt.Errorf("entry %s: unknown kind %d", e.Name, e.Kind)
		}
	}
	return nil
}

func loadNRGBA(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if img, ok := src.(*image.NRGBA); ok && img.Rect.Min == (image.Point{}) {
		return img, nil
	}
	b := src.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
	return img, nil
}
