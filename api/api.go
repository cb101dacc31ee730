// Package api exposes the texture generators over byte slices, for callers
// without a filesystem (the wasm build).
package api

import (
	"bytes"
	"fmt"

	"github.com/voxelsplace/noisetex/colormap"
	"github.com/voxelsplace/noisetex/noise"
	"github.com/voxelsplace/noisetex/utils"
)

// GenerateNoise returns the raw depth-major noise volume for the given size,
// blur radius and seed.
func GenerateNoise(h, w, d, radius int, seed int64) ([]byte, error) {
	res, err := noise.Generate(noise.Params{H: h, W: w, D: d, Radius: radius}, noise.NewRand(seed), noise.ConvolveOptions{})
	if err != nil {
		return nil, err
	}
	return noise.VolumeBytes(res.Volume), nil
}

// ColormapPNG returns the blurred colormap strip as PNG bytes.
func ColormapPNG(names []string) ([]byte, error) {
	if len(names) == 0 {
		names = colormap.DefaultStripes
	}
	img, err := colormap.Generate(names)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := encodePNG(&out, img); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// NoiseToGLB meshes a raw volume of size h x w x d into .glb bytes.
func NoiseToGLB(data []byte, h, w, d int, threshold uint8) ([]byte, error) {
	q, err := noise.VolumeFromBytes(data, h, w, d)
	if err != nil {
		return nil, err
	}
	opts := utils.DefaultMeshOptions()
	opts.Threshold = threshold
	var out bytes.Buffer
	if err := utils.WriteGLB(&out, q, opts); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// PackTextures bundles a raw volume and an optional colormap PNG.
func PackTextures(volume []byte, h, w, d int, colormapPNG []byte) ([]byte, error) {
	q, err := noise.VolumeFromBytes(volume, h, w, d)
	if err != nil {
		return nil, err
	}
	var pack noise.TexPack
	pack.AddVolume("noise.dat", q)
	if len(colormapPNG) > 0 {
		img, err := decodeNRGBA(colormapPNG)
		if err != nil {
			return nil, err
		}
		pack.AddImage("colormap.png", img)
	}
	return pack.Marshal(noise.PackCompZstd)
}

// UnpackTextures returns entry name -> bytes: raw volumes as stored, images
// re-encoded as PNG.
func UnpackTextures(packBytes []byte) (map[string][]byte, error) {
	pack, _, err := noise.UnmarshalTexPack(packBytes)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(pack.Entries))
	for _, e := range pack.Entries {
		switch e.Kind {
		case noise.KindVolume:
			out[e.Name] = e.Payload
		case noise.KindImage:
			img, err := e.Image()
			if err != nil {
				return nil, err
			}
			var buf bytes.Buffer
			if err := encodePNG(&buf, img); err != nil {
				return nil, err
			}
			out[e.Name] = buf.Bytes()
		default:
			return nil, fmt.Errorf("entry %s: unknown kind %d", e.Name, e.Kind)
		}
	}
	return out, nil
}
