package utils

import (
	"fmt"
	"log"

	"github.com/voxelsplace/noisetex/noise"
	"github.com/voxelsplace/noisetex/preview"
)

// GenerateNoise runs the pipeline for cfg and returns the result with the
// seed that was used.
func GenerateNoise(cfg NoiseConfig) (*noise.Result, int64, error) {
	seed := cfg.Seed
	if seed < 0 {
		s, err := noise.NewSeed()
		if err != nil {
			return nil, 0, err
		}
		seed = s
	}
	p := cfg.Params()
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}
	log.Printf("noise %s, blur radius %d (kernel %d, sigma %.3f), seed %d",
		cfg.Size, p.Radius, noise.KernelSize(p.Radius), noise.KernelSigma(p.Radius), seed)
	log.Printf("Convolving...")
	res, err := noise.Generate(p, noise.NewRand(seed), noise.ConvolveOptions{Workers: cfg.Workers})
	if err != nil {
		return nil, 0, err
	}
	if res.Range.Degenerate() {
		log.Printf("convolved field is constant (%g); writing zeros", res.Range.Min)
	}
	return res, seed, nil
}

// RunGenerateNoise generates a noise volume, writes it to cfg.Output and
// any requested previews.
func RunGenerateNoise(cfg NoiseConfig) error {
	res, _, err := GenerateNoise(cfg)
	if err != nil {
		return err
	}
	q := res.Volume
	if err := noise.SaveVolume(q, cfg.Output); err != nil {
		return err
	}
	s := noise.Summarize(q)
	log.Printf("wrote %s: %d bytes, xxh64 %016x, mean %.2f, stddev %.2f",
		cfg.Output, len(q.Data), noise.Digest(q), s.Mean, s.StdDev)

	if cfg.Preview != "" {
		if err := preview.SaveSlicePNG(q, 0, cfg.Colormap, cfg.Preview); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
		log.Printf("preview written to %s", cfg.Preview)
	}
	if cfg.GIF != "" {
		if err := preview.SaveGIF(q, cfg.Colormap, cfg.GIF, preview.GIFDelay); err != nil {
			return fmt.Errorf("gif: %w", err)
		}
		log.Printf("animation written to %s", cfg.GIF)
	}
	return nil
}

// RunNoisePreview renders layer depth of a written volume to a PNG.
func RunNoisePreview(inPath string, dims noise.Dims, outPath string, depth int, cmap string) error {
	q, err := noise.LoadVolume(inPath, dims[0], dims[1], dims[2])
	if err != nil {
		return err
	}
	return preview.SaveSlicePNG(q, depth, cmap, outPath)
}
