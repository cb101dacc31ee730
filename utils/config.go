package utils

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/voxelsplace/noisetex/colormap"
	"github.com/voxelsplace/noisetex/noise"
)

// NoiseConfig holds the gennoise settings. Environment variables give the
// defaults; command-line flags override them.
type NoiseConfig struct {
	Size     noise.Dims `env:"NOISETEX_SIZE"`
	Radius   int        `env:"NOISETEX_RADIUS"`
	Output   string     `env:"NOISETEX_OUTPUT" envDefault:"noise.dat"`
	Seed     int64      `env:"NOISETEX_SEED" envDefault:"-1"`
	Workers  int        `env:"NOISETEX_WORKERS" envDefault:"1"`
	Preview  string     `env:"NOISETEX_PREVIEW"`
	GIF      string     `env:"NOISETEX_GIF"`
	Colormap string     `env:"NOISETEX_COLORMAP" envDefault:"kindlmann"`
}

// Params is the pipeline input described by the config.
func (c NoiseConfig) Params() noise.Params {
	return noise.Params{H: c.Size[0], W: c.Size[1], D: c.Size[2], Radius: c.Radius}
}

// ParseNoiseConfig reads the environment, then parses args with fs.
// -s and -b must be given one way or the other; their values are checked
// by noise.Params.Validate. -s also takes the three-token form "-s H W D".
func ParseNoiseConfig(fs *flag.FlagSet, args []string) (NoiseConfig, error) {
	var cfg NoiseConfig
	if err := env.Parse(&cfg); err != nil {
		return NoiseConfig{}, fmt.Errorf("parse env: %w", err)
	}
	fs.Var(&cfg.Size, "s", "Texture dimensions HxWxD (height, width, depth)")
	fs.IntVar(&cfg.Radius, "b", cfg.Radius, "Gaussian blur radius")
	fs.StringVar(&cfg.Output, "o", cfg.Output, "Output file")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (negative draws one)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Convolution goroutines")
	fs.StringVar(&cfg.Preview, "preview", cfg.Preview, "Write a PNG heat map of the first depth slice")
	fs.StringVar(&cfg.GIF, "gif", cfg.GIF, "Write an animated GIF of all depth slices")
	fs.StringVar(&cfg.Colormap, "cmap", cfg.Colormap, "Colormap for previews")
	if err := fs.Parse(joinSizeArgs(args)); err != nil {
		return NoiseConfig{}, err
	}
	if fs.NArg() > 0 {
		return NoiseConfig{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	given := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { given[f.Name] = true })
	if _, ok := os.LookupEnv("NOISETEX_SIZE"); !ok && !given["s"] {
		return NoiseConfig{}, errors.New("texture dimensions are required (-s HxWxD)")
	}
	if _, ok := os.LookupEnv("NOISETEX_RADIUS"); !ok && !given["b"] {
		return NoiseConfig{}, errors.New("blur radius is required (-b)")
	}
	if err := cfg.Params().Validate(); err != nil {
		return NoiseConfig{}, err
	}
	if cfg.Output == "" {
		return NoiseConfig{}, errors.New("output path is empty")
	}
	if _, err := colormap.LUT(cfg.Colormap, 2); err != nil {
		return NoiseConfig{}, err
	}
	return cfg, nil
}

// joinSizeArgs rewrites "-s H W D" into "-s H,W,D" so the flag package sees
// a single value.
func joinSizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		out = append(out, args[i])
		if args[i] != "-s" && args[i] != "--s" {
			continue
		}
		if i+3 < len(args) && isInt(args[i+1]) && isInt(args[i+2]) && isInt(args[i+3]) {
			out = append(out, strings.Join(args[i+1:i+4], ","))
			i += 3
		}
	}
	return out
}

func isInt(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
