//go:build !(js && wasm)

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/voxelsplace/noisetex/colormap"
	"github.com/voxelsplace/noisetex/noise"
	"github.com/voxelsplace/noisetex/utils"
)

func usage() {
	fmt.Println("Usage: noisetex <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  gennoise -s HxWxD -b radius [-o noise.dat] [-seed N] [-workers N] [-preview out.png] [-gif out.gif] [-cmap name]")
	fmt.Println("                                            (blurred 3D noise volume, raw bytes in D,H,W order)")
	fmt.Println("  colormap [output.png] [name ...]          (colormap strip texture, default colormap.png)")
	fmt.Println("  noisepreview input.dat HxWxD output.png [depth] [cmap]   (heat map of one depth slice)")
	fmt.Println("  noise2glb input.dat HxWxD output.glb [threshold] [levels] (iso-surface mesh as .glb)")
	fmt.Println("  pack output.ntexpack HxWxD noise.dat [colormap.png]      (bundle textures, zstd)")
	fmt.Println("  unpack input.ntexpack output_dir          (extract a texture pack)")
	fmt.Println("Colormaps:", colormap.Names())
}

func fail(err error) {
	fmt.Println("Error:", err)
	os.Exit(1)
}

func parseDims(s string) noise.Dims {
	d, err := noise.ParseDims(s)
	if err != nil {
		fail(err)
	}
	return d
}

func optInt(args []string, i, def int) int {
	if len(args) <= i {
		return def
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		fail(err)
	}
	return n
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("[noisetex] ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	args := os.Args[2:]
	switch os.Args[1] {
	case "gennoise":
		fs := flag.NewFlagSet("gennoise", flag.ContinueOnError)
		cfg, err := utils.ParseNoiseConfig(fs, args)
		if err != nil {
			fail(err)
		}
		if err := utils.RunGenerateNoise(cfg); err != nil {
			fail(err)
		}
	case "colormap":
		out := "colormap.png"
		var names []string
		if len(args) > 0 {
			out = args[0]
			names = args[1:]
		}
		if err := utils.RunColormap(out, names); err != nil {
			fail(err)
		}
	case "noisepreview":
		if len(args) < 3 || len(args) > 5 {
			usage()
			os.Exit(1)
		}
		cmap := colormap.DefaultName
		if len(args) == 5 {
			cmap = args[4]
		}
		if err := utils.RunNoisePreview(args[0], parseDims(args[1]), args[2], optInt(args, 3, 0), cmap); err != nil {
			fail(err)
		}
	case "noise2glb":
		if len(args) < 3 || len(args) > 5 {
			usage()
			os.Exit(1)
		}
		opts := utils.DefaultMeshOptions()
		t := optInt(args, 3, int(opts.Threshold))
		if t < 0 || t > 255 {
			fail(fmt.Errorf("threshold %d out of range [0, 255]", t))
		}
		opts.Threshold = uint8(t)
		opts.Levels = optInt(args, 4, opts.Levels)
		if err := utils.RunNoise2GLB(args[0], parseDims(args[1]), args[2], opts); err != nil {
			fail(err)
		}
	case "pack":
		if len(args) < 3 || len(args) > 4 {
			usage()
			os.Exit(1)
		}
		cmap := ""
		if len(args) == 4 {
			cmap = args[3]
		}
		if err := utils.CreatePack(args[0], parseDims(args[1]), args[2], cmap); err != nil {
			fail(err)
		}
	case "unpack":
		if len(args) != 2 {
			usage()
			os.Exit(1)
		}
		if err := utils.UnpackToDir(args[0], args[1]); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(1)
	}

	fmt.Println("Operation completed!")
}
