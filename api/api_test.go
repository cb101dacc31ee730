package api_test

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"github.com/voxelsplace/noisetex/api"
	"github.com/voxelsplace/noisetex/noise"
)

func TestAPI_GenerateNoise(t *testing.T) {
	a, err := api.GenerateNoise(4, 5, 6, 2, 99)
	if err != nil {
		t.Fatalf("GenerateNoise failed: %v", err)
	}
	if len(a) != 4*5*6 {
		t.Fatalf("got %d bytes, want %d", len(a), 4*5*6)
	}
	b, err := api.GenerateNoise(4, 5, 6, 2, 99)
	if err != nil {
		t.Fatalf("GenerateNoise failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("same seed produced different volumes")
	}
	if _, err := api.GenerateNoise(4, 5, 6, 0, 99); !errors.Is(err, noise.ErrInvalidRadius) {
		t.Fatalf("expected ErrInvalidRadius, got %v", err)
	}
}

func TestAPI_ColormapPNG(t *testing.T) {
	data, err := api.ColormapPNG(nil)
	if err != nil {
		t.Fatalf("ColormapPNG failed: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 256 || b.Dy() != 64 {
		t.Fatalf("strip is %dx%d", b.Dx(), b.Dy())
	}
}

func TestAPI_NoiseToGLB(t *testing.T) {
	vol, err := api.GenerateNoise(6, 6, 6, 2, 3)
	if err != nil {
		t.Fatalf("GenerateNoise failed: %v", err)
	}
	glb, err := api.NoiseToGLB(vol, 6, 6, 6, 128)
	if err != nil {
		t.Fatalf("NoiseToGLB failed: %v", err)
	}
	if !bytes.HasPrefix(glb, []byte("glTF")) {
		t.Fatalf("output is not binary glTF")
	}
	if _, err := api.NoiseToGLB(vol[:10], 6, 6, 6, 128); !errors.Is(err, noise.ErrIO) {
		t.Fatalf("expected ErrIO for short volume, got %v", err)
	}
}

func TestAPI_PackThenUnpack(t *testing.T) {
	vol, err := api.GenerateNoise(3, 4, 5, 1, 8)
	if err != nil {
		t.Fatalf("GenerateNoise failed: %v", err)
	}
	cmap, err := api.ColormapPNG([]string{"heat"})
	if err != nil {
		t.Fatalf("ColormapPNG failed: %v", err)
	}
	packed, err := api.PackTextures(vol, 3, 4, 5, cmap)
	if err != nil {
		t.Fatalf("PackTextures failed: %v", err)
	}
	files, err := api.UnpackTextures(packed)
	if err != nil {
		t.Fatalf("UnpackTextures failed: %v", err)
	}
	if !bytes.Equal(files["noise.dat"], vol) {
		t.Fatalf("volume changed through the pack")
	}
	img, err := png.Decode(bytes.NewReader(files["colormap.png"]))
	if err != nil {
		t.Fatalf("decode colormap: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 256 || b.Dy() != 8 {
		t.Fatalf("colormap is %dx%d", b.Dx(), b.Dy())
	}

	packed[len(packed)/2] ^= 0x55
	if _, err := api.UnpackTextures(packed); err == nil {
		t.Fatalf("expected error for corrupted pack")
	}
}
