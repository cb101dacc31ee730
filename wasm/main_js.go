//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/voxelsplace/noisetex/api"
)

func toJS(out []byte) js.Value {
	uint8arr := js.Global().Get("Uint8Array").New(len(out))
	js.CopyBytesToJS(uint8arr, out)
	return uint8arr
}

func fromJS(v js.Value) []byte {
	buf := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(buf, v)
	return buf
}

// generateNoise(h, w, d, radius, seed) -> Uint8Array
func generateNoise(this js.Value, args []js.Value) any {
	if len(args) < 5 {
		return js.ValueOf("usage: generateNoise(h, w, d, radius, seed)")
	}
	out, err := api.GenerateNoise(args[0].Int(), args[1].Int(), args[2].Int(), args[3].Int(), int64(args[4].Float()))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toJS(out)
}

// colormapPNG([names...]) -> Uint8Array
func colormapPNG(this js.Value, args []js.Value) any {
	var names []string
	if len(args) > 0 && args[0].Truthy() {
		for i := 0; i < args[0].Length(); i++ {
			names = append(names, args[0].Index(i).String())
		}
	}
	out, err := api.ColormapPNG(names)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toJS(out)
}

// noise2glb(bytes, h, w, d, threshold) -> Uint8Array
func noise2glb(this js.Value, args []js.Value) any {
	if len(args) < 5 {
		return js.ValueOf("usage: noise2glb(bytes, h, w, d, threshold)")
	}
	out, err := api.NoiseToGLB(fromJS(args[0]), args[1].Int(), args[2].Int(), args[3].Int(), uint8(args[4].Int()))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toJS(out)
}

// packTextures(volume, h, w, d, colormapPNG?) -> Uint8Array
func packTextures(this js.Value, args []js.Value) any {
	if len(args) < 4 {
		return js.ValueOf("usage: packTextures(volume, h, w, d, colormapPNG?)")
	}
	var cmap []byte
	if len(args) > 4 && args[4].Truthy() {
		cmap = fromJS(args[4])
	}
	out, err := api.PackTextures(fromJS(args[0]), args[1].Int(), args[2].Int(), args[3].Int(), cmap)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toJS(out)
}

func unpackTextures(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing pack bytes")
	}
	files, err := api.UnpackTextures(fromJS(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	// return an object mapping names->Uint8Array
	result := js.Global().Get("Object").New()
	for name, b := range files {
		result.Set(name, toJS(b))
	}
	return result
}

func main() {
	js.Global().Set("generateNoise", js.FuncOf(generateNoise))
	js.Global().Set("colormapPNG", js.FuncOf(colormapPNG))
	js.Global().Set("noise2glb", js.FuncOf(noise2glb))
	js.Global().Set("packTextures", js.FuncOf(packTextures))
	js.Global().Set("unpackTextures", js.FuncOf(unpackTextures))
	select {}
}
