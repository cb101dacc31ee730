package utils

import (
	"fmt"
	"image/color"
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/voxelsplace/noisetex/colormap"
	"github.com/voxelsplace/noisetex/noise"
)

// MeshOptions controls the iso-surface export.
type MeshOptions struct {
	Threshold uint8
	Levels    int
	Colormap  string
}

func DefaultMeshOptions() MeshOptions {
	return MeshOptions{Threshold: 128, Levels: 8, Colormap: colormap.DefaultName}
}

// BuildGLB meshes the voxels of q at or above opts.Threshold and returns the
// glTF document, colored per vertex through opts.Colormap.
func BuildGLB(q *noise.QuantizedVolume, opts MeshOptions) (*gltf.Document, error) {
	lut, err := colormap.LUT(opts.Colormap, 256)
	if err != nil {
		return nil, err
	}
	mesh := noise.GenerateMesh(q, opts.Threshold, opts.Levels)
	if len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("no voxels at or above threshold %d", opts.Threshold)
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "noisetex"
	doc.Materials = []*gltf.Material{{
		Name:      "noise",
		AlphaMode: gltf.AlphaOpaque,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
	}}
	doc.Meshes = []*gltf.Mesh{{
		Name:       fmt.Sprintf("Noise%s", noise.Dims{q.H, q.W, q.D}),
		Primitives: []*gltf.Primitive{meshPrimitive(doc, mesh, lut)},
	}}
	doc.Nodes = []*gltf.Node{{Name: "noise", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc, nil
}

// meshPrimitive writes the vertex streams of mesh into doc. Normals come
// from the face each vertex belongs to; colors are the LUT entry of the
// face's band value.
func meshPrimitive(doc *gltf.Document, mesh *noise.Mesh, lut []color.NRGBA) *gltf.Primitive {
	positions := make([][3]float32, len(mesh.Vertices))
	normals := make([][3]float32, len(mesh.Vertices))
	colors := make([][4]uint8, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		positions[i] = v.Position
		normals[i] = v.Normal
		c := lut[v.Value]
		colors[i] = [4]uint8{c.R, c.G, c.B, 255}
	}
	return &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION: modeler.WritePosition(doc, positions),
			gltf.NORMAL:   modeler.WriteNormal(doc, normals),
			gltf.COLOR_0:  modeler.WriteColor(doc, colors),
		},
		Indices:  gltf.Index(modeler.WriteIndices(doc, mesh.Indices)),
		Material: gltf.Index(0),
	}
}

// WriteGLB encodes the mesh of q as binary glTF into w.
func WriteGLB(w io.Writer, q *noise.QuantizedVolume, opts MeshOptions) error {
	doc, err := BuildGLB(q, opts)
	if err != nil {
		return err
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	return enc.Encode(doc)
}

// RunNoise2GLB loads a raw volume of the given size and writes its
// iso-surface as .glb.
func RunNoise2GLB(inPath string, dims noise.Dims, outPath string, opts MeshOptions) error {
	q, err := noise.LoadVolume(inPath, dims[0], dims[1], dims[2])
	if err != nil {
		return err
	}
	doc, err := BuildGLB(q, opts)
	if err != nil {
		return err
	}
	return gltf.SaveBinary(doc, outPath)
}
