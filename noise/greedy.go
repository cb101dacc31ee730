package noise

// Vertex is a mesh corner carrying the outward normal and banded voxel
// value of its face.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Value    uint8
}

type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

type dirSpec struct {
	normal [3]float32
	u, v   int
	du, dv [3]int
}

// Axes are x = W, y = H, z = D.
var directions = []dirSpec{
	{[3]float32{1, 0, 0}, 1, 2, [3]int{0, 1, 0}, [3]int{0, 0, 1}},
	{[3]float32{-1, 0, 0}, 1, 2, [3]int{0, 1, 0}, [3]int{0, 0, 1}},
	{[3]float32{0, 1, 0}, 0, 2, [3]int{1, 0, 0}, [3]int{0, 0, 1}},
	{[3]float32{0, -1, 0}, 0, 2, [3]int{1, 0, 0}, [3]int{0, 0, 1}},
	{[3]float32{0, 0, 1}, 0, 1, [3]int{1, 0, 0}, [3]int{0, 1, 0}},
	{[3]float32{0, 0, -1}, 0, 1, [3]int{1, 0, 0}, [3]int{0, 1, 0}},
}

// solidGrid is the thresholded, banded view of a volume the mesher walks.
// Cell value 0 is empty; solid cells hold band+1.
type solidGrid struct {
	dims  [3]int
	cells []uint8
}

func newSolidGrid(q *QuantizedVolume, threshold uint8, levels int) *solidGrid {
	if levels < 1 {
		levels = 1
	}
	if levels > 255 {
		levels = 255
	}
	g := &solidGrid{dims: [3]int{q.W, q.H, q.D}, cells: make([]uint8, len(q.Data))}
	for i, v := range q.Data {
		if v < threshold {
			continue
		}
		g.cells[i] = uint8(int(v)*levels/256) + 1
	}
	return g
}

func (g *solidGrid) get(x, y, z int) uint8 {
	if x < 0 || x >= g.dims[0] || y < 0 || y >= g.dims[1] || z < 0 || z >= g.dims[2] {
		return 0
	}
	return g.cells[(y*g.dims[0]+x)*g.dims[2]+z]
}

// BandValue maps a band cell back to the voxel value at the band's center.
func BandValue(cell uint8, levels int) uint8 {
	if cell == 0 {
		return 0
	}
	if levels < 1 {
		levels = 1
	}
	if levels > 255 {
		levels = 255
	}
	lo := (int(cell-1)*256 + levels - 1) / levels
	hi := (int(cell)*256+levels-1)/levels - 1
	return uint8((lo + hi) / 2)
}

func addQuad(mesh *Mesh, dir dirSpec, start [3]int, w, h int, value uint8, perp int) {
	base := [3]float32{}
	base[perp] = float32(start[0])
	if dir.normal[perp] > 0 {
		base[perp] += 1
	}
	base[dir.u] = float32(start[1])
	base[dir.v] = float32(start[2])

	var verts [4]Vertex
	corners := [4][2]int{{0, 0}, {h, 0}, {h, w}, {0, w}}
	for i, c := range corners {
		p := base
		for a := 0; a < 3; a++ {
			p[a] += float32(dir.du[a]*c[0] + dir.dv[a]*c[1])
		}
		verts[i] = Vertex{Position: p, Normal: dir.normal, Value: value}
	}

	swap := (dir.normal[perp] < 0) != (perp == 1)
	if swap {
		verts[1], verts[3] = verts[3], verts[1]
	}

	baseIdx := uint32(len(mesh.Vertices))
	mesh.Vertices = append(mesh.Vertices, verts[:]...)
	mesh.Indices = append(mesh.Indices, baseIdx, baseIdx+1, baseIdx+2, baseIdx, baseIdx+2, baseIdx+3)
}

// GenerateMesh builds the greedy surface mesh of every voxel >= threshold.
// Values are grouped into levels bands; adjacent faces in the same band merge
// into one quad. Faces on the volume border are emitted (no wrap-around).
func GenerateMesh(q *QuantizedVolume, threshold uint8, levels int) *Mesh {
	g := newSolidGrid(q, threshold, levels)
	mesh := &Mesh{}
	dims := g.dims

	for _, dir := range directions {
		perp := 3 - dir.u - dir.v
		nu, nv := dims[dir.u], dims[dir.v]
		mask := make([]uint8, nu*nv)
		visited := make([]bool, nu*nv)

		for p := 0; p < dims[perp]; p++ {
			clear(mask)
			clear(visited)
			for u := 0; u < nu; u++ {
				for v := 0; v < nv; v++ {
					pos := [3]int{}
					pos[dir.u] = u
					pos[dir.v] = v
					pos[perp] = p

					cell := g.get(pos[0], pos[1], pos[2])
					if cell == 0 {
						continue
					}
					adj := pos
					if dir.normal[perp] < 0 {
						adj[perp] = p - 1
					} else {
						adj[perp] = p + 1
					}
					if g.get(adj[0], adj[1], adj[2]) == 0 {
						mask[u*nv+v] = cell
					}
				}
			}

			for u := 0; u < nu; u++ {
				for v := 0; v < nv; {
					cell := mask[u*nv+v]
					if cell == 0 || visited[u*nv+v] {
						v++
						continue
					}
					width := 1
					for w := v + 1; w < nv && mask[u*nv+w] == cell && !visited[u*nv+w]; w++ {
						width++
					}
					height := 1
				grow:
					for h := u + 1; h < nu; h++ {
						for w := v; w < v+width; w++ {
							if mask[h*nv+w] != cell || visited[h*nv+w] {
								break grow
							}
						}
						height++
					}
					for hu := u; hu < u+height; hu++ {
						for hv := v; hv < v+width; hv++ {
							visited[hu*nv+hv] = true
						}
					}
					addQuad(mesh, dir, [3]int{p, u, v}, width, height, BandValue(cell, levels), perp)
					v += width
				}
			}
		}
	}
	return mesh
}
