package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledVolume(t *testing.T, h, w, d int, value uint8) *QuantizedVolume {
	t.Helper()
	q, err := NewQuantizedVolume(h, w, d)
	require.NoError(t, err)
	for i := range q.Data {
		q.Data[i] = value
	}
	return q
}

func TestGenerateMeshSolidBlock(t *testing.T) {
	q := filledVolume(t, 2, 2, 2, 200)
	m := GenerateMesh(q, 128, 1)
	assert.Len(t, m.Vertices, 24)
	assert.Len(t, m.Indices, 36)
	for _, v := range m.Vertices {
		assert.Equal(t, BandValue(1, 1), v.Value)
		for _, c := range v.Position {
			assert.True(t, c == 0 || c == 2, "corner %v", v.Position)
		}
	}
}

func TestGenerateMeshBelowThreshold(t *testing.T) {
	q := filledVolume(t, 3, 3, 3, 10)
	m := GenerateMesh(q, 128, 4)
	assert.Empty(t, m.Vertices)
	assert.Empty(t, m.Indices)
}

func TestGenerateMeshBandsSplitFaces(t *testing.T) {
	// Two voxels along W in different bands: the shared face is interior,
	// but faces on the other sides no longer merge.
	q := filledVolume(t, 1, 2, 1, 0)
	q.Set(0, 0, 0, 50)
	q.Set(0, 1, 0, 250)

	merged := GenerateMesh(q, 40, 1)
	split := GenerateMesh(q, 40, 2)
	assert.Len(t, merged.Indices, 6*6)
	assert.Len(t, split.Indices, 10*6)
}

func TestBandValue(t *testing.T) {
	assert.Equal(t, uint8(0), BandValue(0, 8))
	assert.Equal(t, uint8(127), BandValue(1, 1))
	assert.Equal(t, uint8(15), BandValue(1, 8))
	assert.Equal(t, uint8(239), BandValue(8, 8))
	assert.Equal(t, uint8(6), BandValue(6, 255))
}

func TestGenerateMeshNormalsMatchWinding(t *testing.T) {
	q := filledVolume(t, 3, 2, 4, 0)
	q.Set(1, 0, 2, 220)
	q.Set(2, 1, 3, 180)
	q.Set(0, 1, 0, 255)
	m := GenerateMesh(q, 128, 4)
	require.NotEmpty(t, m.Indices)

	seen := map[[3]float32]bool{}
	for i := 0; i < len(m.Indices); i += 3 {
		a, b, c := m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]]
		var e1, e2 [3]float32
		for k := 0; k < 3; k++ {
			e1[k] = b.Position[k] - a.Position[k]
			e2[k] = c.Position[k] - a.Position[k]
		}
		cross := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		dot := cross[0]*a.Normal[0] + cross[1]*a.Normal[1] + cross[2]*a.Normal[2]
		assert.Greater(t, dot, float32(0), "triangle %d", i/3)
		assert.Equal(t, a.Normal, b.Normal)
		assert.Equal(t, a.Normal, c.Normal)
		seen[a.Normal] = true
	}
	assert.Len(t, seen, 6)
}
