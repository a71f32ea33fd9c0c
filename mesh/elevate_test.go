package mesh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/fembasis/element"
	"github.com/notargets/fembasis/utils"
)

func TestElevateOrder(t *testing.T) {
	{ // Two triangles sharing the edge 0-2 share a single midpoint
		m := squareMesh(t)
		m2, bc, err := ElevateOrder(m, nil)
		require.NoError(t, err)
		assert.Nil(t, bc)
		assert.Equal(t, 2, m2.Order)
		assert.Equal(t, 9, m2.NumNodes())
		assert.Equal(t, utils.Index{0, 1, 2, 4, 5, 6}, m2.Triangle(0))
		// Triangle 1 reuses midpoint 5 on its side 2, the shared diagonal, after creating 7 and 8
		assert.Equal(t, utils.Index{0, 2, 3, 7, 8, 5}, m2.Triangle(1))
		assert.Equal(t, [3]float64{0.5, 0.5, 0}, m2.Arena.At(5).X)
		assert.Equal(t, [3]float64{0.5, 1, 0}, m2.Arena.At(7).X)
		assert.Equal(t, [3]float64{0, 0.5, 0}, m2.Arena.At(8).X)
		for i, p := range m2.Arena.Points {
			assert.Equal(t, i, p.ID)
		}
		// The input mesh is untouched
		assert.Equal(t, 4, m.NumNodes())
		assert.Equal(t, utils.Index{0, 1, 2, 0, 2, 3}, m.EToV)
		// Elevating again is rejected
		_, _, err = ElevateOrder(m2, nil)
		assert.True(t, errors.Is(err, utils.ErrInvalidInput))
	}
	{ // Node count is vertices plus unique edges, vertex columns are preserved
		for _, n := range []int{1, 2, 5} {
			m := gridMesh(t, n)
			V, E := m.NumNodes(), m.NumElements()
			m2, _, err := ElevateOrder(m, nil)
			require.NoError(t, err)
			assert.Equal(t, V+m.NumEdges(), m2.NumNodes())
			assert.NotEqual(t, V+3*E, m2.NumNodes())
			for k := 0; k < E; k++ {
				row := m2.Triangle(k)
				assert.Equal(t, m.Triangle(k), row[:3])
				for _, mid := range row[3:] {
					assert.Greater(t, mid, V-1)
				}
			}
			// kd-tree search gives the identical mesh
			m3, _, err := ElevateOrder(m, nil, ElevateOptions{Tolerance: utils.NODETOL, SpatialIndex: true})
			require.NoError(t, err)
			assert.Equal(t, m2.EToV, m3.EToV)
			assert.Equal(t, m2.Arena.Points, m3.Arena.Points)
		}
	}
	{ // Midpoint i is the midpoint of the side opposite vertex i
		m2, _, err := ElevateOrder(gridMesh(t, 2), nil)
		require.NoError(t, err)
		els, err := m2.Elements()
		require.NoError(t, err)
		for _, el := range els {
			tri6, ok := el.(*element.Tri6)
			require.True(t, ok)
			v := el.Vertices()
			for i, mid := range tri6.Midpoints() {
				a, b := v[(i+1)%3], v[(i+2)%3]
				assert.InDelta(t, 0.5*(a.X[0]+b.X[0]), mid.X[0], 1.e-15)
				assert.InDelta(t, 0.5*(a.X[1]+b.X[1]), mid.X[1], 1.e-15)
				bary, err := el.BaryCoordinates(mid)
				require.NoError(t, err)
				assert.InDelta(t, 0., bary[i], 1.e-12)
			}
		}
	}
}

func TestElevateBoundary(t *testing.T) {
	{ // All vertices of a single triangle on the boundary
		m := newTestMesh(t,
			[][]float64{{0, 0, 0}, {1, 0, 1}, {1, 2, 3}},
			[][]float64{{0, 1, 2}}, 1, utils.ZeroBased)
		bcIn := utils.Index{0, 1, 2}
		m2, bc, err := ElevateOrder(m, bcIn)
		require.NoError(t, err)
		assert.Equal(t, 6, m2.NumNodes())
		assert.Equal(t, 3, m2.Dim())
		assert.Equal(t, utils.Index{0, 1, 2, 3, 4, 5}, bc)
		assert.Equal(t, utils.Index{0, 1, 2}, bcIn)
	}
	{ // Only edges with both ends on the boundary add a boundary midpoint
		m := newTestMesh(t,
			[][]float64{{0, 0}, {1, 0}, {0, 1}},
			[][]float64{{0, 1, 2}}, 1, utils.ZeroBased)
		_, bc, err := ElevateOrder(m, utils.Index{0, 1})
		require.NoError(t, err)
		// Side 2 joins vertices 0 and 1 and is created third
		assert.Equal(t, utils.Index{0, 1, 5}, bc)
	}
	{ // Grid boundary, shared midpoints are added once
		m := gridMesh(t, 4)
		bn := m.BoundaryNodes()
		set := bn.Set()
		var expected int
		for _, e := range m.Edges() {
			v := e.Key.GetVertices()
			if isMember(set, v[0]) && isMember(set, v[1]) {
				expected++
			}
		}
		m2, bc, err := ElevateOrder(m, bn)
		require.NoError(t, err)
		assert.Equal(t, len(bn)+expected, len(bc))
		seen := make(map[int]bool)
		for _, b := range bc {
			assert.False(t, seen[b])
			seen[b] = true
		}
		for _, b := range bc[len(bn):] {
			assert.GreaterOrEqual(t, b, m.NumNodes())
			assert.Less(t, b, m2.NumNodes())
		}
	}
	{ // Out of range boundary nodes
		_, _, err := ElevateOrder(squareMesh(t), utils.Index{0, 9})
		assert.True(t, errors.Is(err, utils.ErrInvalidInput))
	}
}

func TestElevateSurface(t *testing.T) {
	// Closed surface of a tetrahedron: 4 vertices, 6 edges, no boundary
	m := newTestMesh(t,
		[][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		[][]float64{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {0, 3, 2}}, 1, utils.ZeroBased)
	assert.Equal(t, 0, len(m.BoundaryNodes()))
	m2, _, err := ElevateOrder(m, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, m2.NumNodes())
	assert.True(t, m2.IsSurface())
}

func TestElevateCoincidentVertex(t *testing.T) {
	// Vertex 3 sits on the midpoint of edge 0-1 without belonging to any triangle
	m := newTestMesh(t,
		[][]float64{{0, 0}, {2, 0}, {0, 2}, {1, 0}},
		[][]float64{{0, 1, 2}}, 1, utils.ZeroBased)
	for _, spatial := range []bool{false, true} {
		_, _, err := ElevateOrder(m, nil, ElevateOptions{Tolerance: utils.NODETOL, SpatialIndex: spatial})
		assert.True(t, errors.Is(err, utils.ErrInvalidInput))
	}
	_, _, err := ElevateOrder(nil, nil)
	assert.True(t, errors.Is(err, utils.ErrInvalidInput))
}
