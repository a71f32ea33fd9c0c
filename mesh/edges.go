package mesh

import (
	"fmt"
	"math"
	"sort"

	"github.com/notargets/fembasis/utils"
)

/*
EdgeKey is an always positive number that stores an edge's vertices as indices in a way that can be compared
An edge between vertices [4] and [0] will always be stored as [0,4], in the ascending order of the index values
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	// This packs two index coordinates into two 32 bit unsigned integers to act as a hash and an indirect access method
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeKey(uint64(i1) + uint64(i2)<<32)
	return
}

func (ek EdgeKey) GetVertices() (verts [2]int) {
	verts[1] = int(ek >> 32)
	verts[0] = int(ek & math.MaxUint32)
	return
}

// SideVertices returns the vertices of the side opposite local vertex side
func SideVertices(tri utils.Index, side int) (verts [2]int) {
	return [2]int{tri[(side+1)%3], tri[(side+2)%3]}
}

// EdgeUse is an edge with the elements that reference it, in element-then-side order
type EdgeUse struct {
	Key      EdgeKey
	Elements []int
	Sides    []int
}

func (eu EdgeUse) IsBoundary() bool { return len(eu.Elements) == 1 }

// Edges lists the unique vertex edges in the order they are first met walking elements then sides
func (m *Mesh) Edges() (edges []EdgeUse) {
	var (
		npe   = m.NodesPerElement()
		index = make(map[EdgeKey]int, 3*m.K/2+1)
	)
	for k := 0; k < m.K; k++ {
		tri := m.EToV.Row(k, npe)
		for side := 0; side < 3; side++ {
			ek := NewEdgeKey(SideVertices(tri, side))
			i, ok := index[ek]
			if !ok {
				i = len(edges)
				index[ek] = i
				edges = append(edges, EdgeUse{Key: ek})
			}
			edges[i].Elements = append(edges[i].Elements, k)
			edges[i].Sides = append(edges[i].Sides, side)
		}
	}
	return
}

func (m *Mesh) NumEdges() int { return len(m.Edges()) }

// BoundaryNodes returns, sorted, the vertices on edges used by a single element
func (m *Mesh) BoundaryNodes() (bn utils.Index) {
	seen := make(map[int]struct{})
	for _, e := range m.Edges() {
		if !e.IsBoundary() {
			continue
		}
		for _, v := range e.Key.GetVertices() {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				bn = append(bn, v)
			}
		}
	}
	sort.Ints(bn)
	return
}

// NodeConnectivity is the symmetric nnodes x nnodes pattern of nodes sharing an element
func (m *Mesh) NodeConnectivity() (C utils.CSR) {
	var (
		nv  = m.NumNodes()
		npe = m.NodesPerElement()
		D   = utils.NewDOK(nv, nv)
	)
	for k := 0; k < m.K; k++ {
		row := m.EToV.Row(k, npe)
		for _, i := range row {
			for _, j := range row {
				D.Set(i, j, 1)
			}
		}
	}
	C = D.ToCSR()
	C.SetReadOnly("NodeConnectivity")
	return
}
