package mesh

import (
	"fmt"
	"strings"

	"github.com/notargets/fembasis/element"
	"github.com/notargets/fembasis/geometry"
	"github.com/notargets/fembasis/utils"
)

/*
Mesh is an order 1 or order 2 triangulation of a planar (Dim 2) or surface (Dim 3) domain. Node
coordinates live once in the Arena, EToV is the flattened element to node table with rows of
length 3*Order. A Mesh is never modified after construction, order elevation builds a new one.
Arena and EToV are exported for reading only, callers must not write through them; Triangle,
NodeMatrix and TriangleMatrix return copies.
*/
type Mesh struct {
	Order  int
	K      int // Number of elements
	Arena  *geometry.Arena
	EToV   utils.Index
	elType element.ElementType
}

/*
NewMesh validates and normalizes caller tables:
  - nodes is nnodes x 2 (planar) or nnodes x 3 (surface)
  - triangles is K x 3*order holding integral node numbers, zero or one based per base
*/
func NewMesh(nodes, triangles utils.Matrix, order int, base utils.IndexBase) (m *Mesh, err error) {
	var (
		et     element.ElementType
		EToV   utils.Index
		nv, nd = nodes.Dims()
		K, nc  = triangles.Dims()
	)
	if et, err = element.ElementTypeForOrder(order); err != nil {
		return
	}
	if nd != 2 && nd != 3 {
		err = fmt.Errorf("%w: node table must have 2 or 3 columns, have %d", utils.ErrInvalidInput, nd)
		return
	}
	if nc != et.NumNodes() {
		err = fmt.Errorf("%w: order %d triangle table must have %d columns, have %d",
			utils.ErrInvalidInput, order, et.NumNodes(), nc)
		return
	}
	if nv == 0 || K == 0 {
		err = fmt.Errorf("%w: empty mesh, %d nodes and %d triangles", utils.ErrInvalidInput, nv, K)
		return
	}
	if EToV, err = triangles.ToIndex(); err != nil {
		return
	}
	EToV = EToV.Add(-base.Offset())
	if err = EToV.CheckRange(nv); err != nil {
		err = fmt.Errorf("%w (index base %s)", err, base)
		return
	}
	for k := 0; k < K; k++ {
		if hasRepeat(EToV.Row(k, nc)) {
			err = fmt.Errorf("%w: triangle %d repeats a node: %v", utils.ErrInvalidInput, k, EToV.Row(k, nc))
			return
		}
	}
	points := make([]geometry.Point, nv)
	for i := range points {
		points[i] = geometry.NewPoint(i, nodes.Row(i)...)
	}
	m = newMesh(et, geometry.NewArena(nd, points), EToV)
	return
}

func newMesh(et element.ElementType, arena *geometry.Arena, EToV utils.Index) *Mesh {
	return &Mesh{
		Order:  et.Order(),
		K:      len(EToV) / et.NumNodes(),
		Arena:  arena,
		EToV:   EToV,
		elType: et,
	}
}

func hasRepeat(row utils.Index) bool {
	for i := 0; i < len(row); i++ {
		for j := i + 1; j < len(row); j++ {
			if row[i] == row[j] {
				return true
			}
		}
	}
	return false
}

func (m *Mesh) NumNodes() int                    { return m.Arena.Len() }
func (m *Mesh) NumElements() int                 { return m.K }
func (m *Mesh) NodesPerElement() int             { return m.elType.NumNodes() }
func (m *Mesh) Dim() int                         { return m.Arena.Dim }
func (m *Mesh) IsSurface() bool                  { return m.Arena.Dim == 3 }
func (m *Mesh) ElementType() element.ElementType { return m.elType }

// Triangle returns a copy of the node row of element k
func (m *Mesh) Triangle(k int) utils.Index {
	return m.EToV.Row(k, m.NodesPerElement()).Copy()
}

func (m *Mesh) Element(k int) (el element.Element, err error) {
	if k < 0 || k >= m.K {
		err = fmt.Errorf("%w: element %d outside [0,%d)", utils.ErrInvalidInput, k, m.K)
		return
	}
	return element.NewElement(m.elType, k, m.Triangle(k), m.Arena)
}

func (m *Mesh) Elements() (els []element.Element, err error) {
	els = make([]element.Element, m.K)
	for k := range els {
		if els[k], err = m.Element(k); err != nil {
			return nil, err
		}
	}
	return
}

// Locate returns the first element containing p and the barycentric coordinates of p in it
func (m *Mesh) Locate(p geometry.Point) (k int, bary [3]float64, found bool) {
	for k = 0; k < m.K; k++ {
		el, err := m.Element(k)
		if err != nil || !el.IsPointInside(p) {
			continue
		}
		if bary, err = el.BaryCoordinates(p); err == nil {
			return k, bary, true
		}
	}
	return -1, bary, false
}

// NodeMatrix returns the node coordinates as a nnodes x Dim matrix
func (m *Mesh) NodeMatrix() (R utils.Matrix) {
	var (
		nv, nd = m.NumNodes(), m.Dim()
	)
	R = utils.NewMatrix(nv, nd)
	for i, p := range m.Arena.Points {
		R.SetRow(i, p.X[:nd])
	}
	R.SetReadOnly("Nodes")
	return
}

// TriangleMatrix returns the element table with node numbers offset for the requested base
func (m *Mesh) TriangleMatrix(base utils.IndexBase) (R utils.Matrix) {
	R = m.EToV.Add(base.Offset()).ToMatrix(m.K, m.NodesPerElement())
	R.SetReadOnly("Triangles")
	return
}

func (m *Mesh) String() string {
	return fmt.Sprintf("Mesh: Order = %d, Dim = %d, Nodes = %d, Elements = %d",
		m.Order, m.Dim(), m.NumNodes(), m.K)
}

func (m *Mesh) Print() (o string) {
	var (
		b   strings.Builder
		npe = m.NodesPerElement()
	)
	b.WriteString(m.String() + "\n")
	for _, p := range m.Arena.Points {
		b.WriteString(p.String() + "\n")
	}
	for k := 0; k < m.K; k++ {
		fmt.Fprintf(&b, "Tri[%d] = %v\n", k, []int(m.EToV.Row(k, npe)))
	}
	return b.String()
}
