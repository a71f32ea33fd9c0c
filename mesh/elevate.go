package mesh

import (
	"fmt"

	"github.com/notargets/fembasis/element"
	"github.com/notargets/fembasis/geometry"
	"github.com/notargets/fembasis/utils"
)

type ElevateOptions struct {
	Tolerance    float64 // Absolute tolerance for two midpoints to be the same node
	SpatialIndex bool    // Use a kd-tree instead of a linear scan to find existing midpoints
}

func DefaultElevateOptions() ElevateOptions {
	return ElevateOptions{Tolerance: utils.NODETOL}
}

/*
ElevateOrder converts an order 1 mesh into an order 2 mesh by adding a node at the midpoint of
every edge. Elements are visited in order and their sides in local order, side i being the edge
opposite vertex i, so new node numbers are assigned deterministically in element-then-side order.
A midpoint already created by a neighbor is reused.

When bcNodes is not nil, each new midpoint whose two edge vertices are both boundary nodes is
appended to a copy of bcNodes, which is returned as bcOut.
*/
func ElevateOrder(m *Mesh, bcNodes utils.Index, opts ...ElevateOptions) (m2 *Mesh, bcOut utils.Index, err error) {
	var (
		o = DefaultElevateOptions()
	)
	if len(opts) != 0 {
		o = opts[0]
	}
	if m == nil {
		err = fmt.Errorf("%w: nil mesh", utils.ErrInvalidInput)
		return
	}
	if m.Order != 1 {
		err = fmt.Errorf("%w: order elevation needs an order 1 mesh, have order %d", utils.ErrInvalidInput, m.Order)
		return
	}
	var (
		nv       = m.NumNodes()
		points   = make([]geometry.Point, nv, nv+3*m.K)
		EToV     = make(utils.Index, 6*m.K)
		vertices = geometry.NewPointIndex(o.Tolerance, m.Arena.Points...)
		mids     midpointLocator
		bcSet    map[int]struct{}
	)
	copy(points, m.Arena.Points)
	if o.SpatialIndex {
		mids = &treeLocator{geometry.NewPointIndex(o.Tolerance)}
	} else {
		mids = &scanLocator{start: nv, tol: o.Tolerance}
	}
	if bcNodes != nil {
		if err = bcNodes.CheckRange(nv); err != nil {
			err = fmt.Errorf("boundary nodes: %w", err)
			return
		}
		bcOut = bcNodes.Copy()
		bcSet = bcNodes.Set()
	}
	for k := 0; k < m.K; k++ {
		tri := m.EToV.Row(k, 3)
		row := EToV.Row(k, 6)
		copy(row, tri)
		for side := 0; side < 3; side++ {
			ev := SideVertices(tri, side)
			mid := geometry.Midpoint(points[ev[0]], points[ev[1]], len(points))
			idx, found := mids.Find(mid)
			if !found {
				if vi, hit := vertices.Find(mid); hit {
					err = fmt.Errorf("%w: midpoint of edge %v in element %d coincides with vertex %d",
						utils.ErrInvalidInput, ev, k, vi)
					return nil, nil, err
				}
				idx = len(points)
				points = append(points, mid)
				mids.Insert(mid, idx)
				if bcSet != nil && isMember(bcSet, ev[0]) && isMember(bcSet, ev[1]) {
					bcOut = append(bcOut, idx)
				}
			}
			row[3+side] = idx
		}
	}
	m2 = newMesh(element.Order2Triangle, geometry.NewArena(m.Dim(), points), EToV)
	return
}

func isMember(set map[int]struct{}, i int) bool {
	_, ok := set[i]
	return ok
}

type midpointLocator interface {
	Find(p geometry.Point) (idx int, found bool)
	Insert(p geometry.Point, idx int)
}

// scanLocator searches every previously inserted midpoint, O(E^2) over a whole mesh
type scanLocator struct {
	start int
	tol   float64
	mids  []geometry.Point
}

func (sl *scanLocator) Find(p geometry.Point) (idx int, found bool) {
	for i, q := range sl.mids {
		if p.Equal(q, sl.tol) {
			return sl.start + i, true
		}
	}
	return -1, false
}

func (sl *scanLocator) Insert(p geometry.Point, idx int) {
	if idx != sl.start+len(sl.mids) {
		panic(fmt.Errorf("midpoints must be inserted in sequence, expected %d, have %d", sl.start+len(sl.mids), idx))
	}
	sl.mids = append(sl.mids, p)
}

type treeLocator struct {
	*geometry.PointIndex
}
