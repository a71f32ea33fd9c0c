package element

import (
	"fmt"

	"github.com/notargets/fembasis/geometry"
	"github.com/notargets/fembasis/utils"
)

type ElementType uint8

const (
	Order1Triangle ElementType = iota // 3 vertices
	Order2Triangle                    // 3 vertices followed by 3 edge midpoints
)

func ElementTypeForOrder(order int) (et ElementType, err error) {
	switch order {
	case 1:
		et = Order1Triangle
	case 2:
		et = Order2Triangle
	default:
		err = fmt.Errorf("%w: element order must be 1 or 2, have %d", utils.ErrInvalidInput, order)
	}
	return
}

func (et ElementType) NumNodes() int {
	switch et {
	case Order1Triangle:
		return 3
	case Order2Triangle:
		return 6
	default:
		panic("unknown option")
	}
}

func (et ElementType) Order() int {
	switch et {
	case Order1Triangle:
		return 1
	case Order2Triangle:
		return 2
	default:
		panic("unknown option")
	}
}

func (et ElementType) String() string {
	switch et {
	case Order1Triangle:
		return "Order1Triangle"
	case Order2Triangle:
		return "Order2Triangle"
	default:
		panic("unknown option")
	}
}

/*
Element is one mesh cell. The node ordering is vertices first, then for order 2 the edge
midpoints, midpoint i lying on the edge opposite vertex i:

	        V2
	        | \
	       M1  M0
	        |    \
	        V0-M2-V1
*/
type Element interface {
	ID() int
	Type() ElementType
	Nodes() utils.Index
	Vertices() [3]geometry.Point
	// BaryCoordinates fails with utils.ErrDegenerateElement on a collapsed element
	BaryCoordinates(p geometry.Point) (bary [3]float64, err error)
	// IsPointInside uses closed-region semantics, edge and vertex points are inside
	IsPointInside(p geometry.Point) bool
	Area() float64
	MapToPhysical(r, s float64) geometry.Point
	String() string
}

// NewElement builds the variant for et over nodes held in arena
func NewElement(et ElementType, id int, nodes utils.Index, arena *geometry.Arena) (el Element, err error) {
	if arena == nil {
		err = fmt.Errorf("%w: element %d has no node table", utils.ErrInvalidElement, id)
		return
	}
	if len(nodes) != et.NumNodes() {
		err = fmt.Errorf("%w: element %d of type %s needs %d nodes, have %d",
			utils.ErrInvalidElement, id, et, et.NumNodes(), len(nodes))
		return
	}
	for _, n := range nodes {
		if !arena.Contains(n) {
			err = fmt.Errorf("%w: element %d references node %d, node table has %d nodes",
				utils.ErrInvalidElement, id, n, arena.Len())
			return
		}
	}
	tri := triangle{id: id, nodes: nodes, arena: arena}
	switch et {
	case Order1Triangle:
		el = &Tri3{tri}
	case Order2Triangle:
		el = &Tri6{tri}
	}
	return
}

type Tri3 struct {
	triangle
}

func (t *Tri3) Type() ElementType { return Order1Triangle }

func (t *Tri3) String() string {
	return fmt.Sprintf("Tri3[%d] nodes = %v", t.id, []int(t.nodes))
}

type Tri6 struct {
	triangle
}

func (t *Tri6) Type() ElementType { return Order2Triangle }

func (t *Tri6) String() string {
	return fmt.Sprintf("Tri6[%d] nodes = %v", t.id, []int(t.nodes))
}

// Midpoints returns the edge nodes, Midpoints()[i] lies opposite vertex i
func (t *Tri6) Midpoints() (mids [3]geometry.Point) {
	for i := 0; i < 3; i++ {
		mids[i] = t.arena.At(t.nodes[3+i])
	}
	return
}

/*
ReferenceNodes returns the nodes of the reference triangle (0,0),(1,0),(0,1) for et with their
reference coordinates set. The physical coordinates equal the reference ones.
*/
func ReferenceNodes(et ElementType) (pts []geometry.Point) {
	rs := [][2]float64{{0, 0}, {1, 0}, {0, 1}, {0.5, 0.5}, {0, 0.5}, {0.5, 0}}
	pts = make([]geometry.Point, et.NumNodes())
	for i := range pts {
		pts[i] = geometry.NewPoint(i, rs[i][0], rs[i][1], 0, rs[i][0], rs[i][1])
	}
	return
}

// ReferenceElement is the element of type et over its own reference node table
func ReferenceElement(et ElementType) (el Element) {
	var err error
	arena := geometry.NewArena(2, ReferenceNodes(et))
	if el, err = NewElement(et, 0, utils.NewRange(0, et.NumNodes()-1), arena); err != nil {
		panic(err)
	}
	return
}
