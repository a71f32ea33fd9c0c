package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

/*
Point is an identified mesh node. X holds the physical coordinates, planar meshes leave X[2] at
zero. RS holds the coordinates on the reference triangle and is only populated for reference
element nodes.
*/
type Point struct {
	ID int
	X  [3]float64
	RS [2]float64
}

// NewPoint takes up to five coordinates: x, y, z, then the reference r, s
func NewPoint(id int, coords ...float64) (p Point) {
	if len(coords) > 5 {
		panic(fmt.Errorf("a point has at most 5 coordinates, have %d", len(coords)))
	}
	p.ID = id
	for i, c := range coords {
		if i < 3 {
			p.X[i] = c
		} else {
			p.RS[i-3] = c
		}
	}
	return
}

func (p Point) GetID() int             { return p.ID }
func (p Point) Coord(i int) float64    { return p.X[i] }
func (p Point) Ref(i int) float64      { return p.RS[i] }
func (p Point) XYZ() r3.Vec            { return r3.Vec{X: p.X[0], Y: p.X[1], Z: p.X[2]} }
func (p Point) WithID(id int) Point    { p.ID = id; return p }
func (p Point) Sub(q Point) (v r3.Vec) { return r3.Sub(p.XYZ(), q.XYZ()) }

// Equal compares physical coordinates within an absolute tolerance, the id is ignored
func (p Point) Equal(q Point, tol float64) bool {
	for i := 0; i < 3; i++ {
		if !scalar.EqualWithinAbs(p.X[i], q.X[i], tol) {
			return false
		}
	}
	return true
}

func Midpoint(a, b Point, id int) (m Point) {
	m.ID = id
	for i := 0; i < 3; i++ {
		m.X[i] = 0.5 * (a.X[i] + b.X[i])
	}
	return
}

func (p Point) String() string {
	return fmt.Sprintf("Point[%d] X = [%8.5f,%8.5f,%8.5f] RS = [%8.5f,%8.5f]",
		p.ID, p.X[0], p.X[1], p.X[2], p.RS[0], p.RS[1])
}

/*
Arena is the node table of one mesh. Elements refer to nodes by their index in Points and never
hold copies, two elements sharing an edge midpoint share the same arena slot. Points is
read-only once the arena is handed to a mesh.
*/
type Arena struct {
	Points []Point
	Dim    int // 2 for planar meshes, 3 for surface meshes
}

func NewArena(dim int, points []Point) (a *Arena) {
	if dim != 2 && dim != 3 {
		panic(fmt.Errorf("arena dimension must be 2 or 3, have %d", dim))
	}
	return &Arena{Points: points, Dim: dim}
}

func (a *Arena) Len() int            { return len(a.Points) }
func (a *Arena) At(i int) Point      { return a.Points[i] }
func (a *Arena) Contains(i int) bool { return i >= 0 && i < len(a.Points) }
