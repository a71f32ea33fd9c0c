package element

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/fembasis/geometry"
	"github.com/notargets/fembasis/utils"
)

// triangle carries the geometry shared by both orders, only the first three nodes are used
type triangle struct {
	id    int
	nodes utils.Index
	arena *geometry.Arena
}

func (t *triangle) ID() int            { return t.id }
func (t *triangle) Nodes() utils.Index { return t.nodes.Copy() }

func (t *triangle) Vertices() (v [3]geometry.Point) {
	for i := 0; i < 3; i++ {
		v[i] = t.arena.At(t.nodes[i])
	}
	return
}

// edges returns the two edge vectors from the base vertex and the squared longest edge
func (t *triangle) edges() (e1, e2 r3.Vec, scale float64) {
	v := t.Vertices()
	e1, e2 = v[1].Sub(v[0]), v[2].Sub(v[0])
	e3 := v[2].Sub(v[1])
	scale = math.Max(r3.Norm2(e1), math.Max(r3.Norm2(e2), r3.Norm2(e3)))
	return
}

func (t *triangle) Area() float64 {
	e1, e2, _ := t.edges()
	return 0.5 * r3.Norm(r3.Cross(e1, e2))
}

func (t *triangle) MapToPhysical(r, s float64) (p geometry.Point) {
	var (
		v      = t.Vertices()
		e1, e2 = v[1].Sub(v[0]), v[2].Sub(v[0])
	)
	x := r3.Add(v[0].XYZ(), r3.Add(r3.Scale(r, e1), r3.Scale(s, e2)))
	return geometry.NewPoint(-1, x.X, x.Y, x.Z, r, s)
}

func (t *triangle) BaryCoordinates(p geometry.Point) (bary [3]float64, err error) {
	var (
		v             = t.Vertices()
		e1, e2, scale = t.edges()
		d             = p.Sub(v[0])
	)
	switch t.arena.Dim {
	case 2:
		det := e1.X*e2.Y - e2.X*e1.Y
		if math.Abs(det) <= utils.DegenerateTol*scale {
			err = fmt.Errorf("%w: element %d has signed area %g", utils.ErrDegenerateElement, t.id, 0.5*det)
			return
		}
		bary[1] = (d.X*e2.Y - e2.X*d.Y) / det
		bary[2] = (e1.X*d.Y - d.X*e1.Y) / det
	default:
		// Surface element, least squares solution gives the coordinates of the projection onto the plane
		if area2 := r3.Norm(r3.Cross(e1, e2)); area2 <= utils.DegenerateTol*scale {
			err = fmt.Errorf("%w: element %d has area %g", utils.ErrDegenerateElement, t.id, 0.5*area2)
			return
		}
		T := mat.NewDense(3, 2, []float64{
			e1.X, e2.X,
			e1.Y, e2.Y,
			e1.Z, e2.Z,
		})
		var x mat.VecDense
		if err = x.SolveVec(T, mat.NewVecDense(3, []float64{d.X, d.Y, d.Z})); err != nil {
			err = fmt.Errorf("%w: element %d: %v", utils.ErrDegenerateElement, t.id, err)
			return
		}
		bary[1], bary[2] = x.AtVec(0), x.AtVec(1)
	}
	bary[0] = 1 - bary[1] - bary[2]
	return
}

func (t *triangle) IsPointInside(p geometry.Point) bool {
	bary, err := t.BaryCoordinates(p)
	if err != nil {
		return false
	}
	for _, l := range bary {
		if l < -utils.InsideTol || l > 1+utils.InsideTol {
			return false
		}
	}
	if t.arena.Dim == 3 {
		e1, e2, scale := t.edges()
		n := r3.Unit(r3.Cross(e1, e2))
		if math.Abs(r3.Dot(p.Sub(t.arena.At(t.nodes[0])), n)) > utils.InsideTol*math.Sqrt(scale) {
			return false
		}
	}
	return true
}
