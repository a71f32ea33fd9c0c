package basis

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/fembasis/mesh"
	"github.com/notargets/fembasis/utils"
)

/*
ElementProperties holds, one row per element, the affine map from the reference triangle
(0,0),(1,0),(0,1) to the physical element:

	Transform is [xr, xs, yr, ys], the columns being the edge vectors V1-V0 and V2-V0
	DetJ      is xr*ys - xs*yr, twice the physical area
	Metric    is Tinv * Tinv^T, row-major
*/
type ElementProperties struct {
	K         int
	Transform utils.Matrix // K x 4
	DetJ      utils.Matrix // K x 1
	Metric    utils.Matrix // K x 4
}

// BuildElementProperties computes the properties of every element or fails on the first degenerate one
func BuildElementProperties(m *mesh.Mesh) (ep *ElementProperties, err error) {
	if m == nil {
		err = fmt.Errorf("%w: nil mesh", utils.ErrInvalidInput)
		return
	}
	var (
		K      = m.NumElements()
		npe    = m.NodesPerElement()
		Td     = make([]float64, 4*K)
		Jdetd  = make([]float64, K)
		Metd   = make([]float64, 4*K)
		Tinv   mat.Dense
		metric mat.Dense
	)
	for k := 0; k < K; k++ {
		tri := m.EToV.Row(k, npe)
		v1, v2, v3 := m.Arena.At(tri[0]), m.Arena.At(tri[1]), m.Arena.At(tri[2])
		xr, yr := v2.X[0]-v1.X[0], v2.X[1]-v1.X[1]
		xs, ys := v3.X[0]-v1.X[0], v3.X[1]-v1.X[1]
		// Transform is [xr, xs]
		//              [yr, ys]
		T := mat.NewDense(2, 2, []float64{xr, xs, yr, ys})
		det := xr*ys - xs*yr
		scale := math.Max(xr*xr+yr*yr, math.Max(xs*xs+ys*ys, (xs-xr)*(xs-xr)+(ys-yr)*(ys-yr)))
		if det <= utils.DegenerateTol*scale {
			err = fmt.Errorf("%w: element %d has Jacobian determinant %g", utils.ErrDegenerateElement, k, det)
			return nil, err
		}
		if err = Tinv.Inverse(T); err != nil {
			err = fmt.Errorf("%w: element %d: %v", utils.ErrDegenerateElement, k, err)
			return nil, err
		}
		metric.Mul(&Tinv, Tinv.T())
		copy(Td[4*k:], T.RawMatrix().Data)
		Jdetd[k] = det
		copy(Metd[4*k:], metric.RawMatrix().Data)
	}
	ep = &ElementProperties{
		K:         K,
		Transform: utils.NewMatrix(K, 4, Td),
		DetJ:      utils.NewMatrix(K, 1, Jdetd),
		Metric:    utils.NewMatrix(K, 4, Metd),
	}
	ep.Transform.SetReadOnly("Transform")
	ep.DetJ.SetReadOnly("DetJ")
	ep.Metric.SetReadOnly("Metric")
	return
}

func (ep *ElementProperties) TransformAt(k int) *mat.Dense {
	return mat.NewDense(2, 2, ep.Transform.Row(k))
}

func (ep *ElementProperties) MetricAt(k int) *mat.Dense {
	return mat.NewDense(2, 2, ep.Metric.Row(k))
}

func (ep *ElementProperties) DetJAt(k int) float64 {
	return ep.DetJ.At(k, 0)
}

func (ep *ElementProperties) Print() string {
	var b strings.Builder
	for k := 0; k < ep.K; k++ {
		t, g := ep.Transform.Row(k), ep.Metric.Row(k)
		fmt.Fprintf(&b, "Tri[%d] detJ = %8.5f T = [%8.5f %8.5f; %8.5f %8.5f] Metric = [%8.5f %8.5f; %8.5f %8.5f]\n",
			k, ep.DetJAt(k), t[0], t[1], t[2], t[3], g[0], g[1], g[2], g[3])
	}
	return b.String()
}
