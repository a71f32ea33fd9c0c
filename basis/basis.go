package basis

import (
	"fmt"

	"github.com/notargets/fembasis/mesh"
	"github.com/notargets/fembasis/utils"
)

// Basis describes a nodal FEM basis over a mesh, one basis function per node
type Basis struct {
	Mesh       *mesh.Mesh
	Order      int
	NBasis     int
	Properties *ElementProperties // nil for surface meshes
}

// NewBasis computes element properties for planar meshes, surface meshes carry none
func NewBasis(m *mesh.Mesh) (b *Basis, err error) {
	if m == nil {
		err = fmt.Errorf("%w: nil mesh", utils.ErrInvalidInput)
		return
	}
	b = &Basis{
		Mesh:   m,
		Order:  m.Order,
		NBasis: m.NumNodes(),
	}
	if !m.IsSurface() {
		if b.Properties, err = BuildElementProperties(m); err != nil {
			return nil, err
		}
	}
	return
}

func (b *Basis) HasProperties() bool { return b.Properties != nil }

// Pattern is the nonzero structure of any matrix coupling basis functions through shared elements
func (b *Basis) Pattern() utils.CSR {
	return b.Mesh.NodeConnectivity()
}

func (b *Basis) String() string {
	return fmt.Sprintf("Basis: Order = %d, NBasis = %d, Properties = %v, %s",
		b.Order, b.NBasis, b.HasProperties(), b.Mesh)
}
