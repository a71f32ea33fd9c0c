package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/notargets/fembasis/mesh"
	"github.com/notargets/fembasis/utils"
)

// Mesh description obtained from the YAML input file, ghodss/yaml maps keys through the json tags
type MeshParameters struct {
	Title         string      `json:"Title"`
	Order         int         `json:"Order"`
	IndexBase     int         `json:"IndexBase"` // 0 or 1, applies to Triangles and BoundaryNodes
	Nodes         [][]float64 `json:"Nodes"`
	Triangles     [][]float64 `json:"Triangles"`
	BoundaryNodes []int       `json:"BoundaryNodes,omitempty"`
	AutoBoundary  bool        `json:"AutoBoundary,omitempty"` // Derive boundary nodes from edges used by one element
	Tolerance     float64     `json:"Tolerance,omitempty"`
	SpatialIndex  bool        `json:"SpatialIndex,omitempty"`
}

func (mp *MeshParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, mp)
}

func (mp *MeshParameters) Marshal() ([]byte, error) {
	return yaml.Marshal(mp)
}

func (mp *MeshParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", mp.Title)
	fmt.Printf("[%d]\t\t\t\t= Order\n", mp.Order)
	fmt.Printf("[%d]\t\t\t\t= Index Base\n", mp.IndexBase)
	fmt.Printf("[%d]\t\t\t\t= Nodes\n", len(mp.Nodes))
	fmt.Printf("[%d]\t\t\t\t= Triangles\n", len(mp.Triangles))
	fmt.Printf("[%d]\t\t\t\t= Boundary Nodes\n", len(mp.BoundaryNodes))
	fmt.Printf("%8.2e\t\t= Tolerance\n", mp.GetTolerance())
	fmt.Printf("[%v]\t\t\t= Spatial Index\n", mp.SpatialIndex)
}

func (mp *MeshParameters) Base() (base utils.IndexBase, err error) {
	switch mp.IndexBase {
	case 0:
		base = utils.ZeroBased
	case 1:
		base = utils.OneBased
	default:
		err = fmt.Errorf("%w: IndexBase must be 0 or 1, have %d", utils.ErrInvalidInput, mp.IndexBase)
	}
	return
}

func (mp *MeshParameters) GetTolerance() float64 {
	if mp.Tolerance <= 0 {
		return utils.NODETOL
	}
	return mp.Tolerance
}

func (mp *MeshParameters) ElevateOptions() mesh.ElevateOptions {
	return mesh.ElevateOptions{Tolerance: mp.GetTolerance(), SpatialIndex: mp.SpatialIndex}
}

// BuildMesh returns the mesh and its zero based boundary nodes, nil when none are described
func (mp *MeshParameters) BuildMesh() (m *mesh.Mesh, bc utils.Index, err error) {
	var (
		base             utils.IndexBase
		nodes, triangles utils.Matrix
	)
	if base, err = mp.Base(); err != nil {
		return
	}
	if nodes, err = utils.NewMatrixFromRows(mp.Nodes); err != nil {
		err = fmt.Errorf("Nodes: %w", err)
		return
	}
	if triangles, err = utils.NewMatrixFromRows(mp.Triangles); err != nil {
		err = fmt.Errorf("Triangles: %w", err)
		return
	}
	if m, err = mesh.NewMesh(nodes, triangles, mp.Order, base); err != nil {
		return nil, nil, err
	}
	switch {
	case len(mp.BoundaryNodes) != 0:
		bc = utils.Index(mp.BoundaryNodes).Add(-base.Offset())
		if err = bc.CheckRange(m.NumNodes()); err != nil {
			return nil, nil, fmt.Errorf("BoundaryNodes: %w", err)
		}
	case mp.AutoBoundary:
		bc = m.BoundaryNodes()
	}
	return
}

// NewMeshParameters describes m, with node numbers written in the given base
func NewMeshParameters(title string, m *mesh.Mesh, bc utils.Index, base utils.IndexBase) (mp *MeshParameters) {
	var (
		nodes = m.NodeMatrix()
		tris  = m.TriangleMatrix(base)
	)
	mp = &MeshParameters{
		Title:     title,
		Order:     m.Order,
		IndexBase: base.Offset(),
		Nodes:     make([][]float64, m.NumNodes()),
		Triangles: make([][]float64, m.NumElements()),
	}
	for i := range mp.Nodes {
		mp.Nodes[i] = nodes.Row(i)
	}
	for k := range mp.Triangles {
		mp.Triangles[k] = tris.Row(k)
	}
	if bc != nil {
		mp.BoundaryNodes = bc.Add(base.Offset())
	}
	return
}
