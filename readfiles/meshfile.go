package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/notargets/fembasis/InputParameters"
	"github.com/notargets/fembasis/utils"
)

// MeshFile holds the tables read from a mesh file, node numbers are zero based
type MeshFile struct {
	Title     string
	Dim       int
	Order     int
	Nodes     [][]float64
	Triangles [][]float64
	Boundary  map[string]utils.Index // Nodes on each tagged boundary, in file order
}

// ReadMeshFile reads SU2 (.su2) and Gambit neutral (.neu) files
func ReadMeshFile(filename string, verbose bool) (mf *MeshFile, err error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".su2":
		return ReadSU2(filename, verbose)
	case ".neu":
		return ReadGambit2d(filename, verbose)
	default:
		err = fmt.Errorf("%w: unknown mesh file type %q, expected .su2 or .neu", utils.ErrInvalidInput, filename)
	}
	return
}

func IsMeshFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".su2", ".neu":
		return true
	}
	return false
}

// BoundaryNodes returns the sorted union of all tagged boundary nodes
func (mf *MeshFile) BoundaryNodes() (bn utils.Index) {
	seen := make(map[int]struct{})
	for _, nodes := range mf.Boundary {
		for _, n := range nodes {
			if _, ok := seen[n]; !ok {
				seen[n] = struct{}{}
				bn = append(bn, n)
			}
		}
	}
	sort.Ints(bn)
	return
}

func (mf *MeshFile) Tags() (tags []string) {
	for tag := range mf.Boundary {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return
}

func (mf *MeshFile) MeshParameters() (mp *InputParameters.MeshParameters) {
	mp = &InputParameters.MeshParameters{
		Title:         mf.Title,
		Order:         mf.Order,
		Nodes:         mf.Nodes,
		Triangles:     mf.Triangles,
		BoundaryNodes: mf.BoundaryNodes(),
	}
	return
}

func (mf *MeshFile) addBoundary(tag string, nodes ...int) {
	if mf.Boundary == nil {
		mf.Boundary = make(map[string]utils.Index)
	}
	mf.Boundary[tag] = append(mf.Boundary[tag], nodes...)
}

// setOrder accepts the element order of the first element and rejects mixed orders
func (mf *MeshFile) setOrder(order int) (err error) {
	switch mf.Order {
	case 0:
		mf.Order = order
	case order:
	default:
		err = fmt.Errorf("%w: mixed order %d and order %d triangles", utils.ErrInvalidInput, mf.Order, order)
	}
	return
}

func openMesh(filename, kind string, verbose bool) (file *os.File, reader *bufio.Reader, err error) {
	if verbose {
		fmt.Printf("Reading %s file named: %s\n", kind, filename)
	}
	if file, err = os.Open(filename); err != nil {
		err = fmt.Errorf("unable to open file %s: %w", filename, err)
		return
	}
	reader = bufio.NewReader(file)
	return
}

func getLine(reader *bufio.Reader) (line string, err error) {
	line, err = reader.ReadString('\n')
	if err == io.EOF && len(line) != 0 {
		err = nil
	}
	if err == io.EOF {
		err = fmt.Errorf("%w: early end of file", utils.ErrInvalidInput)
	}
	line = strings.TrimRight(line, "\r\n")
	return
}

func skipLines(n int, reader *bufio.Reader) (err error) {
	for i := 0; i < n && err == nil; i++ {
		_, err = getLine(reader)
	}
	return
}

func parseInts(fields []string) (vals []int, err error) {
	vals = make([]int, len(fields))
	for i, f := range fields {
		if vals[i], err = strconv.Atoi(f); err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
		}
	}
	return
}

func parseFloats(fields []string) (vals []float64, err error) {
	vals = make([]float64, len(fields))
	for i, f := range fields {
		if vals[i], err = strconv.ParseFloat(f, 64); err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
		}
	}
	return
}

func toFloats(vals []int) (r []float64) {
	r = make([]float64, len(vals))
	for i, v := range vals {
		r[i] = float64(v)
	}
	return
}
