package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/notargets/fembasis/utils"
)

// From here: https://su2code.github.io/docs_v7/Mesh-File/
// Quadratic types follow the VTK numbering SU2 borrows
type SU2ElementType uint8

const (
	ELType_LINE              SU2ElementType = 3
	ELType_Triangle                         = 5
	ELType_Quadrilateral                    = 9
	ELType_Tetrahedral                      = 10
	ELType_Hexahedral                       = 12
	ELType_Prism                            = 13
	ELType_Pyramid                          = 14
	ELType_QuadraticEdge                    = 21
	ELType_QuadraticTriangle                = 22
)

// VTK quadratic triangles list midpoints of edges 01, 12, 20, ours are opposite vertices 0, 1, 2
var vtkTri6Order = [6]int{0, 1, 2, 4, 5, 3}

func ReadSU2(filename string, verbose bool) (mf *MeshFile, err error) {
	file, reader, err := openMesh(filename, "SU2", verbose)
	if err != nil {
		return
	}
	defer file.Close()
	if mf, err = ParseSU2(reader); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	mf.Title = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if verbose {
		fmt.Printf("Read %d dimensional data, %d nodes, %d order %d triangles, markers %v\n",
			mf.Dim, len(mf.Nodes), len(mf.Triangles), mf.Order, mf.Tags())
	}
	return
}

func ParseSU2(reader *bufio.Reader) (mf *MeshFile, err error) {
	var (
		key, value string
	)
	mf = &MeshFile{}
	for {
		if key, value, err = getToken(reader); err == io.EOF {
			err = nil
			break
		} else if err != nil {
			return nil, err
		}
		switch key {
		case "NDIME":
			if mf.Dim, err = readNumber(value); err == nil && mf.Dim != 2 && mf.Dim != 3 {
				err = fmt.Errorf("%w: NDIME must be 2 or 3, have %d", utils.ErrInvalidInput, mf.Dim)
			}
		case "NELEM":
			err = readElements(reader, value, mf)
		case "NPOIN":
			err = readVertices(reader, value, mf)
		case "NMARK":
			err = readBCs(reader, value, mf)
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", key, err)
		}
	}
	return
}

func readBCs(reader *bufio.Reader, value string, mf *MeshFile) (err error) {
	var (
		key, label string
		nEdges     int
		vals       []int
	)
	NBCs, err := readNumber(value)
	if err != nil {
		return
	}
	for n := 0; n < NBCs; n++ {
		if key, label, err = getToken(reader); err != nil || key != "MARKER_TAG" {
			return badToken("MARKER_TAG", key, err)
		}
		if key, value, err = getToken(reader); err != nil || key != "MARKER_ELEMS" {
			return badToken("MARKER_ELEMS", key, err)
		}
		if nEdges, err = readNumber(value); err != nil {
			return
		}
		for i := 0; i < nEdges; i++ {
			if vals, err = readInts(reader); err != nil {
				return
			}
			var nv int
			switch SU2ElementType(vals[0]) {
			case ELType_LINE:
				nv = 2
			case ELType_QuadraticEdge:
				nv = 3
			default:
				return fmt.Errorf("%w: marker %s element type %d, only line elements bound triangles",
					utils.ErrInvalidInput, label, vals[0])
			}
			if len(vals) < nv+1 {
				return fmt.Errorf("%w: marker %s edge %d has %d nodes, need %d",
					utils.ErrInvalidInput, label, i, len(vals)-1, nv)
			}
			mf.addBoundary(label, vals[1:nv+1]...)
		}
	}
	return
}

func readVertices(reader *bufio.Reader, value string, mf *MeshFile) (err error) {
	var (
		line string
		x    []float64
	)
	if mf.Dim == 0 {
		return fmt.Errorf("%w: NDIME must precede NPOIN", utils.ErrInvalidInput)
	}
	Nv, err := readNumber(value)
	if err != nil {
		return
	}
	mf.Nodes = make([][]float64, Nv)
	for i := 0; i < Nv; i++ {
		if line, err = getLine(reader); err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) < mf.Dim {
			return fmt.Errorf("%w: unable to read coordinates from [%s]", utils.ErrInvalidInput, line)
		}
		if x, err = parseFloats(fields[:mf.Dim]); err != nil {
			return
		}
		mf.Nodes[i] = x
	}
	return
}

func readElements(reader *bufio.Reader, value string, mf *MeshFile) (err error) {
	var (
		vals []int
	)
	K, err := readNumber(value)
	if err != nil {
		return
	}
	mf.Triangles = make([][]float64, K)
	for k := 0; k < K; k++ {
		if vals, err = readInts(reader); err != nil {
			return
		}
		var (
			nType = SU2ElementType(vals[0])
			verts = vals[1:]
		)
		switch {
		case nType == ELType_Triangle && len(verts) >= 3:
			err = mf.setOrder(1)
			mf.Triangles[k] = toFloats(verts[:3])
		case nType == ELType_QuadraticTriangle && len(verts) >= 6:
			err = mf.setOrder(2)
			tri := make([]int, 6)
			for i, j := range vtkTri6Order {
				tri[i] = verts[j]
			}
			mf.Triangles[k] = toFloats(tri)
		default:
			err = fmt.Errorf("%w: element %d of type %d with %d nodes is not a triangle",
				utils.ErrInvalidInput, k, nType, len(verts))
		}
		if err != nil {
			return
		}
	}
	return
}

// getToken returns the next "KEY= value" pair, skipping blank and % comment lines, io.EOF at the end
func getToken(reader *bufio.Reader) (key, value string, err error) {
	var (
		line string
	)
	for {
		line, err = reader.ReadString('\n')
		if err == io.EOF && len(strings.TrimSpace(line)) != 0 {
			err = nil
		}
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if len(line) == 0 || strings.HasPrefix(line, "%") {
			continue
		}
		ind := strings.Index(line, "=")
		if ind < 0 {
			err = fmt.Errorf("%w: badly formed input line [%s], should have an =", utils.ErrInvalidInput, line)
			return
		}
		key, value = strings.TrimSpace(line[:ind]), strings.TrimSpace(line[ind+1:])
		return
	}
}

// readNumber reads the first field of a token value, some writers follow NPOIN with a second count
func readNumber(value string) (num int, err error) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: missing number", utils.ErrInvalidInput)
	}
	if num, err = strconv.Atoi(fields[0]); err != nil || num < 0 {
		err = fmt.Errorf("%w: unable to read number from token: [%s]", utils.ErrInvalidInput, value)
	}
	return
}

func readInts(reader *bufio.Reader) (vals []int, err error) {
	var line string
	if line, err = getLine(reader); err != nil {
		return
	}
	if vals, err = parseInts(strings.Fields(line)); err == nil && len(vals) == 0 {
		err = fmt.Errorf("%w: empty data line", utils.ErrInvalidInput)
	}
	return
}

func badToken(want, have string, err error) error {
	if err == io.EOF {
		err = fmt.Errorf("%w: early end of file", utils.ErrInvalidInput)
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: expected %s, have %s", utils.ErrInvalidInput, want, have)
}
