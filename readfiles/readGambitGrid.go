package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/notargets/fembasis/utils"
)

const (
	gambitTriangle = 3 // Gambit element type for triangles, 3 or 6 nodes
)

// Gambit six node triangles run corner, mid, corner, mid, corner, mid
var gambitTri6Order = [6]int{0, 2, 4, 3, 5, 1}

// gambitFaceSide maps Gambit face numbers 1, 2, 3 (edges 01, 12, 20) to the opposite vertex
var gambitFaceSide = [3]int{2, 0, 1}

// ReadGambit2d reads triangles in 2D, or in 3D as a surface, with their boundary condition sets
func ReadGambit2d(filename string, verbose bool) (mf *MeshFile, err error) {
	file, reader, err := openMesh(filename, "Gambit Neutral", verbose)
	if err != nil {
		return
	}
	defer file.Close()
	if mf, err = ParseGambit(reader, verbose); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return
}

func ParseGambit(reader *bufio.Reader, verbose bool) (mf *MeshFile, err error) {
	var (
		line                             string
		Nv, K, Nmats, Nbcs, Nsd          int
		readHeader, readNodes, readElems bool
	)
	mf = &MeshFile{}
	// Control info and title
	if err = skipLines(2, reader); err != nil {
		return
	}
	if line, err = getLine(reader); err != nil {
		return
	}
	mf.Title = strings.TrimSpace(line)
	for {
		if line, err = reader.ReadString('\n'); err == io.EOF && len(strings.TrimSpace(line)) == 0 {
			err = nil
			break
		} else if err != nil && err != io.EOF {
			return nil, err
		}
		switch {
		case strings.Contains(line, "NUMNP"):
			if Nv, K, Nmats, Nbcs, Nsd, err = ReadHeader(reader); err != nil {
				return nil, err
			}
			if verbose {
				fmt.Printf("Nv = %d, K = %d\n", Nv, K)
				fmt.Printf("Nmats = %d, Nbcs = %d\n%d space dimensions\n", Nmats, Nbcs, Nsd)
			}
			if Nsd > 3 || Nsd < 2 {
				return nil, fmt.Errorf("%w: space dimensions %d not 2 or 3", utils.ErrInvalidInput, Nsd)
			}
			mf.Dim, readHeader = Nsd, true
		case strings.Contains(line, "NODAL COORDINATES"):
			if !readHeader {
				return nil, fmt.Errorf("%w: nodal coordinates before the size header", utils.ErrInvalidInput)
			}
			if mf.Nodes, err = ReadVertices(Nv, Nsd, reader); err != nil {
				return nil, err
			}
			readNodes = true
		case strings.Contains(line, "ELEMENTS/CELLS"):
			if !readHeader {
				return nil, fmt.Errorf("%w: elements before the size header", utils.ErrInvalidInput)
			}
			if err = ReadTris(K, reader, mf); err != nil {
				return nil, err
			}
			readElems = true
		case strings.Contains(line, "BOUNDARY CONDITIONS"):
			if !readElems {
				return nil, fmt.Errorf("%w: boundary conditions before elements", utils.ErrInvalidInput)
			}
			if err = ReadBCS(reader, mf); err != nil {
				return nil, err
			}
		}
	}
	if !readNodes || !readElems {
		err = fmt.Errorf("%w: missing nodal coordinates or elements", utils.ErrInvalidInput)
	}
	return
}

// ReadBCS adds the nodes of each listed element face, midpoint included for six node triangles
func ReadBCS(reader *bufio.Reader, mf *MeshFile) (err error) {
	/*
	                    Wall       1       2       0       6
	            1       3       1
	*/
	var (
		line string
		vals []int
	)
	if line, err = getLine(reader); err != nil {
		return
	}
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return fmt.Errorf("%w: badly formed boundary header [%s]", utils.ErrInvalidInput, line)
	}
	bctyp := strings.ToLower(fields[0])
	if fields[1] != "1" {
		// Node sets (itype 0) list nodes rather than element faces
		return fmt.Errorf("%w: boundary %s is not an element face set", utils.ErrInvalidInput, bctyp)
	}
	numfaces, err := readNumber(fields[2])
	if err != nil {
		return
	}
	for i := 0; i < numfaces; i++ {
		if vals, err = readInts(reader); err != nil {
			return
		}
		if len(vals) < 3 {
			return fmt.Errorf("%w: read fewer than required dimensions, line: %v", utils.ErrInvalidInput, vals)
		}
		k, face := vals[0]-1, vals[2]
		if k < 0 || k >= len(mf.Triangles) || face < 1 || face > 3 {
			return fmt.Errorf("%w: boundary %s face %d of element %d does not exist",
				utils.ErrInvalidInput, bctyp, face, vals[0])
		}
		var (
			tri  = mf.Triangles[k]
			side = gambitFaceSide[face-1]
		)
		mf.addBoundary(bctyp, int(tri[(side+1)%3]), int(tri[(side+2)%3]))
		if mf.Order == 2 {
			mf.addBoundary(bctyp, int(tri[3+side]))
		}
	}
	return
}

func ReadHeader(reader *bufio.Reader) (Nv, K, Nmats, Nbcs, Nsd int, err error) {
	/*
		Nv      // num nodes in mesh
		K       // num elements
		Nmats   // num material groups
		Nbcs    // num boundary groups
		Nsd;    // num space dimensions
	*/
	var (
		vals []int
	)
	nargs := 5
	if vals, err = readInts(reader); err != nil {
		return
	}
	if len(vals) < nargs {
		err = fmt.Errorf("%w: read fewer than %d dimensions, read %d", utils.ErrInvalidInput, nargs, len(vals))
		return
	}
	Nv, K, Nmats, Nbcs, Nsd = vals[0], vals[1], vals[2], vals[3], vals[4]
	return
}

func ReadVertices(Nv, Nsd int, reader *bufio.Reader) (nodes [][]float64, err error) {
	var (
		line string
		ind  int
		x    []float64
	)
	nodes = make([][]float64, Nv)
	for i := 0; i < Nv; i++ {
		if line, err = getLine(reader); err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) < Nsd+1 {
			err = fmt.Errorf("%w: read fewer than required dimensions, need %d, line: %s", utils.ErrInvalidInput, Nsd+1, line)
			return
		}
		if ind, err = readNumber(fields[0]); err != nil {
			return
		}
		if ind < 1 || ind > Nv || nodes[ind-1] != nil {
			err = fmt.Errorf("%w: node number %d is out of range or repeated", utils.ErrInvalidInput, ind)
			return
		}
		if x, err = parseFloats(fields[1 : Nsd+1]); err != nil {
			return
		}
		nodes[ind-1] = x
	}
	return
}

func ReadTris(K int, reader *bufio.Reader, mf *MeshFile) (err error) {
	//-------------------------------------
	// Triangles in 3D:
	//-------------------------------------
	// ENDOFSECTION
	//    ELEMENTS/CELLS 1.3.0
	//      1  3  3        1       2       3
	//      2  3  3        3       2       4
	var (
		vals []int
	)
	mf.Triangles = make([][]float64, K)
	for i := 0; i < K; i++ {
		if vals, err = readInts(reader); err != nil {
			return
		}
		if len(vals) < 3 {
			return fmt.Errorf("%w: read fewer than required dimensions, line: %v", utils.ErrInvalidInput, vals)
		}
		ind, typ, nn := vals[0], vals[1], vals[2]
		if typ != gambitTriangle || (nn != 3 && nn != 6) || len(vals) < 3+nn {
			return fmt.Errorf("%w: element %d of type %d with %d nodes is not a triangle",
				utils.ErrInvalidInput, ind, typ, nn)
		}
		if ind < 1 || ind > K || mf.Triangles[ind-1] != nil {
			return fmt.Errorf("%w: element number %d is out of range or repeated", utils.ErrInvalidInput, ind)
		}
		verts := utils.Index(vals[3 : 3+nn]).Add(-1)
		if nn == 6 {
			if err = mf.setOrder(2); err != nil {
				return
			}
			verts = verts.Subset(gambitTri6Order[:])
		} else if err = mf.setOrder(1); err != nil {
			return
		}
		mf.Triangles[ind-1] = toFloats(verts)
	}
	return
}
