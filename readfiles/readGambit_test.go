package readfiles

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/fembasis/utils"
)

var gambitFile = []byte(`        CONTROL INFO 2.4.6
** GAMBIT NEUTRAL FILE
unit-square
PROGRAM:                Gambit     VERSION:  2.4.6
Oct 2026
     NUMNP     NELEM     NGRPS    NBSETS     NDFCD     NDFVL
         4         2         1         1         2         2
ENDOFSECTION
   NODAL COORDINATES 2.4.6
         1   0.00000000000e+00   0.00000000000e+00
         2   1.00000000000e+00   0.00000000000e+00
         4   0.00000000000e+00   1.00000000000e+00
         3   1.00000000000e+00   1.00000000000e+00
ENDOFSECTION
      ELEMENTS/CELLS 2.4.6
         1  3  3        1       2       3
         2  3  3        1       3       4
ENDOFSECTION
       ELEMENT GROUP 2.4.6
GROUP:           1 ELEMENTS:          2 MATERIAL:          2 NFLAGS:          1
                           fluid
       0
       1       2
ENDOFSECTION
 BOUNDARY CONDITIONS 2.4.6
                     Wall       1       2       0       6
         1       3       1
         2       3       3
ENDOFSECTION
`)

func TestReadGambit(t *testing.T) {
	mf, err := ParseGambit(bufio.NewReader(bytes.NewReader(gambitFile)), false)
	require.NoError(t, err)
	assert.Equal(t, "unit-square", mf.Title)
	assert.Equal(t, 2, mf.Dim)
	assert.Equal(t, 1, mf.Order)
	assert.Equal(t, []float64{1, 1}, mf.Nodes[2])
	assert.Equal(t, []float64{0, 2, 3}, mf.Triangles[1])
	// Face 1 of element 1 is edge 1-2, face 3 of element 2 is edge 4-1
	assert.Equal(t, utils.Index{0, 1, 3, 0}, mf.Boundary["wall"])
	assert.Equal(t, utils.Index{0, 1, 3}, mf.BoundaryNodes())

	mp := mf.MeshParameters()
	m, bc, err := mp.BuildMesh()
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumElements())
	assert.Equal(t, utils.Index{0, 1, 3}, bc)
}

func TestReadGambitQuadratic(t *testing.T) {
	input := strings.NewReplacer(
		"         4         2", "         6         1",
		"         2  3  3        1       3       4\n", "",
		"         1  3  3        1       2       3", "         1  3  6        1       4       2       5       3       6",
		"         2       3       3\n", "",
		"       2       0       6", "       1       0       6",
		"         1       3       1", "         1       3       2",
		"         3   1.00000000000e+00   1.00000000000e+00",
		"         3   0.00000000000e+00   1.00000000000e+00\n         5   5.00000000000e-01   5.00000000000e-01\n         6   0.00000000000e+00   5.00000000000e-01",
		"         4   0.00000000000e+00   1.00000000000e+00", "         4   5.00000000000e-01   0.00000000000e+00",
	).Replace(string(gambitFile))
	mf, err := ParseGambit(bufio.NewReader(strings.NewReader(input)), false)
	require.NoError(t, err)
	assert.Equal(t, 2, mf.Order)
	assert.Equal(t, 6, len(mf.Nodes))
	// Gambit corner, mid order becomes vertices then the midpoint opposite each vertex
	assert.Equal(t, []float64{0, 1, 2, 4, 5, 3}, mf.Triangles[0])
	// Face 2 is the edge between the second and third corners
	assert.Equal(t, utils.Index{1, 2, 4}, mf.Boundary["wall"])
	_, _, err = mf.MeshParameters().BuildMesh()
	require.NoError(t, err)
}

func TestReadGambitErrors(t *testing.T) {
	cases := map[string]*strings.Replacer{
		"quadrilateral": strings.NewReplacer("1  3  3        1       2       3", "1  2  4        1       2       3       4"),
		"missing node":  strings.NewReplacer("         4   0.00000000000e+00   1.00000000000e+00\n", ""),
		"repeated node": strings.NewReplacer("         4   0.00000000000e+00", "         1   0.00000000000e+00"),
		"bad face":      strings.NewReplacer("         2       3       3", "         2       3       4"),
		"node set":      strings.NewReplacer("Wall       1", "Wall       0"),
		"dimension":     strings.NewReplacer("         2         2\nENDOFSECTION", "         4         2\nENDOFSECTION"),
	}
	for name, r := range cases {
		_, err := ParseGambit(bufio.NewReader(strings.NewReader(r.Replace(string(gambitFile)))), false)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, utils.ErrInvalidInput), name)
	}
}

func TestReadMeshFile(t *testing.T) {
	dir := t.TempDir()
	neu := filepath.Join(dir, "square.neu")
	su2 := filepath.Join(dir, "channel.SU2")
	require.NoError(t, os.WriteFile(neu, gambitFile, 0644))
	require.NoError(t, os.WriteFile(su2, inputFile, 0644))

	assert.True(t, IsMeshFile(neu))
	assert.True(t, IsMeshFile(su2))
	assert.False(t, IsMeshFile("mesh.yaml"))

	mf, err := ReadMeshFile(neu, false)
	require.NoError(t, err)
	assert.Equal(t, "unit-square", mf.Title)

	mf, err = ReadMeshFile(su2, false)
	require.NoError(t, err)
	assert.Equal(t, "channel", mf.Title)
	assert.Equal(t, 22, len(mf.Triangles))

	_, err = ReadMeshFile(filepath.Join(dir, "mesh.yaml"), false)
	assert.True(t, errors.Is(err, utils.ErrInvalidInput))
	_, err = ReadMeshFile(filepath.Join(dir, "missing.su2"), false)
	assert.Error(t, err)
}
