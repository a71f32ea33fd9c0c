package utils

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

type Matrix struct {
	M        *mat.Dense
	readOnly bool
	name     string
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v\n", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{
		m,
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// NewMatrixFromRows builds a matrix from equal length rows, a ragged input is an error
func NewMatrixFromRows(rows [][]float64) (R Matrix, err error) {
	if len(rows) == 0 {
		err = fmt.Errorf("%w: no rows supplied", ErrInvalidInput)
		return
	}
	nc := len(rows[0])
	if nc == 0 {
		err = fmt.Errorf("%w: empty first row", ErrInvalidInput)
		return
	}
	data := make([]float64, 0, len(rows)*nc)
	for i, row := range rows {
		if len(row) != nc {
			err = fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidInput, i, len(row), nc)
			return
		}
		data = append(data, row...)
	}
	R = NewMatrix(len(rows), nc, data)
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }
func (m Matrix) Data() []float64           { return m.M.RawMatrix().Data }
func (m Matrix) IsReadOnly() bool          { return m.readOnly }

// Chainable methods (extended)
func (m *Matrix) SetReadOnly(name ...string) Matrix {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

// Row returns a copy of row i
func (m Matrix) Row(i int) (r []float64) {
	var (
		nr, nc = m.Dims()
	)
	i = lim(i, nr)
	r = make([]float64, nc)
	copy(r, m.M.RawRowView(i))
	return
}

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	var (
		nr, nc = m.Dims()
	)
	i, j = lim(i, nr), lim(j, nc)
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) SetRow(i int, data []float64) Matrix { // Changes receiver
	var (
		nr, _ = m.Dims()
	)
	i = lim(i, nr)
	m.checkWritable()
	m.M.SetRow(i, data)
	return m
}

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		dataR  = make([]float64, nr*nc)
	)
	copy(dataR, m.Data())
	R = NewMatrix(nr, nc, dataR)
	return
}

// ToIndex converts integral matrix entries into a row-major Index
func (m Matrix) ToIndex() (I Index, err error) {
	var (
		data = m.Data()
	)
	I = make(Index, len(data))
	for i, val := range data {
		iv := int(val)
		if float64(iv) != val {
			err = fmt.Errorf("%w: matrix entry %v at position %d is not an integer", ErrInvalidInput, val, i)
			return
		}
		I[i] = iv
	}
	return
}

func (m Matrix) Print(format ...string) (o string) {
	var (
		nr, nc = m.Dims()
		f      = "%8.5f"
		b      strings.Builder
	)
	if len(format) != 0 {
		f = format[0]
	}
	fmt.Fprintf(&b, "%s = [%d x %d]\n", m.name, nr, nc)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			fmt.Fprintf(&b, f+" ", m.At(i, j))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Matrix) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

func lim(i, imax int) int {
	if i < 0 || i > imax-1 {
		err := fmt.Errorf("index out of bounds: index = %d, max_bounds = %d", i, imax-1)
		panic(err)
	}
	return i
}
