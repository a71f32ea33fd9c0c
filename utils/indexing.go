package utils

import (
	"fmt"
)

type Index []int

func NewIndex(N int) (I Index) {
	return make(Index, N)
}

func NewRange(rmin, rmax int) (r Index) {
	var (
		size = rmax - rmin + 1 // INCLUSIVE RANGE
	)
	if size < 0 {
		size = 0
	}
	r = make(Index, size)
	for i := range r {
		r[i] = i + rmin
	}
	return
}

func (I Index) Add(val int) (r Index) {
	r = make(Index, len(I))
	for i, ival := range I {
		r[i] = val + ival
	}
	return r
}

func (I Index) Subset(J Index) (r Index) {
	r = make(Index, len(J))
	for j, val := range J {
		r[j] = I[val]
	}
	return
}

func (I Index) Copy() (r Index) {
	if I == nil {
		return nil
	}
	r = make(Index, len(I))
	copy(r, I)
	return
}

// Row returns a view of row k of a row-major index with rows of length stride
func (I Index) Row(k, stride int) (r Index) {
	if k < 0 || (k+1)*stride > len(I) {
		panic(fmt.Errorf("row %d out of bounds for index of length %d, stride %d", k, len(I), stride))
	}
	return I[k*stride : (k+1)*stride : (k+1)*stride]
}

// Set returns a membership map of the index values
func (I Index) Set() (s map[int]struct{}) {
	s = make(map[int]struct{}, len(I))
	for _, val := range I {
		s[val] = struct{}{}
	}
	return
}

// CheckRange verifies every value lies in [0, n)
func (I Index) CheckRange(n int) (err error) {
	for i, val := range I {
		if val < 0 || val > n-1 {
			err = fmt.Errorf("%w: index value %d at position %d outside [0,%d)", ErrInvalidInput, val, i, n)
			return
		}
	}
	return
}

func (I Index) ToMatrix(nr, nc int) (R Matrix) {
	if nr*nc != len(I) {
		panic(fmt.Errorf("dimension mismatch: %d x %d vs index length %d", nr, nc, len(I)))
	}
	data := make([]float64, len(I))
	for i, val := range I {
		data[i] = float64(val)
	}
	return NewMatrix(nr, nc, data)
}
