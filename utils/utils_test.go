package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix(t *testing.T) {
	{ // Rows and integer conversion
		M, err := NewMatrixFromRows([][]float64{{0, 1, 2}, {2, 1, 3}})
		require.NoError(t, err)
		nr, nc := M.Dims()
		assert.Equal(t, 2, nr)
		assert.Equal(t, 3, nc)
		assert.Equal(t, []float64{2, 1, 3}, M.Row(1))
		I, err := M.ToIndex()
		require.NoError(t, err)
		assert.Equal(t, Index{0, 1, 2, 2, 1, 3}, I)
		assert.Equal(t, Index{2, 1, 3}, I.Row(1, 3))
	}
	{ // Ragged rows
		_, err := NewMatrixFromRows([][]float64{{0, 1, 2}, {2, 1}})
		assert.True(t, errors.Is(err, ErrInvalidInput))
		_, err = NewMatrixFromRows(nil)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	}
	{ // Non integral entries
		M := NewMatrix(1, 3, []float64{0, 1.5, 2})
		_, err := M.ToIndex()
		assert.True(t, errors.Is(err, ErrInvalidInput))
	}
	{ // Read only
		M := NewMatrix(2, 2)
		M.Set(0, 0, 1)
		M.SetReadOnly("M")
		assert.Panics(t, func() { M.Set(0, 1, 1) })
		C := M.Copy()
		assert.NotPanics(t, func() { C.Set(0, 1, 1) })
		assert.Equal(t, 1., M.At(0, 0))
		assert.Equal(t, 0., M.At(0, 1))
	}
}

func TestIndex(t *testing.T) {
	I := NewRange(2, 5)
	assert.Equal(t, Index{2, 3, 4, 5}, I)
	assert.Equal(t, Index{3, 4, 5, 6}, I.Add(1))
	assert.Equal(t, Index{5, 2}, I.Subset(Index{3, 0}))
	assert.NoError(t, I.CheckRange(6))
	assert.True(t, errors.Is(I.CheckRange(5), ErrInvalidInput))
	_, ok := I.Set()[4]
	assert.True(t, ok)
	assert.Panics(t, func() { I.Row(2, 2) })
	c := I.Copy()
	c[0] = 100
	assert.Equal(t, 2, I[0])
	assert.Nil(t, Index(nil).Copy())
	assert.Equal(t, 0, len(NewRange(3, 2)))
}

func TestSparse(t *testing.T) {
	D := NewDOK(3, 3)
	D.Set(0, 2, 1).Set(0, 1, 1).Set(2, 0, 1)
	assert.Equal(t, 3, D.NNZ())
	C := D.ToCSR()
	C.SetReadOnly("C")
	assert.Equal(t, Index{1, 2}, C.RowNonZeros(0))
	assert.Equal(t, 0, len(C.RowNonZeros(1)))
	assert.Equal(t, 1., C.At(2, 0))
}

func TestIndexBase(t *testing.T) {
	assert.Equal(t, 0, ZeroBased.Offset())
	assert.Equal(t, 1, OneBased.Offset())
	assert.Equal(t, "OneBased", OneBased.String())
}
