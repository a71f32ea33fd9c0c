package geometry

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoint(t *testing.T) {
	{ // Coordinate defaults
		p := NewPoint(7, 1, 2)
		assert.Equal(t, 7, p.GetID())
		assert.Equal(t, [3]float64{1, 2, 0}, p.X)
		assert.Equal(t, [2]float64{0, 0}, p.RS)
		q := NewPoint(3, 1, 2, 3, 0.25, 0.5)
		assert.Equal(t, 3., q.Coord(2))
		assert.Equal(t, 0.5, q.Ref(1))
		assert.Panics(t, func() { NewPoint(0, 1, 2, 3, 4, 5, 6) })
	}
	{ // Equality ignores the id and the reference coordinates
		p := NewPoint(1, 1, 1, 0, 0.5, 0.5)
		q := NewPoint(2, 1+1.e-13, 1, 0)
		assert.True(t, p.Equal(q, 1.e-12))
		assert.False(t, p.Equal(NewPoint(1, 1.001, 1, 0), 1.e-12))
	}
	{ // Rename and midpoint
		a, b := NewPoint(0, 0, 0, 0), NewPoint(1, 2, 4, 6)
		m := Midpoint(a, b, 5)
		assert.Equal(t, 5, m.ID)
		assert.Equal(t, [3]float64{1, 2, 3}, m.X)
		r := m.WithID(9)
		assert.Equal(t, 9, r.ID)
		assert.Equal(t, 5, m.ID)
		v := b.Sub(a)
		assert.Equal(t, 6., v.Z)
		assert.Contains(t, m.String(), "Point[5]")
	}
}

func TestArena(t *testing.T) {
	a := NewArena(2, []Point{NewPoint(0, 0, 0), NewPoint(1, 1, 0)})
	assert.Equal(t, 2, a.Len())
	assert.True(t, a.Contains(1))
	assert.False(t, a.Contains(2))
	assert.False(t, a.Contains(-1))
	assert.Equal(t, 1., a.At(1).X[0])
	assert.Panics(t, func() { NewArena(4, nil) })
}

func TestPointIndex(t *testing.T) {
	{ // Empty index
		pi := NewPointIndex(1.e-12)
		_, found := pi.Find(NewPoint(0, 1, 1))
		assert.False(t, found)
		assert.Equal(t, 0, pi.Len())
	}
	{ // Bulk built index agrees with a linear scan
		r := rand.New(rand.NewSource(1))
		pts := make([]Point, 200)
		for i := range pts {
			pts[i] = NewPoint(i, r.Float64(), r.Float64(), r.Float64())
		}
		pi := NewPointIndex(1.e-12, pts...)
		require.Equal(t, 200, pi.Len())
		for i, p := range pts {
			idx, found := pi.Find(p.WithID(-1))
			assert.True(t, found)
			assert.Equal(t, i, idx)
		}
		_, found := pi.Find(NewPoint(0, 2, 2, 2))
		assert.False(t, found)
	}
	{ // Incremental inserts
		pi := NewPointIndex(1.e-9)
		for i := 0; i < 50; i++ {
			pi.Insert(NewPoint(0, float64(i), 0.5*float64(i)), 100+i)
		}
		assert.Equal(t, 50, pi.Len())
		idx, found := pi.Find(NewPoint(0, 10+1.e-10, 5))
		assert.True(t, found)
		assert.Equal(t, 110, idx)
		_, found = pi.Find(NewPoint(0, 10.5, 5.25))
		assert.False(t, found)
	}
}
