package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// PointIndex answers "is there already a node here" queries in O(log n) using a kd-tree
type PointIndex struct {
	tree *kdtree.Tree
	tol  float64
}

func NewPointIndex(tol float64, points ...Point) (pi *PointIndex) {
	pi = &PointIndex{tol: tol}
	if len(points) != 0 {
		ips := make(indexedPoints, len(points))
		for i, p := range points {
			ips[i] = indexedPoint{idx: i, x: p.X}
		}
		pi.tree = kdtree.New(ips, false)
	}
	return
}

func (pi *PointIndex) Len() int {
	if pi.tree == nil {
		return 0
	}
	return pi.tree.Count
}

// Insert records p under the caller's index idx
func (pi *PointIndex) Insert(p Point, idx int) {
	ip := indexedPoint{idx: idx, x: p.X}
	if pi.tree == nil {
		pi.tree = kdtree.New(indexedPoints{ip}, false)
		return
	}
	pi.tree.Insert(ip, false)
}

// Find returns the index of a stored point equal to p within the tolerance
func (pi *PointIndex) Find(p Point) (idx int, found bool) {
	if pi.tree == nil || pi.tree.Root == nil {
		return -1, false
	}
	c, _ := pi.tree.Nearest(indexedPoint{x: p.X})
	if c == nil {
		return -1, false
	}
	nearest := c.(indexedPoint)
	if !p.Equal(Point{X: nearest.x}, pi.tol) {
		return -1, false
	}
	return nearest.idx, true
}

type indexedPoint struct {
	idx int
	x   [3]float64
}

func (p indexedPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(indexedPoint)
	if d > 2 {
		panic(fmt.Errorf("illegal dimension %d", d))
	}
	return p.x[d] - q.x[d]
}

func (p indexedPoint) Dims() int { return 3 }

// Distance is the squared Euclidean distance, as kdtree expects
func (p indexedPoint) Distance(c kdtree.Comparable) (d float64) {
	q := c.(indexedPoint)
	for i := 0; i < 3; i++ {
		dx := p.x[i] - q.x[i]
		d += dx * dx
	}
	return
}

type indexedPoints []indexedPoint

func (p indexedPoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p indexedPoints) Len() int                              { return len(p) }
func (p indexedPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

func (p indexedPoints) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(plane{indexedPoints: p, Dim: d},
		kdtree.MedianOfRandoms(plane{indexedPoints: p, Dim: d}, 100))
}

// plane orders points along one axis for kd-tree construction
type plane struct {
	indexedPoints
	kdtree.Dim
}

func (p plane) Less(i, j int) bool {
	return p.indexedPoints[i].x[p.Dim] < p.indexedPoints[j].x[p.Dim]
}

func (p plane) Swap(i, j int) {
	p.indexedPoints[i], p.indexedPoints[j] = p.indexedPoints[j], p.indexedPoints[i]
}

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{indexedPoints: p.indexedPoints[start:end], Dim: p.Dim}
}
