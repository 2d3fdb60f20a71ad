package octree

import (
	"testing"

	"go.viam.com/test"
)

func TestAddCellOccupancyMarksAncestorsOccupied(t *testing.T) {
	leaf, err := NewOctantIndex(2, 3, 0, 0)
	test.That(t, err, test.ShouldBeNil)

	g := NewOctreeOccupancyGraph()
	g.AddCellOccupancy(leaf)

	test.That(t, g.IsCellOccupied(leaf), test.ShouldBeTrue)
	test.That(t, g.IsCellOccupied(Origin()), test.ShouldBeTrue)

	parent, ok := leaf.Parent()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, g.IsCellOccupied(parent), test.ShouldBeTrue)
}

func TestOccupiedCellIndicesOfLevel(t *testing.T) {
	a, err := NewOctantIndex(1, 0, 0, 0)
	test.That(t, err, test.ShouldBeNil)
	b, err := NewOctantIndex(1, 1, 0, 0)
	test.That(t, err, test.ShouldBeNil)

	g := NewOctreeOccupancyGraph()
	g.AddCellOccupancy(a)
	g.AddCellOccupancy(b)

	level1 := g.OccupiedCellIndicesOfLevel(1)
	test.That(t, len(level1), test.ShouldEqual, 2)
}
