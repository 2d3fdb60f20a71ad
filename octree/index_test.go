package octree

import (
	"testing"

	"go.viam.com/test"
)

func TestBasicIndexConstruction(t *testing.T) {
	_, err := NewOctantIndex(2, 1, 3, 0)
	test.That(t, err, test.ShouldBeNil)
}

func TestIndexOutOfBounds(t *testing.T) {
	_, err := NewOctantIndex(0, 1, 0, 0)
	test.That(t, err, test.ShouldNotBeNil)
	outOfBounds, ok := err.(*ErrOctantIndexOutOfBounds)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, outOfBounds.MaximumIndex, test.ShouldEqual, uint64(0))
}

func TestParent(t *testing.T) {
	index, err := NewOctantIndex(2, 3, 0, 0)
	test.That(t, err, test.ShouldBeNil)

	parent, ok := index.Parent()
	test.That(t, ok, test.ShouldBeTrue)

	expected, err := NewOctantIndex(1, 1, 0, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, parent, test.ShouldResemble, expected)
}

func TestRootHasNoParent(t *testing.T) {
	_, ok := Origin().Parent()
	test.That(t, ok, test.ShouldBeFalse)
}

func TestAncestorsIncludesSelfAndRoot(t *testing.T) {
	index, err := NewOctantIndex(2, 3, 2, 1)
	test.That(t, err, test.ShouldBeNil)

	ancestors := index.Ancestors()
	test.That(t, len(ancestors), test.ShouldEqual, 3)
	test.That(t, ancestors[0], test.ShouldResemble, index)
	test.That(t, ancestors[len(ancestors)-1], test.ShouldResemble, Origin())
}

func TestChildrenAreEightDistinctOctants(t *testing.T) {
	index, err := NewOctantIndex(1, 1, 0, 1)
	test.That(t, err, test.ShouldBeNil)

	children := index.Children()
	seen := make(map[OctantIndex]bool)
	for _, c := range children {
		test.That(t, c.Level, test.ShouldEqual, index.Level+1)
		seen[c] = true
	}
	test.That(t, len(seen), test.ShouldEqual, 8)
}

func TestMortonIndexOrdersByZCurve(t *testing.T) {
	origin, err := NewOctantIndex(2, 0, 0, 0)
	test.That(t, err, test.ShouldBeNil)
	next, err := NewOctantIndex(2, 1, 0, 0)
	test.That(t, err, test.ShouldBeNil)

	originMorton, err := origin.MortonIndex()
	test.That(t, err, test.ShouldBeNil)
	nextMorton, err := next.MortonIndex()
	test.That(t, err, test.ShouldBeNil)

	test.That(t, originMorton, test.ShouldEqual, uint64(0))
	test.That(t, nextMorton, test.ShouldEqual, uint64(1))
}

func TestSortByMortonIndicesOrdersByLevelThenMorton(t *testing.T) {
	deep, err := NewOctantIndex(2, 0, 0, 0)
	test.That(t, err, test.ShouldBeNil)
	shallow, err := NewOctantIndex(1, 1, 1, 1)
	test.That(t, err, test.ShouldBeNil)

	sorted, err := SortByMortonIndices([]OctantIndex{deep, shallow})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sorted[0].Index, test.ShouldResemble, shallow)
	test.That(t, sorted[1].Index, test.ShouldResemble, deep)
}
