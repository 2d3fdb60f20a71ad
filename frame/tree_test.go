package frame

import (
	"testing"
	"time"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func mustStatic(t *testing.T, parent, child FrameId, tr Transform) *StaticEdge {
	t.Helper()
	e, err := NewStaticEdge(parent, child, tr)
	test.That(t, err, test.ShouldBeNil)
	return e
}

func TestTreeGetStaticTransformComposesAlongPath(t *testing.T) {
	a := mustStatic(t, fMap, fBaseLink, NewTransform(r3.Vector{X: 1}, IdentityQuaternion()))
	b := mustStatic(t, fBaseLink, fLidarRight, NewTransform(r3.Vector{X: 2}, IdentityQuaternion()))

	tree, err := NewTree([]Edge{a, b}, nil)
	test.That(t, err, test.ShouldBeNil)

	id, err := NewTransformId(fMap, fLidarRight)
	test.That(t, err, test.ShouldBeNil)
	result, err := tree.GetStaticTransform(id)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.Translation.X, test.ShouldEqual, 3.0)
}

func TestTreeGetStaticTransformFailsOnDynamicEdge(t *testing.T) {
	a := mustStatic(t, fMap, fBaseLink, IdentityTransform())
	dyn, err := NewDynamicEdge(fBaseLink, fLidarRight, InterpolationLinear, ExtrapolationConstant, []TimedTransform{
		{Timestamp: time.Unix(0, 0).UTC(), Transform: IdentityTransform()},
		{Timestamp: time.Unix(1, 0).UTC(), Transform: IdentityTransform()},
	})
	test.That(t, err, test.ShouldBeNil)

	tree, err := NewTree([]Edge{a, dyn}, nil)
	test.That(t, err, test.ShouldBeNil)

	id, err := NewTransformId(fMap, fLidarRight)
	test.That(t, err, test.ShouldBeNil)
	_, err = tree.GetStaticTransform(id)
	test.That(t, err, test.ShouldEqual, ErrContainsDynamicTransform)
}

func TestTreeIsTransformPathStatic(t *testing.T) {
	a := mustStatic(t, fMap, fBaseLink, IdentityTransform())
	dyn, err := NewDynamicEdge(fBaseLink, fLidarRight, InterpolationLinear, ExtrapolationConstant, []TimedTransform{
		{Timestamp: time.Unix(0, 0).UTC(), Transform: IdentityTransform()},
		{Timestamp: time.Unix(1, 0).UTC(), Transform: IdentityTransform()},
	})
	test.That(t, err, test.ShouldBeNil)
	tree, err := NewTree([]Edge{a, dyn}, nil)
	test.That(t, err, test.ShouldBeNil)

	staticID, err := NewTransformId(fMap, fBaseLink)
	test.That(t, err, test.ShouldBeNil)
	isStatic, err := tree.IsTransformPathStatic(staticID)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, isStatic, test.ShouldBeTrue)

	mixedID, err := NewTransformId(fMap, fLidarRight)
	test.That(t, err, test.ShouldBeNil)
	isStatic, err = tree.IsTransformPathStatic(mixedID)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, isStatic, test.ShouldBeFalse)
}

func TestTreeStaticSnapshotAtResolvesDynamicEdges(t *testing.T) {
	dyn, err := NewDynamicEdge(fMap, fBaseLink, InterpolationLinear, ExtrapolationConstant, []TimedTransform{
		{Timestamp: time.Unix(0, 0).UTC(), Transform: NewTransform(r3.Vector{X: 0}, IdentityQuaternion())},
		{Timestamp: time.Unix(10, 0).UTC(), Transform: NewTransform(r3.Vector{X: 10}, IdentityQuaternion())},
	})
	test.That(t, err, test.ShouldBeNil)
	tree, err := NewTree([]Edge{dyn}, nil)
	test.That(t, err, test.ShouldBeNil)

	snapshot, err := tree.StaticSnapshotAt(time.Unix(5, 0).UTC())
	test.That(t, err, test.ShouldBeNil)

	id, err := NewTransformId(fMap, fBaseLink)
	test.That(t, err, test.ShouldBeNil)
	result, err := snapshot.GetStaticTransform(id)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.Translation.X, test.ShouldEqual, 5.0)
}

func TestTreeInsertAndRemoveTransform(t *testing.T) {
	tree, err := NewTree(nil, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tree.IsEmpty(), test.ShouldBeTrue)

	edge := mustStatic(t, fMap, fBaseLink, IdentityTransform())
	test.That(t, tree.InsertEdge(edge), test.ShouldBeNil)
	test.That(t, tree.ContainsFrame(fMap), test.ShouldBeTrue)
	test.That(t, tree.ContainsFrame(fBaseLink), test.ShouldBeTrue)

	id, err := NewTransformId(fMap, fBaseLink)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tree.ContainsTransform(id), test.ShouldBeTrue)

	test.That(t, tree.RemoveTransform(id), test.ShouldBeNil)
	test.That(t, tree.ContainsTransform(id), test.ShouldBeFalse)
}

func TestTreeComputeTimedTransformsForAllSamples(t *testing.T) {
	dyn, err := NewDynamicEdge(fMap, fBaseLink, InterpolationLinear, ExtrapolationConstant, []TimedTransform{
		{Timestamp: time.Unix(0, 0).UTC(), Transform: NewTransform(r3.Vector{X: 0}, IdentityQuaternion())},
		{Timestamp: time.Unix(10, 0).UTC(), Transform: NewTransform(r3.Vector{X: 10}, IdentityQuaternion())},
	})
	test.That(t, err, test.ShouldBeNil)
	tree, err := NewTree([]Edge{dyn}, nil)
	test.That(t, err, test.ShouldBeNil)

	id, err := NewTransformId(fMap, fBaseLink)
	test.That(t, err, test.ShouldBeNil)
	samples, err := tree.ComputeTimedTransformsForAllSamples(id)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(samples), test.ShouldEqual, 2)
	test.That(t, samples[0].Transform.Translation.X, test.ShouldEqual, 0.0)
	test.That(t, samples[1].Transform.Translation.X, test.ShouldEqual, 10.0)
}
