package frame

import (
	"testing"

	"go.viam.com/test"
)

const (
	fMap        FrameId = "map"
	fBaseLink   FrameId = "base_link"
	fGlobal     FrameId = "global"
	fSubmap     FrameId = "submap"
	fLidarLeft  FrameId = "lidar_front_left"
	fLidarRight FrameId = "lidar_front_right"
)

func idsFromPairs(pairs [][2]FrameId) []TransformId {
	out := make([]TransformId, 0, len(pairs))
	for _, p := range pairs {
		id, err := NewTransformId(p[0], p[1])
		if err != nil {
			panic(err)
		}
		out = append(out, id)
	}
	return out
}

func TestGetFrameIDPathThreeLevel(t *testing.T) {
	g, err := newGraph(idsFromPairs([][2]FrameId{
		{fMap, fBaseLink},
		{fBaseLink, fLidarLeft},
		{fBaseLink, fLidarRight},
	}))
	test.That(t, err, test.ShouldBeNil)

	id, err := NewTransformId(fMap, fLidarRight)
	test.That(t, err, test.ShouldBeNil)
	result, err := g.GetFrameIDPath(id)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result, test.ShouldResemble, []FrameId{fMap, fBaseLink, fLidarRight})
}

func TestGetFrameIDPathTwoDirectRootNodes(t *testing.T) {
	g, err := newGraph(idsFromPairs([][2]FrameId{
		{fMap, fSubmap},
		{fGlobal, fSubmap},
		{fBaseLink, fLidarRight},
	}))
	test.That(t, err, test.ShouldBeNil)

	id, err := NewTransformId(fGlobal, fSubmap)
	test.That(t, err, test.ShouldBeNil)
	result, err := g.GetFrameIDPath(id)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result, test.ShouldResemble, []FrameId{fGlobal, fSubmap})
}

func TestGetFrameIDPathTwoRootNodes(t *testing.T) {
	g, err := newGraph(idsFromPairs([][2]FrameId{
		{fSubmap, fBaseLink},
		{fMap, fSubmap},
		{fGlobal, fSubmap},
	}))
	test.That(t, err, test.ShouldBeNil)

	id, err := NewTransformId(fGlobal, fBaseLink)
	test.That(t, err, test.ShouldBeNil)
	result, err := g.GetFrameIDPath(id)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result, test.ShouldResemble, []FrameId{fGlobal, fSubmap, fBaseLink})
}

func TestGetFrameIDPathThreeLevelNodes(t *testing.T) {
	g, err := newGraph(idsFromPairs([][2]FrameId{
		{fGlobal, fSubmap},
		{fSubmap, fBaseLink},
		{fMap, fSubmap},
		{fBaseLink, fLidarLeft},
		{fBaseLink, fLidarRight},
	}))
	test.That(t, err, test.ShouldBeNil)

	id, err := NewTransformId(fGlobal, fLidarRight)
	test.That(t, err, test.ShouldBeNil)
	result, err := g.GetFrameIDPath(id)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result, test.ShouldResemble, []FrameId{fGlobal, fSubmap, fBaseLink, fLidarRight})
}

func TestRootFramesSingleRoot(t *testing.T) {
	g, err := newGraph(idsFromPairs([][2]FrameId{
		{fMap, fBaseLink},
		{fBaseLink, fLidarLeft},
		{fBaseLink, fLidarRight},
	}))
	test.That(t, err, test.ShouldBeNil)

	roots := g.RootFrames()
	test.That(t, len(roots), test.ShouldEqual, 1)
	test.That(t, roots[0], test.ShouldEqual, fMap)
}

func TestRootFramesMultipleDisconnectedRoots(t *testing.T) {
	g, err := newGraph(idsFromPairs([][2]FrameId{
		{fMap, fSubmap},
		{fGlobal, fBaseLink},
		{fBaseLink, fLidarRight},
	}))
	test.That(t, err, test.ShouldBeNil)

	roots := g.RootFrames()
	test.That(t, len(roots), test.ShouldEqual, 2)
}

func TestRootFramesConvergingRoots(t *testing.T) {
	g, err := newGraph(idsFromPairs([][2]FrameId{
		{fGlobal, fSubmap},
		{fSubmap, fBaseLink},
		{fMap, fSubmap},
		{fBaseLink, fLidarLeft},
	}))
	test.That(t, err, test.ShouldBeNil)

	roots := g.RootFrames()
	test.That(t, len(roots), test.ShouldEqual, 2)
	for _, r := range roots {
		test.That(t, r, test.ShouldNotEqual, fSubmap)
	}
}

func TestChildFramesConvergingToSingleChild(t *testing.T) {
	g, err := newGraph(idsFromPairs([][2]FrameId{
		{fGlobal, fSubmap},
		{fSubmap, fBaseLink},
		{fMap, fSubmap},
		{fBaseLink, fLidarLeft},
	}))
	test.That(t, err, test.ShouldBeNil)

	children := g.ChildFrames()
	test.That(t, len(children), test.ShouldEqual, 1)
	test.That(t, children[0], test.ShouldEqual, fLidarLeft)
}

func TestGetFrameIDPathNoPath(t *testing.T) {
	g, err := newGraph(idsFromPairs([][2]FrameId{
		{fMap, fBaseLink},
	}))
	test.That(t, err, test.ShouldBeNil)

	id, err := NewTransformId(fBaseLink, fMap)
	test.That(t, err, test.ShouldBeNil)
	_, err = g.GetFrameIDPath(id)
	test.That(t, err, test.ShouldNotBeNil)
	_, ok := err.(*ErrNoTransformPath)
	test.That(t, ok, test.ShouldBeTrue)
}

func TestGetFrameIDPathMultiplePaths(t *testing.T) {
	g, err := newGraph(idsFromPairs([][2]FrameId{
		{fGlobal, fMap},
		{fGlobal, fSubmap},
		{fMap, fBaseLink},
		{fSubmap, fBaseLink},
	}))
	test.That(t, err, test.ShouldBeNil)

	id, err := NewTransformId(fGlobal, fBaseLink)
	test.That(t, err, test.ShouldBeNil)
	_, err = g.GetFrameIDPath(id)
	test.That(t, err, test.ShouldNotBeNil)
	_, ok := err.(*ErrMultipleTransformPaths)
	test.That(t, ok, test.ShouldBeTrue)
}

func TestGetFrameIDPathInvalidFrameId(t *testing.T) {
	g, err := newGraph(idsFromPairs([][2]FrameId{
		{fMap, fBaseLink},
	}))
	test.That(t, err, test.ShouldBeNil)

	id, err := NewTransformId(fMap, "unknown")
	test.That(t, err, test.ShouldBeNil)
	_, err = g.GetFrameIDPath(id)
	test.That(t, err, test.ShouldNotBeNil)
	_, ok := err.(*ErrInvalidFrameId)
	test.That(t, ok, test.ShouldBeTrue)
}
