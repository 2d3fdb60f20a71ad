package ecoordio

import (
	"testing"
	"time"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/tum-gis/ecoord/frame"
)

func identityKittiRow() string {
	return "1 0 0 0 0 1 0 0 0 0 1 0"
}

func TestDecodeKittiSynthesizesLinearTimestamps(t *testing.T) {
	data := []byte(identityKittiRow() + "\n" + identityKittiRow() + "\n")

	start := time.Unix(0, 0).UTC()
	end := time.Unix(10, 0).UTC()
	tree, err := DecodeKitti(data, KittiOptions{
		Start: start, End: end,
		TrajectoryParentFrameID: "map", TrajectoryChildFrameID: "vehicle",
		GlobalFrameID: "global",
	})
	test.That(t, err, test.ShouldBeNil)

	id, err := frame.NewTransformId("map", "vehicle")
	test.That(t, err, test.ShouldBeNil)
	samples, err := tree.ComputeTimedTransformsForAllSamples(id)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(samples), test.ShouldEqual, 2)
	test.That(t, samples[0].Timestamp, test.ShouldResemble, start)
	test.That(t, samples[1].Timestamp, test.ShouldResemble, start.Add(5*time.Second))
}

func TestDecodeKittiRejectsNonRotationMatrix(t *testing.T) {
	data := []byte("2 0 0 0 0 1 0 0 0 0 1 0\n")

	_, err := DecodeKitti(data, KittiOptions{
		Start: time.Unix(0, 0).UTC(), End: time.Unix(1, 0).UTC(),
		TrajectoryParentFrameID: "map", TrajectoryChildFrameID: "vehicle",
		GlobalFrameID: "global",
	})
	test.That(t, err, test.ShouldEqual, ErrIsometryNotDerivable)
}

func TestDecodeKittiWithLocalOriginOffsetAddsStaticEdge(t *testing.T) {
	data := []byte(identityKittiRow() + "\n")
	offset := r3.Vector{X: 1, Y: 2, Z: 3}

	tree, err := DecodeKitti(data, KittiOptions{
		Start: time.Unix(0, 0).UTC(), End: time.Unix(1, 0).UTC(),
		TrajectoryParentFrameID: "map", TrajectoryChildFrameID: "vehicle",
		GlobalFrameID: "global", LocalOriginOffset: &offset,
	})
	test.That(t, err, test.ShouldBeNil)

	id, err := frame.NewTransformId("global", "map")
	test.That(t, err, test.ShouldBeNil)
	result, err := tree.GetStaticTransform(id)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.Translation.X, test.ShouldEqual, 1.0)
}
