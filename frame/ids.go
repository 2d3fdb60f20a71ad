// Package frame implements the rigid-body transform graph: frame and
// transform identifiers, interpolated/extrapolated samples, transform
// edges, the frame graph, and the TransformTree façade built on top of it.
package frame

import "github.com/pkg/errors"

// FrameId is an opaque, immutable identifier for a coordinate frame.
type FrameId string

// Well-known frame identifiers shared across documents and tooling.
const (
	FrameIDGlobal   FrameId = "global"
	FrameIDLocal    FrameId = "local"
	FrameIDBaseLink FrameId = "base_link"
	FrameIDMap      FrameId = "map"
	FrameIDSubmap   FrameId = "submap"
	FrameIDPlatform FrameId = "platform"
	FrameIDOdom     FrameId = "odom"
	FrameIDSensor   FrameId = "sensor"
)

// TransformId identifies a directed edge between two frames: a transform
// that takes points expressed in ChildFrameID into ParentFrameID.
type TransformId struct {
	ParentFrameID FrameId
	ChildFrameID  FrameId
}

// NewTransformId builds a TransformId, rejecting a self loop.
func NewTransformId(parent, child FrameId) (TransformId, error) {
	if parent == child {
		return TransformId{}, errors.Errorf("invalid transform id: parent and child frame are both %q", parent)
	}
	return TransformId{ParentFrameID: parent, ChildFrameID: child}, nil
}

func (id TransformId) String() string {
	return string(id.ParentFrameID) + "->" + string(id.ChildFrameID)
}

// FrameInfo carries the optional metadata a frame may be annotated with.
type FrameInfo struct {
	ID FrameId
	// Description is an optional human-readable label for the frame.
	Description *string
	// CRSEPSG is an optional EPSG code for the coordinate reference system
	// the frame is expressed in.
	CRSEPSG *uint32
}

// NewFrameInfo builds a FrameInfo with no description or CRS attached.
func NewFrameInfo(id FrameId) FrameInfo {
	return FrameInfo{ID: id}
}
