package frame

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Sentinel errors for conditions that carry no extra data.
var (
	ErrNoTransforms             = errors.New("error no transforms: sample sequence is empty")
	ErrContainsDynamicTransform = errors.New("error path contains a dynamic transform")
)

// ErrInvalidFrameId reports a frame id the graph does not know about.
type ErrInvalidFrameId struct {
	FrameID FrameId
}

func (e *ErrInvalidFrameId) Error() string {
	return fmt.Sprintf("error invalid frame id: %q", e.FrameID)
}

// ErrNoTransformPath reports that the frame graph has zero simple paths
// between a TransformId's parent and child frame.
type ErrNoTransformPath struct {
	TransformID TransformId
}

func (e *ErrNoTransformPath) Error() string {
	return fmt.Sprintf("error no transform path from %q to %q", e.TransformID.ChildFrameID, e.TransformID.ParentFrameID)
}

// ErrMultipleTransformPaths reports that the frame graph has more than one
// simple path between a TransformId's parent and child frame, so the
// transform is ambiguous.
type ErrMultipleTransformPaths struct {
	TransformID TransformId
}

func (e *ErrMultipleTransformPaths) Error() string {
	return fmt.Sprintf("error multiple transform paths from %q to %q", e.TransformID.ChildFrameID, e.TransformID.ParentFrameID)
}

// ErrDuplicateTimestamp reports that a sample sequence has two samples with
// the same timestamp.
type ErrDuplicateTimestamp struct {
	Timestamp time.Time
}

func (e *ErrDuplicateTimestamp) Error() string {
	return fmt.Sprintf("error duplicate sample timestamp: %s", e.Timestamp.Format(time.RFC3339Nano))
}

// ErrChannelTransformCollisions reports that merging transform trees would
// require two input trees to define the same TransformId.
type ErrChannelTransformCollisions struct {
	TransformIDs []TransformId
}

func (e *ErrChannelTransformCollisions) Error() string {
	return fmt.Sprintf("error %d colliding transform ids across merged trees", len(e.TransformIDs))
}
