package frame

import (
	"sort"
	"time"
)

// Edge is a single transform between a parent and child frame, either fixed
// for all time (StaticEdge) or varying over a sampled time series
// (DynamicEdge).
type Edge interface {
	ParentFrameID() FrameId
	ChildFrameID() FrameId
	TransformID() TransformId
	// AtTime resolves the edge's transform at t.
	AtTime(t time.Time) (Transform, error)
	IsStatic() bool
}

// StaticEdge is a transform edge that never changes.
type StaticEdge struct {
	Parent, Child FrameId
	Transform     Transform
}

// NewStaticEdge builds a StaticEdge, rejecting a self loop.
func NewStaticEdge(parent, child FrameId, transform Transform) (*StaticEdge, error) {
	if _, err := NewTransformId(parent, child); err != nil {
		return nil, err
	}
	return &StaticEdge{Parent: parent, Child: child, Transform: transform}, nil
}

func (e *StaticEdge) ParentFrameID() FrameId { return e.Parent }
func (e *StaticEdge) ChildFrameID() FrameId  { return e.Child }
func (e *StaticEdge) TransformID() TransformId {
	return TransformId{ParentFrameID: e.Parent, ChildFrameID: e.Child}
}
func (e *StaticEdge) AtTime(time.Time) (Transform, error) { return e.Transform, nil }
func (e *StaticEdge) IsStatic() bool                      { return true }

// DynamicEdge is a transform edge sampled at discrete timestamps, resolved
// at arbitrary query times via interpolation/extrapolation.
type DynamicEdge struct {
	Parent, Child FrameId
	Interpolation InterpolationMethod
	Extrapolation ExtrapolationMethod
	Samples       []TimedTransform
}

// NewDynamicEdge builds a DynamicEdge. samples is copied and sorted
// ascending by timestamp; duplicate timestamps are rejected.
func NewDynamicEdge(
	parent, child FrameId,
	interp InterpolationMethod,
	extrap ExtrapolationMethod,
	samples []TimedTransform,
) (*DynamicEdge, error) {
	if _, err := NewTransformId(parent, child); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrNoTransforms
	}
	sorted := append([]TimedTransform(nil), samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })
	for i := 1; i < len(sorted); i++ {
		if !sorted[i-1].Timestamp.Before(sorted[i].Timestamp) {
			return nil, &ErrDuplicateTimestamp{Timestamp: sorted[i].Timestamp}
		}
	}
	return &DynamicEdge{
		Parent:        parent,
		Child:         child,
		Interpolation: interp,
		Extrapolation: extrap,
		Samples:       sorted,
	}, nil
}

func (e *DynamicEdge) ParentFrameID() FrameId { return e.Parent }
func (e *DynamicEdge) ChildFrameID() FrameId  { return e.Child }
func (e *DynamicEdge) TransformID() TransformId {
	return TransformId{ParentFrameID: e.Parent, ChildFrameID: e.Child}
}
func (e *DynamicEdge) IsStatic() bool { return false }

func (e *DynamicEdge) AtTime(t time.Time) (Transform, error) {
	return interpolate(e.Samples, t, e.Interpolation, e.Extrapolation)
}

// SampleTimestamps returns the edge's sample timestamps in ascending order.
func (e *DynamicEdge) SampleTimestamps() []time.Time {
	out := make([]time.Time, len(e.Samples))
	for i, s := range e.Samples {
		out[i] = s.Timestamp
	}
	return out
}

// FirstSampleTime returns the earliest sample timestamp.
func (e *DynamicEdge) FirstSampleTime() time.Time { return e.Samples[0].Timestamp }

// LastSampleTime returns the latest sample timestamp.
func (e *DynamicEdge) LastSampleTime() time.Time { return e.Samples[len(e.Samples)-1].Timestamp }

// FilterSamplesByTime restricts the edge to samples within the half-open
// interval [start, end). Returns ErrNoTransforms if nothing remains.
func (e *DynamicEdge) FilterSamplesByTime(start, end time.Time) error {
	kept := make([]TimedTransform, 0, len(e.Samples))
	for _, s := range e.Samples {
		if !s.Timestamp.Before(start) && s.Timestamp.Before(end) {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return ErrNoTransforms
	}
	e.Samples = kept
	return nil
}
