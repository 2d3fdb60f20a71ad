package frame

import (
	"sort"
	"time"

	"github.com/samber/lo"
)

// Tree is the primary façade over a set of transform edges: insertion and
// removal, static snapshots, path-composed queries, and static/dynamic
// classification. Grounded on original_source's TransformTree 1:1.
type Tree struct {
	Edges  map[TransformId]Edge
	Frames map[FrameId]FrameInfo
	graph  *Graph
}

// NewTree builds a Tree from a list of edges and a list of frame metadata.
// Frames referenced by an edge but missing from frames get a default
// FrameInfo synthesized for them.
func NewTree(edges []Edge, frames []FrameInfo) (*Tree, error) {
	edgeMap := make(map[TransformId]Edge, len(edges))
	for _, e := range edges {
		edgeMap[e.TransformID()] = e
	}
	frameMap := make(map[FrameId]FrameInfo, len(frames))
	for _, f := range frames {
		frameMap[f.ID] = f
	}
	for id := range edgeMap {
		if _, ok := frameMap[id.ParentFrameID]; !ok {
			frameMap[id.ParentFrameID] = NewFrameInfo(id.ParentFrameID)
		}
		if _, ok := frameMap[id.ChildFrameID]; !ok {
			frameMap[id.ChildFrameID] = NewFrameInfo(id.ChildFrameID)
		}
	}

	ids := make([]TransformId, 0, len(edgeMap))
	for id := range edgeMap {
		ids = append(ids, id)
	}
	graph, err := newGraph(ids)
	if err != nil {
		return nil, err
	}
	return &Tree{Edges: edgeMap, Frames: frameMap, graph: graph}, nil
}

// IsEmpty reports whether the tree has no edges.
func (t *Tree) IsEmpty() bool { return len(t.Edges) == 0 }

// ContainsFrame reports whether id is a known frame.
func (t *Tree) ContainsFrame(id FrameId) bool {
	_, ok := t.Frames[id]
	return ok
}

// ContainsTransform reports whether id is a known transform edge.
func (t *Tree) ContainsTransform(id TransformId) bool {
	_, ok := t.Edges[id]
	return ok
}

func (t *Tree) rebuildGraph() error {
	ids := make([]TransformId, 0, len(t.Edges))
	for id := range t.Edges {
		ids = append(ids, id)
	}
	graph, err := newGraph(ids)
	if err != nil {
		return err
	}
	t.graph = graph
	return nil
}

// InsertEdge adds or replaces an edge, synthesizing default FrameInfo for
// any endpoint not yet known.
func (t *Tree) InsertEdge(e Edge) error {
	if _, ok := t.Frames[e.ParentFrameID()]; !ok {
		t.Frames[e.ParentFrameID()] = NewFrameInfo(e.ParentFrameID())
	}
	if _, ok := t.Frames[e.ChildFrameID()]; !ok {
		t.Frames[e.ChildFrameID()] = NewFrameInfo(e.ChildFrameID())
	}
	t.Edges[e.TransformID()] = e
	return t.rebuildGraph()
}

// RemoveTransform deletes an edge if present; a missing id is a no-op.
func (t *Tree) RemoveTransform(id TransformId) error {
	if _, ok := t.Edges[id]; !ok {
		return nil
	}
	delete(t.Edges, id)
	return t.rebuildGraph()
}

// RootFrames returns frames with no incoming transform edge.
func (t *Tree) RootFrames() []FrameId { return t.graph.RootFrames() }

// ChildFrames returns frames with no outgoing transform edge.
func (t *Tree) ChildFrames() []FrameId { return t.graph.ChildFrames() }

// StaticSnapshotAt resolves every edge at time `at` and returns a new Tree
// made entirely of StaticEdges.
func (t *Tree) StaticSnapshotAt(at time.Time) (*Tree, error) {
	edges := make([]Edge, 0, len(t.Edges))
	for _, e := range t.Edges {
		transform, err := e.AtTime(at)
		if err != nil {
			return nil, err
		}
		static, err := NewStaticEdge(e.ParentFrameID(), e.ChildFrameID(), transform)
		if err != nil {
			return nil, err
		}
		edges = append(edges, static)
	}
	return NewTree(edges, lo.Values(t.Frames))
}

// GetTransformAtTime resolves the composed transform for id at time `at`,
// folding the path's edges from the root down to the leaf.
func (t *Tree) GetTransformAtTime(id TransformId, at time.Time) (Transform, error) {
	path, err := t.graph.GetTransformIDPath(id)
	if err != nil {
		return Transform{}, err
	}
	result := IdentityTransform()
	for _, tid := range path {
		transform, err := t.Edges[tid].AtTime(at)
		if err != nil {
			return Transform{}, err
		}
		result = result.Compose(transform)
	}
	return result, nil
}

// GetStaticTransform resolves id's composed transform, failing if any edge
// on the path is dynamic.
func (t *Tree) GetStaticTransform(id TransformId) (Transform, error) {
	path, err := t.graph.GetTransformIDPath(id)
	if err != nil {
		return Transform{}, err
	}
	result := IdentityTransform()
	for _, tid := range path {
		static, ok := t.Edges[tid].(*StaticEdge)
		if !ok {
			return Transform{}, ErrContainsDynamicTransform
		}
		result = result.Compose(static.Transform)
	}
	return result, nil
}

// ComputeTimedTransformsForAllSamples gathers every dynamic sample
// timestamp along id's path and resolves the composed transform at each one,
// in ascending timestamp order.
func (t *Tree) ComputeTimedTransformsForAllSamples(id TransformId) ([]TimedTransform, error) {
	path, err := t.graph.GetTransformIDPath(id)
	if err != nil {
		return nil, err
	}
	var timestamps []time.Time
	for _, tid := range path {
		if dyn, ok := t.Edges[tid].(*DynamicEdge); ok {
			timestamps = append(timestamps, dyn.SampleTimestamps()...)
		}
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i].Before(timestamps[j]) })

	out := make([]TimedTransform, 0, len(timestamps))
	for _, ts := range timestamps {
		transform, err := t.GetTransformAtTime(id, ts)
		if err != nil {
			return nil, err
		}
		out = append(out, TimedTransform{Timestamp: ts, Transform: transform})
	}
	return out, nil
}

// IsTransformPathStatic reports whether every edge along id's path is
// static.
func (t *Tree) IsTransformPathStatic(id TransformId) (bool, error) {
	path, err := t.graph.GetTransformIDPath(id)
	if err != nil {
		return false, err
	}
	for _, tid := range path {
		if !t.Edges[tid].IsStatic() {
			return false, nil
		}
	}
	return true, nil
}
