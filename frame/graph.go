package frame

import (
	lvcore "github.com/katalvlaran/lvlath/core"
)

// Graph resolves paths between frames. It is backed by a directed
// adjacency-list graph (github.com/katalvlaran/lvlath/core) rather than a
// hand-rolled one; path enumeration itself is plain DFS against that
// package's Neighbors query, since lvlath has no built-in all-simple-paths
// primitive.
type Graph struct {
	g        *lvcore.Graph
	frameIDs map[FrameId]struct{}
}

// newGraph builds a Graph from the given set of transform ids. Every parent
// and child frame mentioned becomes a vertex; every id becomes a directed
// edge parent->child.
func newGraph(ids []TransformId) (*Graph, error) {
	g := lvcore.NewGraph(lvcore.WithDirected(true), lvcore.WithMultiEdges())
	frameIDs := make(map[FrameId]struct{})

	ensure := func(f FrameId) error {
		if _, ok := frameIDs[f]; ok {
			return nil
		}
		if err := g.AddVertex(string(f)); err != nil {
			return err
		}
		frameIDs[f] = struct{}{}
		return nil
	}

	for _, id := range ids {
		if err := ensure(id.ParentFrameID); err != nil {
			return nil, err
		}
		if err := ensure(id.ChildFrameID); err != nil {
			return nil, err
		}
	}
	for _, id := range ids {
		if _, err := g.AddEdge(string(id.ParentFrameID), string(id.ChildFrameID), 0); err != nil {
			return nil, err
		}
	}
	return &Graph{g: g, frameIDs: frameIDs}, nil
}

// FrameIDs returns every frame known to the graph.
func (fg *Graph) FrameIDs() []FrameId {
	out := make([]FrameId, 0, len(fg.frameIDs))
	for f := range fg.frameIDs {
		out = append(out, f)
	}
	return out
}

// ContainsFrameID reports whether f is a known frame.
func (fg *Graph) ContainsFrameID(f FrameId) bool {
	_, ok := fg.frameIDs[f]
	return ok
}

// RootFrames returns frames with no incoming edge (in-degree zero).
func (fg *Graph) RootFrames() []FrameId {
	hasIncoming := map[FrameId]bool{}
	for _, e := range fg.g.Edges() {
		hasIncoming[FrameId(e.To)] = true
	}
	var out []FrameId
	for f := range fg.frameIDs {
		if !hasIncoming[f] {
			out = append(out, f)
		}
	}
	return out
}

// ChildFrames returns frames with no outgoing edge (out-degree zero), i.e.
// leaves of the frame graph.
func (fg *Graph) ChildFrames() []FrameId {
	hasOutgoing := map[FrameId]bool{}
	for _, e := range fg.g.Edges() {
		hasOutgoing[FrameId(e.From)] = true
	}
	var out []FrameId
	for f := range fg.frameIDs {
		if !hasOutgoing[f] {
			out = append(out, f)
		}
	}
	return out
}

// allSimplePaths enumerates every simple (no repeated vertex) directed path
// from src to dst.
func (fg *Graph) allSimplePaths(src, dst FrameId) [][]FrameId {
	var paths [][]FrameId
	visited := map[FrameId]bool{src: true}
	current := []FrameId{src}

	var walk func(node FrameId)
	walk = func(node FrameId) {
		if node == dst {
			path := append([]FrameId(nil), current...)
			paths = append(paths, path)
			return
		}
		neighbors, err := fg.g.Neighbors(string(node))
		if err != nil {
			return
		}
		for _, e := range neighbors {
			if e.From != string(node) {
				continue
			}
			next := FrameId(e.To)
			if visited[next] {
				continue
			}
			visited[next] = true
			current = append(current, next)
			walk(next)
			current = current[:len(current)-1]
			visited[next] = false
		}
	}
	walk(src)
	return paths
}

// GetFrameIDPath resolves the unique simple path of frames from id's parent
// down to id's child. It errors if there are zero or more than one such path.
func (fg *Graph) GetFrameIDPath(id TransformId) ([]FrameId, error) {
	if !fg.ContainsFrameID(id.ParentFrameID) {
		return nil, &ErrInvalidFrameId{FrameID: id.ParentFrameID}
	}
	if !fg.ContainsFrameID(id.ChildFrameID) {
		return nil, &ErrInvalidFrameId{FrameID: id.ChildFrameID}
	}
	paths := fg.allSimplePaths(id.ParentFrameID, id.ChildFrameID)
	switch len(paths) {
	case 0:
		return nil, &ErrNoTransformPath{TransformID: id}
	case 1:
		return paths[0], nil
	default:
		return nil, &ErrMultipleTransformPaths{TransformID: id}
	}
}

// GetTransformIDPath resolves the same path as GetFrameIDPath, expressed as
// a sequence of adjacent TransformIds ordered from the root-most edge to the
// leaf-most edge (i.e. in the order Tree.GetTransformAtTime must fold them).
func (fg *Graph) GetTransformIDPath(id TransformId) ([]TransformId, error) {
	frames, err := fg.GetFrameIDPath(id)
	if err != nil {
		return nil, err
	}
	out := make([]TransformId, 0, len(frames)-1)
	for i := 0; i+1 < len(frames); i++ {
		out = append(out, TransformId{ParentFrameID: frames[i], ChildFrameID: frames[i+1]})
	}
	return out, nil
}
