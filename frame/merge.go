package frame

import "github.com/samber/lo"

// Merge combines multiple transform trees into one. It requires unique
// TransformId combinations across all inputs; a TransformId defined by more
// than one input tree is reported via ErrChannelTransformCollisions rather
// than silently resolved last-write-wins (the original Rust `ops::merge`
// picks last-write-wins; spec.md requires collision detection, so this
// diverges from the retained original on purpose).
func Merge(trees []*Tree) (*Tree, error) {
	combinedEdges := map[TransformId]Edge{}
	combinedFrames := map[FrameId]FrameInfo{}
	seenIn := map[TransformId]int{}

	for _, tree := range trees {
		for id, e := range tree.Edges {
			seenIn[id]++
			combinedEdges[id] = e
		}
		for fid, info := range tree.Frames {
			combinedFrames[fid] = info
		}
	}

	var collisions []TransformId
	for id, count := range seenIn {
		if count > 1 {
			collisions = append(collisions, id)
		}
	}
	if len(collisions) > 0 {
		return nil, &ErrChannelTransformCollisions{TransformIDs: collisions}
	}

	return NewTree(lo.Values(combinedEdges), lo.Values(combinedFrames))
}
