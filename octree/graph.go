package octree

import (
	"fmt"

	lvcore "github.com/katalvlaran/lvlath/core"
)

// OctreeOccupancyGraph tracks which octants contain content, including
// every ancestor of an occupied octant, as a directed parent-to-child
// graph over octant keys.
type OctreeOccupancyGraph struct {
	g       *lvcore.Graph
	indices map[string]OctantIndex
}

// NewOctreeOccupancyGraph returns an empty occupancy graph.
func NewOctreeOccupancyGraph() *OctreeOccupancyGraph {
	return &OctreeOccupancyGraph{
		g:       lvcore.NewGraph(lvcore.WithDirected(true), lvcore.WithMultiEdges()),
		indices: make(map[string]OctantIndex),
	}
}

func octantKey(idx OctantIndex) string {
	return fmt.Sprintf("%d/%d/%d/%d", idx.Level, idx.X, idx.Y, idx.Z)
}

// IsCellOccupied reports whether index has content or a descendant with
// content.
func (o *OctreeOccupancyGraph) IsCellOccupied(index OctantIndex) bool {
	_, ok := o.indices[octantKey(index)]
	return ok
}

// OccupiedCellIndicesOfLevel returns every occupied octant at level.
func (o *OctreeOccupancyGraph) OccupiedCellIndicesOfLevel(level uint32) []OctantIndex {
	var out []OctantIndex
	for _, idx := range o.indices {
		if idx.Level == level {
			out = append(out, idx)
		}
	}
	return out
}

func (o *OctreeOccupancyGraph) ensureNode(idx OctantIndex) {
	key := octantKey(idx)
	if _, ok := o.indices[key]; ok {
		return
	}
	if err := o.g.AddVertex(key); err != nil {
		panic(err)
	}
	o.indices[key] = idx
}

// AddCellOccupancy marks octantIndex, and every ancestor up to the
// root, as occupied.
func (o *OctreeOccupancyGraph) AddCellOccupancy(octantIndex OctantIndex) {
	current := octantIndex
	for {
		parent, ok := current.Parent()
		if !ok {
			o.ensureNode(current)
			return
		}

		o.ensureNode(current)
		o.ensureNode(parent)
		if _, err := o.g.AddEdge(octantKey(parent), octantKey(current), 1); err != nil {
			panic(err)
		}
		current = parent
	}
}
