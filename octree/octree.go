package octree

import (
	"context"
	"math/rand"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Octree partitions a set of items into octants of bounded occupancy,
// subdividing breadth-first until every octant holds at most
// maxItemsPerOctant items.
type Octree[T HasAabb] struct {
	bounds         OctreeBounds
	occupancyGraph *OctreeOccupancyGraph
	cells          map[OctantIndex][]T
}

// New builds an octree over items, recursively splitting any octant
// that exceeds maxItemsPerOctant. When shuffleSeed is non-nil, items
// are deterministically shuffled first so that overflow items spilling
// into the next round are not biased by input order. logger receives a
// start message, one message per subdivision round, and a build-complete
// message; a nil logger is treated as a no-op
// logger, same as a zero-value *zap.Logger would not be usable here.
func New[T HasAabb](items []T, maxItemsPerOctant int, shuffleSeed *uint64, logger *zap.Logger) (*Octree[T], error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	boundingBox, err := deriveBoundingBox(items)
	if err != nil {
		return nil, err
	}
	bounds := NewOctreeBounds(boundingBox)

	shuffled := make([]T, len(items))
	copy(shuffled, items)
	if shuffleSeed != nil {
		rng := rand.New(rand.NewSource(int64(*shuffleSeed)))
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	}

	occupancyGraph := NewOctreeOccupancyGraph()
	cells := make(map[OctantIndex][]T)

	type pending struct {
		parent *OctantIndex
		items  []T
	}
	pendingRounds := []pending{{parent: nil, items: shuffled}}

	logger.Debug("building octree", zap.Int("item_count", len(items)), zap.Int("max_items_per_octant", maxItemsPerOctant))

	for roundNum := 0; len(pendingRounds) > 0; roundNum++ {
		type roundResult struct {
			octant    OctantIndex
			assigned  []T
			remaining []T
		}

		// Fan out one subdivision step per (parent, child) candidate octant.
		var candidates []struct {
			parentItems []T
			child       OctantIndex
		}
		for _, round := range pendingRounds {
			if round.parent == nil {
				candidates = append(candidates, struct {
					parentItems []T
					child       OctantIndex
				}{parentItems: round.items, child: Origin()})
				continue
			}
			for _, child := range round.parent.Children() {
				candidates = append(candidates, struct {
					parentItems []T
					child       OctantIndex
				}{parentItems: round.items, child: child})
			}
		}

		results := make([]roundResult, len(candidates))
		group, _ := errgroup.WithContext(context.Background())
		for i, candidate := range candidates {
			i, candidate := i, candidate
			group.Go(func() error {
				cube := bounds.GetOctantBoundingCube(candidate.child)

				var withinCube []T
				for _, item := range candidate.parentItems {
					if cube.ContainsPoint(item.Center()) {
						withinCube = append(withinCube, item)
					}
				}

				var remaining []T
				if len(withinCube) > maxItemsPerOctant {
					remaining = withinCube[maxItemsPerOctant:]
					withinCube = withinCube[:maxItemsPerOctant]
				}

				results[i] = roundResult{octant: candidate.child, assigned: withinCube, remaining: remaining}
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return nil, err
		}

		var nextRounds []pending
		for _, r := range results {
			if len(r.assigned) == 0 && len(r.remaining) == 0 {
				continue
			}
			occupancyGraph.AddCellOccupancy(r.octant)
			if len(r.assigned) > 0 {
				cells[r.octant] = r.assigned
			}
			if len(r.remaining) > 0 {
				octant := r.octant
				nextRounds = append(nextRounds, pending{parent: &octant, items: r.remaining})
			}
		}
		logger.Debug("subdivision round complete",
			zap.Int("round", roundNum),
			zap.Int("candidates", len(candidates)),
			zap.Int("cells_so_far", len(cells)),
			zap.Int("pending_next_round", len(nextRounds)),
		)
		pendingRounds = nextRounds
	}

	logger.Debug("octree build complete", zap.Int("cell_count", len(cells)))

	return &Octree[T]{bounds: bounds, occupancyGraph: occupancyGraph, cells: cells}, nil
}

func (o *Octree[T]) Bounds() OctreeBounds                  { return o.bounds }
func (o *Octree[T]) OccupancyGraph() *OctreeOccupancyGraph { return o.occupancyGraph }
func (o *Octree[T]) Cells() map[OctantIndex][]T            { return o.cells }
func (o *Octree[T]) CellCount() int                        { return len(o.cells) }

func (o *Octree[T]) Cell(index OctantIndex) ([]T, bool) {
	items, ok := o.cells[index]
	return items, ok
}

func (o *Octree[T]) ContainsContentCells(index OctantIndex) bool {
	_, ok := o.cells[index]
	return ok
}

// CellIndices returns the set of octant indices that contain data.
func (o *Octree[T]) CellIndices() []OctantIndex {
	out := make([]OctantIndex, 0, len(o.cells))
	for idx := range o.cells {
		out = append(out, idx)
	}
	return out
}

// MaxOccupiedLevel returns the deepest level holding content, and false
// if the octree is empty.
func (o *Octree[T]) MaxOccupiedLevel() (uint32, bool) {
	if len(o.cells) == 0 {
		return 0, false
	}
	var max uint32
	first := true
	for idx := range o.cells {
		if first || idx.Level > max {
			max = idx.Level
			first = false
		}
	}
	return max, true
}
