package octree

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// OctantIndex addresses a single octant within an octree by its
// subdivision level and integer coordinates at that level.
type OctantIndex struct {
	Level uint32
	X     uint64
	Y     uint64
	Z     uint64
}

// ErrOctantIndexOutOfBounds is returned when a coordinate exceeds the
// maximum index representable at the given level.
type ErrOctantIndexOutOfBounds struct {
	Level        uint32
	MaximumIndex uint64
	X, Y, Z      uint64
}

func (e *ErrOctantIndexOutOfBounds) Error() string {
	return fmt.Sprintf("octant index out of bounds at level %d: maximum index %d, got (%d, %d, %d)",
		e.Level, e.MaximumIndex, e.X, e.Y, e.Z)
}

var errIndexTooLargeForMorton = errors.New("octree: coordinate exceeds 21 bits, cannot compute morton index")

// NewOctantIndex validates that x, y, z are representable at level
// before constructing the index.
func NewOctantIndex(level uint32, x, y, z uint64) (OctantIndex, error) {
	maximumIndex := uint64(1)<<level - 1
	if x > maximumIndex || y > maximumIndex || z > maximumIndex {
		return OctantIndex{}, &ErrOctantIndexOutOfBounds{Level: level, MaximumIndex: maximumIndex, X: x, Y: y, Z: z}
	}
	return OctantIndex{Level: level, X: x, Y: y, Z: z}, nil
}

// Origin is the single octant at level 0, spanning the entire volume.
func Origin() OctantIndex {
	return OctantIndex{}
}

func (idx OctantIndex) String() string {
	return fmt.Sprintf("OctantIndex(level: %d, x: %d, y: %d, z: %d)", idx.Level, idx.X, idx.Y, idx.Z)
}

// splitBy3 interleaves the first 21 bits of n with two zero bits
// between each source bit, per Jeroen Baert's bit-interleaving method.
func splitBy3(n uint32) uint64 {
	x := uint64(n) & 0x1fffff
	x = (x | (x << 32)) & 0x1f00000000ffff
	x = (x | (x << 16)) & 0x1f0000ff0000ff
	x = (x | (x << 8)) & 0x100f00f00f00f00f
	x = (x | (x << 4)) & 0x10c30c30c30c30c3
	x = (x | (x << 2)) & 0x1249249249249249
	return x
}

// mortonEncode computes the Z-order curve index for (x, y, z).
func mortonEncode(x, y, z uint32) uint64 {
	return splitBy3(x) | (splitBy3(y) << 1) | (splitBy3(z) << 2)
}

// MortonIndex computes the Z-order curve index of idx's coordinates,
// ignoring its level. Coordinates must fit in 21 bits.
func (idx OctantIndex) MortonIndex() (uint64, error) {
	const maxMortonCoordinate = uint64(1)<<21 - 1
	if idx.X > maxMortonCoordinate || idx.Y > maxMortonCoordinate || idx.Z > maxMortonCoordinate {
		return 0, errIndexTooLargeForMorton
	}
	return mortonEncode(uint32(idx.X), uint32(idx.Y), uint32(idx.Z)), nil
}

func (idx OctantIndex) childBaseOctant() OctantIndex {
	return OctantIndex{Level: idx.Level + 1, X: idx.X * 2, Y: idx.Y * 2, Z: idx.Z * 2}
}

// HasParent reports whether idx has a parent octant, i.e. is not the root.
func (idx OctantIndex) HasParent() bool {
	return idx.Level > 0
}

// Parent returns idx's parent octant and true, or the zero value and
// false if idx is the root.
func (idx OctantIndex) Parent() (OctantIndex, bool) {
	if !idx.HasParent() {
		return OctantIndex{}, false
	}
	return OctantIndex{Level: idx.Level - 1, X: idx.X / 2, Y: idx.Y / 2, Z: idx.Z / 2}, true
}

// Ancestors returns idx and every octant above it up to and including
// the root, ordered from idx's own level down to the root.
func (idx OctantIndex) Ancestors() []OctantIndex {
	ancestors := []OctantIndex{idx}
	current := idx
	for {
		parent, ok := current.Parent()
		if !ok {
			break
		}
		ancestors = append(ancestors, parent)
		current = parent
	}
	return ancestors
}

// Children returns idx's eight child octants at idx.Level+1.
func (idx OctantIndex) Children() [8]OctantIndex {
	base := idx.childBaseOctant()
	return [8]OctantIndex{
		base,
		{Level: base.Level, X: base.X + 1, Y: base.Y, Z: base.Z},
		{Level: base.Level, X: base.X, Y: base.Y + 1, Z: base.Z},
		{Level: base.Level, X: base.X + 1, Y: base.Y + 1, Z: base.Z},
		{Level: base.Level, X: base.X, Y: base.Y, Z: base.Z + 1},
		{Level: base.Level, X: base.X + 1, Y: base.Y, Z: base.Z + 1},
		{Level: base.Level, X: base.X, Y: base.Y + 1, Z: base.Z + 1},
		{Level: base.Level, X: base.X + 1, Y: base.Y + 1, Z: base.Z + 1},
	}
}

// IndexedMorton pairs an octant index with its morton code.
type IndexedMorton struct {
	Index  OctantIndex
	Morton uint64
}

// SortByMortonIndices orders indices by (level, morton code).
func SortByMortonIndices(indices []OctantIndex) ([]IndexedMorton, error) {
	out := make([]IndexedMorton, len(indices))
	for i, idx := range indices {
		morton, err := idx.MortonIndex()
		if err != nil {
			return nil, err
		}
		out[i] = IndexedMorton{Index: idx, Morton: morton}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Index.Level != out[j].Index.Level {
			return out[i].Index.Level < out[j].Index.Level
		}
		return out[i].Morton < out[j].Morton
	})
	return out, nil
}
