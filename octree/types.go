// Package octree builds spatial octree indexes over point-like content and
// tracks which octants are occupied.
package octree

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// HasAabb is implemented by content that can be placed inside an
// axis-aligned bounding volume: a representative center used for
// octant assignment, plus a min/max extent used to derive the overall
// octree bounds.
type HasAabb interface {
	Center() r3.Vector
	Min() r3.Vector
	Max() r3.Vector
}

// Point is the trivial HasAabb implementation for a single coordinate.
type Point r3.Vector

func (p Point) Center() r3.Vector { return r3.Vector(p) }
func (p Point) Min() r3.Vector    { return r3.Vector(p) }
func (p Point) Max() r3.Vector    { return r3.Vector(p) }

var (
	errLowerExceedsUpper = errors.New("octree: lower bound exceeds upper bound")
	errInvalidEdgeLength = errors.New("octree: edge length must be positive")
	errNoItems           = errors.New("octree: no items to derive bounds from")
)

// AxisAlignedBoundingBox is the minimal enclosing box of a set of items.
type AxisAlignedBoundingBox struct {
	lowerBound r3.Vector
	upperBound r3.Vector
}

// NewAxisAlignedBoundingBox validates and constructs a bounding box.
func NewAxisAlignedBoundingBox(lowerBound, upperBound r3.Vector) (AxisAlignedBoundingBox, error) {
	if lowerBound.X > upperBound.X || lowerBound.Y > upperBound.Y || lowerBound.Z > upperBound.Z {
		return AxisAlignedBoundingBox{}, errLowerExceedsUpper
	}
	return AxisAlignedBoundingBox{lowerBound: lowerBound, upperBound: upperBound}, nil
}

func (b AxisAlignedBoundingBox) LowerBound() r3.Vector { return b.lowerBound }
func (b AxisAlignedBoundingBox) UpperBound() r3.Vector { return b.upperBound }

func (b AxisAlignedBoundingBox) Diagonal() r3.Vector { return b.upperBound.Sub(b.lowerBound) }

func (b AxisAlignedBoundingBox) Volume() float64 {
	d := b.Diagonal()
	return d.X * d.Y * d.Z
}

func (b AxisAlignedBoundingBox) Center() r3.Vector {
	return b.lowerBound.Add(b.Diagonal().Mul(0.5))
}

// AxisAlignedBoundingCube is a cube-shaped bounding volume, used to
// represent an octant's extent. The upper bound is derived from the
// lower bound and edge length.
type AxisAlignedBoundingCube struct {
	lowerBound r3.Vector
	edgeLength float64
	upperBound r3.Vector
}

// NewAxisAlignedBoundingCube validates the edge length before constructing.
func NewAxisAlignedBoundingCube(lowerBound r3.Vector, edgeLength float64) (AxisAlignedBoundingCube, error) {
	if edgeLength <= 0 {
		return AxisAlignedBoundingCube{}, errInvalidEdgeLength
	}
	return newAxisAlignedBoundingCubeUnchecked(lowerBound, edgeLength), nil
}

func newAxisAlignedBoundingCubeUnchecked(lowerBound r3.Vector, edgeLength float64) AxisAlignedBoundingCube {
	upperBound := lowerBound.Add(r3.Vector{X: edgeLength, Y: edgeLength, Z: edgeLength})
	return AxisAlignedBoundingCube{lowerBound: lowerBound, edgeLength: edgeLength, upperBound: upperBound}
}

// FromPowerOfTwoEnclosingBox builds the smallest cube with a strictly
// power-of-two edge length that encloses box, centered on it.
func FromPowerOfTwoEnclosingBox(box AxisAlignedBoundingBox) AxisAlignedBoundingCube {
	center := box.Center()
	diagonal := box.Diagonal()
	maxExtent := math.Max(diagonal.X, math.Max(diagonal.Y, diagonal.Z))

	edgeLength := nextStrictPowerOfTwo(maxExtent)
	half := edgeLength / 2
	lowerBound := center.Sub(r3.Vector{X: half, Y: half, Z: half})

	return newAxisAlignedBoundingCubeUnchecked(lowerBound, edgeLength)
}

func nextStrictPowerOfTwo(x float64) float64 {
	if x <= 0 {
		return 1
	}
	exponent := math.Floor(math.Log2(x)) + 1
	return math.Pow(2, exponent)
}

func (c AxisAlignedBoundingCube) LowerBound() r3.Vector { return c.lowerBound }
func (c AxisAlignedBoundingCube) UpperBound() r3.Vector { return c.upperBound }
func (c AxisAlignedBoundingCube) EdgeLength() float64   { return c.edgeLength }
func (c AxisAlignedBoundingCube) HalfEdgeLength() float64 {
	return c.edgeLength / 2
}

func (c AxisAlignedBoundingCube) Center() r3.Vector {
	h := c.HalfEdgeLength()
	return c.lowerBound.Add(r3.Vector{X: h, Y: h, Z: h})
}

// ContainsPoint reports whether point lies within the cube using
// half-open bounds: [min, max).
func (c AxisAlignedBoundingCube) ContainsPoint(point r3.Vector) bool {
	if point.X < c.lowerBound.X || point.X >= c.upperBound.X {
		return false
	}
	if point.Y < c.lowerBound.Y || point.Y >= c.upperBound.Y {
		return false
	}
	if point.Z < c.lowerBound.Z || point.Z >= c.upperBound.Z {
		return false
	}
	return true
}

// ContainsPointClosed reports whether point lies within the cube using
// closed bounds: [min, max].
func (c AxisAlignedBoundingCube) ContainsPointClosed(point r3.Vector) bool {
	if point.X < c.lowerBound.X || point.X > c.upperBound.X {
		return false
	}
	if point.Y < c.lowerBound.Y || point.Y > c.upperBound.Y {
		return false
	}
	if point.Z < c.lowerBound.Z || point.Z > c.upperBound.Z {
		return false
	}
	return true
}

// SubCube returns one of the eight half-sized cubes obtained by
// bisecting c along each axis.
func (c AxisAlignedBoundingCube) SubCube(xHalf, yHalf, zHalf bool) AxisAlignedBoundingCube {
	half := c.HalfEdgeLength()
	lower := c.lowerBound
	if xHalf {
		lower.X += half
	}
	if yHalf {
		lower.Y += half
	}
	if zHalf {
		lower.Z += half
	}
	return newAxisAlignedBoundingCubeUnchecked(lower, half)
}

func deriveBoundingBox[T HasAabb](items []T) (AxisAlignedBoundingBox, error) {
	if len(items) == 0 {
		return AxisAlignedBoundingBox{}, errNoItems
	}

	min := items[0].Min()
	max := items[0].Max()
	for _, item := range items[1:] {
		itemMin := item.Min()
		itemMax := item.Max()
		min.X, min.Y, min.Z = math.Min(min.X, itemMin.X), math.Min(min.Y, itemMin.Y), math.Min(min.Z, itemMin.Z)
		max.X, max.Y, max.Z = math.Max(max.X, itemMax.X), math.Max(max.Y, itemMax.Y), math.Max(max.Z, itemMax.Z)
	}

	return NewAxisAlignedBoundingBox(min, max)
}
