package octree

import "math"

// OctreeBounds couples the content's bounding box with the
// power-of-two cube that actually gets subdivided into octants.
type OctreeBounds struct {
	boundingBox   AxisAlignedBoundingBox
	enclosingCube AxisAlignedBoundingCube
}

// NewOctreeBounds derives the enclosing cube from boundingBox.
func NewOctreeBounds(boundingBox AxisAlignedBoundingBox) OctreeBounds {
	return OctreeBounds{
		boundingBox:   boundingBox,
		enclosingCube: FromPowerOfTwoEnclosingBox(boundingBox),
	}
}

func (b OctreeBounds) BoundingBox() AxisAlignedBoundingBox { return b.boundingBox }

// EnclosingCube is the power-of-two cube that gets subdivided.
func (b OctreeBounds) EnclosingCube() AxisAlignedBoundingCube { return b.enclosingCube }

// GetOctantBoundingCube computes the bounding cube of a specific octant
// within the enclosing cube.
func (b OctreeBounds) GetOctantBoundingCube(index OctantIndex) AxisAlignedBoundingCube {
	octantEdgeLength := b.enclosingCube.EdgeLength() / math.Pow(2, float64(index.Level))

	lower := b.enclosingCube.LowerBound()
	octantLower := lower
	octantLower.X += octantEdgeLength * float64(index.X)
	octantLower.Y += octantEdgeLength * float64(index.Y)
	octantLower.Z += octantEdgeLength * float64(index.Z)

	cube, err := NewAxisAlignedBoundingCube(octantLower, octantEdgeLength)
	if err != nil {
		panic(err)
	}
	return cube
}
