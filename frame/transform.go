package frame

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// UnitQuaternion wraps mgl64.Quat and is always kept normalized: every
// constructor and every operation that produces a new value renormalizes
// before returning.
type UnitQuaternion struct {
	Q mgl64.Quat
}

// IdentityQuaternion returns the identity rotation.
func IdentityQuaternion() UnitQuaternion {
	return UnitQuaternion{Q: mgl64.QuatIdent()}
}

// NewUnitQuaternion builds a UnitQuaternion from raw x,y,z,w components,
// normalizing the result. Passing a non-unit quaternion is not an error.
func NewUnitQuaternion(x, y, z, w float64) UnitQuaternion {
	q := mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}}
	return UnitQuaternion{Q: q.Normalize()}
}

func (q UnitQuaternion) X() float64 { return q.Q.V[0] }
func (q UnitQuaternion) Y() float64 { return q.Q.V[1] }
func (q UnitQuaternion) Z() float64 { return q.Q.V[2] }
func (q UnitQuaternion) W() float64 { return q.Q.W }

// Mul composes two rotations as the Hamilton product q·other: rotating a
// vector by the result applies other first, then q (see Transform.Compose
// for the left-to-right composition rule used by the frame graph).
func (q UnitQuaternion) Mul(other UnitQuaternion) UnitQuaternion {
	return UnitQuaternion{Q: q.Q.Mul(other.Q).Normalize()}
}

// Rotate applies the rotation to v.
func (q UnitQuaternion) Rotate(v r3.Vector) r3.Vector {
	rotated := q.Q.Rotate(mgl64.Vec3{v.X, v.Y, v.Z})
	return r3.Vector{X: rotated[0], Y: rotated[1], Z: rotated[2]}
}

// Slerp spherically interpolates (or, for alpha outside [0,1], extrapolates)
// between a and b. mgl64.QuatSlerp already takes the shorter arc (flipping
// sign on a negative dot product) and falls back to a normalized lerp when
// a and b are nearly parallel, which is exactly what the interpolation
// engine below relies on.
func Slerp(a, b UnitQuaternion, alpha float64) UnitQuaternion {
	return UnitQuaternion{Q: mgl64.QuatSlerp(a.Q, b.Q, alpha)}
}

// Transform is a rigid-body transform: a rotation followed by a translation,
// both expressed in the parent frame, so a child-frame point p maps to
// Translation + Rotation·p.
type Transform struct {
	Translation r3.Vector
	Rotation    UnitQuaternion
}

// NewTransform builds a Transform, normalizing the rotation.
func NewTransform(translation r3.Vector, rotation UnitQuaternion) Transform {
	return Transform{Translation: translation, Rotation: UnitQuaternion{Q: rotation.Q.Normalize()}}
}

// IdentityTransform is the transform that changes nothing.
func IdentityTransform() Transform {
	return Transform{Translation: r3.Vector{}, Rotation: IdentityQuaternion()}
}

// Compose combines t (applied second, i.e. closer to the root) with other
// (applied first, i.e. closer to the leaf): (t,q) ∘ (t',q') = (t + q·t', q·q').
func (t Transform) Compose(other Transform) Transform {
	return Transform{
		Translation: t.Translation.Add(t.Rotation.Rotate(other.Translation)),
		Rotation:    t.Rotation.Mul(other.Rotation),
	}
}

// TimedTransform pairs a Transform with the timestamp it was sampled at.
type TimedTransform struct {
	Timestamp time.Time
	Transform Transform
}
