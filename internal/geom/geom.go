// Package geom provides the 2D vector math shared by the physics core.
//
// Vectors are [mgl64.Vec2]; this package adds the 2D-specific operations
// mathgl leaves out (scalar cross products, perpendiculars, rotation) and
// the two quantities every contact constraint needs: the relative velocity
// at a contact point and the effective-mass scalar along a direction.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Cross returns the scalar (z) component of the 2D cross product a x b.
func Cross(a, b mgl64.Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// CrossSV returns the cross product of scalar s (angular velocity about z)
// with vector v.
func CrossSV(s float64, v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-s * v[1], s * v[0]}
}

// Perp returns v rotated 90 degrees counterclockwise.
func Perp(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v[1], v[0]}
}

// Rotate returns v rotated by angle radians about the origin.
func Rotate(v mgl64.Vec2, angle float64) mgl64.Vec2 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	return mgl64.Vec2{c*v[0] - s*v[1], s*v[0] + c*v[1]}
}

// RelativeVelocity computes the velocity of body B relative to body A at a
// contact point, given each body's linear and angular velocity and the
// contact offsets ra, rb from the respective centers of mass.
//
//	v = (vb + wb x rb) - (va + wa x ra)
func RelativeVelocity(va mgl64.Vec2, wa float64, ra mgl64.Vec2, vb mgl64.Vec2, wb float64, rb mgl64.Vec2) mgl64.Vec2 {
	return vb.Add(CrossSV(wb, rb)).Sub(va.Add(CrossSV(wa, ra)))
}

// MassK computes the effective-mass denominator for an impulse applied
// along dir at offsets ra, rb:
//
//	k = 1/Ma + 1/Mb + (ra x n)^2/Ia + (rb x n)^2/Ib
//
// Returns 0 when both bodies are immovable along dir, which callers must
// treat as an unsolvable constraint.
func MassK(dir, ra, rb mgl64.Vec2, invMassA, invMassB, invInertiaA, invInertiaB float64) float64 {
	ran := Cross(ra, dir)
	rbn := Cross(rb, dir)
	return invMassA + invMassB + invInertiaA*ran*ran + invInertiaB*rbn*rbn
}

// IsFinite reports whether v has no NaN or Inf component.
func IsFinite(v mgl64.Vec2) bool {
	return !math.IsNaN(v[0]) && !math.IsInf(v[0], 0) &&
		!math.IsNaN(v[1]) && !math.IsInf(v[1], 0)
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl64.Vec2
}

// Overlaps reports whether a and b intersect.
func (a AABB) Overlaps(b AABB) bool {
	return a.Min[0] <= b.Max[0] && b.Min[0] <= a.Max[0] &&
		a.Min[1] <= b.Max[1] && b.Min[1] <= a.Max[1]
}

// Expand returns a grown symmetrically by margin on every side.
func (a AABB) Expand(margin float64) AABB {
	m := mgl64.Vec2{margin, margin}
	return AABB{Min: a.Min.Sub(m), Max: a.Max.Add(m)}
}
