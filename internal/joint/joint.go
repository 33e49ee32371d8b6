// Package joint implements velocity-level constraints that link two
// bodies, solved alongside contacts inside the space's sequential-impulse
// iterations.
package joint

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rigid2d/internal/body"
	"github.com/san-kum/rigid2d/internal/geom"
)

// Joint is a velocity constraint between two bodies. PreSolve runs once
// per tick before the velocity iterations refresh anything derived from
// live body state; Solve runs once per iteration.
type Joint interface {
	Bodies() (*body.Body, *body.Body)
	PreSolve(invDt, baumgarte float64, warmStart bool)
	Solve()
}

// Distance keeps two body-local anchor points a fixed length apart. The
// constraint is bilateral: it resists stretching and compression alike,
// so its accumulated impulse may be negative.
type Distance struct {
	A, B *body.Body

	// AnchorA and AnchorB are offsets from each body's center of mass,
	// expressed in the body's local frame.
	AnchorA, AnchorB mgl64.Vec2
	Length           float64

	// Jc is the accumulated constraint impulse, persisted across ticks
	// for warm starting.
	Jc float64

	normal mgl64.Vec2
	ra, rb mgl64.Vec2
	bias   float64
	mass   float64
}

func NewDistance(a, b *body.Body, anchorA, anchorB mgl64.Vec2, length float64) *Distance {
	return &Distance{A: a, B: b, AnchorA: anchorA, AnchorB: anchorB, Length: length}
}

func (j *Distance) Bodies() (*body.Body, *body.Body) { return j.A, j.B }

// PreSolve recomputes the constraint axis, effective mass and Baumgarte
// bias from current body state, then applies the warm-starting impulse.
// Coincident anchors leave the axis undefined; the joint sits out the
// tick instead of producing NaNs.
func (j *Distance) PreSolve(invDt, baumgarte float64, warmStart bool) {
	j.ra = geom.Rotate(j.AnchorA, j.A.Angle)
	j.rb = geom.Rotate(j.AnchorB, j.B.Angle)
	delta := j.B.Position.Add(j.rb).Sub(j.A.Position.Add(j.ra))

	l := delta.Len()
	if l < 1e-12 || math.IsNaN(l) {
		j.mass = 0
		return
	}
	j.normal = delta.Mul(1 / l)
	j.bias = -baumgarte * invDt * (l - j.Length)

	k := geom.MassK(j.normal, j.ra, j.rb,
		j.A.InvMass, j.B.InvMass, j.A.InvInertia, j.B.InvInertia)
	if k == 0 {
		j.mass = 0
		return
	}
	j.mass = 1 / k

	if !warmStart {
		j.Jc = 0
		return
	}
	impulse := j.normal.Mul(j.Jc)
	j.A.ApplyImpulse(impulse.Mul(-1), j.ra)
	j.B.ApplyImpulse(impulse, j.rb)
}

// Solve removes the relative velocity along the constraint axis, biased
// toward correcting the current length error.
func (j *Distance) Solve() {
	if j.mass == 0 {
		return
	}
	rv := geom.RelativeVelocity(
		j.A.LinearVelocity, j.A.AngularVelocity, j.ra,
		j.B.LinearVelocity, j.B.AngularVelocity, j.rb,
	)
	rn := rv.Dot(j.normal)

	jc := (j.bias - rn) * j.mass
	j.Jc += jc

	impulse := j.normal.Mul(jc)
	j.A.ApplyImpulse(impulse.Mul(-1), j.ra)
	j.B.ApplyImpulse(impulse, j.rb)
}
