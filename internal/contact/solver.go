package contact

import (
	"fmt"
	"math"

	"github.com/san-kum/rigid2d/internal/geom"
)

// SolverSettings configures the sequential-impulse solver. Validate must
// pass before simulation starts; the solve path assumes valid settings.
type SolverSettings struct {
	MixFriction    MixMode
	MixRestitution MixMode

	// WarmStart applies last tick's accumulated impulses before iterating.
	WarmStart bool

	// Baumgarte scales how much residual penetration is corrected per tick.
	Baumgarte float64
	// Slop is the penetration depth tolerated without correction, so the
	// solver does not fight floating-point noise.
	Slop float64
	// MaxCorrection caps the penetration depth corrected in a single tick.
	// A deeply interpenetrating pair separates over several ticks instead
	// of being launched apart.
	MaxCorrection float64
	// BounceThreshold is the minimum approach speed for restitution to
	// apply; slower impacts resolve as perfectly inelastic.
	BounceThreshold float64
}

func DefaultSolverSettings() SolverSettings {
	return SolverSettings{
		MixFriction:     MixSqrt,
		MixRestitution:  MixMax,
		WarmStart:       true,
		Baumgarte:       0.2,
		Slop:            0.002,
		MaxCorrection:   0.2,
		BounceThreshold: 1.0,
	}
}

func (s SolverSettings) Validate() error {
	if !s.MixFriction.Valid() {
		return fmt.Errorf("invalid friction mix mode %d", int(s.MixFriction))
	}
	if !s.MixRestitution.Valid() {
		return fmt.Errorf("invalid restitution mix mode %d", int(s.MixRestitution))
	}
	if s.Baumgarte < 0 || s.Baumgarte > 1 {
		return fmt.Errorf("baumgarte factor must be in [0, 1], got %f", s.Baumgarte)
	}
	if s.Slop < 0 {
		return fmt.Errorf("slop must be non-negative, got %f", s.Slop)
	}
	if s.MaxCorrection <= 0 {
		return fmt.Errorf("max correction must be positive, got %f", s.MaxCorrection)
	}
	return nil
}

// PreSolve refreshes everything in a resolution that depends on live body
// state: mixed coefficients, contact offsets, effective masses and the
// bias terms. Accumulated Jn/Jt are left alone; Jb restarts each tick.
//
// Degenerate geometry (non-unit normal, non-finite depth, zero effective
// mass) disables the affected contact instead of aborting the tick.
func PreSolve(res *Resolution, invDt float64, set SolverSettings) {
	a, b := res.A, res.B

	n := res.Normal
	if len2 := n.Dot(n); math.Abs(len2-1) > 1e-6 {
		l := math.Sqrt(len2)
		if l < 1e-12 || math.IsNaN(l) {
			res.Count = 0
			return
		}
		n = n.Mul(1 / l)
		res.Normal = n
	}
	if math.IsNaN(res.Depth) || math.IsInf(res.Depth, 0) {
		res.Count = 0
		return
	}
	if res.Depth < 0 {
		res.Depth = 0
	}
	tangent := geom.Perp(n)

	e := Mix(a.Material.Restitution, b.Material.Restitution, set.MixRestitution)
	res.Friction = Mix(a.Material.Friction, b.Material.Friction, set.MixFriction)

	for i := 0; i < res.Count; i++ {
		c := &res.Contacts[i]

		c.RA = c.Position.Sub(a.Position)
		c.RB = c.Position.Sub(b.Position)

		kn := geom.MassK(n, c.RA, c.RB, a.InvMass, b.InvMass, a.InvInertia, b.InvInertia)
		kt := geom.MassK(tangent, c.RA, c.RB, a.InvMass, b.InvMass, a.InvInertia, b.InvInertia)
		if kn == 0 || kt == 0 {
			// Both bodies immovable at this point; nothing to solve.
			c.MassNormal = 0
			c.MassTangent = 0
			continue
		}
		c.MassNormal = 1 / kn
		c.MassTangent = 1 / kt

		rv := geom.RelativeVelocity(
			a.LinearVelocity, a.AngularVelocity, c.RA,
			b.LinearVelocity, b.AngularVelocity, c.RB,
		)
		vn := rv.Dot(n)

		c.VelocityBias = 0
		if vn < -set.BounceThreshold {
			c.VelocityBias = -e * vn
		}

		correction := math.Max(math.Min(-res.Depth+set.Slop, 0), -set.MaxCorrection)
		c.PositionBias = -set.Baumgarte * invDt * correction
		c.Jb = 0
	}
}

// WarmStart seeds this tick's solve by applying each contact's
// accumulated impulses. The velocity iterations then clamp against the
// same accumulators, so whatever a contact carries must be applied here:
// an unapplied carry would shift the clamp baseline and inflate Jn beyond
// the impulse the bodies actually received. Genuinely new contacts carry
// zeros and are unaffected.
func WarmStart(res *Resolution, set SolverSettings) {
	if !set.WarmStart {
		for i := 0; i < res.Count; i++ {
			res.Contacts[i].Jn = 0
			res.Contacts[i].Jt = 0
		}
		return
	}

	tangent := geom.Perp(res.Normal)
	for i := 0; i < res.Count; i++ {
		c := &res.Contacts[i]
		if c.MassNormal == 0 {
			continue
		}
		impulse := res.Normal.Mul(c.Jn).Add(tangent.Mul(c.Jt))
		res.A.ApplyImpulse(impulse.Mul(-1), c.RA)
		res.B.ApplyImpulse(impulse, c.RB)
	}
}

// SolveVelocity runs one sequential-impulse pass over the resolution's
// contacts in registration order. For each contact the normal constraint
// is solved first and clamped to Jn >= 0 (a separating pair cannot pull),
// then friction is solved and clamped into the Coulomb cone using the
// just-updated Jn.
func SolveVelocity(res *Resolution) {
	a, b := res.A, res.B
	n := res.Normal
	tangent := geom.Perp(n)

	for i := 0; i < res.Count; i++ {
		c := &res.Contacts[i]
		if c.MassNormal == 0 {
			continue
		}

		rv := geom.RelativeVelocity(
			a.LinearVelocity, a.AngularVelocity, c.RA,
			b.LinearVelocity, b.AngularVelocity, c.RB,
		)
		vn := rv.Dot(n)

		jn := -(vn - c.VelocityBias) * c.MassNormal
		jn0 := c.Jn
		c.Jn = math.Max(jn0+jn, 0)
		jn = c.Jn - jn0

		impulse := n.Mul(jn)
		a.ApplyImpulse(impulse.Mul(-1), c.RA)
		b.ApplyImpulse(impulse, c.RB)

		if res.Friction == 0 {
			continue
		}

		rv = geom.RelativeVelocity(
			a.LinearVelocity, a.AngularVelocity, c.RA,
			b.LinearVelocity, b.AngularVelocity, c.RB,
		)
		vt := rv.Dot(tangent)

		jt := -vt * c.MassTangent
		limit := res.Friction * c.Jn
		jt0 := c.Jt
		c.Jt = math.Max(-limit, math.Min(jt0+jt, limit))
		jt = c.Jt - jt0

		impulse = tangent.Mul(jt)
		a.ApplyImpulse(impulse.Mul(-1), c.RA)
		b.ApplyImpulse(impulse, c.RB)
	}
}

// SolvePosition runs one split-impulse pass correcting residual
// penetration through the bodies' pseudo-velocities, leaving their real
// velocities untouched.
func SolvePosition(res *Resolution) {
	a, b := res.A, res.B
	n := res.Normal

	for i := 0; i < res.Count; i++ {
		c := &res.Contacts[i]
		if c.MassNormal == 0 {
			continue
		}

		rv := geom.RelativeVelocity(
			a.LinearPseudo, a.AngularPseudo, c.RA,
			b.LinearPseudo, b.AngularPseudo, c.RB,
		)
		vn := rv.Dot(n)

		jb := (c.PositionBias - vn) * c.MassNormal
		jb0 := c.Jb
		c.Jb = math.Max(jb0+jb, 0)
		jb = c.Jb - jb0

		impulse := n.Mul(jb)
		a.ApplyPseudoImpulse(impulse.Mul(-1), c.RA)
		b.ApplyPseudoImpulse(impulse, c.RB)
	}
}
