package contact

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rigid2d/internal/body"
)

// MaxContacts is the most contact points a single pair can carry. Two
// convex 2D shapes never need more than an edge-edge pair.
const MaxContacts = 2

// State tracks where a resolution is in its lifetime.
type State int

const (
	// StateFirst marks a collision that began this tick.
	StateFirst State = iota
	// StateNormal marks a collision persisting from a prior tick.
	StateNormal
	// StateCached marks a separated pair retained so its impulses can be
	// reused if it re-collides before the lifetime runs out.
	StateCached
)

func (s State) String() string {
	switch s {
	case StateFirst:
		return "first"
	case StateNormal:
		return "normal"
	case StateCached:
		return "cached"
	}
	return "unknown"
}

// Contact is one contact point of a resolution. The effective masses and
// bias terms are recomputed from live body state at presolve every tick;
// only the accumulated impulses Jn, Jt, Jb survive across ticks.
type Contact struct {
	Position mgl64.Vec2
	// Offsets from body A's and body B's centers of mass.
	RA, RB mgl64.Vec2

	VelocityBias float64 // restitution term
	PositionBias float64 // penetration correction term

	MassNormal  float64 // effective mass along the normal; 0 = unsolvable, skip
	MassTangent float64

	Jn float64 // accumulated normal impulse, always >= 0
	Jt float64 // accumulated tangential impulse, |Jt| <= friction*Jn
	Jb float64 // accumulated position-correction pseudo-impulse
}

// Resolution is the persistent record for one colliding body pair. The
// cache owns it; body pointers are back-references into the space's
// registry and the space must evict records when a body is removed.
type Resolution struct {
	Colliding bool

	A, B *body.Body

	Normal mgl64.Vec2 // unit length, points from A toward B
	Depth  float64

	// Friction is the mixed pairwise coefficient, recomputed each presolve
	// and read-only to the solver passes.
	Friction float64

	State    State
	Lifetime int

	Contacts [MaxContacts]Contact
	Count    int

	// Tick the cache last saw this pair in a manifold; untouched records
	// are aged by Sweep.
	touched uint64
}

// Manifold is the raw narrow-phase result for one pair. Colliding false
// signals separation of a previously tracked pair.
type Manifold struct {
	A, B *body.Body

	Colliding bool
	Normal    mgl64.Vec2
	Depth     float64

	Points [MaxContacts]mgl64.Vec2
	Count  int
}
