// Package space owns the body and joint registries and drives the
// simulation tick: force integration, broad phase, narrow phase, the
// contact cache and the sequential-impulse solver over joints and
// contacts, then velocity integration, strictly in that order,
// single-threaded.
package space

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rigid2d/internal/body"
	"github.com/san-kum/rigid2d/internal/broadphase"
	"github.com/san-kum/rigid2d/internal/contact"
	"github.com/san-kum/rigid2d/internal/joint"
	"github.com/san-kum/rigid2d/internal/narrowphase"
)

// Settings configures a space. Validate is run by New; a space is never
// constructed from invalid settings, so the tick path does not re-check.
type Settings struct {
	Gravity mgl64.Vec2

	// VelocityIterations is the number of sequential-impulse passes per
	// tick. More passes converge tighter stacks; fewer run faster.
	VelocityIterations int
	// PositionIterations is the number of split-impulse correction passes.
	PositionIterations int

	// Persistence is how many ticks a separated pair's resolution stays
	// cached before eviction.
	Persistence int

	Solver contact.SolverSettings
}

func DefaultSettings() Settings {
	return Settings{
		Gravity:            mgl64.Vec2{0, -9.81},
		VelocityIterations: 8,
		PositionIterations: 3,
		Persistence:        60,
		Solver:             contact.DefaultSolverSettings(),
	}
}

func (s Settings) Validate() error {
	if s.VelocityIterations < 1 {
		return fmt.Errorf("space: velocity iterations must be >= 1, got %d", s.VelocityIterations)
	}
	if s.PositionIterations < 0 {
		return fmt.Errorf("space: position iterations must be >= 0, got %d", s.PositionIterations)
	}
	if s.Persistence < 1 {
		return fmt.Errorf("space: persistence must be >= 1, got %d", s.Persistence)
	}
	if err := s.Solver.Validate(); err != nil {
		return fmt.Errorf("space: %w", err)
	}
	return nil
}

// Space is the simulation driver. Not safe for concurrent use.
type Space struct {
	settings Settings

	bodies []*body.Body
	joints []joint.Joint
	nextID uint64

	cache *contact.Cache
}

// New creates a space, rejecting invalid settings before any simulation
// can start.
func New(settings Settings) (*Space, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Space{
		settings: settings,
		cache:    contact.NewCache(settings.Persistence),
	}, nil
}

// AddBody registers b, assigning its stable ID.
func (s *Space) AddBody(b *body.Body) {
	s.nextID++
	b.ID = s.nextID
	s.bodies = append(s.bodies, b)
}

// RemoveBody unregisters b and evicts every resolution and joint
// referencing it, so nothing keeps a dangling body pointer.
func (s *Space) RemoveBody(b *body.Body) {
	for i, other := range s.bodies {
		if other == b {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			s.cache.EvictBody(b.ID)
			break
		}
	}
	kept := s.joints[:0]
	for _, j := range s.joints {
		if ja, jb := j.Bodies(); ja != b && jb != b {
			kept = append(kept, j)
		}
	}
	s.joints = kept
}

// AddJoint registers a joint; its bodies must already be in the space.
func (s *Space) AddJoint(j joint.Joint) {
	s.joints = append(s.joints, j)
}

// RemoveJoint unregisters j.
func (s *Space) RemoveJoint(j joint.Joint) {
	for i, other := range s.joints {
		if other == j {
			s.joints = append(s.joints[:i], s.joints[i+1:]...)
			return
		}
	}
}

func (s *Space) Joints() []joint.Joint {
	return s.joints
}

func (s *Space) Bodies() []*body.Body {
	return s.bodies
}

// Resolutions returns the currently colliding records in solve order.
func (s *Space) Resolutions() []*contact.Resolution {
	return s.cache.Active()
}

// Step advances the simulation by dt seconds.
func (s *Space) Step(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("space: dt must be positive, got %f", dt)
	}
	invDt := 1 / dt

	for _, b := range s.bodies {
		b.IntegrateForces(s.settings.Gravity, dt)
	}

	pairs := broadphase.Pairs(s.bodies)

	s.cache.Begin()
	for _, p := range pairs {
		s.cache.Update(narrowphase.Collide(p.A, p.B))
	}
	s.cache.Sweep()

	active := s.cache.Active()
	for _, res := range active {
		contact.PreSolve(res, invDt, s.settings.Solver)
		contact.WarmStart(res, s.settings.Solver)
	}
	for _, j := range s.joints {
		j.PreSolve(invDt, s.settings.Solver.Baumgarte, s.settings.Solver.WarmStart)
	}
	for i := 0; i < s.settings.VelocityIterations; i++ {
		for _, j := range s.joints {
			j.Solve()
		}
		for _, res := range active {
			contact.SolveVelocity(res)
		}
	}
	for i := 0; i < s.settings.PositionIterations; i++ {
		for _, res := range active {
			contact.SolvePosition(res)
		}
	}

	for _, b := range s.bodies {
		b.IntegrateVelocities(dt)
	}
	return nil
}

// Energy returns the total kinetic energy of all bodies.
func (s *Space) Energy() float64 {
	total := 0.0
	for _, b := range s.bodies {
		total += b.KineticEnergy()
	}
	return total
}

// ContactCount returns the number of live contact points.
func (s *Space) ContactCount() int {
	n := 0
	for _, res := range s.cache.Active() {
		n += res.Count
	}
	return n
}

// MaxPenetration returns the deepest penetration among active resolutions.
func (s *Space) MaxPenetration() float64 {
	depth := 0.0
	for _, res := range s.cache.Active() {
		if res.Depth > depth {
			depth = res.Depth
		}
	}
	return depth
}
