// Package body implements rigid bodies: mass properties, shapes, materials
// and the velocity/position integration the space drives each step.
package body

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rigid2d/internal/geom"
)

type Type int

const (
	Static Type = iota
	Dynamic
)

// Body is a rigid body. The space assigns ID on registration; it stays
// stable for the body's lifetime and keys the contact cache.
type Body struct {
	ID       uint64
	Type     Type
	Shape    Shape
	Material Material

	Position mgl64.Vec2
	Angle    float64

	LinearVelocity  mgl64.Vec2
	AngularVelocity float64

	// Pseudo-velocities accumulate positional correction impulses. They
	// displace the body at integration but never feed back into the real
	// velocities.
	LinearPseudo  mgl64.Vec2
	AngularPseudo float64

	force  mgl64.Vec2
	torque float64

	Mass       float64
	InvMass    float64
	Inertia    float64
	InvInertia float64

	LinearDamping  float64
	AngularDamping float64
}

// New creates a dynamic body at pos. Mass and inertia follow from the
// shape's area and the material density.
func New(shape Shape, mat Material, pos mgl64.Vec2) *Body {
	b := &Body{
		Type:     Dynamic,
		Shape:    shape,
		Material: mat,
		Position: pos,
	}
	mass := mat.Density * shape.Area()
	b.Mass = mass
	b.InvMass = 1 / mass
	b.Inertia = shape.Inertia(mass)
	b.InvInertia = 1 / b.Inertia
	return b
}

// NewStatic creates an immovable body at pos. Inverse mass and inertia are
// zero so impulses never displace it.
func NewStatic(shape Shape, mat Material, pos mgl64.Vec2) *Body {
	return &Body{
		Type:     Static,
		Shape:    shape,
		Material: mat,
		Position: pos,
	}
}

func (b *Body) ApplyForce(force mgl64.Vec2) {
	b.force = b.force.Add(force)
}

func (b *Body) ApplyForceAt(force, point mgl64.Vec2) {
	b.force = b.force.Add(force)
	b.torque += geom.Cross(point.Sub(b.Position), force)
}

// ApplyImpulse applies impulse at offset r from the center of mass,
// changing linear and angular velocity immediately.
func (b *Body) ApplyImpulse(impulse, r mgl64.Vec2) {
	b.LinearVelocity = b.LinearVelocity.Add(impulse.Mul(b.InvMass))
	b.AngularVelocity += geom.Cross(r, impulse) * b.InvInertia
}

// ApplyPseudoImpulse is ApplyImpulse for the positional-correction channel.
func (b *Body) ApplyPseudoImpulse(impulse, r mgl64.Vec2) {
	b.LinearPseudo = b.LinearPseudo.Add(impulse.Mul(b.InvMass))
	b.AngularPseudo += geom.Cross(r, impulse) * b.InvInertia
}

// IntegrateForces advances velocities by forces and gravity over dt
// (semi-implicit Euler, velocity half).
func (b *Body) IntegrateForces(gravity mgl64.Vec2, dt float64) {
	if b.Type == Static {
		b.resetDynamics()
		return
	}
	accel := b.force.Mul(b.InvMass).Add(gravity)
	b.LinearVelocity = b.LinearVelocity.Add(accel.Mul(dt))
	b.AngularVelocity += b.torque * b.InvInertia * dt
}

// IntegrateVelocities advances position and angle over dt (position half).
// Pseudo-velocities contribute to displacement once and are reset, along
// with the force accumulators.
func (b *Body) IntegrateVelocities(dt float64) {
	if b.Type == Static {
		b.resetDynamics()
		return
	}

	ld := math.Pow(0.98, b.LinearDamping)
	ad := math.Pow(0.98, b.AngularDamping)

	b.LinearVelocity = b.LinearVelocity.Mul(ld)
	b.AngularVelocity *= ad

	v := b.LinearVelocity.Add(b.LinearPseudo)
	w := b.AngularVelocity + b.AngularPseudo

	b.Position = b.Position.Add(v.Mul(dt))
	b.Angle += w * dt

	b.LinearPseudo = mgl64.Vec2{}
	b.AngularPseudo = 0
	b.force = mgl64.Vec2{}
	b.torque = 0
}

func (b *Body) resetDynamics() {
	b.LinearVelocity = mgl64.Vec2{}
	b.AngularVelocity = 0
	b.LinearPseudo = mgl64.Vec2{}
	b.AngularPseudo = 0
	b.force = mgl64.Vec2{}
	b.torque = 0
}

func (b *Body) AABB() geom.AABB {
	return b.Shape.AABB(b.Position, b.Angle)
}

// KineticEnergy returns translational plus rotational kinetic energy.
func (b *Body) KineticEnergy() float64 {
	v2 := b.LinearVelocity.Dot(b.LinearVelocity)
	return 0.5*b.Mass*v2 + 0.5*b.Inertia*b.AngularVelocity*b.AngularVelocity
}
