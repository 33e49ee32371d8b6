package body

// Material describes the physical surface and density properties of a body.
type Material struct {
	Density     float64
	Restitution float64
	Friction    float64
}

// Stock materials. Values are estimates gathered from common references;
// treat them as sensible starting points, not measurements.
var (
	Basic     = Material{Density: 1.0, Restitution: 0.1, Friction: 0.4}
	Steel     = Material{Density: 7.8, Restitution: 0.43, Friction: 0.45}
	Wood      = Material{Density: 1.5, Restitution: 0.37, Friction: 0.52}
	Glass     = Material{Density: 2.5, Restitution: 0.55, Friction: 0.19}
	Ice       = Material{Density: 0.92, Restitution: 0.05, Friction: 0.02}
	Concrete  = Material{Density: 3.6, Restitution: 0.075, Friction: 0.73}
	Rubber    = Material{Density: 1.4, Restitution: 0.89, Friction: 0.92}
	Cardboard = Material{Density: 0.6, Restitution: 0.02, Friction: 0.2}
)
