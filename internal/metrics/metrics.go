// Package metrics provides per-tick observers over a running space.
package metrics

import (
	"math"

	"github.com/san-kum/rigid2d/internal/space"
)

// Metric observes the space once per tick and reduces to a single value.
type Metric interface {
	Name() string
	Observe(s *space.Space, t float64)
	Value() float64
	Reset()
}

// KineticEnergy tracks the mean total kinetic energy over the run.
type KineticEnergy struct {
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (m *KineticEnergy) Name() string { return "kinetic_energy" }

func (m *KineticEnergy) Observe(s *space.Space, t float64) {
	m.total += s.Energy()
	m.samples++
}

func (m *KineticEnergy) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *KineticEnergy) Reset() {
	m.total = 0
	m.samples = 0
}

// MaxPenetration tracks the deepest contact penetration seen, a direct
// measure of how well position correction holds the slop tolerance.
type MaxPenetration struct {
	max float64
}

func NewMaxPenetration() *MaxPenetration { return &MaxPenetration{} }

func (m *MaxPenetration) Name() string { return "max_penetration" }

func (m *MaxPenetration) Observe(s *space.Space, t float64) {
	m.max = math.Max(m.max, s.MaxPenetration())
}

func (m *MaxPenetration) Value() float64 { return m.max }

func (m *MaxPenetration) Reset() { m.max = 0 }

// ContactCount tracks the mean number of live contact points.
type ContactCount struct {
	total   int
	samples int
}

func NewContactCount() *ContactCount { return &ContactCount{} }

func (m *ContactCount) Name() string { return "contact_count" }

func (m *ContactCount) Observe(s *space.Space, t float64) {
	m.total += s.ContactCount()
	m.samples++
}

func (m *ContactCount) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.total) / float64(m.samples)
}

func (m *ContactCount) Reset() {
	m.total = 0
	m.samples = 0
}

// ImpulseMagnitude tracks the mean accumulated normal impulse across
// active contacts, a proxy for how hard the solver is working.
type ImpulseMagnitude struct {
	total   float64
	samples int
}

func NewImpulseMagnitude() *ImpulseMagnitude { return &ImpulseMagnitude{} }

func (m *ImpulseMagnitude) Name() string { return "impulse_magnitude" }

func (m *ImpulseMagnitude) Observe(s *space.Space, t float64) {
	for _, res := range s.Resolutions() {
		for i := 0; i < res.Count; i++ {
			m.total += math.Abs(res.Contacts[i].Jn)
		}
	}
	m.samples++
}

func (m *ImpulseMagnitude) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *ImpulseMagnitude) Reset() {
	m.total = 0
	m.samples = 0
}

// Default returns the standard metric set for a run.
func Default() []Metric {
	return []Metric{NewKineticEnergy(), NewMaxPenetration(), NewContactCount(), NewImpulseMagnitude()}
}
