// Package scene provides named scene builders, the catalogue the CLI and
// the live view pick simulations from.
package scene

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rigid2d/internal/body"
	"github.com/san-kum/rigid2d/internal/joint"
	"github.com/san-kum/rigid2d/internal/space"
)

// Builder populates a fresh space with bodies.
type Builder func(s *space.Space)

var builders = map[string]Builder{
	"stack":    Stack,
	"pyramid":  Pyramid,
	"bounce":   Bounce,
	"mixer":    Mixer,
	"plinko":   Plinko,
	"pendulum": Pendulum,
}

// New creates a space with the given settings and builds the named scene
// into it.
func New(name string, settings space.Settings) (*space.Space, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene: %s", name)
	}
	s, err := space.New(settings)
	if err != nil {
		return nil, err
	}
	build(s)
	return s, nil
}

// List returns all scene names, sorted.
func List() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stack is a tower of wooden boxes on concrete ground.
func Stack(s *space.Space) {
	s.AddBody(body.NewStatic(body.NewBox(30, 2), body.Concrete, mgl64.Vec2{0, -1}))
	for i := 0; i < 6; i++ {
		s.AddBody(body.New(body.NewBox(1, 1), body.Wood, mgl64.Vec2{0, 0.55 + float64(i)*1.05}))
	}
}

// Pyramid stacks rows of boxes into a pyramid.
func Pyramid(s *space.Space) {
	s.AddBody(body.NewStatic(body.NewBox(30, 2), body.Concrete, mgl64.Vec2{0, -1}))
	const rows = 5
	for row := 0; row < rows; row++ {
		n := rows - row
		y := 0.55 + float64(row)*1.05
		for i := 0; i < n; i++ {
			x := (float64(i) - float64(n-1)/2) * 1.1
			s.AddBody(body.New(body.NewBox(1, 1), body.Wood, mgl64.Vec2{x, y}))
		}
	}
}

// Bounce drops rubber balls of varying size onto the ground.
func Bounce(s *space.Space) {
	s.AddBody(body.NewStatic(body.NewBox(30, 2), body.Concrete, mgl64.Vec2{0, -1}))
	for i := 0; i < 5; i++ {
		r := 0.3 + float64(i)*0.1
		x := float64(i)*2 - 4
		s.AddBody(body.New(&body.Circle{Radius: r}, body.Rubber, mgl64.Vec2{x, 4 + float64(i)}))
	}
}

// Mixer drops bodies of very different materials together: steel sinks
// dead, rubber bounces, ice slides.
func Mixer(s *space.Space) {
	s.AddBody(body.NewStatic(body.NewBox(30, 2), body.Concrete, mgl64.Vec2{0, -1}))

	mats := []body.Material{body.Steel, body.Rubber, body.Ice, body.Wood, body.Glass}
	for i, mat := range mats {
		x := float64(i)*2 - 4
		s.AddBody(body.New(&body.Circle{Radius: 0.4}, mat, mgl64.Vec2{x, 3}))
		s.AddBody(body.New(body.NewBox(0.8, 0.8), mat, mgl64.Vec2{x, 5.5}))
	}
}

// Pendulum hangs a chain of steel bobs from a fixed pin with distance
// joints and starts it swinging over a concrete floor.
func Pendulum(s *space.Space) {
	s.AddBody(body.NewStatic(body.NewBox(30, 2), body.Concrete, mgl64.Vec2{0, -1}))

	pin := body.NewStatic(&body.Circle{Radius: 0.1}, body.Steel, mgl64.Vec2{0, 8})
	s.AddBody(pin)

	prev := pin
	for i := 0; i < 3; i++ {
		bob := body.New(&body.Circle{Radius: 0.3}, body.Steel,
			mgl64.Vec2{1.5 * float64(i+1), 8})
		s.AddBody(bob)
		s.AddJoint(joint.NewDistance(prev, bob, mgl64.Vec2{}, mgl64.Vec2{}, 1.5))
		prev = bob
	}
}

// Plinko drops circles through a field of static pegs.
func Plinko(s *space.Space) {
	s.AddBody(body.NewStatic(body.NewBox(30, 2), body.Concrete, mgl64.Vec2{0, -1}))

	for row := 0; row < 4; row++ {
		for col := 0; col < 6; col++ {
			x := float64(col)*2 - 5 + float64(row%2)
			y := 2 + float64(row)*1.5
			s.AddBody(body.NewStatic(&body.Circle{Radius: 0.2}, body.Steel, mgl64.Vec2{x, y}))
		}
	}
	for i := 0; i < 6; i++ {
		x := float64(i)*0.8 - 2
		s.AddBody(body.New(&body.Circle{Radius: 0.25}, body.Wood, mgl64.Vec2{x, 9 + float64(i)*0.7}))
	}
}
