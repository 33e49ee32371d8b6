package body

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rigid2d/internal/geom"
)

// Shape is the collision geometry of a body, expressed in local space with
// the centroid at the origin.
type Shape interface {
	Area() float64
	// Inertia returns the moment of inertia about the centroid for the
	// given mass.
	Inertia(mass float64) float64
	AABB(pos mgl64.Vec2, angle float64) geom.AABB
}

// Circle is a circle shape centered on the body origin.
type Circle struct {
	Radius float64
}

func (c *Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

func (c *Circle) Inertia(mass float64) float64 {
	return 0.5 * mass * c.Radius * c.Radius
}

func (c *Circle) AABB(pos mgl64.Vec2, angle float64) geom.AABB {
	r := mgl64.Vec2{c.Radius, c.Radius}
	return geom.AABB{Min: pos.Sub(r), Max: pos.Add(r)}
}

// Polygon is a convex polygon with counterclockwise winding. Constructors
// recenter the vertices so the centroid sits at the local origin.
type Polygon struct {
	Verts []mgl64.Vec2
}

// NewPolygon builds a polygon from counterclockwise vertices and recenters
// them about the centroid.
func NewPolygon(verts []mgl64.Vec2) *Polygon {
	p := &Polygon{Verts: make([]mgl64.Vec2, len(verts))}
	copy(p.Verts, verts)
	c := p.centroid()
	for i := range p.Verts {
		p.Verts[i] = p.Verts[i].Sub(c)
	}
	return p
}

// NewBox builds an axis-aligned box polygon of the given width and height.
func NewBox(w, h float64) *Polygon {
	hw, hh := w/2, h/2
	return &Polygon{Verts: []mgl64.Vec2{
		{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh},
	}}
}

func (p *Polygon) centroid() mgl64.Vec2 {
	var c mgl64.Vec2
	var area float64
	for i := range p.Verts {
		v0 := p.Verts[i]
		v1 := p.Verts[(i+1)%len(p.Verts)]
		cross := geom.Cross(v0, v1)
		area += cross
		c = c.Add(v0.Add(v1).Mul(cross))
	}
	area /= 2
	return c.Mul(1 / (6 * area))
}

func (p *Polygon) Area() float64 {
	var area float64
	for i := range p.Verts {
		area += geom.Cross(p.Verts[i], p.Verts[(i+1)%len(p.Verts)])
	}
	return area / 2
}

func (p *Polygon) Inertia(mass float64) float64 {
	// Second moment of a polygon about its centroid, normalized by area.
	var num, den float64
	for i := range p.Verts {
		v0 := p.Verts[i]
		v1 := p.Verts[(i+1)%len(p.Verts)]
		cross := geom.Cross(v0, v1)
		num += cross * (v0.Dot(v0) + v0.Dot(v1) + v1.Dot(v1))
		den += cross
	}
	return mass * num / (6 * den)
}

func (p *Polygon) AABB(pos mgl64.Vec2, angle float64) geom.AABB {
	min := mgl64.Vec2{math.Inf(1), math.Inf(1)}
	max := mgl64.Vec2{math.Inf(-1), math.Inf(-1)}
	for _, v := range p.Verts {
		w := geom.Rotate(v, angle).Add(pos)
		min[0] = math.Min(min[0], w[0])
		min[1] = math.Min(min[1], w[1])
		max[0] = math.Max(max[0], w[0])
		max[1] = math.Max(max[1], w[1])
	}
	return geom.AABB{Min: min, Max: max}
}

// WorldVerts returns the polygon vertices transformed into world space.
func (p *Polygon) WorldVerts(pos mgl64.Vec2, angle float64) []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(p.Verts))
	for i, v := range p.Verts {
		out[i] = geom.Rotate(v, angle).Add(pos)
	}
	return out
}
