// Package narrowphase computes contact manifolds for candidate pairs:
// separation normal, penetration depth and up to two contact points.
//
// Polygon pairs use separating-axis tests with reference-face clipping;
// circles collide analytically. A manifold with Colliding false reports
// the separation of a previously overlapping pair to the contact cache.
package narrowphase

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rigid2d/internal/body"
	"github.com/san-kum/rigid2d/internal/contact"
)

// Collide computes the manifold for a body pair. Circle-polygon pairs are
// always reported with the polygon as manifold body A so the pair keeps a
// stable orientation across ticks.
func Collide(a, b *body.Body) contact.Manifold {
	switch sa := a.Shape.(type) {
	case *body.Circle:
		switch sb := b.Shape.(type) {
		case *body.Circle:
			return circles(a, sa, b, sb)
		case *body.Polygon:
			return polygonCircle(b, sb, a, sa)
		}
	case *body.Polygon:
		switch sb := b.Shape.(type) {
		case *body.Circle:
			return polygonCircle(a, sa, b, sb)
		case *body.Polygon:
			return polygons(a, sa, b, sb)
		}
	}
	return contact.Manifold{A: a, B: b}
}

func circles(a *body.Body, sa *body.Circle, b *body.Body, sb *body.Circle) contact.Manifold {
	m := contact.Manifold{A: a, B: b}

	d := b.Position.Sub(a.Position)
	rsum := sa.Radius + sb.Radius
	d2 := d.Dot(d)
	if d2 > rsum*rsum {
		return m
	}

	dist := math.Sqrt(d2)
	n := mgl64.Vec2{0, 1} // coincident centers: any axis works
	if dist > 1e-12 {
		n = d.Mul(1 / dist)
	}

	m.Colliding = true
	m.Normal = n
	m.Depth = rsum - dist
	m.Points[0] = a.Position.Add(n.Mul(sa.Radius - m.Depth/2))
	m.Count = 1
	return m
}

func polygonCircle(pb *body.Body, poly *body.Polygon, cb *body.Body, circle *body.Circle) contact.Manifold {
	m := contact.Manifold{A: pb, B: cb}

	verts := poly.WorldVerts(pb.Position, pb.Angle)
	center := cb.Position

	// face of maximum separation from the circle center
	maxSep := math.Inf(-1)
	var edge int
	for i := range verts {
		n := edgeNormal(verts, i)
		sep := n.Dot(center.Sub(verts[i]))
		if sep > maxSep {
			maxSep = sep
			edge = i
		}
	}
	if maxSep > circle.Radius {
		return m
	}

	v1 := verts[edge]
	v2 := verts[(edge+1)%len(verts)]

	if maxSep < 0 {
		// center inside the polygon
		n := edgeNormal(verts, edge)
		m.Colliding = true
		m.Normal = n
		m.Depth = circle.Radius - maxSep
		m.Points[0] = center.Sub(n.Mul(circle.Radius))
		m.Count = 1
		return m
	}

	// closest point on the face segment
	t := center.Sub(v1).Dot(v2.Sub(v1)) / v2.Sub(v1).Dot(v2.Sub(v1))
	t = math.Max(0, math.Min(1, t))
	closest := v1.Add(v2.Sub(v1).Mul(t))

	d := center.Sub(closest)
	dist2 := d.Dot(d)
	if dist2 > circle.Radius*circle.Radius {
		return m
	}

	dist := math.Sqrt(dist2)
	n := edgeNormal(verts, edge)
	if dist > 1e-12 {
		n = d.Mul(1 / dist)
	}

	m.Colliding = true
	m.Normal = n
	m.Depth = circle.Radius - dist
	m.Points[0] = closest
	m.Count = 1
	return m
}

func polygons(a *body.Body, sa *body.Polygon, b *body.Body, sb *body.Polygon) contact.Manifold {
	m := contact.Manifold{A: a, B: b}

	va := sa.WorldVerts(a.Position, a.Angle)
	vb := sb.WorldVerts(b.Position, b.Angle)

	sepA, edgeA := maxSeparation(va, vb)
	if sepA > 0 {
		return m
	}
	sepB, edgeB := maxSeparation(vb, va)
	if sepB > 0 {
		return m
	}

	// reference face on the polygon with the shallower penetration; the
	// small bias keeps the choice stable frame to frame
	ref, inc := va, vb
	refEdge := edgeA
	flip := false
	if sepB > sepA+1e-10 {
		ref, inc = vb, va
		refEdge = edgeB
		flip = true
	}

	refNormal := edgeNormal(ref, refEdge)
	incEdge := incidentEdge(inc, refNormal)

	// clip the incident edge against the reference face side planes
	v1 := ref[refEdge]
	v2 := ref[(refEdge+1)%len(ref)]
	side := v2.Sub(v1).Normalize()

	pts := [2]mgl64.Vec2{inc[incEdge], inc[(incEdge+1)%len(inc)]}
	pts, ok := clip(pts, side.Mul(-1), -side.Dot(v1))
	if !ok {
		return m
	}
	pts, ok = clip(pts, side, side.Dot(v2))
	if !ok {
		return m
	}

	// keep only points behind the reference face
	for _, p := range pts {
		sep := refNormal.Dot(p.Sub(v1))
		if sep <= 0 {
			m.Points[m.Count] = p
			m.Count++
			if -sep > m.Depth {
				m.Depth = -sep
			}
		}
	}
	if m.Count == 0 {
		return m
	}

	m.Colliding = true
	m.Normal = refNormal
	if flip {
		m.Normal = refNormal.Mul(-1)
	}
	return m
}

// edgeNormal returns the outward unit normal of edge i for a
// counterclockwise-wound vertex loop.
func edgeNormal(verts []mgl64.Vec2, i int) mgl64.Vec2 {
	e := verts[(i+1)%len(verts)].Sub(verts[i])
	n := mgl64.Vec2{e[1], -e[0]}
	l := n.Len()
	if l < 1e-12 {
		return mgl64.Vec2{0, 1}
	}
	return n.Mul(1 / l)
}

// maxSeparation finds the face of poly that is farthest from other along
// its own normal. A positive result proves a separating axis.
func maxSeparation(poly, other []mgl64.Vec2) (float64, int) {
	best := math.Inf(-1)
	bestEdge := 0
	for i := range poly {
		n := edgeNormal(poly, i)
		low := math.Inf(1)
		for _, v := range other {
			if d := n.Dot(v.Sub(poly[i])); d < low {
				low = d
			}
		}
		if low > best {
			best = low
			bestEdge = i
		}
	}
	return best, bestEdge
}

// incidentEdge returns the edge of poly whose normal is most anti-parallel
// to the reference normal.
func incidentEdge(poly []mgl64.Vec2, refNormal mgl64.Vec2) int {
	best := math.Inf(1)
	bestEdge := 0
	for i := range poly {
		if d := edgeNormal(poly, i).Dot(refNormal); d < best {
			best = d
			bestEdge = i
		}
	}
	return bestEdge
}

// clip cuts the segment to the half-plane dot(n, p) <= offset.
func clip(pts [2]mgl64.Vec2, n mgl64.Vec2, offset float64) ([2]mgl64.Vec2, bool) {
	d0 := n.Dot(pts[0]) - offset
	d1 := n.Dot(pts[1]) - offset

	var out [2]mgl64.Vec2
	count := 0
	if d0 <= 0 {
		out[count] = pts[0]
		count++
	}
	if d1 <= 0 {
		out[count] = pts[1]
		count++
	}
	if d0*d1 < 0 {
		t := d0 / (d0 - d1)
		out[count] = pts[0].Add(pts[1].Sub(pts[0]).Mul(t))
		count++
	}
	return out, count == 2
}
