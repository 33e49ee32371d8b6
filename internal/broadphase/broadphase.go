// Package broadphase proposes candidate colliding pairs from body AABBs.
//
// At the body counts this engine targets a brute-force AABB sweep is both
// simplest and cache-friendly; pairs come out ordered by registration
// index so downstream phases stay deterministic.
package broadphase

import (
	"github.com/san-kum/rigid2d/internal/body"
)

// Pair is a candidate colliding body pair, with A registered before B.
type Pair struct {
	A, B *body.Body
}

// Pairs returns all candidate pairs whose AABBs overlap, skipping
// static-static pairs. The bodies slice must be in registration order.
func Pairs(bodies []*body.Body) []Pair {
	pairs := make([]Pair, 0)

	boxes := make([]struct {
		min0, min1, max0, max1 float64
	}, len(bodies))
	for i, b := range bodies {
		ab := b.AABB()
		boxes[i].min0, boxes[i].min1 = ab.Min[0], ab.Min[1]
		boxes[i].max0, boxes[i].max1 = ab.Max[0], ab.Max[1]
	}

	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if bodies[i].Type == body.Static && bodies[j].Type == body.Static {
				continue
			}
			if boxes[i].min0 <= boxes[j].max0 && boxes[j].min0 <= boxes[i].max0 &&
				boxes[i].min1 <= boxes[j].max1 && boxes[j].min1 <= boxes[i].max1 {
				pairs = append(pairs, Pair{A: bodies[i], B: bodies[j]})
			}
		}
	}
	return pairs
}
