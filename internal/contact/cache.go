package contact

import (
	"github.com/go-gl/mathgl/mgl64"
)

// MatchThreshold is the maximum world-space distance at which a new
// contact point is considered the same as a cached one and inherits its
// accumulated impulses. Points farther apart warm-start from zero.
const MatchThreshold = 0.05

type pairKey struct {
	a, b uint64
}

func keyOf(aID, bID uint64) pairKey {
	if aID < bID {
		return pairKey{aID, bID}
	}
	return pairKey{bID, aID}
}

// Cache owns one Resolution per body pair that has ever collided and keeps
// it alive across ticks so accumulated impulses can warm-start the solver.
// Records are enumerated in registration order, which makes solving
// deterministic for identical body state and contact topology.
type Cache struct {
	persistence int

	records map[pairKey]*Resolution
	order   []pairKey

	tick uint64
}

// NewCache creates a cache whose separated records survive persistence
// ticks before eviction.
func NewCache(persistence int) *Cache {
	return &Cache{
		persistence: persistence,
		records:     make(map[pairKey]*Resolution),
	}
}

// Begin starts a new tick. Update calls that follow mark their records as
// seen; Sweep then ages everything the narrow phase no longer reports.
func (c *Cache) Begin() {
	c.tick++
}

// Update feeds one narrow-phase manifold into the cache: it creates,
// refreshes or ages the record for the manifold's pair.
func (c *Cache) Update(m Manifold) {
	k := keyOf(m.A.ID, m.B.ID)
	res, ok := c.records[k]

	if !ok {
		if !m.Colliding {
			return
		}
		res = &Resolution{
			A:         m.A,
			B:         m.B,
			Colliding: true,
			Normal:    m.Normal,
			Depth:     m.Depth,
			State:     StateFirst,
			Lifetime:  c.persistence,
			Count:     m.Count,
			touched:   c.tick,
		}
		for i := 0; i < m.Count; i++ {
			res.Contacts[i] = Contact{Position: m.Points[i]}
		}
		c.records[k] = res
		c.order = append(c.order, k)
		return
	}

	res.touched = c.tick

	if !m.Colliding {
		c.age(k, res)
		return
	}

	// Carry impulses from the nearest matching cached point so persistent
	// contacts keep converging instead of restarting every tick. Each
	// cached point is consumed by at most one new point; letting two
	// inherit the same accumulator would double the warm-started impulse.
	var fresh [MaxContacts]Contact
	var used [MaxContacts]bool
	for i := 0; i < m.Count; i++ {
		fresh[i] = Contact{Position: m.Points[i]}
		if j := res.nearest(m.Points[i], used); j >= 0 {
			used[j] = true
			fresh[i].Jn = res.Contacts[j].Jn
			fresh[i].Jt = res.Contacts[j].Jt
		}
	}
	res.Contacts = fresh
	res.Count = m.Count
	res.Normal = m.Normal
	res.Depth = m.Depth
	res.Colliding = true
	res.Lifetime = c.persistence

	switch res.State {
	case StateFirst:
		res.State = StateNormal
	case StateCached:
		res.State = StateFirst
	}
}

// Sweep ages every record the narrow phase did not report this tick.
// Pairs that drift out of broad-phase range separate through here.
func (c *Cache) Sweep() {
	stale := make([]pairKey, 0)
	for _, k := range c.order {
		if res := c.records[k]; res.touched != c.tick {
			stale = append(stale, k)
		}
	}
	for _, k := range stale {
		c.age(k, c.records[k])
	}
}

func (c *Cache) age(k pairKey, res *Resolution) {
	res.Colliding = false
	res.State = StateCached
	res.Lifetime--
	if res.Lifetime <= 0 {
		c.evict(k)
	}
}

// EvictBody removes every record referencing the given body. The space
// calls this on body removal; without it a record would dangle.
func (c *Cache) EvictBody(id uint64) {
	stale := make([]pairKey, 0)
	for _, k := range c.order {
		if k.a == id || k.b == id {
			stale = append(stale, k)
		}
	}
	for _, k := range stale {
		c.evict(k)
	}
}

func (c *Cache) evict(k pairKey) {
	delete(c.records, k)
	for i, o := range c.order {
		if o == k {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Active returns the currently colliding records in registration order.
func (c *Cache) Active() []*Resolution {
	out := make([]*Resolution, 0, len(c.order))
	for _, k := range c.order {
		if res := c.records[k]; res.Colliding && res.Count > 0 {
			out = append(out, res)
		}
	}
	return out
}

// Get returns the record for a body pair, or nil.
func (c *Cache) Get(aID, bID uint64) *Resolution {
	return c.records[keyOf(aID, bID)]
}

// Len returns the number of records, cached ones included.
func (c *Cache) Len() int {
	return len(c.records)
}

// nearest returns the index of the closest unconsumed cached contact
// within MatchThreshold of p, or -1.
func (r *Resolution) nearest(p mgl64.Vec2, used [MaxContacts]bool) int {
	best := -1
	bestDist := MatchThreshold * MatchThreshold
	for i := 0; i < r.Count; i++ {
		if used[i] {
			continue
		}
		d := r.Contacts[i].Position.Sub(p)
		if d2 := d.Dot(d); d2 <= bestDist {
			best = i
			bestDist = d2
		}
	}
	return best
}
