package contact

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rigid2d/internal/body"
)

func testBody(id uint64, x, y float64) *body.Body {
	b := body.New(&body.Circle{Radius: 1}, body.Basic, mgl64.Vec2{x, y})
	b.ID = id
	return b
}

func manifoldFor(a, b *body.Body, points ...mgl64.Vec2) Manifold {
	m := Manifold{
		A:         a,
		B:         b,
		Colliding: true,
		Normal:    mgl64.Vec2{0, 1},
		Depth:     0.1,
		Count:     len(points),
	}
	copy(m.Points[:], points)
	return m
}

func separated(a, b *body.Body) Manifold {
	return Manifold{A: a, B: b, Colliding: false}
}

func TestNewRecordStartsFirstWithZeroImpulses(t *testing.T) {
	c := NewCache(5)
	a, b := testBody(1, 0, 0), testBody(2, 0, 1.5)

	c.Update(manifoldFor(a, b, mgl64.Vec2{0, 0.75}))

	res := c.Get(1, 2)
	if res == nil {
		t.Fatal("expected record after colliding update")
	}
	if res.State != StateFirst {
		t.Errorf("expected state first, got %s", res.State)
	}
	if res.Lifetime != 5 {
		t.Errorf("expected full lifetime, got %d", res.Lifetime)
	}
	for i := 0; i < res.Count; i++ {
		con := res.Contacts[i]
		if con.Jn != 0 || con.Jt != 0 || con.Jb != 0 {
			t.Errorf("contact %d: fresh record must have zero impulses", i)
		}
	}
}

func TestSeparatedPairWithoutRecordIsIgnored(t *testing.T) {
	c := NewCache(5)
	a, b := testBody(1, 0, 0), testBody(2, 5, 0)

	c.Update(separated(a, b))
	if c.Len() != 0 {
		t.Error("separation of an untracked pair must not create a record")
	}
}

func TestStateAdvancesFirstToNormal(t *testing.T) {
	c := NewCache(5)
	a, b := testBody(1, 0, 0), testBody(2, 0, 1.5)
	p := mgl64.Vec2{0, 0.75}

	c.Update(manifoldFor(a, b, p))
	c.Update(manifoldFor(a, b, p))

	res := c.Get(1, 2)
	if res.State != StateNormal {
		t.Errorf("expected state normal after second tick, got %s", res.State)
	}

	c.Update(manifoldFor(a, b, p))
	if res.State != StateNormal {
		t.Errorf("state must stay normal while colliding, got %s", res.State)
	}
}

func TestContactMatchingCarriesImpulses(t *testing.T) {
	c := NewCache(5)
	a, b := testBody(1, 0, 0), testBody(2, 0, 1.5)
	p := mgl64.Vec2{0, 0.75}

	c.Update(manifoldFor(a, b, p))
	res := c.Get(1, 2)
	res.Contacts[0].Jn = 3.5
	res.Contacts[0].Jt = -0.8

	// next tick, contact moved less than the matching threshold
	moved := p.Add(mgl64.Vec2{MatchThreshold / 2, 0})
	c.Update(manifoldFor(a, b, moved))

	if res.Contacts[0].Jn != 3.5 || res.Contacts[0].Jt != -0.8 {
		t.Errorf("expected impulses carried, got jn=%f jt=%f",
			res.Contacts[0].Jn, res.Contacts[0].Jt)
	}

	// a point beyond the threshold is a new contact
	far := p.Add(mgl64.Vec2{MatchThreshold * 3, 0})
	c.Update(manifoldFor(a, b, far))

	if res.Contacts[0].Jn != 0 || res.Contacts[0].Jt != 0 {
		t.Errorf("expected zero impulses for unmatched contact, got jn=%f jt=%f",
			res.Contacts[0].Jn, res.Contacts[0].Jt)
	}
}

func TestCachedContactConsumedByOneMatchOnly(t *testing.T) {
	c := NewCache(5)
	a, b := testBody(1, 0, 0), testBody(2, 0, 1.5)
	p := mgl64.Vec2{0, 0.75}

	c.Update(manifoldFor(a, b, p))
	res := c.Get(1, 2)
	res.Contacts[0].Jn = 3.5

	// next tick the manifold splits into two points, both within the
	// matching threshold of the single cached one
	near1 := p.Add(mgl64.Vec2{MatchThreshold / 4, 0})
	near2 := p.Sub(mgl64.Vec2{MatchThreshold / 4, 0})
	c.Update(manifoldFor(a, b, near1, near2))

	carried := 0
	for i := 0; i < res.Count; i++ {
		if res.Contacts[i].Jn != 0 {
			carried++
			if res.Contacts[i].Jn != 3.5 {
				t.Errorf("contact %d: expected carried jn 3.5, got %f", i, res.Contacts[i].Jn)
			}
		}
	}
	if carried != 1 {
		t.Errorf("one cached contact must seed exactly one new point, seeded %d", carried)
	}
}

func TestSeparationCachesAndEvicts(t *testing.T) {
	const persistence = 3
	c := NewCache(persistence)
	a, b := testBody(1, 0, 0), testBody(2, 0, 1.5)

	c.Update(manifoldFor(a, b, mgl64.Vec2{0, 0.75}))

	for i := 1; i < persistence; i++ {
		c.Update(separated(a, b))
		res := c.Get(1, 2)
		if res == nil {
			t.Fatalf("record evicted too early, at separation tick %d", i)
		}
		if res.State != StateCached {
			t.Errorf("expected cached state, got %s", res.State)
		}
		if res.Lifetime != persistence-i {
			t.Errorf("expected lifetime %d, got %d", persistence-i, res.Lifetime)
		}
	}

	c.Update(separated(a, b))
	if c.Get(1, 2) != nil {
		t.Error("expected eviction after lifetime ran out")
	}
}

func TestReCollisionBeforeEvictionKeepsImpulses(t *testing.T) {
	const persistence = 4
	c := NewCache(persistence)
	a, b := testBody(1, 0, 0), testBody(2, 0, 1.5)
	p := mgl64.Vec2{0, 0.75}

	c.Update(manifoldFor(a, b, p))
	res := c.Get(1, 2)
	res.Contacts[0].Jn = 2.25

	for i := 0; i < persistence-1; i++ {
		c.Update(separated(a, b))
	}

	c.Update(manifoldFor(a, b, p))
	res = c.Get(1, 2)
	if res == nil {
		t.Fatal("record should still exist")
	}
	if res.State != StateFirst {
		t.Errorf("re-collision of cached pair restarts at first, got %s", res.State)
	}
	if res.Contacts[0].Jn != 2.25 {
		t.Errorf("expected cached impulse 2.25, got %f", res.Contacts[0].Jn)
	}
	if res.Lifetime != persistence {
		t.Errorf("expected lifetime reset to %d, got %d", persistence, res.Lifetime)
	}
}

func TestReCollisionAfterEvictionStartsFresh(t *testing.T) {
	const persistence = 4
	c := NewCache(persistence)
	a, b := testBody(1, 0, 0), testBody(2, 0, 1.5)
	p := mgl64.Vec2{0, 0.75}

	c.Update(manifoldFor(a, b, p))
	c.Get(1, 2).Contacts[0].Jn = 2.25

	for i := 0; i < persistence; i++ {
		c.Update(separated(a, b))
	}
	if c.Get(1, 2) != nil {
		t.Fatal("expected record evicted")
	}

	c.Update(manifoldFor(a, b, p))
	res := c.Get(1, 2)
	if res.State != StateFirst || res.Contacts[0].Jn != 0 {
		t.Errorf("expected fresh record with zero impulses, got state=%s jn=%f",
			res.State, res.Contacts[0].Jn)
	}
}

func TestSweepAgesUntouchedRecords(t *testing.T) {
	c := NewCache(2)
	a, b := testBody(1, 0, 0), testBody(2, 0, 1.5)

	c.Begin()
	c.Update(manifoldFor(a, b, mgl64.Vec2{0, 0.75}))
	c.Sweep()
	if res := c.Get(1, 2); res.State != StateFirst {
		t.Errorf("touched record must not be aged, got %s", res.State)
	}

	// pair disappears from the narrow phase entirely
	c.Begin()
	c.Sweep()
	res := c.Get(1, 2)
	if res == nil {
		t.Fatal("record evicted too early")
	}
	if res.State != StateCached || res.Lifetime != 1 {
		t.Errorf("expected cached with lifetime 1, got %s lifetime %d", res.State, res.Lifetime)
	}

	c.Begin()
	c.Sweep()
	if c.Get(1, 2) != nil {
		t.Error("expected eviction via sweep")
	}
}

func TestEvictBody(t *testing.T) {
	c := NewCache(5)
	a := testBody(1, 0, 0)
	b := testBody(2, 0, 1.5)
	d := testBody(3, 0, 3)

	c.Update(manifoldFor(a, b, mgl64.Vec2{0, 0.75}))
	c.Update(manifoldFor(b, d, mgl64.Vec2{0, 2.25}))
	c.Update(manifoldFor(a, d, mgl64.Vec2{0, 1.5}))

	c.EvictBody(2)

	if c.Get(1, 2) != nil || c.Get(2, 3) != nil {
		t.Error("records referencing removed body must be evicted")
	}
	if c.Get(1, 3) == nil {
		t.Error("unrelated record must survive")
	}
}

func TestActiveRegistrationOrder(t *testing.T) {
	c := NewCache(5)
	bodies := make([]*body.Body, 6)
	for i := range bodies {
		bodies[i] = testBody(uint64(i+1), 0, float64(i)*1.5)
	}

	// register pairs in a fixed order
	c.Update(manifoldFor(bodies[4], bodies[5], mgl64.Vec2{}))
	c.Update(manifoldFor(bodies[0], bodies[1], mgl64.Vec2{}))
	c.Update(manifoldFor(bodies[2], bodies[3], mgl64.Vec2{}))

	want := [][2]uint64{{5, 6}, {1, 2}, {3, 4}}
	active := c.Active()
	if len(active) != len(want) {
		t.Fatalf("expected %d active records, got %d", len(want), len(active))
	}
	for i, res := range active {
		if res.A.ID != want[i][0] || res.B.ID != want[i][1] {
			t.Errorf("position %d: expected pair (%d,%d), got (%d,%d)",
				i, want[i][0], want[i][1], res.A.ID, res.B.ID)
		}
	}

	// pair order must be stable across repeated updates
	c.Update(manifoldFor(bodies[0], bodies[1], mgl64.Vec2{}))
	active = c.Active()
	if active[0].A.ID != 5 || active[1].A.ID != 1 || active[2].A.ID != 3 {
		t.Error("registration order changed after update")
	}
}

func TestContactCountBounds(t *testing.T) {
	c := NewCache(5)
	a, b := testBody(1, 0, 0), testBody(2, 0, 1.5)

	c.Update(manifoldFor(a, b, mgl64.Vec2{-0.5, 0.75}, mgl64.Vec2{0.5, 0.75}))
	res := c.Get(1, 2)
	if res.Count != 2 {
		t.Errorf("expected 2 contacts, got %d", res.Count)
	}

	c.Update(manifoldFor(a, b, mgl64.Vec2{-0.5, 0.75}))
	if res.Count != 1 {
		t.Errorf("expected 1 contact after update, got %d", res.Count)
	}
}
