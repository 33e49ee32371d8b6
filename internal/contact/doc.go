// Package contact implements collision resolution: the persistent
// per-pair contact cache and the sequential-impulse constraint solver.
//
// The [Cache] keeps one [Resolution] per body pair across ticks. A record
// moves through three states: it is born [StateFirst] the tick a collision
// begins, becomes [StateNormal] while the collision persists, and drops to
// [StateCached] when the pair separates. Cached records survive a
// configured number of ticks so a pair that re-collides quickly resumes
// with its accumulated impulses (warm starting) instead of re-converging
// from zero; records whose lifetime runs out are evicted.
//
// Each tick the driver runs, per active record:
//
//	PreSolve -> WarmStart -> SolveVelocity (N passes) -> SolvePosition
//
// SolveVelocity resolves the non-penetration inequality (Jn >= 0) and
// Coulomb friction (|Jt| <= friction*Jn); SolvePosition removes residual
// penetration through pseudo-velocities so the correction never injects
// kinetic energy (split impulse).
package contact
