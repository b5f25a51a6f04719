// Package physics resolves 1D two-body collisions.
//
// The engine is a pure function of its inputs: given two masses, two
// velocities, and a coefficient of restitution e in [0, 1], [Resolve]
// returns the post-collision velocities together with momentum and
// kinetic-energy bookkeeping for both particles.
//
// Total momentum is conserved for every valid input. Total kinetic energy
// is conserved only for e = 1; for e = 0 the bodies leave the collision
// with a common velocity.
package physics
