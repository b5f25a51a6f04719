package physics

import "math"

// ParticleState captures a single particle's kinematic quantities at one
// instant: before a collision or after it.
type ParticleState struct {
	Mass          float64 `json:"mass"`
	Velocity      float64 `json:"velocity"`
	Momentum      float64 `json:"momentum"`
	KineticEnergy float64 `json:"kinetic_energy"`
}

// Result holds the complete outcome of a two-body collision: per-particle
// states before and after impact plus aggregate totals. A Result is built
// once per resolution and never mutated afterwards.
type Result struct {
	Particle1Before ParticleState `json:"particle1_before"`
	Particle2Before ParticleState `json:"particle2_before"`
	Particle1After  ParticleState `json:"particle1_after"`
	Particle2After  ParticleState `json:"particle2_after"`

	TotalMomentumBefore      float64 `json:"total_momentum_before"`
	TotalMomentumAfter       float64 `json:"total_momentum_after"`
	TotalKineticEnergyBefore float64 `json:"total_kinetic_energy_before"`
	TotalKineticEnergyAfter  float64 `json:"total_kinetic_energy_after"`
	KineticEnergyChange      float64 `json:"kinetic_energy_change"`
	Restitution              float64 `json:"restitution"`
}

// Momentum computes p = m*v.
func Momentum(mass, velocity float64) float64 {
	return mass * velocity
}

// KineticEnergy computes KE = 0.5*m*v^2.
func KineticEnergy(mass, velocity float64) float64 {
	return 0.5 * mass * velocity * velocity
}

// NewParticleState builds a ParticleState with momentum and kinetic energy
// derived from mass and velocity.
func NewParticleState(mass, velocity float64) ParticleState {
	return ParticleState{
		Mass:          mass,
		Velocity:      velocity,
		Momentum:      Momentum(mass, velocity),
		KineticEnergy: KineticEnergy(mass, velocity),
	}
}

// Velocities computes post-collision velocities for a 1D two-body collision
// with coefficient of restitution e:
//
//	v1' = (m1*v1 + m2*v2 - m2*e*(v1-v2)) / (m1+m2)
//	v2' = (m1*v1 + m2*v2 + m1*e*(v1-v2)) / (m1+m2)
//
// Momentum conservation is an algebraic identity of these formulas for any
// e; total kinetic energy is conserved iff e = 1.
func Velocities(m1, v1, m2, v2, e float64) (float64, float64, error) {
	if err := validate(m1, v1, m2, v2, e); err != nil {
		return 0, 0, err
	}

	totalMass := m1 + m2
	momentumSum := m1*v1 + m2*v2
	relativeVelocity := v1 - v2

	v1After := (momentumSum - m2*e*relativeVelocity) / totalMass
	v2After := (momentumSum + m1*e*relativeVelocity) / totalMass

	return v1After, v2After, nil
}

// Resolve runs a full collision: it validates inputs, computes post-collision
// velocities, and assembles per-particle and aggregate quantities. Kinetic
// energies before and after are each computed from their own velocities, so
// displayed values stay consistent under rounding. Identical inputs yield
// bit-identical results.
func Resolve(m1, v1, m2, v2, e float64) (*Result, error) {
	v1After, v2After, err := Velocities(m1, v1, m2, v2, e)
	if err != nil {
		return nil, err
	}

	p1Before := NewParticleState(m1, v1)
	p2Before := NewParticleState(m2, v2)
	p1After := NewParticleState(m1, v1After)
	p2After := NewParticleState(m2, v2After)

	totalKEBefore := p1Before.KineticEnergy + p2Before.KineticEnergy
	totalKEAfter := p1After.KineticEnergy + p2After.KineticEnergy

	return &Result{
		Particle1Before:          p1Before,
		Particle2Before:          p2Before,
		Particle1After:           p1After,
		Particle2After:           p2After,
		TotalMomentumBefore:      p1Before.Momentum + p2Before.Momentum,
		TotalMomentumAfter:       p1After.Momentum + p2After.Momentum,
		TotalKineticEnergyBefore: totalKEBefore,
		TotalKineticEnergyAfter:  totalKEAfter,
		KineticEnergyChange:      totalKEAfter - totalKEBefore,
		Restitution:              e,
	}, nil
}

func validate(m1, v1, m2, v2, e float64) error {
	if m1 <= 0 || math.IsNaN(m1) || math.IsInf(m1, 0) {
		return &InvalidParameterError{Field: "particle1.mass", Value: m1, Reason: "mass must be positive and finite"}
	}
	if m2 <= 0 || math.IsNaN(m2) || math.IsInf(m2, 0) {
		return &InvalidParameterError{Field: "particle2.mass", Value: m2, Reason: "mass must be positive and finite"}
	}
	if math.IsNaN(v1) || math.IsInf(v1, 0) {
		return &InvalidParameterError{Field: "particle1.velocity", Value: v1, Reason: "velocity must be finite"}
	}
	if math.IsNaN(v2) || math.IsInf(v2, 0) {
		return &InvalidParameterError{Field: "particle2.velocity", Value: v2, Reason: "velocity must be finite"}
	}
	if e < 0 || e > 1 || math.IsNaN(e) {
		return &InvalidParameterError{Field: "restitution", Value: e, Reason: "coefficient of restitution must be in [0, 1]"}
	}
	return nil
}
