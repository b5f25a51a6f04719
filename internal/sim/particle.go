package sim

import "math"

const (
	// Visual radius bounds. Radius is cosmetic: it feeds collision
	// detection on screen but never the physics resolution.
	MinRadius = 8.0
	MaxRadius = 30.0

	radiusBase      = 10.0
	radiusMassScale = 5.0
)

// Particle is an immutable point-mass value. Updates go through the
// With*/Advance constructors so no component holds a writable handle
// into another's copy.
type Particle struct {
	ID       string  `json:"id"`
	Position float64 `json:"position"`
	Velocity float64 `json:"velocity"`
	Mass     float64 `json:"mass"`
	Radius   float64 `json:"radius"`
	Color    string  `json:"color"`
}

// NewParticle builds a particle with its radius derived from mass.
func NewParticle(id string, mass, velocity, position float64) Particle {
	return Particle{
		ID:       id,
		Position: position,
		Velocity: velocity,
		Mass:     mass,
		Radius:   RadiusForMass(mass),
	}
}

// RadiusForMass maps mass to a display radius, monotonically and clamped
// to [MinRadius, MaxRadius].
func RadiusForMass(mass float64) float64 {
	r := radiusBase + radiusMassScale*mass
	return math.Min(math.Max(r, MinRadius), MaxRadius)
}

// Advance returns the particle moved by velocity*dt.
func (p Particle) Advance(dt float64) Particle {
	p.Position += p.Velocity * dt
	return p
}

// WithMass returns the particle with a new mass and recomputed radius.
func (p Particle) WithMass(mass float64) Particle {
	p.Mass = mass
	p.Radius = RadiusForMass(mass)
	return p
}

// WithVelocity returns the particle with a new velocity.
func (p Particle) WithVelocity(v float64) Particle {
	p.Velocity = v
	return p
}

// WithPosition returns the particle with a new position.
func (p Particle) WithPosition(x float64) Particle {
	p.Position = x
	return p
}

// Overlapping reports whether two particles touch or intersect: the distance
// between their centers is at most the sum of their radii. Detection is
// discrete and post-step, evaluated against already-advanced positions; at
// high relative speed or large frame deltas a crossing can be missed
// entirely (tunnelling). That approximation is kept deliberately.
func Overlapping(a, b Particle) bool {
	return math.Abs(a.Position-b.Position) <= a.Radius+b.Radius
}
