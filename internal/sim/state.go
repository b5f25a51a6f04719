package sim

import "github.com/san-kum/crashsim/internal/physics"

// Status enumerates the simulation lifecycle. Exactly one value is held at
// any time.
type Status int

const (
	Idle Status = iota
	Playing
	Paused
	Completed
	Errored
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	case Errored:
		return "error"
	default:
		return "unknown"
	}
}

// CollisionType labels the restitution setting. The physics engine only
// ever consumes the numeric coefficient; the label is derived for display.
type CollisionType int

const (
	Elastic CollisionType = iota
	Inelastic
	Custom
)

func (c CollisionType) String() string {
	switch c {
	case Elastic:
		return "elastic"
	case Inelastic:
		return "inelastic"
	default:
		return "custom"
	}
}

// TypeForRestitution derives the collision type from the coefficient:
// e=1 is elastic, e=0 perfectly inelastic, anything else custom.
func TypeForRestitution(e float64) CollisionType {
	switch e {
	case 1:
		return Elastic
	case 0:
		return Inelastic
	default:
		return Custom
	}
}

// State is the canonical simulation state. It is a value: Transition takes
// a State and returns a new one, and Machine hands out snapshots only. The
// embedded *physics.Result is immutable once stored and replaced wholesale,
// never edited in place.
type State struct {
	P1, P2 Particle // live particles, advanced during play

	// Configured layout. Live particles are restored from these on reset;
	// mutations while idle keep both in step.
	Initial1, Initial2 Particle

	Restitution   float64
	CollisionType CollisionType

	Result           *physics.Result
	Status           Status
	Err              string
	InFlight         bool
	CollisionApplied bool
}

// NewState builds an idle state with the live particles matching the
// configured layout.
func NewState(p1, p2 Particle, restitution float64) State {
	return State{
		P1:            p1,
		P2:            p2,
		Initial1:      p1,
		Initial2:      p2,
		Restitution:   restitution,
		CollisionType: TypeForRestitution(restitution),
		Status:        Idle,
	}
}

// TotalMomentum sums m*v over the live particles.
func (s State) TotalMomentum() float64 {
	return physics.Momentum(s.P1.Mass, s.P1.Velocity) + physics.Momentum(s.P2.Mass, s.P2.Velocity)
}

// TotalKineticEnergy sums 0.5*m*v^2 over the live particles.
func (s State) TotalKineticEnergy() float64 {
	return physics.KineticEnergy(s.P1.Mass, s.P1.Velocity) + physics.KineticEnergy(s.P2.Mass, s.P2.Velocity)
}
