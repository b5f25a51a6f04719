package sim

import "github.com/san-kum/crashsim/internal/physics"

// Target selects which particle a control action applies to.
type Target int

const (
	Particle1 Target = iota
	Particle2
)

// Action is a tagged state-transition request. Transition applies it to a
// State; illegal actions for the current status are no-ops rather than
// errors, so a stale control event can never corrupt a running simulation.
type Action interface{ isAction() }

// Control actions, legal only while idle. Any successful mutation clears a
// stale Result so the readouts never describe a configuration that no
// longer exists.
type (
	// SetMass updates a particle's mass (and derived radius).
	SetMass struct {
		Target Target
		Value  float64
	}

	// SetVelocity updates a particle's configured velocity.
	SetVelocity struct {
		Target Target
		Value  float64
	}

	// SetPosition updates a particle's configured layout position.
	SetPosition struct {
		Target Target
		Value  float64
	}

	// SetRestitution updates the coefficient and re-derives the collision
	// type. Applying it while the type is elastic/inelastic is tolerated:
	// the value wins and the effective type becomes whatever it derives to.
	SetRestitution struct {
		Value float64
	}

	// SetCollisionType switches the labelled mode. Elastic and inelastic
	// force the coefficient to their boundary values; custom keeps it.
	SetCollisionType struct {
		Type CollisionType
	}

	// LoadPreset applies a named configuration through the same mutation
	// path as the individual controls. Layout positions are preserved.
	LoadPreset struct {
		Mass1, Velocity1 float64
		Mass2, Velocity2 float64
		Restitution      float64
	}
)

// Lifecycle actions.
type (
	// StartRequested marks the boundary request in flight. Only legal while
	// idle with no request pending; a second start is an idempotent no-op.
	StartRequested struct{}

	// ResolveSucceeded stores the fetched result and begins motion.
	ResolveSucceeded struct {
		Result *physics.Result
	}

	// ResolveFailed records a boundary failure; the state stays
	// non-playable until reset.
	ResolveFailed struct {
		Message string
	}

	// Pause freezes position advancement, retaining everything else.
	Pause struct{}

	// Resume continues a paused run without re-requesting a result.
	Resume struct{}

	// FrameAdvanced moves both particles by their current velocities over
	// the elapsed frame time.
	FrameAdvanced struct {
		Dt float64
	}

	// CollisionDetected applies the stored post-collision velocities to
	// both particles atomically, at most once per run, and completes.
	CollisionDetected struct{}

	// Reset returns to idle from any status: result, error, and in-flight
	// flag cleared, live particles restored to the configured layout.
	Reset struct{}
)

func (SetMass) isAction()           {}
func (SetVelocity) isAction()       {}
func (SetPosition) isAction()       {}
func (SetRestitution) isAction()    {}
func (SetCollisionType) isAction()  {}
func (LoadPreset) isAction()        {}
func (StartRequested) isAction()    {}
func (ResolveSucceeded) isAction()  {}
func (ResolveFailed) isAction()     {}
func (Pause) isAction()             {}
func (Resume) isAction()            {}
func (FrameAdvanced) isAction()     {}
func (CollisionDetected) isAction() {}
func (Reset) isAction()             {}

// Transition is the pure state-transition function: (state, action) -> state.
// It never returns an error; actions that are illegal in the current status
// leave the state unchanged.
func Transition(s State, a Action) State {
	switch a := a.(type) {
	case SetMass:
		if s.Status != Idle || a.Value <= 0 {
			return s
		}
		s = mutate(s, a.Target, func(p Particle) Particle { return p.WithMass(a.Value) })
		return clearResult(s)

	case SetVelocity:
		if s.Status != Idle {
			return s
		}
		s = mutate(s, a.Target, func(p Particle) Particle { return p.WithVelocity(a.Value) })
		return clearResult(s)

	case SetPosition:
		if s.Status != Idle {
			return s
		}
		s = mutate(s, a.Target, func(p Particle) Particle { return p.WithPosition(a.Value) })
		return clearResult(s)

	case SetRestitution:
		if s.Status != Idle || a.Value < 0 || a.Value > 1 {
			return s
		}
		s.Restitution = a.Value
		s.CollisionType = TypeForRestitution(a.Value)
		return clearResult(s)

	case SetCollisionType:
		if s.Status != Idle {
			return s
		}
		switch a.Type {
		case Elastic:
			s.Restitution = 1
		case Inelastic:
			s.Restitution = 0
		}
		s.CollisionType = a.Type
		return clearResult(s)

	case LoadPreset:
		if s.Status != Idle || a.Mass1 <= 0 || a.Mass2 <= 0 || a.Restitution < 0 || a.Restitution > 1 {
			return s
		}
		s = mutate(s, Particle1, func(p Particle) Particle { return p.WithMass(a.Mass1).WithVelocity(a.Velocity1) })
		s = mutate(s, Particle2, func(p Particle) Particle { return p.WithMass(a.Mass2).WithVelocity(a.Velocity2) })
		s.Restitution = a.Restitution
		s.CollisionType = TypeForRestitution(a.Restitution)
		return clearResult(s)

	case StartRequested:
		if s.Status != Idle || s.InFlight {
			return s
		}
		s.InFlight = true
		return s

	case ResolveSucceeded:
		if !s.InFlight || a.Result == nil {
			return s
		}
		s.InFlight = false
		s.Result = a.Result
		s.Status = Playing
		s.CollisionApplied = false
		s.Err = ""
		return s

	case ResolveFailed:
		if !s.InFlight {
			return s
		}
		s.InFlight = false
		s.Result = nil
		s.Status = Errored
		s.Err = a.Message
		return s

	case Pause:
		if s.Status == Playing {
			s.Status = Paused
		}
		return s

	case Resume:
		if s.Status == Paused {
			s.Status = Playing
		}
		return s

	case FrameAdvanced:
		if s.Status != Playing {
			return s
		}
		s.P1 = s.P1.Advance(a.Dt)
		s.P2 = s.P2.Advance(a.Dt)
		return s

	case CollisionDetected:
		if s.Status != Playing || s.CollisionApplied || s.Result == nil {
			return s
		}
		s.P1 = s.P1.WithVelocity(s.Result.Particle1After.Velocity)
		s.P2 = s.P2.WithVelocity(s.Result.Particle2After.Velocity)
		s.CollisionApplied = true
		s.Status = Completed
		return s

	case Reset:
		s.P1 = s.Initial1
		s.P2 = s.Initial2
		s.Result = nil
		s.Err = ""
		s.InFlight = false
		s.CollisionApplied = false
		s.Status = Idle
		return s
	}

	return s
}

func mutate(s State, t Target, f func(Particle) Particle) State {
	if t == Particle1 {
		s.P1 = f(s.P1)
		s.Initial1 = f(s.Initial1)
	} else {
		s.P2 = f(s.P2)
		s.Initial2 = f(s.Initial2)
	}
	return s
}

func clearResult(s State) State {
	s.Result = nil
	s.Err = ""
	return s
}
