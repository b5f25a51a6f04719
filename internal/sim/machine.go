package sim

import (
	"context"

	"github.com/san-kum/crashsim/internal/physics"
)

// Resolver is the physics boundary: it turns the current configuration into
// a full collision result. The HTTP client and the in-process engine both
// satisfy it.
type Resolver interface {
	Resolve(ctx context.Context, m1, v1, m2, v2, e float64) (*physics.Result, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, m1, v1, m2, v2, e float64) (*physics.Result, error)

func (f ResolverFunc) Resolve(ctx context.Context, m1, v1, m2, v2, e float64) (*physics.Result, error) {
	return f(ctx, m1, v1, m2, v2, e)
}

// Local resolves collisions in-process, with no transport involved.
func Local() Resolver {
	return ResolverFunc(func(_ context.Context, m1, v1, m2, v2, e float64) (*physics.Result, error) {
		return physics.Resolve(m1, v1, m2, v2, e)
	})
}

// Completion is the outcome of a boundary call, tagged with the machine
// generation it belongs to. A completion from before a reset is stale and
// ignored on delivery.
type Completion struct {
	gen    int
	Result *physics.Result
	Err    error
}

// Machine owns the canonical State and sequences the asynchronous boundary
// call around the pure Transition function. It is single-threaded by
// contract: the driving loop calls every method from one goroutine, and the
// boundary work function runs elsewhere but reports back only through
// Finish. Every accessor returns a snapshot.
type Machine struct {
	state    State
	resolver Resolver
	gen      int
}

// NewMachine builds a machine around an initial state and a resolver.
func NewMachine(initial State, r Resolver) *Machine {
	return &Machine{state: initial, resolver: r}
}

// State returns a snapshot of the current state.
func (m *Machine) State() State { return m.state }

// Dispatch applies an action through the pure transition function.
func (m *Machine) Dispatch(a Action) { m.state = Transition(m.state, a) }

// Begin starts a play session: it marks the request in flight and returns
// the boundary work to run. The work captures the configuration at start
// time, so later (illegal, ignored) mutations cannot desynchronize the
// fetched result from the run. Begin reports false, with no side effects,
// when the machine is not idle or a request is already pending.
func (m *Machine) Begin() (func(ctx context.Context) Completion, bool) {
	if m.state.Status != Idle || m.state.InFlight {
		return nil, false
	}
	m.Dispatch(StartRequested{})

	gen := m.gen
	s := m.state
	m1, v1 := s.P1.Mass, s.P1.Velocity
	m2, v2 := s.P2.Mass, s.P2.Velocity
	e := s.Restitution
	resolver := m.resolver

	return func(ctx context.Context) Completion {
		res, err := resolver.Resolve(ctx, m1, v1, m2, v2, e)
		return Completion{gen: gen, Result: res, Err: err}
	}, true
}

// Finish delivers a boundary completion. Completions raced by a reset carry
// an old generation and are dropped, so a late response never resurrects a
// run the user already abandoned.
func (m *Machine) Finish(c Completion) {
	if c.gen != m.gen {
		return
	}
	if c.Err != nil {
		m.Dispatch(ResolveFailed{Message: c.Err.Error()})
		return
	}
	m.Dispatch(ResolveSucceeded{Result: c.Result})
}

// Reset returns to idle and invalidates any pending boundary completion.
func (m *Machine) Reset() {
	m.gen++
	m.Dispatch(Reset{})
}
