package sim

import "time"

// FrameResult reports what a single frame did.
type FrameResult struct {
	Dt        float64
	Advanced  bool
	Collided  bool
	Completed bool
}

// Scheduler drives the per-frame animation loop. Each tick, while the
// machine is playing, it advances both particles by their current
// velocities over the elapsed frame time, runs collision detection on the
// advanced positions, and on the first overlap of a run applies the stored
// post-collision velocities. The host loop (a bubbletea tick, a timer)
// supplies the frame cadence; the scheduler holds no lock and does no I/O
// inside a frame — the collision result was fetched before motion began.
type Scheduler struct {
	machine *Machine
	last    time.Time
}

// NewScheduler wraps a machine in a frame driver.
func NewScheduler(m *Machine) *Scheduler {
	return &Scheduler{machine: m}
}

// Tick computes the elapsed time since the previous tick and runs one frame.
// While the machine is not playing it only re-anchors the clock, so pauses
// and resets never integrate into the next frame's dt and a reset can never
// re-trigger detection against restored positions.
func (s *Scheduler) Tick(now time.Time) FrameResult {
	st := s.machine.State()
	if st.Status != Playing {
		s.last = now
		return FrameResult{}
	}

	dt := now.Sub(s.last).Seconds()
	s.last = now
	if dt <= 0 {
		return FrameResult{}
	}
	return s.Frame(dt)
}

// Frame runs one animation step with an explicit dt.
func (s *Scheduler) Frame(dt float64) FrameResult {
	st := s.machine.State()
	if st.Status != Playing {
		return FrameResult{}
	}

	s.machine.Dispatch(FrameAdvanced{Dt: dt})

	res := FrameResult{Dt: dt, Advanced: true}

	st = s.machine.State()
	if st.CollisionApplied || st.Result == nil {
		return res
	}
	if Overlapping(st.P1, st.P2) {
		s.machine.Dispatch(CollisionDetected{})
		res.Collided = true
		res.Completed = s.machine.State().Status == Completed
	}
	return res
}
