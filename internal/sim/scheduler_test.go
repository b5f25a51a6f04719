package sim

import (
	"context"
	"testing"
	"time"
)

// Layout from testState: radii 20 each (mass 2), centers 100 apart, closing
// at 10 units/s. Contact at gap 40, i.e. after 6 seconds of play.
func TestSchedulerAdvancesAndDetects(t *testing.T) {
	m := playingMachine(t)
	sched := NewScheduler(m)

	res := sched.Frame(1.0)
	if !res.Advanced || res.Collided {
		t.Fatalf("expected plain advance, got %+v", res)
	}
	st := m.State()
	if st.P1.Position != -45 || st.P2.Position != 45 {
		t.Fatalf("expected -45/45, got %f/%f", st.P1.Position, st.P2.Position)
	}

	// Four more seconds: gap 50, still short of contact.
	sched.Frame(4.0)
	if m.State().Status != Playing {
		t.Fatal("no collision expected before contact distance")
	}

	// Crossing the contact distance triggers the one collision of the run.
	res = sched.Frame(1.5)
	if !res.Collided || !res.Completed {
		t.Fatalf("expected collision at contact, got %+v", res)
	}

	st = m.State()
	if st.Status != Completed {
		t.Errorf("expected completed, got %s", st.Status)
	}
	if st.P1.Velocity != st.Result.Particle1After.Velocity {
		t.Error("post-collision velocity not swapped in")
	}
}

func TestSchedulerAppliesCollisionAtMostOncePerRun(t *testing.T) {
	m := playingMachine(t)
	sched := NewScheduler(m)

	sched.Frame(7.0) // past contact in one step
	st := m.State()
	if !st.CollisionApplied {
		t.Fatal("expected collision applied")
	}

	// Still overlapping, but complete: further frames are no-ops.
	before := st
	for i := 0; i < 5; i++ {
		res := sched.Frame(0.1)
		if res.Advanced || res.Collided {
			t.Fatalf("frame acted after completion: %+v", res)
		}
	}
	if m.State() != before {
		t.Error("state changed after completion")
	}
}

func TestSchedulerIdleFramesAreNoOps(t *testing.T) {
	m := NewMachine(testState(), Local())
	sched := NewScheduler(m)

	res := sched.Frame(1.0)
	if res.Advanced {
		t.Error("idle frame must not advance")
	}
	if m.State().P1.Position != -50 {
		t.Error("idle frame moved a particle")
	}
}

func TestSchedulerResetDoesNotRetriggerDetection(t *testing.T) {
	m := playingMachine(t)
	sched := NewScheduler(m)

	sched.Frame(7.0)
	m.Reset()

	// Particles are back at the configured layout; frames while idle must
	// not move them or re-fire detection.
	res := sched.Frame(1.0)
	if res.Advanced || res.Collided {
		t.Fatalf("frame acted after reset: %+v", res)
	}
	st := m.State()
	if st.CollisionApplied || st.Status != Idle {
		t.Errorf("reset state disturbed: %+v", st.Status)
	}
}

func TestSchedulerTickAnchorsClockWhileNotPlaying(t *testing.T) {
	m := NewMachine(testState(), Local())
	sched := NewScheduler(m)

	t0 := time.Unix(100, 0)
	sched.Tick(t0) // idle: anchors only

	work, _ := m.Begin()
	m.Finish(work(context.Background()))

	// One second of wall time while playing advances one second.
	res := sched.Tick(t0.Add(time.Second))
	if !res.Advanced || res.Dt != 1.0 {
		t.Fatalf("expected dt=1.0 frame, got %+v", res)
	}

	m.Dispatch(Pause{})
	sched.Tick(t0.Add(10 * time.Second)) // pause re-anchors
	m.Dispatch(Resume{})

	res = sched.Tick(t0.Add(10*time.Second + 500*time.Millisecond))
	if res.Dt != 0.5 {
		t.Errorf("pause duration leaked into dt: %f", res.Dt)
	}
}

func TestSchedulerStationaryTargetRun(t *testing.T) {
	// Scenario C end to end: m1=2,v1=5 hits m2=3,v2=0 elastically.
	p1 := NewParticle("p1", 2, 5, -30)
	p2 := NewParticle("p2", 3, 0, 30)
	m := NewMachine(NewState(p1, p2, 1), Local())

	work, ok := m.Begin()
	if !ok {
		t.Fatal("Begin refused")
	}
	m.Finish(work(context.Background()))

	sched := NewScheduler(m)
	for i := 0; i < 400 && m.State().Status == Playing; i++ {
		sched.Frame(1.0 / 60.0)
	}

	st := m.State()
	if st.Status != Completed {
		t.Fatalf("run never completed, status %s", st.Status)
	}
	if diff := st.P1.Velocity - 1; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected v1'=1, got %f", st.P1.Velocity)
	}
	if diff := st.P2.Velocity - 4; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected v2'=4, got %f", st.P2.Velocity)
	}
}
