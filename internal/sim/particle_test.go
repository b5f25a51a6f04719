package sim

import (
	"math"
	"testing"
)

func TestRadiusForMassMonotonicAndClamped(t *testing.T) {
	prev := 0.0
	for m := 0.1; m <= 2.0; m += 0.1 {
		r := RadiusForMass(m)
		if r < prev {
			t.Fatalf("radius not monotonic at mass %.1f: %f < %f", m, r, prev)
		}
		if r < MinRadius || r > MaxRadius {
			t.Fatalf("radius %f outside [%f, %f]", r, MinRadius, MaxRadius)
		}
		prev = r
	}

	if RadiusForMass(0.0001) < MinRadius {
		t.Errorf("expected clamp to min radius, got %f", RadiusForMass(0.0001))
	}
	if RadiusForMass(100) != MaxRadius {
		t.Errorf("expected clamp to max radius, got %f", RadiusForMass(100))
	}
}

func TestAdvanceDoesNotMutateReceiver(t *testing.T) {
	p := NewParticle("p1", 1, 4, -10)
	moved := p.Advance(0.5)

	if p.Position != -10 {
		t.Errorf("receiver mutated: position %f", p.Position)
	}
	if moved.Position != -8 {
		t.Errorf("expected position -8, got %f", moved.Position)
	}
}

func TestOverlappingThreshold(t *testing.T) {
	// Unit masses give radius 15 each: contact at distance 30.
	a := NewParticle("p1", 1, 5, 0)
	b := NewParticle("p2", 1, -5, 50)

	if Overlapping(a, b) {
		t.Error("expected no overlap at distance 50")
	}

	b = b.WithPosition(30.5)
	if Overlapping(a, b) {
		t.Error("expected no overlap at distance 30.5")
	}

	b = b.WithPosition(30)
	if !Overlapping(a, b) {
		t.Error("expected overlap at exact contact distance 30")
	}

	b = b.WithPosition(10)
	if !Overlapping(a, b) {
		t.Error("expected overlap at distance 10")
	}
}

func TestOverlappingSymmetric(t *testing.T) {
	a := NewParticle("p1", 0.5, 0, -20)
	b := NewParticle("p2", 2, 0, 3)

	if Overlapping(a, b) != Overlapping(b, a) {
		t.Error("overlap test must be symmetric")
	}
	if math.Abs(a.Position-b.Position) > a.Radius+b.Radius && Overlapping(a, b) {
		t.Error("overlap reported beyond radius sum")
	}
}
