package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestWorld(t *testing.T) {
	w := NewWorld(nil)
	a, b := NewBody(), NewBody()
	a.Velocity = mgl64.Vec3{1, 0, 0}
	b.Velocity = mgl64.Vec3{0, 2, 0}

	w.Add(a)
	w.Add(b)
	w.Add(a)
	if w.Len() != 2 {
		t.Fatalf("Len = %d, want 2", w.Len())
	}

	w.Step(1)
	if a.Position != (mgl64.Vec3{1, 0, 0}) || b.Position != (mgl64.Vec3{0, 2, 0}) {
		t.Errorf("positions after step: %v, %v", a.Position, b.Position)
	}

	if !w.Remove(a) {
		t.Error("Remove(a) = false")
	}
	if w.Remove(a) {
		t.Error("second Remove(a) = true")
	}
	w.Step(1)
	if a.Position != (mgl64.Vec3{1, 0, 0}) {
		t.Error("removed body still stepped")
	}
}
