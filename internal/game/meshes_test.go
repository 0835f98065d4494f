package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/spaaace/internal/engine/renderer"
)

func TestShipHullMesh(t *testing.T) {
	m := shipHullMesh()
	if _, _, err := renderer.Interleave(m); err != nil {
		t.Fatalf("hull not drawable: %v", err)
	}

	var maxAbs mgl64.Vec3
	for _, p := range m.Positions {
		for c := range 3 {
			maxAbs[c] = math.Max(maxAbs[c], math.Abs(p[c]))
		}
	}
	for c := range 3 {
		if math.Abs(maxAbs[c]-shipHalfExtents[c]) > 1e-9 {
			t.Errorf("axis %d extent = %v, want %v", c, maxAbs[c], shipHalfExtents[c])
		}
	}
}

func TestExhaustBellMesh(t *testing.T) {
	m := exhaustBellMesh(bellSegments)
	if got, want := len(m.Positions), bellSegments+2; got != want {
		t.Errorf("vertices = %d, want %d", got, want)
	}
	if got, want := len(m.Triangles), bellSegments*6; got != want {
		t.Errorf("indices = %d, want %d", got, want)
	}
	if _, _, err := renderer.Interleave(m); err != nil {
		t.Fatalf("bell not drawable: %v", err)
	}

	// Cone faces point away from the axis, cap faces point backwards.
	for i := 0; i < len(m.Triangles); i += 3 {
		a, b, c := m.Positions[m.Triangles[i]], m.Positions[m.Triangles[i+1]], m.Positions[m.Triangles[i+2]]
		n := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Mul(1.0 / 3)
		if (i/3)%2 == 0 {
			radial := mgl64.Vec3{0, centroid[1], centroid[2]}
			if n.Dot(radial) <= 0 {
				t.Errorf("cone face %d points inwards", i/3)
			}
		} else if n[0] >= 0 {
			t.Errorf("cap face %d normal %v, want -X", i/3, n)
		}
	}
}

func TestExhaustMatrix(t *testing.T) {
	ship := mgl64.Translate3D(100, 0, 0)
	m := exhaustMatrix(ship, 2, 90)

	got := m.Mul4x1(mgl64.Vec4{-bellLength, bellRadius, 0, 1})
	want := mgl64.Vec4{100 - shipHalfExtents[0] - 2*bellLength, 0, 2 * bellRadius, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("bell rim = %v, want %v", got, want)
		}
	}
}
