package picking

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestScreenToRayCenter(t *testing.T) {
	eye := mgl64.Vec3{-100, 0, 0}
	view := mgl64.LookAtV(eye, mgl64.Vec3{}, mgl64.Vec3{0, 0, 1})
	proj := mgl64.Perspective(mgl64.DegToRad(60), 4.0/3, 1, 1000)
	inv := proj.Mul4(view).Inv()

	r := ScreenToRay(400, 300, 800, 600, inv)
	if r.Direction.Sub(mgl64.Vec3{1, 0, 0}).Len() > 1e-6 {
		t.Errorf("direction = %v, want +X", r.Direction)
	}
	if r.Origin.Sub(mgl64.Vec3{-99, 0, 0}).Len() > 1e-6 {
		t.Errorf("origin = %v, want near plane point", r.Origin)
	}

	// Top of the screen points up.
	up := ScreenToRay(400, 0, 800, 600, inv)
	if up.Direction.Z() <= 0 {
		t.Errorf("top ray direction = %v, want +Z component", up.Direction)
	}
}

func TestIntersectSphere(t *testing.T) {
	r := Ray{Origin: mgl64.Vec3{0, 0, 0}, Direction: mgl64.Vec3{1, 0, 0}}
	tests := []struct {
		name   string
		center mgl64.Vec3
		radius float64
		wantT  float64
		hit    bool
	}{
		{"ahead", mgl64.Vec3{10, 0, 0}, 2, 8, true},
		{"behind", mgl64.Vec3{-10, 0, 0}, 2, 0, false},
		{"miss", mgl64.Vec3{10, 5, 0}, 2, 0, false},
		{"inside", mgl64.Vec3{1, 0, 0}, 3, 4, true},
		{"tangent", mgl64.Vec3{10, 2, 0}, 2, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := r.IntersectSphere(tt.center, tt.radius)
			if hit != tt.hit || math.Abs(got-tt.wantT) > 1e-9 {
				t.Errorf("IntersectSphere = %v, %v; want %v, %v", got, hit, tt.wantT, tt.hit)
			}
		})
	}
}

func TestIntersectAABB(t *testing.T) {
	lo, hi := mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1}
	tests := []struct {
		name  string
		ray   Ray
		wantT float64
		hit   bool
	}{
		{"hit", Ray{mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{1, 0, 0}}, 4, true},
		{"parallel miss", Ray{mgl64.Vec3{-5, 2, 0}, mgl64.Vec3{1, 0, 0}}, 0, false},
		{"pointing away", Ray{mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{-1, 0, 0}}, 0, false},
		{"inside", Ray{mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1}}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(lo, hi)
			if hit != tt.hit || math.Abs(got-tt.wantT) > 1e-9 {
				t.Errorf("IntersectAABB = %v, %v; want %v, %v", got, hit, tt.wantT, tt.hit)
			}
		})
	}
}

func TestNearest(t *testing.T) {
	r := Ray{Origin: mgl64.Vec3{}, Direction: mgl64.Vec3{1, 0, 0}}
	box := func(center mgl64.Vec3, half float64) Target {
		return Target{
			Position:    center,
			Orientation: mgl64.QuatIdent(),
			Min:         mgl64.Vec3{-half, -half, -half},
			Max:         mgl64.Vec3{half, half, half},
			Radius:      half * math.Sqrt(3),
		}
	}
	targets := []Target{
		box(mgl64.Vec3{50, 0, 0}, 5),
		box(mgl64.Vec3{20, 0, 0}, 5),
		box(mgl64.Vec3{10, 50, 0}, 5),
	}
	if got := Nearest(r, targets); got != 1 {
		t.Errorf("Nearest = %d, want 1", got)
	}
	if got := Nearest(r, nil); got != -1 {
		t.Errorf("Nearest(empty) = %d, want -1", got)
	}
	if got := r.At(3); got != (mgl64.Vec3{3, 0, 0}) {
		t.Errorf("At(3) = %v", got)
	}
}

func TestTargetIntersectRotated(t *testing.T) {
	// A thin slab along local X, turned 90 degrees about Z so it lies along
	// world Y.
	slab := Target{
		Position:    mgl64.Vec3{20, 0, 0},
		Orientation: mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}),
		Min:         mgl64.Vec3{-10, -1, -1},
		Max:         mgl64.Vec3{10, 1, 1},
		Radius:      11,
	}

	tests := []struct {
		name  string
		ray   Ray
		wantT float64
		hit   bool
	}{
		{"through the thin side", Ray{mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}}, 19, true},
		{"along the long side", Ray{mgl64.Vec3{20, -30, 0}, mgl64.Vec3{0, 1, 0}}, 20, true},
		{"hit only once rotated", Ray{mgl64.Vec3{0, 5, 0}, mgl64.Vec3{1, 0, 0}}, 19, true},
		{"outside the sphere", Ray{mgl64.Vec3{0, 20, 0}, mgl64.Vec3{1, 0, 0}}, 0, false},
		{"sphere hit, box miss", Ray{mgl64.Vec3{0, 0, 5}, mgl64.Vec3{1, 0, 0}}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := slab.Intersect(tt.ray)
			if hit != tt.hit || (hit && math.Abs(got-tt.wantT) > 1e-9) {
				t.Errorf("Intersect = %v, %v; want %v, %v", got, hit, tt.wantT, tt.hit)
			}
		})
	}
}
