// Package picking provides ray casting and object picking utilities.
package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3 // Normalized direction
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float64, invViewProj mgl64.Mat4) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH // Flip Y

	near := unproject(invViewProj, mgl64.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(invViewProj, mgl64.Vec4{ndcX, ndcY, 1, 1})

	dir := far.Sub(near)
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	return Ray{Origin: near, Direction: dir}
}

func unproject(inv mgl64.Mat4, ndc mgl64.Vec4) mgl64.Vec3 {
	p := inv.Mul4x1(ndc)
	if p[3] != 0 {
		return p.Vec3().Mul(1 / p[3])
	}
	return p.Vec3()
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectSphere returns the distance to the first hit in front of the
// origin. A ray starting inside the sphere hits its far side.
func (r Ray) IntersectSphere(center mgl64.Vec3, radius float64) (t float64, hit bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	if t = -b - sq; t >= 0 {
		return t, true
	}
	if t = -b + sq; t >= 0 {
		return t, true
	}
	return 0, false
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(lo, hi mgl64.Vec3) (t float64, hit bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	for axis := range 3 {
		if r.Direction[axis] == 0 {
			if r.Origin[axis] < lo[axis] || r.Origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - r.Origin[axis]) / r.Direction[axis]
		t2 := (hi[axis] - r.Origin[axis]) / r.Direction[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Target is a pickable object: a bounding box in its own frame, placed at
// Position with Orientation. Rays missing the sphere of Radius around
// Position are rejected before the box test.
type Target struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Min, Max    mgl64.Vec3 // local bounds
	Radius      float64
}

// Intersect returns the distance along r to the target's box.
func (tg Target) Intersect(r Ray) (float64, bool) {
	if _, ok := r.IntersectSphere(tg.Position, tg.Radius); !ok {
		return 0, false
	}
	q := tg.Orientation
	if q.Len() == 0 {
		q = mgl64.QuatIdent()
	}
	inv := q.Normalize().Conjugate()
	local := Ray{
		Origin:    inv.Rotate(r.Origin.Sub(tg.Position)),
		Direction: inv.Rotate(r.Direction),
	}
	return local.IntersectAABB(tg.Min, tg.Max)
}

// Nearest returns the index of the closest target hit by r, or -1.
func Nearest(r Ray, targets []Target) int {
	best, bestT := -1, math.Inf(1)
	for i, tg := range targets {
		if t, ok := tg.Intersect(r); ok && t < bestT {
			best, bestT = i, t
		}
	}
	return best
}
