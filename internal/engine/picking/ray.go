// Package picking casts rays from screen positions into the scene.
package picking

import (
	gomath "math"

	"github.com/Faultbox/orbitview/pkg/math"
)

// Ray is a half-line in world space.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// ScreenToRay converts pixel coordinates to a world-space ray. invViewProj is
// the inverse of a view-projection matrix whose clip depth runs from 0 at the
// near plane to 1 at the far plane.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	near := unproject(invViewProj, math.Vec4{ndcX, ndcY, 0, 1})
	far := unproject(invViewProj, math.Vec4{ndcX, ndcY, 1, 1})

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

func unproject(inv math.Mat4, clip math.Vec4) math.Vec3 {
	world := inv.MulVec4(clip)
	p := world.XYZ()
	if world[3] != 0 {
		p = p.Scale(1 / world[3])
	}
	return p
}

// IntersectPlaneY intersects the ray with the horizontal plane at planeY.
// Returns the hit X and Z and whether the plane lies ahead of the ray.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if gomath.Abs(float64(r.Direction.Y)) < 0.001 {
		return 0, 0, false // Parallel
	}

	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, 0, false // Behind the origin
	}

	hit := r.At(t)
	return hit.X, hit.Z, true
}

// IntersectAABB tests the ray against box with the slab method. Returns the
// entry distance, or the exit distance when the ray starts inside the box.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	lo := box.Min.Array()
	hi := box.Max.Array()

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// NewAABB creates a box from two opposite corners in any order.
func NewAABB(a, b math.Vec3) AABB {
	return AABB{
		Min: math.Vec3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)},
		Max: math.Vec3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)},
	}
}

// BoundsOf returns the smallest box containing every point, and false when
// points is empty.
func BoundsOf(points []math.Vec3) (AABB, bool) {
	if len(points) == 0 {
		return AABB{}, false
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box = NewAABB(
			math.Vec3{X: min(box.Min.X, p.X), Y: min(box.Min.Y, p.Y), Z: min(box.Min.Z, p.Z)},
			math.Vec3{X: max(box.Max.X, p.X), Y: max(box.Max.Y, p.Y), Z: max(box.Max.Z, p.Z)},
		)
	}
	return box, true
}
