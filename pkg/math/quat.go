package math

import "math"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	halfAngle := float64(angle) / 2
	s := float32(math.Sin(halfAngle))
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(halfAngle)),
	}
}

// Length returns the quaternion magnitude.
func (q Quat) Length() float32 {
	return float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
}

// Normalize returns a unit quaternion. A zero quaternion normalizes to identity.
func (q Quat) Normalize() Quat {
	length := q.Length()
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Mul returns the Hamilton product q * other. The rotation of other is applied
// first when the result transforms a vector, so the order is significant.
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// ToMat3 converts the quaternion to a 3x3 rotation matrix. q must be a unit
// quaternion.
func (q Quat) ToMat3() Mat3 {
	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw),
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw),
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy),
	}
}

// ToMat4 converts the quaternion to a 4x4 rotation matrix.
func (q Quat) ToMat4() Mat4 {
	return q.ToMat3().ToMat4()
}

// ApproxEqual reports whether every component differs by at most tol.
func (q Quat) ApproxEqual(other Quat, tol float32) bool {
	return abs32(q.X-other.X) <= tol && abs32(q.Y-other.Y) <= tol &&
		abs32(q.Z-other.Z) <= tol && abs32(q.W-other.W) <= tol
}
