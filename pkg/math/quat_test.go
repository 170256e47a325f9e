package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	if math.Abs(float64(n.Length()-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", n.Length())
	}

	if (Quat{}).Normalize() != QuatIdentity() {
		t.Error("zero quaternion should normalize to identity")
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}

	if QuatFromAxisAngle(Vec3{X: 1}, 0) != QuatIdentity() {
		t.Error("zero angle should give identity")
	}
}

func TestQuatMulNotCommutative(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{X: 1}, float32(math.Pi/2))
	b := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi/2))

	if a.Mul(b).ApproxEqual(b.Mul(a), 1e-4) {
		t.Error("a*b should differ from b*a for perpendicular axes")
	}
}

func TestQuatMulComposesRotations(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{X: 1}, float32(math.Pi/2))
	b := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi/2))
	v := Vec3{0, 0, 1}

	// (a*b) applied to v equals a applied to (b applied to v).
	got := a.Mul(b).ToMat3().MulVec3(v)
	want := a.ToMat3().MulVec3(b.ToMat3().MulVec3(v))
	if got.Sub(want).Length() > 1e-5 {
		t.Errorf("(a*b)v = %v, want a(bv) = %v", got, want)
	}

	// Matrix form agrees with the product order.
	m := a.ToMat4().Mul(b.ToMat4())
	if !m.ApproxEqual(a.Mul(b).ToMat4(), 1e-5) {
		t.Error("ToMat4(a*b) should equal ToMat4(a)*ToMat4(b)")
	}
}

func TestQuatMulIdentity(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 1, 0}.Normalize(), 1.2)
	if q.Mul(QuatIdentity()) != q {
		t.Error("q * identity should be exactly q")
	}
	if QuatIdentity().Mul(q) != q {
		t.Error("identity * q should be exactly q")
	}
}

func TestQuatToMat4(t *testing.T) {
	// Identity quaternion should produce identity matrix
	q := QuatIdentity()
	m := q.ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(m[i]-identity[i])) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}

func TestQuatToMat3RotatesY90(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi/2))
	result := q.ToMat3().MulVec3(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("Rotate 90 around Y: got %v, want (0, 0, -1)", result)
	}
}
