package math

import (
	"errors"
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	if TranslateVec3(Vec3{5, 10, 15}) != m {
		t.Error("TranslateVec3 should match Translate")
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint(Vec3{1, 2, 3})

	expected := Vec3{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestPerspective(t *testing.T) {
	fov := float32(math.Pi / 4) // 45 degrees
	aspect := float32(16.0 / 9.0)
	near := float32(0.1)
	far := float32(100.0)

	m := Perspective(fov, aspect, near, far)

	want00 := float32(1/math.Tan(math.Pi/8)) / aspect
	if abs(m.At(0, 0)-want00) > 1e-5 {
		t.Errorf("Perspective [0][0] = %f, want %f", m.At(0, 0), want00)
	}
	// Element [15] should be 0 for perspective projection
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	// Element [11] should be -1 for perspective projection
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestPerspectiveDepthRemap(t *testing.T) {
	near := float32(0.1)
	far := float32(100.0)
	m := DepthRemap.Mul(Perspective(float32(math.Pi/4), 1, near, far))

	// The near plane maps to depth 0 and the far plane to depth 1.
	pNear := m.TransformPoint(Vec3{0, 0, -near})
	pFar := m.TransformPoint(Vec3{0, 0, -far})
	if abs(pNear.Z) > 1e-5 {
		t.Errorf("near plane depth = %f, want 0", pNear.Z)
	}
	if abs(pFar.Z-1) > 1e-4 {
		t.Errorf("far plane depth = %f, want 1", pFar.Z)
	}
}

func TestInverse(t *testing.T) {
	m := Perspective(float32(math.Pi/3), 1.5, 0.1, 50).Mul(Translate(1, -2, -3))
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse() error = %v", err)
	}
	if !m.Mul(inv).ApproxEqual(Identity(), 1e-3) {
		t.Errorf("M * inverse(M) should be identity, got %v", m.Mul(inv))
	}
}

func TestInverseSingular(t *testing.T) {
	var zero Mat4
	if _, err := zero.Inverse(); !errors.Is(err, ErrSingularMatrix) {
		t.Errorf("Inverse() of zero matrix error = %v, want ErrSingularMatrix", err)
	}

	// Two identical columns.
	m := Identity()
	m[4], m[5], m[6] = 1, 0, 0
	if _, err := m.Inverse(); !errors.Is(err, ErrSingularMatrix) {
		t.Errorf("Inverse() of rank-deficient matrix error = %v, want ErrSingularMatrix", err)
	}
}

func TestMat3Inverse(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 2, 3}.Normalize(), 0.7)
	m := q.ToMat3()
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse() error = %v", err)
	}
	got := m.Mul(inv)
	id := Mat3Identity()
	for i := range got {
		if abs(got[i]-id[i]) > 1e-5 {
			t.Fatalf("M * inverse(M) element %d = %f, want %f", i, got[i], id[i])
		}
	}

	// The inverse of a rotation is its transpose.
	if abs(inv.Col(0).X-m.Col(0).X) > 1e-5 || abs(inv.Col(0).Y-m.Col(1).X) > 1e-5 {
		t.Errorf("rotation inverse should equal transpose")
	}
}

func TestMat3InverseSingular(t *testing.T) {
	m := Mat3{1, 2, 3, 2, 4, 6, 0, 0, 1}
	if _, err := m.Inverse(); !errors.Is(err, ErrSingularMatrix) {
		t.Errorf("Inverse() error = %v, want ErrSingularMatrix", err)
	}
}

func TestMat3ToMat4(t *testing.T) {
	m3 := Mat3{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}
	m4 := m3.ToMat4()

	if m4[0] != 1 || m4[1] != 2 || m4[2] != 3 {
		t.Error("ToMat4 column 0 incorrect")
	}
	if m4[4] != 4 || m4[5] != 5 || m4[6] != 6 {
		t.Error("ToMat4 column 1 incorrect")
	}
	if m4[15] != 1 {
		t.Errorf("ToMat4 [15] should be 1, got %f", m4[15])
	}
	if m4.Mat3() != m3 {
		t.Error("Mat3() should round trip ToMat4")
	}
}

func TestDegrees(t *testing.T) {
	if got := Degrees(180).Radians(); abs(got-math.Pi) > 1e-6 {
		t.Errorf("Degrees(180).Radians() = %f, want pi", got)
	}
	if got := Degrees(45).Radians(); abs(got-math.Pi/4) > 1e-6 {
		t.Errorf("Degrees(45).Radians() = %f, want pi/4", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
