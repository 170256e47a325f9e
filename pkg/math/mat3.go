package math

// Mat3 is a 3x3 matrix in column-major order.
// Layout: [m0 m3 m6]
//
//	[m1 m4 m7]
//	[m2 m5 m8]
type Mat3 [9]float32

// Mat3Identity returns an identity matrix.
func Mat3Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mul multiplies this matrix by another (m * other).
func (m Mat3) Mul(other Mat3) Mat3 {
	var result Mat3
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			result[col*3+row] =
				m[0*3+row]*other[col*3+0] +
					m[1*3+row]*other[col*3+1] +
					m[2*3+row]*other[col*3+2]
		}
	}
	return result
}

// MulVec3 returns m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// Col returns column i (0 = local X basis, 1 = Y, 2 = Z).
func (m Mat3) Col(i int) Vec3 {
	return Vec3{m[i*3], m[i*3+1], m[i*3+2]}
}

// Determinant returns the determinant of m.
func (m Mat3) Determinant() float32 {
	return m[0]*(m[4]*m[8]-m[7]*m[5]) -
		m[3]*(m[1]*m[8]-m[7]*m[2]) +
		m[6]*(m[1]*m[5]-m[4]*m[2])
}

// Inverse returns the inverse of m, or ErrSingularMatrix.
func (m Mat3) Inverse() (Mat3, error) {
	det := m.Determinant()
	if det == 0 || isNaN32(det) {
		return Mat3{}, ErrSingularMatrix
	}
	inv := 1 / det

	return Mat3{
		(m[4]*m[8] - m[7]*m[5]) * inv,
		(m[7]*m[2] - m[1]*m[8]) * inv,
		(m[1]*m[5] - m[4]*m[2]) * inv,

		(m[6]*m[5] - m[3]*m[8]) * inv,
		(m[0]*m[8] - m[6]*m[2]) * inv,
		(m[3]*m[2] - m[0]*m[5]) * inv,

		(m[3]*m[7] - m[6]*m[4]) * inv,
		(m[6]*m[1] - m[0]*m[7]) * inv,
		(m[0]*m[4] - m[3]*m[1]) * inv,
	}, nil
}

// ToMat4 embeds m in the upper-left corner of an identity Mat4.
func (m Mat3) ToMat4() Mat4 {
	return Mat4{
		m[0], m[1], m[2], 0,
		m[3], m[4], m[5], 0,
		m[6], m[7], m[8], 0,
		0, 0, 0, 1,
	}
}

func isNaN32(x float32) bool {
	return x != x
}
