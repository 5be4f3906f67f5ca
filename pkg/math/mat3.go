package math

// Mat3 is a 3x3 matrix in column-major order.
type Mat3 [9]float32

// Identity3 returns a 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// UpperLeft returns the rotation/scale part of the matrix.
func (m Mat4) UpperLeft() Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Inverse returns the inverse of the matrix.
// Returns identity if the matrix is singular.
func (m Mat3) Inverse() Mat3 {
	c00 := m[4]*m[8] - m[7]*m[5]
	c01 := m[7]*m[2] - m[1]*m[8]
	c02 := m[1]*m[5] - m[4]*m[2]

	det := m[0]*c00 + m[3]*c01 + m[6]*c02
	if det == 0 {
		return Identity3()
	}
	inv := 1 / det

	return Mat3{
		c00 * inv,
		c01 * inv,
		c02 * inv,
		(m[6]*m[5] - m[3]*m[8]) * inv,
		(m[0]*m[8] - m[6]*m[2]) * inv,
		(m[3]*m[2] - m[0]*m[5]) * inv,
		(m[3]*m[7] - m[6]*m[4]) * inv,
		(m[6]*m[1] - m[0]*m[7]) * inv,
		(m[0]*m[4] - m[3]*m[1]) * inv,
	}
}

// NormalMatrix returns the inverse-transpose of the upper 3x3, used to
// carry normals into world space under non-uniform scale.
func (m Mat4) NormalMatrix() Mat3 {
	return m.UpperLeft().Inverse().Transpose()
}
