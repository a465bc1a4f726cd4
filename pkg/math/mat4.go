// Package math provides float32 vector, matrix and quaternion types for the
// renderer. Matrices are column-major to match OpenGL uniforms.
package math

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns a perspective projection matrix.
// fovY is in radians, aspect is width/height.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovY/2)
	nf := 1 / (near - far)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// RotateAxis returns a rotation of angle radians around axis.
// The axis does not need to be normalized.
func RotateAxis(axis Vec3, angle float32) Mat4 {
	return QuatFromAxisAngle(axis, angle).ToMat4()
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * other[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// Transpose swaps rows and columns.
func (m Mat4) Transpose() Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			r[row*4+col] = m[col*4+row]
		}
	}
	return r
}

// TransformPoint transforms a point (w=1), applying the perspective divide.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// TransformDirection transforms a direction (w=0), ignoring translation.
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return Vec3{
		m[0]*d.X + m[4]*d.Y + m[8]*d.Z,
		m[1]*d.X + m[5]*d.Y + m[9]*d.Z,
		m[2]*d.X + m[6]*d.Y + m[10]*d.Z,
	}
}

// Ptr returns a pointer to the first element (for OpenGL uniform calls).
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}

// Inverse returns the inverse of the matrix. ok is false if the matrix is
// singular, in which case the identity is returned.
func (m Mat4) Inverse() (inv Mat4, ok bool) {
	// The expansion is layout-agnostic since inverse(Mᵀ) = inverse(M)ᵀ.
	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	s0 := a00*a11 - a10*a01
	s1 := a00*a12 - a10*a02
	s2 := a00*a13 - a10*a03
	s3 := a01*a12 - a11*a02
	s4 := a01*a13 - a11*a03
	s5 := a02*a13 - a12*a03

	c5 := a22*a33 - a32*a23
	c4 := a21*a33 - a31*a23
	c3 := a21*a32 - a31*a22
	c2 := a20*a33 - a30*a23
	c1 := a20*a32 - a30*a22
	c0 := a20*a31 - a30*a21

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return Identity(), false
	}
	d := 1 / det

	return Mat4{
		(a11*c5 - a12*c4 + a13*c3) * d,
		(-a01*c5 + a02*c4 - a03*c3) * d,
		(a31*s5 - a32*s4 + a33*s3) * d,
		(-a21*s5 + a22*s4 - a23*s3) * d,

		(-a10*c5 + a12*c2 - a13*c1) * d,
		(a00*c5 - a02*c2 + a03*c1) * d,
		(-a30*s5 + a32*s2 - a33*s1) * d,
		(a20*s5 - a22*s2 + a23*s1) * d,

		(a10*c4 - a11*c2 + a13*c0) * d,
		(-a00*c4 + a01*c2 - a03*c0) * d,
		(a30*s4 - a31*s2 + a33*s0) * d,
		(-a20*s4 + a21*s2 - a23*s0) * d,

		(-a10*c3 + a11*c1 - a12*c0) * d,
		(a00*c3 - a01*c1 + a02*c0) * d,
		(-a30*s3 + a31*s1 - a32*s0) * d,
		(a20*s3 - a21*s1 + a22*s0) * d,
	}, true
}

// NormalMatrix returns transpose(inverse(m)), which maps surface normals
// under the model-view transform m. A singular m yields the identity.
func NormalMatrix(m Mat4) Mat4 {
	inv, ok := m.Inverse()
	if !ok {
		return Identity()
	}
	return inv.Transpose()
}
