// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

import "errors"

// Matrix4 is 4x4 matrix organized internally as column matrix.
type Matrix4 [16]float32

// Identity4 returns a new identity [Matrix4] matrix.
func Identity4() *Matrix4 {
	m := &Matrix4{}
	m.SetIdentity()
	return m
}

// Translation4 returns a new translation matrix for the given offset.
func Translation4(v Vector3) *Matrix4 {
	m := &Matrix4{}
	m.SetTranslation(v.X, v.Y, v.Z)
	return m
}

// Matrix4FromQuat returns a new rotation matrix from the given quaternion.
func Matrix4FromQuat(q Quat) *Matrix4 {
	m := &Matrix4{}
	m.SetRotationFromQuat(q)
	return m
}

// Set sets all the elements of this matrix row by row starting at row1, column1,
// row1, column2, row1, column3 and so forth.
func (m *Matrix4) Set(n11, n12, n13, n14, n21, n22, n23, n24, n31, n32, n33, n34, n41, n42, n43, n44 float32) {
	m[0] = n11
	m[4] = n12
	m[8] = n13
	m[12] = n14
	m[1] = n21
	m[5] = n22
	m[9] = n23
	m[13] = n24
	m[2] = n31
	m[6] = n32
	m[10] = n33
	m[14] = n34
	m[3] = n41
	m[7] = n42
	m[11] = n43
	m[15] = n44
}

// SetIdentity sets this matrix as the identity matrix.
func (m *Matrix4) SetIdentity() {
	m.Set(
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	)
}

// SetTranslation sets this matrix to a translation matrix from the specified x, y and z values.
func (m *Matrix4) SetTranslation(x, y, z float32) {
	m.Set(
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	)
}

// SetRotationFromQuat sets this matrix as a rotation matrix from the specified quaternion.
func (m *Matrix4) SetRotationFromQuat(q Quat) {
	x := q.X
	y := q.Y
	z := q.Z
	w := q.W
	x2 := x + x
	y2 := y + y
	z2 := z + z
	xx := x * x2
	xy := x * y2
	xz := x * z2
	yy := y * y2
	yz := y * z2
	zz := z * z2
	wx := w * x2
	wy := w * y2
	wz := w * z2

	m[0] = 1 - (yy + zz)
	m[4] = xy - wz
	m[8] = xz + wy

	m[1] = xy + wz
	m[5] = 1 - (xx + zz)
	m[9] = yz - wx

	m[2] = xz - wy
	m[6] = yz + wx
	m[10] = 1 - (xx + yy)

	// last column
	m[3] = 0
	m[7] = 0
	m[11] = 0

	// bottom row
	m[12] = 0
	m[13] = 0
	m[14] = 0
	m[15] = 1
}

// MulMatrices sets this matrix to the multiplication of matrix a by b.
func (m *Matrix4) MulMatrices(a, b Matrix4) {
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+r] * b[c*4+k]
			}
			m[c*4+r] = sum
		}
	}
}

// Mul returns this matrix times other matrix (this matrix is unchanged)
func (m *Matrix4) Mul(other *Matrix4) *Matrix4 {
	nm := &Matrix4{}
	nm.MulMatrices(*m, *other)
	return nm
}

// SetLookTo sets this matrix to a right-handed view transform
// for an eye at the given position looking along dir, with the given up vector.
func (m *Matrix4) SetLookTo(eye, dir, up Vector3) {
	f := dir.Normal()
	s := f.Cross(up).Normal()
	u := s.Cross(f)
	m.Set(
		s.X, s.Y, s.Z, -eye.Dot(s),
		u.X, u.Y, u.Z, -eye.Dot(u),
		-f.X, -f.Y, -f.Z, eye.Dot(f),
		0, 0, 0, 1,
	)
}

// SetPerspective sets this matrix to a right-handed perspective projection
// mapping depth to the 0..1 range of WebGPU clip space.
// fov is the vertical field of view in degrees.
func (m *Matrix4) SetPerspective(fov, aspect, near, far float32) {
	f := 1 / Tan(DegToRad(fov)/2)
	nf := 1 / (near - far)
	m.Set(
		f/aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, far*nf, near*far*nf,
		0, 0, -1, 0,
	)
}

// ErrSingular is returned by [Matrix4.Inverse] when the matrix has no inverse.
var ErrSingular = errors.New("math32: matrix is singular")

// Inverse returns the inverse of this matrix, computed by
// Gauss-Jordan elimination with partial pivoting.
func (m *Matrix4) Inverse() (*Matrix4, error) {
	var a [4][8]float32
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			a[r][c] = m[c*4+r]
		}
		a[r][4+r] = 1
	}
	for c := 0; c < 4; c++ {
		p := c
		for r := c + 1; r < 4; r++ {
			if Abs(a[r][c]) > Abs(a[p][c]) {
				p = r
			}
		}
		if a[p][c] == 0 {
			return Identity4(), ErrSingular
		}
		a[c], a[p] = a[p], a[c]
		d := 1 / a[c][c]
		for k := 0; k < 8; k++ {
			a[c][k] *= d
		}
		for r := 0; r < 4; r++ {
			if r == c || a[r][c] == 0 {
				continue
			}
			f := a[r][c]
			for k := 0; k < 8; k++ {
				a[r][k] -= f * a[c][k]
			}
		}
	}
	nm := &Matrix4{}
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			nm[c*4+r] = a[r][4+c]
		}
	}
	return nm, nil
}

// Transpose returns the transpose of this matrix.
func (m *Matrix4) Transpose() *Matrix4 {
	nm := *m
	nm[1], nm[4] = m[4], m[1]
	nm[2], nm[8] = m[8], m[2]
	nm[6], nm[9] = m[9], m[6]
	nm[3], nm[12] = m[12], m[3]
	nm[7], nm[13] = m[13], m[7]
	nm[11], nm[14] = m[14], m[11]
	return &nm
}
