// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

// Matrix3 is 3x3 matrix organized internally as column matrix.
type Matrix3 [9]float32

// Identity3 returns a new identity [Matrix3] matrix.
func Identity3() *Matrix3 {
	return &Matrix3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Matrix3FromMatrix4 returns a new [Matrix3] holding the
// upper-left 3x3 part of the given [Matrix4].
func Matrix3FromMatrix4(m *Matrix4) *Matrix3 {
	nm := &Matrix3{}
	nm.SetFromMatrix4(m)
	return nm
}

// Matrix3FromQuat returns a new rotation [Matrix3] from the given quaternion.
func Matrix3FromQuat(q Quat) *Matrix3 {
	return Matrix3FromMatrix4(Matrix4FromQuat(q))
}

// SetFromMatrix4 sets the matrix elements based on a Matrix4.
func (m *Matrix3) SetFromMatrix4(src *Matrix4) {
	m[0], m[1], m[2] = src[0], src[1], src[2]
	m[3], m[4], m[5] = src[4], src[5], src[6]
	m[6], m[7], m[8] = src[8], src[9], src[10]
}
