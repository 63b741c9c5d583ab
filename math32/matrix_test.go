// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standardTol = 1.0e-5

func assertMatrix4Tol(t *testing.T, expected, actual *Matrix4) {
	t.Helper()
	for i := range expected {
		assert.InDelta(t, expected[i], actual[i], standardTol, "element %d", i)
	}
}

func TestMatrix4Translation(t *testing.T) {
	m := Translation4(Vec3(1, 2, 3))
	assert.Equal(t, Vec3(11, 22, 33), Vec3(10, 20, 30).MulMatrix4(m))
}

func TestMatrix4FromQuat(t *testing.T) {
	q := NewQuatAxisAngle(Vec3(0, 1, 0), DegToRad(90))
	m := Matrix4FromQuat(q)
	p := Vec3(1, 0, 0).MulMatrix4(m)
	assert.InDelta(t, 0, p.X, standardTol)
	assert.InDelta(t, 0, p.Y, standardTol)
	assert.InDelta(t, -1, p.Z, standardTol)

	// quaternion and matrix rotations agree
	v := Vec3(0.3, -2, 5)
	qv := v.MulQuat(q)
	mv := v.MulMatrix4(m)
	assert.InDelta(t, qv.X, mv.X, standardTol)
	assert.InDelta(t, qv.Y, mv.Y, standardTol)
	assert.InDelta(t, qv.Z, mv.Z, standardTol)
}

func TestMatrix4Mul(t *testing.T) {
	tr := Translation4(Vec3(5, 0, 0))
	rot := Matrix4FromQuat(NewQuatAxisAngle(Vec3(0, 0, 1), DegToRad(90)))
	m := tr.Mul(rot)
	// rotate first, then translate
	p := Vec3(1, 0, 0).MulMatrix4(m)
	assert.InDelta(t, 5, p.X, standardTol)
	assert.InDelta(t, 1, p.Y, standardTol)
	assert.InDelta(t, 0, p.Z, standardTol)
}

func TestMatrix4Inverse(t *testing.T) {
	m := Translation4(Vec3(3, -4, 7)).Mul(Matrix4FromQuat(NewQuatAxisAngle(Vec3(1, 1, 0).Normal(), 0.7)))
	inv, err := m.Inverse()
	require.NoError(t, err)
	assertMatrix4Tol(t, Identity4(), m.Mul(inv))

	_, err = (&Matrix4{}).Inverse()
	assert.ErrorIs(t, err, ErrSingular)
}

func TestMatrix4LookTo(t *testing.T) {
	m := &Matrix4{}
	eye := Vec3(0, 0, 10)
	m.SetLookTo(eye, Vec3(0, 0, -1), Vec3(0, 1, 0))
	// the eye maps to the origin and the view direction to -Z
	assert.Equal(t, Vector3{}, eye.MulMatrix4(m))
	p := Vec3(0, 0, 0).MulMatrix4(m)
	assert.InDelta(t, -10, p.Z, standardTol)
}

func TestMatrix4Perspective(t *testing.T) {
	m := &Matrix4{}
	m.SetPerspective(45, 1.5, 1, 300)
	near := Vec4(0, 0, -1, 1).MulMatrix4(m).PerspDiv()
	far := Vec4(0, 0, -300, 1).MulMatrix4(m).PerspDiv()
	assert.InDelta(t, 0, near.Z, standardTol)
	assert.InDelta(t, 1, far.Z, 1.0e-4)
}

func TestMatrix3FromQuat(t *testing.T) {
	q := NewQuatAxisAngle(Vec3(1, 0, 0), DegToRad(-90))
	m3 := Matrix3FromQuat(q)
	p := Vec3(0, 1, 0).MulMatrix3(m3)
	assert.InDelta(t, 0, p.X, standardTol)
	assert.InDelta(t, 0, p.Y, standardTol)
	assert.InDelta(t, -1, p.Z, standardTol)
	assert.Equal(t, *Identity3(), *Matrix3FromQuat(NewQuatIdentity()))
}

func TestBox3(t *testing.T) {
	b := B3Empty()
	assert.True(t, b.IsEmpty())
	b.ExpandByPoint(Vec3(-1, -2, -3))
	b.ExpandByPoint(Vec3(1, 2, 3))
	assert.False(t, b.IsEmpty())
	assert.Equal(t, Vec3(2, 4, 6), b.Size())
	assert.Equal(t, Vector3{}, b.Center())
	b.ExpandByBox(B3Empty())
	assert.Equal(t, Vec3(2, 4, 6), b.Size())
	b.ExpandByBox(B3(0, 0, 0, 5, 2, 3))
	assert.Equal(t, Vec3(-1, -2, -3), b.Min)
	assert.Equal(t, Vec3(5, 2, 3), b.Max)
}
