// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package camera provides a first-person fly camera: a view defined by
// position, yaw and pitch, a perspective projection, and a controller
// that turns keyboard, mouse and scroll input into view motion.
package camera

import "cogentcore.org/scene3d/math32"

// View is the position and orientation of the camera.
// Yaw is measured in the XZ plane from +X toward +Z, and pitch
// is the elevation above the XZ plane.  Both are in degrees.
type View struct {
	Position math32.Vector3
	Yaw      float32
	Pitch    float32
}

// Forward returns the unit vector the camera is looking along.
func (vw *View) Forward() math32.Vector3 {
	sy, cy := math32.Sincos(math32.DegToRad(vw.Yaw))
	sp, cp := math32.Sincos(math32.DegToRad(vw.Pitch))
	return math32.Vec3(cp*cy, sp, cp*sy).Normal()
}

// Matrix returns the right-handed view matrix.
func (vw *View) Matrix() math32.Matrix4 {
	var m math32.Matrix4
	m.SetLookTo(vw.Position, vw.Forward(), math32.Vec3(0, 1, 0))
	return m
}

// Projection is a perspective projection with a 0..1 depth range.
type Projection struct {

	// Aspect is the width / height ratio.
	Aspect float32

	// FovY is the vertical field of view in degrees.
	FovY float32

	Near float32
	Far  float32
}

// Resize sets the aspect ratio from the given surface size.
// Zero sizes are ignored.
func (pj *Projection) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	pj.Aspect = float32(width) / float32(height)
}

// Matrix returns the projection matrix.
func (pj *Projection) Matrix() math32.Matrix4 {
	var m math32.Matrix4
	m.SetPerspective(pj.FovY, pj.Aspect, pj.Near, pj.Far)
	return m
}

// Uniform is the camera data in the layout of the shader camera
// uniform (bind group 0).
type Uniform struct {
	// ViewPos is the camera position, W = 1.
	ViewPos math32.Vector4

	ViewProj math32.Matrix4
	InvProj  math32.Matrix4
	InvView  math32.Matrix4
}

// Camera combines a [View] and a [Projection].
type Camera struct {
	View       View
	Projection Projection
}

// New returns a camera with the given view and projection.
func New(view View, prjn Projection) *Camera {
	return &Camera{View: view, Projection: prjn}
}

// Defaults returns the default camera: at (0, 5, 10), looking
// along -Z and slightly down, with a 45 degree field of view.
func Defaults() *Camera {
	return New(View{Position: math32.Vec3(0, 5, 10), Yaw: -90, Pitch: -20},
		Projection{Aspect: 1, FovY: 45, Near: 0.1, Far: 800})
}

// Uniform computes the uniform for the current view and projection.
// A singular matrix leaves the corresponding inverse at identity.
func (cm *Camera) Uniform() Uniform {
	view := cm.View.Matrix()
	prjn := cm.Projection.Matrix()
	u := Uniform{
		ViewPos:  math32.Vector4FromVector3(cm.View.Position, 1),
		ViewProj: *prjn.Mul(&view),
	}
	u.InvProj.SetIdentity()
	u.InvView.SetIdentity()
	if inv, err := prjn.Inverse(); err == nil {
		u.InvProj = *inv
	}
	if inv, err := view.Inverse(); err == nil {
		u.InvView = *inv
	}
	return u
}
