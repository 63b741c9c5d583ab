// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"errors"
	"fmt"
	"time"

	"cogentcore.org/scene3d/camera"
	"cogentcore.org/scene3d/math32"
)

// MaxLights is the size of the light array in the shaders,
// and the maximum number of shadow map layers.
const MaxLights = 4

// ErrCutoff is returned by [Cutoff] when the inner cone is not
// narrower than the outer cone.
var ErrCutoff = errors.New("scene: inner cutoff must be narrower than outer cutoff")

// LightUniform is one light as the shaders see it.
// The layout is 160 bytes, with padding after each vec3.
type LightUniform struct {
	Position math32.Vector3
	_        float32

	// Direction points from the lit area back toward the light.
	Direction math32.Vector3
	_         float32

	// Color of the light.  A == 0 hides the light marker but
	// the light still illuminates the scene.
	Color math32.Vector4

	DiffuseStrength  float32
	AmbientStrength  float32
	SpecularStrength float32
	_                float32

	// PointCLQ is the constant, linear and quadratic attenuation.
	// W == 0 turns attenuation off.
	PointCLQ math32.Vector4

	// Cutoff is the spot cone from [Cutoff]. W == 0 is no cone.
	Cutoff math32.Vector4

	// ViewProj projects world space into this light's shadow map.
	ViewProj math32.Matrix4
}

// DefaultLightUniform returns a white point light at (40, 20, -40)
// with a hidden marker and no cone.
func DefaultLightUniform() LightUniform {
	lu := LightUniform{
		Position:         math32.Vec3(40, 20, -40),
		Color:            math32.Vec4(1, 1, 1, 0),
		DiffuseStrength:  1,
		AmbientStrength:  0.1,
		SpecularStrength: 0.3,
		PointCLQ:         math32.Vec4(1, 0.045, 0.0075, 1),
	}
	lu.Direction = lu.Position
	lu.ViewProj.SetIdentity()
	return lu
}

// Cutoff returns the spot cone for the given inner and outer angles in
// degrees: cos inner, cos outer, their difference, and 1 to turn it on.
func Cutoff(innerDeg, outerDeg float32) (math32.Vector4, error) {
	ci := math32.Cos(math32.DegToRad(innerDeg))
	co := math32.Cos(math32.DegToRad(outerDeg))
	if ci <= co {
		return math32.Vector4{}, fmt.Errorf("%w: inner %g, outer %g", ErrCutoff, innerDeg, outerDeg)
	}
	return math32.Vec4(ci, co, ci-co, 1), nil
}

// Shadow projection parameters.
const (
	shadowFov  = 45
	shadowNear = 1
	shadowFar  = 300
)

// ViewMatrix returns the view from the light, looking along -Direction.
func (lu *LightUniform) ViewMatrix() math32.Matrix4 {
	var m math32.Matrix4
	m.SetLookTo(lu.Position, lu.Direction.Negate(), math32.Vec3(0, 1, 0))
	return m
}

// UpdateViewProj recomputes ViewProj for a shadow map of the given aspect.
func (lu *LightUniform) UpdateViewProj(aspect float32) {
	var prjn math32.Matrix4
	prjn.SetPerspective(shadowFov, aspect, shadowNear, shadowFar)
	view := lu.ViewMatrix()
	lu.ViewProj = *prjn.Mul(&view)
}

// SetParams copies the color, strengths, attenuation and cone from src,
// leaving the position and direction, which are driven by motion.
func (lu *LightUniform) SetParams(src *LightUniform) {
	lu.Color = src.Color
	lu.DiffuseStrength = src.DiffuseStrength
	lu.AmbientStrength = src.AmbientStrength
	lu.SpecularStrength = src.SpecularStrength
	lu.PointCLQ = src.PointCLQ
	lu.Cutoff = src.Cutoff
}

// LightMotion moves a light each frame.
type LightMotion interface {
	Move(lu *LightUniform, dt time.Duration, view *camera.View)
}

// OrbitY rotates the light about the world Y axis and points it at the axis.
type OrbitY struct {
	DegPerSec float32
}

func (o OrbitY) Move(lu *LightUniform, dt time.Duration, view *camera.View) {
	ang := math32.DegToRad(o.DegPerSec * float32(dt.Seconds()))
	q := math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), ang)
	lu.Position = lu.Position.MulQuat(q)
	lu.Direction = lu.Position
}

// FollowCamera keeps the light in front of the camera, shining
// along the view direction like a flashlight.
type FollowCamera struct {
	Distance float32
}

func (f FollowCamera) Move(lu *LightUniform, dt time.Duration, view *camera.View) {
	fwd := view.Forward()
	lu.Position = view.Position.Add(fwd.MulScalar(f.Distance))
	lu.Direction = fwd.Negate()
}

// LightsUniform is the light array bound at group 1.
type LightsUniform struct {
	Count  uint32
	_      [3]uint32
	Lights [MaxLights]LightUniform
}
