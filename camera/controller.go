// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import (
	"time"

	"cogentcore.org/scene3d/math32"
)

// Keys are the movement keys a [Controller] responds to.
type Keys int32

const (
	KeyForward Keys = iota
	KeyBackward
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeysN
)

// SafePitch is the maximum absolute pitch in degrees, just short of
// straight up or down where the look-to basis degenerates.
const SafePitch = 90 - 0.0001

// Controller accumulates input between frames and applies it
// to a [View] in [Controller.Update].
type Controller struct {

	// Speed is the movement speed in world units per second.
	Speed float32

	// Sensitivity scales mouse rotation and scroll zoom.
	Sensitivity float32

	// amounts are the current key states, 1 if held.
	amounts [KeysN]float32

	rotateH float32
	rotateV float32
	scroll  float32
}

// NewController returns a controller with the given speed and sensitivity.
func NewController(speed, sensitivity float32) *Controller {
	return &Controller{Speed: speed, Sensitivity: sensitivity}
}

// ProcessKey records the pressed state of a key.  It returns false
// for a key outside the known set.
func (ct *Controller) ProcessKey(key Keys, pressed bool) bool {
	if key < 0 || key >= KeysN {
		return false
	}
	amt := float32(0)
	if pressed {
		amt = 1
	}
	ct.amounts[key] = amt
	return true
}

// ProcessMouse records a mouse motion delta in pixels.
func (ct *Controller) ProcessMouse(dx, dy float64) {
	ct.rotateH += float32(dx)
	ct.rotateV += float32(dy)
}

// ProcessScroll records a scroll delta, positive away from the user.
func (ct *Controller) ProcessScroll(dy float64) {
	ct.scroll += float32(dy)
}

// Update moves and rotates the view by the accumulated input
// over the given frame time, and resets the accumulated mouse
// and scroll deltas.
func (ct *Controller) Update(vw *View, dt time.Duration) {
	secs := float32(dt.Seconds())
	sy, cy := math32.Sincos(math32.DegToRad(vw.Yaw))
	forward := math32.Vec3(cy, 0, sy)
	right := math32.Vec3(-sy, 0, cy)
	a := &ct.amounts
	vw.Position.SetAdd(forward.MulScalar((a[KeyForward] - a[KeyBackward]) * ct.Speed * secs))
	vw.Position.SetAdd(right.MulScalar((a[KeyRight] - a[KeyLeft]) * ct.Speed * secs))

	// scroll zooms along the full look direction, including pitch
	vw.Position.SetAdd(vw.Forward().MulScalar(ct.scroll * ct.Speed * ct.Sensitivity * secs))
	ct.scroll = 0

	vw.Position.Y += (a[KeyUp] - a[KeyDown]) * ct.Speed * secs

	vw.Yaw += ct.rotateH * ct.Sensitivity * secs * math32.RadToDeg(1)
	vw.Pitch -= ct.rotateV * ct.Sensitivity * secs * math32.RadToDeg(1)
	ct.rotateH = 0
	ct.rotateV = 0
	vw.Pitch = math32.Clamp(vw.Pitch, -SafePitch, SafePitch)
}
