// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"cogentcore.org/scene3d/camera"
	"cogentcore.org/scene3d/gpu"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// cameraKeys maps glfw keys to camera movement.
var cameraKeys = map[glfw.Key]camera.Keys{
	glfw.KeyW:         camera.KeyForward,
	glfw.KeyUp:        camera.KeyForward,
	glfw.KeyS:         camera.KeyBackward,
	glfw.KeyDown:      camera.KeyBackward,
	glfw.KeyA:         camera.KeyLeft,
	glfw.KeyLeft:      camera.KeyLeft,
	glfw.KeyD:         camera.KeyRight,
	glfw.KeyRight:     camera.KeyRight,
	glfw.KeySpace:     camera.KeyUp,
	glfw.KeyLeftShift: camera.KeyDown,
}

// input routes window events to the camera controller. The mouse
// rotates the camera only while grabbed: a click grabs it and
// Escape releases it. Escape with nothing grabbed closes the window.
type input struct {
	win  *gpu.Window
	ctl  *camera.Controller
	grab bool

	lastX, lastY float64
	hasLast      bool
}

func newInput(win *gpu.Window, ctl *camera.Controller) *input {
	return &input{win: win, ctl: ctl}
}

func (in *input) connect() {
	w := in.win.Window
	w.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		in.key(key, action)
	})
	w.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft && action == glfw.Press {
			in.setGrab(true)
		}
	})
	w.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		in.motion(x, y)
	})
	w.SetScrollCallback(func(_ *glfw.Window, _, dy float64) {
		in.ctl.ProcessScroll(dy)
	})
}

// key handles a key event, returning whether it was used.
func (in *input) key(key glfw.Key, action glfw.Action) bool {
	if key == glfw.KeyEscape && action == glfw.Press {
		if in.grab {
			in.setGrab(false)
		} else if in.win != nil {
			in.win.Window.SetShouldClose(true)
		}
		return true
	}
	ck, ok := cameraKeys[key]
	if !ok || action == glfw.Repeat {
		return ok
	}
	return in.ctl.ProcessKey(ck, action == glfw.Press)
}

// motion turns cursor positions into deltas while grabbed.
func (in *input) motion(x, y float64) {
	if in.grab && in.hasLast {
		in.ctl.ProcessMouse(x-in.lastX, y-in.lastY)
	}
	in.lastX, in.lastY, in.hasLast = x, y, true
}

func (in *input) setGrab(grab bool) {
	in.grab = grab
	in.hasLast = false
	if in.win != nil {
		in.win.SetGrab(grab)
	}
}
