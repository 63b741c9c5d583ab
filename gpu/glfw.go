// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen && ((darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd)

package gpu

import (
	"image"

	"cogentcore.org/scene3d/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// note: this file contains the glfw dependencies, for desktop platform builds.

// Init initializes glfw for Display-enabled use.
// IMPORTANT: must be called on the main initial thread!
func Init() error {
	return errors.Log(glfw.Init())
}

// Terminate shuts down glfw: call as last thing before quitting.
// IMPORTANT: must be called on the main initial thread!
func Terminate() {
	glfw.Terminate()
}

// Window is a glfw window with a WebGPU surface for it.
// Input callbacks are set directly on Window.
type Window struct {
	Window  *glfw.Window
	Surface *wgpu.Surface
}

// GLFWCreateWindow initializes glfw and makes a new window of the given
// size, with a surface created from the given GPU instance.
func GLFWCreateWindow(gp *GPU, size image.Point, title string) (*Window, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(size.X, size.Y, title, nil, nil)
	if err != nil {
		Terminate()
		return nil, err
	}
	w := &Window{Window: window}
	w.Surface = gp.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))
	return w, nil
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() image.Point {
	x, y := w.Window.GetFramebufferSize()
	return image.Point{x, y}
}

// SetResize sets the function called when the framebuffer is resized.
func (w *Window) SetResize(fun func(size image.Point)) {
	w.Window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		fun(image.Point{width, height})
	})
}

// SetGrab captures and hides the cursor when grab is true.
func (w *Window) SetGrab(grab bool) {
	if grab {
		w.Window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		w.Window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

// PollEvents processes pending events, returning false once
// the window has been asked to close.
func (w *Window) PollEvents() bool {
	if w.Window.ShouldClose() {
		return false
	}
	glfw.PollEvents()
	return true
}

// Terminate destroys the window and shuts down glfw.
func (w *Window) Terminate() {
	w.Window.Destroy()
	Terminate()
}
