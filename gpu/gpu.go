// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu is a thin layer over WebGPU for the scene renderer:
// device and surface setup, buffers, textures, bind group layouts,
// render pipelines and the embedded WGSL shaders.
package gpu

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// Debug turns on extra validation, such as checking shaders with naga
// before handing them to the device.
var Debug = false

// GPU represents the WebGPU instance and the adapter chosen for it.
type GPU struct {
	// Name is the application name, used for device labels.
	Name string

	// Instance is the WebGPU instance.
	Instance *wgpu.Instance

	// Adapter is the physical GPU, chosen to be compatible
	// with the surface given to Config.
	Adapter *wgpu.Adapter
}

// NewGPU returns a new GPU with its instance created.
// Config must be called once a surface exists.
func NewGPU() *GPU {
	gp := &GPU{}
	gp.Instance = wgpu.CreateInstance(nil)
	return gp
}

// Config requests an adapter compatible with the given surface
// (which may be nil for offscreen use).
func (gp *GPU) Config(name string, surface *wgpu.Surface) error {
	gp.Name = name
	ad, err := gp.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
	})
	if err != nil {
		return fmt.Errorf("gpu: request adapter: %w", err)
	}
	gp.Adapter = ad
	slog.Info("gpu: adapter ready", "app", name)
	return nil
}

// NewDevice returns a new logical device on this GPU with the
// default WebGPU limits.
func (gp *GPU) NewDevice() (*Device, error) {
	dv, err := gp.Adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: gp.Name,
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: request device: %w", err)
	}
	return &Device{Device: dv, Queue: dv.GetQueue()}, nil
}

// Release releases the adapter and instance.
func (gp *GPU) Release() {
	if gp.Adapter != nil {
		gp.Adapter.Release()
		gp.Adapter = nil
	}
	if gp.Instance != nil {
		gp.Instance.Release()
		gp.Instance = nil
	}
}

// Device holds a logical WebGPU device and its queue.
type Device struct {
	Device *wgpu.Device
	Queue  *wgpu.Queue
}

// WaitDone waits until the device is idle.
func (dv *Device) WaitDone() {
	dv.Device.Poll(true, nil)
}

// Submit submits the given command buffer to the queue and releases it.
func (dv *Device) Submit(cmd *wgpu.CommandBuffer) {
	dv.Queue.Submit(cmd)
	cmd.Release()
}

func (dv *Device) Release() {
	if dv.Queue != nil {
		dv.Queue.Release()
		dv.Queue = nil
	}
	if dv.Device != nil {
		dv.Device.Release()
		dv.Device = nil
	}
}
