// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"
	"image/color"

	"github.com/cogentcore/webgpu/wgpu"
)

// Render manages the targets needed for rendering to a surface:
// the depth buffer, and a multisampled image that resolves into
// the surface texture when Samples > 1.
type Render struct {

	// Samples is the number of samples per pixel, 1 for no multisampling.
	Samples int

	// image format information for the framebuffer we render to
	Format TextureFormat

	// the associated depth buffer
	Depth *Texture

	// for multisampling, this is the multisampled image that is the actual render target
	Multi *Texture

	// values for clearing image when starting render pass
	ClearColor color.Color

	device *Device
}

// NewRender returns a new Render for the given device, with targets
// configured for the given size and color format.
func NewRender(dev *Device, size image.Point, format wgpu.TextureFormat, samples int) (*Render, error) {
	rp := &Render{Samples: max(1, samples), ClearColor: color.Black, device: dev}
	rp.Depth = NewTexture(dev, "depth")
	rp.Multi = NewTexture(dev, "multisample")
	rp.Format.Defaults()
	rp.Format.Format = format
	if err := rp.SetSize(size); err != nil {
		return nil, err
	}
	return rp, nil
}

// SetSize recreates the depth and multisample targets for the given size.
// Zero sizes are ignored, as happens while a window is minimized.
func (rp *Render) SetSize(size image.Point) error {
	if size.X <= 0 || size.Y <= 0 {
		return nil
	}
	rp.Format.Size = size
	if err := rp.Depth.ConfigDepth(size, rp.Samples); err != nil {
		return err
	}
	if rp.Samples > 1 {
		return rp.Multi.ConfigMulti(size, rp.Format.Format, rp.Samples)
	}
	return nil
}

// ClearValue returns ClearColor as a WebGPU color.
func (rp *Render) ClearValue() wgpu.Color {
	if rp.ClearColor == nil {
		return wgpu.Color{A: 1}
	}
	r, g, b, a := rp.ClearColor.RGBA()
	return wgpu.Color{
		R: float64(r) / 0xffff,
		G: float64(g) / 0xffff,
		B: float64(b) / 0xffff,
		A: float64(a) / 0xffff,
	}
}

// ClearRenderPass returns a render pass descriptor that clears the
// color and depth targets. With multisampling the pass draws into
// Multi and resolves into view.
func (rp *Render) ClearRenderPass(view *wgpu.TextureView) *wgpu.RenderPassDescriptor {
	ca := wgpu.RenderPassColorAttachment{
		View:       view,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: rp.ClearValue(),
	}
	if rp.Samples > 1 {
		ca.View = rp.Multi.View()
		ca.ResolveTarget = view
		ca.StoreOp = wgpu.StoreOpDiscard
	}
	return &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{ca},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            rp.Depth.View(),
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1,
		},
	}
}

// BeginRenderPass adds commands to the given command encoder
// to start the render pass into the given surface view.
// Clears the frame first, according to ClearColor.
func (rp *Render) BeginRenderPass(cmd *wgpu.CommandEncoder, view *wgpu.TextureView) *wgpu.RenderPassEncoder {
	return cmd.BeginRenderPass(rp.ClearRenderPass(view))
}

// DepthPass returns a depth-only render pass descriptor that clears
// the given depth view, as used for shadow maps.
func DepthPass(view *wgpu.TextureView) *wgpu.RenderPassDescriptor {
	return &wgpu.RenderPassDescriptor{
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            view,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1,
		},
	}
}

func (rp *Render) Release() {
	rp.Depth.Release()
	rp.Multi.Release()
}
