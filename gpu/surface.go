// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrOutOfMemory is returned by AcquireView when the surface reports
// that it ran out of memory. It is not recoverable.
var ErrOutOfMemory = errors.New("gpu: surface out of memory")

// Surface manages the window surface: its configuration, the
// texture acquired for the current frame, and presenting it.
type Surface struct {
	// Surface is the underlying WebGPU surface.
	Surface *wgpu.Surface

	// Format has the current size and the color format chosen
	// from the surface capabilities.
	Format TextureFormat

	gpu    *GPU
	device *Device

	current     *wgpu.Texture
	currentView *wgpu.TextureView
}

// NewSurface returns a new Surface for the given WebGPU surface,
// configured at the given size.
func NewSurface(gp *GPU, dev *Device, ws *wgpu.Surface, size image.Point) *Surface {
	sf := &Surface{Surface: ws, gpu: gp, device: dev}
	sf.Format.Defaults()
	sf.Format.Size = size
	sf.Configure()
	return sf
}

// Configure applies the current Format.Size to the surface,
// using the first format and alpha mode the adapter reports.
func (sf *Surface) Configure() {
	caps := sf.Surface.GetCapabilities(sf.gpu.Adapter)
	if len(caps.Formats) > 0 {
		sf.Format.Format = caps.Formats[0]
	}
	cfg := &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      sf.Format.Format,
		Width:       uint32(sf.Format.Size.X),
		Height:      uint32(sf.Format.Size.Y),
		PresentMode: wgpu.PresentModeFifo,
	}
	if len(caps.AlphaModes) > 0 {
		cfg.AlphaMode = caps.AlphaModes[0]
	}
	sf.Surface.Configure(sf.gpu.Adapter, sf.device.Device, cfg)
}

// SetSize reconfigures the surface for the given size, returning
// false if the size is zero or unchanged.
func (sf *Surface) SetSize(size image.Point) bool {
	if size.X <= 0 || size.Y <= 0 || size == sf.Format.Size {
		return false
	}
	sf.Format.Size = size
	sf.Configure()
	return true
}

// AcquireView gets the next surface texture and returns a view of it.
// An error wrapping [ErrOutOfMemory] is fatal. Any other error means
// the surface is lost or outdated: skip the frame and call Configure.
func (sf *Surface) AcquireView() (*wgpu.TextureView, error) {
	tex, err := sf.Surface.GetCurrentTexture()
	if err != nil {
		if strings.Contains(err.Error(), "OutOfMemory") {
			return nil, fmt.Errorf("%w: %w", ErrOutOfMemory, err)
		}
		return nil, fmt.Errorf("gpu: acquire surface texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("gpu: surface view: %w", err)
	}
	sf.current = tex
	sf.currentView = view
	return view, nil
}

// Present presents the texture acquired by AcquireView.
func (sf *Surface) Present() {
	if sf.current == nil {
		return
	}
	sf.Surface.Present()
	sf.currentView.Release()
	sf.current.Release()
	sf.currentView = nil
	sf.current = nil
}

func (sf *Surface) Release() {
	if sf.currentView != nil {
		sf.currentView.Release()
		sf.currentView = nil
	}
	if sf.current != nil {
		sf.current.Release()
		sf.current = nil
	}
	if sf.Surface != nil {
		sf.Surface.Release()
		sf.Surface = nil
	}
}
