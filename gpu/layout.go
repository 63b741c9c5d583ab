// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// VertexFragment is the shader stage visibility for bindings used
// in both the vertex and fragment stages.
const VertexFragment = wgpu.ShaderStageVertex | wgpu.ShaderStageFragment

// UniformLayout returns a layout entry for a uniform buffer.
func UniformLayout(binding int, vis wgpu.ShaderStage) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    uint32(binding),
		Visibility: vis,
		Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
	}
}

// TextureLayout returns a layout entry for a sampled float texture
// of the given view dimension.
func TextureLayout(binding int, vis wgpu.ShaderStage, dim wgpu.TextureViewDimension) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    uint32(binding),
		Visibility: vis,
		Texture: wgpu.TextureBindingLayout{
			SampleType:    wgpu.TextureSampleTypeFloat,
			ViewDimension: dim,
		},
	}
}

// DepthTextureLayout returns a layout entry for a depth texture
// of the given view dimension, read through a comparison sampler.
func DepthTextureLayout(binding int, vis wgpu.ShaderStage, dim wgpu.TextureViewDimension) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    uint32(binding),
		Visibility: vis,
		Texture: wgpu.TextureBindingLayout{
			SampleType:    wgpu.TextureSampleTypeDepth,
			ViewDimension: dim,
		},
	}
}

// SamplerLayout returns a layout entry for a sampler of the given type.
func SamplerLayout(binding int, vis wgpu.ShaderStage, typ wgpu.SamplerBindingType) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    uint32(binding),
		Visibility: vis,
		Sampler:    wgpu.SamplerBindingLayout{Type: typ},
	}
}

// NewBindGroupLayout creates a bind group layout with the given entries.
func NewBindGroupLayout(dev *Device, label string, entries ...wgpu.BindGroupLayoutEntry) (*wgpu.BindGroupLayout, error) {
	bgl, err := dev.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   label,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: bind group layout %q: %w", label, err)
	}
	return bgl, nil
}

// BufferEntry returns a bind group entry for the whole of a buffer.
func BufferEntry(binding int, buf *wgpu.Buffer) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{Binding: uint32(binding), Buffer: buf, Offset: 0, Size: wgpu.WholeSize}
}

// TextureEntry returns a bind group entry for a texture view.
func TextureEntry(binding int, view *wgpu.TextureView) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{Binding: uint32(binding), TextureView: view}
}

// SamplerEntry returns a bind group entry for a sampler.
func SamplerEntry(binding int, s *wgpu.Sampler) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{Binding: uint32(binding), Sampler: s}
}

// NewBindGroup creates a bind group for the given layout and entries.
func NewBindGroup(dev *Device, label string, layout *wgpu.BindGroupLayout, entries ...wgpu.BindGroupEntry) (*wgpu.BindGroup, error) {
	bg, err := dev.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   label,
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: bind group %q: %w", label, err)
	}
	return bg, nil
}
