// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrNoVertexEntry is returned by Config when no vertex entry point is set.
var ErrNoVertexEntry = errors.New("gpu: pipeline has no vertex entry point")

// GraphicsPipeline is a render pipeline built from one [Shader].
// Each pipeline handles a different class of drawing in the scene
// (lit geometry, light markers, shadows, the sky box).
// Configure it with the Set* methods, then call Config.
type GraphicsPipeline struct {
	// unique name of this pipeline
	Name string

	// Shader holds the entry points.
	Shader *Shader

	// VertexEntry is the vertex entry point name.
	VertexEntry string

	// Buffers are the vertex buffer layouts, in slot order.
	Buffers []wgpu.VertexBufferLayout

	// FragmentEntry is the fragment entry point name.
	// Empty for depth-only pipelines.
	FragmentEntry string

	// ColorFormat is the format of the single color target.
	ColorFormat wgpu.TextureFormat

	// Layouts are the bind group layouts, in group order.
	Layouts []*wgpu.BindGroupLayout

	// Primitive has various settings for graphics primitives,
	// e.g., TriangleList
	Primitive wgpu.PrimitiveState

	Multisample wgpu.MultisampleState

	// DepthStencil is the depth state, nil for no depth testing.
	DepthStencil *wgpu.DepthStencilState

	layout         *wgpu.PipelineLayout
	renderPipeline *wgpu.RenderPipeline
}

// NewGraphicsPipeline returns a new GraphicsPipeline with defaults set.
func NewGraphicsPipeline(name string, sh *Shader) *GraphicsPipeline {
	pl := &GraphicsPipeline{Name: name, Shader: sh}
	pl.SetGraphicsDefaults()
	return pl
}

// SetGraphicsDefaults configures all the default settings for a
// graphics rendering pipeline.
func (pl *GraphicsPipeline) SetGraphicsDefaults() *GraphicsPipeline {
	pl.SetTopology(TriangleList)
	pl.SetFrontFace(wgpu.FrontFaceCCW)
	pl.SetCullMode(wgpu.CullModeBack)
	pl.SetMultisample(1)
	return pl
}

// SetVertex sets the vertex entry point and its buffer layouts.
func (pl *GraphicsPipeline) SetVertex(entry string, buffers ...wgpu.VertexBufferLayout) *GraphicsPipeline {
	pl.VertexEntry = entry
	pl.Buffers = buffers
	return pl
}

// SetFragment sets the fragment entry point and the color target format.
func (pl *GraphicsPipeline) SetFragment(entry string, format wgpu.TextureFormat) *GraphicsPipeline {
	pl.FragmentEntry = entry
	pl.ColorFormat = format
	return pl
}

// SetLayouts sets the bind group layouts, in group order.
func (pl *GraphicsPipeline) SetLayouts(layouts ...*wgpu.BindGroupLayout) *GraphicsPipeline {
	pl.Layouts = layouts
	return pl
}

// SetTopology sets the topology of vertex position data.
// TriangleList is the default.
func (pl *GraphicsPipeline) SetTopology(topo Topologies) *GraphicsPipeline {
	pl.Primitive.Topology = topo.Primitive()
	return pl
}

// SetFrontFace sets the winding order for what counts as a front face.
func (pl *GraphicsPipeline) SetFrontFace(face wgpu.FrontFace) *GraphicsPipeline {
	pl.Primitive.FrontFace = face
	return pl
}

// SetCullMode sets the face culling mode.
func (pl *GraphicsPipeline) SetCullMode(mode wgpu.CullMode) *GraphicsPipeline {
	pl.Primitive.CullMode = mode
	return pl
}

// SetMultisample sets the sample count, which must match the
// render targets.
func (pl *GraphicsPipeline) SetMultisample(ms int) *GraphicsPipeline {
	pl.Multisample.Count = uint32(max(1, ms))
	pl.Multisample.Mask = 0xFFFFFFFF
	pl.Multisample.AlphaToCoverageEnabled = false
	return pl
}

// SetDepth turns on depth testing against a target of the given format.
func (pl *GraphicsPipeline) SetDepth(format wgpu.TextureFormat, write bool, compare wgpu.CompareFunction) *GraphicsPipeline {
	pl.DepthStencil = &wgpu.DepthStencilState{
		Format:            format,
		DepthWriteEnabled: write,
		DepthCompare:      compare,
		StencilFront: wgpu.StencilFaceState{
			Compare: wgpu.CompareFunctionAlways,
		},
		StencilBack: wgpu.StencilFaceState{
			Compare: wgpu.CompareFunctionAlways,
		},
	}
	return pl
}

// SetDepthBias sets the constant and slope-scaled depth bias.
// SetDepth must be called first.
func (pl *GraphicsPipeline) SetDepthBias(constant int32, slope float32) *GraphicsPipeline {
	if pl.DepthStencil == nil {
		slog.Error("gpu: SetDepthBias without depth", "pipeline", pl.Name)
		return pl
	}
	pl.DepthStencil.DepthBias = constant
	pl.DepthStencil.DepthBiasSlopeScale = slope
	return pl
}

// Descriptor returns the render pipeline descriptor for the current
// settings, using the given pipeline layout.
func (pl *GraphicsPipeline) Descriptor(layout *wgpu.PipelineLayout) *wgpu.RenderPipelineDescriptor {
	pd := &wgpu.RenderPipelineDescriptor{
		Label:        pl.Name,
		Layout:       layout,
		Primitive:    pl.Primitive,
		Multisample:  pl.Multisample,
		DepthStencil: pl.DepthStencil,
		Vertex: wgpu.VertexState{
			Module:     pl.Shader.Module(),
			EntryPoint: pl.VertexEntry,
			Buffers:    pl.Buffers,
		},
	}
	if pl.FragmentEntry != "" {
		pd.Fragment = &wgpu.FragmentState{
			Module:     pl.Shader.Module(),
			EntryPoint: pl.FragmentEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    pl.ColorFormat,
				Blend:     &wgpu.BlendStateReplace,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		}
	}
	return pd
}

// Config creates the pipeline layout and the render pipeline.
// It is a no-op if the pipeline already exists.
func (pl *GraphicsPipeline) Config(dev *Device) error {
	if pl.renderPipeline != nil {
		return nil
	}
	if pl.VertexEntry == "" {
		return ErrNoVertexEntry
	}
	lay, err := dev.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            pl.Name,
		BindGroupLayouts: pl.Layouts,
	})
	if err != nil {
		return err
	}
	pl.layout = lay
	rp, err := dev.Device.CreateRenderPipeline(pl.Descriptor(lay))
	if err != nil {
		slog.Error("gpu: create render pipeline", "pipeline", pl.Name, "err", err)
		return err
	}
	pl.renderPipeline = rp
	return nil
}

// RenderPipeline returns the configured pipeline, nil before Config.
func (pl *GraphicsPipeline) RenderPipeline() *wgpu.RenderPipeline {
	return pl.renderPipeline
}

// Release releases the pipeline and its layout. The shader and the
// bind group layouts are owned by the caller.
func (pl *GraphicsPipeline) Release() {
	if pl.layout != nil {
		pl.layout.Release()
		pl.layout = nil
	}
	if pl.renderPipeline != nil {
		pl.renderPipeline.Release()
		pl.renderPipeline = nil
	}
}

// Topologies are the different vertex topology
type Topologies int32

const (
	PointList Topologies = iota
	LineList
	LineStrip
	TriangleList
	TriangleStrip
)

func (tp Topologies) Primitive() wgpu.PrimitiveTopology {
	return WebGPUTopologies[tp]
}

var WebGPUTopologies = map[Topologies]wgpu.PrimitiveTopology{
	PointList:     wgpu.PrimitiveTopologyPointList,
	LineList:      wgpu.PrimitiveTopologyLineList,
	LineStrip:     wgpu.PrimitiveTopologyLineStrip,
	TriangleList:  wgpu.PrimitiveTopologyTriangleList,
	TriangleStrip: wgpu.PrimitiveTopologyTriangleStrip,
}
