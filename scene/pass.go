// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene assembles the renderable scene: render groups that
// bundle geometry, instances and a pipeline, the lights and their
// shadow maps, the sky box, and the per-frame update and draw.
package scene

import "github.com/cogentcore/webgpu/wgpu"

// PassKinds are the kinds of render pass a group can be drawn in.
type PassKinds int32

const (
	// ColorPass is the main lit pass into the color target.
	ColorPass PassKinds = iota

	// ShadowPass is a depth-only pass into one layer of the shadow map.
	ShadowPass
)

func (pk PassKinds) String() string {
	switch pk {
	case ColorPass:
		return "ColorPass"
	case ShadowPass:
		return "ShadowPass"
	}
	return "PassKinds(?)"
}

// Encoder is the subset of [wgpu.RenderPassEncoder] used by render groups.
type Encoder interface {
	SetPipeline(pipeline *wgpu.RenderPipeline)
	SetBindGroup(groupIndex uint32, group *wgpu.BindGroup, dynamicOffsets []uint32)
	SetVertexBuffer(slot uint32, buffer *wgpu.Buffer, offset, size uint64)
	SetIndexBuffer(buffer *wgpu.Buffer, format wgpu.IndexFormat, offset, size uint64)
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
}

// Pass is one render pass that groups are dispatched into.
type Pass struct {
	Kind    PassKinds
	Encoder Encoder

	// Layer is the shadow map layer, which is also the light index.
	// Only meaningful for a ShadowPass.
	Layer int
}
