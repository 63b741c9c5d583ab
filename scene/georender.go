// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/scene3d/gpu"
	"cogentcore.org/scene3d/shape"
	"github.com/cogentcore/webgpu/wgpu"
)

// GeoRenderGroup draws all instances of one procedural entity with
// the lit pipeline.
type GeoRenderGroup struct {
	Name      string
	Entity    *Entity
	Instances *Instances
	Pipeline  *gpu.GraphicsPipeline

	shared *Shared
}

// NewGeoRenderGroup returns a group drawing en at each of inst,
// using the shared lit pipeline.
func NewGeoRenderGroup(sh *Shared, en *Entity, inst *Instances) *GeoRenderGroup {
	return &GeoRenderGroup{Name: en.Name, Entity: en, Instances: inst, Pipeline: sh.GeoPipeline, shared: sh}
}

// SetGeometry swaps the entity geometry, as the animated sphere does.
func (gr *GeoRenderGroup) SetGeometry(geom *shape.Geometry) error {
	return gr.Entity.SetGeometry(geom)
}

// Render binds camera, lights, texture and shadow map in a color pass.
// In a shadow pass the shadow pipeline and light are already bound,
// so only the buffers are set. Either way it is one instanced draw.
func (gr *GeoRenderGroup) Render(pass Pass) {
	enc := pass.Encoder
	if pass.Kind == ColorPass {
		sh := gr.shared
		enc.SetPipeline(gr.Pipeline.RenderPipeline())
		enc.SetBindGroup(CameraGroup, sh.CameraBind, nil)
		enc.SetBindGroup(LightsGroup, sh.LightsBind, nil)
		enc.SetBindGroup(TextureGroup, gr.Entity.Bind, nil)
		enc.SetBindGroup(ShadowGroup, sh.ShadowBind, nil)
	}
	enc.SetVertexBuffer(0, gr.Instances.Buffer, 0, wgpu.WholeSize)
	enc.SetVertexBuffer(1, gr.Entity.VertexBuffer, 0, wgpu.WholeSize)
	enc.SetIndexBuffer(gr.Entity.IndexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	enc.DrawIndexed(gr.Entity.Geometry.NumIndices(), gr.Instances.Len(), 0, 0, 0)
}

func (gr *GeoRenderGroup) Release() {
	gr.Entity.Release()
	gr.Instances.Release()
}
