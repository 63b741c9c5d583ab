// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"image"

	"cogentcore.org/scene3d/assets/obj"
	"cogentcore.org/scene3d/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Mesh is one uploaded mesh of a [Model], with 32-bit indices.
type Mesh struct {
	Name         string
	VertexBuffer *wgpu.Buffer
	IndexBuffer  *wgpu.Buffer
	NumIndices   uint32

	// Material is the index into [Model.Materials].
	Material int
}

// Material is an uploaded material: its diffuse texture (nil for
// the shared white texture), its uniform and the group 2 bind group.
type Material struct {
	Name      string
	Texture   *gpu.Texture
	Uniform   MaterialUniform
	BindGroup *wgpu.BindGroup

	buffer *wgpu.Buffer
}

// Model is an OBJ model uploaded to the GPU.
type Model struct {
	Name      string
	Meshes    []Mesh
	Materials []Material
}

// NewModel uploads m. images holds the decoded diffuse textures,
// keyed by the material MapKd file name; a missing image leaves the
// material untextured.
func NewModel(sh *Shared, m *obj.Model, images map[string]image.Image) (*Model, error) {
	dev := sh.Device
	md := &Model{Name: m.Name}
	for _, om := range m.Materials {
		mt := Material{
			Name:    om.Name,
			Uniform: NewMaterialUniform(om.Ambient, om.Diffuse, om.Specular, om.Shininess),
		}
		if img := images[om.MapKd]; img != nil {
			mt.Texture = gpu.NewTexture(dev, om.MapKd)
			if err := mt.Texture.SetFromGoImage(img, true); err != nil {
				mt.Texture.Release()
				md.Release()
				return nil, fmt.Errorf("scene: model %s texture %s: %w", m.Name, om.MapKd, err)
			}
		}
		var err error
		label := m.Name + " " + om.Name
		if mt.buffer, err = gpu.NewBuffer(dev, label, gpu.UniformUsage, []MaterialUniform{mt.Uniform}); err != nil {
			md.Release()
			return nil, err
		}
		if mt.BindGroup, err = sh.TextureBind(label, mt.Texture, mt.buffer); err != nil {
			md.Release()
			return nil, err
		}
		md.Materials = append(md.Materials, mt)
	}
	for _, om := range m.Meshes {
		ms := Mesh{Name: om.Name, Material: om.Material, NumIndices: uint32(len(om.Indices))}
		var err error
		if ms.VertexBuffer, err = gpu.NewBuffer(dev, om.Name+" vertices", gpu.VertexUsage, om.Vertices); err != nil {
			md.Release()
			return nil, err
		}
		if ms.IndexBuffer, err = gpu.NewBuffer(dev, om.Name+" indices", gpu.IndexUsage, om.Indices); err != nil {
			ms.VertexBuffer.Release()
			md.Release()
			return nil, err
		}
		md.Meshes = append(md.Meshes, ms)
	}
	return md, nil
}

func (md *Model) Release() {
	for _, ms := range md.Meshes {
		gpu.ReleaseBuffers(ms.VertexBuffer, ms.IndexBuffer)
	}
	md.Meshes = nil
	for _, mt := range md.Materials {
		if mt.BindGroup != nil {
			mt.BindGroup.Release()
		}
		gpu.ReleaseBuffers(mt.buffer)
		if mt.Texture != nil {
			mt.Texture.Release()
		}
	}
	md.Materials = nil
}

// ModelRenderGroup draws every mesh of a model at each instance,
// with the bind group of the mesh material.
type ModelRenderGroup struct {
	Model     *Model
	Instances *Instances
	Pipeline  *gpu.GraphicsPipeline

	shared *Shared
}

// NewModelRenderGroup returns a group drawing md with the shared lit pipeline.
func NewModelRenderGroup(sh *Shared, md *Model, inst *Instances) *ModelRenderGroup {
	return &ModelRenderGroup{Model: md, Instances: inst, Pipeline: sh.GeoPipeline, shared: sh}
}

func (mr *ModelRenderGroup) Render(pass Pass) {
	enc := pass.Encoder
	color := pass.Kind == ColorPass
	if color {
		sh := mr.shared
		enc.SetPipeline(mr.Pipeline.RenderPipeline())
		enc.SetBindGroup(CameraGroup, sh.CameraBind, nil)
		enc.SetBindGroup(LightsGroup, sh.LightsBind, nil)
		enc.SetBindGroup(ShadowGroup, sh.ShadowBind, nil)
	}
	enc.SetVertexBuffer(0, mr.Instances.Buffer, 0, wgpu.WholeSize)
	for _, ms := range mr.Model.Meshes {
		if color {
			enc.SetBindGroup(TextureGroup, mr.Model.Materials[ms.Material].BindGroup, nil)
		}
		enc.SetVertexBuffer(1, ms.VertexBuffer, 0, wgpu.WholeSize)
		enc.SetIndexBuffer(ms.IndexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		enc.DrawIndexed(ms.NumIndices, mr.Instances.Len(), 0, 0, 0)
	}
}

func (mr *ModelRenderGroup) Release() {
	mr.Model.Release()
	mr.Instances.Release()
}
