// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"

	"cogentcore.org/scene3d/gpu"
	"cogentcore.org/scene3d/shape"
	"github.com/cogentcore/webgpu/wgpu"
)

// Entity is a piece of geometry uploaded to the GPU together with
// its texture and material. Render groups borrow it.
type Entity struct {
	Name     string
	Geometry *shape.Geometry

	VertexBuffer *wgpu.Buffer
	IndexBuffer  *wgpu.Buffer

	// Texture is owned by the entity. nil uses the shared white texture.
	Texture  *gpu.Texture
	Material MaterialUniform

	// Bind is the texture and material bind group (group 2).
	Bind *wgpu.BindGroup

	materialBuffer *wgpu.Buffer
	shared         *Shared
}

// NewEntity uploads the geometry and creates the texture bind group.
// The entity takes ownership of tex.
func NewEntity(sh *Shared, name string, geom *shape.Geometry, tex *gpu.Texture) (*Entity, error) {
	en := &Entity{Name: name, Texture: tex, Material: DefaultMaterial(), shared: sh}
	if err := en.SetGeometry(geom); err != nil {
		return nil, err
	}
	var err error
	en.materialBuffer, err = gpu.NewBuffer(sh.Device, name+" material", gpu.UniformUsage, []MaterialUniform{en.Material})
	if err != nil {
		en.Release()
		return nil, fmt.Errorf("scene: %s material: %w", name, err)
	}
	en.Bind, err = sh.TextureBind(name, tex, en.materialBuffer)
	if err != nil {
		en.Release()
		return nil, err
	}
	return en, nil
}

// SetGeometry validates geom and replaces the vertex and index buffers.
func (en *Entity) SetGeometry(geom *shape.Geometry) error {
	if err := geom.Validate(); err != nil {
		return fmt.Errorf("scene: %s: %w", en.Name, err)
	}
	dev := en.shared.Device
	vb, err := gpu.NewBuffer(dev, en.Name+" vertices", gpu.VertexUsage, geom.Vertices)
	if err != nil {
		return fmt.Errorf("scene: %s vertices: %w", en.Name, err)
	}
	ib, err := gpu.NewBuffer(dev, en.Name+" indices", gpu.IndexUsage, padIndices(geom.Indices))
	if err != nil {
		vb.Release()
		return fmt.Errorf("scene: %s indices: %w", en.Name, err)
	}
	gpu.ReleaseBuffers(en.VertexBuffer, en.IndexBuffer)
	en.Geometry = geom
	en.VertexBuffer = vb
	en.IndexBuffer = ib
	return nil
}

// padIndices returns indices with an even length, so the buffer size
// is a multiple of 4 bytes. The padding is never drawn.
func padIndices(idx []uint16) []uint16 {
	if len(idx)%2 == 0 {
		return idx
	}
	return append(append(make([]uint16, 0, len(idx)+1), idx...), 0)
}

func (en *Entity) Release() {
	if en.Bind != nil {
		en.Bind.Release()
		en.Bind = nil
	}
	gpu.ReleaseBuffers(en.VertexBuffer, en.IndexBuffer, en.materialBuffer)
	en.VertexBuffer, en.IndexBuffer, en.materialBuffer = nil, nil, nil
	if en.Texture != nil {
		en.Texture.Release()
		en.Texture = nil
	}
}
