// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"

	"cogentcore.org/scene3d/gpu"
	"cogentcore.org/scene3d/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// InstanceTransform places one instance of an entity in the world.
type InstanceTransform struct {
	Pos math32.Vector3
	Rot math32.Quat
}

// NewInstanceTransform returns a transform at pos with no rotation.
func NewInstanceTransform(pos math32.Vector3) InstanceTransform {
	return InstanceTransform{Pos: pos, Rot: math32.NewQuatIdentity()}
}

// InstanceRaw is the per-instance vertex data: the model matrix
// and the matrix that takes normals to world space.
// It is 100 bytes, matching [InstanceLayout].
type InstanceRaw struct {
	Model  math32.Matrix4
	Normal math32.Matrix3
}

// ToRaw returns Translation(Pos) * Rotation(Rot), and the rotation
// alone for normals.
func (it InstanceTransform) ToRaw() InstanceRaw {
	return InstanceRaw{
		Model:  *math32.Translation4(it.Pos).Mul(math32.Matrix4FromQuat(it.Rot)),
		Normal: *math32.Matrix3FromQuat(it.Rot),
	}
}

// InstanceLayout is the layout of the instance buffer:
// model columns at locations 5-8 and normal columns at 9-11.
func InstanceLayout() wgpu.VertexBufferLayout {
	return gpu.VertexLayout(wgpu.VertexStepModeInstance, 5,
		gpu.Float32Vector4, gpu.Float32Vector4, gpu.Float32Vector4, gpu.Float32Vector4,
		gpu.Float32Vector3, gpu.Float32Vector3, gpu.Float32Vector3)
}

// VertexLayout is the layout of [shape.Vertex]: position, uv
// and normal at locations 0-2.
func VertexLayout() wgpu.VertexBufferLayout {
	return gpu.VertexLayout(wgpu.VertexStepModeVertex, 0,
		gpu.Float32Vector3, gpu.Float32Vector2, gpu.Float32Vector3)
}

// Instances is a set of instance transforms and the GPU buffer
// holding them.
type Instances struct {
	Transforms []InstanceTransform
	Buffer     *wgpu.Buffer
}

// NewInstances uploads the given transforms into a new instance buffer.
func NewInstances(dev *gpu.Device, label string, transforms ...InstanceTransform) (*Instances, error) {
	in := &Instances{Transforms: transforms}
	buf, err := gpu.NewBuffer(dev, label+" instances", gpu.VertexUsage, in.Raw())
	if err != nil {
		return nil, fmt.Errorf("scene: %s instances: %w", label, err)
	}
	in.Buffer = buf
	return in, nil
}

// Raw returns the GPU form of all transforms.
func (in *Instances) Raw() []InstanceRaw {
	raw := make([]InstanceRaw, len(in.Transforms))
	for i, it := range in.Transforms {
		raw[i] = it.ToRaw()
	}
	return raw
}

// Len is the instance count used in draws.
func (in *Instances) Len() uint32 { return uint32(len(in.Transforms)) }

// Update writes the current transforms to the buffer.
// The number of transforms must not change.
func (in *Instances) Update(dev *gpu.Device) error {
	return gpu.WriteBuffer(dev, in.Buffer, in.Raw())
}

func (in *Instances) Release() {
	gpu.ReleaseBuffers(in.Buffer)
	in.Buffer = nil
}
