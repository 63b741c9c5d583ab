// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Types is a list of supported GPU data types, used to describe
// vertex and instance attributes, index buffers and texture formats.
// Note that a Vector3 is only properly aligned in vertex data:
// in uniforms it takes 16 bytes.
type Types int32

const (
	UndefinedType Types = iota

	Uint16
	Uint32

	Float32
	Float32Vector2
	Float32Vector3 // note: only use for vertex data -- not properly aligned for uniforms
	Float32Vector4

	TextureRGBA32 // 32 bits with 8 bits per component of R,G,B,A -- std image format
	TextureBGRA32

	Depth32 // standard float32 depth buffer
)

// VertexFormat returns the WebGPU VertexFormat for given type.
func (tp Types) VertexFormat() wgpu.VertexFormat {
	return TypeToVertexFormat[tp]
}

// TextureFormat returns the WebGPU TextureFormat for given type.
func (tp Types) TextureFormat() wgpu.TextureFormat {
	return TypeToTextureFormat[tp]
}

// IndexType returns the WebGPU IndexFormat for an index buffer.
// must be either Uint16 or Uint32.
func (tp Types) IndexType() wgpu.IndexFormat {
	if tp == Uint16 {
		return wgpu.IndexFormatUint16
	}
	return wgpu.IndexFormatUint32
}

// Bytes returns number of bytes for this type
func (tp Types) Bytes() int {
	return TypeSizes[tp]
}

var TypeToTextureFormat = map[Types]wgpu.TextureFormat{
	TextureRGBA32: wgpu.TextureFormatRGBA8UnormSrgb,
	TextureBGRA32: wgpu.TextureFormatBGRA8UnormSrgb,
	Depth32:       wgpu.TextureFormatDepth32Float,
}

// TypeSizes gives our data type sizes in bytes
var TypeSizes = map[Types]int{
	Uint16: 2,
	Uint32: 4,

	Float32:        4,
	Float32Vector2: 8,
	Float32Vector3: 12,
	Float32Vector4: 16,

	TextureRGBA32: 4,
	TextureBGRA32: 4,
	Depth32:       4,
}

// TypeToVertexFormat maps gpu.Types to WebGPU VertexFormat
var TypeToVertexFormat = map[Types]wgpu.VertexFormat{
	UndefinedType:  wgpu.VertexFormatUndefined,
	Uint32:         wgpu.VertexFormatUint32,
	Float32:        wgpu.VertexFormatFloat32,
	Float32Vector2: wgpu.VertexFormatFloat32x2,
	Float32Vector3: wgpu.VertexFormatFloat32x3,
	Float32Vector4: wgpu.VertexFormatFloat32x4,
}

// VertexLayout returns the layout of one interleaved vertex buffer
// whose attributes have the given types, packed in order with no
// padding, at consecutive shader locations starting at location.
func VertexLayout(step wgpu.VertexStepMode, location int, types ...Types) wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, len(types))
	off := 0
	for i, tp := range types {
		attrs[i] = wgpu.VertexAttribute{
			Format:         tp.VertexFormat(),
			Offset:         uint64(off),
			ShaderLocation: uint32(location + i),
		}
		off += tp.Bytes()
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(off),
		StepMode:    step,
		Attributes:  attrs,
	}
}
