// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"image"
	"image/color"
	"unsafe"

	"cogentcore.org/scene3d/camera"
	"cogentcore.org/scene3d/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Bind group slots of the lit pipelines.
const (
	CameraGroup = iota
	LightsGroup
	TextureGroup
	ShadowGroup
)

// Shared holds the layouts, bind groups and pipelines that several
// render groups use. It is built once, before the groups, and passed
// to their constructors. The light and shadow bind groups are set by
// [NewLightGroup] and [NewShadowMap].
type Shared struct {
	Device *gpu.Device

	// ColorFormat is the surface format that color pipelines draw into.
	ColorFormat wgpu.TextureFormat

	// Samples is the multisample count of the color pass.
	Samples int

	CameraLayout  *wgpu.BindGroupLayout
	LightsLayout  *wgpu.BindGroupLayout
	TextureLayout *wgpu.BindGroupLayout
	ShadowLayout  *wgpu.BindGroupLayout

	// LightLayout is the single light uniform of the shadow pipeline.
	LightLayout *wgpu.BindGroupLayout

	// SkyLayout is the cube texture and sampler of the sky box.
	SkyLayout *wgpu.BindGroupLayout

	CameraBuffer *wgpu.Buffer
	CameraBind   *wgpu.BindGroup
	LightsBind   *wgpu.BindGroup
	ShadowBind   *wgpu.BindGroup

	// Shader is shader.wgsl, used by the lit pipeline.
	Shader *gpu.Shader

	// GeoPipeline draws lit geometry and model meshes. The index
	// format is set per draw, so one pipeline serves both.
	GeoPipeline *gpu.GraphicsPipeline

	// White is a 1x1 white texture for surfaces without one.
	White *gpu.Texture
}

// NewShared creates the shared layouts, the camera buffer and the lit pipeline.
func NewShared(dev *gpu.Device, colorFormat wgpu.TextureFormat, samples int) (*Shared, error) {
	sh := &Shared{Device: dev, ColorFormat: colorFormat, Samples: max(1, samples)}
	if err := sh.configLayouts(); err != nil {
		sh.Release()
		return nil, err
	}
	var err error
	sh.CameraBuffer, err = gpu.NewEmptyBuffer(dev, "camera", gpu.UniformUsage, int(unsafe.Sizeof(camera.Uniform{})))
	if err != nil {
		sh.Release()
		return nil, fmt.Errorf("scene: camera buffer: %w", err)
	}
	sh.CameraBind, err = gpu.NewBindGroup(dev, "camera", sh.CameraLayout, gpu.BufferEntry(0, sh.CameraBuffer))
	if err != nil {
		sh.Release()
		return nil, err
	}
	sh.White = gpu.NewTexture(dev, "white")
	wimg := image.NewRGBA(image.Rect(0, 0, 1, 1))
	wimg.Set(0, 0, color.White)
	if err := sh.White.SetFromGoImage(wimg, false); err != nil {
		sh.Release()
		return nil, err
	}
	sh.Shader, err = gpu.OpenShader(dev, "shader.wgsl")
	if err != nil {
		sh.Release()
		return nil, fmt.Errorf("scene: %w", err)
	}
	sh.GeoPipeline = sh.litPipeline("geometry")
	if err := sh.GeoPipeline.Config(dev); err != nil {
		sh.Release()
		return nil, fmt.Errorf("scene: geometry pipeline: %w", err)
	}
	return sh, nil
}

func (sh *Shared) configLayouts() error {
	dev := sh.Device
	frag := wgpu.ShaderStageFragment
	var err error
	if sh.CameraLayout, err = gpu.NewBindGroupLayout(dev, "camera", gpu.UniformLayout(0, gpu.VertexFragment)); err != nil {
		return err
	}
	if sh.LightsLayout, err = gpu.NewBindGroupLayout(dev, "lights", gpu.UniformLayout(0, gpu.VertexFragment)); err != nil {
		return err
	}
	if sh.TextureLayout, err = gpu.NewBindGroupLayout(dev, "texture",
		gpu.TextureLayout(0, frag, wgpu.TextureViewDimension2D),
		gpu.SamplerLayout(1, frag, wgpu.SamplerBindingTypeFiltering),
		gpu.UniformLayout(2, frag)); err != nil {
		return err
	}
	if sh.ShadowLayout, err = gpu.NewBindGroupLayout(dev, "shadow",
		gpu.DepthTextureLayout(0, frag, wgpu.TextureViewDimension2DArray),
		gpu.SamplerLayout(1, frag, wgpu.SamplerBindingTypeComparison)); err != nil {
		return err
	}
	if sh.LightLayout, err = gpu.NewBindGroupLayout(dev, "light", gpu.UniformLayout(0, wgpu.ShaderStageVertex)); err != nil {
		return err
	}
	sh.SkyLayout, err = gpu.NewBindGroupLayout(dev, "sky",
		gpu.TextureLayout(0, frag, wgpu.TextureViewDimensionCube),
		gpu.SamplerLayout(1, frag, wgpu.SamplerBindingTypeFiltering))
	return err
}

// litPipeline returns the lit pipeline settings, with the instance
// buffer in slot 0 and the vertex buffer in slot 1.
func (sh *Shared) litPipeline(name string) *gpu.GraphicsPipeline {
	return gpu.NewGraphicsPipeline(name, sh.Shader).
		SetVertex("vs_main", InstanceLayout(), VertexLayout()).
		SetFragment("fs_main", sh.ColorFormat).
		SetLayouts(sh.CameraLayout, sh.LightsLayout, sh.TextureLayout, sh.ShadowLayout).
		SetDepth(gpu.Depth32.TextureFormat(), true, wgpu.CompareFunctionLess).
		SetMultisample(sh.Samples)
}

// WriteCamera uploads the camera uniform.
func (sh *Shared) WriteCamera(u camera.Uniform) error {
	return gpu.WriteBuffer(sh.Device, sh.CameraBuffer, []camera.Uniform{u})
}

// TextureBind returns a group 2 bind group for the given texture
// and material buffer. A nil texture uses White.
func (sh *Shared) TextureBind(label string, tex *gpu.Texture, material *wgpu.Buffer) (*wgpu.BindGroup, error) {
	if tex == nil {
		tex = sh.White
	}
	return gpu.NewBindGroup(sh.Device, label, sh.TextureLayout,
		gpu.TextureEntry(0, tex.View()),
		gpu.SamplerEntry(1, tex.Sampler()),
		gpu.BufferEntry(2, material))
}

// Release releases everything Shared created.
func (sh *Shared) Release() {
	if sh.GeoPipeline != nil {
		sh.GeoPipeline.Release()
	}
	if sh.Shader != nil {
		sh.Shader.Release()
	}
	if sh.White != nil {
		sh.White.Release()
	}
	for _, bg := range []*wgpu.BindGroup{sh.CameraBind, sh.LightsBind, sh.ShadowBind} {
		if bg != nil {
			bg.Release()
		}
	}
	gpu.ReleaseBuffers(sh.CameraBuffer)
	for _, bl := range []*wgpu.BindGroupLayout{sh.CameraLayout, sh.LightsLayout, sh.TextureLayout, sh.ShadowLayout, sh.LightLayout, sh.SkyLayout} {
		if bl != nil {
			bl.Release()
		}
	}
}
