// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"image"

	"cogentcore.org/scene3d/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Skybox draws a cube map behind everything else, as a single
// fullscreen triangle at the far plane.
type Skybox struct {
	Texture  *gpu.Texture
	Pipeline *gpu.GraphicsPipeline
	Bind     *wgpu.BindGroup

	shader *gpu.Shader
	shared *Shared
}

// NewSkybox uploads the six faces, in +X, -X, +Y, -Y, +Z, -Z order.
func NewSkybox(sh *Shared, faces []image.Image) (*Skybox, error) {
	dev := sh.Device
	sb := &Skybox{Texture: gpu.NewTexture(dev, "skybox"), shared: sh}
	if err := sb.Texture.SetFromGoImages(faces); err != nil {
		sb.Release()
		return nil, fmt.Errorf("scene: skybox: %w", err)
	}
	var err error
	sb.Bind, err = gpu.NewBindGroup(dev, "skybox", sh.SkyLayout,
		gpu.TextureEntry(0, sb.Texture.View()),
		gpu.SamplerEntry(1, sb.Texture.Sampler()))
	if err != nil {
		sb.Release()
		return nil, err
	}
	if sb.shader, err = gpu.OpenShader(dev, "skybox.wgsl"); err != nil {
		sb.Release()
		return nil, fmt.Errorf("scene: %w", err)
	}
	sb.Pipeline = gpu.NewGraphicsPipeline("skybox", sb.shader).
		SetVertex("vs_sky").
		SetFragment("fs_sky", sh.ColorFormat).
		SetLayouts(sh.CameraLayout, sh.SkyLayout).
		SetFrontFace(wgpu.FrontFaceCW).
		SetCullMode(wgpu.CullModeNone).
		SetDepth(gpu.Depth32.TextureFormat(), false, wgpu.CompareFunctionLessEqual).
		SetMultisample(sh.Samples)
	if err := sb.Pipeline.Config(dev); err != nil {
		sb.Release()
		return nil, fmt.Errorf("scene: skybox pipeline: %w", err)
	}
	return sb, nil
}

func (sb *Skybox) Render(pass Pass) {
	if pass.Kind != ColorPass {
		return
	}
	enc := pass.Encoder
	enc.SetPipeline(sb.Pipeline.RenderPipeline())
	enc.SetBindGroup(0, sb.shared.CameraBind, nil)
	enc.SetBindGroup(1, sb.Bind, nil)
	enc.Draw(3, 1, 0, 0)
}

func (sb *Skybox) Release() {
	if sb.Bind != nil {
		sb.Bind.Release()
	}
	if sb.Pipeline != nil {
		sb.Pipeline.Release()
	}
	if sb.shader != nil {
		sb.shader.Release()
	}
	if sb.Texture != nil {
		sb.Texture.Release()
	}
}
