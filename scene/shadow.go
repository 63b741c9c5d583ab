// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"

	"cogentcore.org/scene3d/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// ShadowMap is the shadow depth texture, with one layer per light,
// and the depth-only pipeline that renders the scene into it.
type ShadowMap struct {
	Texture  *gpu.Texture
	Pipeline *gpu.GraphicsPipeline

	shader *gpu.Shader

	// lightBinds binds each light's own uniform at group 0 of the shadow pipeline.
	lightBinds []*wgpu.BindGroup
}

// NewShadowMap creates a shadow map for the lights of lg and sets
// [Shared.ShadowBind].
func NewShadowMap(sh *Shared, lg *LightGroup) (*ShadowMap, error) {
	dev := sh.Device
	sm := &ShadowMap{Texture: gpu.NewTexture(dev, "shadow")}
	if err := sm.Texture.ConfigShadowArray(gpu.ShadowMapSize, len(lg.Lights)); err != nil {
		sm.Release()
		return nil, fmt.Errorf("scene: shadow texture: %w", err)
	}
	var err error
	sh.ShadowBind, err = gpu.NewBindGroup(dev, "shadow", sh.ShadowLayout,
		gpu.TextureEntry(0, sm.Texture.View()),
		gpu.SamplerEntry(1, sm.Texture.Sampler()))
	if err != nil {
		sm.Release()
		return nil, err
	}
	for i, lt := range lg.Lights {
		bg, err := gpu.NewBindGroup(dev, fmt.Sprintf("shadow light %d", i), sh.LightLayout, gpu.BufferEntry(0, lt.buffer))
		if err != nil {
			sm.Release()
			return nil, err
		}
		sm.lightBinds = append(sm.lightBinds, bg)
	}
	if sm.shader, err = gpu.OpenShader(dev, "shadow.wgsl"); err != nil {
		sm.Release()
		return nil, fmt.Errorf("scene: %w", err)
	}
	sm.Pipeline = gpu.NewGraphicsPipeline("shadow", sm.shader).
		SetVertex("vs_bake", InstanceLayout(), VertexLayout()).
		SetLayouts(sh.LightLayout).
		SetDepth(gpu.Depth32.TextureFormat(), true, wgpu.CompareFunctionLessEqual).
		SetDepthBias(2, 2)
	if err := sm.Pipeline.Config(dev); err != nil {
		sm.Release()
		return nil, fmt.Errorf("scene: shadow pipeline: %w", err)
	}
	return sm, nil
}

// Layers returns the number of shadow layers, one per light.
func (sm *ShadowMap) Layers() int { return len(sm.lightBinds) }

// RenderLayer draws groups into one shadow layer from the point of
// view of the light with the same index.
func (sm *ShadowMap) RenderLayer(enc Encoder, layer int, groups RenderGroups) {
	enc.SetPipeline(sm.Pipeline.RenderPipeline())
	enc.SetBindGroup(0, sm.lightBinds[layer], nil)
	groups.Render(Pass{Kind: ShadowPass, Encoder: enc, Layer: layer})
}

// Render records one depth pass per light into cmd.
func (sm *ShadowMap) Render(cmd *wgpu.CommandEncoder, groups RenderGroups) error {
	for i := range sm.Layers() {
		pass := cmd.BeginRenderPass(gpu.DepthPass(sm.Texture.LayerView(i)))
		sm.RenderLayer(pass, i, groups)
		if err := pass.End(); err != nil {
			pass.Release()
			return fmt.Errorf("scene: shadow layer %d: %w", i, err)
		}
		pass.Release()
	}
	return nil
}

func (sm *ShadowMap) Release() {
	for _, bg := range sm.lightBinds {
		bg.Release()
	}
	sm.lightBinds = nil
	if sm.Pipeline != nil {
		sm.Pipeline.Release()
	}
	if sm.shader != nil {
		sm.shader.Release()
	}
	if sm.Texture != nil {
		sm.Texture.Release()
	}
}
