// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"errors"
	"fmt"
	"time"

	"cogentcore.org/scene3d/camera"
	"cogentcore.org/scene3d/gpu"
	"cogentcore.org/scene3d/shape"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrTooManyLights is returned when more than [MaxLights] lights are given.
var ErrTooManyLights = errors.New("scene: too many lights")

// LightSpec describes one light to create.
type LightSpec struct {
	Uniform LightUniform

	// Marker is the shape drawn at the light position.
	Marker shape.Shape

	// Motion moves the light each frame; nil for a fixed light.
	Motion LightMotion
}

// Light is one light of a [LightGroup].
type Light struct {
	Uniform LightUniform
	Motion  LightMotion
	Marker  *shape.Geometry

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer

	// buffer holds this light alone, for its shadow pass.
	buffer *wgpu.Buffer
}

// LightGroup owns the lights: their uniforms, the light array buffer
// bound at group 1, and the marker geometry drawn at each light.
type LightGroup struct {
	Lights   []*Light
	Pipeline *gpu.GraphicsPipeline

	shader *gpu.Shader
	buffer *wgpu.Buffer
	shared *Shared
}

// NewLightGroup creates the lights and sets [Shared.LightsBind].
func NewLightGroup(sh *Shared, specs []LightSpec) (*LightGroup, error) {
	if len(specs) > MaxLights {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyLights, len(specs), MaxLights)
	}
	dev := sh.Device
	lg := &LightGroup{shared: sh}
	for i, sp := range specs {
		lt := &Light{Uniform: sp.Uniform, Motion: sp.Motion}
		lt.Uniform.UpdateViewProj(1)
		geom, err := shape.Build(sp.Marker)
		if err != nil {
			lg.Release()
			return nil, fmt.Errorf("scene: light %d marker: %w", i, err)
		}
		lt.Marker = geom
		label := fmt.Sprintf("light %d", i)
		if lt.vertexBuffer, err = gpu.NewBuffer(dev, label+" vertices", gpu.VertexUsage, geom.Vertices); err != nil {
			lg.Release()
			return nil, err
		}
		if lt.indexBuffer, err = gpu.NewBuffer(dev, label+" indices", gpu.IndexUsage, padIndices(geom.Indices)); err != nil {
			lg.Release()
			return nil, err
		}
		if lt.buffer, err = gpu.NewBuffer(dev, label, gpu.UniformUsage, []LightUniform{lt.Uniform}); err != nil {
			lg.Release()
			return nil, err
		}
		lg.Lights = append(lg.Lights, lt)
	}
	var err error
	lu := lg.Uniforms()
	if lg.buffer, err = gpu.NewBuffer(dev, "lights", gpu.UniformUsage, []LightsUniform{lu}); err != nil {
		lg.Release()
		return nil, err
	}
	if sh.LightsBind, err = gpu.NewBindGroup(dev, "lights", sh.LightsLayout, gpu.BufferEntry(0, lg.buffer)); err != nil {
		lg.Release()
		return nil, err
	}
	if lg.shader, err = gpu.OpenShader(dev, "light.wgsl"); err != nil {
		lg.Release()
		return nil, fmt.Errorf("scene: %w", err)
	}
	lg.Pipeline = gpu.NewGraphicsPipeline("lights", lg.shader).
		SetVertex("vs_main", VertexLayout()).
		SetFragment("fs_main", sh.ColorFormat).
		SetLayouts(sh.CameraLayout, sh.LightsLayout).
		SetDepth(gpu.Depth32.TextureFormat(), true, wgpu.CompareFunctionLess).
		SetMultisample(sh.Samples)
	if err := lg.Pipeline.Config(dev); err != nil {
		lg.Release()
		return nil, fmt.Errorf("scene: light pipeline: %w", err)
	}
	return lg, nil
}

// Uniforms returns the light array as uploaded to the shaders.
func (lg *LightGroup) Uniforms() LightsUniform {
	var lu LightsUniform
	lu.Count = uint32(len(lg.Lights))
	for i, lt := range lg.Lights {
		lu.Lights[i] = lt.Uniform
	}
	return lu
}

// Step moves each light and recomputes its shadow projection,
// without touching the GPU.
func (lg *LightGroup) Step(dt time.Duration, view *camera.View) {
	for _, lt := range lg.Lights {
		if lt.Motion != nil {
			lt.Motion.Move(&lt.Uniform, dt, view)
		}
		lt.Uniform.UpdateViewProj(1)
	}
}

// Update moves the lights and uploads them.
func (lg *LightGroup) Update(dt time.Duration, view *camera.View) error {
	lg.Step(dt, view)
	return lg.Write()
}

// Write uploads the light array and each light's own buffer.
func (lg *LightGroup) Write() error {
	dev := lg.shared.Device
	for _, lt := range lg.Lights {
		if err := gpu.WriteBuffer(dev, lt.buffer, []LightUniform{lt.Uniform}); err != nil {
			return err
		}
	}
	return gpu.WriteBuffer(dev, lg.buffer, []LightsUniform{lg.Uniforms()})
}

// SetParams applies the non-positional parameters of the given uniforms,
// in light order, as when the config file changes. Extra entries are ignored.
func (lg *LightGroup) SetParams(us []LightUniform) {
	for i := range min(len(us), len(lg.Lights)) {
		lg.Lights[i].Uniform.SetParams(&us[i])
	}
}

// Render draws a marker at each visible light in a color pass.
// The instance index tells the shader which light it is.
// Markers cast no shadow.
func (lg *LightGroup) Render(pass Pass) {
	if pass.Kind != ColorPass {
		return
	}
	enc := pass.Encoder
	enc.SetPipeline(lg.Pipeline.RenderPipeline())
	enc.SetBindGroup(CameraGroup, lg.shared.CameraBind, nil)
	enc.SetBindGroup(LightsGroup, lg.shared.LightsBind, nil)
	for i, lt := range lg.Lights {
		if lt.Uniform.Color.W == 0 {
			continue
		}
		enc.SetVertexBuffer(0, lt.vertexBuffer, 0, wgpu.WholeSize)
		enc.SetIndexBuffer(lt.indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
		enc.DrawIndexed(lt.Marker.NumIndices(), 1, 0, 0, uint32(i))
	}
}

func (lg *LightGroup) Release() {
	for _, lt := range lg.Lights {
		gpu.ReleaseBuffers(lt.vertexBuffer, lt.indexBuffer, lt.buffer)
	}
	gpu.ReleaseBuffers(lg.buffer)
	if lg.Pipeline != nil {
		lg.Pipeline.Release()
	}
	if lg.shader != nil {
		lg.shader.Release()
	}
}
