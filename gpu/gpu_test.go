// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"encoding/binary"
	"image"
	"image/color"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shaderFiles = []string{"shader.wgsl", "light.wgsl", "shadow.wgsl", "skybox.wgsl"}

func TestVertexLayout(t *testing.T) {
	vl := VertexLayout(wgpu.VertexStepModeVertex, 0, Float32Vector3, Float32Vector2, Float32Vector3)
	assert.Equal(t, uint64(32), vl.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, vl.StepMode)
	require.Len(t, vl.Attributes, 3)
	for i, off := range []uint64{0, 12, 20} {
		assert.Equal(t, off, vl.Attributes[i].Offset)
		assert.Equal(t, uint32(i), vl.Attributes[i].ShaderLocation)
	}
	assert.Equal(t, wgpu.VertexFormatFloat32x2, vl.Attributes[1].Format)

	il := VertexLayout(wgpu.VertexStepModeInstance, 5,
		Float32Vector4, Float32Vector4, Float32Vector4, Float32Vector4,
		Float32Vector3, Float32Vector3, Float32Vector3)
	assert.Equal(t, uint64(100), il.ArrayStride)
	last := il.Attributes[len(il.Attributes)-1]
	assert.Equal(t, uint32(11), last.ShaderLocation)
	assert.Equal(t, uint64(88), last.Offset)
}

func TestTextureFormat(t *testing.T) {
	tf := NewTextureFormat(640, 480, 0)
	assert.Equal(t, uint32(1), tf.Extent3D().DepthOrArrayLayers)
	assert.InDelta(t, 640.0/480.0, tf.Aspect(), 1e-6)
	assert.Equal(t, 640*4, tf.Stride(0))
	assert.Equal(t, 4, tf.Stride(20))
	tf.SetFormat(Depth32)
	assert.Equal(t, wgpu.TextureFormatDepth32Float, tf.Format)
	tf.SetSize(0, 0)
	assert.Equal(t, float32(1.3), tf.Aspect())
}

func TestIncludeFS(t *testing.T) {
	fsys := fstest.MapFS{
		"inc/common.wgsl": {Data: []byte("struct A {\n    x: f32,\n};")},
	}
	code := "#include \"common.wgsl\"\nfn f() {}\n#include \"missing.wgsl\""
	out := IncludeFS(fsys, "inc", code)
	assert.Contains(t, out, "// #include \"common.wgsl\"\nstruct A {")
	assert.Contains(t, out, "fn f() {}")
	assert.Contains(t, out, "#include \"missing.wgsl\"")
}

func TestShaderCode(t *testing.T) {
	for _, fn := range shaderFiles {
		code, err := ShaderCode(fn)
		require.NoError(t, err, fn)
		assert.Contains(t, code, "struct Camera", fn)
		for _, ln := range strings.Split(code, "\n") {
			assert.False(t, strings.HasPrefix(ln, "#include"), fn)
		}
	}
	_, err := ShaderCode("nope.wgsl")
	assert.Error(t, err)
}

// skipUnsupported skips when naga does not yet implement a feature
// the shader uses, rather than failing on it.
func skipUnsupported(t *testing.T, err error) {
	t.Helper()
	msg := err.Error()
	for _, s := range []string{"not yet implemented", "not supported", "lowering error", "unsupported"} {
		if strings.Contains(msg, s) {
			t.Skipf("naga: %v", err)
		}
	}
}

func TestValidateShaders(t *testing.T) {
	for _, fn := range shaderFiles {
		t.Run(fn, func(t *testing.T) {
			code, err := ShaderCode(fn)
			require.NoError(t, err)
			err = ValidateWGSL(fn, code)
			if err != nil {
				skipUnsupported(t, err)
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateWGSL(t *testing.T) {
	code := "@vertex\nfn vs_main(@builtin(vertex_index) i: u32) -> @builtin(position) vec4<f32> {\n    return vec4<f32>(f32(i), 0.0, 0.0, 1.0);\n}\n"
	if err := ValidateWGSL("tiny", code); err != nil {
		skipUnsupported(t, err)
		t.Fatal(err)
	}
	err := ValidateWGSL("broken", "fn (")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestSPIRVHeader(t *testing.T) {
	// ValidateWGSL discards output; check naga output directly once.
	code := "@fragment\nfn fs_main() -> @location(0) vec4<f32> {\n    return vec4<f32>(1.0, 0.0, 0.0, 1.0);\n}\n"
	spv, err := compileWGSL(code)
	if err != nil {
		skipUnsupported(t, err)
	}
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(spv), 4)
	assert.Equal(t, uint32(0x07230203), binary.LittleEndian.Uint32(spv))
}

func TestGraphicsPipelineDescriptor(t *testing.T) {
	sh := &Shader{Name: "shadow"}
	inst := VertexLayout(wgpu.VertexStepModeInstance, 5, Float32Vector4)
	pl := NewGraphicsPipeline("shadow", sh).
		SetVertex("vs_bake", inst).
		SetDepth(wgpu.TextureFormatDepth32Float, true, wgpu.CompareFunctionLessEqual).
		SetDepthBias(2, 2)
	pd := pl.Descriptor(nil)
	assert.Nil(t, pd.Fragment)
	assert.Equal(t, "vs_bake", pd.Vertex.EntryPoint)
	assert.Len(t, pd.Vertex.Buffers, 1)
	assert.Equal(t, wgpu.CullModeBack, pd.Primitive.CullMode)
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, pd.Primitive.Topology)
	require.NotNil(t, pd.DepthStencil)
	assert.Equal(t, int32(2), pd.DepthStencil.DepthBias)
	assert.Equal(t, float32(2), pd.DepthStencil.DepthBiasSlopeScale)
	assert.Equal(t, uint32(1), pd.Multisample.Count)

	pl.SetFragment("fs_main", wgpu.TextureFormatBGRA8UnormSrgb).SetMultisample(4)
	pd = pl.Descriptor(nil)
	require.NotNil(t, pd.Fragment)
	require.Len(t, pd.Fragment.Targets, 1)
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, pd.Fragment.Targets[0].Format)
	assert.Equal(t, uint32(4), pd.Multisample.Count)

	empty := NewGraphicsPipeline("empty", sh)
	assert.ErrorIs(t, empty.Config(nil), ErrNoVertexEntry)
}

func TestRenderPass(t *testing.T) {
	rp := &Render{Samples: 1, ClearColor: color.RGBA{255, 0, 0, 255}, Depth: NewTexture(nil, "depth"), Multi: NewTexture(nil, "multi")}
	cv := rp.ClearValue()
	assert.Equal(t, wgpu.Color{R: 1, G: 0, B: 0, A: 1}, cv)

	desc := rp.ClearRenderPass(nil)
	require.Len(t, desc.ColorAttachments, 1)
	assert.Equal(t, wgpu.StoreOpStore, desc.ColorAttachments[0].StoreOp)
	assert.Equal(t, wgpu.LoadOpClear, desc.ColorAttachments[0].LoadOp)
	require.NotNil(t, desc.DepthStencilAttachment)
	assert.Equal(t, float32(1), desc.DepthStencilAttachment.DepthClearValue)

	rp.Samples = 4
	desc = rp.ClearRenderPass(nil)
	assert.Equal(t, wgpu.StoreOpDiscard, desc.ColorAttachments[0].StoreOp)

	// zero sizes are ignored without touching the device
	assert.NoError(t, rp.SetSize(image.Point{}))

	dp := DepthPass(nil)
	assert.Empty(t, dp.ColorAttachments)
	assert.Equal(t, wgpu.LoadOpClear, dp.DepthStencilAttachment.DepthLoadOp)
}

func TestGPUDevice(t *testing.T) {
	t.Skip("Need software GPU on CI")
	gp := NewGPU()
	defer gp.Release()
	require.NoError(t, gp.Config("test", nil))
	dev, err := gp.NewDevice()
	require.NoError(t, err)
	defer dev.Release()

	sh, err := OpenShader(dev, "shader.wgsl")
	require.NoError(t, err)
	defer sh.Release()
	assert.NotNil(t, sh.Module())

	buf, err := NewBuffer(dev, "test", UniformUsage, []float32{1, 2, 3, 4})
	require.NoError(t, err)
	assert.NoError(t, WriteBuffer(dev, buf, []float32{4, 3, 2, 1}))
	ReleaseBuffers(buf)

	rd, err := NewRender(dev, image.Point{64, 48}, wgpu.TextureFormatBGRA8UnormSrgb, 4)
	require.NoError(t, err)
	defer rd.Release()
	assert.Equal(t, 4, rd.Depth.Format.Samples)
}
