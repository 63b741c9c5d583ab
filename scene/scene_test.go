// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"testing"
	"time"
	"unsafe"

	"cogentcore.org/scene3d/camera"
	"cogentcore.org/scene3d/gpu"
	"cogentcore.org/scene3d/math32"
	"cogentcore.org/scene3d/shape"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1.0e-4

func assertVec3(t *testing.T, want, got math32.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol)
	assert.InDelta(t, want.Y, got.Y, tol)
	assert.InDelta(t, want.Z, got.Z, tol)
}

// recorder is an [Encoder] that records each call as a string.
type recorder struct {
	calls []string
}

func (rc *recorder) add(format string, args ...any) {
	rc.calls = append(rc.calls, fmt.Sprintf(format, args...))
}

func (rc *recorder) SetPipeline(pipeline *wgpu.RenderPipeline) { rc.add("pipeline") }

func (rc *recorder) SetBindGroup(groupIndex uint32, group *wgpu.BindGroup, dynamicOffsets []uint32) {
	rc.add("bind %d", groupIndex)
}

func (rc *recorder) SetVertexBuffer(slot uint32, buffer *wgpu.Buffer, offset, size uint64) {
	rc.add("vertex %d", slot)
}

func (rc *recorder) SetIndexBuffer(buffer *wgpu.Buffer, format wgpu.IndexFormat, offset, size uint64) {
	if format == wgpu.IndexFormatUint32 {
		rc.add("index 32")
		return
	}
	rc.add("index 16")
}

func (rc *recorder) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	rc.add("drawIndexed %d %d %d %d %d", indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

func (rc *recorder) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	rc.add("draw %d %d %d %d", vertexCount, instanceCount, firstVertex, firstInstance)
}

// named is a group that records its name and the pass it was given.
type named struct {
	name   string
	passes *[]string
}

func (nm named) Render(pass Pass) {
	*nm.passes = append(*nm.passes, fmt.Sprintf("%s %s %d", nm.name, pass.Kind, pass.Layer))
}

func testGeoGroup(t *testing.T, shp shape.Shape, ninst int) *GeoRenderGroup {
	geom, err := shape.Build(shp)
	require.NoError(t, err)
	inst := &Instances{}
	for i := range ninst {
		inst.Transforms = append(inst.Transforms, NewInstanceTransform(math32.Vec3(float32(i), 0, 0)))
	}
	return &GeoRenderGroup{
		Name:      "test",
		Entity:    &Entity{Name: "test", Geometry: geom},
		Instances: inst,
		Pipeline:  &gpu.GraphicsPipeline{},
		shared:    &Shared{},
	}
}

func TestGroupOrder(t *testing.T) {
	var got []string
	groups := RenderGroups{named{"sky", &got}, named{"lights", &got}, named{"square", &got}}
	groups.Render(Pass{Kind: ColorPass, Encoder: &recorder{}})
	assert.Equal(t, []string{"sky ColorPass 0", "lights ColorPass 0", "square ColorPass 0"}, got)
}

func TestGeoRenderGroupColor(t *testing.T) {
	gr := testGeoGroup(t, shape.NewSquare(26, 40), 3)
	rc := &recorder{}
	gr.Render(Pass{Kind: ColorPass, Encoder: rc})
	assert.Equal(t, []string{
		"pipeline",
		"bind 0", "bind 1", "bind 2", "bind 3",
		"vertex 0", "vertex 1", "index 16",
		"drawIndexed 6 3 0 0 0",
	}, rc.calls)
}

func TestGeoRenderGroupShadow(t *testing.T) {
	gr := testGeoGroup(t, shape.NewCube(10), 1)
	rc := &recorder{}
	gr.Render(Pass{Kind: ShadowPass, Encoder: rc, Layer: 1})
	assert.Equal(t, []string{"vertex 0", "vertex 1", "index 16", "drawIndexed 36 1 0 0 0"}, rc.calls)
}

func TestGeoRenderGroupSetGeometry(t *testing.T) {
	gr := testGeoGroup(t, shape.NewCube(10), 1)
	bad := &shape.Geometry{Vertices: make([]shape.Vertex, 1), Indices: []uint16{0, 1, 2}}
	assert.Error(t, gr.SetGeometry(bad))
	assert.Equal(t, uint32(36), gr.Entity.Geometry.NumIndices())
}

func testLightGroup(t *testing.T) *LightGroup {
	lg := &LightGroup{Pipeline: &gpu.GraphicsPipeline{}, shared: &Shared{}}
	for i, sp := range DefaultLights() {
		geom, err := shape.Build(sp.Marker)
		require.NoError(t, err, i)
		lg.Lights = append(lg.Lights, &Light{Uniform: sp.Uniform, Motion: sp.Motion, Marker: geom})
	}
	return lg
}

func TestLightGroupRender(t *testing.T) {
	lg := testLightGroup(t)
	rc := &recorder{}
	lg.Render(Pass{Kind: ColorPass, Encoder: rc})
	// the spot light marker is hidden
	assert.Equal(t, []string{
		"pipeline", "bind 0", "bind 1",
		"vertex 0", "index 16", "drawIndexed 36 1 0 0 0",
	}, rc.calls)

	lg.Lights[1].Uniform.Color.W = 1
	rc = &recorder{}
	lg.Render(Pass{Kind: ColorPass, Encoder: rc})
	assert.Contains(t, rc.calls, fmt.Sprintf("drawIndexed %d 1 0 0 1", 6*20*20))

	rc = &recorder{}
	lg.Render(Pass{Kind: ShadowPass, Encoder: rc})
	assert.Empty(t, rc.calls)
}

func TestLightGroupStep(t *testing.T) {
	lg := testLightGroup(t)
	cam := camera.Defaults()
	lg.Step(time.Second, &cam.View)

	lu := lg.Uniforms()
	assert.Equal(t, uint32(2), lu.Count)
	spot := lu.Lights[1]
	assertVec3(t, cam.View.Position.Add(cam.View.Forward().MulScalar(10)), spot.Position)
	assert.Equal(t, float32(1), spot.Cutoff.W)
	assert.NotEqual(t, math32.Matrix4{}, lu.Lights[0].ViewProj)
}

func TestLightGroupSetParams(t *testing.T) {
	lg := testLightGroup(t)
	pos := lg.Lights[0].Uniform.Position
	src := DefaultLightUniform()
	src.Position = math32.Vec3(1, 2, 3)
	src.Color = math32.Vec4(1, 0, 0, 1)
	src.DiffuseStrength = 0.5
	lg.SetParams([]LightUniform{src, src, src})
	assert.Equal(t, pos, lg.Lights[0].Uniform.Position)
	assert.Equal(t, math32.Vec4(1, 0, 0, 1), lg.Lights[1].Uniform.Color)
	assert.Equal(t, float32(0.5), lg.Lights[0].Uniform.DiffuseStrength)
}

func TestSkyboxRender(t *testing.T) {
	sb := &Skybox{Pipeline: &gpu.GraphicsPipeline{}, shared: &Shared{}}
	rc := &recorder{}
	sb.Render(Pass{Kind: ColorPass, Encoder: rc})
	assert.Equal(t, []string{"pipeline", "bind 0", "bind 1", "draw 3 1 0 0"}, rc.calls)

	rc = &recorder{}
	sb.Render(Pass{Kind: ShadowPass, Encoder: rc})
	assert.Empty(t, rc.calls)
}

func TestModelRenderGroup(t *testing.T) {
	md := &Model{
		Meshes: []Mesh{
			{Name: "a", NumIndices: 30, Material: 1},
			{Name: "b", NumIndices: 12, Material: 0},
		},
		Materials: make([]Material, 2),
	}
	inst := &Instances{Transforms: []InstanceTransform{NewInstanceTransform(math32.Vector3{})}}
	mr := &ModelRenderGroup{Model: md, Instances: inst, Pipeline: &gpu.GraphicsPipeline{}, shared: &Shared{}}

	rc := &recorder{}
	mr.Render(Pass{Kind: ColorPass, Encoder: rc})
	assert.Equal(t, []string{
		"pipeline", "bind 0", "bind 1", "bind 3",
		"vertex 0",
		"bind 2", "vertex 1", "index 32", "drawIndexed 30 1 0 0 0",
		"bind 2", "vertex 1", "index 32", "drawIndexed 12 1 0 0 0",
	}, rc.calls)

	rc = &recorder{}
	mr.Render(Pass{Kind: ShadowPass, Encoder: rc})
	assert.Equal(t, []string{
		"vertex 0",
		"vertex 1", "index 32", "drawIndexed 30 1 0 0 0",
		"vertex 1", "index 32", "drawIndexed 12 1 0 0 0",
	}, rc.calls)
}

func TestShadowRenderLayer(t *testing.T) {
	sm := &ShadowMap{Pipeline: &gpu.GraphicsPipeline{}, lightBinds: make([]*wgpu.BindGroup, 2)}
	assert.Equal(t, 2, sm.Layers())
	var got []string
	rc := &recorder{}
	sm.RenderLayer(rc, 1, RenderGroups{named{"floor", &got}, named{"sphere", &got}})
	assert.Equal(t, []string{"pipeline", "bind 0"}, rc.calls)
	assert.Equal(t, []string{"floor ShadowPass 1", "sphere ShadowPass 1"}, got)
}

func TestShadowSkipsUnshadowed(t *testing.T) {
	sm := &ShadowMap{Pipeline: &gpu.GraphicsPipeline{}, lightBinds: make([]*wgpu.BindGroup, 1)}
	sky := &Skybox{Pipeline: &gpu.GraphicsPipeline{}, shared: &Shared{}}
	lg := testLightGroup(t)
	gr := testGeoGroup(t, shape.NewSquare(1, 1), 2)
	rc := &recorder{}
	sm.RenderLayer(rc, 0, RenderGroups{sky, lg, gr})
	assert.Equal(t, []string{
		"pipeline", "bind 0",
		"vertex 0", "vertex 1", "index 16", "drawIndexed 6 2 0 0 0",
	}, rc.calls)
}

func TestCutoff(t *testing.T) {
	c, err := Cutoff(4, 30)
	require.NoError(t, err)
	assert.InDelta(t, math32.Cos(math32.DegToRad(4)), c.X, tol)
	assert.InDelta(t, math32.Cos(math32.DegToRad(30)), c.Y, tol)
	assert.InDelta(t, c.X-c.Y, c.Z, tol)
	assert.Equal(t, float32(1), c.W)

	_, err = Cutoff(30, 4)
	assert.ErrorIs(t, err, ErrCutoff)
	_, err = Cutoff(10, 10)
	assert.ErrorIs(t, err, ErrCutoff)
}

func TestOrbitY(t *testing.T) {
	lu := DefaultLightUniform()
	axisDist := func(p math32.Vector3) float32 { return math32.Sqrt(p.X*p.X + p.Z*p.Z) }
	d0 := axisDist(lu.Position)
	y0 := lu.Position.Y
	orb := OrbitY{DegPerSec: -100}
	for range 50 {
		orb.Move(&lu, 100*time.Millisecond, nil)
		assert.InDelta(t, d0, axisDist(lu.Position), tol)
		assert.InDelta(t, y0, lu.Position.Y, tol)
		assert.Equal(t, lu.Position, lu.Direction)
	}
	// 90 degrees in 0.9s
	lu = DefaultLightUniform()
	lu.Position = math32.Vec3(10, 0, 0)
	orb.Move(&lu, 900*time.Millisecond, nil)
	assertVec3(t, math32.Vec3(0, 0, 10), lu.Position)
}

func TestFollowCamera(t *testing.T) {
	cam := camera.Defaults()
	lu := DefaultLightUniform()
	FollowCamera{Distance: 10}.Move(&lu, time.Millisecond, &cam.View)
	fwd := cam.View.Forward()
	assertVec3(t, cam.View.Position.Add(fwd.MulScalar(10)), lu.Position)
	assertVec3(t, fwd.Negate(), lu.Direction)
}

func TestLightViewProj(t *testing.T) {
	lu := DefaultLightUniform()
	lu.Position = math32.Vec3(0, 50, 10)
	lu.Direction = lu.Position
	lu.UpdateViewProj(1)
	// the light looks at the origin, which lands at the center of the shadow map
	p := math32.Vec4(0, 0, 0, 1).MulMatrix4(&lu.ViewProj).PerspDiv()
	assert.InDelta(t, 0, p.X, tol)
	assert.InDelta(t, 0, p.Y, tol)
	assert.True(t, p.Z > 0 && p.Z < 1)
}

func TestSphereAnimation(t *testing.T) {
	sa := NewSphereAnimation()
	var counts []int
	for s := range 30 {
		counts = append(counts, sa.Count(time.Duration(s)*time.Second+time.Second/2))
	}
	assert.Equal(t, 3, counts[0])
	assert.Equal(t, 17, counts[14])
	assert.Equal(t, 3, counts[15])
	assert.Equal(t, counts[:15], counts[15:])

	geom, err := sa.Update(0)
	require.NoError(t, err)
	require.NotNil(t, geom)
	assert.Len(t, geom.Indices, 6*3*2)

	geom, err = sa.Update(500 * time.Millisecond)
	require.NoError(t, err)
	assert.Nil(t, geom)

	geom, err = sa.Update(14 * time.Second)
	require.NoError(t, err)
	require.NotNil(t, geom)
	assert.Len(t, geom.Indices, 6*17*16)
	for _, v := range geom.Vertices {
		assert.InDelta(t, 10, v.Pos.Length(), tol)
	}
}

func TestLayoutSizes(t *testing.T) {
	assert.Equal(t, uintptr(160), unsafe.Sizeof(LightUniform{}))
	assert.Equal(t, uintptr(16+MaxLights*160), unsafe.Sizeof(LightsUniform{}))
	assert.Equal(t, uintptr(64), unsafe.Sizeof(MaterialUniform{}))
	assert.Equal(t, uintptr(100), unsafe.Sizeof(InstanceRaw{}))
	assert.Equal(t, uint64(100), InstanceLayout().ArrayStride)
	assert.Equal(t, uint64(unsafe.Sizeof(shape.Vertex{})), VertexLayout().ArrayStride)
}

func TestInstanceToRaw(t *testing.T) {
	it := NewInstanceTransform(math32.Vec3(1, 2, 3))
	it.Rot = math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), math32.DegToRad(90))
	raw := it.ToRaw()
	assertVec3(t, math32.Vec3(1, 2, 3), math32.Vector3{}.MulMatrix4(&raw.Model))
	// rotate first, then translate
	assertVec3(t, math32.Vec3(1, 2, 2), math32.Vec3(1, 0, 0).MulMatrix4(&raw.Model))
	assertVec3(t, math32.Vec3(0, 0, -1), math32.Vec3(1, 0, 0).MulMatrix3(&raw.Normal))

	want := *math32.Translation4(it.Pos).Mul(math32.Matrix4FromQuat(it.Rot))
	assert.Equal(t, want, raw.Model)
}

func TestMaterialUniform(t *testing.T) {
	def := DefaultMaterial()
	assert.Equal(t, math32.Vec3(1, 1, 1), def.Diffuse)
	assert.Equal(t, float32(32), def.Shininess)
	mu := NewMaterialUniform(math32.Vector3{}, math32.Vec3(1, 0, 0), math32.Vector3{}, 0)
	assert.Equal(t, float32(DefaultShininess), mu.Shininess)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 4, opts.Samples)
	assert.Equal(t, float32(-10), opts.FloorHeight)
	require.Len(t, opts.Lights, 2)
	assert.Equal(t, float32(1), opts.Lights[0].Uniform.Color.W)
	assert.Equal(t, float32(0), opts.Lights[1].Uniform.Color.W)
	assert.Equal(t, float32(0.01), opts.Lights[1].Uniform.AmbientStrength)
	assert.IsType(t, OrbitY{}, opts.Lights[0].Motion)
	assert.IsType(t, FollowCamera{}, opts.Lights[1].Motion)
	assert.Equal(t, 3, opts.Sphere.Min)
}

func TestPassKindsString(t *testing.T) {
	assert.Equal(t, "ColorPass", ColorPass.String())
	assert.Equal(t, "ShadowPass", ShadowPass.String())
}
