// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
	"testing/fstest"

	"cogentcore.org/scene3d/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

const triObj = "mtllib tri.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl skin\nf 1 2 3\n"

func testFS(t *testing.T) fstest.MapFS {
	fsys := fstest.MapFS{
		"square.png":       {Data: pngBytes(t, 8, 4)},
		"floor.png":        {Data: pngBytes(t, 16, 16)},
		"models/tri.obj":   {Data: []byte(triObj)},
		"models/tri.mtl":   {Data: []byte("newmtl skin\nKd 1 1 1\nmap_Kd skin.png\n")},
		"models/skin.png":  {Data: pngBytes(t, 2, 2)},
		"models/plain.obj": {Data: []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")},
		"notimage.png":     {Data: []byte("%PDF-1.4 not an image at all")},
	}
	for _, face := range SkyboxFaces {
		fsys["sky/"+face+".png"] = &fstest.MapFile{Data: pngBytes(t, 4, 4)}
	}
	return fsys
}

func testManifest() *Manifest {
	return &Manifest{
		Square: TextureSpec{File: "square.png"},
		Floor:  TextureSpec{File: "floor.png", Mips: true},
		Skybox: SkyboxSpec{Dir: "sky", Ext: ".png"},
		Models: []ModelSpec{
			{File: "models/tri.obj", Scale: 2, Position: math32.Vec3(1, 2, 3)},
			{File: "models/plain.obj", Scale: 1, RotateY: 90},
		},
	}
}

func TestLoadAll(t *testing.T) {
	ld := &Loader{FS: testFS(t), Progress: io.Discard}
	as, err := ld.LoadAll(context.Background(), testManifest())
	require.NoError(t, err)
	require.NotNil(t, as.Square)
	assert.Equal(t, image.Pt(8, 4), as.Square.Bounds().Size())
	assert.True(t, as.FloorMips)
	assert.Nil(t, as.Sphere)
	assert.Len(t, as.Skybox, 6)

	require.Len(t, as.Models, 2)
	tri := as.Models[0]
	assert.Equal(t, "models/tri.obj", tri.Name)
	assert.Contains(t, tri.Images, "skin.png")
	require.Len(t, tri.Transforms, 1)
	assert.Equal(t, math32.Vec3(1, 2, 3), tri.Transforms[0].Pos)
	assert.Equal(t, math32.Vec3(2, 0, 0), tri.Model.Meshes[0].Vertices[1].Pos)
	assert.Empty(t, as.Models[1].Images)
}

func TestLoadAllErrors(t *testing.T) {
	ld := &Loader{FS: testFS(t)}
	m := testManifest()
	m.Sphere.File = "missing.png"
	_, err := ld.LoadAll(context.Background(), m)
	assert.Error(t, err)

	m = testManifest()
	m.Floor.File = "notimage.png"
	_, err = ld.LoadAll(context.Background(), m)
	assert.Error(t, err)

	m = testManifest()
	m.Models[0].File = "models/none.obj"
	_, err = ld.LoadAll(context.Background(), m)
	assert.Error(t, err)
}

func TestCubemap(t *testing.T) {
	fsys := testFS(t)
	ld := &Loader{FS: fsys}
	faces, err := ld.Cubemap(SkyboxSpec{})
	require.NoError(t, err)
	assert.Nil(t, faces)

	fsys["sky/negz.png"] = &fstest.MapFile{Data: pngBytes(t, 2, 2)}
	_, err = ld.Cubemap(SkyboxSpec{Dir: "sky", Ext: ".png"})
	assert.Error(t, err)
}

func TestModelMissingTexture(t *testing.T) {
	fsys := testFS(t)
	delete(fsys, "models/skin.png")
	ld := &Loader{FS: fsys}
	ma, err := ld.Model(ModelSpec{File: "models/tri.obj", Scale: 1})
	require.NoError(t, err)
	assert.Empty(t, ma.Images)
}

func TestModelTransform(t *testing.T) {
	ms := ModelSpec{Position: math32.Vec3(0, -10, 0), RotateY: 90}
	it := ms.Transform()
	raw := it.ToRaw()
	p := math32.Vec3(1, 0, 0).MulMatrix4(&raw.Model)
	assert.InDelta(t, 0, p.X, 1e-4)
	assert.InDelta(t, -10, p.Y, 1e-4)
	assert.InDelta(t, -1, p.Z, 1e-4)
}

func TestDefaultManifest(t *testing.T) {
	m := DefaultManifest()
	assert.Equal(t, "albedo.png", m.Floor.File)
	assert.True(t, m.Floor.Mips)
	require.Len(t, m.Models, 2)
	assert.Equal(t, float32(40), m.Models[0].Scale)
	assert.Equal(t, math32.Vec3(-60, -11, 0), m.Models[0].Position)
}
