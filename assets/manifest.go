// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assets loads the textures, sky box faces and models
// named by a [Manifest] into [scene.Assets].
package assets

import (
	"cogentcore.org/scene3d/math32"
	"cogentcore.org/scene3d/scene"
)

// Manifest names the asset files, relative to Dir.
type Manifest struct {
	// Dir is the asset directory; ~ is expanded.
	Dir string `toml:"dir" yaml:"dir"`

	Square TextureSpec `toml:"square" yaml:"square"`
	Floor  TextureSpec `toml:"floor" yaml:"floor"`
	Sphere TextureSpec `toml:"sphere" yaml:"sphere"`

	Skybox SkyboxSpec `toml:"skybox" yaml:"skybox"`

	Models []ModelSpec `toml:"models" yaml:"models"`
}

// TextureSpec is an image file. An empty File uses a white texture.
type TextureSpec struct {
	File string `toml:"file" yaml:"file"`

	// Mips generates a mip chain.
	Mips bool `toml:"mips" yaml:"mips"`
}

// SkyboxSpec locates the six cube faces, named posx, negx, posy,
// negy, posz and negz plus Ext, in Dir. An empty Dir is no sky box.
type SkyboxSpec struct {
	Dir string `toml:"dir" yaml:"dir"`
	Ext string `toml:"ext" yaml:"ext"`
}

// SkyboxFaces are the cube face names in layer order.
var SkyboxFaces = []string{"posx", "negx", "posy", "negy", "posz", "negz"}

// ModelSpec is an OBJ file and where to draw it.
type ModelSpec struct {
	File  string  `toml:"file" yaml:"file"`
	Scale float32 `toml:"scale" yaml:"scale"`

	Position math32.Vector3 `toml:"position" yaml:"position"`

	// RotateY is a rotation about Y in degrees.
	RotateY float32 `toml:"rotate_y" yaml:"rotate_y"`
}

// Transform returns the instance transform of the model.
func (ms *ModelSpec) Transform() scene.InstanceTransform {
	it := scene.NewInstanceTransform(ms.Position)
	if ms.RotateY != 0 {
		it.Rot = math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), math32.DegToRad(ms.RotateY))
	}
	return it
}

// DefaultManifest returns the demo assets.
func DefaultManifest() Manifest {
	return Manifest{
		Dir:    "assets",
		Square: TextureSpec{File: "asuka.png"},
		Floor:  TextureSpec{File: "albedo.png", Mips: true},
		Sphere: TextureSpec{File: "texture_test.png"},
		Skybox: SkyboxSpec{Dir: "skybox", Ext: ".png"},
		Models: []ModelSpec{
			{File: "girl.obj", Scale: 40, Position: math32.Vec3(-60, -11, 0)},
			{File: "arto.obj", Scale: 1, Position: math32.Vec3(0, -10, 0)},
		},
	}
}
