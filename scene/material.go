// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "cogentcore.org/scene3d/math32"

// DefaultShininess is the specular exponent used when none is given.
const DefaultShininess = 32

// MaterialUniform scales each lighting term of a surface.
// The layout is 64 bytes.
type MaterialUniform struct {
	Ambient   math32.Vector3
	_         float32
	Diffuse   math32.Vector3
	_         float32
	Specular  math32.Vector3
	_         float32
	Shininess float32
	_         [3]float32
}

// DefaultMaterial passes every lighting term through unchanged.
func DefaultMaterial() MaterialUniform {
	return NewMaterialUniform(math32.Vector3Scalar(1), math32.Vector3Scalar(1), math32.Vector3Scalar(1), DefaultShininess)
}

// NewMaterialUniform returns a material with the given terms.
// A shininess <= 0 gets [DefaultShininess].
func NewMaterialUniform(ambient, diffuse, specular math32.Vector3, shininess float32) MaterialUniform {
	if shininess <= 0 {
		shininess = DefaultShininess
	}
	return MaterialUniform{Ambient: ambient, Diffuse: diffuse, Specular: specular, Shininess: shininess}
}
