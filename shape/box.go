// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "cogentcore.org/scene3d/math32"

// Cube is an axis-aligned cube centered at the origin with 8 shared
// corner vertices.  Because corners are shared between faces, normals
// cannot be per-face: the 4 front corners (+Z) get normal +Z and
// the 4 back corners get -Z.  This is an approximation that is
// adequate for the small light-marker cubes it is used for.
type Cube struct {
	ShapeBase

	// Edge is the length of each edge.
	Edge float32
}

// NewCube returns a [Cube] with the given edge length.
func NewCube(edge float32) *Cube {
	return &Cube{Edge: edge}
}

// CubeFaces lists the two triangles of each face as indices into the
// cube's 8 corners, in the order +Z, -Z, +X, -X, +Y, -Y.
// Corners 0-3 are the front (+Z) quad and 4-7 the back (-Z) quad,
// each ordered bottom-left, bottom-right, top-right, top-left
// as seen from +Z.
var CubeFaces = [6][6]uint16{
	{0, 1, 2, 2, 3, 0}, // +Z
	{5, 4, 7, 7, 6, 5}, // -Z
	{1, 5, 6, 6, 2, 1}, // +X
	{4, 0, 3, 3, 7, 4}, // -X
	{3, 2, 6, 6, 7, 3}, // +Y
	{4, 5, 1, 1, 0, 4}, // -Y
}

func (cb *Cube) Size() (numVertex, numIndex int) {
	return 8, 36
}

func (cb *Cube) Set(vertices []Vertex, indices []uint16) {
	h := cb.Edge / 2
	vo := cb.VertexOffset
	io := cb.IndexOffset
	quad := [4]math32.Vector2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	uv := [4]math32.Vector2{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	cb.CBBox = math32.B3Empty()
	for back := range 2 {
		z := h
		norm := math32.Vec3(0, 0, 1)
		if back == 1 {
			z = -h
			norm = math32.Vec3(0, 0, -1)
		}
		for i, q := range quad {
			pos := cb.Pos.Add(math32.Vec3(q.X*h, q.Y*h, z))
			vertices[vo+back*4+i] = Vertex{Pos: pos, TexCoord: uv[i], Normal: norm}
			cb.CBBox.ExpandByPoint(pos)
		}
	}
	for f, face := range CubeFaces {
		for i, ix := range face {
			indices[io+f*6+i] = uint16(vo) + ix
		}
	}
}
