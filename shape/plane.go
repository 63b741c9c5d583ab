// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "cogentcore.org/scene3d/math32"

// Plane is a square in the XY plane spanning -Extent..Extent on
// both axes, facing +Z.
type Plane struct {
	ShapeBase
	Extent float32
}

// NewPlane returns a [Plane] of the given half-extent.
func NewPlane(extent float32) *Plane {
	return &Plane{Extent: extent}
}

func (pl *Plane) Size() (numVertex, numIndex int) {
	return 4, 6
}

func (pl *Plane) Set(vertices []Vertex, indices []uint16) {
	s := pl.Extent
	p := pl.Pos
	pos := [4]math32.Vector3{
		p.Add(math32.Vec3(s, -s, 0)),
		p.Add(math32.Vec3(s, s, 0)),
		p.Add(math32.Vec3(-s, -s, 0)),
		p.Add(math32.Vec3(-s, s, 0)),
	}
	uv := [4]math32.Vector2{{1, 0}, {1, 1}, {0, 0}, {0, 1}}
	pl.CBBox = setQuad(vertices, indices, pl.VertexOffset, pl.IndexOffset, pos, uv, math32.Vec3(0, 0, 1), [6]uint16{0, 1, 2, 2, 1, 3})
}

// Square is a rectangle in the XY plane centered at the origin,
// Width along X and Height along Y, facing +Z.
// Its vertices are ordered bottom-left, bottom-right, top-right, top-left.
type Square struct {
	ShapeBase
	Height float32
	Width  float32

	// UVScale multiplies the texture coordinates, so that
	// values > 1 repeat the texture across the surface.
	UVScale math32.Vector2
}

// NewSquare returns a [Square] of the given height and width
// with the texture stretched once across it.
func NewSquare(height, width float32) *Square {
	return &Square{Height: height, Width: width, UVScale: math32.Vec2(1, 1)}
}

func (sq *Square) Size() (numVertex, numIndex int) {
	return 4, 6
}

func (sq *Square) Set(vertices []Vertex, indices []uint16) {
	hw := sq.Width / 2
	hh := sq.Height / 2
	p := sq.Pos
	pos := [4]math32.Vector3{
		p.Add(math32.Vec3(-hw, -hh, 0)),
		p.Add(math32.Vec3(hw, -hh, 0)),
		p.Add(math32.Vec3(hw, hh, 0)),
		p.Add(math32.Vec3(-hw, hh, 0)),
	}
	us := sq.UVScale
	uv := [4]math32.Vector2{
		math32.Vec2(0, 1).Mul(us),
		math32.Vec2(1, 1).Mul(us),
		math32.Vec2(1, 0).Mul(us),
		math32.Vec2(0, 0).Mul(us),
	}
	sq.CBBox = setQuad(vertices, indices, sq.VertexOffset, sq.IndexOffset, pos, uv, math32.Vec3(0, 0, 1), [6]uint16{0, 1, 2, 2, 3, 0})
}

// FloorTileSize is the default world size of one repeat of a floor texture.
const FloorTileSize = 100

// NewFloor returns a [Square] of the given height and width whose
// texture repeats once every [FloorTileSize] world units.
// Floors are typically rotated -90 degrees about X to lie flat.
func NewFloor(height, width float32) *Square {
	sq := NewSquare(height, width)
	sq.UVScale = math32.Vec2(width/FloorTileSize, height/FloorTileSize)
	return sq
}
