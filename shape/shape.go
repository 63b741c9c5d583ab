// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape generates vertex and index data for procedural
// primitives: planes, squares, floors, cubes and spheres.
// All shapes use counter-clockwise winding for front faces.
package shape

import (
	"errors"
	"fmt"

	"cogentcore.org/scene3d/math32"
)

var (
	// ErrSegments is returned for a sphere with fewer than 2
	// longitude or latitude segments.
	ErrSegments = errors.New("shape: sphere needs at least 2 segments in each direction")

	// ErrTooManyVertices is returned when a shape needs more vertices
	// than 16-bit indices can address.
	ErrTooManyVertices = errors.New("shape: too many vertices for 16-bit indices")

	// ErrIndexRange is returned by [Geometry.Validate] for an index
	// that does not refer to a vertex.
	ErrIndexRange = errors.New("shape: index out of range")
)

// MaxVertices is the maximum number of vertices addressable
// by the 16-bit indices of a [Geometry].
const MaxVertices = 1 << 16

// Vertex is one interleaved vertex record, laid out exactly as
// the GPU vertex buffer expects it.
type Vertex struct {
	Pos      math32.Vector3
	TexCoord math32.Vector2
	Normal   math32.Vector3
}

// Geometry is an ordered list of vertices and the triangle list
// of 16-bit indices into them.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint16
}

// NumIndices returns the number of indices as the GPU draw count.
func (g *Geometry) NumIndices() uint32 {
	return uint32(len(g.Indices))
}

// Validate checks that every index refers to a vertex, and that
// the vertex count fits in 16-bit indices.
func (g *Geometry) Validate() error {
	nv := len(g.Vertices)
	if nv > MaxVertices {
		return fmt.Errorf("%w: %d", ErrTooManyVertices, nv)
	}
	for i, ix := range g.Indices {
		if int(ix) >= nv {
			return fmt.Errorf("%w: index %d at %d, %d vertices", ErrIndexRange, ix, i, nv)
		}
	}
	return nil
}

// BBox returns the bounding box of all the vertex positions.
func (g *Geometry) BBox() math32.Box3 {
	bb := math32.B3Empty()
	for i := range g.Vertices {
		bb.ExpandByPoint(g.Vertices[i].Pos)
	}
	return bb
}

// Shape is an interface for all shape-constructing elements
type Shape interface {

	// Size returns number of vertex, index points in this shape element
	Size() (numVertex, numIndex int)

	// SetOffsets sets starting offsets for vertices, indexes in full shape array,
	// in terms of points, not floats
	SetOffsets(vertexOffset, indexOffset int)

	// Set sets points in given allocated arrays
	Set(vertices []Vertex, indices []uint16)

	// BBox returns the bounding box for the shape, typically centered around 0.
	// This is only valid after Set has been called.
	BBox() math32.Box3
}

// validator is implemented by shapes whose parameters can be invalid.
type validator interface {
	Validate() error
}

// ShapeBase is the base shape element
type ShapeBase struct {

	// vertex offset, in points
	VertexOffset int

	// index offset, in points
	IndexOffset int

	// cubic bounding box in local coords
	CBBox math32.Box3

	// all shapes take a 3D position offset to enable composition
	Pos math32.Vector3
}

// SetOffsets sets starting offsets for vertices, indexes in full shape array
func (sb *ShapeBase) SetOffsets(vertexOffset, indexOffset int) {
	sb.VertexOffset, sb.IndexOffset = vertexOffset, indexOffset
}

// BBox returns the bounding box for the shape, typically centered around 0
// This is only valid after Set has been called.
func (sb *ShapeBase) BBox() math32.Box3 {
	return sb.CBBox
}

// Build allocates a [Geometry] sized for the given shape and fills it.
func Build(sh Shape) (*Geometry, error) {
	if v, ok := sh.(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	nv, ni := sh.Size()
	if nv > MaxVertices {
		return nil, fmt.Errorf("%w: %d", ErrTooManyVertices, nv)
	}
	g := &Geometry{
		Vertices: make([]Vertex, nv),
		Indices:  make([]uint16, ni),
	}
	sh.SetOffsets(0, 0)
	sh.Set(g.Vertices, g.Indices)
	return g, g.Validate()
}

// setQuad sets the 4 vertices of a planar quad in BL, BR, TR, TL order,
// and its two triangles, at the given offsets.
func setQuad(vertices []Vertex, indices []uint16, vo, io int, pos [4]math32.Vector3, uv [4]math32.Vector2, norm math32.Vector3, tris [6]uint16) math32.Box3 {
	bb := math32.B3Empty()
	for i := range 4 {
		vertices[vo+i] = Vertex{Pos: pos[i], TexCoord: uv[i], Normal: norm}
		bb.ExpandByPoint(pos[i])
	}
	for i, t := range tris {
		indices[io+i] = uint16(vo) + t
	}
	return bb
}
