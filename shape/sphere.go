// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"fmt"

	"cogentcore.org/scene3d/math32"
)

// Sphere is a UV sphere centered at the origin, with U segments
// around the Y axis (longitude) and V segments from the +Y pole
// to the -Y pole (latitude).
//
// Vertices are created lazily as the quads are walked and are
// memoized in a (U+1) x (V+1) grid, so adjacent quads share the
// vertex at each common corner.  Longitude slot U is stored
// separately from slot 0: the seam vertices are duplicated rather
// than welded, which gives the seam its own texture coordinate u=1.
type Sphere struct {
	ShapeBase

	Radius float32

	// U is the number of longitude segments (at least 2).
	U int

	// V is the number of latitude segments (at least 2).
	V int

	// grid holds the vertex index for each (longitude, latitude)
	// step, or -1 if not yet created.
	grid [][]int32
}

// NewSphere returns a [Sphere] with the given radius and numbers
// of longitude (u) and latitude (v) segments.
func NewSphere(radius float32, u, v int) *Sphere {
	return &Sphere{Radius: radius, U: u, V: v}
}

// Validate checks the segment counts and vertex budget.
func (sp *Sphere) Validate() error {
	if sp.U < 2 || sp.V < 2 {
		return fmt.Errorf("%w: u=%d v=%d", ErrSegments, sp.U, sp.V)
	}
	if nv, _ := sp.Size(); nv > MaxVertices {
		return fmt.Errorf("%w: %d", ErrTooManyVertices, nv)
	}
	return nil
}

func (sp *Sphere) Size() (numVertex, numIndex int) {
	return (sp.U + 1) * (sp.V + 1), 6 * sp.U * sp.V
}

// GridIndex returns the index of the vertex at the given longitude
// and latitude step, as assigned by the last call to Set, or -1.
func (sp *Sphere) GridIndex(i, j int) int {
	if sp.grid == nil || i < 0 || j < 0 || i > sp.U || j > sp.V {
		return -1
	}
	return int(sp.grid[i][j])
}

func (sp *Sphere) Set(vertices []Vertex, indices []uint16) {
	sp.grid = make([][]int32, sp.U+1)
	for i := range sp.grid {
		row := make([]int32, sp.V+1)
		for j := range row {
			row[j] = -1
		}
		sp.grid[i] = row
	}
	sp.CBBox = math32.B3Empty()
	next := sp.VertexOffset

	vertex := func(i, j int) uint16 {
		if ix := sp.grid[i][j]; ix >= 0 {
			return uint16(ix)
		}
		vx := sp.vertexAt(i, j)
		vertices[next] = vx
		sp.CBBox.ExpandByPoint(vx.Pos)
		sp.grid[i][j] = int32(next)
		next++
		return uint16(next - 1)
	}

	io := sp.IndexOffset
	for j := 0; j < sp.V; j++ {
		for i := 0; i < sp.U; i++ {
			p0 := vertex(i, j)
			p1 := vertex(i+1, j)
			p2 := vertex(i+1, j+1)
			p3 := vertex(i, j+1)
			indices[io] = p0
			indices[io+1] = p1
			indices[io+2] = p3
			indices[io+3] = p3
			indices[io+4] = p1
			indices[io+5] = p2
			io += 6
		}
	}
}

// vertexAt computes the vertex at longitude step i and latitude step j.
func (sp *Sphere) vertexAt(i, j int) Vertex {
	u := float32(i) / float32(sp.U)
	v := float32(j) / float32(sp.V)
	st, ct := math32.Sincos(2 * math32.Pi * u)
	sp2, cp := math32.Sincos(math32.Pi * v)
	norm := math32.Vec3(sp2*ct, cp, sp2*st)
	return Vertex{
		Pos:      sp.Pos.Add(norm.MulScalar(sp.Radius)),
		TexCoord: math32.Vec2(u, v),
		Normal:   norm,
	}
}
