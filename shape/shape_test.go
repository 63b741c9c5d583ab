// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"testing"

	"cogentcore.org/scene3d/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1.0e-4

func TestSquare(t *testing.T) {
	g, err := Build(NewSquare(26, 40))
	require.NoError(t, err)
	require.Len(t, g.Vertices, 4)
	assert.Equal(t, []uint16{0, 1, 2, 2, 3, 0}, g.Indices)
	for _, v := range g.Vertices {
		assert.Contains(t, []float32{20, -20}, v.Pos.X)
		assert.Contains(t, []float32{13, -13}, v.Pos.Y)
		assert.Equal(t, float32(0), v.Pos.Z)
		assert.Equal(t, math32.Vec3(0, 0, 1), v.Normal)
	}
	bb := g.BBox()
	assert.Equal(t, math32.Vec3(-20, -13, 0), bb.Min)
	assert.Equal(t, math32.Vec3(20, 13, 0), bb.Max)
}

func TestSquareSymmetric(t *testing.T) {
	for _, sz := range [][2]float32{{1, 1}, {2, 7}, {10, 0.5}} {
		h, w := sz[0], sz[1]
		g, err := Build(NewSquare(h, w))
		require.NoError(t, err)
		bb := g.BBox()
		assert.Equal(t, w/2, bb.Max.X)
		assert.Equal(t, -w/2, bb.Min.X)
		assert.Equal(t, h/2, bb.Max.Y)
		assert.Equal(t, -h/2, bb.Min.Y)
		// each vertex shares exactly one coordinate with each neighbor: axis aligned
		for i := range 4 {
			a := g.Vertices[i].Pos
			b := g.Vertices[(i+1)%4].Pos
			assert.True(t, a.X == b.X || a.Y == b.Y)
		}
	}
}

// windingZ returns the z component of the triangle normal.
func windingZ(g *Geometry, tri []uint16) float32 {
	a := g.Vertices[tri[0]].Pos
	b := g.Vertices[tri[1]].Pos
	c := g.Vertices[tri[2]].Pos
	return b.Sub(a).Cross(c.Sub(a)).Z
}

func TestPlaneAndFloorWinding(t *testing.T) {
	pl, err := Build(NewPlane(8))
	require.NoError(t, err)
	fl, err := Build(NewFloor(2800, 2800))
	require.NoError(t, err)
	for _, g := range []*Geometry{pl, fl} {
		for i := 0; i < len(g.Indices); i += 3 {
			assert.Greater(t, windingZ(g, g.Indices[i:i+3]), float32(0))
		}
	}
	assert.Equal(t, math32.Vec3(8, 8, 0), pl.BBox().Max)
	// floor texture repeats
	maxUV := float32(0)
	for _, v := range fl.Vertices {
		maxUV = math32.Max(maxUV, v.TexCoord.X)
	}
	assert.Equal(t, float32(28), maxUV)
}

func TestCube(t *testing.T) {
	g, err := Build(NewCube(10))
	require.NoError(t, err)
	assert.Len(t, g.Vertices, 8)
	assert.Len(t, g.Indices, 36)

	axes := []struct {
		dim  math32.Dims
		sign float32
	}{{math32.Z, 1}, {math32.Z, -1}, {math32.X, 1}, {math32.X, -1}, {math32.Y, 1}, {math32.Y, -1}}
	for f, ax := range axes {
		tris := g.Indices[f*6 : f*6+6]
		quad := map[uint16]bool{}
		for _, ix := range tris {
			pos := g.Vertices[ix].Pos
			// every vertex of the face lies in the face's plane
			assert.Equal(t, ax.sign*5, pos.Dim(ax.dim), "face %d", f)
			quad[ix] = true
		}
		assert.Len(t, quad, 4, "face %d", f)
		// outward facing, counter-clockwise
		for i := 0; i < 6; i += 3 {
			a := g.Vertices[tris[i]].Pos
			b := g.Vertices[tris[i+1]].Pos
			c := g.Vertices[tris[i+2]].Pos
			n := b.Sub(a).Cross(c.Sub(a))
			assert.Greater(t, n.Dim(ax.dim)*ax.sign, float32(0), "face %d", f)
		}
	}
	// front and back corners have the shared face normals
	assert.Equal(t, math32.Vec3(0, 0, 1), g.Vertices[0].Normal)
	assert.Equal(t, math32.Vec3(0, 0, -1), g.Vertices[7].Normal)
}

func TestSphereScenario(t *testing.T) {
	g, err := Build(NewSphere(10, 3, 2))
	require.NoError(t, err)
	assert.Len(t, g.Indices, 36)
	for _, v := range g.Vertices {
		assert.InDelta(t, 10, v.Pos.Length(), tol)
	}
}

func TestSphereCounts(t *testing.T) {
	for u := 2; u <= 20; u++ {
		for v := 2; v <= 20; v += 3 {
			g, err := Build(NewSphere(3.5, u, v))
			require.NoError(t, err)
			assert.Len(t, g.Indices, 6*u*v)
			assert.Len(t, g.Vertices, (u+1)*(v+1))
			for _, ix := range g.Indices {
				assert.Less(t, int(ix), len(g.Vertices))
			}
			for _, vx := range g.Vertices {
				assert.InDelta(t, 3.5, vx.Pos.Length(), tol)
				assert.InDelta(t, 1, vx.Normal.Length(), tol)
			}
		}
	}
}

func TestSphereSharedAndSeam(t *testing.T) {
	sp := NewSphere(1, 4, 3)
	g, err := Build(sp)
	require.NoError(t, err)

	// interior corners are shared: every grid slot got one vertex
	seen := map[int]bool{}
	for i := 0; i <= 4; i++ {
		for j := 0; j <= 3; j++ {
			ix := sp.GridIndex(i, j)
			require.GreaterOrEqual(t, ix, 0)
			assert.False(t, seen[ix])
			seen[ix] = true
		}
	}
	assert.Len(t, seen, len(g.Vertices))

	// seam vertices are duplicated, not welded
	for j := 0; j <= 3; j++ {
		a := g.Vertices[sp.GridIndex(0, j)]
		b := g.Vertices[sp.GridIndex(4, j)]
		assert.NotEqual(t, sp.GridIndex(0, j), sp.GridIndex(4, j))
		assert.InDelta(t, a.Pos.X, b.Pos.X, tol)
		assert.InDelta(t, a.Pos.Y, b.Pos.Y, tol)
		assert.InDelta(t, a.Pos.Z, b.Pos.Z, tol)
		assert.Equal(t, float32(0), a.TexCoord.X)
		assert.Equal(t, float32(1), b.TexCoord.X)
	}
	assert.Equal(t, -1, sp.GridIndex(5, 0))
}

func TestSphereWindingOutward(t *testing.T) {
	g, err := Build(NewSphere(2, 12, 8))
	require.NoError(t, err)
	for i := 0; i < len(g.Indices); i += 3 {
		a := g.Vertices[g.Indices[i]].Pos
		b := g.Vertices[g.Indices[i+1]].Pos
		c := g.Vertices[g.Indices[i+2]].Pos
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Length() < 1.0e-6 { // degenerate at the poles
			continue
		}
		center := a.Add(b).Add(c).MulScalar(1.0 / 3)
		assert.Greater(t, n.Dot(center), float32(0), "triangle %d", i/3)
	}
}

func TestSphereErrors(t *testing.T) {
	_, err := Build(NewSphere(1, 1, 5))
	assert.ErrorIs(t, err, ErrSegments)
	_, err = Build(NewSphere(1, 5, 1))
	assert.ErrorIs(t, err, ErrSegments)
	_, err = Build(NewSphere(1, 300, 300))
	assert.ErrorIs(t, err, ErrTooManyVertices)
}

func TestShapeGroup(t *testing.T) {
	sq := NewSquare(2, 2)
	cb := NewCube(1)
	cb.Pos = math32.Vec3(0, 0, 5)
	gp := NewShapeGroup(sq, cb)
	g, err := Build(gp)
	require.NoError(t, err)
	assert.Len(t, g.Vertices, 12)
	assert.Len(t, g.Indices, 42)
	// cube indices are offset past the square's vertices
	for _, ix := range g.Indices[6:] {
		assert.GreaterOrEqual(t, ix, uint16(4))
	}
	assert.Equal(t, float32(5.5), gp.BBox().Max.Z)
	assert.Equal(t, float32(-1), gp.BBox().Min.X)

	_, err = Build(NewShapeGroup(sq, NewSphere(1, 0, 0)))
	assert.ErrorIs(t, err, ErrSegments)
}

func TestValidate(t *testing.T) {
	g := &Geometry{Vertices: make([]Vertex, 3), Indices: []uint16{0, 1, 3}}
	assert.ErrorIs(t, g.Validate(), ErrIndexRange)
	g.Indices[2] = 2
	assert.NoError(t, g.Validate())
	assert.Equal(t, uint32(3), g.NumIndices())
}
