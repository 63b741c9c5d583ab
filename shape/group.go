// Copyright 2022 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "cogentcore.org/scene3d/math32"

// ShapeGroup is a group of shapes, set one after another into
// the same vertex and index arrays.
type ShapeGroup struct {
	ShapeBase

	// list of shapes in group
	Shapes []Shape
}

// NewShapeGroup returns a group of the given shapes.
func NewShapeGroup(shapes ...Shape) *ShapeGroup {
	return &ShapeGroup{Shapes: shapes}
}

// Validate validates each shape in the group that can be validated.
func (sb *ShapeGroup) Validate() error {
	for _, sh := range sb.Shapes {
		if v, ok := sh.(validator); ok {
			if err := v.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Size returns number of vertex, index points in this shape element.
func (sb *ShapeGroup) Size() (numVertex, numIndex int) {
	for _, sh := range sb.Shapes {
		nv, ni := sh.Size()
		numVertex += nv
		numIndex += ni
	}
	return
}

// Set sets points in given allocated arrays, also updates offsets
func (sb *ShapeGroup) Set(vertices []Vertex, indices []uint16) {
	vo := sb.VertexOffset
	io := sb.IndexOffset
	sb.CBBox = math32.B3Empty()
	for _, sh := range sb.Shapes {
		sh.SetOffsets(vo, io)
		sh.Set(vertices, indices)
		sb.CBBox.ExpandByBox(sh.BBox())
		nv, ni := sh.Size()
		vo += nv
		io += ni
	}
}
