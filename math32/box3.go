// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Box3 is an axis-aligned bounding box in model space.
type Box3 struct {
	Min Vector3
	Max Vector3
}

// B3 returns a [Box3] spanning the two corners.
func B3(x0, y0, z0, x1, y1, z1 float32) Box3 {
	return Box3{Vec3(x0, y0, z0), Vec3(x1, y1, z1)}
}

// B3Empty returns an empty box that any point expands.
func B3Empty() Box3 {
	return Box3{Min: Vec3(Infinity, Infinity, Infinity), Max: Vec3(-Infinity, -Infinity, -Infinity)}
}

// IsEmpty reports whether Max < Min on any axis.
func (b Box3) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// ExpandByPoint grows the box to contain p.
func (b *Box3) ExpandByPoint(p Vector3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// ExpandByBox grows the box to contain o. Empty boxes are ignored.
func (b *Box3) ExpandByBox(o Box3) {
	if o.IsEmpty() {
		return
	}
	b.ExpandByPoint(o.Min)
	b.ExpandByPoint(o.Max)
}

// Center is the midpoint of the box.
func (b Box3) Center() Vector3 {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

// Size is the extent along each axis.
func (b Box3) Size() Vector3 {
	return b.Max.Sub(b.Min)
}
