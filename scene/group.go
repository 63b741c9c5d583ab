// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

// RenderGroup is a unit that records its own draw commands into a pass.
// Groups decide for themselves what to draw in each kind of pass.
type RenderGroup interface {
	Render(pass Pass)
}

// RenderGroups draws every group, in order. There is no culling.
type RenderGroups []RenderGroup

func (rg RenderGroups) Render(pass Pass) {
	for _, g := range rg {
		g.Render(pass)
	}
}
