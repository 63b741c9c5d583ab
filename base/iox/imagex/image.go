// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"image"
	"image/draw"
	"math/bits"

	"github.com/anthonynsimon/bild/transform"
)

// CloneAsRGBA returns an RGBA copy of the supplied image.
func CloneAsRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	bounds := src.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(img, img.Bounds(), src, bounds.Min, draw.Src)
	return img
}

// AsRGBA returns the image as an RGBA: if it already is one
// with a zero origin and tight stride, then it returns that image
// directly. Otherwise it returns a clone.
func AsRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba
	}
	return CloneAsRGBA(src)
}

// MipLevels returns the number of mip levels in a full chain
// for an image of the given size, down to 1x1.
func MipLevels(size image.Point) int {
	mx := max(size.X, size.Y)
	if mx <= 0 {
		return 0
	}
	return bits.Len(uint(mx))
}

// MipChain returns the full mip chain for the given image, starting
// with the image itself at level 0.  Each level halves the previous
// size (never below 1) and is resampled with a linear filter.
func MipChain(src *image.RGBA) []*image.RGBA {
	sz := src.Rect.Size()
	n := MipLevels(sz)
	chain := make([]*image.RGBA, 0, n)
	chain = append(chain, src)
	prev := src
	for i := 1; i < n; i++ {
		sz.X = max(sz.X/2, 1)
		sz.Y = max(sz.Y/2, 1)
		prev = transform.Resize(prev, sz.X, sz.Y, transform.Linear)
		chain = append(chain, prev)
	}
	return chain
}
