// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 255 / w), uint8(y * 255 / h), 128, 255})
		}
	}
	return img
}

func TestReadPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(testImage(8, 4), &buf, PNG))
	img, f, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, PNG, f)
	assert.Equal(t, image.Pt(8, 4), img.Bounds().Size())
}

func TestSaveOpen(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "tex.bmp")
	require.NoError(t, Save(testImage(4, 4), fn))
	img, f, err := Open(fn)
	require.NoError(t, err)
	assert.Equal(t, BMP, f)
	assert.Equal(t, image.Pt(4, 4), img.Bounds().Size())
}

func TestSniff(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(testImage(2, 2), &buf, JPEG))
	f, err := Sniff(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, JPEG, f)

	zip := []byte{'P', 'K', 0x03, 0x04, 0x14, 0x00, 0x00, 0x00}
	_, err = Sniff(zip)
	assert.ErrorIs(t, err, ErrNotImage)

	_, _, err = Read(bytes.NewReader(zip))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestExtToFormat(t *testing.T) {
	f, err := ExtToFormat(".JPG")
	assert.NoError(t, err)
	assert.Equal(t, JPEG, f)
	_, err = ExtToFormat("")
	assert.Error(t, err)
	_, err = ExtToFormat("obj")
	assert.Error(t, err)
	assert.Equal(t, "webp", WebP.String())
}

func TestAsRGBA(t *testing.T) {
	img := testImage(4, 4)
	assert.Same(t, img, AsRGBA(img))

	sub := img.SubImage(image.Rect(1, 1, 3, 3))
	rgba := AsRGBA(sub)
	assert.NotSame(t, img, rgba)
	assert.Equal(t, image.Rect(0, 0, 2, 2), rgba.Rect)
	assert.Equal(t, img.RGBAAt(1, 1), rgba.RGBAAt(0, 0))
}

func TestMipChain(t *testing.T) {
	assert.Equal(t, 9, MipLevels(image.Pt(256, 128)))
	assert.Equal(t, 1, MipLevels(image.Pt(1, 1)))
	assert.Equal(t, 0, MipLevels(image.Point{}))

	chain := MipChain(testImage(16, 4))
	require.Len(t, chain, 5)
	sizes := []image.Point{{16, 4}, {8, 2}, {4, 1}, {2, 1}, {1, 1}}
	for i, m := range chain {
		assert.Equal(t, sizes[i], m.Rect.Size(), "level %d", i)
	}
}
