// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"

	"cogentcore.org/scene3d/base/errors"
	"cogentcore.org/scene3d/base/iox/imagex"
	"github.com/cogentcore/webgpu/wgpu"
)

// ShadowMapSize is the default width and height of each shadow map layer.
const ShadowMapSize = 2048

// Texture represents a WebGPU Texture with an associated TextureView,
// and optionally a Sampler.
// The WebGPU Texture is in device memory, in an optimized format.
type Texture struct {

	// Name of the texture, for debugging labels.
	// Is auto-set to filename if loaded from a file.
	Name string

	// Format & size of texture
	Format TextureFormat

	// WebGPU texture handle, in device memory
	texture *wgpu.Texture

	// WebGPU texture view of all layers
	view *wgpu.TextureView

	// per-layer 2D views, for render attachments into array layers
	layerViews []*wgpu.TextureView

	// sampler for reading the texture in shaders, if configured
	sampler *wgpu.Sampler

	// keep track of device for creating and writing
	device *Device
}

func NewTexture(dev *Device, name string) *Texture {
	tx := &Texture{Name: name, device: dev}
	tx.Format.Defaults()
	return tx
}

// View returns the texture view across all layers.
func (tx *Texture) View() *wgpu.TextureView { return tx.view }

// Sampler returns the sampler, nil unless configured.
func (tx *Texture) Sampler() *wgpu.Sampler { return tx.sampler }

// LayerView returns the 2D view of a single layer, for use as a
// render attachment.  Only set for textures configured by ConfigShadowArray.
func (tx *Texture) LayerView(layer int) *wgpu.TextureView {
	if layer < 0 || layer >= len(tx.layerViews) {
		return nil
	}
	return tx.layerViews[layer]
}

// SetFromGoImage sets texture data from a standard Go image,
// generating the full mip chain on the CPU if mips is true,
// and creates a repeating linear sampler for it.
func (tx *Texture) SetFromGoImage(img image.Image, mips bool) error {
	rimg := imagex.AsRGBA(img)
	chain := []*image.RGBA{rimg}
	if mips {
		chain = imagex.MipChain(rimg)
	}
	tx.Format.Size = rimg.Rect.Size()
	tx.Format.Format = wgpu.TextureFormatRGBA8UnormSrgb
	tx.Format.Layers = 1
	tx.Format.Samples = 1
	tx.Format.MipLevels = len(chain)

	err := tx.CreateTexture(wgpu.TextureUsageTextureBinding|wgpu.TextureUsageCopyDst, wgpu.TextureViewDimension2D)
	if err != nil {
		return err
	}
	for level, im := range chain {
		if err := tx.writeLevel(im, level, 0); err != nil {
			return err
		}
	}
	return tx.createSampler(&wgpu.SamplerDescriptor{
		Label:         tx.Name,
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
}

// SetFromGoImages sets a cube texture from 6 face images, in the order
// +X, -X, +Y, -Y, +Z, -Z.  All faces must be the same size.
func (tx *Texture) SetFromGoImages(faces []image.Image) error {
	if len(faces) != 6 {
		return fmt.Errorf("gpu: cube texture %q: need 6 faces, have %d", tx.Name, len(faces))
	}
	rfaces := make([]*image.RGBA, 6)
	for i, f := range faces {
		rfaces[i] = imagex.AsRGBA(f)
		if i > 0 && rfaces[i].Rect.Size() != rfaces[0].Rect.Size() {
			return fmt.Errorf("gpu: cube texture %q: face %d size %v != %v", tx.Name, i, rfaces[i].Rect.Size(), rfaces[0].Rect.Size())
		}
	}
	tx.Format.Size = rfaces[0].Rect.Size()
	tx.Format.Format = wgpu.TextureFormatRGBA8UnormSrgb
	tx.Format.Layers = 6
	tx.Format.Samples = 1
	tx.Format.MipLevels = 1
	err := tx.CreateTexture(wgpu.TextureUsageTextureBinding|wgpu.TextureUsageCopyDst, wgpu.TextureViewDimensionCube)
	if err != nil {
		return err
	}
	for i, f := range rfaces {
		if err := tx.writeLevel(f, 0, i); err != nil {
			return err
		}
	}
	return tx.createSampler(&wgpu.SamplerDescriptor{
		Label:         tx.Name,
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
}

// writeLevel uploads one mip level of one layer.
func (tx *Texture) writeLevel(im *image.RGBA, level, layer int) error {
	if tx.texture == nil {
		return fmt.Errorf("gpu: texture %q not created", tx.Name)
	}
	sz := im.Rect.Size()
	if im.Stride != 4*sz.X {
		im = imagex.CloneAsRGBA(im)
	}
	// https://www.w3.org/TR/webgpu/#gpuimagecopytexture
	tx.device.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Aspect:   wgpu.TextureAspectAll,
			Texture:  tx.texture,
			MipLevel: uint32(level),
			Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: uint32(layer)},
		},
		im.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  4 * uint32(sz.X),
			RowsPerImage: uint32(sz.Y),
		},
		&wgpu.Extent3D{Width: uint32(sz.X), Height: uint32(sz.Y), DepthOrArrayLayers: 1},
	)
	return nil
}

// CreateTexture creates the texture based on current settings,
// and a view of that texture with the given dimension.  Calls release first.
func (tx *Texture) CreateTexture(usage wgpu.TextureUsage, dim wgpu.TextureViewDimension) error {
	tx.Release()
	size := tx.Format.Extent3D()
	t, err := tx.device.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         tx.Name,
		Size:          size,
		MipLevelCount: uint32(max(1, tx.Format.MipLevels)),
		SampleCount:   uint32(max(1, tx.Format.Samples)),
		Dimension:     wgpu.TextureDimension2D,
		Format:        tx.Format.Format,
		Usage:         usage,
	})
	if errors.Log(err) != nil {
		return fmt.Errorf("gpu: texture %q: %w", tx.Name, err)
	}
	tx.texture = t
	vw, err := t.CreateView(&wgpu.TextureViewDescriptor{
		Label:           tx.Name,
		Format:          tx.Format.Format,
		Dimension:       dim,
		BaseMipLevel:    0,
		MipLevelCount:   uint32(max(1, tx.Format.MipLevels)),
		BaseArrayLayer:  0,
		ArrayLayerCount: size.DepthOrArrayLayers,
		Aspect:          wgpu.TextureAspectAll,
	})
	if errors.Log(err) != nil {
		return fmt.Errorf("gpu: texture view %q: %w", tx.Name, err)
	}
	tx.view = vw
	return nil
}

func (tx *Texture) createSampler(desc *wgpu.SamplerDescriptor) error {
	s, err := tx.device.Device.CreateSampler(desc)
	if errors.Log(err) != nil {
		return fmt.Errorf("gpu: sampler %q: %w", tx.Name, err)
	}
	tx.sampler = s
	return nil
}

// ConfigDepth configures this texture as a Depth32Float depth attachment
// of the given size and number of samples.
// If current texture is identical format, does not recreate.
func (tx *Texture) ConfigDepth(size image.Point, samples int) error {
	nfmt := TextureFormat{Size: size, Format: Depth32.TextureFormat(), Samples: max(1, samples), Layers: 1, MipLevels: 1}
	if tx.texture != nil && tx.Format == nfmt {
		return nil
	}
	tx.Format = nfmt
	return tx.CreateTexture(wgpu.TextureUsageRenderAttachment, wgpu.TextureViewDimension2D)
}

// ConfigMulti configures this texture as a multisampled color
// attachment of the given size, format and number of samples.
func (tx *Texture) ConfigMulti(size image.Point, format wgpu.TextureFormat, samples int) error {
	nfmt := TextureFormat{Size: size, Format: format, Samples: samples, Layers: 1, MipLevels: 1}
	if tx.texture != nil && tx.Format == nfmt {
		return nil
	}
	tx.Format = nfmt
	return tx.CreateTexture(wgpu.TextureUsageRenderAttachment, wgpu.TextureViewDimension2D)
}

// ConfigShadowArray configures this texture as an array of square
// Depth32Float shadow maps, one layer per light, with a 2D view
// of each layer for rendering and a comparison sampler for reading.
func (tx *Texture) ConfigShadowArray(size, layers int) error {
	tx.Format = TextureFormat{Size: image.Point{size, size}, Format: Depth32.TextureFormat(), Samples: 1, Layers: max(1, layers), MipLevels: 1}
	err := tx.CreateTexture(wgpu.TextureUsageRenderAttachment|wgpu.TextureUsageTextureBinding, wgpu.TextureViewDimension2DArray)
	if err != nil {
		return err
	}
	for i := range tx.Format.Layers {
		vw, err := tx.texture.CreateView(&wgpu.TextureViewDescriptor{
			Label:           fmt.Sprintf("%s layer %d", tx.Name, i),
			Format:          tx.Format.Format,
			Dimension:       wgpu.TextureViewDimension2D,
			BaseMipLevel:    0,
			MipLevelCount:   1,
			BaseArrayLayer:  uint32(i),
			ArrayLayerCount: 1,
			Aspect:          wgpu.TextureAspectAll,
		})
		if errors.Log(err) != nil {
			return fmt.Errorf("gpu: shadow layer view %d: %w", i, err)
		}
		tx.layerViews = append(tx.layerViews, vw)
	}
	return tx.createSampler(&wgpu.SamplerDescriptor{
		Label:         tx.Name,
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32,
		Compare:       wgpu.CompareFunctionLessEqual,
		MaxAnisotropy: 1,
	})
}

// ReleaseView destroys any existing views
func (tx *Texture) ReleaseView() {
	for _, lv := range tx.layerViews {
		lv.Release()
	}
	tx.layerViews = nil
	if tx.view == nil {
		return
	}
	tx.view.Release()
	tx.view = nil
}

// ReleaseTexture frees device memory version of texture that we own
func (tx *Texture) ReleaseTexture() {
	tx.ReleaseView()
	if tx.texture == nil {
		return
	}
	tx.texture.Release()
	tx.texture = nil
}

// Release destroys the texture, views and sampler.
func (tx *Texture) Release() {
	tx.ReleaseTexture()
	if tx.sampler != nil {
		tx.sampler.Release()
		tx.sampler = nil
	}
}
