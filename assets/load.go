// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"context"
	"fmt"
	"image"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sync"

	"cogentcore.org/scene3d/assets/obj"
	"cogentcore.org/scene3d/base/fsx"
	"cogentcore.org/scene3d/base/iox/imagex"
	"cogentcore.org/scene3d/scene"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// Loader decodes assets from a file system.
type Loader struct {
	FS fs.FS

	// Progress receives the progress bar; nil for none.
	Progress io.Writer
}

// NewLoader returns a loader for the given directory, with ~ expanded.
func NewLoader(dir string) (*Loader, error) {
	ep, err := fsx.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(ep); err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	return &Loader{FS: os.DirFS(ep), Progress: os.Stderr}, nil
}

// Texture decodes a texture file. An empty name returns nil.
func (ld *Loader) Texture(name string) (image.Image, error) {
	if name == "" {
		return nil, nil
	}
	img, _, err := imagex.OpenFS(ld.FS, name)
	if err != nil {
		return nil, fmt.Errorf("assets: texture %s: %w", name, err)
	}
	return img, nil
}

// Cubemap decodes the six sky box faces, or returns nil for an empty Dir.
func (ld *Loader) Cubemap(spec SkyboxSpec) ([]image.Image, error) {
	if spec.Dir == "" {
		return nil, nil
	}
	faces := make([]image.Image, len(SkyboxFaces))
	for i, face := range SkyboxFaces {
		img, err := ld.Texture(path.Join(spec.Dir, face+spec.Ext))
		if err != nil {
			return nil, err
		}
		if i > 0 && img.Bounds().Size() != faces[0].Bounds().Size() {
			return nil, fmt.Errorf("assets: sky box face %s is %v, not %v", face, img.Bounds().Size(), faces[0].Bounds().Size())
		}
		faces[i] = img
	}
	return faces, nil
}

// Model decodes an OBJ model and its diffuse textures, which are looked
// up relative to the model file. Missing textures are logged and skipped.
func (ld *Loader) Model(spec ModelSpec) (scene.ModelAsset, error) {
	m, err := obj.Open(ld.FS, spec.File, spec.Scale)
	if err != nil {
		return scene.ModelAsset{}, fmt.Errorf("assets: model: %w", err)
	}
	for _, w := range m.Warnings {
		slog.Debug("assets: obj", "file", spec.File, "warning", w)
	}
	ma := scene.ModelAsset{
		Name:       spec.File,
		Model:      m,
		Images:     map[string]image.Image{},
		Transforms: []scene.InstanceTransform{spec.Transform()},
	}
	dir := path.Dir(spec.File)
	for _, mat := range m.Materials {
		if mat.MapKd == "" || ma.Images[mat.MapKd] != nil {
			continue
		}
		img, err := ld.Texture(path.Join(dir, mat.MapKd))
		if err != nil {
			slog.Warn("assets: model texture skipped", "model", spec.File, "err", err)
			continue
		}
		ma.Images[mat.MapKd] = img
	}
	return ma, nil
}

// LoadAll decodes everything in the manifest in parallel.
// Only decoding happens here; GPU uploads happen when the scene is built.
func (ld *Loader) LoadAll(ctx context.Context, m *Manifest) (*scene.Assets, error) {
	as := &scene.Assets{
		FloorMips: m.Floor.Mips,
		Models:    make([]scene.ModelAsset, len(m.Models)),
	}
	n := 4 + len(m.Models)
	var bar *progressbar.ProgressBar
	if ld.Progress != nil {
		bar = progressbar.NewOptions(n,
			progressbar.OptionSetWriter(ld.Progress),
			progressbar.OptionSetDescription("loading assets"),
			progressbar.OptionClearOnFinish())
		defer bar.Close()
	}
	var mu sync.Mutex
	done := func() {
		if bar == nil {
			return
		}
		mu.Lock()
		bar.Add(1)
		mu.Unlock()
	}

	eg, ctx := errgroup.WithContext(ctx)
	texture := func(dst *image.Image, spec TextureSpec) {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := ld.Texture(spec.File)
			if err != nil {
				return err
			}
			*dst = img
			done()
			return nil
		})
	}
	texture(&as.Square, m.Square)
	texture(&as.Floor, m.Floor)
	texture(&as.Sphere, m.Sphere)
	eg.Go(func() error {
		faces, err := ld.Cubemap(m.Skybox)
		if err != nil {
			return err
		}
		as.Skybox = faces
		done()
		return nil
	})
	for i, spec := range m.Models {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ma, err := ld.Model(spec)
			if err != nil {
				return err
			}
			as.Models[i] = ma
			done()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	slog.Info("assets: loaded", "models", len(as.Models), "skybox", len(as.Skybox) > 0)
	return as, nil
}
