// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/scene3d/math32"
	"cogentcore.org/scene3d/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 4, cfg.Window.Samples)
	assert.Equal(t, float32(-10), cfg.Scene.FloorHeight)
	require.Len(t, cfg.Lights, 2)

	opts, err := cfg.SceneOptions()
	require.NoError(t, err)
	require.Len(t, opts.Lights, 2)
	def := scene.DefaultOptions()
	assert.Equal(t, def.Lights[0].Uniform, opts.Lights[0].Uniform)
	assert.Equal(t, def.Lights[1].Uniform, opts.Lights[1].Uniform)
	assert.Equal(t, def.Lights[0].Motion, opts.Lights[0].Motion)
	assert.Equal(t, def.Lights[1].Motion, opts.Lights[1].Motion)
	assert.Equal(t, def.Camera.View, opts.Camera.View)
}

func TestLightUniform(t *testing.T) {
	lc := LightConfig{Color: math32.Vec4(1, 0, 0, 1), DiffuseStrength: 0.5}
	lu, err := lc.Uniform()
	require.NoError(t, err)
	def := scene.DefaultLightUniform()
	assert.Equal(t, math32.Vec4(1, 0, 0, 1), lu.Color)
	assert.Equal(t, float32(0.5), lu.DiffuseStrength)
	assert.Equal(t, def.AmbientStrength, lu.AmbientStrength)
	assert.Equal(t, def.Position, lu.Position)
	assert.Equal(t, lu.Position, lu.Direction)
	assert.Equal(t, float32(0), lu.Cutoff.W)

	lc.CutoffInner, lc.CutoffOuter = 30, 4
	_, err = lc.Uniform()
	assert.ErrorIs(t, err, scene.ErrCutoff)
}

func TestLightSpec(t *testing.T) {
	lc := LightConfig{Motion: "spin"}
	_, err := lc.Spec()
	assert.Error(t, err)

	lc = LightConfig{}
	sp, err := lc.Spec()
	require.NoError(t, err)
	assert.Nil(t, sp.Motion)
	nv, ni := sp.Marker.Size()
	assert.Equal(t, 8, nv)
	assert.Equal(t, 36, ni)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.Window.Samples = 2
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	for range scene.MaxLights {
		cfg.Lights = append(cfg.Lights, LightConfig{})
	}
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.Scene.SphereMin = 2
	assert.Error(t, cfg.Validate())
}

const tomlConfig = `
[window]
samples = 1
title = "test"

[scene]
floor_height = -5

[[lights]]
color = { x = 0, y = 1, z = 0, w = 1 }
motion = "orbit"
rate = 45
`

const yamlConfig = `
window:
  samples: 1
lights:
  - cutoff_inner: 10
    cutoff_outer: 20
    motion: follow
    rate: 5
assets:
  dir: /tmp/assets
  skybox:
    dir: ""
`

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tf := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(tf, []byte(tomlConfig), 0o644))
	cfg, err := Open(tf)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Window.Samples)
	assert.Equal(t, "test", cfg.Window.Title)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, float32(-5), cfg.Scene.FloorHeight)
	require.Len(t, cfg.Lights, 1)
	assert.Equal(t, math32.Vec4(0, 1, 0, 1), cfg.Lights[0].Color)

	yf := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(yf, []byte(yamlConfig), 0o644))
	cfg, err = Open(yf)
	require.NoError(t, err)
	require.Len(t, cfg.Lights, 1)
	assert.Equal(t, "follow", cfg.Lights[0].Motion)
	assert.Equal(t, "/tmp/assets", cfg.Assets.Dir)
	assert.Equal(t, "", cfg.Assets.Skybox.Dir)

	_, err = Open(filepath.Join(dir, "scene.json"))
	assert.ErrorIs(t, err, ErrFormat)
	_, err = Open(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestSaveOpen(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.toml", "out.yaml"} {
		fn := filepath.Join(dir, name)
		cfg := Defaults()
		cfg.Scene.SpherePeriod = 7
		require.NoError(t, cfg.Save(fn), name)
		got, err := Open(fn)
		require.NoError(t, err, name)
		assert.Equal(t, cfg, got, name)
	}
	assert.ErrorIs(t, Defaults().Save(filepath.Join(dir, "out.ini")), ErrFormat)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(fn, []byte(tomlConfig), 0o644))
	w, err := Watch(fn)
	require.NoError(t, err)
	defer w.Close()

	// a sibling file is ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644))
	changed := tomlConfig + "\n[camera]\nspeed = 9\n"
	require.NoError(t, os.WriteFile(fn, []byte(changed), 0o644))

	// a write can be seen half done, so wait for the final content
	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-w.C:
			if cfg.Camera.Speed == 9 {
				return
			}
		case <-timeout:
			t.Fatal("no updated config received")
		}
	}
}
