// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/scene3d/camera"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	ctl := camera.NewController(4, 0.2)
	in := newInput(nil, ctl)
	assert.True(t, in.key(glfw.KeyW, glfw.Press))
	assert.False(t, in.key(glfw.KeyQ, glfw.Press))

	vw := camera.View{Yaw: -90}
	ctl.Update(&vw, time.Second)
	assert.InDelta(t, -4, vw.Position.Z, 1e-4)

	in.key(glfw.KeyW, glfw.Release)
	in.key(glfw.KeySpace, glfw.Press)
	vw = camera.View{Yaw: -90}
	ctl.Update(&vw, time.Second)
	assert.InDelta(t, 0, vw.Position.Z, 1e-4)
	assert.InDelta(t, 4, vw.Position.Y, 1e-4)
}

func TestMouseGrab(t *testing.T) {
	ctl := camera.NewController(4, 0.2)
	in := newInput(nil, ctl)
	in.motion(10, 10)
	in.motion(50, 10)
	vw := camera.View{Yaw: -90}
	ctl.Update(&vw, time.Second)
	assert.Equal(t, float32(-90), vw.Yaw)

	in.setGrab(true)
	in.motion(100, 100)
	in.motion(110, 100)
	ctl.Update(&vw, time.Second)
	assert.Greater(t, vw.Yaw, float32(-90))

	assert.True(t, in.key(glfw.KeyEscape, glfw.Press))
	assert.False(t, in.grab)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(&options{assets: "res", samples: 1}, true)
	require.NoError(t, err)
	assert.Equal(t, "res", cfg.Assets.Dir)
	assert.Equal(t, 1, cfg.Window.Samples)

	cfg, err = loadConfig(&options{samples: 2}, false)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Window.Samples)

	_, err = loadConfig(&options{samples: 2}, true)
	assert.Error(t, err)

	dir := t.TempDir()
	fn := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(fn, []byte("[assets]\ndir = \"data\"\n"), 0o644))
	cfg, err = loadConfig(&options{config: fn}, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.Assets.Dir)
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "assets", "samples", "watch", "verbose", "vv", "quiet"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}
