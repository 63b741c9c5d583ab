// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration structs for scene3d,
// read from TOML or YAML files, and a watcher that reloads them.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"cogentcore.org/scene3d/assets"
	"cogentcore.org/scene3d/base/iox/tomlx"
	"cogentcore.org/scene3d/base/iox/yamlx"
	"cogentcore.org/scene3d/camera"
	"cogentcore.org/scene3d/math32"
	"cogentcore.org/scene3d/scene"
	"cogentcore.org/scene3d/shape"
	"github.com/jinzhu/copier"
)

// ErrFormat is returned for a config file that is neither TOML nor YAML.
var ErrFormat = errors.New("config: unsupported file extension")

// Config is the main config struct that contains all of the
// configuration options for scene3d.
type Config struct {

	// the window and render target
	Window Window `toml:"window" yaml:"window"`

	// the starting camera and its controller
	Camera Camera `toml:"camera" yaml:"camera"`

	// the lights, at most 4
	Lights []LightConfig `toml:"lights" yaml:"lights"`

	// the fixed scene layout
	Scene Scene `toml:"scene" yaml:"scene"`

	// the asset files
	Assets assets.Manifest `toml:"assets" yaml:"assets"`
}

type Window struct {

	// [def: 1280] the initial window width
	Width int `toml:"width" yaml:"width"`

	// [def: 720] the initial window height
	Height int `toml:"height" yaml:"height"`

	// [def: scene3d] the window title
	Title string `toml:"title" yaml:"title"`

	// [def: 4] the multisample count: 1 or 4
	Samples int `toml:"samples" yaml:"samples"`
}

type Camera struct {

	// [def: (0, 5, 10)] the starting position
	Position math32.Vector3 `toml:"position" yaml:"position"`

	// [def: -90] the starting yaw in degrees; -90 looks along -Z
	Yaw float32 `toml:"yaw" yaml:"yaw"`

	// [def: -20] the starting pitch in degrees
	Pitch float32 `toml:"pitch" yaml:"pitch"`

	// [def: 45] the vertical field of view in degrees
	FovY float32 `toml:"fov_y" yaml:"fov_y"`

	// [def: 0.1] the near clip plane
	Near float32 `toml:"near" yaml:"near"`

	// [def: 800] the far clip plane
	Far float32 `toml:"far" yaml:"far"`

	// [def: 4] the movement speed in units per second
	Speed float32 `toml:"speed" yaml:"speed"`

	// [def: 0.2] the mouse sensitivity
	Sensitivity float32 `toml:"sensitivity" yaml:"sensitivity"`
}

type Scene struct {

	// [def: -10] the height of the floor
	FloorHeight float32 `toml:"floor_height" yaml:"floor_height"`

	// [def: 3] the fewest sphere segments
	SphereMin int `toml:"sphere_min" yaml:"sphere_min"`

	// [def: 15] the number of seconds in one sphere animation cycle
	SpherePeriod int `toml:"sphere_period" yaml:"sphere_period"`
}

// Defaults returns the default configuration.
func Defaults() *Config {
	cam := camera.Defaults()
	opts := scene.DefaultOptions()
	return &Config{
		Window: Window{Width: 1280, Height: 720, Title: "scene3d", Samples: opts.Samples},
		Camera: Camera{
			Position:    cam.View.Position,
			Yaw:         cam.View.Yaw,
			Pitch:       cam.View.Pitch,
			FovY:        cam.Projection.FovY,
			Near:        cam.Projection.Near,
			Far:         cam.Projection.Far,
			Speed:       4,
			Sensitivity: 0.2,
		},
		Lights: []LightConfig{
			{
				Position:   math32.Vec3(40, 20, -40),
				Color:      math32.Vec4(1, 1, 1, 1),
				Marker:     "cube",
				MarkerSize: 10,
				Motion:     "orbit",
				Rate:       -100,
			},
			{
				AmbientStrength: 0.01,
				Color:           math32.Vec4(1, 1, 1, 0),
				CutoffInner:     4,
				CutoffOuter:     30,
				Marker:          "sphere",
				MarkerSize:      10,
				Motion:          "follow",
				Rate:            10,
			},
		},
		Scene:  Scene{FloorHeight: opts.FloorHeight, SphereMin: opts.Sphere.Min, SpherePeriod: opts.Sphere.Period},
		Assets: assets.DefaultManifest(),
	}
}

// Open reads the config file over the defaults. The format is chosen
// by the extension: .toml, or .yaml / .yml.
func Open(filename string) (*Config, error) {
	cfg := Defaults()
	// lights in the file replace the defaults rather than merging with them
	cfg.Lights = nil
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		err = tomlx.Open(cfg, filename)
	case ".yaml", ".yml":
		err = yamlx.Open(cfg, filename)
	default:
		return nil, fmt.Errorf("%w: %s", ErrFormat, filename)
	}
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	if cfg.Lights == nil {
		cfg.Lights = Defaults().Lights
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	return cfg, nil
}

// Save writes the config in the format given by the extension.
func (c *Config) Save(filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return tomlx.Save(c, filename)
	case ".yaml", ".yml":
		return yamlx.Save(c, filename)
	}
	return fmt.Errorf("%w: %s", ErrFormat, filename)
}

// Validate checks the values the scene cannot be built with.
func (c *Config) Validate() error {
	if c.Window.Samples != 1 && c.Window.Samples != 4 {
		return fmt.Errorf("config: samples must be 1 or 4, not %d", c.Window.Samples)
	}
	if len(c.Lights) > scene.MaxLights {
		return fmt.Errorf("config: %d lights, at most %d", len(c.Lights), scene.MaxLights)
	}
	for i := range c.Lights {
		if _, err := c.Lights[i].Uniform(); err != nil {
			return fmt.Errorf("config: light %d: %w", i, err)
		}
		if _, err := c.Lights[i].motion(); err != nil {
			return fmt.Errorf("config: light %d: %w", i, err)
		}
	}
	if c.Scene.SphereMin < 3 || c.Scene.SpherePeriod < 1 {
		return fmt.Errorf("config: sphere animation needs sphere_min >= 3 and sphere_period >= 1")
	}
	return nil
}

// NewCamera returns the camera at its configured start.
func (c *Config) NewCamera() *camera.Camera {
	cc := &c.Camera
	return camera.New(camera.View{Position: cc.Position, Yaw: cc.Yaw, Pitch: cc.Pitch},
		camera.Projection{Aspect: 1, FovY: cc.FovY, Near: cc.Near, Far: cc.Far})
}

// NewController returns the camera controller.
func (c *Config) NewController() *camera.Controller {
	return camera.NewController(c.Camera.Speed, c.Camera.Sensitivity)
}

// SceneOptions returns the scene options for this config.
func (c *Config) SceneOptions() (scene.Options, error) {
	opts := scene.DefaultOptions()
	opts.Samples = c.Window.Samples
	opts.FloorHeight = c.Scene.FloorHeight
	opts.Sphere.Min = c.Scene.SphereMin
	opts.Sphere.Period = c.Scene.SpherePeriod
	opts.Camera = c.NewCamera()
	opts.Controller = c.NewController()
	opts.Lights = nil
	for i := range c.Lights {
		sp, err := c.Lights[i].Spec()
		if err != nil {
			return opts, fmt.Errorf("config: light %d: %w", i, err)
		}
		opts.Lights = append(opts.Lights, sp)
	}
	return opts, nil
}

// LightUniforms returns the uniforms of all lights, for applying
// a reloaded config to running lights.
func (c *Config) LightUniforms() ([]scene.LightUniform, error) {
	us := make([]scene.LightUniform, len(c.Lights))
	for i := range c.Lights {
		u, err := c.Lights[i].Uniform()
		if err != nil {
			return nil, fmt.Errorf("config: light %d: %w", i, err)
		}
		us[i] = u
	}
	return us, nil
}

// LightConfig is one light. Zero values keep the defaults of
// [scene.DefaultLightUniform].
type LightConfig struct {
	Position math32.Vector3 `toml:"position" yaml:"position"`

	// the light color; alpha 0 hides the marker
	Color math32.Vector4 `toml:"color" yaml:"color"`

	DiffuseStrength  float32 `toml:"diffuse" yaml:"diffuse"`
	AmbientStrength  float32 `toml:"ambient" yaml:"ambient"`
	SpecularStrength float32 `toml:"specular" yaml:"specular"`

	// constant, linear and quadratic attenuation; W = 1 turns it on
	PointCLQ math32.Vector4 `toml:"clq" yaml:"clq"`

	// the spot cone angles in degrees; both 0 for a point light
	CutoffInner float32 `toml:"cutoff_inner" yaml:"cutoff_inner"`
	CutoffOuter float32 `toml:"cutoff_outer" yaml:"cutoff_outer"`

	// [def: cube] the marker shape: cube or sphere
	Marker string `toml:"marker" yaml:"marker"`

	// [def: 10] the marker size
	MarkerSize float32 `toml:"marker_size" yaml:"marker_size"`

	// how the light moves: orbit, follow, or empty for fixed
	Motion string `toml:"motion" yaml:"motion"`

	// degrees per second for orbit, distance for follow
	Rate float32 `toml:"rate" yaml:"rate"`
}

// Uniform returns the light uniform: the defaults, overridden by the
// non-zero fields with matching names, and the cone from the cutoff angles.
func (lc *LightConfig) Uniform() (scene.LightUniform, error) {
	lu := scene.DefaultLightUniform()
	if err := copier.CopyWithOption(&lu, lc, copier.Option{IgnoreEmpty: true}); err != nil {
		return lu, err
	}
	lu.Direction = lu.Position
	if lc.CutoffInner != 0 || lc.CutoffOuter != 0 {
		cut, err := scene.Cutoff(lc.CutoffInner, lc.CutoffOuter)
		if err != nil {
			return lu, err
		}
		lu.Cutoff = cut
	}
	return lu, nil
}

func (lc *LightConfig) marker() shape.Shape {
	size := lc.MarkerSize
	if size <= 0 {
		size = 10
	}
	if lc.Marker == "sphere" {
		return shape.NewSphere(size, 20, 20)
	}
	return shape.NewCube(size)
}

func (lc *LightConfig) motion() (scene.LightMotion, error) {
	switch lc.Motion {
	case "":
		return nil, nil
	case "orbit":
		return scene.OrbitY{DegPerSec: lc.Rate}, nil
	case "follow":
		return scene.FollowCamera{Distance: lc.Rate}, nil
	}
	return nil, fmt.Errorf("unknown motion %q", lc.Motion)
}

// Spec returns the light as the scene builds it.
func (lc *LightConfig) Spec() (scene.LightSpec, error) {
	lu, err := lc.Uniform()
	if err != nil {
		return scene.LightSpec{}, err
	}
	mo, err := lc.motion()
	if err != nil {
		return scene.LightSpec{}, err
	}
	return scene.LightSpec{Uniform: lu, Marker: lc.marker(), Motion: mo}, nil
}
