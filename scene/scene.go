// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"cogentcore.org/scene3d/assets/obj"
	"cogentcore.org/scene3d/base/errors"
	"cogentcore.org/scene3d/camera"
	"cogentcore.org/scene3d/gpu"
	"cogentcore.org/scene3d/math32"
	"cogentcore.org/scene3d/shape"
)

// Options are the scene parameters that are not assets.
type Options struct {
	// Samples is the multisample count of the color pass.
	Samples int

	// FloorHeight is the y of the floor, which the square sits on.
	FloorHeight float32

	ClearColor color.Color

	Lights []LightSpec

	// SpherePos is where the animated sphere is drawn.
	SpherePos math32.Vector3
	Sphere    SphereAnimation

	Camera     *camera.Camera
	Controller *camera.Controller
}

// DefaultOptions returns the default scene: 4x multisampling, the floor
// at -10, an orbiting white point light and a spot light that follows
// the camera.
func DefaultOptions() Options {
	return Options{
		Samples:     4,
		FloorHeight: -10,
		ClearColor:  color.RGBA{25, 51, 76, 255},
		Lights:      DefaultLights(),
		SpherePos:   math32.Vec3(60, 5, -15),
		Sphere:      *NewSphereAnimation(),
		Camera:      camera.Defaults(),
		Controller:  camera.NewController(4, 0.2),
	}
}

// DefaultLights returns the two default lights.
func DefaultLights() []LightSpec {
	point := DefaultLightUniform()
	point.Color = math32.Vec4(1, 1, 1, 1)

	spot := DefaultLightUniform()
	spot.AmbientStrength = 0.01
	spot.Cutoff = errors.Must1(Cutoff(4, 30))
	return []LightSpec{
		{Uniform: point, Marker: shape.NewCube(10), Motion: OrbitY{DegPerSec: -100}},
		{Uniform: spot, Marker: shape.NewSphere(10, 20, 20), Motion: FollowCamera{Distance: 10}},
	}
}

// Assets are the decoded images and models the scene is built from.
// Nil images are drawn with a white texture.
type Assets struct {
	Square image.Image
	Floor  image.Image
	Sphere image.Image

	// FloorMips generates a mip chain for the floor texture.
	FloorMips bool

	// Skybox holds the six cube faces, or is empty for no sky box.
	Skybox []image.Image

	Models []ModelAsset
}

// ModelAsset is a decoded model, its textures keyed by file name,
// and where to draw it.
type ModelAsset struct {
	Name       string
	Model      *obj.Model
	Images     map[string]image.Image
	Transforms []InstanceTransform
}

// Scene is everything drawn each frame.
type Scene struct {
	Camera     *camera.Camera
	Controller *camera.Controller

	Shared  *Shared
	Lights  *LightGroup
	Shadows *ShadowMap
	Skybox  *Skybox

	Square *GeoRenderGroup
	Floor  *GeoRenderGroup
	Sphere *GeoRenderGroup
	Models []*ModelRenderGroup

	// Groups is the draw order.
	Groups RenderGroups

	SphereAnim *SphereAnimation

	Render  *gpu.Render
	Surface *gpu.Surface
}

// New builds the scene for the given surface.
func New(dev *gpu.Device, sf *gpu.Surface, opts Options, as *Assets) (*Scene, error) {
	sc := &Scene{Camera: opts.Camera, Controller: opts.Controller, Surface: sf}
	if sc.Camera == nil {
		sc.Camera = camera.Defaults()
	}
	if sc.Controller == nil {
		sc.Controller = camera.NewController(4, 0.2)
	}
	anim := opts.Sphere
	sc.SphereAnim = &anim
	size := sf.Format.Size
	sc.Camera.Projection.Resize(size.X, size.Y)

	var err error
	if sc.Render, err = gpu.NewRender(dev, size, sf.Format.Format, opts.Samples); err != nil {
		return nil, err
	}
	if opts.ClearColor != nil {
		sc.Render.ClearColor = opts.ClearColor
	}
	if err := sc.build(dev, sf, opts, as); err != nil {
		sc.Release()
		return nil, err
	}
	slog.Info("scene: built", "groups", len(sc.Groups), "lights", len(sc.Lights.Lights), "models", len(sc.Models))
	return sc, nil
}

func (sc *Scene) build(dev *gpu.Device, sf *gpu.Surface, opts Options, as *Assets) error {
	var err error
	if sc.Shared, err = NewShared(dev, sf.Format.Format, sc.Render.Samples); err != nil {
		return err
	}
	sh := sc.Shared
	if sc.Lights, err = NewLightGroup(sh, opts.Lights); err != nil {
		return err
	}
	if sc.Shadows, err = NewShadowMap(sh, sc.Lights); err != nil {
		return err
	}
	if len(as.Skybox) > 0 {
		if sc.Skybox, err = NewSkybox(sh, as.Skybox); err != nil {
			return err
		}
		sc.Groups = append(sc.Groups, sc.Skybox)
	}
	sc.Groups = append(sc.Groups, sc.Lights)

	floor := opts.FloorHeight
	sc.Square, err = sc.geoGroup("square", shape.NewSquare(26, 40), as.Square, false,
		NewInstanceTransform(math32.Vec3(0, 13+floor, -40)))
	if err != nil {
		return err
	}
	flat := NewInstanceTransform(math32.Vec3(0, floor, 0))
	flat.Rot = math32.NewQuatAxisAngle(math32.Vec3(1, 0, 0), math32.DegToRad(-90))
	if sc.Floor, err = sc.geoGroup("floor", shape.NewFloor(2800, 2800), as.Floor, as.FloorMips, flat); err != nil {
		return err
	}
	sc.Groups = append(sc.Groups, sc.Square, sc.Floor)

	for _, ma := range as.Models {
		md, err := NewModel(sh, ma.Model, ma.Images)
		if err != nil {
			return err
		}
		inst, err := NewInstances(dev, ma.Name, ma.Transforms...)
		if err != nil {
			md.Release()
			return err
		}
		mr := NewModelRenderGroup(sh, md, inst)
		sc.Models = append(sc.Models, mr)
		sc.Groups = append(sc.Groups, mr)
	}

	geom, err := sc.SphereAnim.Update(0)
	if err != nil {
		return fmt.Errorf("scene: sphere: %w", err)
	}
	if sc.Sphere, err = sc.geoGroupGeom("sphere", geom, as.Sphere, false, NewInstanceTransform(opts.SpherePos)); err != nil {
		return err
	}
	sc.Groups = append(sc.Groups, sc.Sphere)
	return nil
}

func (sc *Scene) geoGroup(name string, shp shape.Shape, img image.Image, mips bool, transforms ...InstanceTransform) (*GeoRenderGroup, error) {
	geom, err := shape.Build(shp)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", name, err)
	}
	return sc.geoGroupGeom(name, geom, img, mips, transforms...)
}

func (sc *Scene) geoGroupGeom(name string, geom *shape.Geometry, img image.Image, mips bool, transforms ...InstanceTransform) (*GeoRenderGroup, error) {
	sh := sc.Shared
	var tex *gpu.Texture
	if img != nil {
		tex = gpu.NewTexture(sh.Device, name)
		if err := tex.SetFromGoImage(img, mips); err != nil {
			tex.Release()
			return nil, fmt.Errorf("scene: %s texture: %w", name, err)
		}
	}
	en, err := NewEntity(sh, name, geom, tex)
	if err != nil {
		if tex != nil {
			tex.Release()
		}
		return nil, err
	}
	inst, err := NewInstances(sh.Device, name, transforms...)
	if err != nil {
		en.Release()
		return nil, err
	}
	return NewGeoRenderGroup(sh, en, inst), nil
}

// Update advances the camera, the lights and the sphere animation
// and uploads the results.
func (sc *Scene) Update(dt, elapsed time.Duration) error {
	sc.Controller.Update(&sc.Camera.View, dt)
	if err := sc.Shared.WriteCamera(sc.Camera.Uniform()); err != nil {
		return err
	}
	if err := sc.Lights.Update(dt, &sc.Camera.View); err != nil {
		return err
	}
	geom, err := sc.SphereAnim.Update(elapsed)
	if err != nil {
		return err
	}
	if geom != nil {
		slog.Debug("scene: sphere segments", "count", sc.SphereAnim.count)
		return sc.Sphere.SetGeometry(geom)
	}
	return nil
}

// Frame records and submits the shadow passes and the color pass,
// then presents. A lost or outdated surface skips the frame and
// reconfigures the surface; running out of memory is returned.
func (sc *Scene) Frame() error {
	view, err := sc.Surface.AcquireView()
	if errors.Is(err, gpu.ErrOutOfMemory) {
		return err
	}
	if err != nil {
		slog.Warn("scene: skipping frame", "err", err)
		sc.Surface.Configure()
		return nil
	}
	dev := sc.Shared.Device
	cmd, err := dev.Device.CreateCommandEncoder(nil)
	if errors.Log(err) != nil {
		sc.Surface.Present()
		return err
	}
	defer cmd.Release()
	if err := sc.Shadows.Render(cmd, sc.Groups); err != nil {
		sc.Surface.Present()
		return err
	}
	pass := sc.Render.BeginRenderPass(cmd, view)
	sc.Groups.Render(Pass{Kind: ColorPass, Encoder: pass})
	err = pass.End()
	pass.Release() // must happen before Finish
	if errors.Log(err) != nil {
		sc.Surface.Present()
		return err
	}
	cb, err := cmd.Finish(nil)
	if errors.Log(err) != nil {
		sc.Surface.Present()
		return err
	}
	dev.Submit(cb)
	sc.Surface.Present()
	return nil
}

// Resize updates the surface, the render targets and the camera
// aspect for a new framebuffer size. Zero sizes are ignored.
func (sc *Scene) Resize(size image.Point) error {
	if size.X <= 0 || size.Y <= 0 {
		return nil
	}
	if !sc.Surface.SetSize(size) {
		return nil
	}
	sc.Camera.Projection.Resize(size.X, size.Y)
	slog.Debug("scene: resize", "size", size)
	return sc.Render.SetSize(size)
}

// ApplyLights applies new light parameters, as from a reloaded config.
func (sc *Scene) ApplyLights(us []LightUniform) {
	sc.Lights.SetParams(us)
}

// Release releases everything, in reverse order of creation.
func (sc *Scene) Release() {
	if sc.Sphere != nil {
		sc.Sphere.Release()
	}
	for _, mr := range sc.Models {
		mr.Release()
	}
	for _, gr := range []*GeoRenderGroup{sc.Floor, sc.Square} {
		if gr != nil {
			gr.Release()
		}
	}
	if sc.Skybox != nil {
		sc.Skybox.Release()
	}
	if sc.Shadows != nil {
		sc.Shadows.Release()
	}
	if sc.Lights != nil {
		sc.Lights.Release()
	}
	if sc.Shared != nil {
		sc.Shared.Release()
	}
	if sc.Render != nil {
		sc.Render.Release()
	}
	sc.Groups = nil
}
