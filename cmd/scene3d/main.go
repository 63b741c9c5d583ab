// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command scene3d opens a window and renders the demo scene:
// textured shapes, OBJ models and a sky box, lit by a moving point
// light and a camera-held spot light, with shadows.
package main

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"cogentcore.org/scene3d/assets"
	"cogentcore.org/scene3d/base/fsx"
	"cogentcore.org/scene3d/base/logx"
	"cogentcore.org/scene3d/config"
	"cogentcore.org/scene3d/gpu"
	"cogentcore.org/scene3d/scene"
	"github.com/spf13/cobra"
)

func init() {
	// glfw and the surface must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// options are the command line flags.
type options struct {
	config      string
	assets      string
	samples     int
	watch       bool
	verbose     bool
	veryVerbose bool
	quiet       bool
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "scene3d",
		Short: "Render a lit 3D scene with shadows using WebGPU",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logx.UserLevel = logx.LevelFromFlags(o.veryVerbose, o.verbose, o.quiet)
			logx.SetDefaultLogger()
			cfg, err := loadConfig(o, cmd.Flags().Changed("samples"))
			if err != nil {
				return err
			}
			return run(cmd.Context(), o, cfg)
		},
		SilenceUsage: true,
	}
	fs := cmd.Flags()
	fs.StringVarP(&o.config, "config", "c", "", "config file (.toml or .yaml)")
	fs.StringVar(&o.assets, "assets", "", "asset directory, overriding the config")
	fs.IntVar(&o.samples, "samples", 4, "multisample count (1 or 4)")
	fs.BoolVar(&o.watch, "watch", true, "reload light settings when the config file changes")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "show info messages")
	fs.BoolVar(&o.veryVerbose, "vv", false, "show debug messages")
	fs.BoolVarP(&o.quiet, "quiet", "q", false, "only show errors")
	return cmd
}

// loadConfig reads the config file, if any, and applies the flags.
// A relative asset directory in a config file is relative to that file.
func loadConfig(o *options, samplesSet bool) (*config.Config, error) {
	cfg := config.Defaults()
	base := ""
	if o.config != "" {
		var err error
		if cfg, err = config.Open(o.config); err != nil {
			return nil, err
		}
		base = filepath.Dir(o.config)
	}
	if o.assets != "" {
		cfg.Assets.Dir = o.assets
		base = ""
	}
	dir, err := fsx.ResolvePath(base, cfg.Assets.Dir)
	if err != nil {
		return nil, err
	}
	cfg.Assets.Dir = dir
	if samplesSet {
		cfg.Window.Samples = o.samples
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, o *options, cfg *config.Config) error {
	gpu.Debug = logx.UserLevel <= slog.LevelDebug
	if ctx == nil {
		ctx = context.Background()
	}
	ld, err := assets.NewLoader(cfg.Assets.Dir)
	if err != nil {
		return err
	}
	if o.quiet {
		ld.Progress = nil
	}
	as, err := ld.LoadAll(ctx, &cfg.Assets)
	if err != nil {
		return err
	}

	gp := gpu.NewGPU()
	defer gp.Release()
	win, err := gpu.GLFWCreateWindow(gp, image.Pt(cfg.Window.Width, cfg.Window.Height), cfg.Window.Title)
	if err != nil {
		return fmt.Errorf("scene3d: window: %w", err)
	}
	defer win.Terminate()
	if err := gp.Config(cfg.Window.Title, win.Surface); err != nil {
		return err
	}
	dev, err := gp.NewDevice()
	if err != nil {
		return err
	}
	defer dev.Release()
	sf := gpu.NewSurface(gp, dev, win.Surface, win.Size())
	defer sf.Release()

	opts, err := cfg.SceneOptions()
	if err != nil {
		return err
	}
	sc, err := scene.New(dev, sf, opts, as)
	if err != nil {
		return err
	}
	defer sc.Release()

	in := newInput(win, sc.Controller)
	in.connect()
	win.SetResize(func(size image.Point) {
		if err := sc.Resize(size); err != nil {
			slog.Error("scene3d: resize", "err", err)
		}
	})

	var reload <-chan *config.Config
	if o.watch && o.config != "" {
		w, err := config.Watch(o.config)
		if err != nil {
			slog.Warn("scene3d: not watching config", "err", err)
		} else {
			defer w.Close()
			reload = w.C
		}
	}

	slog.Info("scene3d: running", "samples", cfg.Window.Samples, "size", win.Size())
	start := time.Now()
	last := start
	for win.PollEvents() {
		select {
		case nc := <-reload:
			applyConfig(sc, nc)
		default:
		}
		now := time.Now()
		if err := sc.Update(now.Sub(last), now.Sub(start)); err != nil {
			return err
		}
		last = now
		if err := sc.Frame(); err != nil {
			return err
		}
	}
	dev.WaitDone()
	return nil
}

// applyConfig applies the parts of a reloaded config that can change
// while running: the light parameters.
func applyConfig(sc *scene.Scene, cfg *config.Config) {
	us, err := cfg.LightUniforms()
	if err != nil {
		slog.Error("scene3d: reload", "err", err)
		return
	}
	if len(us) != len(sc.Lights.Lights) {
		slog.Warn("scene3d: light count changes need a restart", "running", len(sc.Lights.Lights), "config", len(us))
	}
	sc.ApplyLights(us)
}
