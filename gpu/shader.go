// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"embed"
	"io/fs"
	"log/slog"

	"cogentcore.org/scene3d/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Shaders holds the WGSL sources of the scene renderer.
//
//go:embed shaders/*.wgsl
var Shaders embed.FS

// ShaderCode returns the code of the embedded shader with the
// given file name, with its #include lines expanded.
func ShaderCode(fname string) (string, error) {
	return ShaderCodeFS(Shaders, "shaders", fname)
}

// ShaderCodeFS returns the code of the given shader file in fsys,
// looking for it and its includes relative to dir.
func ShaderCodeFS(fsys fs.FS, dir, fname string) (string, error) {
	b, err := fs.ReadFile(fsys, dir+"/"+fname)
	if err != nil {
		return "", err
	}
	return IncludeFS(fsys, dir, string(b)), nil
}

// Shader manages a single WGSL shader module, which can have
// multiple entry points.
type Shader struct {
	Name string

	// Code is the WGSL source after include processing.
	Code string

	module *wgpu.ShaderModule
	device *Device
}

// NewShader returns a new Shader for the given device.
func NewShader(name string, dev *Device) *Shader {
	return &Shader{Name: name, device: dev}
}

// OpenShader returns a new Shader for the given embedded shader file.
func OpenShader(dev *Device, fname string) (*Shader, error) {
	code, err := ShaderCode(fname)
	if err != nil {
		return nil, err
	}
	sh := NewShader(fname, dev)
	if err := sh.OpenCode(code); err != nil {
		return nil, err
	}
	return sh, nil
}

// OpenCode creates the shader module from the given WGSL code.
// When [Debug] is set the code is first checked with naga, so
// errors are reported with the shader name before the device sees it.
func (sh *Shader) OpenCode(code string) error {
	sh.Code = code
	if Debug {
		if err := ValidateWGSL(sh.Name, code); err != nil {
			slog.Warn("gpu: naga validation", "shader", sh.Name, "err", err)
		}
	}
	module, err := sh.device.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: sh.Name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: code,
		},
	})
	if errors.Log(err) != nil {
		return err
	}
	sh.module = module
	return nil
}

// Module returns the compiled module, nil until OpenCode succeeds.
func (sh *Shader) Module() *wgpu.ShaderModule { return sh.module }

func (sh *Shader) Release() {
	if sh.module != nil {
		sh.module.Release()
		sh.module = nil
	}
}
