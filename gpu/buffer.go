// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// note: WriteBuffer is the preferred method for updating buffers,
// so buffers are created with CopyDst usage.

// Common buffer usages.
const (
	VertexUsage  = wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst
	IndexUsage   = wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst
	UniformUsage = wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
)

// NewBuffer creates a buffer initialized with the given data,
// which must be a slice of plain fixed-size values.
func NewBuffer[T any](dev *Device, label string, usage wgpu.BufferUsage, data []T) (*wgpu.Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("gpu: buffer %q: no data", label)
	}
	buf, err := dev.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: wgpu.ToBytes(data),
		Usage:    usage,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: buffer %q: %w", label, err)
	}
	return buf, nil
}

// NewEmptyBuffer creates a zeroed buffer of the given size in bytes.
func NewEmptyBuffer(dev *Device, label string, usage wgpu.BufferUsage, size int) (*wgpu.Buffer, error) {
	buf, err := dev.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(size),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: buffer %q: %w", label, err)
	}
	return buf, nil
}

// WriteBuffer writes the given data to the start of the buffer.
func WriteBuffer[T any](dev *Device, buf *wgpu.Buffer, data []T) error {
	if len(data) == 0 {
		return nil
	}
	return dev.Queue.WriteBuffer(buf, 0, wgpu.ToBytes(data))
}

// ReleaseBuffers releases each of the given buffers that is not nil.
func ReleaseBuffers(bufs ...*wgpu.Buffer) {
	for _, b := range bufs {
		if b != nil {
			b.Release()
		}
	}
}
