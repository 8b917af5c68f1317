// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle provides GPU device access from the host application.
//
// Key principle: the rect renderer RECEIVES the device from the host, it
// does NOT create one. The terminal that owns the window and the frame loop
// also owns the device; the renderer only allocates its own buffers and
// pipelines on it.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider.
type DeviceHandle = gpucontext.DeviceProvider

// halProvider is implemented by device providers that expose the HAL
// device and queue backing their gpucontext types.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// halFromProvider extracts the HAL device and queue from a provider.
func halFromProvider(provider DeviceHandle) (hal.Device, hal.Queue, error) {
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, ErrNotHalProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, ErrNotHalProvider
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, ErrNotHalProvider
	}
	return device, queue, nil
}

// NewRectRendererFromProvider creates a RectRenderer on the device shared
// by provider. The provider's surface format is used as the target format
// unless overridden by WithTargetFormat.
func NewRectRendererFromProvider(provider DeviceHandle, opts ...Option) (*RectRenderer, error) {
	if provider == nil {
		return nil, ErrNilDevice
	}
	device, queue, err := halFromProvider(provider)
	if err != nil {
		return nil, err
	}

	if format := provider.SurfaceFormat(); format != gputypes.TextureFormatUndefined {
		opts = append([]Option{WithTargetFormat(format)}, opts...)
	}
	return NewRectRenderer(device, queue, opts...)
}
