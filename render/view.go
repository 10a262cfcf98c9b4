// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/monument/aa"
	"github.com/gogpu/monument/attrib"
	"github.com/gogpu/monument/camera"
	"github.com/gogpu/monument/partition"
)

// View is the render surface of the pipeline.
type View interface {
	// SetAntialiasing selects the antialiasing strategy of later draws.
	SetAntialiasing(s aa.Strategy) error

	// UploadPathAttributes replaces the colour and transform buffers. The
	// buffers stay in place when a later AttachGeometry fails.
	UploadPathAttributes(colors, transforms attrib.Buffer) error

	// AttachGeometry replaces the drawn path geometry. The attribute
	// buffers must hold a row for every path of mesh.
	AttachGeometry(mesh *partition.Mesh) error

	// SetTransform sets the view transform of later draws.
	SetTransform(m mgl32.Mat4)

	// RequestRedraw schedules a frame.
	RequestRedraw()

	// Camera returns the camera whose changes drive the view transform.
	Camera() *camera.Camera

	// Viewport returns the view size in pixels.
	Viewport() (width, height int)
}

var (
	// ErrNoAttributes is returned when geometry is attached before any
	// attribute upload.
	ErrNoAttributes = errors.New("render: geometry attached before attributes")

	// ErrAttributeMismatch is returned when the attribute buffers do not
	// hold a row for every path.
	ErrAttributeMismatch = errors.New("render: attribute rows do not match paths")

	// ErrInvalidGeometry is returned for meshes that fail validation or
	// were not expanded.
	ErrInvalidGeometry = errors.New("render: invalid geometry")
)
