// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the render view the pipeline hands its output to.
//
// The view owns the GPU side: attribute buffers, path geometry, the
// antialiasing strategy and the camera. The pipeline only issues calls in
// a fixed order:
//
//	SetAntialiasing
//	UploadPathAttributes
//	AttachGeometry
//	SetTransform, RequestRedraw (again after every camera change)
//
// Attributes are uploaded before geometry is attached so the renderer never
// draws a path without an attribute row.
//
// Recorder is a View that keeps the calls and the state they produce in
// memory. It backs the demo command and tests; GPU views live with the
// host application.
package render
