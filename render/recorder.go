// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/monument"
	"github.com/gogpu/monument/aa"
	"github.com/gogpu/monument/attrib"
	"github.com/gogpu/monument/camera"
	"github.com/gogpu/monument/partition"
)

// CallKind identifies a View method.
type CallKind int

const (
	CallSetAntialiasing CallKind = iota
	CallUploadPathAttributes
	CallAttachGeometry
	CallSetTransform
	CallRequestRedraw
)

// String returns the method name.
func (k CallKind) String() string {
	switch k {
	case CallSetAntialiasing:
		return "SetAntialiasing"
	case CallUploadPathAttributes:
		return "UploadPathAttributes"
	case CallAttachGeometry:
		return "AttachGeometry"
	case CallSetTransform:
		return "SetTransform"
	case CallRequestRedraw:
		return "RequestRedraw"
	default:
		return "Unknown"
	}
}

// RecorderOption configures a Recorder.
type RecorderOption func(*recorderConfig)

type recorderConfig struct {
	camera monument.CameraConfig
}

// WithCameraConfig sets the configuration of the recorder's camera.
func WithCameraConfig(cfg monument.CameraConfig) RecorderOption {
	return func(c *recorderConfig) {
		c.camera = cfg
	}
}

// Snapshot is the state a Recorder would draw.
type Snapshot struct {
	Strategy      aa.Strategy
	AttributeRows int
	Paths         int
	Triangles     int
	CoverVertices int
	Transform     mgl32.Mat4
	Redraws       int
}

// Recorder is an in-memory View. It is safe for concurrent use.
type Recorder struct {
	mu sync.Mutex

	camera *camera.Camera
	width  int
	height int

	calls      []CallKind
	strategy   aa.Strategy
	colors     attrib.Buffer
	transforms attrib.Buffer
	uploaded   bool
	mesh       *partition.Mesh
	transform  mgl32.Mat4
	redraws    int
}

var _ View = (*Recorder)(nil)

// NewRecorder creates a recorder with a viewport of the given size.
func NewRecorder(width, height int, opts ...RecorderOption) *Recorder {
	cfg := recorderConfig{camera: monument.DefaultConfig().Camera}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Recorder{
		camera:    camera.New(cfg.camera, width, height),
		width:     width,
		height:    height,
		transform: mgl32.Ident4(),
	}
}

// SetAntialiasing implements View.
func (r *Recorder) SetAntialiasing(s aa.Strategy) error {
	if s == nil || !s.Kind().Supported() {
		return monument.NewError(monument.ErrUnsupportedAntialiasing, "set antialiasing",
			fmt.Errorf("render: strategy %v", s))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, CallSetAntialiasing)
	r.strategy = s
	return nil
}

// UploadPathAttributes implements View.
func (r *Recorder) UploadPathAttributes(colors, transforms attrib.Buffer) error {
	if len(colors.Data)%attrib.ColorStride != 0 || len(transforms.Data)%attrib.TransformStride != 0 {
		return fmt.Errorf("%w: partial rows", ErrAttributeMismatch)
	}
	if len(colors.Data)/attrib.ColorStride != len(transforms.Data)/attrib.TransformStride {
		return fmt.Errorf("%w: %d colour rows, %d transform rows", ErrAttributeMismatch,
			len(colors.Data)/attrib.ColorStride, len(transforms.Data)/attrib.TransformStride)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, CallUploadPathAttributes)
	r.colors, r.transforms = colors, transforms
	r.uploaded = true
	return nil
}

// AttachGeometry implements View.
func (r *Recorder) AttachGeometry(mesh *partition.Mesh) error {
	if mesh == nil || !mesh.Expanded() {
		return fmt.Errorf("%w: mesh not expanded", ErrInvalidGeometry)
	}
	if err := mesh.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGeometry, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.uploaded {
		return ErrNoAttributes
	}
	if rows := r.attributeRows(); rows != mesh.PathCount()+1 {
		return fmt.Errorf("%w: %d rows for %d paths", ErrAttributeMismatch, rows, mesh.PathCount())
	}
	r.calls = append(r.calls, CallAttachGeometry)
	r.mesh = mesh
	return nil
}

// attributeRows must be called with r.mu held.
func (r *Recorder) attributeRows() int {
	return len(r.colors.Data) / attrib.ColorStride
}

// SetTransform implements View.
func (r *Recorder) SetTransform(m mgl32.Mat4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, CallSetTransform)
	r.transform = m
}

// RequestRedraw implements View.
func (r *Recorder) RequestRedraw() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, CallRequestRedraw)
	r.redraws++
}

// Camera implements View.
func (r *Recorder) Camera() *camera.Camera {
	return r.camera
}

// Viewport implements View.
func (r *Recorder) Viewport() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// Resize changes the viewport and forwards the new size to the camera.
func (r *Recorder) Resize(width, height int) {
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()

	r.camera.SetViewport(width, height)
}

// Calls returns the View calls received so far, in order.
func (r *Recorder) Calls() []CallKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]CallKind, len(r.calls))
	copy(out, r.calls)
	return out
}

// Attributes returns the last uploaded attribute buffers.
func (r *Recorder) Attributes() (colors, transforms attrib.Buffer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.colors, r.transforms
}

// Mesh returns the attached geometry, or nil.
func (r *Recorder) Mesh() *partition.Mesh {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mesh
}

// Snapshot returns the current drawable state.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := Snapshot{
		Strategy:      r.strategy,
		AttributeRows: r.attributeRows(),
		Transform:     r.transform,
		Redraws:       r.redraws,
	}
	if r.mesh != nil {
		s.Paths = r.mesh.PathCount()
		s.Triangles = r.mesh.TriangleCount()
		s.CoverVertices = len(r.mesh.CoverVertices) / 2
	}
	return s
}
