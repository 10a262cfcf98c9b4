// Package camera holds the perspective camera looking at the justified
// text and composes its view transform.
//
// The transform is projection * rotation * translation * scale. The scale
// is a fixed non-uniform shrink from the configuration that fits the very
// wide text into camera space. Every mutation of a Camera marks its
// transform stale and notifies subscribers, which push the recomputed
// transform to the render view and request a redraw.
package camera
