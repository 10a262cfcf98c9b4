package partition

import (
	"context"
	"fmt"

	"github.com/gogpu/monument/text"
)

// Partitioner converts a batch of outlines into mesh geometry.
type Partitioner interface {
	// Partition returns a mesh with one path per outline, in order.
	Partition(ctx context.Context, outlines []*text.GlyphOutline) (*Mesh, error)

	// Expand returns a copy of mesh with the auxiliary geometry the
	// renderer needs added.
	Expand(mesh *Mesh) *Mesh
}

// PathRange is a run of vertices belonging to one path.
// Start and Count are in vertices, not floats.
type PathRange struct {
	Start, Count int
}

// Empty reports whether the path has no vertices.
func (r PathRange) Empty() bool {
	return r.Count == 0
}

// Bounds is an axis-aligned box: minX, minY, maxX, maxY.
type Bounds [4]float32

// Mesh is batched path geometry. Vertices are x, y float32 pairs, three
// vertices per triangle.
type Mesh struct {
	Vertices []float32
	Paths    []PathRange
	Bounds   []Bounds

	// Cover geometry, filled by Expand.
	CoverVertices []float32
	CoverPaths    []PathRange
}

// PathCount returns the number of paths.
func (m *Mesh) PathCount() int {
	return len(m.Paths)
}

// VertexCount returns the number of stencil vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 2
}

// TriangleCount returns the number of stencil triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 6
}

// Expanded reports whether cover geometry is present.
func (m *Mesh) Expanded() bool {
	return m.CoverPaths != nil
}

// PathVertices returns the stencil vertices of path i.
func (m *Mesh) PathVertices(i int) []float32 {
	r := m.Paths[i]
	return m.Vertices[2*r.Start : 2*(r.Start+r.Count)]
}

// Validate checks that the path ranges tile the vertex buffer in order.
func (m *Mesh) Validate() error {
	if len(m.Vertices)%6 != 0 {
		return fmt.Errorf("partition: %d floats is not a whole number of triangles", len(m.Vertices))
	}
	if len(m.Bounds) != len(m.Paths) {
		return fmt.Errorf("partition: %d bounds for %d paths", len(m.Bounds), len(m.Paths))
	}
	next := 0
	for i, r := range m.Paths {
		if r.Start != next || r.Count < 0 || r.Count%3 != 0 {
			return fmt.Errorf("partition: path %d range %+v does not follow vertex %d", i, r, next)
		}
		next += r.Count
	}
	if next != m.VertexCount() {
		return fmt.Errorf("partition: paths cover %d of %d vertices", next, m.VertexCount())
	}
	if m.CoverPaths != nil && len(m.CoverPaths) != len(m.Paths) {
		return fmt.Errorf("partition: %d cover paths for %d paths", len(m.CoverPaths), len(m.Paths))
	}
	return nil
}
