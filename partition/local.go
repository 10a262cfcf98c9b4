package partition

import (
	"context"
	"fmt"

	"github.com/gogpu/monument"
	"github.com/gogpu/monument/internal/path"
	"github.com/gogpu/monument/text"
)

// CoverPadding is the number of pixels added around each path when
// generating its cover quad, so antialiased edges are fully covered.
const CoverPadding = 1.0

// Option configures a Local partitioner.
type Option func(*Local)

// WithTolerance sets the curve flattening tolerance in pixels.
// Non-positive values are ignored.
func WithTolerance(tolerance float64) Option {
	return func(l *Local) {
		if tolerance > 0 {
			l.tolerance = tolerance
		}
	}
}

// Local partitions outlines in process into stencil triangle fans.
//
// For each contour the first vertex is the fan centre and every edge emits
// the triangle (centre, edge start, edge end). The fans are correct for any
// contour topology because winding is resolved by the stencil pass.
type Local struct {
	tolerance float64
}

// NewLocal creates a Local partitioner.
func NewLocal(opts ...Option) *Local {
	l := &Local{tolerance: path.Tolerance}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Tolerance returns the curve flattening tolerance.
func (l *Local) Tolerance() float64 {
	return l.tolerance
}

// Partition implements Partitioner. It checks ctx between outlines.
func (l *Local) Partition(ctx context.Context, outlines []*text.GlyphOutline) (*Mesh, error) {
	m := &Mesh{
		Vertices: make([]float32, 0, 64*len(outlines)),
		Paths:    make([]PathRange, len(outlines)),
		Bounds:   make([]Bounds, len(outlines)),
	}

	for i, o := range outlines {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("partition: outline %d: %w", i, err)
		}
		if o == nil {
			return nil, fmt.Errorf("partition: outline %d is nil", i)
		}

		start := m.VertexCount()
		contours := path.Contours(o.Segments, l.tolerance)
		for _, c := range contours {
			m.Vertices = appendFan(m.Vertices, c)
		}
		m.Paths[i] = PathRange{Start: start, Count: m.VertexCount() - start}
		if minPt, maxPt, ok := path.Bounds(contours); ok {
			m.Bounds[i] = Bounds{float32(minPt.X), float32(minPt.Y), float32(maxPt.X), float32(maxPt.Y)}
		}
	}

	monument.Logger().Debug("partition: meshed outlines",
		"paths", len(m.Paths), "triangles", m.TriangleCount())
	return m, nil
}

// appendFan appends the fan triangles of c. Degenerate triangles are
// skipped.
func appendFan(vertices []float32, c path.Contour) []float32 {
	origin := c[0]
	for i := 1; i+1 < len(c); i++ {
		a, b := c[i], c[i+1]
		if a.Sub(origin).Cross(b.Sub(origin)) == 0 {
			continue
		}
		vertices = append(vertices,
			float32(origin.X), float32(origin.Y),
			float32(a.X), float32(a.Y),
			float32(b.X), float32(b.Y),
		)
	}
	return vertices
}

// Expand implements Partitioner. Every non-empty path gets a cover quad
// of two triangles around its bounds plus CoverPadding; empty paths get
// an empty cover range.
func (l *Local) Expand(m *Mesh) *Mesh {
	out := *m
	out.CoverVertices = make([]float32, 0, 12*len(m.Paths))
	out.CoverPaths = make([]PathRange, len(m.Paths))

	for i, r := range m.Paths {
		start := len(out.CoverVertices) / 2
		if !r.Empty() {
			out.CoverVertices = appendCoverQuad(out.CoverVertices, m.Bounds[i])
		}
		out.CoverPaths[i] = PathRange{Start: start, Count: len(out.CoverVertices)/2 - start}
	}
	return &out
}

func appendCoverQuad(vertices []float32, b Bounds) []float32 {
	minX := b[0] - CoverPadding
	minY := b[1] - CoverPadding
	maxX := b[2] + CoverPadding
	maxY := b[3] + CoverPadding

	return append(vertices,
		minX, minY, maxX, minY, maxX, maxY,
		minX, minY, maxX, maxY, minX, maxY,
	)
}
