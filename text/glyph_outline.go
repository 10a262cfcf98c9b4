package text

// OutlinePoint represents a point in a glyph outline.
// Coordinates are in font units with y pointing up.
type OutlinePoint struct {
	X, Y float32
}

// OutlineSegment represents a segment of a glyph outline.
type OutlineSegment struct {
	// Op is the segment operation type.
	Op OutlineOp

	// Points contains the control and end points for this segment.
	// - MoveTo: Points[0] is the target point
	// - LineTo: Points[0] is the target point
	// - QuadTo: Points[0] is control, Points[1] is target
	// - CubicTo: Points[0], Points[1] are controls, Points[2] is target
	Points [3]OutlinePoint
}

// OutlineOp is the type of path operation.
type OutlineOp uint8

const (
	// OutlineOpMoveTo moves to a new point without drawing.
	OutlineOpMoveTo OutlineOp = iota

	// OutlineOpLineTo draws a line to the target point.
	OutlineOpLineTo

	// OutlineOpQuadTo draws a quadratic bezier curve.
	OutlineOpQuadTo

	// OutlineOpCubicTo draws a cubic bezier curve.
	OutlineOpCubicTo
)

// String returns a string representation of the operation.
func (op OutlineOp) String() string {
	switch op {
	case OutlineOpMoveTo:
		return "MoveTo"
	case OutlineOpLineTo:
		return "LineTo"
	case OutlineOpQuadTo:
		return "QuadTo"
	case OutlineOpCubicTo:
		return "CubicTo"
	default:
		return unknownStr
	}
}

// PointCount returns how many entries of Points the operation uses.
func (op OutlineOp) PointCount() int {
	switch op {
	case OutlineOpQuadTo:
		return 2
	case OutlineOpCubicTo:
		return 3
	default:
		return 1
	}
}

// GlyphType indicates how a glyph is stored in the font.
type GlyphType uint8

const (
	// GlyphTypeOutline is a vector path glyph.
	GlyphTypeOutline GlyphType = iota

	// GlyphTypeBitmap is an embedded bitmap or colour glyph. Such glyphs
	// cannot be partitioned into path geometry.
	GlyphTypeBitmap
)

// String returns the string representation of the glyph type.
func (t GlyphType) String() string {
	switch t {
	case GlyphTypeOutline:
		return "Outline"
	case GlyphTypeBitmap:
		return "Bitmap"
	default:
		return unknownStr
	}
}

// GlyphOutline represents the vector outline of a glyph.
// Outlines returned by FontSource are shared through its cache and must be
// treated as read-only; Scale and Translate return new outlines.
type GlyphOutline struct {
	// Segments is the list of path segments that make up the outline.
	Segments []OutlineSegment

	// Bounds is the bounding box of the outline.
	// It is the zero Rect for glyphs without segments.
	Bounds Rect

	// Advance is the horizontal advance width of the glyph.
	Advance float64

	// GID is the glyph ID this outline represents.
	GID GlyphID

	// Type indicates the type of glyph.
	Type GlyphType
}

// IsEmpty returns true if the outline has no segments.
func (o *GlyphOutline) IsEmpty() bool {
	return len(o.Segments) == 0
}

// SegmentCount returns the number of segments in the outline.
func (o *GlyphOutline) SegmentCount() int {
	return len(o.Segments)
}

// Clone creates a deep copy of the outline.
func (o *GlyphOutline) Clone() *GlyphOutline {
	if o == nil {
		return nil
	}

	clone := *o
	clone.Segments = make([]OutlineSegment, len(o.Segments))
	copy(clone.Segments, o.Segments)
	return &clone
}

// Scale returns a new outline with all coordinates and the advance scaled
// by the given factor.
func (o *GlyphOutline) Scale(factor float64) *GlyphOutline {
	if o == nil {
		return nil
	}

	scaled := o.mapPoints(func(p OutlinePoint) OutlinePoint {
		return OutlinePoint{X: float32(float64(p.X) * factor), Y: float32(float64(p.Y) * factor)}
	})
	scaled.Bounds = Rect{
		MinX: o.Bounds.MinX * factor,
		MinY: o.Bounds.MinY * factor,
		MaxX: o.Bounds.MaxX * factor,
		MaxY: o.Bounds.MaxY * factor,
	}
	scaled.Advance = o.Advance * factor
	return scaled
}

// Translate returns a new outline with all coordinates translated by (dx, dy).
func (o *GlyphOutline) Translate(dx, dy float64) *GlyphOutline {
	if o == nil {
		return nil
	}

	translated := o.mapPoints(func(p OutlinePoint) OutlinePoint {
		return OutlinePoint{X: float32(float64(p.X) + dx), Y: float32(float64(p.Y) + dy)}
	})
	if !o.IsEmpty() {
		translated.Bounds = Rect{
			MinX: o.Bounds.MinX + dx,
			MinY: o.Bounds.MinY + dy,
			MaxX: o.Bounds.MaxX + dx,
			MaxY: o.Bounds.MaxY + dy,
		}
	}
	return translated
}

func (o *GlyphOutline) mapPoints(f func(OutlinePoint) OutlinePoint) *GlyphOutline {
	out := &GlyphOutline{
		Segments: make([]OutlineSegment, len(o.Segments)),
		Bounds:   o.Bounds,
		Advance:  o.Advance,
		GID:      o.GID,
		Type:     o.Type,
	}
	for i, seg := range o.Segments {
		out.Segments[i].Op = seg.Op
		for j := range seg.Op.PointCount() {
			out.Segments[i].Points[j] = f(seg.Points[j])
		}
	}
	return out
}

// computeBounds returns the bounding box of all segment points.
func computeBounds(segments []OutlineSegment) Rect {
	if len(segments) == 0 {
		return Rect{}
	}

	minX, minY := float64(1e10), float64(1e10)
	maxX, maxY := float64(-1e10), float64(-1e10)

	for _, seg := range segments {
		for j := range seg.Op.PointCount() {
			p := seg.Points[j]
			minX = min(minX, float64(p.X))
			minY = min(minY, float64(p.Y))
			maxX = max(maxX, float64(p.X))
			maxY = max(maxY, float64(p.Y))
		}
	}

	return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}
