package layout

import (
	"math"

	"github.com/gogpu/monument/text"
)

// PositionedGlyph is one glyph of the flattened layout.
// Line, Run and Index locate it in the layout it was flattened from.
type PositionedGlyph struct {
	Outline  *text.GlyphOutline
	Position Point
	Line     int
	Run      int
	Index    int
}

// PixelRect is an integer rectangle in pixel space.
type PixelRect struct {
	X, Y          int
	Width, Height int
}

// PixelRect returns the pixel-space rectangle covering the glyph at the
// given scale. The origin is rounded down and the size up, so the rect
// always contains the outline.
func (g PositionedGlyph) PixelRect(pixelsPerUnit float64) PixelRect {
	b := g.Outline.Bounds
	minX := math.Floor((g.Position.X + b.MinX) * pixelsPerUnit)
	minY := math.Floor((g.Position.Y + b.MinY) * pixelsPerUnit)
	maxX := math.Ceil((g.Position.X + b.MaxX) * pixelsPerUnit)
	maxY := math.Ceil((g.Position.Y + b.MaxY) * pixelsPerUnit)
	if g.Outline.IsEmpty() {
		maxX, maxY = minX, minY
	}
	return PixelRect{
		X:      int(minX),
		Y:      int(minY),
		Width:  int(maxX - minX),
		Height: int(maxY - minY),
	}
}

// LocalOutline returns the outline scaled to pixels and expressed relative
// to the origin of PixelRect. Translating it by the rect origin puts it
// back at the glyph's position.
func (g PositionedGlyph) LocalOutline(pixelsPerUnit float64) *text.GlyphOutline {
	rect := g.PixelRect(pixelsPerUnit)
	return g.Outline.Scale(pixelsPerUnit).Translate(
		g.Position.X*pixelsPerUnit-float64(rect.X),
		g.Position.Y*pixelsPerUnit-float64(rect.Y),
	)
}

// Flatten lists every glyph of the layout in line, run, glyph order.
func Flatten(lines []LineLayout) []PositionedGlyph {
	n := 0
	for _, l := range lines {
		for _, r := range l.Runs {
			n += len(r.Glyphs)
		}
	}

	out := make([]PositionedGlyph, 0, n)
	for _, l := range lines {
		for ri, r := range l.Runs {
			x := r.Origin.X
			for gi, g := range r.Glyphs {
				out = append(out, PositionedGlyph{
					Outline:  g,
					Position: Point{X: x, Y: r.Origin.Y},
					Line:     l.Index,
					Run:      ri,
					Index:    gi,
				})
				x += g.Advance
			}
		}
	}
	return out
}

// Outlines returns the local outlines of glyphs, in order, for submission
// to a geometry partitioner.
func Outlines(glyphs []PositionedGlyph, pixelsPerUnit float64) []*text.GlyphOutline {
	out := make([]*text.GlyphOutline, len(glyphs))
	for i, g := range glyphs {
		out[i] = g.LocalOutline(pixelsPerUnit)
	}
	return out
}
