// Package attrib builds the per-path colour and transform tables the render
// view indexes while drawing glyph geometry.
//
// Both tables hold one row per path plus a reserved row at index 0, which
// the renderer reads as "no path". Path i of the geometry handed to the
// view uses row i+1.
package attrib

import (
	"github.com/gogpu/monument/layout"
)

// Color is an 8-bit RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// Black is the colour of every glyph path.
var Black = Color{A: 255}

// Transform2D scales a path and moves it into place in pixel space.
type Transform2D struct {
	ScaleX, ScaleY         float32
	TranslateX, TranslateY float32
}

// Set holds the attribute rows of one geometry submission.
// It is not modified after Build returns.
type Set struct {
	Colors     []Color
	Transforms []Transform2D
}

// Build allocates the attribute rows for glyphs at the given pixel scale.
// Row 0 is left zero.
func Build(glyphs []layout.PositionedGlyph, pixelsPerUnit float64) *Set {
	s := &Set{
		Colors:     make([]Color, len(glyphs)+1),
		Transforms: make([]Transform2D, len(glyphs)+1),
	}
	for i, g := range glyphs {
		rect := g.PixelRect(pixelsPerUnit)
		s.Colors[i+1] = Black
		s.Transforms[i+1] = Transform2D{
			ScaleX:     1,
			ScaleY:     1,
			TranslateX: float32(rect.X),
			TranslateY: float32(rect.Y),
		}
	}
	return s
}

// PathCount returns the number of real paths, excluding the reserved row.
func (s *Set) PathCount() int {
	return len(s.Colors) - 1
}
