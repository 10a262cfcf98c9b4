package layout

import (
	"fmt"

	"github.com/gogpu/monument"
	"github.com/gogpu/monument/panel"
	"github.com/gogpu/monument/text"
)

// Font is what the justifier needs from a decoded font.
// *text.FontSource implements it.
type Font interface {
	// GlyphOutlines returns one outline per rune of s, advances included.
	GlyphOutlines(s string) ([]*text.GlyphOutline, error)

	// LineHeight returns the baseline-to-baseline distance.
	LineHeight() float64
}

// Point is a position in font units, y up.
type Point struct {
	X, Y float64
}

// GlyphRun is the glyph sequence of one name placed at Origin.
// Glyph identity is positional: glyph i of the run is Glyphs[i].
type GlyphRun struct {
	Name   string
	Glyphs []*text.GlyphOutline
	Origin Point
	Width  float64
	Font   Font
}

// GlyphOrigin returns the pen position of glyph i.
func (r GlyphRun) GlyphOrigin(i int) Point {
	x := r.Origin.X
	for _, g := range r.Glyphs[:i] {
		x += g.Advance
	}
	return Point{X: x, Y: r.Origin.Y}
}

// LineLayout is one justified line.
type LineLayout struct {
	Index     int
	Runs      []GlyphRun
	UsedSpace float64
	Spacing   float64
}

// Justify lays out the names of one line. Names are placed left to right
// from x = 0 with equal spacing so the line spans cfg.TargetWidth.
// An empty line yields no runs.
func Justify(names []string, font Font, lineIndex int, cfg monument.LayoutConfig) (LineLayout, error) {
	line := LineLayout{Index: lineIndex}
	if len(names) == 0 {
		return line, nil
	}

	line.Runs = make([]GlyphRun, len(names))
	for i, name := range names {
		glyphs, err := font.GlyphOutlines(name)
		if err != nil {
			return LineLayout{}, fmt.Errorf("layout: line %d name %q: %w", lineIndex, name, err)
		}
		width := 0.0
		for _, g := range glyphs {
			width += g.Advance
		}
		line.Runs[i] = GlyphRun{Name: name, Glyphs: glyphs, Width: width, Font: font}
		line.UsedSpace += width
	}

	emptySpace := max(cfg.TargetWidth-line.UsedSpace, 0)
	line.Spacing = emptySpace / float64(max(len(names)-1, 1))

	y := -float64(lineIndex) * font.LineHeight()
	x := 0.0
	for i := range line.Runs {
		line.Runs[i].Origin = Point{X: x, Y: y}
		x += line.Runs[i].Width + line.Spacing
	}

	return line, nil
}

// Lines justifies every line of the grid in increasing line order.
func Lines(grid *panel.Grid, font Font, cfg monument.LayoutConfig) ([]LineLayout, error) {
	lines := make([]LineLayout, grid.Len())
	runs := 0
	for i, l := range grid.Lines() {
		layout, err := Justify(l.Names(), font, i, cfg)
		if err != nil {
			return nil, err
		}
		lines[i] = layout
		runs += len(layout.Runs)
	}

	monument.Logger().Debug("layout: justified grid",
		"lines", len(lines), "runs", runs, "targetWidth", cfg.TargetWidth)
	return lines, nil
}
