package text

import (
	"errors"
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageParser implements FontParser using golang.org/x/image/font/opentype.
type ximageParser struct{}

// Parse implements FontParser.Parse.
func (p *ximageParser) Parse(data []byte) (ParsedFont, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return &ximageParsedFont{font: f, ppem: fixed.Int26_6(int(f.UnitsPerEm()) << 6)}, nil
}

// ximageParsedFont implements ParsedFont using sfnt.Font.
//
// sfnt reports values in pixels at a given ppem. Asking for ppem equal to
// units-per-em makes one pixel one font unit.
type ximageParsedFont struct {
	font *opentype.Font
	ppem fixed.Int26_6
}

// Name implements ParsedFont.Name.
func (f *ximageParsedFont) Name() string {
	if name, err := f.font.Name(nil, sfnt.NameIDFamily); err == nil {
		return name
	}
	return ""
}

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *ximageParsedFont) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

// GlyphIndex implements ParsedFont.GlyphIndex.
func (f *ximageParsedFont) GlyphIndex(r rune) GlyphID {
	idx, err := f.font.GlyphIndex(nil, r)
	if err != nil {
		return 0
	}
	return GlyphID(idx)
}

// GlyphAdvance implements ParsedFont.GlyphAdvance.
func (f *ximageParsedFont) GlyphAdvance(gid GlyphID) float64 {
	var buf sfnt.Buffer
	advance, err := f.font.GlyphAdvance(&buf, sfnt.GlyphIndex(gid), f.ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat64(advance)
}

// GlyphOutline implements ParsedFont.GlyphOutline.
func (f *ximageParsedFont) GlyphOutline(gid GlyphID) (*GlyphOutline, error) {
	var buf sfnt.Buffer

	segments, err := f.font.LoadGlyph(&buf, sfnt.GlyphIndex(gid), f.ppem, nil)
	if err != nil {
		if errors.Is(err, sfnt.ErrColoredGlyph) {
			return nil, ErrUnsupportedFontType
		}
		return nil, fmt.Errorf("text: failed to load glyph %d: %w", gid, err)
	}

	outline := &GlyphOutline{
		Segments: make([]OutlineSegment, 0, len(segments)),
		GID:      gid,
		Type:     GlyphTypeOutline,
		Advance:  f.GlyphAdvance(gid),
	}

	for _, seg := range segments {
		var out OutlineSegment

		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			out.Op = OutlineOpMoveTo
		case sfnt.SegmentOpLineTo:
			out.Op = OutlineOpLineTo
		case sfnt.SegmentOpQuadTo:
			out.Op = OutlineOpQuadTo
		case sfnt.SegmentOpCubeTo:
			out.Op = OutlineOpCubicTo
		default:
			continue
		}
		for j := range out.Op.PointCount() {
			out.Points[j] = fixedPointToOutline(seg.Args[j])
		}

		outline.Segments = append(outline.Segments, out)
	}

	outline.Bounds = computeBounds(outline.Segments)
	return outline, nil
}

// Metrics implements ParsedFont.Metrics.
func (f *ximageParsedFont) Metrics() FontMetrics {
	var buf sfnt.Buffer

	m, err := f.font.Metrics(&buf, f.ppem, font.HintingNone)
	if err != nil {
		return FontMetrics{}
	}

	// sfnt reports Descent as a positive distance below the baseline.
	ascent := fixedToFloat64(m.Ascent)
	descent := fixedToFloat64(m.Descent)
	return FontMetrics{
		Ascent:  ascent,
		Descent: -descent,
		LineGap: fixedToFloat64(m.Height) - ascent - descent,
	}
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

// fixedPointToOutline converts an sfnt point (y down) to a y-up OutlinePoint.
func fixedPointToOutline(p fixed.Point26_6) OutlinePoint {
	return OutlinePoint{
		X: float32(p.X) / 64.0,
		Y: -float32(p.Y) / 64.0,
	}
}
