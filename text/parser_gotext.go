package text

import (
	"bytes"
	"fmt"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
)

// gotextParser implements FontParser using go-text/typesetting.
type gotextParser struct{}

// Parse implements FontParser.Parse.
func (p *gotextParser) Parse(data []byte) (ParsedFont, error) {
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return &gotextParsedFont{face: face}, nil
}

// gotextParsedFont implements ParsedFont using a go-text font.Face.
// font.Face is not safe for concurrent use, so access is serialized.
// go-text already reports font units with y up.
type gotextParsedFont struct {
	mu   sync.Mutex
	face *gtfont.Face
}

// Name implements ParsedFont.Name.
// go-text does not expose the name table through Face.
func (f *gotextParsedFont) Name() string {
	return ""
}

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *gotextParsedFont) UnitsPerEm() int {
	return int(f.face.Upem())
}

// GlyphIndex implements ParsedFont.GlyphIndex.
func (f *gotextParsedFont) GlyphIndex(r rune) GlyphID {
	f.mu.Lock()
	defer f.mu.Unlock()

	gid, ok := f.face.NominalGlyph(r)
	if !ok {
		return 0
	}
	return GlyphID(gid) //nolint:gosec // glyph ids fit in uint16 for sfnt fonts
}

// GlyphAdvance implements ParsedFont.GlyphAdvance.
func (f *gotextParsedFont) GlyphAdvance(gid GlyphID) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return float64(f.face.HorizontalAdvance(gtfont.GID(gid)))
}

// GlyphOutline implements ParsedFont.GlyphOutline.
func (f *gotextParsedFont) GlyphOutline(gid GlyphID) (*GlyphOutline, error) {
	f.mu.Lock()
	data := f.face.GlyphData(gtfont.GID(gid))
	advance := float64(f.face.HorizontalAdvance(gtfont.GID(gid)))
	f.mu.Unlock()

	outline := &GlyphOutline{GID: gid, Type: GlyphTypeOutline, Advance: advance}

	switch glyph := data.(type) {
	case gtfont.GlyphOutline:
		outline.Segments = make([]OutlineSegment, 0, len(glyph.Segments))
		for _, seg := range glyph.Segments {
			var out OutlineSegment
			switch seg.Op {
			case opentype.SegmentOpMoveTo:
				out.Op = OutlineOpMoveTo
			case opentype.SegmentOpLineTo:
				out.Op = OutlineOpLineTo
			case opentype.SegmentOpQuadTo:
				out.Op = OutlineOpQuadTo
			case opentype.SegmentOpCubeTo:
				out.Op = OutlineOpCubicTo
			default:
				continue
			}
			for j := range out.Op.PointCount() {
				out.Points[j] = OutlinePoint{X: seg.Args[j].X, Y: seg.Args[j].Y}
			}
			outline.Segments = append(outline.Segments, out)
		}
	case nil:
		// No glyph data at all: treat as an empty glyph such as space.
	default:
		return nil, ErrUnsupportedFontType
	}

	outline.Bounds = computeBounds(outline.Segments)
	return outline, nil
}

// Metrics implements ParsedFont.Metrics.
func (f *gotextParsedFont) Metrics() FontMetrics {
	f.mu.Lock()
	defer f.mu.Unlock()

	ext, ok := f.face.FontHExtents()
	if !ok {
		return FontMetrics{}
	}
	return FontMetrics{
		Ascent:  float64(ext.Ascender),
		Descent: float64(ext.Descender),
		LineGap: float64(ext.LineGap),
	}
}
