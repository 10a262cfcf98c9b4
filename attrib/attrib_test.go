package attrib

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/monument/layout"
	"github.com/gogpu/monument/text"
)

func box(minX, minY, maxX, maxY float64) *text.GlyphOutline {
	return &text.GlyphOutline{
		Segments: []text.OutlineSegment{
			{Op: text.OutlineOpMoveTo, Points: [3]text.OutlinePoint{{X: float32(minX), Y: float32(minY)}}},
			{Op: text.OutlineOpLineTo, Points: [3]text.OutlinePoint{{X: float32(maxX), Y: float32(maxY)}}},
		},
		Bounds:  text.Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY},
		Advance: maxX,
	}
}

func testGlyphs() []layout.PositionedGlyph {
	return []layout.PositionedGlyph{
		{Outline: box(0, 0, 8, 8), Position: layout.Point{X: 0, Y: 0}},
		{Outline: box(1, -2, 8, 8), Position: layout.Point{X: 45.5, Y: 0}},
		{Outline: box(0, 0, 8, 8), Position: layout.Point{X: 10, Y: -20}},
	}
}

func TestBuild_Lengths(t *testing.T) {
	for _, n := range []int{0, 1, 3} {
		s := Build(testGlyphs()[:n], 1)
		if len(s.Colors) != n+1 || len(s.Transforms) != n+1 {
			t.Errorf("n=%d: len(colors)=%d len(transforms)=%d, want %d", n, len(s.Colors), len(s.Transforms), n+1)
		}
		if s.PathCount() != n {
			t.Errorf("n=%d: PathCount() = %d", n, s.PathCount())
		}
	}
}

func TestBuild_Rows(t *testing.T) {
	glyphs := testGlyphs()
	s := Build(glyphs, 2)

	if s.Colors[0] != (Color{}) || s.Transforms[0] != (Transform2D{}) {
		t.Errorf("row 0 = %+v %+v, want zero", s.Colors[0], s.Transforms[0])
	}
	for i, g := range glyphs {
		rect := g.PixelRect(2)
		want := Transform2D{ScaleX: 1, ScaleY: 1, TranslateX: float32(rect.X), TranslateY: float32(rect.Y)}
		if s.Transforms[i+1] != want {
			t.Errorf("transforms[%d] = %+v, want %+v", i+1, s.Transforms[i+1], want)
		}
		if s.Colors[i+1] != Black {
			t.Errorf("colors[%d] = %+v, want black", i+1, s.Colors[i+1])
		}
	}

	// floor((45.5 + 1) * 2) = 93, floor(-2 * 2) = -4
	if got := s.Transforms[2]; got.TranslateX != 93 || got.TranslateY != -4 {
		t.Errorf("transforms[2] = %+v, want translate (93, -4)", got)
	}
}

func TestUpload(t *testing.T) {
	s := Build(testGlyphs(), 1)
	colors, transforms := s.Upload()

	if colors.Size() != uint64(4*ColorStride) {
		t.Errorf("colors size = %d, want %d", colors.Size(), 4*ColorStride)
	}
	if transforms.Size() != uint64(4*TransformStride) {
		t.Errorf("transforms size = %d, want %d", transforms.Size(), 4*TransformStride)
	}

	wantColors := []byte{0, 0, 0, 0, 0, 0, 0, 255, 0, 0, 0, 255, 0, 0, 0, 255}
	if diff := cmp.Diff(wantColors, colors.Data); diff != "" {
		t.Errorf("color bytes mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(s.Transforms, DecodeTransforms(transforms.Data)); diff != "" {
		t.Errorf("transform round trip mismatch (-want +got):\n%s", diff)
	}

	for _, b := range []Buffer{colors, transforms} {
		if b.Usage&gputypes.BufferUsageStorage == 0 || b.Usage&gputypes.BufferUsageCopyDst == 0 {
			t.Errorf("%s usage = %v, want storage|copy-dst", b.Label, b.Usage)
		}
	}
}
