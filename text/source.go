package text

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/monument/internal/cache"
)

// FontSource represents a decoded font file together with a cache of its
// glyph outlines. One FontSource is shared by every line of a layout.
//
// FontSource is safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection.
	// It must point to the FontSource itself.
	addr *FontSource

	parsed ParsedFont
	name   string
	closed atomic.Bool

	outlines *cache.Cache[GlyphID, *GlyphOutline]

	config sourceConfig
}

// NewFontSource decodes font data (TTF or OTF).
// Decoding only checks that the data parses; call Supported to check that
// the font can be laid out.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	parser, err := getParser(config.parserName)
	if err != nil {
		return nil, err
	}
	parsed, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}

	s := &FontSource{
		parsed:   parsed,
		outlines: cache.New[GlyphID, *GlyphOutline](config.cacheLimit),
		config:   config,
	}
	s.addr = s
	s.name = parsed.Name()
	if s.name == "" {
		s.name = "Unknown Font"
	}

	return s, nil
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// Parser returns the name of the backend that decoded the font.
func (s *FontSource) Parser() string {
	s.copyCheck()
	return s.config.parserName
}

// UnitsPerEm returns the font's units per em.
func (s *FontSource) UnitsPerEm() int {
	s.copyCheck()
	return s.parsed.UnitsPerEm()
}

// Metrics returns the font metrics in font units.
func (s *FontSource) Metrics() FontMetrics {
	s.copyCheck()
	return s.parsed.Metrics()
}

// LineHeight returns the distance between consecutive baselines in font units.
func (s *FontSource) LineHeight() float64 {
	return s.Metrics().Height()
}

// Supported reports why the font cannot be laid out, or nil if it can.
// A supported font has a positive units-per-em and provides a vector
// outline for the probe glyph.
func (s *FontSource) Supported() error {
	s.copyCheck()
	if s.closed.Load() {
		return ErrClosed
	}

	if s.parsed.UnitsPerEm() <= 0 {
		return &FontError{Reason: "font has no units per em"}
	}

	gid := s.parsed.GlyphIndex(s.config.probe)
	if gid == 0 {
		return &FontError{Reason: fmt.Sprintf("font has no glyph for %q", s.config.probe)}
	}
	outline, err := s.GlyphOutline(gid)
	if err != nil {
		return err
	}
	if outline.IsEmpty() {
		return ErrUnsupportedFontType
	}
	return nil
}

// IsSupported reports whether Supported returns nil.
func (s *FontSource) IsSupported() bool {
	return s.Supported() == nil
}

// GlyphOutline returns the cached outline of a glyph.
// The returned outline is shared and must not be modified.
func (s *FontSource) GlyphOutline(gid GlyphID) (*GlyphOutline, error) {
	s.copyCheck()
	if s.closed.Load() {
		return nil, ErrClosed
	}
	return s.outlines.GetOrLoad(gid, func() (*GlyphOutline, error) {
		return s.parsed.GlyphOutline(gid)
	})
}

// GlyphOutlines converts a string into one outline per rune, in order.
// Runes the font lacks map to the font's .notdef glyph.
func (s *FontSource) GlyphOutlines(str string) ([]*GlyphOutline, error) {
	s.copyCheck()

	outlines := make([]*GlyphOutline, 0, len(str))
	for _, r := range str {
		outline, err := s.GlyphOutline(s.parsed.GlyphIndex(r))
		if err != nil {
			return nil, fmt.Errorf("text: outline for %q: %w", r, err)
		}
		outlines = append(outlines, outline)
	}
	return outlines, nil
}

// CacheStats describes the outline cache of a FontSource.
type CacheStats = cache.Stats

// CacheStats returns the outline cache counters.
func (s *FontSource) CacheStats() CacheStats {
	s.copyCheck()
	return s.outlines.Stats()
}

// Close releases the outline cache. The source cannot be used afterwards.
func (s *FontSource) Close() error {
	s.copyCheck()
	s.closed.Store(true)
	s.outlines.Clear()
	return nil
}

// copyCheck panics if FontSource was copied by value.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}
