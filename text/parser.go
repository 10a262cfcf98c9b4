package text

import (
	"fmt"
	"sort"
	"sync"
)

// FontParser is an interface for font parsing backends.
// This abstraction allows swapping the font parsing library
// (golang.org/x/image/font/opentype or go-text/typesetting).
type FontParser interface {
	// Parse parses font data (TTF or OTF) and returns a ParsedFont.
	Parse(data []byte) (ParsedFont, error)
}

// ParsedFont represents a parsed font file.
// All metrics and outlines are in font units; outlines are y up.
// Implementations must be safe for concurrent use.
type ParsedFont interface {
	// Name returns the font family name, or "" if not available.
	Name() string

	// UnitsPerEm returns the units per em for the font.
	UnitsPerEm() int

	// GlyphIndex returns the glyph index for a rune.
	// Returns 0 if the glyph is not found.
	GlyphIndex(r rune) GlyphID

	// GlyphAdvance returns the advance width for a glyph.
	GlyphAdvance(gid GlyphID) float64

	// GlyphOutline returns the vector outline of a glyph. Glyphs without
	// contours (space) return an empty outline with their advance.
	GlyphOutline(gid GlyphID) (*GlyphOutline, error)

	// Metrics returns the font metrics.
	Metrics() FontMetrics
}

// Parser backend names.
const (
	ParserXImage = "ximage"
	ParserGoText = "gotext"
)

// defaultParserName is the name of the default parser.
const defaultParserName = ParserXImage

var (
	parserMu sync.RWMutex

	// parserRegistry holds registered font parsers.
	parserRegistry = map[string]FontParser{
		ParserXImage: &ximageParser{},
		ParserGoText: &gotextParser{},
	}
)

// RegisterParser registers a custom font parser under name.
func RegisterParser(name string, parser FontParser) {
	parserMu.Lock()
	defer parserMu.Unlock()
	parserRegistry[name] = parser
}

// Parsers returns the registered parser names in sorted order.
func Parsers() []string {
	parserMu.RLock()
	defer parserMu.RUnlock()

	names := make([]string, 0, len(parserRegistry))
	for name := range parserRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// getParser returns the parser by name. The empty name selects the default.
func getParser(name string) (FontParser, error) {
	if name == "" {
		name = defaultParserName
	}

	parserMu.RLock()
	defer parserMu.RUnlock()

	p, ok := parserRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParser, name)
	}
	return p, nil
}
