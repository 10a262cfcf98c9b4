// Package text decodes fonts and turns strings into glyph outlines.
//
// The pipeline is:
//
//   - FontParser: pluggable parsing backend ("ximage" or "gotext")
//   - FontSource: a decoded font plus an outline cache, shared by all lines
//   - GlyphOutline: the vector outline of one glyph, in font units, y up
//
// # Example usage
//
//	source, err := text.NewFontSource(data)
//	if err != nil {
//	    return err
//	}
//	if err := source.Supported(); err != nil {
//	    return err
//	}
//	outlines, err := source.GlyphOutlines("Ada Lovelace")
//
// # Backends
//
// The default backend uses golang.org/x/image/font/opentype. The "gotext"
// backend uses github.com/go-text/typesetting. Both report metrics and
// outlines in font units, so layout results do not depend on a size.
package text
