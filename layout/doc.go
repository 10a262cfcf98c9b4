// Package layout justifies lines of names to a fixed target width.
//
// Each name becomes one glyph run. The leftover width of a line is spread
// evenly between its runs so the last run ends at the target width; when
// the names are wider than the target they pack with no gap and overflow.
// Nothing is wrapped or truncated. Line i sits at y = -i * lineHeight.
package layout
