package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrUnknownParser is returned when WithParser names no registered backend.
	ErrUnknownParser = errors.New("text: unknown font parser")

	// ErrClosed is returned when a closed FontSource is used.
	ErrClosed = errors.New("text: font source is closed")
)

// ErrUnsupportedFontType is returned when the font has no usable vector
// outlines.
var ErrUnsupportedFontType = &FontError{Reason: "unsupported font type for outline extraction"}

// FontError represents a font-related error.
type FontError struct {
	Reason string
}

func (e *FontError) Error() string {
	return "text: " + e.Reason
}
