package monument

import "errors"

// Error kinds. Every failure surfaced by a pipeline run matches exactly one
// of these through errors.Is. All of them are terminal for the run.
var (
	// ErrDatasetFetch is returned when the dataset document cannot be fetched.
	ErrDatasetFetch = errors.New("monument: dataset fetch failed")

	// ErrDatasetParse is returned when the dataset document is malformed.
	ErrDatasetParse = errors.New("monument: dataset parse failed")

	// ErrFontFetch is returned when the font file cannot be fetched.
	ErrFontFetch = errors.New("monument: font fetch failed")

	// ErrFontDecode is returned when the font bytes cannot be decoded.
	ErrFontDecode = errors.New("monument: font decode failed")

	// ErrUnsupportedFont is returned when a decoded font cannot be laid out.
	ErrUnsupportedFont = errors.New("monument: unsupported font")

	// ErrPartition is returned when geometry partitioning fails or returns
	// geometry that does not match the submitted glyphs.
	ErrPartition = errors.New("monument: partition failed")

	// ErrUnsupportedAntialiasing is returned for an unknown or rejected
	// antialiasing strategy.
	ErrUnsupportedAntialiasing = errors.New("monument: unsupported antialiasing strategy")

	// ErrView is returned when the render view rejects the prepared
	// attributes or geometry.
	ErrView = errors.New("monument: render view rejected output")

	// ErrCanceled is returned when the run's context ends before the view
	// is ready. The context error is the cause.
	ErrCanceled = errors.New("monument: run canceled")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("monument: invalid config")

	// ErrAlreadyStarted is returned when a single-run coordinator is run twice.
	ErrAlreadyStarted = errors.New("monument: pipeline already started")
)

// Error describes a failure of one pipeline operation.
// Kind is one of the Err* sentinels above; Err is the underlying cause.
type Error struct {
	Kind error
	Op   string
	Err  error
}

// NewError wraps err with the given kind and operation name.
func NewError(kind error, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the error kind of err, or nil if err carries none.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}
