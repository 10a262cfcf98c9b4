package text

// Defaults of NewFontSource.
const (
	DefaultCacheLimit = 512
	DefaultProbeRune  = 'A'
)

// SourceOption configures FontSource creation.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	cacheLimit int
	parserName string
	probe      rune
}

func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		cacheLimit: DefaultCacheLimit,
		parserName: defaultParserName,
		probe:      DefaultProbeRune,
	}
}

// WithCacheLimit sets the maximum number of cached glyph outlines.
// A value of 0 disables the cache limit.
func WithCacheLimit(n int) SourceOption {
	return func(c *sourceConfig) {
		c.cacheLimit = n
	}
}

// WithParser specifies the font parser backend by name: "ximage" for
// golang.org/x/image/font/opentype, "gotext" for go-text/typesetting, or
// any name passed to RegisterParser. An empty name selects "ximage".
func WithParser(name string) SourceOption {
	return func(c *sourceConfig) {
		if name == "" {
			name = defaultParserName
		}
		c.parserName = name
	}
}

// WithProbeRune sets the rune Supported requires a vector outline for.
func WithProbeRune(r rune) SourceOption {
	return func(c *sourceConfig) {
		c.probe = r
	}
}
