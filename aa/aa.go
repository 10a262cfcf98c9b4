// Package aa selects the antialiasing strategy handed to the render view.
//
// The set of strategies is closed. Select maps a configured name onto one
// of them and fails for unknown names and for strategies the 3D view
// cannot use, rather than falling back to a default.
package aa

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/monument"
)

// Kind identifies an antialiasing strategy.
type Kind int

const (
	// KindNone renders without antialiasing.
	KindNone Kind = iota

	// KindSSAA supersamples the whole frame.
	// Level is the number of samples per pixel.
	KindSSAA

	// KindXCAA computes exact coverage per pixel in the fragment shader.
	KindXCAA

	// KindECAA uses edge coverage from precomputed edge lists.
	// It needs a 2D-aligned target and is always rejected by the 3D view.
	KindECAA
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSSAA:
		return "ssaa"
	case KindXCAA:
		return "xcaa"
	case KindECAA:
		return "ecaa"
	default:
		return "unknown"
	}
}

// Supported reports whether the 3D view accepts strategies of this kind.
func (k Kind) Supported() bool {
	return k == KindNone || k == KindSSAA || k == KindXCAA
}

// Kinds lists every known kind, supported or not.
func Kinds() []Kind {
	return []Kind{KindNone, KindSSAA, KindXCAA, KindECAA}
}

// ParseKind returns the kind with the given name. Matching ignores case
// and surrounding space.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range Kinds() {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// Strategy is a selected antialiasing configuration.
type Strategy interface {
	Kind() Kind

	// Level is the sample count for supersampling strategies and 1
	// otherwise.
	Level() int

	// Subpixel reports whether coverage is computed per colour channel.
	Subpixel() bool

	// SupersampleScale returns the factor by which the render target is
	// enlarged in each axis.
	SupersampleScale() (x, y int)
}

var ssaaLevels = []int{1, 2, 4, 8, 16}

// Select builds the strategy named by name. Unknown names, rejected kinds
// and invalid supersampling levels fail with an error whose kind is
// monument.ErrUnsupportedAntialiasing.
func Select(name string, level int, subpixel bool) (Strategy, error) {
	k, ok := ParseKind(name)
	if !ok {
		return nil, monument.NewError(monument.ErrUnsupportedAntialiasing, "select",
			fmt.Errorf("unknown strategy %q", name))
	}

	switch k {
	case KindNone:
		return noAA{}, nil
	case KindSSAA:
		if !slices.Contains(ssaaLevels, level) {
			return nil, monument.NewError(monument.ErrUnsupportedAntialiasing, "select",
				fmt.Errorf("ssaa level %d not in %v", level, ssaaLevels))
		}
		return &ssaa{level: level, subpixel: subpixel}, nil
	case KindXCAA:
		return &xcaa{subpixel: subpixel}, nil
	default:
		return nil, monument.NewError(monument.ErrUnsupportedAntialiasing, "select",
			fmt.Errorf("%s is not available in the 3D view", k))
	}
}

// FromConfig selects the strategy described by cfg.
func FromConfig(cfg monument.AntialiasingConfig) (Strategy, error) {
	return Select(cfg.Strategy, cfg.Level, cfg.Subpixel)
}

type noAA struct{}

func (noAA) Kind() Kind                   { return KindNone }
func (noAA) Level() int                   { return 1 }
func (noAA) Subpixel() bool               { return false }
func (noAA) SupersampleScale() (int, int) { return 1, 1 }
func (noAA) String() string               { return "none" }

type ssaa struct {
	level    int
	subpixel bool
}

func (s *ssaa) Kind() Kind     { return KindSSAA }
func (s *ssaa) Level() int     { return s.level }
func (s *ssaa) Subpixel() bool { return s.subpixel }

// SupersampleScale splits the level into a grid that is at most twice as
// wide as it is tall. Subpixel rendering triples the horizontal samples.
func (s *ssaa) SupersampleScale() (int, int) {
	var x, y int
	switch s.level {
	case 2:
		x, y = 2, 1
	case 4:
		x, y = 2, 2
	case 8:
		x, y = 4, 2
	case 16:
		x, y = 4, 4
	default:
		x, y = 1, 1
	}
	if s.subpixel {
		x *= 3
	}
	return x, y
}

func (s *ssaa) String() string {
	if s.subpixel {
		return fmt.Sprintf("ssaa x%d subpixel", s.level)
	}
	return fmt.Sprintf("ssaa x%d", s.level)
}

type xcaa struct {
	subpixel bool
}

func (x *xcaa) Kind() Kind     { return KindXCAA }
func (x *xcaa) Level() int     { return 1 }
func (x *xcaa) Subpixel() bool { return x.subpixel }

func (x *xcaa) SupersampleScale() (int, int) {
	if x.subpixel {
		return 3, 1
	}
	return 1, 1
}

func (x *xcaa) String() string {
	if x.subpixel {
		return "xcaa subpixel"
	}
	return "xcaa"
}
