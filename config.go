package monument

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the immutable configuration of a pipeline run.
// Components receive the section they need; nothing reads globals.
type Config struct {
	Camera       CameraConfig       `toml:"camera"`
	Layout       LayoutConfig       `toml:"layout"`
	Antialiasing AntialiasingConfig `toml:"antialiasing"`
	Font         FontConfig         `toml:"font"`
}

// CameraConfig holds the projection constants and the initial camera pose.
type CameraConfig struct {
	// FOV is the vertical field of view in degrees.
	FOV float32 `toml:"fov"`

	// Near and Far are the clip plane distances.
	Near float32 `toml:"near"`
	Far  float32 `toml:"far"`

	// Scale is the fixed non-uniform scale that fits the justified text
	// (measured in font units) into camera space.
	Scale [3]float32 `toml:"scale"`

	// Position is the initial camera translation.
	Position [3]float32 `toml:"position"`
}

// LayoutConfig holds the justification constants.
type LayoutConfig struct {
	// TargetWidth is the width, in font units, every line is justified to.
	TargetWidth float64 `toml:"target_width"`

	// PixelsPerUnit converts font units into pixel space for glyph rects.
	PixelsPerUnit float64 `toml:"pixels_per_unit"`
}

// AntialiasingConfig names the antialiasing strategy handed to the view.
type AntialiasingConfig struct {
	Strategy string `toml:"strategy"`
	Level    int    `toml:"level"`
	Subpixel bool   `toml:"subpixel"`
}

// FontConfig selects the font parser backend.
type FontConfig struct {
	// Parser is the backend name: "ximage" (default) or "gotext".
	Parser string `toml:"parser"`
}

// DefaultConfig returns the configuration used by the demo.
func DefaultConfig() Config {
	return Config{
		Camera: CameraConfig{
			FOV:      45,
			Near:     0.01,
			Far:      10000,
			Scale:    [3]float32{1.0 / 200.0, 1.0 / 200.0, 1},
			Position: [3]float32{-375, 0, -1000},
		},
		Layout: LayoutConfig{
			TargetWidth:   150000,
			PixelsPerUnit: 1,
		},
		Antialiasing: AntialiasingConfig{
			Strategy: "xcaa",
			Level:    1,
		},
		Font: FontConfig{
			Parser: "ximage",
		},
	}
}

// DecodeConfig reads a TOML document on top of DefaultConfig.
// Unknown keys are rejected so typos do not pass silently.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a TOML config file.
func LoadConfig(path string) (Config, error) {
	// #nosec G304 -- config path is provided by the user
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("monument: failed to open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodeConfig(f)
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	switch {
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("%w: camera fov %v out of range (0, 180)", ErrInvalidConfig, c.Camera.FOV)
	case c.Camera.Near <= 0:
		return fmt.Errorf("%w: camera near %v must be positive", ErrInvalidConfig, c.Camera.Near)
	case c.Camera.Near >= c.Camera.Far:
		return fmt.Errorf("%w: camera near %v must be less than far %v", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	case c.Camera.Scale[0] == 0 || c.Camera.Scale[1] == 0 || c.Camera.Scale[2] == 0:
		return fmt.Errorf("%w: camera scale %v has a zero component", ErrInvalidConfig, c.Camera.Scale)
	case c.Layout.TargetWidth <= 0:
		return fmt.Errorf("%w: layout target width %v must be positive", ErrInvalidConfig, c.Layout.TargetWidth)
	case c.Layout.PixelsPerUnit <= 0:
		return fmt.Errorf("%w: layout pixels per unit %v must be positive", ErrInvalidConfig, c.Layout.PixelsPerUnit)
	}
	return nil
}
