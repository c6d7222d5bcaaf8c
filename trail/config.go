package trail

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/lixenwraith/cursor-trail/parameter"
)

// Config holds the trail appearance and motion settings
type Config struct {
	TrailColor  string  `mapstructure:"trailColor"`
	TrailLength int     `mapstructure:"trailLength"`
	TrailSpeed  float64 `mapstructure:"trailSpeed"` // Reserved, not read by the frame update
	CursorSize  float64 `mapstructure:"cursorSize"` // Marker diameter in pixels
	Opacity     float64 `mapstructure:"opacity"`
	FollowSpeed float64 `mapstructure:"followSpeed"` // Fraction of remaining distance closed per frame
}

// DefaultConfig returns the configuration used for any option not given
func DefaultConfig() Config {
	return Config{
		TrailColor:  parameter.DefaultTrailColor,
		TrailLength: parameter.DefaultTrailLength,
		TrailSpeed:  parameter.DefaultTrailSpeed,
		CursorSize:  parameter.DefaultCursorSize,
		Opacity:     parameter.DefaultOpacity,
		FollowSpeed: parameter.DefaultFollowSpeed,
	}
}

// Style returns the visual part of the configuration
func (c Config) Style() Style {
	return Style{
		Color:   c.TrailColor,
		Size:    c.CursorSize,
		Opacity: c.Opacity,
	}
}

// length returns the marker count bound, negative counts yield no markers
func (c Config) length() int {
	if c.TrailLength < 0 {
		return 0
	}
	return c.TrailLength
}

// Option overrides a single configuration field
type Option func(*Config)

// WithTrailColor sets the marker color as "#rrggbb"
func WithTrailColor(color string) Option {
	return func(c *Config) { c.TrailColor = color }
}

// WithTrailLength sets the marker count, negative counts yield no markers
func WithTrailLength(n int) Option {
	return func(c *Config) { c.TrailLength = n }
}

// WithTrailSpeed sets the reserved pointer tracking speed
func WithTrailSpeed(speed float64) Option {
	return func(c *Config) { c.TrailSpeed = speed }
}

// WithCursorSize sets the marker diameter in pixels
func WithCursorSize(size float64) Option {
	return func(c *Config) { c.CursorSize = size }
}

// WithOpacity sets marker opacity, 0 transparent to 1 opaque
func WithOpacity(opacity float64) Option {
	return func(c *Config) { c.Opacity = opacity }
}

// WithFollowSpeed sets the fraction of remaining distance closed per frame
func WithFollowSpeed(speed float64) Option {
	return func(c *Config) { c.FollowSpeed = speed }
}

// Apply returns a copy of c with opts applied in order
func (c Config) Apply(opts ...Option) Config {
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// Options returns options that reproduce c when applied to any configuration
func (c Config) Options() []Option {
	return []Option{
		WithTrailColor(c.TrailColor),
		WithTrailLength(c.TrailLength),
		WithTrailSpeed(c.TrailSpeed),
		WithCursorSize(c.CursorSize),
		WithOpacity(c.Opacity),
		WithFollowSpeed(c.FollowSpeed),
	}
}

// Recognized option keys
const (
	KeyTrailColor  = "trailColor"
	KeyTrailLength = "trailLength"
	KeyTrailSpeed  = "trailSpeed"
	KeyCursorSize  = "cursorSize"
	KeyOpacity     = "opacity"
	KeyFollowSpeed = "followSpeed"
)

// OptionsFromMap converts a loosely typed option map into options
// Unrecognized keys are ignored; values that cannot be converted return an error
func OptionsFromMap(m map[string]any) ([]Option, error) {
	opts := make([]Option, 0, len(m))
	for key, raw := range m {
		switch key {
		case KeyTrailColor:
			v, err := cast.ToStringE(raw)
			if err != nil {
				return nil, fmt.Errorf("option %s: %w", key, err)
			}
			opts = append(opts, WithTrailColor(v))
		case KeyTrailLength:
			v, err := cast.ToIntE(raw)
			if err != nil {
				return nil, fmt.Errorf("option %s: %w", key, err)
			}
			opts = append(opts, WithTrailLength(v))
		case KeyTrailSpeed, KeyCursorSize, KeyOpacity, KeyFollowSpeed:
			v, err := cast.ToFloat64E(raw)
			if err != nil {
				return nil, fmt.Errorf("option %s: %w", key, err)
			}
			opts = append(opts, floatOption(key, v))
		}
	}
	return opts, nil
}

func floatOption(key string, v float64) Option {
	switch key {
	case KeyTrailSpeed:
		return WithTrailSpeed(v)
	case KeyCursorSize:
		return WithCursorSize(v)
	case KeyOpacity:
		return WithOpacity(v)
	default:
		return WithFollowSpeed(v)
	}
}
