// Package config layers defaults, an optional config file, environment and flags
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lixenwraith/cursor-trail/parameter"
	"github.com/lixenwraith/cursor-trail/trail"
)

// EnvPrefix namespaces environment overrides, e.g. CURSOR_TRAIL_TRAIL_LENGTH
const EnvPrefix = "CURSOR_TRAIL"

// Keys, shared by flags, environment and config files
const (
	KeyConfig      = "config"
	KeyTrailColor  = "trail-color"
	KeyTrailLength = "trail-length"
	KeyTrailSpeed  = "trail-speed"
	KeyCursorSize  = "cursor-size"
	KeyOpacity     = "opacity"
	KeyFollowSpeed = "follow-speed"
	KeyFPS         = "fps"
	KeyLogLevel    = "log-level"
	KeyLogFile     = "log-file"
	KeySound       = "sound"
	KeyBackground  = "background"

	KeyCellWidth  = "cell-width"
	KeyCellHeight = "cell-height"

	KeyWidth    = "width"
	KeyHeight   = "height"
	KeyFrames   = "frames"
	KeyPath     = "path"
	KeyOutput   = "output"
	KeyDuration = "duration"
)

// trailKeys maps config keys to trail option keys
var trailKeys = map[string]string{
	KeyTrailColor:  trail.KeyTrailColor,
	KeyTrailLength: trail.KeyTrailLength,
	KeyTrailSpeed:  trail.KeyTrailSpeed,
	KeyCursorSize:  trail.KeyCursorSize,
	KeyOpacity:     trail.KeyOpacity,
	KeyFollowSpeed: trail.KeyFollowSpeed,
}

// Settings is the resolved configuration of one run
type Settings struct {
	Trail trail.Config

	FPS        int
	LogLevel   string
	LogFile    string
	Sound      bool
	Background string

	// term
	CellWidth  float64
	CellHeight float64

	// replay, record
	Width    int
	Height   int
	Frames   int
	Path     string
	Output   string
	Duration time.Duration
}

// TrailOptions returns options reproducing s.Trail on a default configuration
func (s Settings) TrailOptions() []trail.Option {
	return s.Trail.Options()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyTrailColor, parameter.DefaultTrailColor)
	v.SetDefault(KeyTrailLength, parameter.DefaultTrailLength)
	v.SetDefault(KeyTrailSpeed, parameter.DefaultTrailSpeed)
	v.SetDefault(KeyCursorSize, parameter.DefaultCursorSize)
	v.SetDefault(KeyOpacity, parameter.DefaultOpacity)
	v.SetDefault(KeyFollowSpeed, parameter.DefaultFollowSpeed)
	v.SetDefault(KeyFPS, parameter.DefaultFPS)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeySound, false)
	v.SetDefault(KeyBackground, parameter.DefaultBackground)

	v.SetDefault(KeyCellWidth, parameter.DefaultCellWidth)
	v.SetDefault(KeyCellHeight, parameter.DefaultCellHeight)

	v.SetDefault(KeyWidth, parameter.DefaultFrameWidth)
	v.SetDefault(KeyHeight, parameter.DefaultFrameHeight)
	v.SetDefault(KeyFrames, 240)
	v.SetDefault(KeyPath, "lissajous")
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyDuration, 10*time.Second)
}

// RegisterFlags adds the flags shared by every host
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeyConfig, "", "config file (toml, yaml or json)")
	fs.String(KeyTrailColor, parameter.DefaultTrailColor, "marker color")
	fs.Int(KeyTrailLength, parameter.DefaultTrailLength, "number of markers")
	fs.Float64(KeyTrailSpeed, parameter.DefaultTrailSpeed, "reserved")
	fs.Float64(KeyCursorSize, parameter.DefaultCursorSize, "marker diameter in pixels")
	fs.Float64(KeyOpacity, parameter.DefaultOpacity, "marker opacity 0..1")
	fs.Float64(KeyFollowSpeed, parameter.DefaultFollowSpeed, "fraction of distance closed per frame")
	fs.Int(KeyFPS, parameter.DefaultFPS, "frames per second")
	fs.String(KeyLogLevel, "info", "trace, debug, info, warn, error or off")
	fs.String(KeyLogFile, "", "log file path")
	fs.Bool(KeySound, false, "play a chime on pointer press")
	fs.String(KeyBackground, parameter.DefaultBackground, "background color")
}

// RegisterTermFlags adds terminal host flags
func RegisterTermFlags(fs *pflag.FlagSet) {
	fs.Float64(KeyCellWidth, parameter.DefaultCellWidth, "cell width in pixels")
	fs.Float64(KeyCellHeight, parameter.DefaultCellHeight, "cell height in pixels")
}

// RegisterReplayFlags adds headless replay flags
func RegisterReplayFlags(fs *pflag.FlagSet) {
	registerFrameFlags(fs)
	fs.Int(KeyFrames, 240, "frames to render")
	fs.String(KeyPath, "lissajous", "pointer path: step, line, circle or lissajous")
	fs.String(KeyOutput, "", "PNG frame directory, or .mp4 file")
}

// RegisterRecordFlags adds desktop recording flags
func RegisterRecordFlags(fs *pflag.FlagSet) {
	registerFrameFlags(fs)
	fs.Duration(KeyDuration, 10*time.Second, "recording length")
	fs.String(KeyOutput, "", ".mp4 output file")
}

func registerFrameFlags(fs *pflag.FlagSet) {
	fs.Int(KeyWidth, parameter.DefaultFrameWidth, "frame width in pixels")
	fs.Int(KeyHeight, parameter.DefaultFrameHeight, "frame height in pixels")
}

// Load resolves settings with precedence defaults < config file < environment < flags.
// fs may be nil; a --config flag, when present and set, names the config file
func Load(fs *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Settings{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Option names (trailLength, followSpeed, ...) are accepted in config files.
	// Registered after reading so file values under those names move to the flag keys
	for key, optKey := range trailKeys {
		v.RegisterAlias(optKey, key)
	}

	return decode(v)
}

func decode(v *viper.Viper) (Settings, error) {
	raw := make(map[string]any, len(trailKeys))
	for key, optKey := range trailKeys {
		raw[optKey] = v.Get(key)
	}
	opts, err := trail.OptionsFromMap(raw)
	if err != nil {
		return Settings{}, fmt.Errorf("trail config: %w", err)
	}

	return Settings{
		Trail:      trail.DefaultConfig().Apply(opts...),
		FPS:        v.GetInt(KeyFPS),
		LogLevel:   v.GetString(KeyLogLevel),
		LogFile:    v.GetString(KeyLogFile),
		Sound:      v.GetBool(KeySound),
		Background: v.GetString(KeyBackground),
		CellWidth:  v.GetFloat64(KeyCellWidth),
		CellHeight: v.GetFloat64(KeyCellHeight),
		Width:      v.GetInt(KeyWidth),
		Height:     v.GetInt(KeyHeight),
		Frames:     v.GetInt(KeyFrames),
		Path:       v.GetString(KeyPath),
		Output:     v.GetString(KeyOutput),
		Duration:   v.GetDuration(KeyDuration),
	}, nil
}
