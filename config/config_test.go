package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cursor-trail/parameter"
	"github.com/lixenwraith/cursor-trail/trail"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	RegisterReplayFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, trail.DefaultConfig(), s.Trail)
	assert.Equal(t, parameter.DefaultFPS, s.FPS)
	assert.Equal(t, "info", s.LogLevel)
	assert.False(t, s.Sound)
	assert.Equal(t, parameter.DefaultCellWidth, s.CellWidth)
	assert.Equal(t, parameter.DefaultCellHeight, s.CellHeight)
	assert.Equal(t, parameter.DefaultFrameWidth, s.Width)
	assert.Equal(t, parameter.DefaultFrameHeight, s.Height)
	assert.Equal(t, "lissajous", s.Path)
	assert.Equal(t, 10*time.Second, s.Duration)
}

func TestLoad_UnchangedFlagsKeepDefaults(t *testing.T) {
	s, err := Load(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, trail.DefaultConfig(), s.Trail)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, "trail.toml", `
trail-color = "#00ff00"
trail-length = 20
opacity = 0.9
fps = 30
`)

	// File over defaults
	s, err := Load(newFlags(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", s.Trail.TrailColor)
	assert.Equal(t, 20, s.Trail.TrailLength)
	assert.Equal(t, 0.9, s.Trail.Opacity)
	assert.Equal(t, 30, s.FPS)

	// Environment over file
	t.Setenv("CURSOR_TRAIL_TRAIL_LENGTH", "25")
	t.Setenv("CURSOR_TRAIL_FPS", "45")
	s, err = Load(newFlags(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, 25, s.Trail.TrailLength)
	assert.Equal(t, 45, s.FPS)
	assert.Equal(t, "#00ff00", s.Trail.TrailColor)

	// Flags over environment
	s, err = Load(newFlags(t, "--config", path, "--trail-length", "3", "--trail-color", "#123456"))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Trail.TrailLength)
	assert.Equal(t, "#123456", s.Trail.TrailColor)
	assert.Equal(t, 45, s.FPS)
	assert.Equal(t, 0.9, s.Trail.Opacity)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "trail.yaml", "follow-speed: 0.5\ncursor-size: 12\n")
	s, err := Load(newFlags(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, 0.5, s.Trail.FollowSpeed)
	assert.Equal(t, 12.0, s.Trail.CursorSize)
}

func TestLoad_OptionNamesInFile(t *testing.T) {
	path := writeConfig(t, "trail.yaml", "trailLength: 3\nfollowSpeed: 0.5\ntrailColor: \"#00ff00\"\ncursorSize: 14\nopacity: 0.3\ntrailSpeed: 0.7\n")

	s, err := Load(newFlags(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Trail.TrailLength)
	assert.Equal(t, 0.5, s.Trail.FollowSpeed)
	assert.Equal(t, "#00ff00", s.Trail.TrailColor)
	assert.Equal(t, 14.0, s.Trail.CursorSize)
	assert.Equal(t, 0.3, s.Trail.Opacity)
	assert.Equal(t, 0.7, s.Trail.TrailSpeed)

	// Config path from the environment, flags still win
	t.Setenv("CURSOR_TRAIL_CONFIG", path)
	s, err = Load(newFlags(t, "--follow-speed", "0.9"))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Trail.TrailLength)
	assert.Equal(t, 0.9, s.Trail.FollowSpeed)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(newFlags(t, "--config", "/nonexistent/trail.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_BadTrailValue(t *testing.T) {
	t.Setenv("CURSOR_TRAIL_TRAIL_LENGTH", "many")
	_, err := Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trailLength")
}

func TestRecordFlags(t *testing.T) {
	fs := pflag.NewFlagSet("record", pflag.ContinueOnError)
	RegisterFlags(fs)
	RegisterRecordFlags(fs)
	require.NoError(t, fs.Parse([]string{"--duration", "3s", "--output", "out.mp4", "--width", "320"}))

	s, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, s.Duration)
	assert.Equal(t, "out.mp4", s.Output)
	assert.Equal(t, 320, s.Width)
}

func TestTrailOptions_RoundTrip(t *testing.T) {
	s := Settings{Trail: trail.DefaultConfig().Apply(trail.WithTrailLength(4), trail.WithOpacity(0.1))}
	got := trail.Config{}.Apply(s.TrailOptions()...)
	assert.Equal(t, s.Trail, got)
}
