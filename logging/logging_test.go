package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cursor-trail/parameter"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":    zerolog.DebugLevel,
		" WARN ":   zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"trace":    zerolog.TraceLevel,
		"off":      zerolog.Disabled,
		"":         zerolog.InfoLevel,
		"verbose?": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestSetup_DisabledByDefault(t *testing.T) {
	logger, closer, err := Setup(Options{})
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestSetup_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := Setup(Options{Level: "info", Console: true, ConsoleOut: &buf})
	require.NoError(t, err)
	defer closer.Close()

	logger.Debug().Msg("hidden")
	logger.Info().Int("markers", 3).Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "markers=")
}

func TestSetup_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "trail.log")
	logger, closer, err := Setup(Options{Level: "debug", File: path})
	require.NoError(t, err)

	logger.Debug().Msg("written")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written")
	// No color codes in the file sink
	assert.NotContains(t, string(data), "\x1b[")
}

func TestSetup_Rotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trail.log")
	require.NoError(t, os.WriteFile(path, make([]byte, parameter.MaxLogSize+1), 0644))

	_, closer, err := Setup(Options{File: path})
	require.NoError(t, err)
	defer closer.Close()

	old, err := os.Stat(path + ".old")
	require.NoError(t, err)
	assert.Equal(t, int64(parameter.MaxLogSize+1), old.Size())

	cur, err := os.Stat(path)
	require.NoError(t, err)
	assert.Less(t, cur.Size(), int64(parameter.MaxLogSize))
}

func TestRotate_SmallFileKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trail.log")
	require.NoError(t, os.WriteFile(path, []byte("short"), 0644))

	require.NoError(t, rotate(path, 1024))
	_, err := os.Stat(path + ".old")
	assert.True(t, os.IsNotExist(err))

	// Missing file is not an error
	assert.NoError(t, rotate(filepath.Join(t.TempDir(), "absent.log"), 1024))
}
