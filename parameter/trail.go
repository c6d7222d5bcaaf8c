package parameter

// Trail defaults applied when an option is not given
const (
	DefaultTrailColor  = "#ff4f9a"
	DefaultTrailLength = 10
	DefaultTrailSpeed  = 0.1
	DefaultCursorSize  = 8.0
	DefaultOpacity     = 0.6
	DefaultFollowSpeed = 0.2
)

// Terminal cell geometry in pixels, used to map cells to trail coordinates
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

// TrailPalette is cycled by the terminal color key
var TrailPalette = []string{
	"#ff4f9a",
	"#4fc3ff",
	"#9aff4f",
	"#ffd84f",
	"#c84fff",
}

// Headless surface defaults
const (
	DefaultFrameWidth  = 640
	DefaultFrameHeight = 360
	DefaultBackground  = "#101018"
)

// Logging
const (
	// MaxLogSize triggers rotation of the log file (10 MB)
	MaxLogSize = 10 * 1024 * 1024
)

// Audio chime
const (
	ChimeSampleRate = 44100
	ChimeFrequency  = 880.0
	ChimeDurationMs = 50
)
