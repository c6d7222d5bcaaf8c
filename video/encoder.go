// Package video writes presented trail frames to a video file or a PNG sequence
package video

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	vidio "github.com/AlexEidt/Vidio"
)

// ErrFrameSize is returned when a frame does not match the sink dimensions
var ErrFrameSize = errors.New("video: frame size mismatch")

// Sink consumes frames in presentation order
type Sink interface {
	WriteFrame(img *image.RGBA) error
	// Frames returns the number of frames written so far
	Frames() int
	Close() error
}

var (
	_ Sink = (*Encoder)(nil)
	_ Sink = (*PNGSequence)(nil)
)

// frameWriter is the subset of vidio.VideoWriter used by Encoder
type frameWriter interface {
	Write(frame []byte) error
	Close()
}

// Encoder streams RGBA frames into a video file through ffmpeg
type Encoder struct {
	w      frameWriter
	width  int
	height int
	frames int
	buf    []byte
}

// Open creates an encoder writing a width x height video at fps to path
func Open(path string, width, height int, fps float64) (*Encoder, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	w, err := vidio.NewVideoWriter(path, width, height, &vidio.Options{FPS: fps})
	if err != nil {
		return nil, fmt.Errorf("failed to open video writer: %w", err)
	}
	return newEncoder(w, width, height), nil
}

func newEncoder(w frameWriter, width, height int) *Encoder {
	return &Encoder{
		w:      w,
		width:  width,
		height: height,
		buf:    make([]byte, width*height*4),
	}
}

// WriteFrame appends one frame, rows are repacked when the image stride has padding
func (e *Encoder) WriteFrame(img *image.RGBA) error {
	b := img.Bounds()
	if b.Dx() != e.width || b.Dy() != e.height {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrFrameSize, b.Dx(), b.Dy(), e.width, e.height)
	}

	pix := img.Pix
	rowLen := e.width * 4
	if img.Stride != rowLen || len(pix) != len(e.buf) {
		for y := 0; y < e.height; y++ {
			off := img.PixOffset(b.Min.X, b.Min.Y+y)
			copy(e.buf[y*rowLen:(y+1)*rowLen], img.Pix[off:off+rowLen])
		}
		pix = e.buf
	}

	if err := e.w.Write(pix); err != nil {
		return fmt.Errorf("failed to write frame %d: %w", e.frames, err)
	}
	e.frames++
	return nil
}

// Frames returns the number of frames written
func (e *Encoder) Frames() int {
	return e.frames
}

// Close flushes and closes the video file
func (e *Encoder) Close() error {
	e.w.Close()
	return nil
}

// PNGSequence writes each frame as frame_NNNNN.png in a directory
type PNGSequence struct {
	dir    string
	frames int
}

// NewPNGSequence creates dir if needed
func NewPNGSequence(dir string) (*PNGSequence, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create frame directory: %w", err)
	}
	return &PNGSequence{dir: dir}, nil
}

func (p *PNGSequence) WriteFrame(img *image.RGBA) error {
	path := filepath.Join(p.dir, fmt.Sprintf("frame_%05d.png", p.frames))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create frame file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode frame %d: %w", p.frames, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close frame file: %w", err)
	}
	p.frames++
	return nil
}

// Frames returns the number of frames written
func (p *PNGSequence) Frames() int {
	return p.frames
}

func (p *PNGSequence) Close() error {
	return nil
}
