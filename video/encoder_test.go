package video

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	frames [][]byte
	err    error
	closed bool
}

func (f *fakeWriter) Write(frame []byte) error {
	if f.err != nil {
		return f.err
	}
	cp := make([]byte, len(frame))
	copy(cp, frame)
	f.frames = append(f.frames, cp)
	return nil
}

func (f *fakeWriter) Close() { f.closed = true }

func TestEncoder_WritesFrames(t *testing.T) {
	fw := &fakeWriter{}
	enc := newEncoder(fw, 4, 2)

	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.SetRGBA(1, 1, color.RGBA{R: 9, G: 8, B: 7, A: 255})
	require.NoError(t, enc.WriteFrame(img))
	require.NoError(t, enc.WriteFrame(img))

	assert.Equal(t, 2, enc.Frames())
	require.Len(t, fw.frames, 2)
	assert.Len(t, fw.frames[0], 4*2*4)
	off := (1*4 + 1) * 4
	assert.Equal(t, []byte{9, 8, 7, 255}, fw.frames[0][off:off+4])

	require.NoError(t, enc.Close())
	assert.True(t, fw.closed)
}

func TestEncoder_RepacksSubImage(t *testing.T) {
	fw := &fakeWriter{}
	enc := newEncoder(fw, 2, 2)

	big := image.NewRGBA(image.Rect(0, 0, 4, 4))
	big.SetRGBA(2, 2, color.RGBA{R: 200, A: 255})
	sub := big.SubImage(image.Rect(2, 2, 4, 4)).(*image.RGBA)

	require.NoError(t, enc.WriteFrame(sub))
	require.Len(t, fw.frames, 1)
	assert.Len(t, fw.frames[0], 2*2*4)
	assert.Equal(t, byte(200), fw.frames[0][0])
}

func TestEncoder_RejectsWrongSize(t *testing.T) {
	enc := newEncoder(&fakeWriter{}, 4, 4)
	err := enc.WriteFrame(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	assert.ErrorIs(t, err, ErrFrameSize)
	assert.Equal(t, 0, enc.Frames())
}

func TestEncoder_WrapsWriteError(t *testing.T) {
	boom := errors.New("pipe closed")
	enc := newEncoder(&fakeWriter{err: boom}, 1, 1)
	err := enc.WriteFrame(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	assert.ErrorIs(t, err, boom)
}

func TestPNGSequence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	seq, err := NewPNGSequence(dir)
	require.NoError(t, err)

	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	require.NoError(t, seq.WriteFrame(img))
	require.NoError(t, seq.WriteFrame(img))
	require.NoError(t, seq.Close())
	assert.Equal(t, 2, seq.Frames())

	f, err := os.Open(filepath.Join(dir, "frame_00001.png"))
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 3, decoded.Bounds().Dx())
}
