package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cursor-trail/engine"
	"github.com/lixenwraith/cursor-trail/event"
	"github.com/lixenwraith/cursor-trail/trail"
)

func newSimScreen(t *testing.T) *Screen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := Attach(sim, 8, 16)
	require.NoError(t, err)
	t.Cleanup(s.Fini)
	return s
}

func runeAt(s *Screen, col, row int) rune {
	r, _, _, _ := s.GetContent(col, row)
	return r
}

func TestTranslate_Mouse(t *testing.T) {
	s := newSimScreen(t)

	out := s.Translate(tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone))
	require.Len(t, out, 1)
	assert.Equal(t, event.PointerMove(24, 32), out[0])

	out = s.Translate(tcell.NewEventMouse(4, 2, tcell.Button1, tcell.ModNone))
	require.Len(t, out, 2)
	assert.Equal(t, event.PointerMove(32, 32), out[0])
	assert.Equal(t, event.PointerPress(32, 32), out[1])

	// Held button produces no second press
	out = s.Translate(tcell.NewEventMouse(5, 2, tcell.Button1, tcell.ModNone))
	require.Len(t, out, 1)
	assert.Equal(t, event.EventPointerMove, out[0].Type)
}

func TestTranslate_KeysAndResize(t *testing.T) {
	s := newSimScreen(t)

	out := s.Translate(tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone))
	require.Len(t, out, 1)
	assert.Equal(t, event.RuneKey('+'), out[0])

	out = s.Translate(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	require.Len(t, out, 1)
	assert.Equal(t, event.KeyEscape, out[0].Key)

	out = s.Translate(tcell.NewEventResize(100, 30))
	require.Len(t, out, 1)
	assert.Equal(t, event.Resize(100, 30), out[0])
}

func TestSurface_SmallMarkerSingleGlyph(t *testing.T) {
	s := newSimScreen(t)
	surface := NewSurface(s, "#000000")

	style := trail.Style{Color: "#ffffff", Size: 8, Opacity: 0.5}
	surface.NewElement(style, 16, 32)
	surface.Present()

	// Center (20, 36) falls in cell (2, 2)
	assert.Equal(t, glyphSmall, runeAt(s, 2, 2))

	_, _, cellStyle, _ := s.GetContent(2, 2)
	fg, _, _ := cellStyle.Decompose()
	want := toTcell(blend(parseColor("#000000"), parseColor("#ffffff"), 0.5))
	assert.Equal(t, want, fg)
}

func TestSurface_LargeMarkerDisc(t *testing.T) {
	s := newSimScreen(t)
	surface := NewSurface(s, "#000000")

	el := surface.NewElement(trail.Style{Color: "#ff0000", Size: 48, Opacity: 1}, 0, 0)
	surface.Present()

	// Center (24, 24), radius 24
	assert.Equal(t, glyphFill, runeAt(s, 2, 1))
	assert.Equal(t, glyphFill, runeAt(s, 3, 1))
	assert.Equal(t, ' ', runeAt(s, 0, 0))
	assert.Equal(t, ' ', runeAt(s, 10, 5))

	el.MoveTo(80, 80)
	surface.Present()
	assert.Equal(t, ' ', runeAt(s, 2, 1))
	assert.Equal(t, glyphFill, runeAt(s, 12, 6))
}

func TestSurface_RemoveClearsCells(t *testing.T) {
	s := newSimScreen(t)
	surface := NewSurface(s, "#000000")

	a := surface.NewElement(trail.Style{Color: "#ffffff", Size: 8, Opacity: 1}, 0, 0)
	surface.NewElement(trail.Style{Color: "#ffffff", Size: 8, Opacity: 1}, 80, 0)
	assert.Equal(t, 2, surface.Len())

	a.Remove()
	a.Remove()
	assert.Equal(t, 1, surface.Len())

	surface.Present()
	assert.Equal(t, ' ', runeAt(s, 0, 0))
	assert.Equal(t, glyphSmall, runeAt(s, 10, 0))
}

func TestSurface_OffscreenIsClipped(t *testing.T) {
	s := newSimScreen(t)
	surface := NewSurface(s, "#000000")
	surface.NewElement(trail.Style{Color: "#ffffff", Size: 64, Opacity: 1}, -1000, -1000)
	assert.NotPanics(t, surface.Present)
}

func TestSurface_StatusLine(t *testing.T) {
	s := newSimScreen(t)
	surface := NewSurface(s, "not-a-color")
	surface.SetStatus(func() string { return "markers 3" })
	surface.Present()

	_, rows := s.Size()
	assert.Equal(t, 'm', runeAt(s, 0, rows-1))
	assert.Equal(t, '3', runeAt(s, 8, rows-1))
}

func TestSurface_HostsController(t *testing.T) {
	s := newSimScreen(t)
	surface := NewSurface(s, "#000000")
	loop := engine.NewLoop(engine.WithPresenter(surface.Present))

	c := trail.New(surface, loop, loop)
	require.NoError(t, c.Initialize(trail.WithTrailLength(3), trail.WithFollowSpeed(0.5)))
	assert.Equal(t, 3, surface.Len())

	for _, ev := range s.Translate(tcell.NewEventMouse(10, 4, tcell.ButtonNone, tcell.ModNone)) {
		loop.Post(ev)
	}
	loop.Step()

	// Pointer (80, 64), markers halfway from origin at (40, 32), center cell (5, 2)
	assert.Equal(t, glyphSmall, runeAt(s, 5, 2))

	c.Reconfigure(trail.WithTrailLength(1))
	assert.Equal(t, 1, surface.Len())

	c.Teardown()
	loop.Step()
	assert.Equal(t, 0, surface.Len())
	assert.Equal(t, ' ', runeAt(s, 5, 2))
}
