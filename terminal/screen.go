// Package terminal hosts the trail in a tcell screen.
//
// Mouse motion is reported in pixel units: a cell at (col, row) maps to the pixel
// (col*CellWidth, row*CellHeight). Markers are drawn as filled discs of cells.
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cursor-trail/event"
	"github.com/lixenwraith/cursor-trail/parameter"
)

// Screen wraps a tcell screen with pixel/cell geometry and event translation
type Screen struct {
	tcell.Screen
	cellW, cellH float64

	// Previous button state, press events fire on the rising edge
	buttons tcell.ButtonMask
}

// NewScreen creates and initializes the terminal screen with mouse motion reporting
func NewScreen(cellW, cellH float64) (*Screen, error) {
	ts, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return Attach(ts, cellW, cellH)
}

// Attach initializes an existing tcell screen, used with simulation screens in tests
func Attach(ts tcell.Screen, cellW, cellH float64) (*Screen, error) {
	if err := ts.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}
	if cellW <= 0 {
		cellW = parameter.DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = parameter.DefaultCellHeight
	}
	ts.EnableMouse(tcell.MouseMotionEvents)
	ts.HideCursor()
	ts.Clear()
	return &Screen{Screen: ts, cellW: cellW, cellH: cellH}, nil
}

// CellSize returns the pixel size of one cell
func (s *Screen) CellSize() (w, h float64) {
	return s.cellW, s.cellH
}

// PixelSize returns the screen size in pixels
func (s *Screen) PixelSize() (w, h float64) {
	cols, rows := s.Size()
	return float64(cols) * s.cellW, float64(rows) * s.cellH
}

// Poll translates tcell events and posts them until the screen is finalized
// Blocks; run it on its own goroutine
func (s *Screen) Poll(post func(event.Event)) {
	for {
		ev := s.PollEvent()
		if ev == nil {
			return
		}
		for _, out := range s.Translate(ev) {
			post(out)
		}
	}
}

// Translate converts one tcell event into host events
// A mouse event always yields a move, plus a press on the left button's rising edge
func (s *Screen) Translate(ev tcell.Event) []event.Event {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		col, row := ev.Position()
		x := float64(col) * s.cellW
		y := float64(row) * s.cellH
		out := []event.Event{event.PointerMove(x, y)}

		btn := ev.Buttons()
		if btn&tcell.Button1 != 0 && s.buttons&tcell.Button1 == 0 {
			out = append(out, event.PointerPress(x, y))
		}
		s.buttons = btn
		return out

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape:
			return []event.Event{{Type: event.EventKey, Key: event.KeyEscape}}
		case tcell.KeyCtrlC:
			return []event.Event{{Type: event.EventKey, Key: event.KeyCtrlC}}
		case tcell.KeyRune:
			return []event.Event{event.RuneKey(ev.Rune())}
		}

	case *tcell.EventResize:
		w, h := ev.Size()
		return []event.Event{event.Resize(w, h)}
	}
	return nil
}
