package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/cursor-trail/parameter"
	"github.com/lixenwraith/cursor-trail/trail"
)

const (
	glyphFill  = '█'
	glyphSmall = '●'
)

// Surface draws trail markers as cell discs on a Screen
// Not safe for concurrent use; all calls come from the loop thread
type Surface struct {
	screen     *Screen
	background colorful.Color
	bgStyle    tcell.Style
	elements   []*element
	status     func() string
}

// NewSurface creates a surface drawing over the given background color
func NewSurface(screen *Screen, background string) *Surface {
	bg, err := colorful.Hex(background)
	if err != nil {
		bg, _ = colorful.Hex(parameter.DefaultBackground)
	}
	return &Surface{
		screen:     screen,
		background: bg,
		bgStyle:    tcell.StyleDefault.Background(toTcell(bg)),
	}
}

// SetStatus sets the provider for the bottom status line, nil hides it
func (s *Surface) SetStatus(fn func() string) {
	s.status = fn
}

// Len returns the number of attached elements
func (s *Surface) Len() int {
	return len(s.elements)
}

// NewElement attaches a marker element at pixel position (x, y)
func (s *Surface) NewElement(style trail.Style, x, y float64) trail.Element {
	el := &element{surface: s, x: x, y: y}
	el.SetStyle(style)
	s.elements = append(s.elements, el)
	return el
}

// Present clears the screen, draws every element in creation order and shows the frame
func (s *Surface) Present() {
	cols, rows := s.screen.Size()
	s.screen.Fill(' ', s.bgStyle)

	for _, el := range s.elements {
		el.draw(cols, rows)
	}

	if s.status != nil && rows > 0 {
		text := runewidth.Truncate(s.status(), cols, "…")
		style := s.bgStyle.Foreground(tcell.ColorGray)
		col := 0
		for _, r := range text {
			s.screen.SetContent(col, rows-1, r, nil, style)
			col += runewidth.RuneWidth(r)
		}
	}

	s.screen.Show()
}

func (s *Surface) remove(target *element) {
	for i, el := range s.elements {
		if el == target {
			s.elements = append(s.elements[:i], s.elements[i+1:]...)
			return
		}
	}
}

// element is a trail marker rendered as a disc of cells
type element struct {
	surface *Surface
	style   trail.Style
	cell    tcell.Style
	x, y    float64
	removed bool
}

func (e *element) SetStyle(style trail.Style) {
	e.style = style
	c := blend(e.surface.background, parseColor(style.Color), style.Opacity)
	e.cell = e.surface.bgStyle.Foreground(toTcell(c))
}

func (e *element) MoveTo(x, y float64) {
	e.x, e.y = x, y
}

func (e *element) Remove() {
	if e.removed {
		return
	}
	e.removed = true
	e.surface.remove(e)
}

// draw fills cells whose centers lie inside the marker circle
// Markers no larger than a cell, or discs missing every cell center, draw one small glyph
func (e *element) draw(cols, rows int) {
	cw, ch := e.surface.screen.CellSize()
	r := e.style.Size / 2
	cx := e.x + r
	cy := e.y + r

	put := func(col, row int, glyph rune) bool {
		if col < 0 || row < 0 || col >= cols || row >= rows {
			return false
		}
		e.surface.screen.SetContent(col, row, glyph, nil, e.cell)
		return true
	}

	if e.style.Size <= math.Min(cw, ch) {
		put(int(math.Floor(cx/cw)), int(math.Floor(cy/ch)), glyphSmall)
		return
	}

	drawn := false
	for row := int(math.Floor((cy - r) / ch)); row <= int(math.Floor((cy+r)/ch)); row++ {
		for col := int(math.Floor((cx - r) / cw)); col <= int(math.Floor((cx+r)/cw)); col++ {
			px := (float64(col) + 0.5) * cw
			py := (float64(row) + 0.5) * ch
			if math.Hypot(px-cx, py-cy) <= r {
				drawn = put(col, row, glyphFill) || drawn
			}
		}
	}
	if !drawn {
		put(int(math.Floor(cx/cw)), int(math.Floor(cy/ch)), glyphSmall)
	}
}
