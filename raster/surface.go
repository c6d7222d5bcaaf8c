// Package raster renders trail markers offscreen with gg, one RGBA frame per Present
package raster

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/gogpu/gg"

	"github.com/lixenwraith/cursor-trail/parameter"
	"github.com/lixenwraith/cursor-trail/trail"
	"github.com/lixenwraith/cursor-trail/vmath"
)

// Surface is an offscreen trail.Surface backed by a gg context
type Surface struct {
	dc         *gg.Context
	background gg.RGBA
	elements   []*element
	frame      *image.RGBA
}

// NewSurface creates a width x height surface cleared to the background hex color
func NewSurface(width, height int, background string) *Surface {
	if width <= 0 {
		width = parameter.DefaultFrameWidth
	}
	if height <= 0 {
		height = parameter.DefaultFrameHeight
	}
	if background == "" {
		background = parameter.DefaultBackground
	}
	s := &Surface{
		dc:         gg.NewContext(width, height),
		background: gg.Hex(background),
	}
	s.dc.ClearWithColor(s.background)
	return s
}

// Size returns the frame dimensions
func (s *Surface) Size() (int, int) {
	return s.dc.Width(), s.dc.Height()
}

// Len returns the number of attached elements
func (s *Surface) Len() int {
	return len(s.elements)
}

// NewElement attaches a circle element with its top-left corner at (x, y)
func (s *Surface) NewElement(style trail.Style, x, y float64) trail.Element {
	el := &element{surface: s, x: x, y: y}
	el.SetStyle(style)
	s.elements = append(s.elements, el)
	return el
}

// Present redraws all elements in creation order and captures the frame
func (s *Surface) Present() error {
	s.dc.ClearWithColor(s.background)
	for _, el := range s.elements {
		r := el.style.Size / 2
		if r <= 0 {
			continue
		}
		s.dc.SetRGBA(el.color.R, el.color.G, el.color.B, vmath.Clamp01(el.style.Opacity))
		s.dc.DrawCircle(el.x+r, el.y+r, r)
		if err := s.dc.Fill(); err != nil {
			return fmt.Errorf("failed to fill marker: %w", err)
		}
	}
	s.frame = toRGBA(s.dc.Image())
	return nil
}

// Frame returns the last presented frame, nil before the first Present
func (s *Surface) Frame() *image.RGBA {
	return s.frame
}

// Close releases the drawing context
func (s *Surface) Close() error {
	return s.dc.Close()
}

func (s *Surface) remove(target *element) {
	for i, el := range s.elements {
		if el == target {
			s.elements = append(s.elements[:i], s.elements[i+1:]...)
			return
		}
	}
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}

type element struct {
	surface *Surface
	style   trail.Style
	color   gg.RGBA
	x, y    float64
	removed bool
}

func (e *element) SetStyle(style trail.Style) {
	e.style = style
	e.color = gg.Hex(style.Color)
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
