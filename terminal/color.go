package terminal

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/cursor-trail/parameter"
	"github.com/lixenwraith/cursor-trail/vmath"
)

// parseColor returns the hex color or the default trail color when hex is malformed
func parseColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(parameter.DefaultTrailColor)
	}
	return c
}

// blend composites fg over bg with the given opacity, cells have no alpha channel
func blend(bg, fg colorful.Color, opacity float64) colorful.Color {
	return bg.BlendRgb(fg, vmath.Clamp01(opacity)).Clamped()
}

// toTcell converts to a 24-bit tcell color
func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
