// Package motion generates deterministic pointer trajectories for headless replay
package motion

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lixenwraith/cursor-trail/vmath"
)

// ErrUnknownPath is returned by Parse for an unrecognized trajectory name
var ErrUnknownPath = errors.New("motion: unknown path")

// Trajectory yields the pointer position for a frame index
type Trajectory interface {
	At(frame int) vmath.Vec2
}

// Step holds From until frame Frame, then jumps to To
type Step struct {
	From, To vmath.Vec2
	Frame    int
}

func (s Step) At(frame int) vmath.Vec2 {
	if frame < s.Frame {
		return s.From
	}
	return s.To
}

// Line moves from From to To over Frames frames, then stays at To
type Line struct {
	From, To vmath.Vec2
	Frames   int
}

func (l Line) At(frame int) vmath.Vec2 {
	if l.Frames <= 0 {
		return l.To
	}
	t := vmath.Clamp01(float64(frame) / float64(l.Frames))
	return vmath.LerpVec(l.From, l.To, t)
}

// Circle orbits Center once every Period frames
type Circle struct {
	Center vmath.Vec2
	Radius float64
	Period int
}

func (c Circle) At(frame int) vmath.Vec2 {
	a := angle(frame, c.Period)
	return c.Center.Add(vmath.V(math.Cos(a), math.Sin(a)).Scale(c.Radius))
}

// Lissajous traces x = AX·sin(A·θ + Phase), y = AY·sin(B·θ) around Center
type Lissajous struct {
	Center vmath.Vec2
	AX, AY float64
	A, B   float64
	Phase  float64
	Period int
}

func (l Lissajous) At(frame int) vmath.Vec2 {
	a := angle(frame, l.Period)
	return l.Center.Add(vmath.V(l.AX*math.Sin(l.A*a+l.Phase), l.AY*math.Sin(l.B*a)))
}

// angle maps frame to radians, one full turn per period
func angle(frame, period int) float64 {
	if period <= 0 {
		return 0
	}
	return 2 * math.Pi * float64(frame%period) / float64(period)
}

const defaultPeriod = 180

// Parse builds a named trajectory fitted to a width x height surface
func Parse(name string, width, height float64) (Trajectory, error) {
	center := vmath.V(width/2, height/2)
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "step":
		return Step{
			From:  vmath.V(width*0.25, height*0.5),
			To:    vmath.V(width*0.75, height*0.5),
			Frame: defaultPeriod / 6,
		}, nil
	case "line":
		return Line{
			From:   vmath.V(width*0.1, height*0.5),
			To:     vmath.V(width*0.9, height*0.5),
			Frames: defaultPeriod / 2,
		}, nil
	case "circle":
		return Circle{
			Center: center,
			Radius: math.Min(width, height) * 0.35,
			Period: defaultPeriod,
		}, nil
	case "lissajous", "":
		return Lissajous{
			Center: center,
			AX:     width * 0.4,
			AY:     height * 0.4,
			A:      3,
			B:      2,
			Phase:  math.Pi / 2,
			Period: defaultPeriod * 2,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPath, name)
	}
}
