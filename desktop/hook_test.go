package desktop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	hook "github.com/robotn/gohook"

	"github.com/lixenwraith/cursor-trail/event"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		in   hook.Event
		want event.Event
		ok   bool
	}{
		{"move", hook.Event{Kind: hook.MouseMove, X: 10, Y: 20}, event.PointerMove(10, 20), true},
		{"drag", hook.Event{Kind: hook.MouseDrag, X: 5, Y: 6}, event.PointerMove(5, 6), true},
		{"left press", hook.Event{Kind: hook.MouseDown, X: 1, Y: 2, Button: hook.MouseMap["left"]}, event.PointerPress(1, 2), true},
		{"right press", hook.Event{Kind: hook.MouseDown, X: 1, Y: 2, Button: hook.MouseMap["right"]}, event.Event{}, false},
		{"key", hook.Event{Kind: hook.KeyDown}, event.Event{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translate(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScaler(t *testing.T) {
	s := NewScaler(1920, 1080, 640, 360)
	x, y := s.Point(960, 540)
	assert.InDelta(t, 320, x, 1e-9)
	assert.InDelta(t, 180, y, 1e-9)

	var got event.Event
	s.Wrap(func(ev event.Event) { got = ev })(event.PointerPress(1920, 0))
	assert.Equal(t, event.EventPointerPress, got.Type)
	assert.InDelta(t, 640, got.X, 1e-9)

	id := NewScaler(0, 0, 640, 360)
	x, y = id.Point(5, 7)
	assert.Equal(t, 5.0, x)
	assert.Equal(t, 7.0, y)
}
