// Package event defines host input events and the queue that carries them to the loop thread
package event

// EventType represents the kind of host event
type EventType uint8

const (
	// EventNone is the zero value and is never dispatched
	EventNone EventType = iota

	// EventPointerMove reports a new pointer position
	// Producer: terminal poller, desktop hook, replay driver | Consumer: trail controller
	EventPointerMove

	// EventPointerPress reports a button press at a position
	// Producer: terminal poller, desktop hook | Consumer: audio chime
	EventPointerPress

	// EventResize reports new surface dimensions in X/Y
	EventResize

	// EventKey reports a key press in Key and Rune
	EventKey
)

// String returns human-readable event type name
func (t EventType) String() string {
	switch t {
	case EventPointerMove:
		return "PointerMove"
	case EventPointerPress:
		return "PointerPress"
	case EventResize:
		return "Resize"
	case EventKey:
		return "Key"
	default:
		return "None"
	}
}

// Key identifies non-rune keys
type Key uint8

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyCtrlC
)

// Event is a single host event
// Pointer coordinates are in pixel units, resize dimensions in surface units
type Event struct {
	Type EventType
	X, Y float64
	Key  Key
	Rune rune
}

// PointerMove builds a pointer move event
func PointerMove(x, y float64) Event {
	return Event{Type: EventPointerMove, X: x, Y: y}
}

// PointerPress builds a pointer press event
func PointerPress(x, y float64) Event {
	return Event{Type: EventPointerPress, X: x, Y: y}
}

// Resize builds a resize event
func Resize(width, height int) Event {
	return Event{Type: EventResize, X: float64(width), Y: float64(height)}
}

// RuneKey builds a key event for a printable rune
func RuneKey(r rune) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r}
}
