package trail

// Style is the visual state applied to a marker element
type Style struct {
	Color   string  // Hex color, "#rrggbb"
	Size    float64 // Diameter in pixels
	Opacity float64 // 0 transparent, 1 opaque
}

// Element is one fixed-position, non-interactive, circular visual owned by a marker
// Position is a 2-D translation of the element's top-left corner from the surface origin
type Element interface {
	SetStyle(Style)
	MoveTo(x, y float64)
	Remove()
}

// Surface creates marker elements layered above host content
type Surface interface {
	NewElement(style Style, x, y float64) Element
}

// PointerSource delivers pointer moves on the loop thread
type PointerSource interface {
	// OnPointerMove registers fn and returns a function that detaches it
	OnPointerMove(fn func(x, y float64)) (detach func())
}

// FrameScheduler runs a task once per display frame on the loop thread
type FrameScheduler interface {
	// EveryFrame registers fn and returns a function that cancels it
	// After cancel returns fn is never invoked again
	EveryFrame(fn func()) (cancel func())
}
