package gesture

import (
	"github.com/Gaurav-Gosain/floatdesk/internal/config"
	"github.com/Gaurav-Gosain/floatdesk/internal/geom"
)

// Bounds is the smallest size a resize may produce.
type Bounds struct {
	MinWidth  int
	MinHeight int
}

// DefaultBounds returns the stock minimum window size.
func DefaultBounds() Bounds {
	return Bounds{MinWidth: config.MinWindowWidth, MinHeight: config.MinWindowHeight}
}

// Resize grows or shrinks a window from its bottom-right corner. The size is
// capped by the viewport, but the minimum always wins when the viewport is
// smaller than it.
type Resize struct {
	viewport geom.Viewport
	surface  Surface
	bounds   Bounds

	active bool
	start  geom.Point
	size   geom.Size
	buffer geom.Size
}

// NewResize returns a resize engine.
func NewResize(viewport geom.Viewport, surface Surface, bounds Bounds) *Resize {
	if surface == nil {
		surface = NopSurface{}
	}
	return &Resize{viewport: viewport, surface: surface, bounds: bounds}
}

// Begin starts a resize from the committed size.
func (r *Resize) Begin(p geom.Point, committed geom.Size) {
	r.active = true
	r.start = p
	r.size = committed
	r.buffer = committed
}

// Continue resizes by the pointer delta since Begin.
func (r *Resize) Continue(p geom.Point) {
	if !r.active {
		return
	}
	vp := r.viewport.Size()
	r.buffer = geom.Size{
		Width:  geom.Clamp(r.size.Width+p.X-r.start.X, r.bounds.MinWidth, vp.Width),
		Height: geom.Clamp(r.size.Height+p.Y-r.start.Y, r.bounds.MinHeight, vp.Height),
	}
	r.surface.ResizeTo(r.buffer)
}

// End stops the resize and returns the last buffered size.
func (r *Resize) End() (geom.Size, bool) {
	wasActive := r.active
	r.active = false
	return r.buffer, wasActive
}

// Active reports whether a resize is in progress.
func (r *Resize) Active() bool { return r.active }

// Size returns the buffered size.
func (r *Resize) Size() geom.Size { return r.buffer }
