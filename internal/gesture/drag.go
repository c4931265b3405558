package gesture

import "github.com/Gaurav-Gosain/floatdesk/internal/geom"

// Drag moves a window with the pointer, keeping it inside the viewport.
type Drag struct {
	viewport geom.Viewport
	surface  Surface
	onSnap   func(x int)

	active bool
	offset geom.Point
	size   geom.Size
	buffer geom.Position
}

// NewDrag returns a drag engine. onSnap, when non-nil, receives the raw
// pointer x of every move so a snap detector can follow the pointer rather
// than the clamped window.
func NewDrag(viewport geom.Viewport, surface Surface, onSnap func(x int)) *Drag {
	if surface == nil {
		surface = NopSurface{}
	}
	return &Drag{viewport: viewport, surface: surface, onSnap: onSnap}
}

// Begin starts a drag. committed is the window position before the gesture
// and size its size, which stays fixed for the whole drag.
func (d *Drag) Begin(p geom.Point, committed geom.Position, size geom.Size) {
	d.active = true
	d.offset = geom.Point{X: p.X - committed.X, Y: p.Y - committed.Y}
	d.size = size
	d.buffer = committed
}

// Continue moves the window under the pointer. It does nothing unless a drag
// is active.
func (d *Drag) Continue(p geom.Point) {
	if !d.active {
		return
	}
	if d.onSnap != nil {
		d.onSnap(p.X)
	}

	vp := d.viewport.Size()
	d.buffer = geom.Position{
		X: geom.Clamp(p.X-d.offset.X, 0, vp.Width-d.size.Width),
		Y: geom.Clamp(p.Y-d.offset.Y, 0, vp.Height-d.size.Height),
	}
	d.surface.MoveTo(d.buffer)
}

// End stops the drag and returns the last buffered position. Calling End
// with no drag active returns the last buffer and false.
func (d *Drag) End() (geom.Position, bool) {
	wasActive := d.active
	d.active = false
	return d.buffer, wasActive
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool { return d.active }

// Position returns the buffered position.
func (d *Drag) Position() geom.Position { return d.buffer }
