package app

import (
	"slices"

	"github.com/Gaurav-Gosain/floatdesk/internal/config"
	"github.com/Gaurav-Gosain/floatdesk/internal/geom"
	"github.com/Gaurav-Gosain/floatdesk/internal/gesture"
	"github.com/Gaurav-Gosain/floatdesk/internal/registry"
)

// grid maps terminal cells to the registry's virtual pixels.
type grid struct {
	cw, ch int
	top    int // rows above the desktop
}

// point maps a cell to virtual pixels. Columns map to their center so the
// snap zones at the left and right edges span the same number of columns.
func (g grid) point(col, row int) geom.Point {
	return geom.Point{X: col*g.cw + g.cw/2, Y: (row - g.top) * g.ch}
}

// rect is a window's footprint in cells. Windows are at least two rows tall
// (title bar and bottom border) and wide enough for the border corners.
type rect struct {
	X, Y, W, H int
}

func (g grid) rect(pos geom.Position, size geom.Size) rect {
	return rect{
		X: pos.X / g.cw,
		Y: pos.Y/g.ch + g.top,
		W: max(size.Width/g.cw, 4),
		H: max(size.Height/g.ch, 2),
	}
}

func (r rect) contains(col, row int) bool {
	return col >= r.X && col < r.X+r.W && row >= r.Y && row < r.Y+r.H
}

// liveSurface holds the geometry a gesture is producing for one window.
type liveSurface struct {
	pos  *geom.Position
	size *geom.Size
}

var _ gesture.Surface = (*liveSurface)(nil)

func (s *liveSurface) MoveTo(p geom.Position) { s.pos = &p }
func (s *liveSurface) ResizeTo(sz geom.Size)  { s.size = &sz }

func (d *Desktop) surface(id string) gesture.Surface {
	s, ok := d.live[id]
	if !ok {
		s = &liveSurface{}
		d.live[id] = s
	}
	return s
}

// pruneLive forgets surfaces of closed windows and stale values of
// finished gestures.
func (d *Desktop) pruneLive() {
	l := d.store.Windows()
	for id, s := range d.live {
		if _, ok := l.Get(id); !ok {
			delete(d.live, id)
			continue
		}
		if c, ok := d.ctrls.Controller(id); !ok || (!c.IsDragging() && !c.IsResizing()) {
			s.pos, s.size = nil, nil
		}
	}
}

// geometry is what is drawn for w: the live value of a gesture in flight,
// the full viewport when maximized, the committed value otherwise.
func (d *Desktop) geometry(w registry.Instance) (geom.Position, geom.Size) {
	if w.Maximized {
		return geom.Position{}, d.viewport()
	}
	pos, size := w.Position, w.Size
	c, ok := d.ctrls.Controller(w.ID)
	s := d.live[w.ID]
	if !ok || s == nil {
		return pos, size
	}
	if c.IsDragging() && s.pos != nil {
		pos = *s.pos
	}
	if c.IsResizing() && s.size != nil {
		size = *s.size
	}
	return pos, size
}

type region int

const (
	regionNone region = iota
	regionBody
	regionTitle
	regionResize
	regionMinimize
	regionMaximize
	regionClose
)

const buttonWidth = 3

// showButtons reports whether a window w cells wide has room for the title
// bar buttons next to its corners.
func showButtons(w int) bool {
	return !config.HideWindowButtons && w-2 >= 3*buttonWidth+1
}

func (r rect) regionAt(col, row int) region {
	if !r.contains(col, row) {
		return regionNone
	}
	right := r.X + r.W - 1
	if row == r.Y {
		if showButtons(r.W) && col < right {
			switch (right - 1 - col) / buttonWidth {
			case 0:
				return regionClose
			case 1:
				return regionMaximize
			case 2:
				return regionMinimize
			}
		}
		return regionTitle
	}
	if row == r.Y+r.H-1 && col == right {
		return regionResize
	}
	return regionBody
}

// hit finds the topmost visible window under a cell.
func (d *Desktop) hit(col, row int) (registry.Instance, region) {
	g := d.grid()
	windows := d.store.Windows().Windows()
	for _, w := range slices.Backward(windows) {
		if w.Minimized {
			continue
		}
		pos, size := d.geometry(w)
		if reg := g.rect(pos, size).regionAt(col, row); reg != regionNone {
			return w, reg
		}
	}
	return registry.Instance{}, regionNone
}
