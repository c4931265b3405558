// Package registry owns the authoritative collection of open windows.
//
// A List is an immutable snapshot. Every transition returns a new *List when
// the collection changed and the receiver itself when the call was a no-op,
// so consumers can skip work by comparing pointers.
package registry

import (
	"slices"

	"github.com/Gaurav-Gosain/floatdesk/internal/config"
	"github.com/Gaurav-Gosain/floatdesk/internal/geom"
	"github.com/Gaurav-Gosain/floatdesk/internal/snap"
	"github.com/google/uuid"
)

// Instance is one open window.
type Instance struct {
	ID      string
	Title   string
	Icon    string
	Content any

	// Committed geometry, authoritative between gestures.
	Size     geom.Size
	Position geom.Position

	ZIndex    int
	Minimized bool
	Maximized bool
	Snapped   bool
	Side      geom.SnapSide
}

// State returns the lifecycle state name: normal, minimized, maximized or
// snapped-left / snapped-right.
func (w Instance) State() string {
	switch {
	case w.Minimized:
		return "minimized"
	case w.Maximized:
		return "maximized"
	case w.Snapped:
		return "snapped-" + w.Side.String()
	default:
		return "normal"
	}
}

// Definition describes a window to open.
type Definition struct {
	// ID may be empty, in which case one is generated.
	ID              string
	Title           string
	Icon            string
	Content         any
	InitialSize     *geom.Size
	InitialPosition *geom.Position
	Maximized       bool
}

// Rules are the registry policies that depend on host configuration.
type Rules struct {
	// MobileBreakpoint is the viewport width at or below which new windows
	// open maximized.
	MobileBreakpoint int
	DefaultSize      geom.Size
	DefaultPosition  geom.Position
}

// DefaultRules returns the stock registry policies.
func DefaultRules() Rules {
	return Rules{
		MobileBreakpoint: config.MobileBreakpoint,
		DefaultSize:      geom.Size{Width: config.DefaultWindowWidth, Height: config.DefaultWindowHeight},
		DefaultPosition:  geom.Position{X: config.DefaultWindowX, Y: config.DefaultWindowY},
	}
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Title     *string
	Icon      *string
	Size      *geom.Size
	Position  *geom.Position
	Minimized *bool
	Maximized *bool

	// Snapped=true needs a side: Side, or the side the window is already
	// snapped to. Without one the flag is ignored. A Side of SnapNone
	// unsnaps.
	Snapped *bool
	Side    *geom.SnapSide
}

// WithTitle sets the title field.
func (p Patch) WithTitle(title string) Patch { p.Title = &title; return p }

// WithSize sets the size field.
func (p Patch) WithSize(s geom.Size) Patch { p.Size = &s; return p }

// WithPosition sets the position field.
func (p Patch) WithPosition(pos geom.Position) Patch { p.Position = &pos; return p }

// WithSnapped sets the snapped flag. True only holds for a window with a side.
func (p Patch) WithSnapped(v bool) Patch { p.Snapped = &v; return p }

// WithSide snaps to side, or unsnaps for SnapNone.
func (p Patch) WithSide(side geom.SnapSide) Patch { p.Side = &side; return p }

// WithMinimized sets the minimized flag.
func (p Patch) WithMinimized(v bool) Patch { p.Minimized = &v; return p }

// WithMaximized sets the maximized flag.
func (p Patch) WithMaximized(v bool) Patch { p.Maximized = &v; return p }

// List is an immutable, insertion-ordered set of windows. The zero value and
// a nil *List are both empty.
type List struct {
	items []Instance
}

// NewList returns an empty list.
func NewList() *List { return &List{} }

// Len returns the number of open windows.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Get returns the window with the given id.
func (l *List) Get(id string) (Instance, bool) {
	if i := l.index(id); i >= 0 {
		return l.items[i], true
	}
	return Instance{}, false
}

// Windows returns a copy of the windows ordered by ZIndex ascending, which is
// the stacking order for rendering.
func (l *List) Windows() []Instance {
	if l == nil {
		return nil
	}
	out := slices.Clone(l.items)
	slices.SortStableFunc(out, func(a, b Instance) int { return a.ZIndex - b.ZIndex })
	return out
}

// IDs returns the window ids in insertion order.
func (l *List) IDs() []string {
	if l == nil {
		return nil
	}
	ids := make([]string, len(l.items))
	for i, w := range l.items {
		ids[i] = w.ID
	}
	return ids
}

// MaxZ returns the highest ZIndex, or 0 for an empty list.
func (l *List) MaxZ() int {
	maxZ := 0
	if l == nil {
		return maxZ
	}
	for _, w := range l.items {
		maxZ = max(maxZ, w.ZIndex)
	}
	return maxZ
}

// Front returns the window with the highest ZIndex.
func (l *List) Front() (Instance, bool) {
	if l.Len() == 0 {
		return Instance{}, false
	}
	front := l.items[0]
	for _, w := range l.items[1:] {
		if w.ZIndex > front.ZIndex {
			front = w
		}
	}
	return front, true
}

func (l *List) index(id string) int {
	if l == nil {
		return -1
	}
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

// with returns a copy of l with the item at i replaced, or l itself when the
// replacement is identical.
func (l *List) with(i int, w Instance) *List {
	if sameState(l.items[i], w) {
		return l
	}
	items := slices.Clone(l.items)
	items[i] = w
	return &List{items: items}
}

// Open inserts a window, or brings an already-open window with the same id to
// the front and un-minimizes it. Content of an existing window is untouched.
func (l *List) Open(def Definition, viewport geom.Size, rules Rules) *List {
	if l == nil {
		l = NewList()
	}
	if def.ID != "" && l.index(def.ID) >= 0 {
		return l.Focus(def.ID)
	}

	w := Instance{
		ID:        def.ID,
		Title:     def.Title,
		Icon:      def.Icon,
		Content:   def.Content,
		Size:      rules.DefaultSize,
		Position:  rules.DefaultPosition,
		ZIndex:    l.MaxZ() + 1,
		Maximized: def.Maximized || viewport.Width <= rules.MobileBreakpoint,
	}
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if def.InitialSize != nil {
		w.Size = *def.InitialSize
	}
	if def.InitialPosition != nil {
		w.Position = *def.InitialPosition
	}

	items := make([]Instance, len(l.items), len(l.items)+1)
	copy(items, l.items)
	return &List{items: append(items, w)}
}

// Close removes the window regardless of its state.
func (l *List) Close(id string) *List {
	i := l.index(id)
	if i < 0 {
		return l
	}
	return &List{items: slices.Delete(slices.Clone(l.items), i, i+1)}
}

// Focus raises the window to max+1 and clears Minimized. A window that is
// already the visible front window is left alone.
func (l *List) Focus(id string) *List {
	i := l.index(id)
	if i < 0 {
		return l
	}
	w := l.items[i]
	if w.ZIndex == l.MaxZ() && !w.Minimized && l.uniqueZ(i) {
		return l
	}
	w.ZIndex = l.MaxZ() + 1
	w.Minimized = false
	return l.with(i, w)
}

// uniqueZ reports whether no other window shares the z of item i.
func (l *List) uniqueZ(i int) bool {
	for j := range l.items {
		if j != i && l.items[j].ZIndex == l.items[i].ZIndex {
			return false
		}
	}
	return true
}

// Minimize hides the window; geometry is kept.
func (l *List) Minimize(id string) *List {
	return l.mutate(id, func(w *Instance) { w.Minimized = true })
}

// Maximize fills the viewport, clearing Minimized and Snapped.
func (l *List) Maximize(id string) *List {
	return l.mutate(id, func(w *Instance) {
		w.Maximized = true
		w.Minimized = false
		w.Snapped = false
		w.Side = geom.SnapNone
	})
}

// Restore returns the window to Normal.
func (l *List) Restore(id string) *List {
	return l.mutate(id, func(w *Instance) {
		w.Minimized = false
		w.Maximized = false
		w.Snapped = false
		w.Side = geom.SnapNone
	})
}

// Snap docks the window to one half of the viewport.
func (l *List) Snap(id string, side geom.SnapSide, viewport geom.Size) *List {
	if side == geom.SnapNone {
		return l
	}
	size, pos := snap.Layout(side, viewport)
	return l.mutate(id, func(w *Instance) {
		w.Snapped = true
		w.Side = side
		w.Maximized = false
		w.Minimized = false
		w.Size = size
		w.Position = pos
	})
}

// Unsnap clears Snapped only.
func (l *List) Unsnap(id string) *List {
	return l.mutate(id, func(w *Instance) {
		w.Snapped = false
		w.Side = geom.SnapNone
	})
}

// Update merges the non-nil fields of p. Setting Maximized or snapping keeps
// the two mutually exclusive and clears Minimized. A window is never left
// snapped without a side.
func (l *List) Update(id string, p Patch) *List {
	return l.mutate(id, func(w *Instance) {
		if p.Title != nil {
			w.Title = *p.Title
		}
		if p.Icon != nil {
			w.Icon = *p.Icon
		}
		if p.Size != nil {
			w.Size = *p.Size
		}
		if p.Position != nil {
			w.Position = *p.Position
		}
		if p.Minimized != nil {
			w.Minimized = *p.Minimized
		}
		snapped := p.Snapped != nil && *p.Snapped
		switch {
		case p.Side != nil && *p.Side != geom.SnapNone:
			w.Snapped, w.Side = true, *p.Side
			snapped = true
		case p.Side != nil, p.Snapped != nil && !*p.Snapped:
			w.Snapped, w.Side = false, geom.SnapNone
			snapped = false
		case snapped && w.Side == geom.SnapNone:
			snapped = false
		case snapped:
			w.Snapped = true
		}
		if p.Maximized != nil {
			w.Maximized = *p.Maximized
		}
		if p.Maximized != nil && *p.Maximized {
			w.Snapped = false
			w.Side = geom.SnapNone
			w.Minimized = false
		} else if snapped {
			w.Maximized = false
			w.Minimized = false
		}
	})
}

func (l *List) mutate(id string, fn func(w *Instance)) *List {
	i := l.index(id)
	if i < 0 {
		return l
	}
	w := l.items[i]
	fn(&w)
	return l.with(i, w)
}

// sameState compares everything but Content, which may hold values that are
// not comparable and is never changed by a transition.
func sameState(a, b Instance) bool {
	return a.ID == b.ID &&
		a.Title == b.Title &&
		a.Icon == b.Icon &&
		a.Size == b.Size &&
		a.Position == b.Position &&
		a.ZIndex == b.ZIndex &&
		a.Minimized == b.Minimized &&
		a.Maximized == b.Maximized &&
		a.Snapped == b.Snapped &&
		a.Side == b.Side
}
