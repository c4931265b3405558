// Package geom defines the plain geometry values shared by the window core.
//
// All coordinates are in viewport space: the origin is the top-left corner of
// the host viewport and units are whatever the host measures in (pixels for a
// browser-like host, virtual pixels for the terminal host).
package geom

import "fmt"

// Size is a width/height pair.
type Size struct {
	Width  int
	Height int
}

// Position is the top-left corner of a window.
type Position struct {
	X int
	Y int
}

// Point is a pointer location.
type Point struct {
	X int
	Y int
}

// SnapSide identifies the half of the viewport a window is docked against.
type SnapSide int

const (
	// SnapNone means no snap zone is engaged.
	SnapNone SnapSide = iota
	// SnapLeft docks a window to the left half of the viewport.
	SnapLeft
	// SnapRight docks a window to the right half of the viewport.
	SnapRight
)

// String returns the lowercase side name.
func (s SnapSide) String() string {
	switch s {
	case SnapLeft:
		return "left"
	case SnapRight:
		return "right"
	default:
		return "none"
	}
}

// ParseSnapSide parses "left", "right" or "none".
func ParseSnapSide(s string) (SnapSide, error) {
	switch s {
	case "left":
		return SnapLeft, nil
	case "right":
		return SnapRight, nil
	case "none", "":
		return SnapNone, nil
	}
	return SnapNone, fmt.Errorf("unknown snap side %q", s)
}

// Viewport reports the current host viewport size. Implementations are read
// on every gesture step and must not be cached by callers.
type Viewport interface {
	Size() Size
}

// ViewportFunc adapts a function to Viewport.
type ViewportFunc func() Size

// Size implements Viewport.
func (f ViewportFunc) Size() Size { return f() }

// FixedViewport is a Viewport of constant size.
type FixedViewport Size

// Size implements Viewport.
func (v FixedViewport) Size() Size { return Size(v) }

// Clamp limits v to [lo, hi]. When hi < lo the lower bound wins.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
