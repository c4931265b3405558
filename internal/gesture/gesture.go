// Package gesture turns pointer streams into live window geometry.
//
// Engines never touch the registry. While a gesture runs they write each
// computed value straight to a Surface and keep it in a scratch buffer;
// the caller commits the buffer once when the pointer is released.
package gesture

import "github.com/Gaurav-Gosain/floatdesk/internal/geom"

// Surface receives live geometry while a gesture runs. The terminal host
// implements it by overriding the rendered position or size of one window.
type Surface interface {
	MoveTo(p geom.Position)
	ResizeTo(s geom.Size)
}

// NopSurface discards live updates.
type NopSurface struct{}

func (NopSurface) MoveTo(geom.Position) {}
func (NopSurface) ResizeTo(geom.Size)   {}
