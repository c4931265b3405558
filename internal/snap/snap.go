// Package snap classifies pointer positions into edge-snap zones.
package snap

import (
	"github.com/Gaurav-Gosain/floatdesk/internal/config"
	"github.com/Gaurav-Gosain/floatdesk/internal/geom"
)

// Detect returns the side whose snap zone contains x.
func Detect(x, viewportWidth, threshold int) geom.SnapSide {
	switch {
	case x < threshold:
		return geom.SnapLeft
	case x > viewportWidth-threshold:
		return geom.SnapRight
	default:
		return geom.SnapNone
	}
}

// Layout returns the geometry of a window snapped to side: half the viewport
// width, full height, against the matching edge.
func Layout(side geom.SnapSide, viewport geom.Size) (geom.Size, geom.Position) {
	half := viewport.Width / 2
	size := geom.Size{Width: half, Height: viewport.Height}
	if side == geom.SnapRight {
		return size, geom.Position{X: half, Y: 0}
	}
	return size, geom.Position{X: 0, Y: 0}
}

// Detector wraps Detect with the last seen side so the preview callback fires
// only when the pointer crosses a zone boundary.
type Detector struct {
	threshold int
	viewport  geom.Viewport
	notify    func(geom.SnapSide)
	current   geom.SnapSide
}

// NewDetector returns a Detector reading the viewport width on every check.
// A non-positive threshold selects config.SnapThreshold. notify may be nil.
func NewDetector(viewport geom.Viewport, threshold int, notify func(geom.SnapSide)) *Detector {
	if threshold <= 0 {
		threshold = config.SnapThreshold
	}
	return &Detector{threshold: threshold, viewport: viewport, notify: notify}
}

// Check classifies x and notifies on a side transition.
func (d *Detector) Check(x int) {
	next := Detect(x, d.viewport.Size().Width, d.threshold)
	if next == d.current {
		return
	}
	d.current = next
	if d.notify != nil {
		d.notify(next)
	}
}

// Current returns the side engaged by the last Check.
func (d *Detector) Current() geom.SnapSide { return d.current }

// Reset clears the side and always notifies, so an overlay is torn down even
// if the detector already believed no zone was engaged.
func (d *Detector) Reset() {
	d.current = geom.SnapNone
	if d.notify != nil {
		d.notify(geom.SnapNone)
	}
}

// Threshold returns the zone width in viewport units.
func (d *Detector) Threshold() int { return d.threshold }
