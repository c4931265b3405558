// Package interact wires pointer gestures on one window to the registry.
package interact

import (
	"context"
	"fmt"
	"sync"

	"github.com/Gaurav-Gosain/floatdesk/internal/geom"
	"github.com/Gaurav-Gosain/floatdesk/internal/gesture"
	"github.com/Gaurav-Gosain/floatdesk/internal/logging"
	"github.com/Gaurav-Gosain/floatdesk/internal/observe"
	"github.com/Gaurav-Gosain/floatdesk/internal/pointer"
	"github.com/Gaurav-Gosain/floatdesk/internal/registry"
	"github.com/Gaurav-Gosain/floatdesk/internal/snap"
	"github.com/rs/zerolog"
)

// Controller runs drag and resize gestures for one window. Live geometry goes
// to the Surface while a gesture runs; the registry sees a single commit when
// the pointer is released.
//
// A Controller is driven from one goroutine, the host's update loop.
type Controller struct {
	id      string
	actions registry.Dispatch
	windows observe.Readable[*registry.List]
	log     zerolog.Logger

	drag     *gesture.Drag
	resize   *gesture.Resize
	detector *snap.Detector

	dragging   bool
	resizing   bool
	wasSnapped bool
	startPos   geom.Position

	unmount func()
}

type options struct {
	bounds    gesture.Bounds
	threshold int
}

// Option configures a Controller.
type Option func(*options)

// WithBounds sets the minimum size a resize may produce.
func WithBounds(b gesture.Bounds) Option {
	return func(o *options) { o.bounds = b }
}

// WithSnapThreshold sets the edge distance that proposes a snap.
func WithSnapThreshold(px int) Option {
	return func(o *options) { o.threshold = px }
}

// New returns a controller for window id, using the store and logger bound
// to ctx.
func New(ctx context.Context, id string, surface gesture.Surface, opts ...Option) (*Controller, error) {
	actions, err := registry.Actions(ctx)
	if err != nil {
		return nil, fmt.Errorf("interact: %w", err)
	}
	windows, err := registry.Windows(ctx)
	if err != nil {
		return nil, fmt.Errorf("interact: %w", err)
	}

	o := options{bounds: gesture.DefaultBounds()}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Controller{
		id:      id,
		actions: actions,
		windows: windows,
		log:     *logging.FromContext(logging.WithWindowID(logging.WithComponent(ctx, "interact"), id)),
	}
	viewport := geom.ViewportFunc(actions.Viewport)
	c.detector = snap.NewDetector(viewport, o.threshold, actions.SetSnapPreview)
	c.drag = gesture.NewDrag(viewport, surface, c.detector.Check)
	c.resize = gesture.NewResize(viewport, surface, o.bounds)
	return c, nil
}

// ID returns the window the controller drives.
func (c *Controller) ID() string { return c.id }

// IsDragging reports whether a drag is in progress.
func (c *Controller) IsDragging() bool { return c.dragging }

// IsResizing reports whether a resize is in progress.
func (c *Controller) IsResizing() bool { return c.resizing }

func (c *Controller) committed() (registry.Instance, bool) {
	w, ok := c.windows.Get().Get(c.id)
	if !ok || w.Maximized || c.dragging || c.resizing {
		return registry.Instance{}, false
	}
	return w, true
}

// Drag starts moving the window from pointer p. It refuses, returning false,
// when the window is gone, maximized, or already in a gesture.
func (c *Controller) Drag(p geom.Point) bool {
	w, ok := c.committed()
	if !ok {
		return false
	}
	c.dragging = true
	c.wasSnapped = w.Snapped
	c.startPos = w.Position
	c.drag.Begin(p, w.Position, w.Size)
	c.log.Debug().Int("x", p.X).Int("y", p.Y).Msg("drag start")
	return true
}

// Resize starts resizing the window from pointer p, under the same
// conditions as Drag.
func (c *Controller) Resize(p geom.Point) bool {
	w, ok := c.committed()
	if !ok {
		return false
	}
	c.resizing = true
	c.wasSnapped = w.Snapped
	c.resize.Begin(p, w.Size)
	c.log.Debug().Int("x", p.X).Int("y", p.Y).Msg("resize start")
	return true
}

// Move feeds a pointer move to the running gesture.
func (c *Controller) Move(p geom.Point) {
	switch {
	case c.dragging:
		c.drag.Continue(p)
	case c.resizing:
		c.resize.Continue(p)
	}
}

// Release ends the running gesture and commits its result.
func (c *Controller) Release(geom.Point) {
	switch {
	case c.dragging:
		c.dragging = false
		pos, _ := c.drag.End()
		side := c.detector.Current()
		if side != geom.SnapNone {
			c.actions.Snap(c.id, side)
			c.log.Debug().Stringer("side", side).Msg("drag committed as snap")
		} else {
			patch := registry.Patch{}.WithPosition(pos)
			if c.wasSnapped && pos != c.startPos {
				patch = patch.WithSnapped(false)
			}
			c.actions.Update(c.id, patch)
			c.log.Debug().Int("x", pos.X).Int("y", pos.Y).Msg("drag committed")
		}
		c.detector.Reset()

	case c.resizing:
		c.resizing = false
		size, _ := c.resize.End()
		c.actions.Update(c.id, registry.Patch{}.WithSize(size))
		if c.wasSnapped {
			c.actions.Unsnap(c.id)
		}
		c.log.Debug().Int("width", size.Width).Int("height", size.Height).Msg("resize committed")
	}
}

// Mount attaches the controller to the pointer bus and returns the detach
// function. Detach also runs when ctx is done; calling it more than once is
// safe. Mounting again replaces the previous attachment.
func (c *Controller) Mount(ctx context.Context, bus *pointer.Bus) (detach func()) {
	if c.unmount != nil {
		c.unmount()
	}

	offMove := bus.OnMove(c.Move)
	offUp := bus.OnUp(c.Release)

	var once sync.Once
	release := func() {
		once.Do(func() {
			offMove()
			offUp()
			c.log.Debug().Msg("pointer listeners detached")
		})
	}
	stop := context.AfterFunc(ctx, release)

	c.unmount = func() {
		stop()
		release()
	}
	c.log.Debug().Msg("pointer listeners attached")
	return c.unmount
}
