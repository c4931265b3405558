package registry

import (
	"sync/atomic"

	"github.com/Gaurav-Gosain/floatdesk/internal/geom"
	"github.com/Gaurav-Gosain/floatdesk/internal/observe"
	"github.com/rs/zerolog"
)

// Dispatch is the mutating side of a Store. Every method returns the list
// that is current after the call; a no-op returns the previous pointer.
type Dispatch interface {
	Open(def Definition) *List
	Close(id string) *List
	Focus(id string) *List
	Minimize(id string) *List
	Maximize(id string) *List
	Restore(id string) *List
	Snap(id string, side geom.SnapSide) *List
	Unsnap(id string) *List
	Update(id string, p Patch) *List

	// SetSnapPreview publishes the side a drag would snap to.
	SetSnapPreview(side geom.SnapSide)

	// Viewport returns the live viewport size.
	Viewport() geom.Size
}

// Store owns the current window list and publishes it in three slices that
// are observed independently: the list itself, the dispatch handle and the
// snap preview.
type Store struct {
	viewport geom.Viewport
	rules    Rules
	log      zerolog.Logger

	windows  *observe.Value[*List]
	dispatch *observe.Value[Dispatch]
	preview  *observe.Value[geom.SnapSide]

	unmounted atomic.Bool
}

// Option configures a Store.
type Option func(*Store)

// WithRules overrides the open rules (mobile breakpoint, default geometry).
func WithRules(r Rules) Option {
	return func(s *Store) { s.rules = r }
}

// WithLogger sets the logger used for transition events.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithInitial seeds the store with an existing list.
func WithInitial(l *List) Option {
	return func(s *Store) { s.windows = observe.New(l, observe.Same[List]) }
}

// NewStore returns a store reading its viewport from vp on every operation
// that needs it.
func NewStore(vp geom.Viewport, opts ...Option) *Store {
	s := &Store{
		viewport: vp,
		rules:    DefaultRules(),
		log:      zerolog.Nop(),
		windows:  observe.New(NewList(), observe.Same[List]),
		preview:  observe.New(geom.SnapNone, func(a, b geom.SnapSide) bool { return a == b }),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.dispatch = observe.New[Dispatch](s, nil)
	return s
}

// Windows returns the current list.
func (s *Store) Windows() *List { return s.windows.Get() }

// WindowsSlice is the observable window list.
func (s *Store) WindowsSlice() observe.Readable[*List] { return s.windows }

// DispatchSlice is the observable dispatch handle. It never changes for the
// life of the store.
func (s *Store) DispatchSlice() observe.Readable[Dispatch] { return s.dispatch }

// PreviewSlice is the observable snap preview.
func (s *Store) PreviewSlice() observe.Readable[geom.SnapSide] { return s.preview }

// SnapPreview returns the side currently proposed by a drag.
func (s *Store) SnapPreview() geom.SnapSide { return s.preview.Get() }

// Rules returns the rules new windows are opened with.
func (s *Store) Rules() Rules { return s.rules }

// Viewport implements Dispatch.
func (s *Store) Viewport() geom.Size {
	if s.viewport == nil {
		return geom.Size{}
	}
	return s.viewport.Size()
}

// Unmount ends the store's scope. Scoped accessors fail afterwards; the store
// itself stays readable for anyone still holding it.
func (s *Store) Unmount() {
	if s.unmounted.CompareAndSwap(false, true) {
		s.log.Debug().Int("windows", s.Windows().Len()).Msg("store unmounted")
	}
}

// Unmounted reports whether Unmount was called.
func (s *Store) Unmounted() bool { return s.unmounted.Load() }

func (s *Store) apply(op, id string, fn func(*List) *List) *List {
	next, changed := s.windows.Update(fn)
	if changed {
		s.log.Debug().Str("op", op).Str("window_id", id).Int("windows", next.Len()).Msg("windows changed")
	}
	return next
}

// Open implements Dispatch.
func (s *Store) Open(def Definition) *List {
	vp := s.Viewport()
	return s.apply("open", def.ID, func(l *List) *List { return l.Open(def, vp, s.rules) })
}

// Close implements Dispatch.
func (s *Store) Close(id string) *List {
	return s.apply("close", id, func(l *List) *List { return l.Close(id) })
}

// Focus implements Dispatch.
func (s *Store) Focus(id string) *List {
	return s.apply("focus", id, func(l *List) *List { return l.Focus(id) })
}

// Minimize implements Dispatch.
func (s *Store) Minimize(id string) *List {
	return s.apply("minimize", id, func(l *List) *List { return l.Minimize(id) })
}

// Maximize implements Dispatch.
func (s *Store) Maximize(id string) *List {
	return s.apply("maximize", id, func(l *List) *List { return l.Maximize(id) })
}

// Restore implements Dispatch.
func (s *Store) Restore(id string) *List {
	return s.apply("restore", id, func(l *List) *List { return l.Restore(id) })
}

// Snap implements Dispatch.
func (s *Store) Snap(id string, side geom.SnapSide) *List {
	vp := s.Viewport()
	return s.apply("snap-"+side.String(), id, func(l *List) *List { return l.Snap(id, side, vp) })
}

// Unsnap implements Dispatch.
func (s *Store) Unsnap(id string) *List {
	return s.apply("unsnap", id, func(l *List) *List { return l.Unsnap(id) })
}

// Update implements Dispatch.
func (s *Store) Update(id string, p Patch) *List {
	return s.apply("update", id, func(l *List) *List { return l.Update(id, p) })
}

// SetSnapPreview implements Dispatch.
func (s *Store) SetSnapPreview(side geom.SnapSide) {
	if s.preview.Set(side) {
		s.log.Trace().Stringer("side", side).Msg("snap preview")
	}
}
