package tape

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Gaurav-Gosain/floatdesk/internal/geom"
	"github.com/Gaurav-Gosain/floatdesk/internal/interact"
	"github.com/Gaurav-Gosain/floatdesk/internal/logging"
	"github.com/Gaurav-Gosain/floatdesk/internal/pointer"
	"github.com/Gaurav-Gosain/floatdesk/internal/registry"
	"github.com/rs/zerolog"
)

// Host is the desktop a Runner drives.
type Host struct {
	Store       *registry.Store
	Bus         *pointer.Bus
	Controllers *interact.Manager

	// SetViewport resizes the host viewport. Nil makes Viewport commands fail.
	SetViewport func(geom.Size)

	// Sleep pauses playback. Nil skips sleeps.
	Sleep func(time.Duration)
}

// Runner implements Executor on top of a registry store, a pointer bus and
// the controllers mounted on it.
type Runner struct {
	host    Host
	pointer geom.Point
}

var _ Executor = (*Runner)(nil)

// NewRunner returns a runner driving h.
func NewRunner(h Host) *Runner {
	return &Runner{host: h}
}

// HeadlessConfig configures NewHeadless.
type HeadlessConfig struct {
	Viewport    geom.Size
	Rules       registry.Rules
	Controllers []interact.Option
	Logger      *zerolog.Logger
}

// NewHeadless builds a complete desktop without a terminal: a store whose
// viewport is set by the script, a pointer bus and mounted controllers. The
// returned func releases it.
func NewHeadless(ctx context.Context, cfg HeadlessConfig) (*Runner, func(), error) {
	vp := cfg.Viewport
	if cfg.Logger != nil {
		ctx = logging.WithContext(ctx, *cfg.Logger)
	}
	if cfg.Rules == (registry.Rules{}) {
		cfg.Rules = registry.DefaultRules()
	}

	store := registry.NewStore(
		geom.ViewportFunc(func() geom.Size { return vp }),
		registry.WithRules(cfg.Rules),
		registry.WithLogger(*logging.FromContext(logging.WithComponent(ctx, "registry"))),
	)
	ctx, cancel := context.WithCancel(registry.WithStore(ctx, store))
	bus := pointer.NewBus()

	ctrls, err := interact.NewManager(ctx, bus, nil, cfg.Controllers...)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	r := NewRunner(Host{
		Store:       store,
		Bus:         bus,
		Controllers: ctrls,
		SetViewport: func(s geom.Size) { vp = s },
	})
	release := func() {
		ctrls.Close()
		store.Unmount()
		cancel()
	}
	return r, release, nil
}

// Run executes commands in order, stopping at the first error.
func (r *Runner) Run(cmds []Command) error {
	return NewCommandExecutor(r).Run(cmds)
}

// Windows returns the current window list.
func (r *Runner) Windows() *registry.List { return r.host.Store.Windows() }

func (r *Runner) window(id string) (registry.Instance, error) {
	w, ok := r.host.Store.Windows().Get(id)
	if !ok {
		return registry.Instance{}, fmt.Errorf("no window %q", id)
	}
	return w, nil
}

func (r *Runner) onWindow(id string, fn func(string) *registry.List) error {
	if _, err := r.window(id); err != nil {
		return err
	}
	fn(id)
	return nil
}

func (r *Runner) SetViewport(size geom.Size) error {
	if r.host.SetViewport == nil {
		return fmt.Errorf("viewport is owned by the terminal")
	}
	if size.Width <= 0 || size.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", size.Width, size.Height)
	}
	r.host.SetViewport(size)
	return nil
}

func (r *Runner) OpenWindow(id, title string) error {
	r.host.Store.Open(registry.Definition{ID: id, Title: title})
	return nil
}

func (r *Runner) FocusWindow(id string) error    { return r.onWindow(id, r.host.Store.Focus) }
func (r *Runner) MinimizeWindow(id string) error { return r.onWindow(id, r.host.Store.Minimize) }
func (r *Runner) MaximizeWindow(id string) error { return r.onWindow(id, r.host.Store.Maximize) }
func (r *Runner) RestoreWindow(id string) error  { return r.onWindow(id, r.host.Store.Restore) }
func (r *Runner) CloseWindow(id string) error    { return r.onWindow(id, r.host.Store.Close) }
func (r *Runner) UnsnapWindow(id string) error   { return r.onWindow(id, r.host.Store.Unsnap) }

func (r *Runner) SnapWindow(id string, side geom.SnapSide) error {
	return r.onWindow(id, func(id string) *registry.List { return r.host.Store.Snap(id, side) })
}

func (r *Runner) press(id string, p geom.Point, start func(*interact.Controller, geom.Point) bool) error {
	if _, err := r.window(id); err != nil {
		return err
	}
	if active, ok := r.host.Controllers.Active(); ok {
		return fmt.Errorf("window %q already has a gesture in flight", active.ID())
	}
	c, ok := r.host.Controllers.Controller(id)
	if !ok {
		return fmt.Errorf("window %q has no controller", id)
	}
	r.pointer = p
	r.host.Store.Focus(id)
	if !start(c, p) {
		return fmt.Errorf("window %q refused the gesture", id)
	}
	return nil
}

func (r *Runner) BeginDrag(id string, p geom.Point) error {
	return r.press(id, p, (*interact.Controller).Drag)
}

func (r *Runner) BeginResize(id string, p geom.Point) error {
	return r.press(id, p, (*interact.Controller).Resize)
}

func (r *Runner) PointerMove(p geom.Point) error {
	r.pointer = p
	r.host.Bus.Move(p)
	return nil
}

func (r *Runner) PointerUp(p geom.Point) error {
	r.pointer = p
	r.host.Bus.Up(p)
	r.host.Controllers.Prune()
	return nil
}

func (r *Runner) PointerPosition() geom.Point { return r.pointer }

func (r *Runner) Sleep(d time.Duration) error {
	if r.host.Sleep != nil {
		r.host.Sleep(d)
	}
	return nil
}

func (r *Runner) ExpectCount(n int) error {
	if got := r.host.Store.Windows().Len(); got != n {
		return fmt.Errorf("expected %d windows, got %d", n, got)
	}
	return nil
}

func (r *Runner) Expect(id string, assertions []Assertion) error {
	w, err := r.window(id)
	if err != nil {
		return err
	}
	for _, a := range assertions {
		if err := r.check(w, a); err != nil {
			return fmt.Errorf("window %q: %w", id, err)
		}
	}
	return nil
}

func (r *Runner) check(w registry.Instance, a Assertion) error {
	mismatch := func(got any) error {
		return fmt.Errorf("expected %s, got %v", a, got)
	}

	switch a.Key {
	case "state":
		if w.State() != a.Value {
			return mismatch(w.State())
		}
	case "title":
		if w.Title != a.Value {
			return mismatch(w.Title)
		}
	case "snapped":
		got := w.Side.String()
		if !w.Snapped {
			got = "none"
		}
		want := a.Value
		switch want {
		case "true":
			if !w.Snapped {
				return mismatch(got)
			}
			return nil
		case "false":
			want = "none"
		}
		if got != want {
			return mismatch(got)
		}
	case "maximized", "minimized", "front":
		want, err := strconv.ParseBool(a.Value)
		if err != nil {
			return fmt.Errorf("%s: %w", a, err)
		}
		got := w.Maximized
		switch a.Key {
		case "minimized":
			got = w.Minimized
		case "front":
			front, _ := r.host.Store.Windows().Front()
			got = front.ID == w.ID
		}
		if got != want {
			return mismatch(got)
		}
	default:
		got := field(w, a.Key)
		want, err := r.operand(a)
		if err != nil {
			return err
		}
		ok := false
		switch a.Op {
		case "=":
			ok = got == want
		case "<":
			ok = got < want
		case ">":
			ok = got > want
		}
		if !ok {
			return mismatch(got)
		}
	}
	return nil
}

// operand resolves a numeric assertion value: an integer, or the same field
// of another window given by id.
func (r *Runner) operand(a Assertion) (int, error) {
	if n, err := strconv.Atoi(a.Value); err == nil {
		return n, nil
	}
	other, err := r.window(a.Value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", a, err)
	}
	return field(other, a.Key), nil
}

func field(w registry.Instance, key string) int {
	switch key {
	case "x":
		return w.Position.X
	case "y":
		return w.Position.Y
	case "width":
		return w.Size.Width
	case "height":
		return w.Size.Height
	case "z":
		return w.ZIndex
	}
	return 0
}
