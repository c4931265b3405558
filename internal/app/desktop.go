// Package app hosts the floating-window desktop in a terminal: a bubbletea
// model that maps mouse cells to virtual pixels, feeds the pointer bus and
// draws the registry's windows as lipgloss canvas layers.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/Gaurav-Gosain/floatdesk/internal/config"
	"github.com/Gaurav-Gosain/floatdesk/internal/geom"
	"github.com/Gaurav-Gosain/floatdesk/internal/gesture"
	"github.com/Gaurav-Gosain/floatdesk/internal/interact"
	"github.com/Gaurav-Gosain/floatdesk/internal/logging"
	"github.com/Gaurav-Gosain/floatdesk/internal/pointer"
	"github.com/Gaurav-Gosain/floatdesk/internal/registry"
	"github.com/Gaurav-Gosain/floatdesk/internal/tape"
	"github.com/rs/zerolog"
)

// Launcher is a dock entry that opens a window with a fixed id.
type Launcher struct {
	ID      string
	Title   string
	Icon    string
	Content string
	Size    *geom.Size
}

func (l Launcher) definition() registry.Definition {
	return registry.Definition{
		ID:          l.ID,
		Title:       l.Title,
		Icon:        l.Icon,
		Content:     l.Content,
		InitialSize: l.Size,
	}
}

// LaunchersFromConfig converts the [[launchers]] section.
func LaunchersFromConfig(cfgs []config.LauncherConfig) []Launcher {
	out := make([]Launcher, 0, len(cfgs))
	for _, c := range cfgs {
		l := Launcher{ID: c.ID, Title: c.Title, Icon: c.Icon, Content: c.Content}
		if c.Width > 0 && c.Height > 0 {
			l.Size = &geom.Size{Width: c.Width, Height: c.Height}
		}
		out = append(out, l)
	}
	return out
}

// Options configures a Desktop.
type Options struct {
	Launchers []Launcher

	// Rules, Bounds and SnapThreshold default to the stock values when zero.
	Rules         registry.Rules
	Bounds        gesture.Bounds
	SnapThreshold int

	// Script is replayed once the first window size is known.
	Script []tape.Command

	// Width and Height are the initial terminal size in cells, for hosts that know it
	// before the first WindowSizeMsg.
	Width, Height int

	Logger *zerolog.Logger
}

// Desktop is the terminal host. All of its methods run on the bubbletea
// update goroutine.
type Desktop struct {
	ctx    context.Context
	cancel context.CancelFunc
	log    zerolog.Logger

	store  *registry.Store
	bus    *pointer.Bus
	ctrls  *interact.Manager
	runner *tape.Runner

	launchers []Launcher
	live      map[string]*liveSurface

	width, height int
	pointer       geom.Point

	script *scriptState
	status string

	closeOnce sync.Once
}

// New builds a desktop with its own store. The store is bound to the
// returned desktop's context; Close releases it.
func New(ctx context.Context, opts Options) (*Desktop, error) {
	if opts.Logger != nil {
		ctx = logging.WithContext(ctx, *opts.Logger)
	}
	log := *logging.FromContext(logging.WithComponent(ctx, "desktop"))

	rules := opts.Rules
	if rules == (registry.Rules{}) {
		rules = registry.DefaultRules()
	}

	d := &Desktop{
		log:       log,
		launchers: opts.Launchers,
		live:      make(map[string]*liveSurface),
		width:     opts.Width,
		height:    opts.Height,
	}
	d.store = registry.NewStore(
		geom.ViewportFunc(d.viewport),
		registry.WithRules(rules),
		registry.WithLogger(*logging.FromContext(logging.WithComponent(ctx, "registry"))),
	)
	d.ctx, d.cancel = context.WithCancel(registry.WithStore(ctx, d.store))
	d.bus = pointer.NewBus()

	var ctrlOpts []interact.Option
	if opts.Bounds != (gesture.Bounds{}) {
		ctrlOpts = append(ctrlOpts, interact.WithBounds(opts.Bounds))
	}
	if opts.SnapThreshold > 0 {
		ctrlOpts = append(ctrlOpts, interact.WithSnapThreshold(opts.SnapThreshold))
	}

	ctrls, err := interact.NewManager(d.ctx, d.bus, d.surface, ctrlOpts...)
	if err != nil {
		d.cancel()
		return nil, fmt.Errorf("desktop: %w", err)
	}
	d.ctrls = ctrls
	d.runner = tape.NewRunner(tape.Host{Store: d.store, Bus: d.bus, Controllers: ctrls})

	if len(opts.Script) > 0 {
		d.script = &scriptState{
			player:   tape.NewPlayer(opts.Script),
			executor: tape.NewCommandExecutor(d.runner),
		}
	}
	return d, nil
}

// Close detaches every controller and unmounts the store. It is safe to call
// more than once.
func (d *Desktop) Close() {
	d.closeOnce.Do(func() {
		d.ctrls.Close()
		d.store.Unmount()
		d.cancel()
		d.log.Debug().Msg("desktop closed")
	})
}

// Store exposes the registry for embedding hosts and tests.
func (d *Desktop) Store() *registry.Store { return d.store }

// Gesturing reports whether a drag or resize is in flight.
func (d *Desktop) Gesturing() bool {
	_, ok := d.ctrls.Active()
	return ok
}

// Status is the last script or host message shown in the dock.
func (d *Desktop) Status() string { return d.status }

func (d *Desktop) grid() grid {
	top := 0
	if config.DockbarPosition == "top" {
		top = config.DockHeight
	}
	return grid{cw: max(config.CellWidth, 1), ch: max(config.CellHeight, 1), top: top}
}

// desktopRows is the number of rows left for windows once the dock is placed.
func (d *Desktop) desktopRows() int {
	if config.DockbarPosition == "hidden" {
		return max(d.height, 0)
	}
	return max(d.height-config.DockHeight, 0)
}

func (d *Desktop) viewport() geom.Size {
	g := d.grid()
	return geom.Size{Width: max(d.width, 0) * g.cw, Height: d.desktopRows() * g.ch}
}

// launch opens the launcher's window. Opening an id that is already open
// focuses it instead.
func (d *Desktop) launch(l Launcher) {
	d.store.Open(l.definition())
}
