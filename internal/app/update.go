package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/floatdesk/internal/geom"
	"github.com/Gaurav-Gosain/floatdesk/internal/interact"
	"github.com/Gaurav-Gosain/floatdesk/internal/registry"
)

// Init starts script playback when a script was given.
func (d *Desktop) Init() tea.Cmd {
	if d.script != nil && d.width > 0 {
		return d.script.start()
	}
	return nil
}

// Update implements tea.Model.
func (d *Desktop) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		first := d.width == 0
		d.width, d.height = msg.Width, msg.Height
		d.log.Debug().Int("cols", msg.Width).Int("rows", msg.Height).Msg("resized")
		if first && d.script != nil {
			return d, d.script.start()
		}
		return d, nil

	case tea.KeyPressMsg:
		return d, d.handleKey(msg)

	case tea.MouseClickMsg:
		d.handlePress(msg.Mouse())
		return d, nil

	case tea.MouseMotionMsg:
		d.handleMotion(msg.Mouse())
		return d, nil

	case tea.MouseReleaseMsg:
		d.handleRelease(msg.Mouse())
		return d, nil

	case scriptStepMsg:
		return d, d.stepScript()
	}
	return d, nil
}

func (d *Desktop) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if action, ok := actionFor(msg); ok {
		return actions.dispatch(action, d)
	}
	return nil
}

func (d *Desktop) handlePress(m tea.Mouse) {
	if m.Button != tea.MouseLeft || d.Gesturing() {
		return
	}
	if d.onDock(m.Y) {
		d.clickDock(m.X)
		return
	}

	w, reg := d.hit(m.X, m.Y)
	if reg == regionNone {
		return
	}
	d.pointer = d.grid().point(m.X, m.Y)

	switch reg {
	case regionClose:
		d.store.Close(w.ID)
		d.pruneLive()
	case regionMinimize:
		d.store.Minimize(w.ID)
	case regionMaximize:
		if w.Maximized {
			d.store.Restore(w.ID)
		} else {
			d.store.Maximize(w.ID)
		}
	case regionTitle:
		d.start(w, (*interact.Controller).Drag)
	case regionResize:
		d.start(w, (*interact.Controller).Resize)
	default:
		d.store.Focus(w.ID)
	}
}

func (d *Desktop) start(w registry.Instance, begin func(*interact.Controller, geom.Point) bool) {
	d.store.Focus(w.ID)
	c, ok := d.ctrls.Controller(w.ID)
	if !ok {
		return
	}
	if !begin(c, d.pointer) {
		d.log.Debug().Str("window_id", w.ID).Str("state", w.State()).Msg("gesture refused")
	}
}

func (d *Desktop) handleMotion(m tea.Mouse) {
	if !d.Gesturing() {
		return
	}
	d.pointer = d.grid().point(m.X, m.Y)
	d.bus.Move(d.pointer)
}

func (d *Desktop) handleRelease(m tea.Mouse) {
	if !d.Gesturing() {
		return
	}
	d.pointer = d.grid().point(m.X, m.Y)
	d.bus.Up(d.pointer)
	d.ctrls.Prune()
	d.pruneLive()
}

// FilterMouseMotion drops motion events while no gesture is in flight. Pass
// it to tea.WithFilter.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	d, ok := model.(*Desktop)
	if !ok || d.Gesturing() {
		return msg
	}
	return nil
}

// scriptDelay paces script steps so each one is rendered.
const scriptDelay = 50 * time.Millisecond
