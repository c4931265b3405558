package interact

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Gaurav-Gosain/floatdesk/internal/gesture"
	"github.com/Gaurav-Gosain/floatdesk/internal/logging"
	"github.com/Gaurav-Gosain/floatdesk/internal/observe"
	"github.com/Gaurav-Gosain/floatdesk/internal/pointer"
	"github.com/Gaurav-Gosain/floatdesk/internal/registry"
	"github.com/rs/zerolog"
)

// SurfaceFunc returns the live surface for a window. It may return nil.
type SurfaceFunc func(id string) gesture.Surface

type mounted struct {
	ctrl   *Controller
	detach func()
}

// Manager keeps one mounted Controller per open window: controllers are
// created when a window appears in the store and detached when it leaves.
type Manager struct {
	ctx     context.Context
	bus     *pointer.Bus
	surface SurfaceFunc
	opts    []Option
	windows observe.Readable[*registry.List]
	log     zerolog.Logger

	mu    sync.Mutex
	ctrls map[string]mounted
	unsub func()
}

// NewManager mounts controllers for the windows of the store bound to ctx
// and follows its window list until Close is called or ctx is done.
func NewManager(ctx context.Context, bus *pointer.Bus, surface SurfaceFunc, opts ...Option) (*Manager, error) {
	windows, err := registry.Windows(ctx)
	if err != nil {
		return nil, fmt.Errorf("interact: %w", err)
	}
	if surface == nil {
		surface = func(string) gesture.Surface { return nil }
	}

	m := &Manager{
		ctx:     ctx,
		bus:     bus,
		surface: surface,
		opts:    opts,
		windows: windows,
		log:     *logging.FromContext(logging.WithComponent(ctx, "interact")),
		ctrls:   make(map[string]mounted),
	}
	m.unsub = windows.Subscribe(m.sync)
	if err := m.syncErr(windows.Get()); err != nil {
		m.unsub()
		return nil, err
	}
	context.AfterFunc(ctx, m.Close)
	return m, nil
}

// sync is the store subscriber. A store that went out of scope can no longer
// mount controllers, so the manager stops following it.
func (m *Manager) sync(l *registry.List) {
	err := m.syncErr(l)
	if err == nil {
		return
	}
	if errors.Is(err, registry.ErrNoStore) {
		m.log.Warn().Err(err).Msg("store out of scope, no longer following windows")
		m.unsub()
		return
	}
	m.log.Error().Err(err).Msg("failed to mount controller")
}

func (m *Manager) syncErr(l *registry.List) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctrls == nil {
		return nil
	}

	live := make(map[string]bool, l.Len())
	for _, id := range l.IDs() {
		live[id] = true
		if _, ok := m.ctrls[id]; ok {
			continue
		}
		c, err := New(m.ctx, id, m.surface(id), m.opts...)
		if err != nil {
			return err
		}
		m.ctrls[id] = mounted{ctrl: c, detach: c.Mount(m.ctx, m.bus)}
		m.log.Trace().Str("window_id", id).Msg("controller mounted")
	}
	for id, mt := range m.ctrls {
		if !live[id] {
			// A gesture still in flight keeps receiving the release so it can
			// finish as a no-op; the listeners are dropped right after.
			if mt.ctrl.IsDragging() || mt.ctrl.IsResizing() {
				continue
			}
			mt.detach()
			delete(m.ctrls, id)
		}
	}
	return nil
}

// Prune drops controllers whose window was closed while their gesture was
// still in flight. Hosts call it after dispatching a pointer release.
func (m *Manager) Prune() { m.sync(m.windows.Get()) }

// Controller returns the controller for window id.
func (m *Manager) Controller(id string) (*Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mt, ok := m.ctrls[id]
	return mt.ctrl, ok
}

// Active returns the controller with a gesture in flight, if any.
func (m *Manager) Active() (*Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mt := range m.ctrls {
		if mt.ctrl.IsDragging() || mt.ctrl.IsResizing() {
			return mt.ctrl, true
		}
	}
	return nil, false
}

// Len returns the number of mounted controllers.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ctrls)
}

// Close detaches every controller and stops following the store.
func (m *Manager) Close() {
	m.unsub()
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mt := range m.ctrls {
		mt.detach()
	}
	m.ctrls = nil
}
