package app

import (
	"strconv"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// actionHandler runs one keyboard action against the desktop.
type actionHandler func(d *Desktop) tea.Cmd

// actionDispatcher maps action names to handlers.
type actionDispatcher struct {
	handlers map[string]actionHandler
}

var actions = newActionDispatcher()

// keyBinding ties a key binding to an action name.
type keyBinding struct {
	key.Binding
	action string
}

// keymap lists the desktop key bindings in help order. Windows are managed
// with the pointer only; keys quit and open dock entries.
var keymap = append([]keyBinding{
	{key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")), "quit"},
}, launchBindings()...)

func launchBindings() []keyBinding {
	out := make([]keyBinding, 0, 9)
	for i := 1; i <= 9; i++ {
		n := strconv.Itoa(i)
		out = append(out, keyBinding{
			key.NewBinding(key.WithKeys(n), key.WithHelp(n, "launcher "+n)),
			"launch_" + n,
		})
	}
	return out
}

// actionFor returns the action bound to msg.
func actionFor(msg tea.KeyPressMsg) (string, bool) {
	for _, b := range keymap {
		if key.Matches(msg, b.Binding) {
			return b.action, true
		}
	}
	return "", false
}

func newActionDispatcher() *actionDispatcher {
	a := &actionDispatcher{handlers: make(map[string]actionHandler)}
	a.registerHandlers()
	return a
}

func (a *actionDispatcher) registerHandlers() {
	a.register("quit", func(*Desktop) tea.Cmd { return tea.Quit })

	for i := 1; i <= 9; i++ {
		a.register("launch_"+strconv.Itoa(i), makeLaunchHandler(i-1))
	}
}

func (a *actionDispatcher) register(action string, h actionHandler) {
	a.handlers[action] = h
}

// dispatch runs the handler for action. Unknown actions do nothing.
func (a *actionDispatcher) dispatch(action string, d *Desktop) tea.Cmd {
	if h, ok := a.handlers[action]; ok {
		d.log.Trace().Str("action", action).Msg("key action")
		return h(d)
	}
	return nil
}

func makeLaunchHandler(idx int) actionHandler {
	return func(d *Desktop) tea.Cmd {
		if idx < len(d.launchers) {
			d.launch(d.launchers[idx])
		}
		return nil
	}
}

// KeyHelp lists the key bindings as key and description pairs.
func KeyHelp() [][2]string {
	out := make([][2]string, 0, len(keymap))
	for _, b := range keymap {
		h := b.Help()
		out = append(out, [2]string{h.Key, h.Desc})
	}
	return out
}
