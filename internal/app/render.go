package app

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/floatdesk/internal/config"
	"github.com/Gaurav-Gosain/floatdesk/internal/geom"
	"github.com/Gaurav-Gosain/floatdesk/internal/registry"
	"github.com/Gaurav-Gosain/floatdesk/internal/snap"
	"github.com/Gaurav-Gosain/floatdesk/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

// Layer z values are spread out so the snap preview can sit directly under
// the front window.
func windowZ(w registry.Instance) int { return config.ZWindows + 2*w.ZIndex }

// Canvas composes the desktop, the windows, the snap preview and the dock.
func (d *Desktop) Canvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(d.width, d.height)
	if d.width <= 0 || d.height <= 0 {
		return canvas
	}

	g := d.grid()
	rows := d.desktopRows()

	layers := []*lipgloss.Layer{
		lipgloss.NewLayer(
			lipgloss.NewStyle().Background(theme.DesktopBg()).Width(d.width).Height(rows).Render(""),
		).X(0).Y(g.top).Z(config.ZDesktop),
	}

	l := d.store.Windows()
	active, gesturing := d.ctrls.Active()
	front, hasFront := l.Front()

	for _, w := range l.Windows() {
		if w.Minimized {
			continue
		}
		pos, size := d.geometry(w)
		r := g.rect(pos, size)

		border := theme.BorderUnfocused()
		switch {
		case gesturing && active.ID() == w.ID:
			border = theme.BorderGesture()
		case hasFront && front.ID == w.ID:
			border = theme.BorderFocused()
		}

		content := clip(renderWindow(w, r.W, r.H, border), d.width-r.X, rows+g.top-r.Y)
		layers = append(layers, lipgloss.NewLayer(content).X(r.X).Y(r.Y).Z(windowZ(w)).ID(w.ID))
	}

	if side := d.store.SnapPreview(); side != geom.SnapNone && config.ShowSnapOverlay && hasFront {
		size, pos := snap.Layout(side, d.viewport())
		r := g.rect(pos, size)
		layers = append(layers, lipgloss.NewLayer(renderSnapOverlay(r.W, r.H)).
			X(r.X).Y(r.Y).Z(windowZ(front)-1).ID("snap-preview"))
	}

	if config.DockbarPosition != "hidden" {
		y := d.height - config.DockHeight
		if config.DockbarPosition == "top" {
			y = 0
		}
		layers = append(layers, lipgloss.NewLayer(d.renderDock()).X(0).Y(y).Z(config.ZDock).ID("dock"))
	}

	for _, layer := range layers {
		canvas.Compose(layer)
	}
	return canvas
}

// View renders the canvas.
func (d *Desktop) View() tea.View {
	var view tea.View
	view.SetContent(lipgloss.Sprint(d.Canvas().Render()))
	view.AltScreen = true
	// Motion is only reported while a button is held, which is all a
	// drag or resize needs.
	view.MouseMode = tea.MouseModeCellMotion
	return view
}

// renderWindow draws a width x height window: the title bar, the body inside
// the side borders, and the bottom border ending in the resize handle.
func renderWindow(w registry.Instance, width, height int, border color.Color) string {
	b := config.GetBorderForStyle()
	edge := lipgloss.NewStyle().Foreground(border)
	text := lipgloss.NewStyle().Foreground(theme.WindowFg()).Background(theme.WindowBg())
	inner := max(width-2, 0)

	rows := make([]string, 0, height)
	rows = append(rows, titleBar(w, width, border))

	body := bodyLines(w, inner, max(height-2, 0))
	for i := range max(height-2, 0) {
		line := ""
		if i < len(body) {
			line = body[i]
		}
		pad := strings.Repeat(" ", max(inner-ansi.StringWidth(line), 0))
		rows = append(rows, edge.Render(b.Left)+text.Render(line+pad)+edge.Render(b.Right))
	}

	rows = append(rows, edge.Render(b.BottomLeft+strings.Repeat(b.Bottom, inner))+
		edge.Render(config.GetResizeHandle()))
	return strings.Join(rows, "\n")
}

func bodyLines(w registry.Instance, width, rows int) []string {
	var text string
	switch c := w.Content.(type) {
	case string:
		text = c
	case fmt.Stringer:
		text = c.String()
	}
	if text == "" {
		text = fmt.Sprintf("%s\n%dx%d at %d,%d", w.State(), w.Size.Width, w.Size.Height, w.Position.X, w.Position.Y)
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		if len(out) == rows {
			break
		}
		out = append(out, ansi.Truncate(line, width, "…"))
	}
	return out
}

func titleBar(w registry.Instance, width int, border color.Color) string {
	b := config.GetBorderForStyle()
	edge := lipgloss.NewStyle().Foreground(border)
	inner := max(width-2, 0)

	var buttons string
	if showButtons(width) {
		restore := config.GetWindowButtonMaximize()
		if w.Maximized {
			restore = config.GetWindowButtonRestore()
		}
		btn := func(glyph string, c color.Color) string {
			return lipgloss.NewStyle().Foreground(c).Render(glyph)
		}
		buttons = btn(config.GetWindowButtonMinimize(), theme.ButtonMinimize()) +
			btn(restore, theme.ButtonMaximize()) +
			btn(config.GetWindowButtonClose(), theme.ButtonClose())
	}
	room := max(inner-lipgloss.Width(buttons), 0)

	name := w.Title
	if name == "" {
		name = w.ID
	}
	if w.Icon != "" {
		name = w.Icon + " " + name
	}
	title := ansi.Truncate(" "+name+" ", room, "…")
	fill := max(room-ansi.StringWidth(title), 0)

	return edge.Render(b.TopLeft) +
		lipgloss.NewStyle().Foreground(theme.TitleFg()).Bold(true).Render(title) +
		edge.Render(strings.Repeat(b.Top, fill)) +
		buttons +
		edge.Render(b.TopRight)
}

func renderSnapOverlay(width, height int) string {
	return lipgloss.NewStyle().
		Border(config.GetBorderForStyle()).
		BorderForeground(theme.SnapOverlayBorder()).
		Background(theme.SnapOverlay()).
		Width(width).
		Height(height).
		Render("")
}

// clip cuts a rendered block to at most width columns and rows rows.
func clip(content string, width, rows int) string {
	lines := strings.Split(content, "\n")
	if rows < len(lines) {
		lines = lines[:max(rows, 0)]
	}
	for i, line := range lines {
		if ansi.StringWidth(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	return strings.Join(lines, "\n")
}
