package app

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/floatdesk/internal/config"
	"github.com/Gaurav-Gosain/floatdesk/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

type dockItem struct {
	label    string
	windowID string
	launcher int // index into launchers, -1 for windows opened otherwise

	open, minimized, front bool

	start, end int // columns, end exclusive
}

// dockItems lists the launchers followed by the open windows no launcher
// owns, laid out left to right from column 1.
func (d *Desktop) dockItems() []dockItem {
	l := d.store.Windows()
	front, _ := l.Front()

	var items []dockItem
	owned := make(map[string]bool, len(d.launchers))
	for i, ln := range d.launchers {
		owned[ln.ID] = true
		it := dockItem{label: dockLabel(ln.Icon, ln.Title, ln.ID), windowID: ln.ID, launcher: i}
		if w, ok := l.Get(ln.ID); ok {
			it.open, it.minimized = true, w.Minimized
		}
		items = append(items, it)
	}
	for _, w := range l.Windows() {
		if owned[w.ID] {
			continue
		}
		items = append(items, dockItem{
			label:     dockLabel(w.Icon, w.Title, w.ID),
			windowID:  w.ID,
			launcher:  -1,
			open:      true,
			minimized: w.Minimized,
		})
	}

	col := 1
	sep := ansi.StringWidth(config.GetDockSeparator())
	for i := range items {
		it := &items[i]
		it.front = it.open && !it.minimized && it.windowID == front.ID
		it.start = col
		it.end = col + ansi.StringWidth(it.label) + 2
		col = it.end + sep
	}
	return items
}

func dockLabel(icon, title, id string) string {
	if title == "" {
		title = id
	}
	label := ansi.Truncate(title, config.MaxDockTitleLength, "…")
	if icon != "" {
		label = icon + " " + label
	}
	return label
}

func (d *Desktop) renderDock() string {
	base := lipgloss.NewStyle().Background(theme.DockBg()).Foreground(theme.DockFg())
	sep := base.Foreground(theme.DockSeparator()).Render(config.GetDockSeparator())

	var b strings.Builder
	b.WriteString(base.Render(" "))
	for i, it := range d.dockItems() {
		if i > 0 {
			b.WriteString(sep)
		}
		style := base
		switch {
		case it.front:
			style = style.Foreground(theme.DockHighlight()).Bold(true)
		case !it.open || it.minimized:
			style = style.Foreground(theme.DockDimmed())
		}
		b.WriteString(style.Render(" " + it.label + " "))
	}

	line := b.String()
	if d.status != "" {
		status := base.Foreground(theme.DockDimmed()).Render(" " + d.status + " ")
		if gap := d.width - ansi.StringWidth(line) - ansi.StringWidth(status); gap > 0 {
			line += base.Render(strings.Repeat(" ", gap)) + status
		}
	}
	if w := ansi.StringWidth(line); w < d.width {
		line += base.Render(strings.Repeat(" ", d.width-w))
	}
	return ansi.Truncate(line, d.width, "")
}

// clickDock opens, focuses or un-minimizes the item under col.
func (d *Desktop) clickDock(col int) {
	for _, it := range d.dockItems() {
		if col < it.start || col >= it.end {
			continue
		}
		if !it.open && it.launcher >= 0 {
			d.launch(d.launchers[it.launcher])
			return
		}
		d.store.Focus(it.windowID)
		return
	}
}

func (d *Desktop) onDock(row int) bool {
	switch config.DockbarPosition {
	case "hidden":
		return false
	case "top":
		return row < config.DockHeight
	default:
		return row >= d.height-config.DockHeight
	}
}
