// Package theme provides the desktop's colors, taken from a bubbletint theme
// when one is selected and from fixed xterm-like defaults otherwise.
package theme

import (
	"fmt"
	"image/color"
	"slices"
	"sync"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	enabled bool
	active  *tint.Tint
)

// Initialize selects the named theme. An empty name disables theming and
// the default palette is used. Custom themes in the themes directory are
// registered first so they can be selected by id.
func Initialize(themeName string, log zerolog.Logger) error {
	mu.Lock()
	defer mu.Unlock()

	if themeName == "" {
		enabled, active = false, nil
		return nil
	}

	tint.NewDefaultRegistry()
	if dir, err := GetThemesDir(); err == nil {
		if _, err := LoadCustomThemes(dir, log); err != nil {
			log.Warn().Err(err).Msg("custom themes not loaded")
		}
	}

	if !tint.SetTintID(themeName) {
		log.Warn().Str("theme", themeName).Msg("unknown theme, using default")
		tint.SetTintID("default")
	}
	enabled, active = true, tint.Current()
	return nil
}

// ThemeIDs lists every registered theme id, sorted.
func ThemeIDs(log zerolog.Logger) []string {
	mu.Lock()
	defer mu.Unlock()

	tint.NewDefaultRegistry()
	if dir, err := GetThemesDir(); err == nil {
		_, _ = LoadCustomThemes(dir, log)
	}
	ids := slices.Clone(tint.TintIDs())
	slices.Sort(ids)
	if active != nil {
		tint.SetTintID(active.ID)
	}
	return ids
}

// IsEnabled reports whether a theme is active.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Current returns the active theme, or nil when theming is disabled.
func Current() *tint.Tint {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled {
		return nil
	}
	return active
}

func pick(fallback string, from func(*tint.Tint) *tint.Color) color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color(fallback)
	}
	if c := from(t); c != nil {
		return c
	}
	return lipgloss.Color(fallback)
}

// BorderUnfocused is the border of every window but the front one.
func BorderUnfocused() color.Color {
	return pick("#808090", func(t *tint.Tint) *tint.Color { return t.BrightBlack })
}

// BorderFocused is the border of the front window.
func BorderFocused() color.Color {
	return pick("#AFFFFF", func(t *tint.Tint) *tint.Color { return t.BrightCyan })
}

// BorderGesture is the border of a window being dragged or resized.
func BorderGesture() color.Color {
	return pick("#FFD75F", func(t *tint.Tint) *tint.Color { return t.BrightYellow })
}

func TitleFg() color.Color {
	return pick("#e5e5e5", func(t *tint.Tint) *tint.Color { return t.Fg })
}

func WindowBg() color.Color {
	return pick("#1a1a2e", func(t *tint.Tint) *tint.Color { return t.Bg })
}

func WindowFg() color.Color {
	return pick("#c0c0c0", func(t *tint.Tint) *tint.Color { return t.White })
}

// ButtonMinimize, ButtonMaximize and ButtonClose color the title bar buttons.
func ButtonMinimize() color.Color {
	return pick("#cdcd00", func(t *tint.Tint) *tint.Color { return t.Yellow })
}

func ButtonMaximize() color.Color {
	return pick("#00cd00", func(t *tint.Tint) *tint.Color { return t.Green })
}

func ButtonClose() color.Color {
	return pick("#cd0000", func(t *tint.Tint) *tint.Color { return t.Red })
}

// SnapOverlay colors the preview of the half a window will snap to.
func SnapOverlay() color.Color {
	return pick("#3a3a6e", func(t *tint.Tint) *tint.Color { return t.Blue })
}

func SnapOverlayBorder() color.Color {
	return pick("#5c5cff", func(t *tint.Tint) *tint.Color { return t.BrightBlue })
}

func DesktopBg() color.Color {
	return pick("#000000", func(t *tint.Tint) *tint.Color { return t.Black })
}

// DockBg returns the background color for the dock.
func DockBg() color.Color {
	return lipgloss.Color("#2a2a3e")
}

// DockFg returns the foreground color for the dock.
func DockFg() color.Color {
	return lipgloss.Color("#a0a0a8")
}

// DockHighlight marks the front window's dock item.
func DockHighlight() color.Color {
	return pick("#00ff00", func(t *tint.Tint) *tint.Color { return t.BrightGreen })
}

// DockDimmed marks minimized windows and launchers with nothing open.
func DockDimmed() color.Color {
	return lipgloss.Color("#808090")
}

func DockSeparator() color.Color {
	return lipgloss.Color("#303040")
}

// CLITableHeader returns the color for CLI table headers.
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

// CLITableBorder returns the color for CLI table borders.
func CLITableBorder() color.Color {
	return lipgloss.Color("14")
}

// CLITableDim returns the dimmed color for CLI table elements.
func CLITableDim() color.Color {
	return lipgloss.Color("8")
}

// ColorToString converts a color to a #rrggbb string.
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
