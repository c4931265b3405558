// Package config provides configuration constants, runtime appearance settings, and user settings.
package config

import (
	"charm.land/lipgloss/v2"
)

// =============================================================================
// Window Geometry (virtual pixels)
// =============================================================================

const (
	// MinWindowWidth is the smallest width a resize gesture can produce.
	MinWindowWidth = 300

	// MinWindowHeight is the smallest height a resize gesture can produce.
	MinWindowHeight = 42

	// DefaultWindowWidth is the width of a window opened without an initial size.
	DefaultWindowWidth = 500

	// DefaultWindowHeight is the height of a window opened without an initial size.
	DefaultWindowHeight = 300

	// DefaultWindowX is the left edge of a window opened without an initial position.
	DefaultWindowX = 100

	// DefaultWindowY is the top edge of a window opened without an initial position.
	DefaultWindowY = 100
)

// =============================================================================
// Interaction
// =============================================================================

const (
	// SnapThreshold is the distance from a viewport edge, in virtual pixels,
	// inside which a drag proposes a snap.
	SnapThreshold = 20

	// MobileBreakpoint is the viewport width at or below which new windows open maximized.
	MobileBreakpoint = 768
)

// =============================================================================
// Terminal Host
// =============================================================================

const (
	// DefaultCellWidth is the number of virtual pixels covered by one terminal column.
	DefaultCellWidth = 10

	// DefaultCellHeight is the number of virtual pixels covered by one terminal row.
	DefaultCellHeight = 20

	// NormalFPS is the renderer frame rate.
	NormalFPS = 60

	// DockHeight is the height of the dock in rows.
	DockHeight = 1

	// TitleBarHeight is the height of a window title bar in rows.
	TitleBarHeight = 1

	// MaxDockTitleLength is the longest window title shown in a dock entry.
	MaxDockTitleLength = 14
)

// Layer z offsets used when composing the desktop canvas.
const (
	ZDesktop = 0
	ZWindows = 10
	ZOverlay = 1_000_000
	ZDock    = 2_000_000
)

// =============================================================================
// Runtime Appearance Settings
// =============================================================================

// UseASCIIOnly swaps Unicode glyphs for ASCII fallbacks.
var UseASCIIOnly = false

// BorderStyle controls which border style to use for windows.
// Set via --border-style flag or appearance.border_style config
var BorderStyle = "rounded"

// DockbarPosition controls the position of the dockbar.
// Set via --dockbar-position flag or appearance.dockbar_position config
var DockbarPosition = "bottom"

// HideWindowButtons hides the minimize, maximize and close buttons.
var HideWindowButtons = false

// ShowSnapOverlay controls whether the snap preview is drawn during a drag.
var ShowSnapOverlay = true

// CellWidth and CellHeight map terminal cells to virtual pixels.
var (
	CellWidth  = DefaultCellWidth
	CellHeight = DefaultCellHeight
)

// =============================================================================
// Window Decoration Characters
// =============================================================================

const (
	WindowButtonMinimize = " ─ "
	WindowButtonMaximize = " □ "
	WindowButtonRestore  = " ◱ "
	WindowButtonClose    = " ⤫ "
	ResizeHandle         = "◢"

	WindowButtonMinimizeASCII = " _ "
	WindowButtonMaximizeASCII = " ^ "
	WindowButtonRestoreASCII  = " v "
	WindowButtonCloseASCII    = " X "
	ResizeHandleASCII         = "/"

	DockSeparator      = " │ "
	DockSeparatorASCII = " | "
)

// GetBorderForStyle returns the lipgloss Border for the current style
func GetBorderForStyle() lipgloss.Border {
	if UseASCIIOnly || BorderStyle == "ascii" {
		return lipgloss.ASCIIBorder()
	}
	switch BorderStyle {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	case "block":
		return lipgloss.BlockBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

func pick(unicode, ascii string) string {
	if UseASCIIOnly {
		return ascii
	}
	return unicode
}

// GetWindowButtonMinimize returns the minimize button glyph.
func GetWindowButtonMinimize() string { return pick(WindowButtonMinimize, WindowButtonMinimizeASCII) }

// GetWindowButtonMaximize returns the maximize button glyph.
func GetWindowButtonMaximize() string { return pick(WindowButtonMaximize, WindowButtonMaximizeASCII) }

// GetWindowButtonRestore returns the glyph shown in place of maximize on a maximized window.
func GetWindowButtonRestore() string { return pick(WindowButtonRestore, WindowButtonRestoreASCII) }

// GetWindowButtonClose returns the close button glyph.
func GetWindowButtonClose() string { return pick(WindowButtonClose, WindowButtonCloseASCII) }

// GetResizeHandle returns the glyph drawn in the bottom-right corner of a window.
func GetResizeHandle() string { return pick(ResizeHandle, ResizeHandleASCII) }

// GetDockSeparator returns the separator between dock entries.
func GetDockSeparator() string { return pick(DockSeparator, DockSeparatorASCII) }
