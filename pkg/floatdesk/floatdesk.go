// Package floatdesk provides a floating-window desktop that can be embedded
// in other Bubble Tea applications or run as a standalone TUI.
//
// Windows are dragged by their title bar, resized from the bottom-right
// handle and snapped to a half of the screen by dragging them against the
// left or right edge. The window list lives in a registry store that other
// code can observe and drive.
//
// # Basic Usage
//
//	model, err := floatdesk.New(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer model.Close()
//	p := tea.NewProgram(model, floatdesk.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
//	model, err := floatdesk.New(ctx,
//		floatdesk.WithTheme("dracula"),
//		floatdesk.WithLaunchers(floatdesk.Launcher{ID: "notes", Title: "Notes"}),
//		floatdesk.WithScript("Open notes\nSnap notes left"),
//	)
package floatdesk

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/floatdesk/internal/app"
	"github.com/Gaurav-Gosain/floatdesk/internal/config"
	"github.com/Gaurav-Gosain/floatdesk/internal/gesture"
	"github.com/Gaurav-Gosain/floatdesk/internal/registry"
	"github.com/Gaurav-Gosain/floatdesk/internal/tape"
	"github.com/Gaurav-Gosain/floatdesk/internal/theme"
	"github.com/rs/zerolog"
)

// Model is the desktop. It implements tea.Model; call Close when the
// program exits.
type Model = app.Desktop

// Launcher is a dock entry that opens a window.
type Launcher = app.Launcher

// Options configures a desktop.
type Options struct {
	// Theme is a bubbletint theme id. Empty keeps the default palette.
	Theme string

	ASCIIOnly         bool
	BorderStyle       string // rounded, normal, thick, double, hidden, block, ascii
	DockbarPosition   string // bottom, top, hidden
	HideWindowButtons bool

	// Width and Height are the initial terminal size in cells. Zero waits
	// for the first resize message.
	Width, Height int

	Launchers []Launcher

	// Script is a tape script replayed once the desktop has a size.
	Script string

	// UserConfig supplies launchers and interaction rules. Nil uses the
	// defaults; explicit options win over it.
	UserConfig *config.UserConfig

	Logger *zerolog.Logger
}

// Option is a functional option for configuring a desktop.
type Option func(*Options)

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) { o.Theme = name }
}

// WithASCIIOnly replaces Unicode glyphs with ASCII.
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) { o.ASCIIOnly = enabled }
}

// WithBorderStyle sets the window border style.
func WithBorderStyle(style string) Option {
	return func(o *Options) { o.BorderStyle = style }
}

// WithDockbarPosition sets the dockbar position.
func WithDockbarPosition(position string) Option {
	return func(o *Options) { o.DockbarPosition = position }
}

// WithHideWindowButtons hides window control buttons.
func WithHideWindowButtons(hide bool) Option {
	return func(o *Options) { o.HideWindowButtons = hide }
}

// WithViewport sets the initial terminal size in cells.
func WithViewport(width, height int) Option {
	return func(o *Options) { o.Width, o.Height = width, height }
}

// WithLaunchers replaces the configured dock launchers.
func WithLaunchers(launchers ...Launcher) Option {
	return func(o *Options) { o.Launchers = launchers }
}

// WithScript replays a tape script on start.
func WithScript(src string) Option {
	return func(o *Options) { o.Script = src }
}

// WithUserConfig sets the user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) { o.UserConfig = cfg }
}

// WithLogger sets the logger for desktop events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = &l }
}

// PTY is anything that knows its size, such as an SSH pty window.
type PTY interface {
	Width() int
	Height() int
}

// New creates a desktop. Appearance options are process-wide.
func New(ctx context.Context, opts ...Option) (*Model, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return newModel(ctx, o)
}

// NewForPTY creates a desktop sized to pty.
func NewForPTY(ctx context.Context, pty PTY, opts ...Option) (*Model, error) {
	return New(ctx, append(opts, WithViewport(pty.Width(), pty.Height()))...)
}

func newModel(ctx context.Context, o Options) (*Model, error) {
	cfg := o.UserConfig
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	themeName := config.ApplyOverrides(config.Overrides{
		ASCIIOnly:         o.ASCIIOnly,
		BorderStyle:       o.BorderStyle,
		DockbarPosition:   o.DockbarPosition,
		HideWindowButtons: o.HideWindowButtons,
		ThemeName:         o.Theme,
	}, cfg)

	log := zerolog.Nop()
	if o.Logger != nil {
		log = *o.Logger
	}
	if err := theme.Initialize(themeName, log); err != nil {
		return nil, fmt.Errorf("floatdesk: theme: %w", err)
	}

	desktop := DesktopOptions(cfg)
	desktop.Width, desktop.Height = o.Width, o.Height
	desktop.Logger = &log
	if o.Launchers != nil {
		desktop.Launchers = o.Launchers
	}
	if o.Script != "" {
		cmds, err := tape.Parse(o.Script)
		if err != nil {
			return nil, fmt.Errorf("floatdesk: script: %w", err)
		}
		desktop.Script = cmds
	}
	return app.New(ctx, desktop)
}

// DesktopOptions maps a user configuration onto desktop options: launchers,
// open rules, resize bounds and the snap threshold.
func DesktopOptions(cfg *config.UserConfig) app.Options {
	rules := registry.DefaultRules()
	bounds := gesture.DefaultBounds()
	in := cfg.Interaction
	if in.MobileBreakpoint > 0 {
		rules.MobileBreakpoint = in.MobileBreakpoint
	}
	if in.MinWidth > 0 {
		bounds.MinWidth = in.MinWidth
	}
	if in.MinHeight > 0 {
		bounds.MinHeight = in.MinHeight
	}
	return app.Options{
		Launchers:     app.LaunchersFromConfig(cfg.Launchers),
		Rules:         rules,
		Bounds:        bounds,
		SnapThreshold: in.SnapThreshold,
	}
}

// ProgramOptions returns the tea.ProgramOption values a desktop expects.
//
//	p := tea.NewProgram(model, floatdesk.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion is a tea.WithFilter function that drops mouse motion
// unless a drag or resize is in flight.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	return app.FilterMouseMotion(model, msg)
}

// Config re-exports the config loaders so embedders need not import
// internal packages.
var Config = struct {
	LoadUserConfig func() (*config.UserConfig, *config.ValidationResult, error)
	DefaultConfig  func() *config.UserConfig
	GetConfigPath  func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}
