package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

const (
	configRelPath = "floatdesk/config.toml"
	logRelPath    = "floatdesk/floatdesk.log"
)

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Appearance  AppearanceConfig  `toml:"appearance"`
	Interaction InteractionConfig `toml:"interaction"`
	Terminal    TerminalConfig    `toml:"terminal"`
	Logging     LoggingConfig     `toml:"logging"`
	Launchers   []LauncherConfig  `toml:"launchers"`
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	Theme             string `toml:"theme"`               // bubbletint theme id, empty for terminal colors
	BorderStyle       string `toml:"border_style"`        // rounded, normal, thick, double, hidden, block, ascii
	DockbarPosition   string `toml:"dockbar_position"`    // bottom, top, hidden
	HideWindowButtons bool   `toml:"hide_window_buttons"` // hide minimize, maximize and close
	ShowSnapOverlay   *bool  `toml:"show_snap_overlay"`   // draw the snap preview while dragging (default: true)
}

// InteractionConfig holds the window-manager rules, all in virtual pixels.
type InteractionConfig struct {
	SnapThreshold    int `toml:"snap_threshold"`
	MinWidth         int `toml:"min_width"`
	MinHeight        int `toml:"min_height"`
	MobileBreakpoint int `toml:"mobile_breakpoint"`
}

// TerminalConfig maps terminal cells to virtual pixels.
type TerminalConfig struct {
	CellWidth  int `toml:"cell_width"`
	CellHeight int `toml:"cell_height"`
}

// LoggingConfig controls the diagnostic log file.
type LoggingConfig struct {
	Level  string `toml:"level"`  // off, trace, debug, info, warn, error
	Format string `toml:"format"` // console or json
	File   string `toml:"file"`   // empty means $XDG_STATE_HOME/floatdesk/floatdesk.log
}

// LauncherConfig is a dock entry that opens a window.
type LauncherConfig struct {
	ID      string `toml:"id"`
	Title   string `toml:"title"`
	Icon    string `toml:"icon"`
	Content string `toml:"content"`
	Width   int    `toml:"width,omitempty"`
	Height  int    `toml:"height,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	overlay := true
	return &UserConfig{
		Appearance: AppearanceConfig{
			BorderStyle:     "rounded",
			DockbarPosition: "bottom",
			ShowSnapOverlay: &overlay,
		},
		Interaction: InteractionConfig{
			SnapThreshold:    SnapThreshold,
			MinWidth:         MinWindowWidth,
			MinHeight:        MinWindowHeight,
			MobileBreakpoint: MobileBreakpoint,
		},
		Terminal: TerminalConfig{
			CellWidth:  DefaultCellWidth,
			CellHeight: DefaultCellHeight,
		},
		Logging: LoggingConfig{
			Level:  "off",
			Format: "console",
		},
		Launchers: []LauncherConfig{
			{ID: "about", Title: "About", Icon: "i", Content: "floatdesk: drag the title bar, resize from the corner,\nsnap by dragging to a screen edge."},
			{ID: "notes", Title: "Notes", Icon: "n", Content: "Nothing here yet."},
			{ID: "help", Title: "Help", Icon: "?", Content: "Buttons: minimize, maximize, close.\nDrag a window to the left or right edge to snap it.\nq or ctrl+c quits.", Width: 400, Height: 200},
		},
	}
}

// LoadUserConfig loads the user configuration from the XDG config directory,
// writing the default file when none exists yet.
func LoadUserConfig() (*UserConfig, *ValidationResult, error) {
	configPath, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		path, err := xdg.ConfigFile(configRelPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get config path: %w", err)
		}
		cfg, err := WriteDefaultConfig(path)
		if err != nil {
			return nil, nil, err
		}
		return cfg, &ValidationResult{}, nil
	}
	return LoadFile(configPath)
}

// LoadFile reads, fills and validates the config at path.
func LoadFile(path string) (*UserConfig, *ValidationResult, error) {
	// #nosec G304 - reading the user's own config file is intentional
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML config data, fills missing settings with defaults
// and validates the result. A config with validation errors is returned
// together with a non-nil error.
func Parse(data []byte) (*UserConfig, *ValidationResult, error) {
	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingInteraction(&cfg, defaultCfg)
	fillMissingTerminal(&cfg, defaultCfg)
	fillMissingLogging(&cfg, defaultCfg)
	if cfg.Launchers == nil {
		cfg.Launchers = defaultCfg.Launchers
	}

	validation := ValidateConfig(&cfg)
	if validation.HasErrors() {
		return &cfg, validation, fmt.Errorf("configuration has %d error(s), please fix and restart: %w",
			len(validation.Errors), validation.Err())
	}
	return &cfg, validation, nil
}

// WriteDefaultConfig writes the default config with a commented header to
// path and returns it. An existing file is left untouched.
func WriteDefaultConfig(path string) (*UserConfig, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("config file already exists: %s", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# floatdesk configuration\n")
	sb.WriteString("# Configuration location: " + path + "\n")
	sb.WriteString("#\n")
	sb.WriteString("# [appearance]\n")
	sb.WriteString("#   theme: bubbletint theme id (run `floatdesk themes`), empty for terminal colors\n")
	sb.WriteString("#   border_style: rounded, normal, thick, double, hidden, block, ascii\n")
	sb.WriteString("#   dockbar_position: bottom, top, hidden\n")
	sb.WriteString("#   show_snap_overlay: draw the snap preview while dragging\n")
	sb.WriteString("#\n")
	sb.WriteString("# [interaction] values are virtual pixels; one terminal cell is\n")
	sb.WriteString("#   [terminal] cell_width x cell_height pixels.\n")
	sb.WriteString("#   snap_threshold / cell_width columns at each edge snap a dragged window.\n")
	sb.WriteString("#\n")
	sb.WriteString("# [logging] level: off, trace, debug, info, warn, error; format: console, json\n")
	sb.WriteString("#\n")
	sb.WriteString("# [[launchers]] entries appear in the dock and open a window when clicked.\n\n")
	sb.Write(data)

	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}
	return cfg, nil
}

// fillMissingAppearance fills in any missing appearance settings with defaults
func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaultCfg.Appearance.BorderStyle
	}
	if cfg.Appearance.DockbarPosition == "" {
		cfg.Appearance.DockbarPosition = defaultCfg.Appearance.DockbarPosition
	}
	if cfg.Appearance.ShowSnapOverlay == nil {
		cfg.Appearance.ShowSnapOverlay = defaultCfg.Appearance.ShowSnapOverlay
	}
}

func fillMissingInteraction(cfg, defaultCfg *UserConfig) {
	in, def := &cfg.Interaction, defaultCfg.Interaction
	if in.SnapThreshold == 0 {
		in.SnapThreshold = def.SnapThreshold
	}
	if in.MinWidth == 0 {
		in.MinWidth = def.MinWidth
	}
	if in.MinHeight == 0 {
		in.MinHeight = def.MinHeight
	}
	if in.MobileBreakpoint == 0 {
		in.MobileBreakpoint = def.MobileBreakpoint
	}
}

func fillMissingTerminal(cfg, defaultCfg *UserConfig) {
	if cfg.Terminal.CellWidth == 0 {
		cfg.Terminal.CellWidth = defaultCfg.Terminal.CellWidth
	}
	if cfg.Terminal.CellHeight == 0 {
		cfg.Terminal.CellHeight = defaultCfg.Terminal.CellHeight
	}
}

func fillMissingLogging(cfg, defaultCfg *UserConfig) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultCfg.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaultCfg.Logging.Format
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		// Return where it would be created
		return xdg.ConfigFile(configRelPath)
	}
	return path, nil
}

// LogFilePath returns the configured log file, or the XDG state default.
func (c LoggingConfig) LogFilePath() (string, error) {
	if c.File != "" {
		return c.File, nil
	}
	return xdg.StateFile(logRelPath)
}
