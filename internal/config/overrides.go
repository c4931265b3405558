package config

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// ASCIIOnly uses ASCII characters instead of Unicode glyphs
	ASCIIOnly bool

	// BorderStyle overrides the window border style
	BorderStyle string

	// DockbarPosition overrides the dockbar position
	DockbarPosition string

	// HideWindowButtons overrides hiding window control buttons
	HideWindowButtons bool

	// NoSnapOverlay hides the snap preview while dragging
	NoSnapOverlay bool

	// ThemeName is the theme to load
	ThemeName string

	// LogLevel overrides logging.level
	LogLevel string

	// SnapThreshold overrides interaction.snap_threshold (0 means use config)
	SnapThreshold int
}

// ApplyOverrides applies CLI flag overrides to the package-level appearance
// settings and to userConfig, falling back to user config values.
// If userConfig is nil, only CLI flag values (when set) are applied.
// It returns the theme name to load, which may be empty.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) string {
	if overrides.ASCIIOnly {
		UseASCIIOnly = true
	}

	// Border Style - CLI flag takes precedence, otherwise use user config
	if overrides.BorderStyle != "" {
		BorderStyle = overrides.BorderStyle
	} else if userConfig != nil && userConfig.Appearance.BorderStyle != "" {
		BorderStyle = userConfig.Appearance.BorderStyle
	}

	if overrides.DockbarPosition != "" {
		DockbarPosition = overrides.DockbarPosition
	} else if userConfig != nil && userConfig.Appearance.DockbarPosition != "" {
		DockbarPosition = userConfig.Appearance.DockbarPosition
	}

	// Hide Window Buttons - OR of CLI flag and user config
	HideWindowButtons = overrides.HideWindowButtons
	if userConfig != nil {
		HideWindowButtons = HideWindowButtons || userConfig.Appearance.HideWindowButtons
	}

	ShowSnapOverlay = !overrides.NoSnapOverlay
	if userConfig != nil && userConfig.Appearance.ShowSnapOverlay != nil {
		ShowSnapOverlay = ShowSnapOverlay && *userConfig.Appearance.ShowSnapOverlay
	}

	if userConfig != nil {
		if userConfig.Terminal.CellWidth > 0 {
			CellWidth = userConfig.Terminal.CellWidth
		}
		if userConfig.Terminal.CellHeight > 0 {
			CellHeight = userConfig.Terminal.CellHeight
		}
		if overrides.LogLevel != "" {
			userConfig.Logging.Level = overrides.LogLevel
		}
		if overrides.SnapThreshold > 0 {
			userConfig.Interaction.SnapThreshold = overrides.SnapThreshold
		}
	}

	themeName := overrides.ThemeName
	if themeName == "" && userConfig != nil {
		themeName = userConfig.Appearance.Theme
	}
	return themeName
}
