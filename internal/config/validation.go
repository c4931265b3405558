package config

import (
	"errors"
	"fmt"
	"slices"
)

var (
	validBorderStyles     = []string{"rounded", "normal", "thick", "double", "hidden", "block", "ascii"}
	validDockbarPositions = []string{"bottom", "top", "hidden"}
	validLogLevels        = []string{"off", "trace", "debug", "info", "warn", "error"}
	validLogFormats       = []string{"console", "json"}
)

// ValidationError describes one problem in a config section.
type ValidationError struct {
	Field   string // config section, e.g. "interaction"
	Key     string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Field, e.Key, e.Message)
}

// ValidationResult collects fatal errors and non-fatal warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors reports whether the config must be rejected.
func (v *ValidationResult) HasErrors() bool { return v != nil && len(v.Errors) > 0 }

// HasWarnings reports whether any setting was questionable.
func (v *ValidationResult) HasWarnings() bool { return v != nil && len(v.Warnings) > 0 }

// Err joins all validation errors, or returns nil.
func (v *ValidationResult) Err() error {
	if !v.HasErrors() {
		return nil
	}
	errs := make([]error, len(v.Errors))
	for i, e := range v.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

func (v *ValidationResult) addError(field, key, format string, args ...any) {
	v.Errors = append(v.Errors, ValidationError{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

func (v *ValidationResult) addWarning(field, key, format string, args ...any) {
	v.Warnings = append(v.Warnings, ValidationError{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

// ValidateConfig checks a filled config. Unknown appearance values are
// warnings and fall back to defaults; impossible geometry is an error.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	v := &ValidationResult{}

	if !slices.Contains(validBorderStyles, cfg.Appearance.BorderStyle) {
		v.addWarning("appearance", "border_style", "unknown style %q, using rounded", cfg.Appearance.BorderStyle)
		cfg.Appearance.BorderStyle = "rounded"
	}
	if !slices.Contains(validDockbarPositions, cfg.Appearance.DockbarPosition) {
		v.addWarning("appearance", "dockbar_position", "unknown position %q, using bottom", cfg.Appearance.DockbarPosition)
		cfg.Appearance.DockbarPosition = "bottom"
	}

	in := cfg.Interaction
	if in.SnapThreshold < 0 {
		v.addError("interaction", "snap_threshold", "must not be negative, got %d", in.SnapThreshold)
	}
	if in.MinWidth < 0 {
		v.addError("interaction", "min_width", "must not be negative, got %d", in.MinWidth)
	}
	if in.MinHeight < 0 {
		v.addError("interaction", "min_height", "must not be negative, got %d", in.MinHeight)
	}
	if in.MobileBreakpoint < 0 {
		v.addError("interaction", "mobile_breakpoint", "must not be negative, got %d", in.MobileBreakpoint)
	}

	if cfg.Terminal.CellWidth < 1 {
		v.addError("terminal", "cell_width", "must be at least 1, got %d", cfg.Terminal.CellWidth)
	}
	if cfg.Terminal.CellHeight < 1 {
		v.addError("terminal", "cell_height", "must be at least 1, got %d", cfg.Terminal.CellHeight)
	}

	if !slices.Contains(validLogLevels, cfg.Logging.Level) {
		v.addError("logging", "level", "unknown level %q", cfg.Logging.Level)
	}
	if !slices.Contains(validLogFormats, cfg.Logging.Format) {
		v.addError("logging", "format", "unknown format %q", cfg.Logging.Format)
	}

	seen := make(map[string]bool, len(cfg.Launchers))
	for i, l := range cfg.Launchers {
		key := fmt.Sprintf("launchers[%d]", i)
		switch {
		case l.ID == "":
			v.addError("launchers", key, "id is required")
		case seen[l.ID]:
			v.addError("launchers", key, "duplicate id %q", l.ID)
		}
		seen[l.ID] = true
		if l.Width < 0 || l.Height < 0 {
			v.addError("launchers", key, "size must not be negative")
		}
		if l.Width > 0 && l.Width < in.MinWidth {
			v.addWarning("launchers", key, "width %d is below min_width %d", l.Width, in.MinWidth)
		}
		if l.Height > 0 && l.Height < in.MinHeight {
			v.addWarning("launchers", key, "height %d is below min_height %d", l.Height, in.MinHeight)
		}
	}

	return v
}
