package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	tint "github.com/lrstanley/bubbletint/v2"
	"github.com/rs/zerolog"
)

// GetThemesDir returns $XDG_CONFIG_HOME/floatdesk/themes, creating it.
func GetThemesDir() (string, error) {
	keepFile, err := xdg.ConfigFile("floatdesk/themes/.keep")
	if err != nil {
		return "", fmt.Errorf("themes directory: %w", err)
	}
	return filepath.Dir(keepFile), nil
}

// LoadCustomThemes registers every *.json theme in themesDir with bubbletint
// and returns the ids it loaded. Bad files are logged and skipped.
func LoadCustomThemes(themesDir string, log zerolog.Logger) ([]string, error) {
	entries, err := os.ReadDir(themesDir)
	if err != nil {
		return nil, fmt.Errorf("read themes directory: %w", err)
	}

	var loaded []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			continue
		}

		path := filepath.Join(themesDir, entry.Name())
		t, err := LoadCustomThemeFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", entry.Name()).Msg("skipping custom theme")
			continue
		}

		tint.Register(t)
		log.Debug().Str("theme", t.ID).Msg("custom theme registered")
		loaded = append(loaded, t.ID)
	}

	return loaded, nil
}

// LoadCustomThemeFile reads one JSON theme. The id defaults to the lowercased
// file name and the display name to the id; missing colors get xterm values.
func LoadCustomThemeFile(path string) (*tint.Tint, error) {
	// #nosec G304 - path is from user's config directory, reading custom themes is intentional
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}

	var t tint.Tint
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", filepath.Base(path), err)
	}

	if t.ID == "" {
		base := filepath.Base(path)
		t.ID = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	}

	if t.ID == "" {
		return nil, fmt.Errorf("theme has no ID")
	}

	if t.DisplayName == "" {
		t.DisplayName = t.ID
	}

	fillDefaults(&t)

	return &t, nil
}

// fillDefaults sets missing colors: fg, bg and the normal ANSI colors from
// xterm, the cursor from fg, and each bright color from its normal one.
func fillDefaults(t *tint.Tint) {
	base := []struct {
		c   **tint.Color
		hex string
	}{
		{&t.Fg, "#e5e5e5"}, {&t.Bg, "#000000"},
		{&t.Black, "#000000"}, {&t.Red, "#cd0000"}, {&t.Green, "#00cd00"}, {&t.Yellow, "#cdcd00"},
		{&t.Blue, "#0000ee"}, {&t.Purple, "#cd00cd"}, {&t.Cyan, "#00cdcd"}, {&t.White, "#e5e5e5"},
	}
	for _, b := range base {
		if *b.c == nil {
			*b.c = tint.FromHex(b.hex)
		}
	}

	derived := []struct{ dst, src **tint.Color }{
		{&t.Cursor, &t.Fg},
		{&t.BrightBlack, &t.Black}, {&t.BrightRed, &t.Red}, {&t.BrightGreen, &t.Green},
		{&t.BrightYellow, &t.Yellow}, {&t.BrightBlue, &t.Blue}, {&t.BrightPurple, &t.Purple},
		{&t.BrightCyan, &t.Cyan}, {&t.BrightWhite, &t.White},
	}
	for _, d := range derived {
		if *d.dst == nil {
			*d.dst = copyColor(*d.src)
		}
	}
}

func copyColor(c *tint.Color) *tint.Color {
	if c == nil {
		return nil
	}
	dup := *c
	return &dup
}
