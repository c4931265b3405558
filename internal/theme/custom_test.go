package theme

import (
	"os"
	"path/filepath"
	"testing"

	tint "github.com/lrstanley/bubbletint/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTheme(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadCustomThemeFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("full", func(t *testing.T) {
		path := writeTheme(t, dir, "full.json", `{
			"id": "test-full",
			"display_name": "Test Full",
			"dark": true,
			"fg": "#d4d4d4",
			"bg": "#1e1e2e",
			"bright_cyan": "#94e2d5"
		}`)
		th, err := LoadCustomThemeFile(path)
		require.NoError(t, err)
		assert.Equal(t, "test-full", th.ID)
		assert.Equal(t, "Test Full", th.DisplayName)
		assert.True(t, th.Dark)
		assert.Equal(t, "#94e2d5", ColorToString(th.BrightCyan))
	})

	t.Run("id from file name", func(t *testing.T) {
		path := writeTheme(t, dir, "My-Cool-Theme.json", `{"fg": "#ffffff"}`)
		th, err := LoadCustomThemeFile(path)
		require.NoError(t, err)
		assert.Equal(t, "my-cool-theme", th.ID)
		assert.Equal(t, "my-cool-theme", th.DisplayName)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := LoadCustomThemeFile(writeTheme(t, dir, "bad.json", "not json{{"))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCustomThemeFile(filepath.Join(dir, "absent.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoadCustomThemesSkipsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "readme.txt", "not a theme")
	writeTheme(t, dir, "broken.json", "{")
	writeTheme(t, dir, "floatdesk-test-unique.JSON", `{"id": "floatdesk-test-unique"}`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o700))

	tint.NewDefaultRegistry()
	loaded, err := LoadCustomThemes(dir, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{"floatdesk-test-unique"}, loaded)
	assert.Contains(t, tint.TintIDs(), "floatdesk-test-unique")

	_, err = LoadCustomThemes(filepath.Join(dir, "nope"), zerolog.Nop())
	assert.Error(t, err)
}

func TestFillDefaults(t *testing.T) {
	th := &tint.Tint{Fg: tint.FromHex("#123456"), Red: tint.FromHex("#ff0000")}
	fillDefaults(th)

	assert.Equal(t, "#123456", ColorToString(th.Cursor), "cursor follows fg")
	assert.Equal(t, "#ff0000", ColorToString(th.BrightRed), "bright follows normal")
	assert.Equal(t, "#000000", ColorToString(th.Bg))
	assert.Equal(t, "#e5e5e5", ColorToString(th.BrightWhite))
	assert.NotSame(t, th.Red, th.BrightRed)
}

func TestCopyColor(t *testing.T) {
	orig := &tint.Color{R: 255, G: 128, B: 0, A: 255}
	dup := copyColor(orig)
	require.NotSame(t, orig, dup)
	dup.R = 0
	assert.EqualValues(t, 255, orig.R)
	assert.Nil(t, copyColor(nil))
}

func TestColorsWithoutTheme(t *testing.T) {
	require.NoError(t, Initialize("", zerolog.Nop()))
	assert.False(t, IsEnabled())
	assert.Nil(t, Current())

	assert.Equal(t, "#afffff", ColorToString(BorderFocused()))
	assert.Equal(t, "#cd0000", ColorToString(ButtonClose()))
	assert.Equal(t, "#000000", ColorToString(nil))
}
