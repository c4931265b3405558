package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Gaurav-Gosain/floatdesk/internal/geom"
	"github.com/Gaurav-Gosain/floatdesk/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTape(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.tape")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestCheckTape(t *testing.T) {
	var out bytes.Buffer
	path := writeTape(t, "Viewport 1000 800\nOpen a \"Editor\"\nSnap a left\n")
	require.NoError(t, checkTape(&out, path))
	assert.Contains(t, out.String(), "3 commands OK")

	bad := writeTape(t, "Open a\nSnap a sideways\n")
	err := checkTape(&out, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	assert.Error(t, checkTape(&out, filepath.Join(t.TempDir(), "missing.tape")))
}

func TestWindowTable(t *testing.T) {
	rules := registry.DefaultRules()
	vp := geom.Size{Width: 1000, Height: 800}
	l := registry.NewList().
		Open(registry.Definition{ID: "editor", Title: "Editor"}, vp, rules).
		Open(registry.Definition{ID: "notes", Title: "Notes"}, vp, rules)
	l = l.Minimize("editor")

	out := windowTable(l).Render()
	assert.Contains(t, out, "editor")
	assert.Contains(t, out, "minimized")
	assert.Contains(t, out, "notes *")
	assert.Contains(t, out, "500x300")
}

func TestPrintKeys(t *testing.T) {
	var out bytes.Buffer
	printKeys(&out)
	assert.Contains(t, out.String(), "quit")
	assert.NotContains(t, out.String(), "snap")
	assert.Contains(t, out.String(), "launcher 9")
}
