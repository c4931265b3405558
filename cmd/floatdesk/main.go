// Package main implements floatdesk, a floating-window desktop for the
// terminal. Windows are dragged by their title bar, resized from the corner
// handle and snapped to half of the screen against the left or right edge.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	asciiOnly         bool
	themeName         string
	listThemes        bool
	borderStyle       string
	dockbarPosition   string
	hideWindowButtons bool
	noSnapOverlay     bool
	logLevel          string
	snapThreshold     int
	scriptFile        string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "floatdesk",
		Short: "Floating windows in the terminal",
		Long: `floatdesk - floating windows in the terminal

Drag a window by its title bar, resize it from the bottom-right handle, and
drag it against the left or right edge to snap it to that half of the screen.
The dock opens, focuses and restores windows.`,
		Example: `  # Run floatdesk
  floatdesk

  # Run with a theme and ASCII glyphs
  floatdesk --theme dracula --ascii-only

  # Replay a script on start
  floatdesk --script demo.tape

  # Serve the desktop over SSH
  floatdesk ssh --port 2222

  # Replay a script without a terminal
  floatdesk tape run demo.tape`,
		Version: version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listThemes {
				return printThemes()
			}
			return runLocal(cmd.Context())
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters instead of Unicode glyphs")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight). Leave empty to use standard terminal colors")
	rootCmd.PersistentFlags().BoolVar(&listThemes, "list-themes", false, "List all available themes and exit")
	rootCmd.PersistentFlags().StringVar(&borderStyle, "border-style", "", "Window border style: rounded, normal, thick, double, hidden, block, ascii (default: from config or rounded)")
	rootCmd.PersistentFlags().StringVar(&dockbarPosition, "dockbar-position", "", "Dockbar position: bottom, top, hidden (default: from config or bottom)")
	rootCmd.PersistentFlags().BoolVar(&hideWindowButtons, "hide-window-buttons", false, "Hide window control buttons (minimize, maximize, close)")
	rootCmd.PersistentFlags().BoolVar(&noSnapOverlay, "no-snap-overlay", false, "Do not preview the snap target while dragging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: off, trace, debug, info, warn, error (default: from config or off)")
	rootCmd.PersistentFlags().IntVar(&snapThreshold, "snap-threshold", 0, "Distance in virtual pixels from an edge that snaps a dragged window (default: from config or 20)")
	rootCmd.Flags().StringVar(&scriptFile, "script", "", "Tape script to replay once the desktop is up")

	var sshPort, sshHost, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Run floatdesk as SSH server",
		Long: `Run floatdesk as an SSH server

Every connection gets its own desktop. The server generates a host key
automatically if not specified.`,
		Example: `  # Start SSH server on default port
  floatdesk ssh

  # Listen on all interfaces with a custom host key
  floatdesk ssh --host 0.0.0.0 --key-path /path/to/host_key`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSSHServer(cmd.Context(), sshHost, sshPort, sshKeyPath)
		},
	}

	sshCmd.Flags().StringVar(&sshPort, "port", "2222", "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", "localhost", "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage floatdesk configuration",
		Long:  `Manage the floatdesk configuration file`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	var forceInit bool
	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Long: `Write the default configuration file

An existing file is left alone unless --force is given.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(forceInit)
		},
	}
	configInitCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing configuration")

	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  `Print the configuration after defaults are filled in, followed by any validation warnings`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return showConfig()
		},
	}

	configCmd.AddCommand(configPathCmd, configInitCmd, configShowCmd)

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		RunE: func(_ *cobra.Command, _ []string) error {
			return printThemes()
		},
	}

	keysCmd := &cobra.Command{
		Use:     "keys",
		Aliases: []string{"keybinds"},
		Short:   "List key bindings",
		Run: func(cmd *cobra.Command, _ []string) {
			printKeys(cmd.OutOrStdout())
		},
	}

	tapeCmd := &cobra.Command{
		Use:   "tape",
		Short: "Replay and check gesture scripts",
		Long: `Tape scripts drive the desktop line by line: open windows, press on a
window, move the pointer, release, and assert on the result.

  Viewport 1000 800
  Open a "Editor"
  Drag a 150 110
  Move 5 400
  Up
  Expect a snapped=left`,
	}

	var tapeWidth, tapeHeight int
	tapeRunCmd := &cobra.Command{
		Use:   "run <file.tape>",
		Short: "Replay a script without a terminal",
		Long: `Replay a script against a headless desktop and print the final windows.

Playback stops at the first failing command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTape(cmd.Context(), cmd.OutOrStdout(), args[0], tapeWidth, tapeHeight)
		},
	}
	tapeRunCmd.Flags().IntVar(&tapeWidth, "width", 1280, "Initial viewport width in virtual pixels")
	tapeRunCmd.Flags().IntVar(&tapeHeight, "height", 800, "Initial viewport height in virtual pixels")

	tapeCheckCmd := &cobra.Command{
		Use:   "check <file.tape>",
		Short: "Parse a script and report errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkTape(cmd.OutOrStdout(), args[0])
		},
	}

	tapeCmd.AddCommand(tapeRunCmd, tapeCheckCmd)

	rootCmd.AddCommand(sshCmd, configCmd, themesCmd, keysCmd, tapeCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
