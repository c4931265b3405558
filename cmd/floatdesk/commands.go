package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/Gaurav-Gosain/floatdesk/internal/app"
	"github.com/Gaurav-Gosain/floatdesk/internal/config"
	"github.com/Gaurav-Gosain/floatdesk/internal/geom"
	"github.com/Gaurav-Gosain/floatdesk/internal/interact"
	"github.com/Gaurav-Gosain/floatdesk/internal/registry"
	"github.com/Gaurav-Gosain/floatdesk/internal/tape"
	"github.com/Gaurav-Gosain/floatdesk/internal/theme"
	"github.com/Gaurav-Gosain/floatdesk/pkg/floatdesk"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

func initConfig(force bool) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	if force {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove config file: %w", err)
		}
	}
	if _, err := config.WriteDefaultConfig(path); err != nil {
		return err
	}
	fmt.Printf("Wrote default configuration to %s\n", path)
	return nil
}

func showConfig() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

func printThemes() error {
	for _, id := range theme.ThemeIDs(zerolog.Nop()) {
		fmt.Println(id)
	}
	return nil
}

func printKeys(w io.Writer) {
	header := lipgloss.NewStyle().Foreground(theme.CLITableHeader()).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	var rows [][]string
	for _, kv := range app.KeyHelp() {
		rows = append(rows, []string{kv[0], kv[1]})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
		Headers("KEY", "ACTION").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	lipgloss.Fprintln(w, t)
}

func readTape(path string) ([]tape.Command, error) {
	// #nosec G304 - the script path is given on the command line
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	cmds, err := tape.Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cmds, nil
}

func checkTape(w io.Writer, path string) error {
	cmds, err := readTape(path)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "%s: %d commands OK\n", path, len(cmds))
	return nil
}

// runTape replays a script against a headless desktop configured from the
// user config, then prints the resulting windows. The table is printed even
// when playback fails so the state at the failing line is visible.
func runTape(ctx context.Context, w io.Writer, path string, width, height int) error {
	cmds, err := readTape(path)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlags(cfg)

	logger, closer, err := openLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer func() { _ = closer.Close() }()

	desktop := floatdesk.DesktopOptions(cfg)
	opts := []interact.Option{interact.WithBounds(desktop.Bounds)}
	if desktop.SnapThreshold > 0 {
		opts = append(opts, interact.WithSnapThreshold(desktop.SnapThreshold))
	}

	runner, release, err := tape.NewHeadless(ctx, tape.HeadlessConfig{
		Viewport:    geom.Size{Width: width, Height: height},
		Rules:       desktop.Rules,
		Controllers: opts,
		Logger:      &logger,
	})
	if err != nil {
		return err
	}
	defer release()

	runErr := runner.Run(cmds)
	lipgloss.Fprintln(w, windowTable(runner.Windows()))
	if runErr != nil {
		return fmt.Errorf("%s: %w", path, runErr)
	}
	_, _ = fmt.Fprintf(w, "%d commands played\n", len(cmds))
	return nil
}

// windowTable renders the list back to front.
func windowTable(l *registry.List) *table.Table {
	header := lipgloss.NewStyle().Foreground(theme.CLITableHeader()).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	dim := cell.Foreground(theme.CLITableDim())

	front, _ := l.Front()
	rows := make([][]string, 0, l.Len())
	minimized := make(map[int]bool)
	for i, win := range l.Windows() {
		id := win.ID
		if win.ID == front.ID {
			id += " *"
		}
		rows = append(rows, []string{
			id,
			win.Title,
			win.State(),
			fmt.Sprintf("%d,%d", win.Position.X, win.Position.Y),
			fmt.Sprintf("%dx%d", win.Size.Width, win.Size.Height),
			strconv.Itoa(win.ZIndex),
		})
		minimized[i] = win.Minimized
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
		Headers("ID", "TITLE", "STATE", "POSITION", "SIZE", "Z").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case minimized[row]:
				return dim
			}
			return cell
		})
}
