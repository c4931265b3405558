package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/floatdesk/internal/config"
	"github.com/Gaurav-Gosain/floatdesk/internal/logging"
	"github.com/Gaurav-Gosain/floatdesk/pkg/floatdesk"
	"github.com/rs/zerolog"
)

// loadConfig reads the user config, printing validation warnings. Validation
// errors are fatal.
func loadConfig() (*config.UserConfig, error) {
	cfg, result, err := config.LoadUserConfig()
	if result.HasWarnings() {
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// applyFlags folds the command-line flags into cfg and returns the matching
// desktop options. Flags win over the file.
func applyFlags(cfg *config.UserConfig) []floatdesk.Option {
	overrides := config.Overrides{
		ASCIIOnly:         asciiOnly,
		BorderStyle:       borderStyle,
		DockbarPosition:   dockbarPosition,
		HideWindowButtons: hideWindowButtons,
		NoSnapOverlay:     noSnapOverlay,
		ThemeName:         themeName,
		LogLevel:          logLevel,
		SnapThreshold:     snapThreshold,
	}
	theme := config.ApplyOverrides(overrides, cfg)
	if noSnapOverlay {
		off := false
		cfg.Appearance.ShowSnapOverlay = &off
	}

	return []floatdesk.Option{
		floatdesk.WithUserConfig(cfg),
		floatdesk.WithTheme(theme),
		floatdesk.WithASCIIOnly(asciiOnly),
		floatdesk.WithBorderStyle(borderStyle),
		floatdesk.WithDockbarPosition(dockbarPosition),
		floatdesk.WithHideWindowButtons(hideWindowButtons),
	}
}

func openLogger(cfg *config.UserConfig) (zerolog.Logger, io.Closer, error) {
	path, err := cfg.Logging.LogFilePath()
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	logger, closer, err := logging.Open(cfg.Logging.Level, cfg.Logging.Format, path)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	return logger.With().Str("version", version).Logger(), closer, nil
}

func runLocal(ctx context.Context) error {
	userConfig, err := loadConfig()
	if err != nil {
		return err
	}
	opts := applyFlags(userConfig)

	logger, closer, err := openLogger(userConfig)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer func() { _ = closer.Close() }()

	ctx = logging.WithSession(logging.WithContext(ctx, logger), "local")
	opts = append(opts, floatdesk.WithLogger(*logging.FromContext(ctx)))

	if scriptFile != "" {
		// #nosec G304 - the script path is given on the command line
		src, err := os.ReadFile(scriptFile)
		if err != nil {
			return fmt.Errorf("failed to read script: %w", err)
		}
		opts = append(opts, floatdesk.WithScript(string(src)))
	}

	model, err := floatdesk.New(ctx, opts...)
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(
		model,
		append(floatdesk.ProgramOptions(), tea.WithoutSignalHandler())...,
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	logging.FromContext(ctx).Info().Msg("desktop started")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	logging.FromContext(ctx).Info().Msg("desktop stopped")
	return nil
}
