package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	"charm.land/wish/v2/bubbletea"
	wishlogging "charm.land/wish/v2/logging"
	"github.com/Gaurav-Gosain/floatdesk/internal/logging"
	"github.com/Gaurav-Gosain/floatdesk/pkg/floatdesk"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/ssh"
	"github.com/rs/zerolog"
)

const (
	hostKeyRelPath  = "floatdesk/ssh_host_ed25519"
	shutdownTimeout = 10 * time.Second
)

// sessionPTY is the size of an SSH pty window.
type sessionPTY struct{ cols, rows int }

func (p sessionPTY) Width() int  { return p.cols }
func (p sessionPTY) Height() int { return p.rows }

func runSSHServer(ctx context.Context, host, port, keyPath string) error {
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
	logger = *logging.FromContext(logging.WithComponent(logging.WithContext(ctx, logger), "ssh"))

	if keyPath == "" {
		keyPath, err = xdg.DataFile(hostKeyRelPath)
		if err != nil {
			return fmt.Errorf("failed to resolve host key path: %w", err)
		}
	}

	addr := net.JoinHostPort(host, port)
	live := newSessionDesktops()
	srv, err := wish.NewServer(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			live.closeOnExit(),
			bubbletea.Middleware(sessionHandler(opts, logger, live)),
			activeterm.Middleware(),
			wishlogging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	fmt.Printf("Starting floatdesk SSH server on %s\n", addr)
	logger.Info().Str("addr", addr).Str("host_key", keyPath).Msg("listening")

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("SSH server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	fmt.Println("Shutting down SSH server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("SSH server shutdown: %w", err)
	}
	logger.Info().Msg("stopped")
	return nil
}

// sessionDesktops holds the desktop of every session whose program is
// running.
type sessionDesktops struct {
	mu sync.Mutex
	m  map[ssh.Session]sessionDesktop
}

type sessionDesktop struct {
	model *floatdesk.Model
	log   zerolog.Logger
}

func newSessionDesktops() *sessionDesktops {
	return &sessionDesktops{m: make(map[ssh.Session]sessionDesktop)}
}

func (d *sessionDesktops) add(s ssh.Session, model *floatdesk.Model, log zerolog.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.m[s] = sessionDesktop{model: model, log: log}
}

// release closes the desktop of s, if it has one.
func (d *sessionDesktops) release(s ssh.Session) {
	d.mu.Lock()
	sd, ok := d.m[s]
	delete(d.m, s)
	d.mu.Unlock()
	if !ok {
		return
	}
	sd.model.Close()
	sd.log.Info().Msg("session ended")
}

// closeOnExit must sit before the bubbletea middleware in the chain, which
// calls it only after the session's program has returned.
func (d *sessionDesktops) closeOnExit() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			d.release(s)
			next(s)
		}
	}
}

// sessionHandler gives every SSH session its own desktop. The desktop is
// closed by closeOnExit once its program is done.
func sessionHandler(opts []floatdesk.Option, logger zerolog.Logger, live *sessionDesktops) bubbletea.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := s.Pty()
		ctx := logging.WithSession(
			logging.WithContext(s.Context(), logger.With().Str("user", s.User()).Logger()),
			s.RemoteAddr().String(),
		)
		sessionLog := *logging.FromContext(ctx)

		model, err := floatdesk.NewForPTY(ctx,
			sessionPTY{cols: pty.Window.Width, rows: pty.Window.Height},
			slices.Concat(opts, []floatdesk.Option{floatdesk.WithLogger(sessionLog)})...,
		)
		if err != nil {
			sessionLog.Error().Err(err).Msg("failed to create desktop")
			wish.Fatalln(s, err)
			return nil, nil
		}
		sessionLog.Info().Int("cols", pty.Window.Width).Int("rows", pty.Window.Height).Msg("session started")

		live.add(s, model, sessionLog)
		return model, floatdesk.ProgramOptions()
	}
}
