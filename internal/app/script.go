package app

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/floatdesk/internal/tape"
)

type scriptStepMsg struct{}

type scriptState struct {
	player   *tape.Player
	executor *tape.CommandExecutor
	started  bool
	failed   bool
}

func (s *scriptState) start() tea.Cmd {
	if s.started {
		return nil
	}
	s.started = true
	return func() tea.Msg { return scriptStepMsg{} }
}

func stepAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return scriptStepMsg{} })
}

// stepScript runs the next command. Sleeps become timers so the desktop
// keeps rendering while the script waits.
func (d *Desktop) stepScript() tea.Cmd {
	s := d.script
	if s == nil || s.failed {
		return nil
	}
	cmd, ok := s.player.Next()
	if !ok {
		d.status = "script finished"
		d.log.Info().Int("commands", s.player.TotalCommands()).Msg("script finished")
		return nil
	}

	if cmd.Type == tape.CommandTypeSleep {
		wait, err := time.ParseDuration(cmd.Args[0])
		if err == nil {
			d.status = fmt.Sprintf("script %d/%d", s.player.CurrentIndex(), s.player.TotalCommands())
			return stepAfter(wait)
		}
	}

	if err := s.executor.Execute(cmd); err != nil {
		s.failed = true
		d.status = "script: " + err.Error()
		d.log.Warn().Err(err).Msg("script stopped")
		return nil
	}
	d.pruneLive()
	d.status = fmt.Sprintf("script %d/%d", s.player.CurrentIndex(), s.player.TotalCommands())
	return stepAfter(scriptDelay)
}
