package tape

// Player steps through parsed commands.
type Player struct {
	commands []Command
	index    int
}

// NewPlayer returns a player positioned at the first command.
func NewPlayer(commands []Command) *Player {
	return &Player{commands: commands}
}

// Next returns the next command and advances, or false when done.
func (p *Player) Next() (Command, bool) {
	if p.Done() {
		return Command{}, false
	}
	cmd := p.commands[p.index]
	p.index++
	return cmd, true
}

// Done reports whether every command was returned.
func (p *Player) Done() bool { return p.index >= len(p.commands) }

// CurrentIndex returns the number of commands already played.
func (p *Player) CurrentIndex() int { return p.index }

// TotalCommands returns the script length.
func (p *Player) TotalCommands() int { return len(p.commands) }

// Progress returns the played fraction in [0, 1].
func (p *Player) Progress() float64 {
	if len(p.commands) == 0 {
		return 1
	}
	return float64(p.index) / float64(len(p.commands))
}

// Reset rewinds to the first command.
func (p *Player) Reset() { p.index = 0 }
