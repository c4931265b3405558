package tape

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Gaurav-Gosain/floatdesk/internal/geom"
)

// Executor carries out tape commands against a desktop. Window arguments are
// window ids.
type Executor interface {
	SetViewport(size geom.Size) error

	OpenWindow(id, title string) error
	FocusWindow(id string) error
	MinimizeWindow(id string) error
	MaximizeWindow(id string) error
	RestoreWindow(id string) error
	CloseWindow(id string) error
	SnapWindow(id string, side geom.SnapSide) error
	UnsnapWindow(id string) error

	// Pointer gestures. BeginDrag and BeginResize press the pointer on a
	// window; PointerMove and PointerUp feed the pointer bus.
	BeginDrag(id string, p geom.Point) error
	BeginResize(id string, p geom.Point) error
	PointerMove(p geom.Point) error
	PointerUp(p geom.Point) error

	// PointerPosition is where the pointer was last seen, used by a bare Up.
	PointerPosition() geom.Point

	Sleep(d time.Duration) error

	Expect(id string, assertions []Assertion) error
	ExpectCount(n int) error
}

// CommandExecutor dispatches commands to an Executor.
type CommandExecutor struct {
	executor Executor
}

// NewCommandExecutor creates a new command executor
func NewCommandExecutor(executor Executor) *CommandExecutor {
	return &CommandExecutor{executor: executor}
}

// Execute runs one command. Errors carry the command's line number.
func (ce *CommandExecutor) Execute(cmd Command) error {
	if ce.executor == nil {
		return nil
	}
	if err := ce.execute(cmd); err != nil {
		return fmt.Errorf("line %d: %s: %w", cmd.Line, cmd.Type, err)
	}
	return nil
}

// Run executes commands in order and stops at the first error.
func (ce *CommandExecutor) Run(cmds []Command) error {
	for _, cmd := range cmds {
		if err := ce.Execute(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (ce *CommandExecutor) execute(cmd Command) error {
	ex := ce.executor
	args := cmd.Args

	switch cmd.Type {
	case CommandTypeViewport:
		return ex.SetViewport(geom.Size{Width: atoi(args[0]), Height: atoi(args[1])})

	case CommandTypeOpen:
		title := args[0]
		if len(args) > 1 {
			title = args[1]
		}
		return ex.OpenWindow(args[0], title)

	case CommandTypeFocus:
		return ex.FocusWindow(args[0])
	case CommandTypeMinimize:
		return ex.MinimizeWindow(args[0])
	case CommandTypeMaximize:
		return ex.MaximizeWindow(args[0])
	case CommandTypeRestore:
		return ex.RestoreWindow(args[0])
	case CommandTypeClose:
		return ex.CloseWindow(args[0])
	case CommandTypeUnsnap:
		return ex.UnsnapWindow(args[0])

	case CommandTypeSnap:
		side, err := geom.ParseSnapSide(args[1])
		if err != nil {
			return err
		}
		return ex.SnapWindow(args[0], side)

	case CommandTypeDrag:
		return ex.BeginDrag(args[0], point(args[1], args[2]))
	case CommandTypeResize:
		return ex.BeginResize(args[0], point(args[1], args[2]))
	case CommandTypeMove:
		return ex.PointerMove(point(args[0], args[1]))

	case CommandTypeUp:
		if len(args) == 2 {
			return ex.PointerUp(point(args[0], args[1]))
		}
		return ex.PointerUp(ex.PointerPosition())

	case CommandTypeSleep:
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return err
		}
		return ex.Sleep(d)

	case CommandTypeExpect:
		assertions := make([]Assertion, 0, len(args)-1)
		for _, s := range args[1:] {
			a, err := ParseAssertion(s)
			if err != nil {
				return err
			}
			assertions = append(assertions, a)
		}
		return ex.Expect(args[0], assertions)

	case CommandTypeExpectCount:
		return ex.ExpectCount(atoi(args[0]))
	}

	return fmt.Errorf("unsupported command")
}

// atoi is used on arguments the parser already validated.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func point(x, y string) geom.Point { return geom.Point{X: atoi(x), Y: atoi(y)} }
