// Package tape implements the gesture scripting language: a line-oriented
// script that drives the window manager without a terminal.
//
//	Viewport 1000 800
//	Open a "Editor"
//	Drag a 150 110
//	Move 5 400
//	Up
//	Expect a snapped=left z>b
package tape

import (
	"fmt"
	"strings"
)

// CommandType identifies a tape command.
type CommandType string

const (
	CommandTypeViewport    CommandType = "Viewport"
	CommandTypeOpen        CommandType = "Open"
	CommandTypeFocus       CommandType = "Focus"
	CommandTypeDrag        CommandType = "Drag"
	CommandTypeResize      CommandType = "Resize"
	CommandTypeMove        CommandType = "Move"
	CommandTypeUp          CommandType = "Up"
	CommandTypeMinimize    CommandType = "Minimize"
	CommandTypeMaximize    CommandType = "Maximize"
	CommandTypeRestore     CommandType = "Restore"
	CommandTypeClose       CommandType = "Close"
	CommandTypeSnap        CommandType = "Snap"
	CommandTypeUnsnap      CommandType = "Unsnap"
	CommandTypeSleep       CommandType = "Sleep"
	CommandTypeExpect      CommandType = "Expect"
	CommandTypeExpectCount CommandType = "ExpectCount"
)

// commandArity lists the accepted argument counts for each command. A
// negative entry means "at least that many".
var commandArity = map[CommandType][]int{
	CommandTypeViewport:    {2},
	CommandTypeOpen:        {1, 2},
	CommandTypeFocus:       {1},
	CommandTypeDrag:        {3},
	CommandTypeResize:      {3},
	CommandTypeMove:        {2},
	CommandTypeUp:          {0, 2},
	CommandTypeMinimize:    {1},
	CommandTypeMaximize:    {1},
	CommandTypeRestore:     {1},
	CommandTypeClose:       {1},
	CommandTypeSnap:        {2},
	CommandTypeUnsnap:      {1},
	CommandTypeSleep:       {1},
	CommandTypeExpect:      {-2},
	CommandTypeExpectCount: {1},
}

func lookupCommand(word string) (CommandType, bool) {
	for t := range commandArity {
		if strings.EqualFold(string(t), word) {
			return t, true
		}
	}
	return "", false
}

// Command is one parsed script line.
type Command struct {
	Type CommandType
	Args []string
	Line int
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return string(c.Type)
	}
	return fmt.Sprintf("%s %s", c.Type, strings.Join(c.Args, " "))
}
