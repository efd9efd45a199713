// Package input turns terminal key events into per-frame action snapshots
package input

import "fmt"

// Action is a held control polled once per frame
type Action uint8

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionFire
	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:  "none",
	ActionLeft:  "left",
	ActionRight: "right",
	ActionUp:    "up",
	ActionDown:  "down",
	ActionFire:  "fire",
}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", a)
}

// Command is a one-shot control handled on the press itself
type Command uint8

const (
	CommandNone Command = iota
	CommandQuit
	CommandPause
	CommandRestart
	CommandMute
)

func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandQuit:
		return "quit"
	case CommandPause:
		return "pause"
	case CommandRestart:
		return "restart"
	case CommandMute:
		return "mute"
	}
	return fmt.Sprintf("Command(%d)", c)
}

// actionRegistry maps canonical binding names used by config files to key entries
var actionRegistry = map[string]KeyEntry{
	// Unbind sentinel
	"none": {},

	"left":  {Action: ActionLeft},
	"right": {Action: ActionRight},
	"up":    {Action: ActionUp},
	"down":  {Action: ActionDown},
	"fire":  {Action: ActionFire},

	"quit":    {Command: CommandQuit},
	"pause":   {Command: CommandPause},
	"restart": {Command: CommandRestart},
	"mute":    {Command: CommandMute},
}

// LookupAction resolves a binding name to its key entry
func LookupAction(name string) (KeyEntry, bool) {
	e, ok := actionRegistry[name]
	return e, ok
}
