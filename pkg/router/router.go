package router

import (
	"strconv"
	"strings"
)

// CommandType identifies a slash command.
type CommandType string

const (
	CmdHelp      CommandType = "help"
	CmdList      CommandType = "list"
	CmdSelect    CommandType = "select"
	CmdLatest    CommandType = "latest"
	CmdDelete    CommandType = "delete"
	CmdDeleteAll CommandType = "delete_all"
	CmdFeedback  CommandType = "feedback"
	CmdReport    CommandType = "report"
	CmdUnknown   CommandType = "unknown"
)

// Command is a parsed slash command. Arg carries the 1-based list position
// for /select and /delete; HasArg reports whether a valid number was given.
type Command struct {
	Type   CommandType
	Arg    int
	HasArg bool
}

// ParseCommand parses text as a slash command. The second return value is
// false when the text is not a command at all.
func ParseCommand(text string) (*Command, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "/") {
		return nil, false
	}

	fields := strings.Fields(strings.ToLower(trimmed))
	name := strings.TrimPrefix(fields[0], "/")

	cmd := &Command{}
	switch name {
	case "help":
		cmd.Type = CmdHelp
	case "list":
		cmd.Type = CmdList
	case "select":
		cmd.Type = CmdSelect
	case "latest":
		cmd.Type = CmdLatest
	case "delete":
		cmd.Type = CmdDelete
	case "delete_all":
		cmd.Type = CmdDeleteAll
	case "feedback":
		cmd.Type = CmdFeedback
	case "report":
		cmd.Type = CmdReport
	default:
		cmd.Type = CmdUnknown
	}

	if cmd.Type == CmdSelect || cmd.Type == CmdDelete {
		if len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil {
				cmd.Arg = n
				cmd.HasArg = true
			}
		}
	}

	return cmd, true
}
