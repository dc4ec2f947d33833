package cli

// Command is the mode selected by the first argument.
type Command int

const (
	CommandPassThrough Command = iota
	CommandStart
	CommandStop
	CommandRestart
)

func (c Command) String() string {
	switch c {
	case CommandStart:
		return "start"
	case CommandStop:
		return "stop"
	case CommandRestart:
		return "restart"
	default:
		return "passthrough"
	}
}

// Classify selects the command from args[0] by exact, case-sensitive match.
// Everything else, including no arguments, is forwarded to the daemon.
func Classify(args []string) Command {
	if len(args) == 0 {
		return CommandPassThrough
	}
	switch args[0] {
	case "start":
		return CommandStart
	case "stop":
		return CommandStop
	case "restart":
		return CommandRestart
	default:
		return CommandPassThrough
	}
}
