package daemon

// State is a step of the restart protocol. Shutdown and startup are
// asynchronous OS effects, so every transition out of a waiting state is
// confirmed by probing the process table.
type State int

const (
	StateIdle State = iota
	StateWaitingForStop
	StateStopped
	StateStarting
	StateWaitingForStart
	StateRunning
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWaitingForStop:
		return "waiting_for_stop"
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateWaitingForStart:
		return "waiting_for_start"
	case StateRunning:
		return "running"
	case StateTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}
