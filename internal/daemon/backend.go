package daemon

import (
	"bytes"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/lydakis/zowex/internal/config"
)

// Action is a lifecycle operation.
type Action string

const (
	ActionStart   Action = "start"
	ActionStop    Action = "stop"
	ActionRestart Action = "restart"
)

// portPlaceholder is replaced with the resolved port in command arguments.
const portPlaceholder = "{port}"

// commandWaitDelay bounds how long a finished launch script may keep its
// output pipes open through a backgrounded daemon.
const commandWaitDelay = 2 * time.Second

var execCommandFn = exec.Command

// Backend performs platform-specific lifecycle actions.
type Backend interface {
	Name() string
	Supports(action Action) bool
	// Run executes action and returns the captured output of the external
	// command.
	Run(action Action, endpoint config.Endpoint) (string, error)
}

// ScriptBackend runs external launch scripts located via the search path.
// An action with no configured command is unsupported, which the
// dispatcher reports as a no-op.
type ScriptBackend struct {
	platform string
	commands map[Action][]string
}

// NewScriptBackend creates a backend for the current platform.
func NewScriptBackend(start, stop []string) *ScriptBackend {
	return newScriptBackend(runtime.GOOS, start, stop)
}

func newScriptBackend(platform string, start, stop []string) *ScriptBackend {
	commands := make(map[Action][]string, 2)
	if len(start) > 0 {
		commands[ActionStart] = append([]string(nil), start...)
	}
	if len(stop) > 0 {
		commands[ActionStop] = append([]string(nil), stop...)
	}
	return &ScriptBackend{platform: platform, commands: commands}
}

// Name returns the platform the backend was configured for.
func (b *ScriptBackend) Name() string {
	return b.platform
}

// Supports reports whether action can be carried out. Restart is a
// composite of stop and start and needs both.
func (b *ScriptBackend) Supports(action Action) bool {
	if action == ActionRestart {
		return b.Supports(ActionStart) && b.Supports(ActionStop)
	}
	_, ok := b.commands[action]
	return ok
}

// Run executes the command configured for action.
func (b *ScriptBackend) Run(action Action, endpoint config.Endpoint) (string, error) {
	template, ok := b.commands[action]
	if !ok {
		return "", &LaunchError{
			Action: action,
			Kind:   ErrUnsupported,
			Detail: "no " + string(action) + " command configured for " + b.platform,
		}
	}

	argv := expandCommand(template, endpoint)
	rendered := strings.Join(argv, " ")
	if err := checkCommand(argv); err != nil {
		return "", &LaunchError{
			Action:  action,
			Kind:    ErrSpawnFailed,
			Command: rendered,
			Err:     err,
		}
	}

	var out bytes.Buffer
	cmd := execCommandFn(argv[0], argv[1:]...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	cmd.WaitDelay = commandWaitDelay
	cmd.SysProcAttr = scriptProcAttr()

	err := cmd.Run()
	if err == nil || errors.Is(err, exec.ErrWaitDelay) {
		return out.String(), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out.String(), &LaunchError{
			Action:   action,
			Kind:     ErrCommandFailed,
			Command:  rendered,
			ExitCode: exitErr.ExitCode(),
			Output:   out.String(),
		}
	}
	return out.String(), &LaunchError{
		Action:  action,
		Kind:    ErrSpawnFailed,
		Command: rendered,
		Output:  out.String(),
		Err:     err,
	}
}

func expandCommand(template []string, endpoint config.Endpoint) []string {
	argv := make([]string, len(template))
	for i, arg := range template {
		argv[i] = strings.ReplaceAll(arg, portPlaceholder, endpoint.PortString())
	}
	return argv
}
