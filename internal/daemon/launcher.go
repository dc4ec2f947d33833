package daemon

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lydakis/zowex/internal/config"
	"github.com/lydakis/zowex/internal/logging"
	"github.com/lydakis/zowex/internal/proc"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultPollAttempts = 10
)

var sleepFn = time.Sleep

// Prober reports daemon liveness.
type Prober interface {
	Probe() (proc.Info, error)
}

// Options tunes the polling discipline used to confirm lifecycle effects.
type Options struct {
	PollInterval time.Duration
	PollAttempts int
	Logger       *slog.Logger
	// ConfigPath is named in the hint for unsupported actions.
	ConfigPath string
}

// Launcher drives daemon start, stop and restart through a Backend and
// confirms their effect through a Prober.
type Launcher struct {
	backend  Backend
	probe    Prober
	interval time.Duration
	attempts int
	logger   *slog.Logger
	confPath string
}

// RestartResult captures the outcome of Restart.
type RestartResult struct {
	WasRunning  bool
	PreviousPID int
	PID         int
	Output      string
}

// NewLauncher creates a Launcher. Zero options fall back to a 3s interval
// and 10 attempts.
func NewLauncher(backend Backend, probe Prober, opts Options) *Launcher {
	l := &Launcher{
		backend:  backend,
		probe:    probe,
		interval: opts.PollInterval,
		attempts: opts.PollAttempts,
		logger:   opts.Logger,
		confPath: opts.ConfigPath,
	}
	if l.interval <= 0 {
		l.interval = defaultPollInterval
	}
	if l.attempts <= 0 {
		l.attempts = defaultPollAttempts
	}
	if l.logger == nil {
		l.logger = logging.Discard()
	}
	return l
}

// Start runs the start action and returns once the external command
// completes. It does not wait for the daemon to come up.
func (l *Launcher) Start(endpoint config.Endpoint) (string, error) {
	return l.run(ActionStart, endpoint)
}

// Stop runs the stop action. It succeeds only if the external command runs
// and exits cleanly.
func (l *Launcher) Stop(endpoint config.Endpoint) (string, error) {
	return l.run(ActionStop, endpoint)
}

func (l *Launcher) run(action Action, endpoint config.Endpoint) (string, error) {
	if !l.backend.Supports(action) {
		return "", l.unsupported(action)
	}
	l.logger.Debug("running lifecycle action",
		"action", string(action),
		"backend", l.backend.Name(),
		"port", endpoint.PortString(),
	)
	return l.backend.Run(action, endpoint)
}

func (l *Launcher) unsupported(action Action) error {
	detail := fmt.Sprintf("no %s support for %s", action, l.backend.Name())
	if l.confPath != "" {
		detail += fmt.Sprintf(" (configure lifecycle commands in %s)", l.confPath)
	}
	return &LaunchError{Action: action, Kind: ErrUnsupported, Detail: detail}
}

// Restart stops a running daemon, waits until it is gone, starts a new one,
// waits until it appears and verifies that its PID changed. With no daemon
// running it only starts one.
func (l *Launcher) Restart(endpoint config.Endpoint) (RestartResult, error) {
	if !l.backend.Supports(ActionRestart) {
		return RestartResult{}, l.unsupported(ActionRestart)
	}

	var (
		result RestartResult
		output []string
	)
	state := StateIdle

	info, err := l.probe.Probe()
	if err != nil {
		return result, fmt.Errorf("restart: %w", err)
	}

	if info.Running {
		result.WasRunning = true
		result.PreviousPID = info.PID
		l.logger.Debug("stopping running daemon", "pid", info.PID)

		out, err := l.Stop(endpoint)
		output = appendOutput(output, out)
		if err != nil {
			return withOutput(result, output, err)
		}

		state = l.transition(state, StateWaitingForStop)
		if _, err := l.waitFor(false, info.PID); err != nil {
			l.transition(state, StateTimedOut)
			return withOutput(result, output, err)
		}
		state = l.transition(state, StateStopped)
	}

	state = l.transition(state, StateStarting)
	out, err := l.Start(endpoint)
	output = appendOutput(output, out)
	result.Output = strings.Join(output, "")
	if err != nil {
		return withOutput(result, output, err)
	}

	state = l.transition(state, StateWaitingForStart)
	info, err = l.waitFor(true, 0)
	if err != nil {
		l.transition(state, StateTimedOut)
		return withOutput(result, output, err)
	}
	l.transition(state, StateRunning)
	result.PID = info.PID

	if result.WasRunning && info.PID == result.PreviousPID {
		return withOutput(result, output, &LaunchError{
			Action: ActionRestart,
			Kind:   ErrStalePID,
			Detail: fmt.Sprintf("pid %d is unchanged after restart; the old process never exited", info.PID),
		})
	}
	return result, nil
}

// waitFor polls until the daemon's running state equals want. Probe errors
// and disagreement both mean "keep polling"; only exhausting the attempts
// is fatal.
func (l *Launcher) waitFor(want bool, lastPID int) (proc.Info, error) {
	var lastErr error
	for attempt := 1; attempt <= l.attempts; attempt++ {
		info, err := l.probe.Probe()
		switch {
		case err != nil:
			lastErr = err
			l.logger.Debug("probe failed", "attempt", attempt, "error", err)
		case info.Running == want:
			return info, nil
		default:
			lastErr = nil
			if info.PID != 0 {
				lastPID = info.PID
			}
			l.logger.Debug("daemon state not reached", "attempt", attempt, "want_running", want, "pid", info.PID)
		}
		if attempt < l.attempts {
			sleepFn(l.interval)
		}
	}

	goal := "stop"
	if want {
		goal = "start"
	}
	detail := fmt.Sprintf("daemon did not %s after %d checks %s apart", goal, l.attempts, l.interval)
	if !want && lastPID != 0 {
		detail += fmt.Sprintf(" (pid %d still running)", lastPID)
	}
	return proc.Info{}, &LaunchError{
		Action: ActionRestart,
		Kind:   ErrTimeout,
		Detail: detail,
		Err:    lastErr,
	}
}

func (l *Launcher) transition(from, to State) State {
	l.logger.Debug("restart state", "from", from.String(), "to", to.String())
	return to
}

// withOutput records the script output gathered so far on result and on a
// *LaunchError, replacing the single-script output it may already carry.
func withOutput(result RestartResult, output []string, err error) (RestartResult, error) {
	result.Output = strings.Join(output, "")
	var le *LaunchError
	if errors.As(err, &le) && result.Output != "" {
		le.Output = result.Output
	}
	return result, err
}

func appendOutput(output []string, out string) []string {
	if out == "" {
		return output
	}
	return append(output, out)
}
