package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/lydakis/zowex/internal/config"
	"github.com/lydakis/zowex/internal/daemon"
	"github.com/lydakis/zowex/internal/ipc"
)

func runLifecycle(cmd Command, s *config.Settings, logger *slog.Logger) int {
	launcher := daemon.NewLauncher(newBackendFn(s), newProberFn(s), daemon.Options{
		PollInterval: s.PollInterval,
		PollAttempts: s.PollAttempts,
		Logger:       logger,
		ConfigPath:   s.ConfigPath,
	})

	var (
		out string
		err error
	)
	switch cmd {
	case CommandStart:
		out, err = launcher.Start(s.Endpoint)
	case CommandStop:
		out, err = launcher.Stop(s.Endpoint)
	case CommandRestart:
		var res daemon.RestartResult
		res, err = launcher.Restart(s.Endpoint)
		out = res.Output
		if err == nil {
			out += restartSummary(res)
		}
	default:
		fmt.Fprintf(rootStderr, "zowex: unexpected lifecycle command %s\n", cmd)
		return ipc.ExitFailure
	}

	if err != nil {
		return reportLaunchError(err)
	}
	io.WriteString(rootStdout, out) //nolint:errcheck
	return ipc.ExitOK
}

func restartSummary(res daemon.RestartResult) string {
	if res.WasRunning {
		return fmt.Sprintf("Daemon restarted on pid %d (was %d)\n", res.PID, res.PreviousPID)
	}
	return fmt.Sprintf("Daemon started on pid %d\n", res.PID)
}

// reportLaunchError prints err and maps it to an exit code. Unsupported
// actions are a documented no-op on platforms without launch scripts.
func reportLaunchError(err error) int {
	if errors.Is(err, daemon.ErrUnsupported) {
		fmt.Fprintf(rootStderr, "zowex: %v; nothing to do\n", err)
		return ipc.ExitOK
	}
	fmt.Fprintf(rootStderr, "zowex: %v\n", err)
	return ipc.ExitFailure
}
