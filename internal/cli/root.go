package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/lydakis/zowex/internal/config"
	"github.com/lydakis/zowex/internal/daemon"
	"github.com/lydakis/zowex/internal/ipc"
	"github.com/lydakis/zowex/internal/logging"
	"github.com/lydakis/zowex/internal/proc"
)

var (
	rootStdout io.Writer = os.Stdout
	rootStderr io.Writer = os.Stderr
	platform             = runtime.GOOS

	environFn    = config.OSEnviron
	loadConfigFn = config.Load
	getwdFn      = os.Getwd
	newProberFn  = func(s *config.Settings) daemon.Prober {
		return proc.New(s.ProcessName, s.Markers)
	}
	newBackendFn = func(s *config.Settings) daemon.Backend {
		return daemon.NewScriptBackend(s.StartCommand, s.StopCommand)
	}
)

// Run is the main CLI entry point. Returns an exit code.
func Run(args []string) int {
	env := environFn()

	cfg, err := loadConfigFn(env)
	if err != nil {
		fmt.Fprintf(rootStderr, "zowex: %v\n", err)
		return ipc.ExitUsageErr
	}
	if verr := config.Validate(cfg); verr != nil {
		fmt.Fprintf(rootStderr, "zowex: invalid config: %v\n", verr)
		return ipc.ExitUsageErr
	}

	settings, err := config.Resolve(cfg, env, platform)
	if err != nil {
		fmt.Fprintf(rootStderr, "zowex: %v\n", err)
		return ipc.ExitUsageErr
	}

	logger, err := logging.New(logging.Options{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
		Writer: rootStderr,
	})
	if err != nil {
		fmt.Fprintf(rootStderr, "zowex: %v\n", err)
		return ipc.ExitUsageErr
	}

	cmd := Classify(args)
	logger.Debug("dispatching",
		"version", buildVersion,
		"command", cmd.String(),
		"endpoint", settings.Endpoint.Address(),
	)

	if cmd == CommandPassThrough {
		return passThrough(args, settings, logger)
	}
	return runLifecycle(cmd, settings, logger)
}
