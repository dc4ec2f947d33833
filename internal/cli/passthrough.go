package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/lydakis/zowex/internal/config"
	"github.com/lydakis/zowex/internal/ipc"
)

var readStdinFn = readPipedStdin

// readPipedStdin returns stdin when it is redirected from a pipe or file.
// An interactive terminal yields nothing.
func readPipedStdin() ([]byte, error) {
	fd := os.Stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return nil, nil
	}
	info, err := os.Stdin.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice != 0 {
		return nil, nil
	}
	return io.ReadAll(os.Stdin)
}

func passThrough(args []string, s *config.Settings, logger *slog.Logger) int {
	dir, err := getwdFn()
	if err != nil {
		fmt.Fprintf(rootStderr, "zowex: determining working directory: %v\n", err)
		return ipc.ExitFailure
	}

	enc, err := ipc.NewEncoder(s.Encoding)
	if err != nil {
		fmt.Fprintf(rootStderr, "zowex: %v\n", err)
		return ipc.ExitUsageErr
	}

	client := ipc.NewClient(s.Endpoint, ipc.ClientOptions{
		Encoder:     enc,
		DialTimeout: s.DialTimeout,
		ReadTimeout: s.ReadTimeout,
	})

	inv := ipc.Invocation{Args: args, Dir: dir, Env: s.PassthroughEnv}
	if s.Encoding == config.EncodingJSON {
		inv.Stdin, err = readStdinFn()
		if err != nil {
			fmt.Fprintf(rootStderr, "zowex: reading stdin: %v\n", err)
			return ipc.ExitFailure
		}
	}

	logger.Debug("forwarding to daemon", "args", len(args), "cwd", dir, "encoding", s.Encoding, "stdin_bytes", len(inv.Stdin))
	resp, err := client.Send(inv)
	if err != nil {
		fmt.Fprintf(rootStderr, "zowex: %v\n", err)
		if errors.Is(err, ipc.ErrConnectFailed) {
			fmt.Fprintln(rootStderr, "zowex: is the daemon running? Start it with `zowex start`.")
		}
		return ipc.ExitFailure
	}

	io.WriteString(rootStdout, resp) //nolint:errcheck
	return ipc.ExitOK
}
