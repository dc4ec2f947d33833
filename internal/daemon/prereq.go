package daemon

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

var lookPathFn = exec.LookPath

// checkCommand verifies that the executable of argv, and the script it
// wraps when argv runs through env or cmd, can be found on the search path.
func checkCommand(argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}
	command := strings.TrimSpace(argv[0])
	if err := lookup(command); err != nil {
		return err
	}

	var wrapped string
	switch wrapperName(command) {
	case "env":
		wrapped = envWrappedCommand(argv[1:])
	case "cmd":
		wrapped = cmdWrappedCommand(argv[1:])
	}
	if wrapped == "" {
		return nil
	}
	return lookup(wrapped)
}

func lookup(file string) error {
	if _, err := lookPathFn(file); err != nil && !errors.Is(err, exec.ErrDot) {
		return fmt.Errorf("%q not found in PATH", file)
	}
	return nil
}

func wrapperName(command string) string {
	base := strings.ToLower(filepath.Base(command))
	return strings.TrimSuffix(base, ".exe")
}

// envWrappedCommand skips env options and KEY=value assignments.
func envWrappedCommand(args []string) string {
	for i := 0; i < len(args); i++ {
		token := strings.TrimSpace(args[i])
		switch {
		case token == "":
			continue
		case token == "--":
			return nextCommandToken(args[i+1:])
		case token == "-u" || token == "--unset" || token == "-C" || token == "--chdir":
			i++
			continue
		case strings.HasPrefix(token, "-"):
			continue
		case strings.Index(token, "=") > 0:
			continue
		}
		return trimBalancedQuotes(token)
	}
	return ""
}

// cmdWrappedCommand returns the script after cmd's /c or /k switch.
func cmdWrappedCommand(args []string) string {
	for i, raw := range args {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "/c", "/k":
			return nextCommandToken(args[i+1:])
		}
	}
	return ""
}

func nextCommandToken(args []string) string {
	for _, raw := range args {
		token := trimBalancedQuotes(strings.TrimSpace(raw))
		if token == "" || strings.Index(token, "=") > 0 {
			continue
		}
		return token
	}
	return ""
}

func trimBalancedQuotes(token string) string {
	if len(token) < 2 {
		return token
	}
	start, end := token[0], token[len(token)-1]
	if (start == '\'' && end == '\'') || (start == '"' && end == '"') {
		return token[1 : len(token)-1]
	}
	return token
}
