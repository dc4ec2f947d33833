// Package proc reports whether the daemon process is alive by scanning the
// OS process table. Results are never cached: the daemon is owned by another
// process and may appear or vanish between calls.
package proc

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
)

// Process is one entry of the OS process table.
type Process struct {
	PID  int
	Name string
	// Cmdline is the space-joined argument vector, or empty when it could
	// not be read.
	Cmdline string
}

// Info is a snapshot of daemon liveness. PID is 0 when nothing is running.
type Info struct {
	Running bool
	PID     int
	Name    string
}

func (i Info) String() string {
	if !i.Running {
		return "not running"
	}
	return fmt.Sprintf("running (pid %d)", i.PID)
}

// Matcher recognizes the daemon in the process table.
type Matcher struct {
	// Name is compared against the executable name: exact (case-insensitive)
	// when Exact is set, substring otherwise.
	Name string
	// Markers must all appear in the command line when it is known.
	Markers []string
	Exact   bool
}

// NewMatcher builds the matching rule for goos. Windows compares the image
// name (node.exe) exactly; other platforms use a substring match. Markers
// apply on every platform whenever the command line is readable.
func NewMatcher(name string, markers []string, goos string) Matcher {
	return Matcher{
		Name:    name,
		Markers: append([]string(nil), markers...),
		Exact:   goos == "windows",
	}
}

// Match reports whether p is the daemon.
func (m Matcher) Match(p Process) bool {
	name := strings.ToLower(p.Name)
	want := strings.ToLower(m.Name)
	if want == "" {
		return false
	}
	if m.Exact {
		if name != want {
			return false
		}
	} else if !strings.Contains(name, want) {
		return false
	}

	if p.Cmdline == "" {
		return m.Exact
	}
	cmdline := normalizeCmdline(p.Cmdline)
	for _, marker := range m.Markers {
		if !strings.Contains(cmdline, normalizeCmdline(marker)) {
			return false
		}
	}
	return true
}

// normalizeCmdline lowercases s and uses forward slashes so a marker such
// as @zowe/cli matches Windows paths.
func normalizeCmdline(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), `\`, "/")
}

// Probe queries the process table for the daemon.
type Probe struct {
	matcher Matcher
	list    func() ([]Process, error)
	self    int
}

// New creates a Probe for the current platform.
func New(name string, markers []string) *Probe {
	return &Probe{
		matcher: NewMatcher(name, markers, runtime.GOOS),
		list:    listProcesses,
		self:    os.Getpid(),
	}
}

// NewWithLister creates a Probe over an arbitrary process source.
func NewWithLister(m Matcher, list func() ([]Process, error)) *Probe {
	return &Probe{matcher: m, list: list}
}

// Probe returns the first matching process, lowest PID first.
func (p *Probe) Probe() (Info, error) {
	procs, err := p.list()
	if err != nil {
		return Info{}, fmt.Errorf("listing processes: %w", err)
	}

	sort.Slice(procs, func(i, j int) bool { return procs[i].PID < procs[j].PID })
	for _, proc := range procs {
		if p.self != 0 && proc.PID == p.self {
			continue
		}
		if p.matcher.Match(proc) {
			return Info{Running: true, PID: proc.PID, Name: proc.Name}, nil
		}
	}
	return Info{}, nil
}
