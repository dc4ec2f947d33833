package proc

import (
	"slices"

	"github.com/shirou/gopsutil/v4/process"
)

// handle is the subset of *process.Process the lister reads.
type handle interface {
	Name() (string, error)
	Cmdline() (string, error)
	Status() ([]string, error)
}

type entry struct {
	pid int
	h   handle
}

var processesFn = func() ([]entry, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}
	entries := make([]entry, 0, len(procs))
	for _, p := range procs {
		entries = append(entries, entry{pid: int(p.Pid), h: p})
	}
	return entries, nil
}

// listProcesses snapshots the process table. Processes that exit while the
// table is read are dropped, as are zombies. A command line that cannot be
// read (access denied) is left empty.
func listProcesses() ([]Process, error) {
	entries, err := processesFn()
	if err != nil {
		return nil, err
	}

	procs := make([]Process, 0, len(entries))
	for _, e := range entries {
		name, err := e.h.Name()
		if err != nil || name == "" {
			continue
		}
		if status, err := e.h.Status(); err == nil && slices.Contains(status, process.Zombie) {
			continue
		}
		cmdline, _ := e.h.Cmdline()
		procs = append(procs, Process{PID: e.pid, Name: name, Cmdline: cmdline})
	}
	return procs, nil
}
