package proc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var daemonMarkers = []string{"@zowe/cli", "--daemon"}

func TestMatcherContainsRuleRequiresMarkers(t *testing.T) {
	m := NewMatcher("node", daemonMarkers, "linux")
	require.False(t, m.Exact)

	cases := []struct {
		name string
		proc Process
		want bool
	}{
		{"daemon", Process{Name: "node", Cmdline: "node /usr/lib/node_modules/@zowe/cli/lib/main.js --daemon"}, true},
		{"versioned node binary", Process{Name: "nodejs18", Cmdline: "nodejs18 /opt/@zowe/cli/main.js --daemon=4000"}, true},
		{"marker case differs", Process{Name: "Node", Cmdline: "Node /x/@Zowe/CLI/main.js --DAEMON"}, true},
		{"plain zowe command", Process{Name: "node", Cmdline: "node /usr/lib/node_modules/@zowe/cli/lib/main.js files list"}, false},
		{"other node daemon", Process{Name: "node", Cmdline: "node server.js --daemon"}, false},
		{"wrong executable", Process{Name: "bash", Cmdline: "bash -c @zowe/cli --daemon"}, false},
		{"kernel thread", Process{Name: "node"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, m.Match(tc.proc))
		})
	}
}

func TestMatcherExactRuleOnWindows(t *testing.T) {
	m := NewMatcher("node.exe", daemonMarkers, "windows")
	require.True(t, m.Exact)

	assert.True(t, m.Match(Process{Name: "node.exe"}), "image name only: markers are not checked")
	assert.True(t, m.Match(Process{Name: "NODE.EXE"}))
	assert.False(t, m.Match(Process{Name: "node.exe.bak"}))
	assert.False(t, m.Match(Process{Name: "xnode.exe"}))
	assert.False(t, m.Match(Process{Name: "node.exe", Cmdline: "node.exe other.js"}), "markers apply when a command line is known")
	assert.True(t, m.Match(Process{Name: "node.exe", Cmdline: `"C:\Program Files\nodejs\node.exe" C:\npm\node_modules\@zowe\cli\lib\main.js --daemon`}))
}

func TestMatcherWithEmptyNameNeverMatches(t *testing.T) {
	m := NewMatcher("", nil, "linux")
	assert.False(t, m.Match(Process{Name: "node", Cmdline: "node"}))
}

func TestProbeReturnsLowestMatchingPID(t *testing.T) {
	probe := NewWithLister(NewMatcher("node", daemonMarkers, "linux"), func() ([]Process, error) {
		return []Process{
			{PID: 900, Name: "node", Cmdline: "node @zowe/cli --daemon"},
			{PID: 12, Name: "sshd", Cmdline: "sshd -D"},
			{PID: 450, Name: "node", Cmdline: "node @zowe/cli --daemon"},
		}, nil
	})

	info, err := probe.Probe()
	require.NoError(t, err)
	assert.Equal(t, Info{Running: true, PID: 450, Name: "node"}, info)
	assert.Equal(t, "running (pid 450)", info.String())
}

func TestProbeEmptyTableReportsNotRunning(t *testing.T) {
	probe := NewWithLister(NewMatcher("node", daemonMarkers, "linux"), func() ([]Process, error) {
		return nil, nil
	})

	info, err := probe.Probe()
	require.NoError(t, err)
	assert.False(t, info.Running)
	assert.Zero(t, info.PID)
	assert.Equal(t, "not running", info.String())
}

func TestProbeSkipsOwnProcess(t *testing.T) {
	probe := NewWithLister(NewMatcher("node", nil, "linux"), func() ([]Process, error) {
		return []Process{{PID: 77, Name: "node", Cmdline: "node launcher"}}, nil
	})
	probe.self = 77

	info, err := probe.Probe()
	require.NoError(t, err)
	assert.False(t, info.Running)
}

func TestProbeWrapsListingError(t *testing.T) {
	boom := errors.New("permission denied")
	probe := NewWithLister(NewMatcher("node", nil, "linux"), func() ([]Process, error) {
		return nil, boom
	})

	_, err := probe.Probe()
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "listing processes")
}
