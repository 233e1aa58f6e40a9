// Package procprov provides a process tree over /proc: the root is pid 1
// (or an explicitly requested pid), a pid's children are its child pids,
// and a pid reachable twice along one root-to-node path is surfaced a
// second time as a folded, childless leaf rather than unfolded forever.
package procprov

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/brianmcjilton/treest/internal/treecore"
)

// Fragment is one pid in the tree. Visited marks a pid that already
// appears earlier on the path to this node, breaking cycles at the
// provider level.
type Fragment struct {
	Pid     int
	Comm    string
	Visited bool
}

func (f Fragment) String() string {
	if f.Visited {
		return fmt.Sprintf("\x1b[31m%d %s (cycle)\x1b[m", f.Pid, f.Comm)
	}
	return fmt.Sprintf("%d %s", f.Pid, f.Comm)
}

// Provider walks /proc starting at RootPid.
type Provider struct {
	RootPid int
}

// New builds a proc provider. An empty arg defaults to pid 1, matching
// a typical container's init process as the natural root.
func New(arg string) (*Provider, error) {
	if arg == "" {
		return &Provider{RootPid: 1}, nil
	}
	pid, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("procprov: invalid pid %q: %w", arg, err)
	}
	return &Provider{RootPid: pid}, nil
}

func (p *Provider) ProvideRoot() Fragment {
	return Fragment{Pid: p.RootPid, Comm: comm(p.RootPid)}
}

// Provide returns no error: an unreadable /proc entry (a process that
// exited mid-scan, one owned by another user) is skipped rather than
// failing the whole listing.
func (p *Provider) Provide(path []Fragment) ([]Fragment, error) {
	last := path[len(path)-1]
	if last.Visited {
		return nil, nil
	}

	ancestors := make(map[int]bool, len(path))
	for _, f := range path {
		ancestors[f.Pid] = true
	}

	children := childPids(last.Pid)
	out := make([]Fragment, len(children))
	for i, pid := range children {
		out[i] = Fragment{Pid: pid, Comm: comm(pid), Visited: ancestors[pid]}
	}
	return out, nil
}

// childPids prefers /proc/<pid>/task/<tid>/children (fast, kernel-
// maintained), falling back to a full /proc scan grouped by PPid from
// /proc/<n>/status when the children file isn't available (non-Linux,
// or a kernel built without the feature).
func childPids(pid int) []int {
	if kids, ok := childrenViaTaskFile(pid); ok {
		return kids
	}
	return childrenViaStatusScan(pid)
}

func childrenViaTaskFile(pid int) ([]int, bool) {
	taskDir := filepath.Join("/proc", strconv.Itoa(pid), "task")
	tids, err := os.ReadDir(taskDir)
	if err != nil {
		return nil, false
	}

	seen := map[int]bool{}
	var out []int
	found := false
	for _, tid := range tids {
		data, err := os.ReadFile(filepath.Join(taskDir, tid.Name(), "children"))
		if err != nil {
			continue
		}
		found = true
		for _, field := range strings.Fields(string(data)) {
			cpid, err := strconv.Atoi(field)
			if err != nil || seen[cpid] {
				continue
			}
			seen[cpid] = true
			out = append(out, cpid)
		}
	}
	return out, found
}

func childrenViaStatusScan(pid int) []int {
	ents, err := os.ReadDir("/proc")
	if err != nil {
		return nil
	}

	var out []int
	for _, e := range ents {
		cpid, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		ppid, ok := ppidOf(cpid)
		if ok && ppid == pid {
			out = append(out, cpid)
		}
	}
	return out
}

func ppidOf(pid int) (int, bool) {
	data, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(pid), "status"))
	if err != nil {
		return 0, false
	}
	for _, line := range strings.Split(string(data), "\n") {
		if name, rest, ok := strings.Cut(line, ":"); ok && strings.TrimSpace(name) == "PPid" {
			ppid, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return 0, false
			}
			return ppid, true
		}
	}
	return 0, false
}

func comm(pid int) string {
	data, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(pid), "comm"))
	if err != nil {
		return "?"
	}
	return strings.TrimSpace(string(data))
}

func (p *Provider) Compare(a, b Fragment) int {
	switch {
	case a.Pid < b.Pid:
		return -1
	case a.Pid > b.Pid:
		return 1
	default:
		return 0
	}
}

func (p *Provider) Keep(a Fragment) bool { return true }

func (p *Provider) FmtFragPath(w io.Writer, path []Fragment) error {
	for _, f := range path[1:] {
		if _, err := fmt.Fprintf(w, " %s", f.String()); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provider) WriteArgPath(w io.Writer, path []Fragment) error {
	_, err := io.WriteString(w, strconv.Itoa(path[len(path)-1].Pid))
	return err
}

func (p *Provider) ProviderCommand(args []string) (string, error) {
	return "", fmt.Errorf("no provider-specific commands")
}

var _ treecore.Full[Fragment] = (*Provider)(nil)
var _ treecore.Ext[Fragment] = (*Provider)(nil)
