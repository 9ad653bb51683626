package limitcheck

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/prometheus/procfs"
	"github.com/spf13/afero"
)

// Source returns the resource limit table of a running process, in the
// format of /proc/<pid>/limits.
type Source interface {
	Limits(process string) (string, error)
}

// ProcSource reads limits from procfs.
type ProcSource struct {
	ProcRoot string   // default: procfs.DefaultMountPoint
	FS       afero.Fs // default: OS filesystem
}

// Limits finds the process by command name and returns its limits file.
func (s *ProcSource) Limits(process string) (string, error) {
	pid, err := s.FindPID(process)
	if err != nil {
		return "", err
	}

	fs := s.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}
	path := filepath.Join(s.root(), strconv.Itoa(pid), "limits")
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// FindPID returns the lowest PID whose command name equals process.
func (s *ProcSource) FindPID(process string) (int, error) {
	pfs, err := procfs.NewFS(s.root())
	if err != nil {
		return 0, fmt.Errorf("failed to open procfs at %s: %w", s.root(), err)
	}
	procs, err := pfs.AllProcs()
	if err != nil {
		return 0, fmt.Errorf("failed to list processes: %w", err)
	}
	sort.Sort(procs)

	for _, p := range procs {
		comm, err := p.Comm()
		if err != nil {
			// exited between listing and reading
			continue
		}
		if comm == process {
			return p.PID, nil
		}
	}
	return 0, fmt.Errorf("no running process named %s", process)
}

func (s *ProcSource) root() string {
	if s.ProcRoot == "" {
		return procfs.DefaultMountPoint
	}
	return s.ProcRoot
}

// OnceSource memoizes another Source per process so one verification run
// checks every limit against the same snapshot.
type OnceSource struct {
	Source Source

	mu    sync.Mutex
	cache map[string]snapshot
}

type snapshot struct {
	text string
	err  error
}

// Limits implements Source.
func (o *OnceSource) Limits(process string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if s, ok := o.cache[process]; ok {
		return s.text, s.err
	}
	if o.cache == nil {
		o.cache = make(map[string]snapshot)
	}
	text, err := o.Source.Limits(process)
	o.cache[process] = snapshot{text: text, err: err}
	return text, err
}

// StaticSource returns fixed text for every process.
type StaticSource string

// Limits implements Source.
func (s StaticSource) Limits(string) (string, error) {
	return string(s), nil
}
