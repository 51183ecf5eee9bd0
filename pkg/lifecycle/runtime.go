package lifecycle

import (
	"context"
	"io"
)

// State is the observed runtime state of a named container.
type State int

const (
	StateAbsent State = iota
	StateStopped
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	default:
		return "absent"
	}
}

// Mount is a host path bound read/write into the container.
type Mount struct {
	Source string // Host path
	Target string // Container path
}

// CreateSpec describes the container to create.
type CreateSpec struct {
	Name        string
	Image       string
	PortMapping string // host:container
	Mounts      []Mount
	LogMaxSize  string // json-file rotation threshold, e.g. "10m"
	LogMaxFile  int    // number of rotated files to keep
}

// Runtime is the container runtime the controller drives. Implementations
// query the daemon directly and never cache state; the runtime is the sole
// source of truth for whether a container exists or runs.
type Runtime interface {
	// State reports the current state of the named container.
	State(ctx context.Context, name string) (State, error)

	// Create creates the container without starting it.
	Create(ctx context.Context, spec CreateSpec) error

	Start(ctx context.Context, name string) error
	Stop(ctx context.Context, name string) error
	Restart(ctx context.Context, name string) error
	Remove(ctx context.Context, name string) error

	// Logs copies the container's log stream to out/errOut. A tail of 0
	// means the full log; follow keeps the stream open.
	Logs(ctx context.Context, name string, tail int, follow bool, out, errOut io.Writer) error

	// ExecShell opens an interactive shell attached to the caller's terminal.
	ExecShell(ctx context.Context, name string) error

	// CheckConfig runs the server's own syntax check inside the container
	// and returns its diagnostic output. A non-nil error means the check
	// failed or could not be run.
	CheckConfig(ctx context.Context, name string) (string, error)

	// SignalReload asks the server process to re-read its configuration
	// without restarting the container.
	SignalReload(ctx context.Context, name string) error

	// PortBindings reports the container port to host port mapping.
	PortBindings(ctx context.Context, name string) (map[string]string, error)
}
