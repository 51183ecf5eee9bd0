package lifecycle

import (
	"errors"
	"fmt"
)

var (
	// ErrRuntimeUnavailable means the Docker daemon could not be reached at all.
	ErrRuntimeUnavailable = errors.New("container runtime unavailable")

	// ErrConfigInvalid means the deployment configuration is missing or unusable.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrContainerNotFound means the named container does not exist.
	ErrContainerNotFound = errors.New("container not found")

	// ErrContainerNotRunning means the operation needs a running container.
	ErrContainerNotRunning = errors.New("container not running")
)

// CommandError reports a runtime command that failed, keeping the runtime's
// own diagnostic for the operator.
type CommandError struct {
	Op   string
	Name string
	Err  error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("failed to %s container %s: %v", e.Op, e.Name, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
