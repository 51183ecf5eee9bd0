package docker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/moby/term"
)

// CheckConfig runs `nginx -t` inside the container and returns its
// diagnostic output. The error is non-nil when the syntax check fails.
func (c *Client) CheckConfig(ctx context.Context, name string) (string, error) {
	return c.runCommand(ctx, name, []string{"nginx", "-t"})
}

// runCommand executes a non-interactive command inside the container,
// capturing combined output and translating a non-zero exit code into an
// error.
func (c *Client) runCommand(ctx context.Context, name string, cmd []string) (string, error) {
	execResp, err := c.cli.ContainerExecCreate(ctx, name, container.ExecOptions{
		Cmd:          cmd,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create exec in container %s: %w", name, err)
	}

	attach, err := c.cli.ContainerExecAttach(ctx, execResp.ID, container.ExecAttachOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to attach to exec in container %s: %w", name, err)
	}
	defer attach.Close()

	var buf bytes.Buffer
	if _, err := stdcopy.StdCopy(&buf, &buf, attach.Reader); err != nil {
		return buf.String(), fmt.Errorf("failed to read exec output: %w", err)
	}

	inspect, err := c.cli.ContainerExecInspect(ctx, execResp.ID)
	if err != nil {
		return buf.String(), fmt.Errorf("failed to inspect exec: %w", err)
	}

	if inspect.ExitCode != 0 {
		return buf.String(), fmt.Errorf("%s exited with code %d", cmd[0], inspect.ExitCode)
	}

	return buf.String(), nil
}

// ExecShell opens an interactive shell inside the container, attached to
// the caller's terminal in raw mode.
func (c *Client) ExecShell(ctx context.Context, name string) error {
	execResp, err := c.cli.ContainerExecCreate(ctx, name, container.ExecOptions{
		Cmd:          []string{"/bin/sh"},
		Tty:          true,
		AttachStdin:  true,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create exec in container %s: %w", name, err)
	}

	attach, err := c.cli.ContainerExecAttach(ctx, execResp.ID, container.ExecAttachOptions{Tty: true})
	if err != nil {
		return fmt.Errorf("failed to attach to exec in container %s: %w", name, err)
	}
	defer attach.Close()

	stdinFd, isTerm := term.GetFdInfo(os.Stdin)
	if isTerm {
		state, err := term.SetRawTerminal(stdinFd)
		if err != nil {
			return fmt.Errorf("failed to set raw terminal: %w", err)
		}
		defer term.RestoreTerminal(stdinFd, state)
	}

	go func() {
		io.Copy(attach.Conn, os.Stdin)
		attach.CloseWrite()
	}()

	// With a TTY allocated the output is a single unmultiplexed stream.
	if _, err := io.Copy(os.Stdout, attach.Reader); err != nil && err != io.EOF {
		return fmt.Errorf("failed to stream shell output: %w", err)
	}

	inspect, err := c.cli.ContainerExecInspect(ctx, execResp.ID)
	if err != nil {
		return fmt.Errorf("failed to inspect exec: %w", err)
	}
	if inspect.ExitCode != 0 {
		return fmt.Errorf("shell exited with code %d", inspect.ExitCode)
	}

	return nil
}
