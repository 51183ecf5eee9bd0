package docker

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
)

// Logs copies the container log stream to out and errOut. Containers are
// created without a TTY, so the stream arrives multiplexed and is demuxed
// here.
func (c *Client) Logs(ctx context.Context, name string, tail int, follow bool, out, errOut io.Writer) error {
	opts := container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     follow,
	}
	if tail > 0 {
		opts.Tail = strconv.Itoa(tail)
	}

	reader, err := c.cli.ContainerLogs(ctx, name, opts)
	if err != nil {
		return fmt.Errorf("failed to get logs for container %s: %w", name, err)
	}
	defer reader.Close()

	if _, err := stdcopy.StdCopy(out, errOut, reader); err != nil && err != io.EOF {
		return fmt.Errorf("failed to stream logs: %w", err)
	}

	return nil
}
