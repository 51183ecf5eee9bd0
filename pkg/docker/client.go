package docker

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/jsonmessage"
	"github.com/docker/go-connections/nat"
	"github.com/moby/term"

	"github.com/abcdlsj/nginxctl/pkg/lifecycle"
)

// Client implements lifecycle.Runtime against the Docker Engine API.
type Client struct {
	cli *client.Client
}

// New creates a Docker client and verifies the daemon is reachable. The
// ping happens once up front so an unreachable daemon fails before any
// container state is queried.
func New(ctx context.Context) (*Client, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", lifecycle.ErrRuntimeUnavailable, err)
	}

	if _, err := cli.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", lifecycle.ErrRuntimeUnavailable, err)
	}

	return &Client{cli: cli}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.cli.Close()
}

// State reports the observed state of the named container.
func (c *Client) State(ctx context.Context, name string) (lifecycle.State, error) {
	inspect, err := c.cli.ContainerInspect(ctx, name)
	if client.IsErrNotFound(err) {
		return lifecycle.StateAbsent, nil
	}
	if err != nil {
		return lifecycle.StateAbsent, fmt.Errorf("failed to inspect container %s: %w", name, err)
	}

	if inspect.State != nil && inspect.State.Running {
		return lifecycle.StateRunning, nil
	}
	return lifecycle.StateStopped, nil
}

// Create pulls the image when missing locally and creates the container
// with restart policy "always" and bounded json-file log rotation.
func (c *Client) Create(ctx context.Context, spec lifecycle.CreateSpec) error {
	if err := c.ensureImage(ctx, spec.Image); err != nil {
		return err
	}

	exposed, bindings, err := nat.ParsePortSpecs([]string{spec.PortMapping})
	if err != nil {
		return fmt.Errorf("invalid port mapping %q: %w", spec.PortMapping, err)
	}

	mounts := make([]mount.Mount, 0, len(spec.Mounts))
	for _, m := range spec.Mounts {
		mounts = append(mounts, mount.Mount{
			Type:   mount.TypeBind,
			Source: m.Source,
			Target: m.Target,
		})
	}

	hostConfig := &container.HostConfig{
		PortBindings:  bindings,
		Mounts:        mounts,
		RestartPolicy: container.RestartPolicy{Name: container.RestartPolicyAlways},
		LogConfig: container.LogConfig{
			Type: "json-file",
			Config: map[string]string{
				"max-size": spec.LogMaxSize,
				"max-file": strconv.Itoa(spec.LogMaxFile),
			},
		},
	}

	_, err = c.cli.ContainerCreate(ctx, &container.Config{
		Image:        spec.Image,
		ExposedPorts: exposed,
	}, hostConfig, nil, nil, spec.Name)
	if err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}

	return nil
}

func (c *Client) ensureImage(ctx context.Context, ref string) error {
	if _, _, err := c.cli.ImageInspectWithRaw(ctx, ref); err == nil {
		return nil
	} else if !client.IsErrNotFound(err) {
		return fmt.Errorf("failed to inspect image %s: %w", ref, err)
	}

	log.Info("Pulling image", "image", ref)

	reader, err := c.cli.ImagePull(ctx, ref, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w", ref, err)
	}
	defer reader.Close()

	fd, isTerm := term.GetFdInfo(os.Stderr)
	if err := jsonmessage.DisplayJSONMessagesStream(reader, os.Stderr, fd, isTerm, nil); err != nil {
		return fmt.Errorf("failed to pull image %s: %w", ref, err)
	}

	return nil
}

func (c *Client) Start(ctx context.Context, name string) error {
	return c.cli.ContainerStart(ctx, name, container.StartOptions{})
}

func (c *Client) Stop(ctx context.Context, name string) error {
	return c.cli.ContainerStop(ctx, name, container.StopOptions{})
}

func (c *Client) Restart(ctx context.Context, name string) error {
	return c.cli.ContainerRestart(ctx, name, container.StopOptions{})
}

func (c *Client) Remove(ctx context.Context, name string) error {
	return c.cli.ContainerRemove(ctx, name, container.RemoveOptions{})
}

// SignalReload sends SIGHUP, which makes Nginx re-read its configuration
// without dropping connections.
func (c *Client) SignalReload(ctx context.Context, name string) error {
	return c.cli.ContainerKill(ctx, name, "SIGHUP")
}

// PortBindings reports the container port to host port mapping for the
// named container.
func (c *Client) PortBindings(ctx context.Context, name string) (map[string]string, error) {
	inspect, err := c.cli.ContainerInspect(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect container %s: %w", name, err)
	}

	result := make(map[string]string)
	if inspect.NetworkSettings != nil {
		for port, bindings := range inspect.NetworkSettings.Ports {
			if len(bindings) > 0 {
				result[string(port)] = bindings[0].HostPort
			}
		}
	}

	return result, nil
}
