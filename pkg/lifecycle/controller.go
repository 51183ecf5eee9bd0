package lifecycle

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/abcdlsj/nginxctl/pkg/config"
	"github.com/abcdlsj/nginxctl/pkg/nginx"
)

// Paths inside the container the host directories are bound to.
const (
	ContainerWebRoot  = "/data"
	ContainerConfDir  = "/etc/nginx/conf.d"
	ContainerMainConf = "/etc/nginx/nginx.conf"
)

// Controller decides, from the declared configuration and the observed
// container state, which runtime command to issue. It keeps no state of
// its own; the runtime is queried fresh on every operation.
type Controller struct {
	cfg     config.Config
	rt      Runtime
	confirm func(prompt string) bool
	logOut  io.Writer
	logErr  io.Writer
}

// New creates a Controller for the configured container.
func New(cfg config.Config, rt Runtime) *Controller {
	return &Controller{
		cfg:     cfg,
		rt:      rt,
		confirm: askConfirm,
		logOut:  os.Stdout,
		logErr:  os.Stderr,
	}
}

// Close releases the runtime when it holds a connection.
func (c *Controller) Close() error {
	if closer, ok := c.rt.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Status is what the status operation reports to the operator.
type Status struct {
	Name  string
	State State
	Ports map[string]string // container port -> host port, only when running
	URL   string            // derived local access URL, only when running
}

// Start brings the container to running: a no-op when it already runs, a
// plain start when it exists stopped, and create+start when absent.
func (c *Controller) Start(ctx context.Context) error {
	name := c.cfg.ContainerName

	state, err := c.rt.State(ctx, name)
	if err != nil {
		return err
	}

	switch state {
	case StateRunning:
		log.Info("Container already running", "name", name)
		return nil

	case StateStopped:
		if err := c.rt.Start(ctx, name); err != nil {
			return &CommandError{Op: "start", Name: name, Err: err}
		}
		log.Info("Container started", "name", name)
		return nil
	}

	// Absent: validate before the first mutating call.
	if err := c.cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	if err := c.ensureWebRoot(); err != nil {
		return err
	}

	// The bind mounts need the config files to exist on the host.
	if err := nginx.EnsureMainConf(c.cfg.MainConf); err != nil {
		return err
	}
	if err := nginx.EnsureConfDir(c.cfg.ConfDir); err != nil {
		return err
	}

	spec := CreateSpec{
		Name:        name,
		Image:       c.cfg.Image(),
		PortMapping: c.cfg.PortMapping,
		Mounts: []Mount{
			{Source: c.cfg.ConfDir, Target: ContainerConfDir},
			{Source: c.cfg.MainConf, Target: ContainerMainConf},
			{Source: c.cfg.WebRoot, Target: ContainerWebRoot},
		},
		LogMaxSize: c.cfg.LogMaxSize,
		LogMaxFile: c.cfg.LogMaxFile,
	}

	if err := c.rt.Create(ctx, spec); err != nil {
		return &CommandError{Op: "create", Name: name, Err: err}
	}
	if err := c.rt.Start(ctx, name); err != nil {
		return &CommandError{Op: "start", Name: name, Err: err}
	}

	log.Info("Container created and started", "name", name, "image", spec.Image, "url", c.accessURL())
	return nil
}

// Stop stops the container when it runs; otherwise it is a no-op.
func (c *Controller) Stop(ctx context.Context) error {
	name := c.cfg.ContainerName

	state, err := c.rt.State(ctx, name)
	if err != nil {
		return err
	}

	if state != StateRunning {
		log.Info("Container not running, nothing to stop", "name", name, "state", state)
		return nil
	}

	if err := c.rt.Stop(ctx, name); err != nil {
		return &CommandError{Op: "stop", Name: name, Err: err}
	}

	log.Info("Container stopped", "name", name)
	return nil
}

// Restart restarts the container, delegating to Start when it does not
// exist yet.
func (c *Controller) Restart(ctx context.Context) error {
	name := c.cfg.ContainerName

	state, err := c.rt.State(ctx, name)
	if err != nil {
		return err
	}

	if state == StateAbsent {
		log.Info("Container does not exist, starting instead", "name", name)
		return c.Start(ctx)
	}

	if err := c.rt.Restart(ctx, name); err != nil {
		return &CommandError{Op: "restart", Name: name, Err: err}
	}

	log.Info("Container restarted", "name", name)
	return nil
}

// Remove deletes the container, stopping it first when it runs.
func (c *Controller) Remove(ctx context.Context) error {
	name := c.cfg.ContainerName

	state, err := c.rt.State(ctx, name)
	if err != nil {
		return err
	}

	if state == StateAbsent {
		log.Info("Container does not exist, nothing to remove", "name", name)
		return nil
	}

	if state == StateRunning {
		if err := c.rt.Stop(ctx, name); err != nil {
			return &CommandError{Op: "stop", Name: name, Err: err}
		}
	}

	if err := c.rt.Remove(ctx, name); err != nil {
		return &CommandError{Op: "remove", Name: name, Err: err}
	}

	log.Info("Container removed", "name", name)
	return nil
}

// Status reports the container state; for a running container it also
// resolves the port bindings and the local access URL.
func (c *Controller) Status(ctx context.Context) (Status, error) {
	name := c.cfg.ContainerName

	state, err := c.rt.State(ctx, name)
	if err != nil {
		return Status{}, err
	}

	st := Status{Name: name, State: state}
	if state != StateRunning {
		return st, nil
	}

	ports, err := c.rt.PortBindings(ctx, name)
	if err != nil {
		return st, err
	}
	st.Ports = ports
	st.URL = c.accessURL()

	return st, nil
}

// Logs streams the container log to the controller's output.
func (c *Controller) Logs(ctx context.Context, tail int, follow bool) error {
	name := c.cfg.ContainerName

	state, err := c.rt.State(ctx, name)
	if err != nil {
		return err
	}

	if state == StateAbsent {
		return fmt.Errorf("%w: %s", ErrContainerNotFound, name)
	}

	return c.rt.Logs(ctx, name, tail, follow, c.logOut, c.logErr)
}

// Exec opens an interactive shell inside the running container.
func (c *Controller) Exec(ctx context.Context) error {
	name := c.cfg.ContainerName

	state, err := c.rt.State(ctx, name)
	if err != nil {
		return err
	}

	if state != StateRunning {
		return fmt.Errorf("%w: %s", ErrContainerNotRunning, name)
	}

	return c.rt.ExecShell(ctx, name)
}

// Reload validates the served configuration in place and, only when the
// check passes, signals the server to reload. Invalid configuration is
// never reloaded.
func (c *Controller) Reload(ctx context.Context) error {
	name := c.cfg.ContainerName

	state, err := c.rt.State(ctx, name)
	if err != nil {
		return err
	}

	if state != StateRunning {
		return fmt.Errorf("%w: %s", ErrContainerNotRunning, name)
	}

	out, err := c.rt.CheckConfig(ctx, name)
	if err != nil {
		return fmt.Errorf("%w: config check failed: %v\n%s", ErrConfigInvalid, err, strings.TrimSpace(out))
	}

	if err := c.rt.SignalReload(ctx, name); err != nil {
		return &CommandError{Op: "reload", Name: name, Err: err}
	}

	log.Info("Configuration reloaded", "name", name)
	return nil
}

// ensureWebRoot makes sure the web root directory exists, offering to
// create it when missing.
func (c *Controller) ensureWebRoot() error {
	root := c.cfg.WebRoot

	info, err := os.Stat(root)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%w: web_root %s is not a directory", ErrConfigInvalid, root)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("%w: cannot stat web_root %s: %v", ErrConfigInvalid, root, err)
	}

	if !c.confirm(fmt.Sprintf("Web root %s does not exist. Create it?", root)) {
		return fmt.Errorf("%w: web_root %s does not exist", ErrConfigInvalid, root)
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return fmt.Errorf("%w: cannot create web_root %s: %v", ErrConfigInvalid, root, err)
	}

	log.Info("Created web root", "path", root)
	return nil
}

func (c *Controller) accessURL() string {
	return "http://localhost:" + c.cfg.HostPort()
}

func askConfirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
