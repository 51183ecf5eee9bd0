package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abcdlsj/nginxctl/pkg/config"
	"github.com/abcdlsj/nginxctl/pkg/docker"
	"github.com/abcdlsj/nginxctl/pkg/lifecycle"
)

var (
	cfgFile string
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "nginxctl",
		Short: "Manage a Dockerized Nginx static file server",
		Long: `Nginxctl manages a single named Nginx container serving static files.
It drives the Docker Engine directly: start, stop, restart, inspect, reload
configuration, stream logs, and open a shell in the container.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("a command is required")
		},
	}
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Configure logger
	log.SetReportTimestamp(true)
	log.SetTimeFormat("2006-01-02 15:04:05")

	cobra.OnInitialize(func() {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./nginxctl.env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// newController loads the configuration, connects to the Docker daemon and
// wires both into a lifecycle controller. An unreachable daemon fails here,
// before any container state is queried.
func newController(ctx context.Context) (*lifecycle.Controller, config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, config.Config{}, err
	}

	rt, err := docker.New(ctx)
	if err != nil {
		return nil, config.Config{}, err
	}

	return lifecycle.New(cfg, rt), cfg, nil
}
