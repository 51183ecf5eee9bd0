package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// Changes often arrive in bursts (editors write, rename, chmod), so the
// reload is debounced.
const reloadDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the conf.d directory and reload Nginx on changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ctrl, cfg, err := newController(ctx)
		if err != nil {
			return err
		}
		defer ctrl.Close()

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()

		if err := watcher.Add(cfg.ConfDir); err != nil {
			return err
		}

		log.Info("Watching for configuration changes", "dir", cfg.ConfDir)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		var reload <-chan time.Time

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Ext(event.Name) != ".conf" {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				log.Debug("Configuration changed", "file", event.Name, "op", event.Op.String())
				reload = time.After(reloadDebounce)

			case <-reload:
				reload = nil
				if err := ctrl.Reload(ctx); err != nil {
					log.Error("Reload failed, keeping previous configuration", "err", err)
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				log.Error("Watcher error", "err", err)

			case <-sigCh:
				log.Info("Stopping watcher")
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
