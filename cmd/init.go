package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abcdlsj/nginxctl/pkg/config"
	"github.com/abcdlsj/nginxctl/pkg/nginx"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file, Nginx templates and web root",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.WriteDefault(cfgFile)
		if err != nil {
			return err
		}

		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		if err := nginx.EnsureMainConf(cfg.MainConf); err != nil {
			return err
		}
		if err := nginx.EnsureConfDir(cfg.ConfDir); err != nil {
			return err
		}
		if err := nginx.EnsureWebRoot(cfg.WebRoot); err != nil {
			return err
		}

		log.Info("Initialized", "config", path, "web_root", cfg.WebRoot)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
