package cmd

import (
	"github.com/spf13/cobra"
)

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Validate the Nginx configuration and reload it without a restart",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ctrl, _, err := newController(ctx)
		if err != nil {
			return err
		}
		defer ctrl.Close()

		return ctrl.Reload(ctx)
	},
}

func init() {
	rootCmd.AddCommand(reloadCmd)
}
