package cmd

import (
	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the Nginx container",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ctrl, _, err := newController(ctx)
		if err != nil {
			return err
		}
		defer ctrl.Close()

		return ctrl.Stop(ctx)
	},
}

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the Nginx container, starting it if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ctrl, _, err := newController(ctx)
		if err != nil {
			return err
		}
		defer ctrl.Close()

		return ctrl.Restart(ctx)
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the Nginx container, stopping it first if it runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ctrl, _, err := newController(ctx)
		if err != nil {
			return err
		}
		defer ctrl.Close()

		return ctrl.Remove(ctx)
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(restartCmd)
	rootCmd.AddCommand(removeCmd)
}
