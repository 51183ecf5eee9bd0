package cmd

import (
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Nginx container, creating it first if needed",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ctrl, _, err := newController(ctx)
		if err != nil {
			return err
		}
		defer ctrl.Close()

		return ctrl.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
