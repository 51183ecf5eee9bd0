package cmd

import (
	"github.com/spf13/cobra"
)

var (
	logsTail   int
	logsFollow bool
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show logs of the Nginx container",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ctrl, _, err := newController(ctx)
		if err != nil {
			return err
		}
		defer ctrl.Close()

		return ctrl.Logs(ctx, logsTail, logsFollow)
	},
}

var execCmd = &cobra.Command{
	Use:   "exec",
	Short: "Open a shell inside the running Nginx container",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ctrl, _, err := newController(ctx)
		if err != nil {
			return err
		}
		defer ctrl.Close()

		return ctrl.Exec(ctx)
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(execCmd)

	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 0, "number of lines from the end of the logs (0 = all)")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "follow log output")
}
