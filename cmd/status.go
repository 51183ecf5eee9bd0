package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/abcdlsj/nginxctl/pkg/lifecycle"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the Nginx container",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ctrl, _, err := newController(ctx)
		if err != nil {
			return err
		}
		defer ctrl.Close()

		st, err := ctrl.Status(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Name:  %s\n", st.Name)
		fmt.Printf("State: %s\n", st.State)

		if st.State != lifecycle.StateRunning {
			return nil
		}

		ports := make([]string, 0, len(st.Ports))
		for p := range st.Ports {
			ports = append(ports, p)
		}
		sort.Strings(ports)
		for _, p := range ports {
			fmt.Printf("Port:  %s -> %s\n", p, st.Ports[p])
		}
		fmt.Printf("URL:   %s\n", st.URL)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
