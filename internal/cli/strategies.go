package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/monument/aa"
)

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the antialiasing strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, k := range aa.Kinds() {
				status := "supported"
				if !k.Supported() {
					status = "rejected in the 3D view"
				}
				fmt.Fprintf(w, "%-6s %s\n", k, status)
			}
			return nil
		},
	}
}
