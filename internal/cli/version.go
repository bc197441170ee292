package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rewind/pkg/rewind"
)

const modulePath = "github.com/mesh-intelligence/rewind"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the rewind version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "rewind v%s\nmodule: %s\n", rewind.Version, modulePath)
			return nil
		},
	}
}
