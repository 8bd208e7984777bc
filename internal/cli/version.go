package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/clausebook/pkg/clausebook"
)

const modulePath = "github.com/mesh-intelligence/clausebook"

// revision is set at build time with -ldflags "-X .../internal/cli.revision=...".
var revision = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the clausebook version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "clausebook v%s\nmodule: %s\nrevision: %s\n",
				clausebook.Version, modulePath, revision)
			return nil
		},
	}
}
