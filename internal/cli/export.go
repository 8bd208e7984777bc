package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/clausebook/internal/atomicfile"
	"github.com/mesh-intelligence/clausebook/pkg/types"
)

func newExportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog as JSONL",
		Long: `Export writes every entity, one JSON object per line, in registration
order. The output can be used as entities.jsonl for another data directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.openLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			entities := lib.All()
			if out == "" {
				return writeEntitiesJSONL(cmd.OutOrStdout(), entities)
			}
			err = atomicfile.Write(out, 0o644, func(w *bufio.Writer) error {
				return writeEntitiesJSONL(w, entities)
			})
			if err != nil {
				return sysError(fmt.Errorf("exporting to %s: %w", out, err))
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d entities to %s\n", len(entities), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")
	return cmd
}

func writeEntitiesJSONL(w io.Writer, entities []types.Entity) error {
	enc := json.NewEncoder(w)
	for _, e := range entities {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("encoding %s: %w", e.ID, err)
		}
	}
	return nil
}
