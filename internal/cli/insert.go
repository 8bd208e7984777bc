package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/clausebook/internal/insert"
	"github.com/mesh-intelligence/clausebook/pkg/types"
)

func newInsertCmd(a *app) *cobra.Command {
	var (
		target   string
		location string
		sets     []string
	)
	cmd := &cobra.Command{
		Use:   "insert <id>",
		Short: "Resolve an entity and insert it into a text file",
		Long: `Insert resolves the entity's placeholders and writes the text into the
target file. Locations: replace (overwrite the file), append and after (add
at the end), before (add at the start).`,
		Example: `  clausebook insert governing-law --target contract.txt --set STATE=Delaware`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := types.ParseInsertLocation(location)
			if err != nil {
				return userError(err)
			}
			values, err := parseValues(sets)
			if err != nil {
				return err
			}

			lib, err := a.openLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			composer := insert.NewComposer(lib, &insert.FileInserter{Path: target}, a.logger)
			res, err := composer.Insert(cmd.Context(), args[0], values, loc)
			if err != nil {
				if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidLocation) {
					return userError(err)
				}
				return sysError(err)
			}

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %s into %s at bytes %d-%d\n",
				args[0], target, res.Range.Start, res.Range.End)
			if len(res.Unresolved) > 0 {
				warn(cmd.ErrOrStderr(), "unresolved placeholders: %v", res.Unresolved)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "file to insert into (required)")
	cmd.Flags().StringVar(&location, "location", string(types.InsertAppend), "replace, append, before, or after")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "placeholder value as KEY=VALUE (repeatable)")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}
