package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/clausebook/pkg/types"
)

// categoryCounter is implemented by backends that can count without
// loading entities.
type categoryCounter interface {
	CountByCategory() (map[types.Category]int, error)
}

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories and how many entities each holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.openLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			counts := make(map[types.Category]int)
			if c, ok := lib.(categoryCounter); ok {
				if counts, err = c.CountByCategory(); err != nil {
					return sysError(err)
				}
			} else {
				for _, c := range types.Categories() {
					counts[c] = len(lib.ListByCategory(c))
				}
			}

			type row struct {
				Category types.Category `json:"category"`
				Count    int            `json:"count"`
			}
			rows := make([]row, 0, len(counts))
			for _, c := range types.Categories() {
				rows = append(rows, row{Category: c, Count: counts[c]})
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), rows)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%d\n", r.Category, r.Count)
			}
			return tw.Flush()
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show an entity",
		Example: `  clausebook get governing-law
  clausebook get governing-law --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.openLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			e, ok := lib.Get(args[0])
			if !ok {
				return userError(fmt.Errorf("%w: %s", types.ErrNotFound, args[0]))
			}
			return printEntity(cmd.OutOrStdout(), e, a.flags.jsonMode)
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entities in registration order",
		Example: `  clausebook list
  clausebook list --category legal`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var c types.Category
			if category != "" {
				parsed, err := types.ParseCategory(category)
				if err != nil {
					return userError(err)
				}
				c = parsed
			}

			lib, err := a.openLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			entities := lib.All()
			if c != "" {
				entities = lib.ListByCategory(c)
			}
			return printEntityList(cmd.OutOrStdout(), entities, a.flags.jsonMode)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list entities in this category")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find entities whose name or content contains query",
		Long: `Search matches query against entity names and content, ignoring case.
An empty query ("") lists every entity.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.openLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			return printEntityList(cmd.OutOrStdout(), lib.Search(args[0]), a.flags.jsonMode)
		},
	}
}

func newResolveCmd(a *app) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "resolve <id>",
		Short: "Print an entity's content with placeholders filled in",
		Long: `Resolve replaces every [KEY] token in the entity content with the value
given by --set KEY=VALUE. Tokens without a value are left in place and
listed on stderr.`,
		Example: `  clausebook resolve governing-law --set STATE=Delaware`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(sets)
			if err != nil {
				return err
			}

			lib, err := a.openLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			e, ok := lib.Get(args[0])
			if !ok {
				return userError(fmt.Errorf("%w: %s", types.ErrNotFound, args[0]))
			}
			text := types.ResolvePlaceholders(e, values)
			unresolved := types.Unresolved(text)

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"id":         e.ID,
					"text":       text,
					"unresolved": unresolved,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			if len(unresolved) > 0 {
				warn(cmd.ErrOrStderr(), "unresolved placeholders: %v", unresolved)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "placeholder value as KEY=VALUE (repeatable)")
	return cmd
}
