package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/clausebook/pkg/types"
)

type registerOptions struct {
	id       string
	name     string
	category string
	version  string
	content  string
	file     string
}

func newRegisterCmd(a *app) *cobra.Command {
	var opts registerOptions
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Add an entity or replace the entity with the same id",
		Long: `Register stores an entity in the catalog. An existing entity with the same
id is overwritten and keeps its place in listings. Without --id a new
time-ordered UUID is assigned.`,
		Example: `  clausebook register --id nda-term --category legal --name "NDA Term" \
      --version 1.0 --content "This Agreement remains in force for [TERM]."
  clausebook register --category footer --name "Draft Footer" --file footer.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd, a, opts)
		},
	}
	cmd.Flags().StringVar(&opts.id, "id", "", "entity id (default: generated UUID)")
	cmd.Flags().StringVar(&opts.name, "name", "", "human-readable name (required)")
	cmd.Flags().StringVar(&opts.category, "category", "", "one of: legal, boilerplate, signature, header, footer (required)")
	cmd.Flags().StringVar(&opts.version, "version", "1.0", "free-form version string")
	cmd.Flags().StringVar(&opts.content, "content", "", "entity content")
	cmd.Flags().StringVar(&opts.file, "file", "", "read entity content from a file")
	cmd.MarkFlagsMutuallyExclusive("content", "file")
	cmd.MarkFlagsOneRequired("content", "file")
	return cmd
}

func runRegister(cmd *cobra.Command, a *app, opts registerOptions) error {
	category, err := types.ParseCategory(opts.category)
	if err != nil {
		return userError(err)
	}
	if strings.TrimSpace(opts.name) == "" {
		return userError(types.ErrInvalidName)
	}

	content := opts.content
	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return userError(fmt.Errorf("reading content file: %w", err))
		}
		content = string(data)
	}

	id := opts.id
	if id == "" {
		u, err := uuid.NewV7()
		if err != nil {
			return sysError(fmt.Errorf("generating id: %w", err))
		}
		id = u.String()
	}

	lib, err := a.openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	_, existed := lib.Get(id)
	entity := types.Entity{
		ID:       id,
		Name:     opts.name,
		Category: category,
		Content:  content,
		Version:  opts.version,
	}
	if err := lib.Register(entity); err != nil {
		return sysError(fmt.Errorf("registering %s: %w", id, err))
	}

	stored, _ := lib.Get(id)
	if a.flags.jsonMode {
		return printJSON(cmd.OutOrStdout(), stored)
	}
	verb := "registered"
	if existed {
		verb = "updated"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s, version %s)\n", verb, stored.ID, stored.Category, stored.Version)
	return nil
}
