package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mesh-intelligence/clausebook/pkg/types"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return sysError(fmt.Errorf("encoding output: %w", err))
	}
	return nil
}

// printEntityList writes one row per entity, or a JSON array in JSON mode.
func printEntityList(w io.Writer, entities []types.Entity, jsonMode bool) error {
	if jsonMode {
		return printJSON(w, entities)
	}
	if len(entities) == 0 {
		fmt.Fprintln(w, "no entities")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tVERSION\tNAME")
	for _, e := range entities {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Category, e.Version, e.Name)
	}
	return tw.Flush()
}

// printEntity writes the entity's fields followed by its content.
func printEntity(w io.Writer, e types.Entity, jsonMode bool) error {
	if jsonMode {
		return printJSON(w, e)
	}
	fmt.Fprintf(w, "ID:           %s\n", e.ID)
	fmt.Fprintf(w, "Name:         %s\n", e.Name)
	fmt.Fprintf(w, "Category:     %s\n", e.Category)
	fmt.Fprintf(w, "Version:      %s\n", e.Version)
	fmt.Fprintf(w, "Last updated: %s\n", e.LastUpdated.Format(time.RFC3339))
	if names := types.Placeholders(e.Content); len(names) > 0 {
		fmt.Fprintf(w, "Placeholders: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(w, "\n%s\n", e.Content)
	return nil
}

// parseValues converts repeated KEY=VALUE flags into a placeholder map. The
// value may itself contain '='.
func parseValues(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, userError(fmt.Errorf("invalid --set %q (expected KEY=VALUE)", p))
		}
		values[key] = value
	}
	return values, nil
}
