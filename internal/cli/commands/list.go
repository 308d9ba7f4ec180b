package commands

import (
	"fmt"

	"github.com/leapstack-labs/salesdash/internal/catalog"
	"github.com/leapstack-labs/salesdash/internal/cli/output"
	"github.com/spf13/cobra"
)

// ListOptions holds options for the list command.
type ListOptions struct {
	Mode string
}

// listEntry is the JSON shape of one catalog entry.
type listEntry struct {
	Mode   catalog.Mode `json:"mode"`
	Number int          `json:"number"`
	Label  string       `json:"label"`
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the predefined queries",
		Long: `List the predefined queries of one or both catalogs.

Queries are grouped by mode: "primary" (Guvi Query) and
"secondary" (My own Query).`,
		Example: `  # List every query
  salesdash list

  # List the secondary catalog as JSON
  salesdash list --mode secondary -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			return runList(cmdCtx.Renderer, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Mode, "mode", "all", "Catalog to list: primary, secondary or all")
	_ = cmd.RegisterFlagCompletionFunc("mode", completeModes(true))

	return cmd
}

func runList(r *output.Renderer, opts *ListOptions) error {
	modes, err := modesFor(opts.Mode, true)
	if err != nil {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		entries := []listEntry{}
		for _, m := range modes {
			for _, q := range catalog.For(m).Queries {
				entries = append(entries, listEntry{Mode: m, Number: q.Number(), Label: q.Label})
			}
		}
		return r.JSON(entries)
	case output.ModeText:
		styles := r.Styles()
		for i, m := range modes {
			if i > 0 {
				r.Println()
			}
			r.Println(styles.Header2.Render(m.Title()) + " " + styles.Muted.Render(fmt.Sprintf("(--mode %s)", m)))
			for _, label := range catalog.For(m).Labels() {
				r.Printf("  %s\n", styles.Label.Render(label))
			}
		}
	default:
		for i, m := range modes {
			if i > 0 {
				r.Println()
			}
			r.Println(output.FormatHeader(2, m.Title()))
			r.Println()
			for _, label := range catalog.For(m).Labels() {
				r.Printf("- %s\n", label)
			}
		}
	}
	return nil
}

// modesFor parses a --mode value; "all" is accepted when allowAll is set.
func modesFor(value string, allowAll bool) ([]catalog.Mode, error) {
	if allowAll && (value == "" || value == "all") {
		return catalog.Modes(), nil
	}
	m, err := catalog.ParseMode(value)
	if err != nil {
		return nil, err
	}
	return []catalog.Mode{m}, nil
}

func completeModes(withAll bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		values := []string{string(catalog.ModePrimary), string(catalog.ModeSecondary)}
		if withAll {
			values = append(values, "all")
		}
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
