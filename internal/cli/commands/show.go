package commands

import (
	"strings"

	"github.com/leapstack-labs/salesdash/internal/catalog"
	"github.com/leapstack-labs/salesdash/internal/cli/output"
	"github.com/spf13/cobra"
)

// ShowOptions holds options for the show command.
type ShowOptions struct {
	Mode string
}

// showOutput is the JSON shape of a query definition.
type showOutput struct {
	Mode  catalog.Mode `json:"mode"`
	Label string       `json:"label"`
	SQL   string       `json:"sql"`
}

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	opts := &ShowOptions{}

	cmd := &cobra.Command{
		Use:   "show <label|number>",
		Short: "Print the SQL of a predefined query",
		Example: `  salesdash show 3
  salesdash show "5) Find the region with the highest average sale price"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			return runShow(cmdCtx.Renderer, opts.Mode, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Mode, "mode", "", "Catalog to search: primary or secondary (default: both)")
	_ = cmd.RegisterFlagCompletionFunc("mode", completeModes(false))

	return cmd
}

func runShow(r *output.Renderer, modeFlag, ref string) error {
	mode, q, err := resolveQuery(modeFlag, ref)
	if err != nil {
		return err
	}

	sql := strings.TrimSpace(q.SQL)
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(showOutput{Mode: mode, Label: q.Label, SQL: sql})
	case output.ModeText:
		styles := r.Styles()
		r.Println(styles.Header2.Render(q.Label))
		r.Println(styles.Muted.Render(mode.Title()))
		r.Println()
		r.Println(styles.Code.Render(sql))
	default:
		r.Println(output.FormatHeader(2, q.Label))
		r.Println()
		r.Println(output.FormatKeyValue("Mode", mode.Title()))
		r.Println()
		r.Println(output.FormatCodeBlock("sql", sql))
	}
	return nil
}

// resolveQuery finds ref in the catalog named by modeFlag, or in both
// catalogs when modeFlag is empty.
func resolveQuery(modeFlag, ref string) (catalog.Mode, catalog.QueryDefinition, error) {
	if modeFlag == "" {
		return catalog.Find(ref)
	}
	mode, err := catalog.ParseMode(modeFlag)
	if err != nil {
		return "", catalog.QueryDefinition{}, err
	}
	q, err := catalog.For(mode).Resolve(ref)
	return mode, q, err
}
