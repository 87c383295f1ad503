package cli

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/x/exp/charmtone"
	"github.com/spf13/cobra"

	"github.com/macropower/termicon/pkg/expr"
	"github.com/macropower/termicon/pkg/icon"
)

type ListArgs struct {
	IconSet string
	Match   string
}

func NewListCmd() *cobra.Command {
	la := &ListArgs{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the built-in icon sets",
		Example: `  # Print every icon set:
  termicon list

  # Print the iPad icons of the cursor set:
  termicon list --set cursor --match 'filename.startsWith("ipad-")'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, la)
		},
	}

	cmd.Flags().StringVar(&la.IconSet, "set", "", fmt.Sprintf("Icon set to print, one of: %s", icon.SetNames()))
	cmd.Flags().StringVar(&la.Match, "match", "", "CEL expression selecting icons by size and filename")

	must(cmd.RegisterFlagCompletionFunc("set",
		cobra.FixedCompletions(icon.SetNames(), cobra.ShellCompDirectiveNoFileComp),
	))

	return cmd
}

func runList(cmd *cobra.Command, la *ListArgs) error {
	names := icon.SetNames()
	if la.IconSet != "" {
		names = []string{la.IconSet}
	}

	f, err := expr.NewFilter(la.Match)
	if err != nil {
		return fmt.Errorf("--match: %w", err)
	}

	out := newPrinter(cmd.OutOrStdout())

	for i, name := range names {
		specs, err := icon.Set(name)
		if err != nil {
			return fmt.Errorf("--set: %w", err)
		}

		if i > 0 {
			out.println("")
		}

		out.println(out.styles.header.Render(fmt.Sprintf("%s (%d icons)", name, len(specs))))
		out.println(iconTable(f.Select(specs), out.color))
	}

	return nil
}

func iconTable(specs icon.Specs, color bool) string {
	t := table.New().
		Headers("SIZE", "POINTS", "SCALE", "FILENAME").
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false)

	for _, s := range specs {
		t.Row(
			strconv.Itoa(s.Size),
			strconv.FormatFloat(s.Points(), 'f', -1, 64),
			fmt.Sprintf("@%dx", s.Scale()),
			s.Filename,
		)
	}

	if color {
		t.StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Foreground(charmtone.Squid).Bold(true)
			}

			return lipgloss.NewStyle()
		})
	}

	return t.String()
}
