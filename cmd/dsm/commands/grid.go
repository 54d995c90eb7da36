package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/dsm/grid"
	"github.com/katalvlaran/dsm/matrix"
)

func gridCmd() *cobra.Command {
	var plain, styled bool
	cmd := &cobra.Command{
		Use:   "grid <file>",
		Short: "Render the grid projection of a matrix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMatrix(cmd, args[0])
			if err != nil {
				return err
			}
			g, err := grid.Build(m)
			if err != nil {
				return err
			}
			cells := grid.Strings(g, m)
			if plain || (!styled && piped(cmd.OutOrStdout())) {
				for _, line := range cells {
					fmt.Fprintln(cmd.OutOrStdout(), strings.Join(line, "\t"))
				}

				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderGrid(m, g, cells))

			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "tab-separated output without styling")
	cmd.Flags().BoolVar(&styled, "styled", false, "render the table even when output is not a terminal")
	cmd.MarkFlagsMutuallyExclusive("plain", "styled")

	return cmd
}

// piped reports whether w is a file that is not a terminal.
func piped(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

// renderGrid draws the grid as a bordered table. Header cells are bold,
// cells against an item's own alias are shaded, grouping selectors take
// their grouping color.
func renderGrid(m *matrix.Matrix, g *grid.Grid, cells [][]string) string {
	for y, line := range cells {
		for x := range line {
			if c, _ := g.At(y, x); c.Kind == grid.KindUneditableConnection {
				cells[y][x] = "■"
			}
		}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Muted).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			c, ok := g.At(row, col)
			if !ok {
				return styles.Cell
			}
			switch c.Kind {
			case grid.KindUneditableConnection, grid.KindSpanFiller:
				return styles.Cell.Foreground(colorMuted)
			case grid.KindGroupingItem, grid.KindGroupingItemV:
				if grp, ok := m.GroupingOf(c.Item); ok {
					return styles.Cell.Foreground(hexColor(grp.Color))
				}
			}
			if row < g.HeaderRows || col < g.HeaderCols {
				return styles.Header
			}

			return styles.Cell
		})

	return t.String()
}
