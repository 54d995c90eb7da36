package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dsm/matrix"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a matrix document loads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			m, err := readMatrix(cmd, args[0])
			if err != nil {
				fmt.Fprintf(out, "%s %s\n", styles.Error.String(), err)
				for _, fe := range matrix.ValidationErrors(err) {
					fmt.Fprintf(out, "  %s: %s\n", fe.Namespace(), fe.Tag())
				}

				return err
			}
			meta := m.Metadata()
			fmt.Fprintf(out, "%s %s %s\n", styles.OK.String(), styles.Title.Render(meta.Title), m.Variant())
			fmt.Fprintln(out, styles.Muted.Render(fmt.Sprintf("rows=%d cols=%d connections=%d domains=%d",
				len(m.Rows()), len(m.Cols()), len(m.Connections()), len(m.Domains()))))

			return nil
		},
	}

	return cmd
}
