package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dsm/sequence"
)

func sequenceCmd() *cobra.Command {
	var (
		minWeight float64
		apply     bool
		out       string
	)
	cmd := &cobra.Command{
		Use:   "sequence <file>",
		Short: "Order items so dependencies come first and report feedback loops",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMatrix(cmd, args[0])
			if err != nil {
				return err
			}
			opts := []sequence.Option{sequence.WithContext(cmd.Context())}
			if cmd.Flags().Changed("min-weight") {
				opts = append(opts, sequence.WithMinWeight(minWeight))
			}
			res, err := sequence.Partition(m, opts...)
			if err != nil {
				return err
			}
			if apply {
				if err = sequence.Apply(m, res); err != nil {
					return err
				}

				return writeMatrix(cmd, out, m)
			}

			w := cmd.OutOrStdout()
			for i, block := range res.Blocks {
				names := make([]string, len(block))
				for j, id := range block {
					names[j] = itemName(m, id)
				}
				line := fmt.Sprintf("%d\t%s", i+1, strings.Join(names, ", "))
				if len(block) > 1 {
					line += "\t" + styles.Title.Render("loop")
				}
				fmt.Fprintln(w, line)
			}

			return nil
		},
	}
	cmd.Flags().Float64Var(&minWeight, "min-weight", 0, "ignore connections lighter than this")
	cmd.Flags().BoolVar(&apply, "apply", false, "write the resequenced matrix instead of a report")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file for --apply (default stdout)")

	return cmd
}
