package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dsm/cluster"
	"github.com/katalvlaran/dsm/grid"
)

func clusterCmd() *cobra.Command {
	var (
		restarts int
		seed     int64
		apply    bool
		out      string
	)
	cmd := &cobra.Command{
		Use:   "cluster <file>",
		Short: "Cluster a symmetric matrix with the Thebeau heuristic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMatrix(cmd, args[0])
			if err != nil {
				return err
			}
			params := cfg.Cluster.Params
			params.Logger = logger
			if cmd.Flags().Changed("seed") {
				params.Seed = seed
			}
			k := cfg.Cluster.Restarts
			if cmd.Flags().Changed("restarts") {
				k = restarts
			}

			p, err := cluster.FromMatrix(m, params)
			if err != nil {
				return err
			}
			res, err := cluster.RunRestarts(cmd.Context(), p, params, k)
			if err != nil {
				return err
			}
			if apply {
				if err = cluster.Apply(m, res); err != nil {
					return err
				}

				return writeMatrix(cmd, out, m)
			}

			w := cmd.OutOrStdout()
			status := ""
			if res.Cancelled {
				status = " (cancelled)"
			}
			fmt.Fprintln(w, styles.Title.Render(fmt.Sprintf("cost %s, %d passes%s",
				grid.FormatNumber(res.Cost), res.Passes, status)))
			for i, members := range res.Clusters {
				names := make([]string, len(members))
				for j, id := range members {
					names[j] = itemName(m, id)
				}
				fmt.Fprintf(w, "%d\t%s\n", i+1, strings.Join(names, ", "))
			}

			return nil
		},
	}
	cmd.Flags().IntVar(&restarts, "restarts", 4, "independent restarts")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().BoolVar(&apply, "apply", false, "write the matrix with clusters applied instead of a report")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file for --apply (default stdout)")

	return cmd
}
