package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dsm/core"
	"github.com/katalvlaran/dsm/grid"
	"github.com/katalvlaran/dsm/propagation"
)

func propagateCmd() *cobra.Command {
	var (
		start     string
		levels    int
		minWeight float64
		mode      string
		exclude   []string
		totals    bool
	)
	cmd := &cobra.Command{
		Use:   "propagate <file>",
		Short: "Score the items reached from one item level by level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMatrix(cmd, args[0])
			if err != nil {
				return err
			}
			from, err := resolveItem(m, start)
			if err != nil {
				return err
			}
			opts := append(cfg.PropagationOptions(), propagation.WithContext(cmd.Context()), propagation.WithLogger(logger))
			if cmd.Flags().Changed("levels") {
				opts = append(opts, propagation.WithLevels(levels))
			}
			if cmd.Flags().Changed("min-weight") {
				opts = append(opts, propagation.WithMinWeight(minWeight))
			}
			if cmd.Flags().Changed("mode") {
				md, err := propagation.ParseMode(mode)
				if err != nil {
					return err
				}
				opts = append(opts, propagation.WithMode(md))
			}
			if len(exclude) > 0 {
				ids := make([]core.ID, 0, len(exclude))
				for _, ref := range exclude {
					id, err := resolveItem(m, ref)
					if err != nil {
						return err
					}
					ids = append(ids, id)
				}
				opts = append(opts, propagation.WithExclusions(ids...))
			}

			res, err := propagation.Analyze(m, from, opts...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if totals {
				for _, s := range res.Ranked() {
					fmt.Fprintf(out, "%s\t%s\n", itemName(m, s.Item), grid.FormatNumber(s.Value))
				}

				return nil
			}
			for level := 1; level <= len(res.Levels); level++ {
				fmt.Fprintln(out, styles.Title.Render(fmt.Sprintf("level %d", level)))
				scores := res.Levels[level]
				ids := make([]core.ID, 0, len(scores))
				for id := range scores {
					ids = append(ids, id)
				}
				sort.Slice(ids, func(i, j int) bool {
					if scores[ids[i]] != scores[ids[j]] {
						return scores[ids[i]] > scores[ids[j]]
					}

					return ids[i] < ids[j]
				})
				for _, id := range ids {
					fmt.Fprintf(out, "  %s\t%s\n", itemName(m, id), grid.FormatNumber(scores[id]))
				}
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "start item (name or id)")
	cmd.Flags().IntVar(&levels, "levels", propagation.DefaultLevels, "number of levels")
	cmd.Flags().Float64Var(&minWeight, "min-weight", 0, "ignore connections lighter than this")
	cmd.Flags().StringVar(&mode, "mode", "weight", "aggregation: weight or count")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "items that score but do not propagate")
	cmd.Flags().BoolVar(&totals, "totals", false, "print scores summed across levels")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}
