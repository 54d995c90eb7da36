package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dsm/builder"
	"github.com/katalvlaran/dsm/core"
	"github.com/katalvlaran/dsm/matrix"
)

// Shapes accepted by generate.
const (
	shapeSparse = "sparse"
	shapeBlocks = "blocks"
	shapeChain  = "chain"
)

func generateCmd() *cobra.Command {
	var (
		variant   string
		shape     string
		n         int
		p         float64
		k, size   int
		pIn, pOut float64
		seed      int64
		minW      int
		maxW      int
		prefix    string
		title     string
		out       string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a generated fixture matrix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := matrix.ParseVariant(variant)
			if err != nil {
				return err
			}
			var con builder.Constructor
			switch shape {
			case shapeSparse:
				con = builder.RandomSparse(n, p)
			case shapeBlocks:
				con = builder.Blocks(k, size, pIn, pOut)
			case shapeChain:
				con = builder.Chain(n)
			default:
				return fmt.Errorf("unknown shape %q (want %s, %s or %s)", shape, shapeSparse, shapeBlocks, shapeChain)
			}
			if minW < 0 || maxW < minW {
				return fmt.Errorf("weights: need 0 <= min-weight <= max-weight, got %d..%d", minW, maxW)
			}
			opts := []builder.BuilderOption{
				builder.WithSeed(seed),
				builder.WithIntegerWeight(minW, maxW),
				builder.WithMatrixOptions(matrix.WithLogger(logger), matrix.WithMetadata(matrix.Metadata{Title: title})),
			}
			if prefix != "" {
				opts = append(opts, builder.WithPrefixNames(prefix))
			}
			m, err := builder.Build(core.NewSession(), v, opts, con)
			if err != nil {
				return err
			}

			return writeMatrix(cmd, out, m)
		},
	}
	cmd.Flags().StringVar(&variant, "variant", "symmetric", "symmetric, asymmetric or multi-domain")
	cmd.Flags().StringVar(&shape, "shape", shapeSparse, "sparse, blocks or chain")
	cmd.Flags().IntVar(&n, "n", 10, "items (sparse, chain)")
	cmd.Flags().Float64Var(&p, "p", 0.2, "connection probability (sparse)")
	cmd.Flags().IntVar(&k, "k", 3, "blocks (blocks)")
	cmd.Flags().IntVar(&size, "size", 4, "items per block (blocks)")
	cmd.Flags().Float64Var(&pIn, "p-in", 0.8, "intra-block probability (blocks)")
	cmd.Flags().Float64Var(&pOut, "p-out", 0.05, "inter-block probability (blocks)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().IntVar(&minW, "min-weight", 1, "smallest connection weight")
	cmd.Flags().IntVar(&maxW, "max-weight", 9, "largest connection weight")
	cmd.Flags().StringVar(&prefix, "prefix", "", "item name prefix (default E1, E2, ...)")
	cmd.Flags().StringVar(&title, "title", "generated", "document title")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	return cmd
}
