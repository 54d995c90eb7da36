package cluster

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// RunRestarts runs k independent searches over the shared, immutable p and
// returns the lowest-cost result (ties: lowest restart index). Restart r
// uses the seed deriveSeed(params.Seed, r), so the outcome does not depend
// on scheduling. At most GOMAXPROCS restarts run at once.
//
// Cancellation propagates to every restart; the result is then the best
// partition found so far, with Cancelled set.
func RunRestarts(ctx context.Context, p *Problem, params Params, k int) (*Result, error) {
	if p == nil {
		return nil, ErrNilProblem
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: restarts must be >= 1 (%d)", ErrInvalidParams, k)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, span := tracer.Start(ctx, "cluster.RunRestarts",
		trace.WithAttributes(attribute.Int("restarts", k), attribute.Int("items", p.Len())),
	)
	defer span.End()

	results := make([]*Result, k)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for r := 0; r < k; r++ {
		g.Go(func() error {
			rp := params
			rp.Seed = deriveSeed(params.Seed, uint64(r))
			res, err := Run(gCtx, p, rp)
			if err != nil {
				return err
			}
			results[r] = res

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := results[0]
	for _, res := range results[1:] {
		if res.Cost < best.Cost {
			best = res
		}
	}
	span.SetAttributes(attribute.Float64("cost", best.Cost))
	params.logger().Debug("cluster restarts finished",
		slog.Int("restarts", k),
		slog.Float64("cost", best.Cost),
	)

	return best, nil
}
