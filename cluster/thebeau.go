package cluster

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// search is the mutable state of one run. Labels are slots 0..n-1; an empty
// slot is a free cluster.
type search struct {
	p      *Problem
	params Params
	rng    *rand.Rand
	assign []int
	sizes  []int
	cost   float64
	bids   []float64
}

// Run partitions p with the Thebeau bid heuristic.
//
// Each pass visits the items in a random order. An item collects a bid from
// every non-full cluster and from a fresh singleton:
//
//	bid(C) = (Σ_{j∈C} w(i,j))^PowDep / |C|^PowBid
//
// and moves to the highest bidder (with probability RandBid to the second
// highest). The move is kept when it lowers the coordination cost, or with
// probability RandAccept anyway. The best partition seen is returned.
//
// The search stops after Params.Passes passes, after StableLimit passes
// without a new best, or when ctx is done; cancellation is checked between
// passes and returns the best partition so far with Cancelled set.
//
// Complexity: O(Passes · n · n²) worst case.
func Run(ctx context.Context, p *Problem, params Params) (*Result, error) {
	if p == nil {
		return nil, ErrNilProblem
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, span := tracer.Start(ctx, "cluster.Run",
		trace.WithAttributes(
			attribute.Int("items", p.Len()),
			attribute.Int("passes_max", params.Passes),
			attribute.Int64("seed", params.Seed),
		),
	)
	defer span.End()
	began := time.Now()

	s := newSearch(p, params)
	best := append([]int(nil), s.assign...)
	bestCost := s.cost
	passes, moves, stable := 0, 0, 0
	cancelled := false

	for pass := 0; pass < params.Passes; pass++ {
		if ctx.Err() != nil {
			span.AddEvent("cancelled", trace.WithAttributes(attribute.Int("passes_done", passes)))
			cancelled = true

			break
		}
		improved := false
		for _, i := range s.rng.Perm(p.Len()) {
			if !s.bidFor(i) {
				continue
			}
			moves++
			if s.cost < bestCost {
				bestCost = s.cost
				copy(best, s.assign)
				improved = true
			}
		}
		passes++
		if improved {
			stable = 0
		} else {
			stable++
		}
		if params.StableLimit > 0 && stable >= params.StableLimit {
			span.AddEvent("stable")

			break
		}
	}

	res := newResult(p, best, bestCost)
	res.Passes, res.Moves, res.Cancelled = passes, moves, cancelled
	span.SetAttributes(
		attribute.Int("clusters", len(res.Clusters)),
		attribute.Float64("cost", res.Cost),
		attribute.Int("passes", passes),
		attribute.Int("moves", moves),
	)
	recordRunMetrics(ctx, time.Since(began), res)
	params.logger().Debug("cluster run finished",
		slog.Int("items", p.Len()),
		slog.Int("clusters", len(res.Clusters)),
		slog.Float64("cost", res.Cost),
		slog.Int("passes", passes),
		slog.Bool("cancelled", cancelled),
	)

	return res, nil
}

// newSearch seeds the state with singletons or the problem's seed partition.
func newSearch(p *Problem, params Params) *search {
	n := p.Len()
	s := &search{
		p:      p,
		params: params,
		rng:    rngFromSeed(params.Seed),
		assign: make([]int, n),
		bids:   make([]float64, n),
	}
	for i := range s.assign {
		s.assign[i] = i
	}
	if p.seed != nil && params.SeedFromGroupings {
		copy(s.assign, p.seed)
	}
	s.sizes = sizesOf(s.assign)
	s.cost = score(p, s.assign, s.sizes, params)

	return s
}

// bidFor runs the auction for item i and reports whether it moved.
func (s *search) bidFor(i int) bool {
	from := s.assign[i]
	sums := s.bids
	for c := range sums {
		sums[c] = 0
	}
	row := s.p.weights[i]
	for j, w := range row {
		if j != i && w != 0 {
			sums[s.assign[j]] += w
		}
	}

	first, second := -1, -1
	firstBid, secondBid, stayBid := math.Inf(-1), math.Inf(-1), math.Inf(-1)
	offer := func(c int, bid float64) {
		if c == from {
			stayBid = bid
		}
		switch {
		case bid > firstBid:
			second, secondBid = first, firstBid
			first, firstBid = c, bid
		case bid > secondBid:
			second, secondBid = c, bid
		}
	}
	singleton := -1
	for c, size := range s.sizes {
		members := size
		if c == from {
			members--
		}
		if members == 0 {
			if singleton < 0 && (c == from || s.sizes[from] > 1) {
				singleton = c
			}

			continue
		}
		if s.params.MaxClusterSize > 0 && c != from && members >= s.params.MaxClusterSize {
			continue
		}
		offer(c, math.Pow(sums[c], s.params.PowDep)/math.Pow(float64(members), s.params.PowBid))
	}
	if singleton >= 0 {
		offer(singleton, 0)
	}

	to := first
	if second >= 0 && s.rng.Float64() < s.params.RandBid {
		to = second
	} else if firstBid <= stayBid {
		return false
	}
	if to < 0 || to == from {
		return false
	}

	s.move(i, from, to)
	cost := score(s.p, s.assign, s.sizes, s.params)
	if cost < s.cost || s.rng.Float64() < s.params.RandAccept {
		s.cost = cost

		return true
	}
	s.move(i, to, from)

	return false
}

// move reassigns item i between slots.
func (s *search) move(i, from, to int) {
	s.assign[i] = to
	s.sizes[from]--
	s.sizes[to]++
}
