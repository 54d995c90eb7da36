// File: types.go
// Role: Params, Problem, Result and sentinel errors of the clustering engine.
//
// Determinism:
//   - A Problem lists items in a fixed order; Result labels clusters by
//     first appearance in that order.
//   - Equal Params (including Seed) on an equal Problem give equal Results.
//
// Concurrency:
//   - Problem is immutable after construction and may be shared by workers.

package cluster

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/dsm/core"
)

// Sentinel errors.
var (
	// ErrNotSymmetric indicates clustering was requested on a matrix that is
	// not Symmetric.
	ErrNotSymmetric = errors.New("cluster: matrix is not symmetric")

	// ErrNilProblem indicates a nil Problem was passed.
	ErrNilProblem = errors.New("cluster: problem is nil")

	// ErrInvalidParams wraps a Params validation failure.
	ErrInvalidParams = errors.New("cluster: invalid params")

	// ErrDimensionMismatch indicates weights or assignment do not match the
	// item count.
	ErrDimensionMismatch = errors.New("cluster: dimension mismatch")

	// ErrInvalidWeight indicates a negative or non-finite pair weight.
	ErrInvalidWeight = errors.New("cluster: invalid weight")

	// ErrStaleResult indicates a Result references items the matrix no
	// longer holds.
	ErrStaleResult = errors.New("cluster: result does not match matrix")
)

// Defaults.
const (
	DefaultPowCC        = 1.0
	DefaultExtraPenalty = 2.0
	DefaultPowDep       = 4.0
	DefaultPowBid       = 1.0
	DefaultRandAccept   = 0.05
	DefaultRandBid      = 0.05
	DefaultPasses       = 50
	DefaultStableLimit  = 5
)

// Params configures the coordination cost and the bid search.
type Params struct {
	// PowCC is the cluster-size exponent of the coordination cost.
	PowCC float64 `yaml:"pow_cc" json:"pow_cc" validate:"gte=0"`
	// ExtraPenalty multiplies the cost of weight crossing clusters.
	ExtraPenalty float64 `yaml:"extra_penalty" json:"extra_penalty" validate:"gte=1"`
	// PowDep is the exponent applied to the summed weight of a bid.
	PowDep float64 `yaml:"pow_dep" json:"pow_dep" validate:"gte=0"`
	// PowBid is the cluster-size exponent dividing a bid.
	PowBid float64 `yaml:"pow_bid" json:"pow_bid" validate:"gte=0"`
	// MaxClusterSize caps cluster membership; 0 means unlimited.
	MaxClusterSize int `yaml:"max_cluster_size" json:"max_cluster_size" validate:"gte=0"`
	// RandAccept is the probability of accepting a non-improving move.
	RandAccept float64 `yaml:"rand_accept" json:"rand_accept" validate:"gte=0,lte=1"`
	// RandBid is the probability of taking the second-highest bid.
	RandBid float64 `yaml:"rand_bid" json:"rand_bid" validate:"gte=0,lte=1"`
	// Passes bounds the number of passes over all items.
	Passes int `yaml:"passes" json:"passes" validate:"gte=1"`
	// StableLimit stops after this many passes without a new best; 0 disables.
	StableLimit int `yaml:"stable_limit" json:"stable_limit" validate:"gte=0"`
	// Seed selects the random stream; 0 uses a fixed default.
	Seed int64 `yaml:"seed" json:"seed"`
	// CountByWeight uses connection weights; false counts connections.
	CountByWeight bool `yaml:"count_by_weight" json:"count_by_weight"`
	// SeedFromGroupings starts from the current groupings instead of singletons.
	SeedFromGroupings bool `yaml:"seed_from_groupings" json:"seed_from_groupings"`
	// Logger receives run summaries; nil uses slog.Default().
	Logger *slog.Logger `yaml:"-" json:"-" validate:"-"`
}

// DefaultParams returns the default parameter set.
func DefaultParams() Params {
	return Params{
		PowCC:         DefaultPowCC,
		ExtraPenalty:  DefaultExtraPenalty,
		PowDep:        DefaultPowDep,
		PowBid:        DefaultPowBid,
		RandAccept:    DefaultRandAccept,
		RandBid:       DefaultRandBid,
		Passes:        DefaultPasses,
		StableLimit:   DefaultStableLimit,
		CountByWeight: true,
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func (p Params) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}

	return p.Logger
}

// Validate checks the struct tags of p.
func (p Params) Validate() error {
	validateOnce.Do(func() { validate = validator.New() })
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	for _, v := range []float64{p.PowCC, p.ExtraPenalty, p.PowDep, p.PowBid, p.RandAccept, p.RandBid} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value", ErrInvalidParams)
		}
	}

	return nil
}

// Problem is an immutable clustering input: n logical items and a
// symmetric n×n pair-weight matrix with a zero diagonal.
type Problem struct {
	items   []core.ID
	weights [][]float64
	seed    []int
}

// Len returns the number of items.
func (p *Problem) Len() int { return len(p.items) }

// Items returns a copy of the item ids in problem order.
func (p *Problem) Items() []core.ID { return append([]core.ID(nil), p.items...) }

// Weight returns the pair weight of items i and j (indices).
func (p *Problem) Weight(i, j int) float64 { return p.weights[i][j] }

// Result is the best partition a run found.
type Result struct {
	// Items is the problem's item order.
	Items []core.ID `json:"items"`
	// Assignment maps item index to cluster label 0..k-1, labels numbered
	// by first appearance.
	Assignment []int `json:"assignment"`
	// Clusters lists member ids per label.
	Clusters [][]core.ID `json:"clusters"`
	// Cost is the coordination score of Assignment.
	Cost float64 `json:"cost"`
	// Passes and Moves count the work done.
	Passes int `json:"passes"`
	Moves  int `json:"moves"`
	// Cancelled is set when the context ended the search early.
	Cancelled bool `json:"cancelled"`
}

// newResult normalizes assign and fills the derived fields.
func newResult(p *Problem, assign []int, cost float64) *Result {
	norm := normalize(assign)
	k := 0
	for _, c := range norm {
		if c+1 > k {
			k = c + 1
		}
	}
	clusters := make([][]core.ID, k)
	for i, c := range norm {
		clusters[c] = append(clusters[c], p.items[i])
	}

	return &Result{Items: p.Items(), Assignment: norm, Clusters: clusters, Cost: cost}
}

// normalize relabels clusters 0..k-1 by first appearance.
func normalize(assign []int) []int {
	out := make([]int, len(assign))
	labels := make(map[int]int)
	for i, c := range assign {
		l, ok := labels[c]
		if !ok {
			l = len(labels)
			labels[c] = l
		}
		out[i] = l
	}

	return out
}
