// SPDX-License-Identifier: MIT
// Package: dsm/builder
//
// api.go - public entry point of the builder package.
//
// Design contract:
//   - One orchestrator: Build(session, variant, bopts, cons...). Creates the
//     matrix, resolves cfg, runs cons in order.
//   - Functional options resolve into an immutable builderConfig.
//   - Determinism: same inputs, options, seed and constructor order give
//     identical documents (ids included, for a fresh session).
//   - Constructors never panic; they return sentinel errors.

package builder

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dsm/core"
	"github.com/katalvlaran/dsm/matrix"
)

// Constructor adds items and connections to m using the resolved config.
// Item names continue the global index, so composed constructors never
// reuse a name.
type Constructor func(m *matrix.Matrix, cfg builderConfig) error

// Build creates a matrix of the given variant in session (a fresh session
// when nil), applies every constructor in order and returns the result with
// an empty undo history. Any constructor error is wrapped with "Build: %w"
// and no matrix is returned.
func Build(session *core.Session, variant matrix.Variant, bopts []BuilderOption, cons ...Constructor) (*matrix.Matrix, error) {
	cfg := newBuilderConfig(bopts...)
	if session == nil {
		session = core.NewSession()
	}
	m, err := matrix.New(session, variant, cfg.matrixOpts...)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err = fn(m, cfg); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}

	// Fixtures start without the construction steps on the undo stack.
	fresh, err := matrix.Load(session, m.Document(), cfg.matrixOpts...)
	if err != nil {
		return nil, fmt.Errorf("Build: reload: %w", err)
	}

	return fresh, nil
}

// slots holds the row and column records of freshly added logical items:
// rows[i] and cols[i] are the two sides of item i. For aliased variants
// cols[i] is the alias of rows[i]; for Asymmetric they are independent
// records sharing a name.
type slots struct {
	rows []core.ID
	cols []core.ID
}

// addItems appends n logical items to m. In a MultiDomain matrix a
// non-empty domain names the domain they join (created on first use).
func addItems(method string, m *matrix.Matrix, cfg builderConfig, n int, domain string) (slots, error) {
	base := len(m.Rows())
	s := slots{rows: make([]core.ID, n), cols: make([]core.ID, n)}
	for i := 0; i < n; i++ {
		name := cfg.nameFn(base + i)
		var (
			row, col core.ID
			err      error
		)
		switch {
		case !m.Variant().Aliased():
			if row, err = m.CreateItem(core.RoleRow, name); err == nil {
				col, err = m.CreateItem(core.RoleCol, name)
			}
		case domain != "" && m.Variant() == matrix.MultiDomain:
			row, err = m.CreateDomainItem(domain, name)
		default:
			row, err = m.CreateItem(core.RoleRow, name)
		}
		if err != nil {
			return slots{}, fmt.Errorf("%s: add %q: %w: %w", method, name, ErrConstructFailed, err)
		}
		if m.Variant().Aliased() {
			it, _ := m.Item(row)
			col = it.Alias
		}
		s.rows[i], s.cols[i] = row, col
	}

	return s, nil
}

// connect links row side of item i to column side of item j with a weight
// drawn from cfg. The caller excludes i == j for aliased variants.
func connect(method string, m *matrix.Matrix, cfg builderConfig, s slots, i, j int) error {
	w := cfg.weightFn(cfg.rng)
	if err := m.ModifyConnection(s.rows[i], s.cols[j], "", w, cfg.interfaces); err != nil {
		return fmt.Errorf("%s: connect %d→%d: %w: %w", method, i, j, ErrConstructFailed, err)
	}

	return nil
}

// trial is one Bernoulli draw with probability p. Without an rng only the
// certain outcomes p ∈ {0,1} are defined; callers validate that beforehand.
func trial(cfg builderConfig, p float64) bool {
	if cfg.rng == nil {
		return p >= probMax
	}

	return cfg.rng.Float64() < p
}

// Probability domain shared by the stochastic constructors.
const (
	probMin = 0.0
	probMax = 1.0
)

// validateProbability checks p ∈ [0,1] and that an rng is present when the
// outcome is not certain.
func validateProbability(method string, cfg builderConfig, ps ...float64) error {
	for _, p := range ps {
		if p < probMin || p > probMax || math.IsNaN(p) {
			return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w", method, p, probMin, probMax, ErrInvalidProbability)
		}
		if cfg.rng == nil && p > probMin && p < probMax {
			return fmt.Errorf("%s: %w", method, ErrNeedRandSource)
		}
	}

	return nil
}
