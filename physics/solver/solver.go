// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solver implements the iterative constraint solve step of the
// physics engine's tick (§4.3.3): a fixed number of sequential
// Gauss-Seidel passes over every active constraint, grounded on the
// teacher's physics/solver package but reduced from the teacher's
// velocity-space Jacobian solve (physics/solver/gs.go,
// physics/equation/*) to direct per-constraint Solve calls, matching the
// simplified constraint.Constraint interface.
package solver

// Solvable is anything the solver can iterate: physics/constraint's
// Constraint interface shape, restated here so this package does not
// need to import constraint (kept import-cycle-free and reusable for
// any future constraint kind).
type Solvable interface {
	ID() string
	Solve(dt float64)
}

// DefaultIterations is the default Gauss-Seidel pass count (§4.3.3).
const DefaultIterations = 10

// Solver runs a fixed number of Gauss-Seidel sweeps over a set of
// constraints each tick.
type Solver struct {
	Iterations int
}

// New creates a Solver with the default iteration count.
func New() *Solver {
	return &Solver{Iterations: DefaultIterations}
}

// Solve runs s.Iterations sweeps over constraints, calling Solve(dt) on
// each in order every sweep. Order is stable (the order constraints are
// passed in) to keep results deterministic across ticks.
func (s *Solver) Solve(constraints []Solvable, dt float64) {

	iterations := s.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	for i := 0; i < iterations; i++ {
		for _, c := range constraints {
			c.Solve(dt)
		}
	}
}
