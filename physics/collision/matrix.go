// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package collision implements broad- and pair-tracking data structures
// shared by the physics engine: the contact matrix used to diff
// consecutive ticks' collision sets, and the spatial-hash broad phase.
package collision

// Matrix tracks which pairs of bodies are currently colliding. It is
// grounded on the teacher's triangular collision.Matrix
// (physics/collision/matrix.go), generalized from positional body
// indices — which the teacher could use because it owned body
// compaction — to the spec's caller-supplied, non-compactable string ids.
type Matrix struct {
	pairs map[pairKey]bool
}

type pairKey struct {
	a, b string
}

func key(a, b string) pairKey {

	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// NewMatrix creates an empty collision Matrix.
func NewMatrix() *Matrix {

	return &Matrix{pairs: make(map[pairKey]bool)}
}

// Set records whether a and b are currently colliding.
func (m *Matrix) Set(a, b string, colliding bool) {

	k := key(a, b)
	if colliding {
		m.pairs[k] = true
	} else {
		delete(m.pairs, k)
	}
}

// Get reports whether a and b were recorded as colliding.
func (m *Matrix) Get(a, b string) bool {

	return m.pairs[key(a, b)]
}

// Pairs returns every currently-colliding pair, each as (a, b) with a < b.
func (m *Matrix) Pairs() [][2]string {

	out := make([][2]string, 0, len(m.pairs))
	for k := range m.pairs {
		out = append(out, [2]string{k.a, k.b})
	}
	return out
}
