// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orchestrator

import (
	"math"
	"sort"
)

// StaggerPattern selects how per-target stagger indices are assigned
// (§4.6 step 3).
type StaggerPattern int

const (
	StaggerSequential StaggerPattern = iota
	StaggerReverse
	StaggerFromCenter
	StaggerFromEdges
	StaggerWave
	StaggerCustom
)

// StaggerFunc computes the stagger index for target i of n, used only
// when Pattern == StaggerCustom.
type StaggerFunc func(i, n int) int

// staggerIndices returns, for each target position 0..n-1, the index i
// to use in `delay = baseDelay + staggerDelay*i` (§4.6 step 3).
func staggerIndices(pattern StaggerPattern, n int, custom StaggerFunc) []int {

	indices := make([]int, n)

	switch pattern {
	case StaggerSequential:
		for i := range indices {
			indices[i] = i
		}
	case StaggerReverse:
		for i := range indices {
			indices[i] = n - 1 - i
		}
	case StaggerFromCenter:
		indices = denseRanksByKey(n, func(i int) float64 { return math.Abs(float64(i) - mid(n)) })
	case StaggerFromEdges:
		indices = denseRanksByKey(n, func(i int) float64 { return -math.Abs(float64(i) - mid(n)) })
	case StaggerWave:
		const omega = 0.9
		indices = denseRanksByKey(n, func(i int) float64 { return float64(i) * math.Sin(float64(i)*omega) })
	case StaggerCustom:
		for i := range indices {
			if custom != nil {
				indices[i] = custom(i, n)
			} else {
				indices[i] = i
			}
		}
	}
	return indices
}

func mid(n int) float64 {
	return float64(n-1) / 2
}

// argsortByKey returns the permutation of 0..n-1 sorted ascending by key(i).
func argsortByKey(n int, key func(int) float64) []int {

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return key(order[a]) < key(order[b])
	})
	return order
}

// denseRanksByKey returns, for each position 0..n-1, its dense rank by
// ascending key(i): positions with equal key share the same rank
// (§4.6 step 3's "from-center"/"from-edges" patterns require symmetric
// targets to start together, not at sequentially distinct delays).
func denseRanksByKey(n int, key func(int) float64) []int {

	order := argsortByKey(n, key)
	ranks := make([]int, n)
	rank := 0
	for i, pos := range order {
		if i > 0 && key(order[i-1]) != key(pos) {
			rank++
		}
		ranks[pos] = rank
	}
	return ranks
}
