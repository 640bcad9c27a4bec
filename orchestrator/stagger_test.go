// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaggerSequential(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3}, staggerIndices(StaggerSequential, 4, nil))
}

func TestStaggerReverse(t *testing.T) {
	assert.Equal(t, []int{3, 2, 1, 0}, staggerIndices(StaggerReverse, 4, nil))
}

func TestStaggerFromCenterIsSymmetric(t *testing.T) {
	indices := staggerIndices(StaggerFromCenter, 5, nil)
	// position 2 is the center (mid = 2), so it gets rank 0 (earliest).
	assert.Equal(t, 0, indices[2])
	// the two positions one step from center (1 and 3) are equidistant
	// and must share a rank, not be broken into sequentially distinct
	// ranks.
	assert.Equal(t, indices[1], indices[3])
	assert.Equal(t, 1, indices[1])
	// likewise the two endpoints (0 and 4), the furthest from center.
	assert.Equal(t, indices[0], indices[4])
	assert.Equal(t, 2, indices[0])
}

func TestStaggerFromCenterMatchesFiveTargetDelayScenario(t *testing.T) {
	// 5 targets, staggerDelay=80: the spec's symmetric expectation is
	// delays {160, 80, 0, 80, 160}, i.e. equidistant targets fire
	// together rather than at sequentially offset times.
	template := StageConfig{ID: "pulse", Duration: 200, To: PropertySet{"opacity": 1}}
	targets := []string{"t0", "t1", "t2", "t3", "t4"}
	stages := ExpandStagger(template, targets, StaggerFromCenter, 0, 80, nil)

	want := []float64{160, 80, 0, 80, 160}
	for i, sc := range stages {
		assert.Equal(t, want[i], sc.Delay, "target %d", i)
	}
}

func TestStaggerFromEdgesStartsAtTheExtremes(t *testing.T) {
	edges := staggerIndices(StaggerFromEdges, 5, nil)
	// the two endpoints are furthest from center and should share the
	// lowest rank; the center position (index 2) should receive the
	// highest rank, the mirror of StaggerFromCenter.
	assert.Equal(t, edges[0], edges[4])
	assert.Equal(t, 0, edges[0])
	assert.Equal(t, edges[1], edges[3])
	assert.Equal(t, 1, edges[1])
	assert.Equal(t, 2, edges[2])
}

func TestStaggerWaveIsAPermutation(t *testing.T) {
	indices := staggerIndices(StaggerWave, 7, nil)
	seen := make(map[int]bool)
	for _, i := range indices {
		assert.False(t, seen[i], "wave stagger must assign each rank exactly once")
		seen[i] = true
	}
	assert.Len(t, seen, 7)
}

func TestStaggerCustom(t *testing.T) {
	fn := func(i, n int) int { return n - 1 - i }
	assert.Equal(t, []int{2, 1, 0}, staggerIndices(StaggerCustom, 3, fn))
}

func TestStaggerCustomNilFallsBackToIdentity(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, staggerIndices(StaggerCustom, 3, nil))
}

func TestExpandStaggerAssignsDelaysAndTargets(t *testing.T) {

	template := StageConfig{ID: "fade-in", Duration: 200, To: PropertySet{"opacity": 1}}
	stages := ExpandStagger(template, []string{"a", "b", "c"}, StaggerSequential, 0, 50, nil)

	assert.Len(t, stages, 3)
	assert.Equal(t, "a", stages[0].Target)
	assert.Equal(t, "fade-in:a", stages[0].ID)
	assert.Equal(t, 0.0, stages[0].Delay)
	assert.Equal(t, 50.0, stages[1].Delay)
	assert.Equal(t, 100.0, stages[2].Delay)
}
