// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orchestrator

import "github.com/galileo-glass/runtime/a11y"

// PropertySet is a named set of numeric property values — the
// generalization of the teacher's single-channel keyframe value into
// the spec's "interpolate each property" per-stage batch.
type PropertySet map[string]float64

// StageConfig describes one node in the sequence's dependency DAG.
type StageConfig struct {
	ID     string `validate:"required"`
	Target string `validate:"required"`

	DependsOn []string

	Delay    float64 `validate:"gte=0"` // ms, added after dependency completion
	Duration float64 `validate:"gte=0"` // ms

	Easing Easing // defaults to Linear if nil

	// From is resolved at first frame from the live computed style if
	// nil (§4.6 step 2).
	From PropertySet
	To   PropertySet `validate:"required"`

	Category a11y.Category
}

// ExpandStagger builds N StageConfig values from a template by fanning
// targets out with a per-target delay of baseDelay + staggerDelay*i,
// where i is assigned by pattern (§4.6 step 3). The template's own ID is
// used as a prefix; Target and ID are set per-instance.
func ExpandStagger(template StageConfig, targets []string, pattern StaggerPattern, baseDelay, staggerDelay float64, custom StaggerFunc) []StageConfig {

	indices := staggerIndices(pattern, len(targets), custom)

	out := make([]StageConfig, len(targets))
	for pos, target := range targets {
		cfg := template
		cfg.Target = target
		cfg.ID = template.ID + ":" + target
		cfg.Delay = baseDelay + staggerDelay*float64(indices[pos])
		out[pos] = cfg
	}
	return out
}

type stageRuntime struct {
	cfg StageConfig

	startTime float64

	fromResolved bool
	resolvedFrom PropertySet

	completed bool
	skipped   bool
}

func (s *stageRuntime) easing() Easing {
	if s.cfg.Easing != nil {
		return s.cfg.Easing
	}
	return Linear
}

func (s *stageRuntime) endTime() float64 {
	return s.startTime + s.cfg.Duration
}
