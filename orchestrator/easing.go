// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package orchestrator implements the declarative stage-sequence
// scheduler (C6 in the design). It generalizes the teacher's
// animation.Animation/animation.IChannel (a single numeric timeline
// driving a list of keyframe channels) into a dependency-ordered stage
// DAG with staggering, keeping the teacher's pause/loop/time-wrap
// handling in Sequence's tick and its "animations can span multiple
// objects and properties" channel model in the per-tick write batch.
package orchestrator

import "math"

// Easing maps normalized progress u in [0,1] to eased progress in [0,1].
type Easing func(u float64) float64

// Linear is the identity easing.
func Linear(u float64) float64 { return u }

// EaseInQuad accelerates from zero.
func EaseInQuad(u float64) float64 { return u * u }

// EaseOutQuad decelerates to zero.
func EaseOutQuad(u float64) float64 { return u * (2 - u) }

// EaseInOutQuad accelerates then decelerates.
func EaseInOutQuad(u float64) float64 {
	if u < 0.5 {
		return 2 * u * u
	}
	return -1 + (4-2*u)*u
}

// EaseOutElastic overshoots and settles, for "wobbly"-style stages.
func EaseOutElastic(u float64) float64 {
	if u == 0 || u == 1 {
		return u
	}
	const p = 0.3
	return math.Pow(2, -10*u)*math.Sin((u-p/4)*(2*math.Pi)/p) + 1
}
