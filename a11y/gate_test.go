// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package a11y

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/galileo-glass/runtime/rtconfig"
)

func TestGateNoneCollapsesDecorativeAndFeedback(t *testing.T) {

	g := NewGate(rtconfig.NewMapStore())

	for _, cat := range []Category{CategoryDecorative, CategoryFeedback} {
		req := g.Apply(AnimationRequest{Category: cat, DurationMs: 300})
		assert.True(t, req.Collapse)
	}

	req := g.Apply(AnimationRequest{Category: CategoryEssential, DurationMs: 300})
	assert.False(t, req.Collapse)
}

func TestGateLowScalesDurationAndDisablesEffects(t *testing.T) {

	g := NewGate(rtconfig.NewMapStore())
	g.SetMotionPolicy(Policy{Sensitivity: SensitivityLow})

	req := g.Apply(AnimationRequest{Category: CategoryEntrance, DurationMs: 300})

	assert.InDelta(t, 210, req.DurationMs, 1e-9)
	assert.True(t, req.DisableParallax)
	assert.True(t, req.DisableTilt)
	assert.True(t, req.DisableParticleSpawn)
	assert.False(t, req.Collapse)
}

func TestGateMediumScalesDurationHalf(t *testing.T) {

	g := NewGate(rtconfig.NewMapStore())
	g.SetMotionPolicy(Policy{Sensitivity: SensitivityMedium})

	req := g.Apply(AnimationRequest{Category: CategoryTransition, DurationMs: 300})

	assert.InDelta(t, 150, req.DurationMs, 1e-9)
}

func TestGateHighFallsBackOrCollapsesNonEssential(t *testing.T) {

	g := NewGate(rtconfig.NewMapStore())
	g.SetMotionPolicy(Policy{Sensitivity: SensitivityHigh})

	withFallback := g.Apply(AnimationRequest{Category: CategoryEntrance, FallbackAvailable: true})
	assert.True(t, withFallback.UseFadeFallback)
	assert.False(t, withFallback.Collapse)

	withoutFallback := g.Apply(AnimationRequest{Category: CategoryEntrance, FallbackAvailable: false})
	assert.True(t, withoutFallback.Collapse)

	essential := g.Apply(AnimationRequest{Category: CategoryEssential})
	assert.False(t, essential.Collapse)
	assert.False(t, essential.UseFadeFallback)
}

func TestGatePrefersReducedMotionOverridesEvenSensitivityNone(t *testing.T) {

	g := NewGate(rtconfig.NewMapStore())
	g.SetMotionPolicy(Policy{Sensitivity: SensitivityNone, PrefersReducedMotion: true})

	req := g.Apply(AnimationRequest{Category: CategoryEntrance, FallbackAvailable: true})
	assert.True(t, req.UseFadeFallback)
}

func TestGatePolicyPersistsAcrossGateInstances(t *testing.T) {

	store := rtconfig.NewMapStore()
	g1 := NewGate(store)
	g1.SetMotionPolicy(Policy{Sensitivity: SensitivityHigh, PrefersReducedMotion: true})

	g2 := NewGate(store)
	assert.Equal(t, Policy{Sensitivity: SensitivityHigh, PrefersReducedMotion: true}, g2.GetMotionPolicy())
}

func TestGateCategoryDefaultAppliesBeforeSensitivity(t *testing.T) {

	g := NewGate(rtconfig.NewMapStore())
	g.RegisterAnimationCategoryDefault(CategoryEntrance, CategoryDefault{DurationMultiplier: 2})

	req := g.Apply(AnimationRequest{Category: CategoryEntrance, DurationMs: 100})
	assert.InDelta(t, 200, req.DurationMs, 1e-9)
}
