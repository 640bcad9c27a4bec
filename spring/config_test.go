// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDampingRatioIsFriction(t *testing.T) {

	cfg := Config{Tension: 170, Friction: 0.8, Mass: 1}
	assert.Equal(t, 0.8, cfg.DampingRatio())
}

func TestConfigNaturalFrequency(t *testing.T) {

	cfg := Config{Tension: 400, Friction: 1, Mass: 1}
	assert.InDelta(t, 20.0, cfg.NaturalFrequency(), 1e-9)
}

func TestConfigOvershootBoundIsZeroAtCriticalDamping(t *testing.T) {

	cfg := Config{Tension: 170, Friction: 1.0, Mass: 1}
	assert.InDelta(t, 0, cfg.OvershootBound(), 1e-9)
}

func TestConfigOvershootBoundIsPositiveWhenUnderdamped(t *testing.T) {

	cfg := Config{Tension: 180, Friction: 0.4, Mass: 1}
	bound := cfg.OvershootBound()
	assert.Greater(t, bound, 0.0)
	assert.Less(t, bound, 1.0)
}

func TestConfigDefaultsMassToOne(t *testing.T) {

	cfg := Config{Tension: 170, Friction: 0.8}
	assert.Equal(t, 1.0, cfg.mass())
}

func TestPresetsAreValid(t *testing.T) {

	presets := []Config{Default(), Gentle(), Wobbly(), Stiff(), Slow(), Modal(), Press()}
	for _, p := range presets {
		assert.Greater(t, p.Tension, 0.0)
		assert.GreaterOrEqual(t, p.Friction, 0.0)
		assert.False(t, math.IsNaN(p.OvershootBound()))
	}
}
