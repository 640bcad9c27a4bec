// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package spring implements the critically-damped spring primitives (C4
// in the design): a scalar spring and an N-axis vector spring sharing
// one config, directly grounded on
// sarat-asymmetrica-foldvedic/engines/spring.go's SpringState/
// SpringConfig/preset-function pattern. Unlike that teacher, Friction
// here is expressed as a damping *ratio* (1.0 == critically damped)
// rather than a raw damping coefficient, per the spec's published law
// `c = friction * 2*sqrt(mass*tension)`.
package spring

import "math"

// Config is the shared spring law: F = -k(x-target) - c*v, k = Tension,
// c = Friction * 2*sqrt(Mass*Tension).
type Config struct {
	Tension  float64 `validate:"gt=0"`
	Friction float64 `validate:"gte=0"`
	Mass     float64 `validate:"omitempty,gt=0"`
}

func (c Config) mass() float64 {
	if c.Mass <= 0 {
		return 1
	}
	return c.Mass
}

// dampingCoefficient returns the raw c used by the integrator.
func (c Config) dampingCoefficient() float64 {
	return c.Friction * 2 * math.Sqrt(c.mass()*c.Tension)
}

// NaturalFrequency returns ω₀ = sqrt(k/m), in rad/s.
func (c Config) NaturalFrequency() float64 {
	return math.Sqrt(c.Tension / c.mass())
}

// DampingRatio returns ζ. Because Friction is already expressed as a
// ratio of critical damping, ζ == Friction; this method exists so
// callers reason in ζ terminology without depending on the field name.
func (c Config) DampingRatio() float64 {
	return c.Friction
}

// OvershootBound returns the fraction of a step's magnitude that an
// underdamped spring (ζ<1) may overshoot by: e^(-ζπ/√(1-ζ²)). Overdamped
// and critically damped springs (ζ>=1) never overshoot and this returns
// 0 (§8 overshoot-bound testable property).
func (c Config) OvershootBound() float64 {
	zeta := c.DampingRatio()
	if zeta >= 1 {
		return 0
	}
	return math.Exp(-zeta * math.Pi / math.Sqrt(1-zeta*zeta))
}

// Named presets (§4.4: "Presets: default, gentle, wobbly, stiff, slow,
// modal, press with published tension/friction pairs"). Values are this
// runtime's own published constants, not carried over from the teacher's
// raw-damping-coefficient presets (Bouncy/Smooth/Stiff/Gentle), since
// Friction is scaled differently here (a ratio, not Ns/m).

// Default is a lightly underdamped, general-purpose preset.
func Default() Config { return Config{Tension: 170, Friction: 0.8, Mass: 1} }

// Gentle is critically damped with low tension: slow, smooth, no overshoot.
func Gentle() Config { return Config{Tension: 120, Friction: 1.0, Mass: 1} }

// Wobbly is underdamped with visible oscillation.
func Wobbly() Config { return Config{Tension: 180, Friction: 0.4, Mass: 1} }

// Stiff is lightly underdamped with high tension: fast, precise tracking.
func Stiff() Config { return Config{Tension: 210, Friction: 0.9, Mass: 1} }

// Slow is critically damped with low tension: a slow, deliberate settle.
func Slow() Config { return Config{Tension: 60, Friction: 1.0, Mass: 1} }

// Modal is slightly overdamped: no overshoot, appropriate for dialogs
// and other chrome where bounce reads as unserious.
func Modal() Config { return Config{Tension: 170, Friction: 1.2, Mass: 1} }

// Press is a fast, lightly underdamped preset for tactile feedback
// (button press/release).
func Press() Config { return Config{Tension: 500, Friction: 0.9, Mass: 1} }
