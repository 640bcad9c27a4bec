// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package quality implements the device quality-tier detector (C8 in
// the design): a single cached probe result, re-sampled only when the
// embedding application calls Resample (§4.8: "the detector itself holds
// no global timer, consistent with the no module-scope mutable state
// design note"). Signal collection is injected via the Probe interface
// so the detector depends on no concrete platform API, mirroring the
// teacher's environment-injection idiom used throughout §6.
package quality

import "github.com/galileo-glass/runtime/rtconfig"

// Tier is the coarse quality bucket consulted by C5/C6/C7 (§3:
// "ultra | high | medium | low | minimal").
type Tier int

const (
	TierMinimal Tier = iota
	TierLow
	TierMedium
	TierHigh
	TierUltra
)

// Capabilities is the fine-grained capability bitmap paired with Tier.
type Capabilities struct {
	Blur         bool
	Parallax     bool
	Particles    bool
	HeavyEasing  bool
}

// Probe supplies the raw signals the detector samples. A host
// application implements this over its real platform APIs (performance
// timing, navigator.connection, battery API, etc.); the detector itself
// never reaches for any of them directly.
type Probe interface {
	// BenchmarkScore runs (or returns a cached result of) a CPU/GPU
	// micro-benchmark, returning an implementation-defined score where
	// higher is more capable.
	BenchmarkScore() float64
	BatterySaver() bool
	DataSaver() bool
	// NetworkEffectiveType mirrors the Network Information API's
	// effective connection type: "slow-2g", "2g", "3g", "4g".
	NetworkEffectiveType() string
}

const storeKeyOverride = "quality.override"

// Detector is the single global probe with cache (§4.8). It does not
// animate; it is purely consulted.
type Detector struct {
	probe Probe
	store rtconfig.Store

	tier         Tier
	capabilities Capabilities
	forced       bool
	forcedTier   Tier

	listeners []func(Tier)
}

// NewDetector creates a Detector and runs an initial Resample.
func NewDetector(probe Probe, store rtconfig.Store) *Detector {

	d := &Detector{probe: probe, store: store}
	if v, ok := store.Get(storeKeyOverride); ok {
		if t, ok := parseTier(v); ok {
			d.forced = true
			d.forcedTier = t
		}
	}
	d.Resample()
	return d
}

// Resample re-runs the probe and recomputes tier/capabilities, notifying
// listeners if the effective tier changed. Callers trigger this on
// visibility or configuration change (§4.8).
func (d *Detector) Resample() {

	prev := d.effectiveTier()

	score := d.probe.BenchmarkScore()
	saver := d.probe.BatterySaver() || d.probe.DataSaver()
	network := d.probe.NetworkEffectiveType()

	tier := tierFromScore(score)
	if saver || network == "slow-2g" || network == "2g" {
		tier = downgrade(tier)
	}
	d.tier = tier
	d.capabilities = capabilitiesForTier(tier)

	next := d.effectiveTier()
	if next != prev {
		for _, l := range d.listeners {
			l(next)
		}
	}
}

func tierFromScore(score float64) Tier {
	switch {
	case score >= 0.85:
		return TierUltra
	case score >= 0.7:
		return TierHigh
	case score >= 0.35:
		return TierMedium
	case score >= 0.15:
		return TierLow
	default:
		return TierMinimal
	}
}

func downgrade(t Tier) Tier {
	if t == TierMinimal {
		return TierMinimal
	}
	return t - 1
}

func capabilitiesForTier(t Tier) Capabilities {
	switch t {
	case TierUltra:
		return Capabilities{Blur: true, Parallax: true, Particles: true, HeavyEasing: true}
	case TierHigh:
		return Capabilities{Blur: true, Parallax: true, Particles: true, HeavyEasing: true}
	case TierMedium:
		return Capabilities{Blur: true, Parallax: true, Particles: false, HeavyEasing: false}
	case TierLow:
		return Capabilities{Blur: true, Parallax: false, Particles: false, HeavyEasing: false}
	default:
		return Capabilities{}
	}
}

// GetQualityTier returns the effective tier: the manual override if one
// was forced, otherwise the last sampled value.
func (d *Detector) GetQualityTier() Tier {
	return d.effectiveTier()
}

// GetCapabilities returns the capability bitmap for the effective tier.
func (d *Detector) GetCapabilities() Capabilities {
	if d.forced {
		return capabilitiesForTier(d.forcedTier)
	}
	return d.capabilities
}

func (d *Detector) effectiveTier() Tier {
	if d.forced {
		return d.forcedTier
	}
	return d.tier
}

// ForceQualityTier pins the effective tier, persisting the override via
// the injected store. Passing nil restores detection (§6:
// "forceQualityTier(tier|null) (null restores detection)").
func (d *Detector) ForceQualityTier(tier *Tier) {

	prev := d.effectiveTier()
	if tier == nil {
		d.forced = false
		d.store.Delete(storeKeyOverride)
	} else {
		d.forced = true
		d.forcedTier = *tier
		d.store.Set(storeKeyOverride, tierName(*tier))
	}
	if next := d.effectiveTier(); next != prev {
		for _, l := range d.listeners {
			l(next)
		}
	}
}

// OnQualityChange subscribes to effective-tier transitions.
func (d *Detector) OnQualityChange(cb func(Tier)) func() {

	d.listeners = append(d.listeners, cb)
	idx := len(d.listeners) - 1
	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		d.listeners[idx] = func(Tier) {} // tombstone, keeps indices stable
	}
}

func tierName(t Tier) string {
	switch t {
	case TierUltra:
		return "ultra"
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	default:
		return "minimal"
	}
}

func parseTier(s string) (Tier, bool) {
	switch s {
	case "ultra":
		return TierUltra, true
	case "high":
		return TierHigh, true
	case "medium":
		return TierMedium, true
	case "low":
		return TierLow, true
	case "minimal":
		return TierMinimal, true
	default:
		return 0, false
	}
}
