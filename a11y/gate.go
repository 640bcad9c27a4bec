// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package a11y implements the accessibility / motion-sensitivity gate
// (C7 in the design): a pure request-rewrite function consulted by the
// runtime facade's sequence, spring and interaction constructors before
// anything is constructed or validated. Engine construction and the
// physics/spring/orchestrator packages themselves do not consult it.
// Policy persistence is grounded on rtconfig.Store so the override
// survives process-external persistence without this package depending
// on a concrete storage backend, mirroring the teacher's pattern of
// injecting environment concerns rather than reaching for globals.
package a11y

import (
	"github.com/galileo-glass/runtime/rtconfig"
	"gopkg.in/yaml.v3"
)

// Sensitivity is the per-app motion-sensitivity override (§4.7).
type Sensitivity int

const (
	SensitivityNone Sensitivity = iota
	SensitivityLow
	SensitivityMedium
	SensitivityHigh
)

// Category tags the purpose of an animation request, used by the gate's
// mapping rules (§4.7).
type Category int

const (
	CategoryEssential Category = iota
	CategoryTransition
	CategoryFeedback
	CategoryDecorative
	CategoryEntrance
	CategoryExit
)

// AnimationRequest is the shape the gate rewrites. The runtime facade's
// gated constructors pass one of these through Apply before validating or
// constructing anything, and use the rewritten result instead of the
// caller's original request.
type AnimationRequest struct {
	Category Category

	// DurationMs is the requested duration; the gate may scale it.
	DurationMs float64

	// Collapse, if true after Apply, means the caller should skip
	// constructing the animated path entirely and jump directly to the
	// End/To state (§4.7: "collapse to static").
	Collapse bool

	// UseFadeFallback is set instead of Collapse when a fade/static
	// alternative was provided by the caller (FallbackAvailable) and
	// sensitivity=high downgrades a non-essential category to it.
	UseFadeFallback bool

	// FallbackAvailable tells the gate whether a fade/static alternative
	// exists for this request; if not, sensitivity=high omits the
	// animation outright (Collapse=true, UseFadeFallback=false).
	FallbackAvailable bool

	DisableParallax     bool
	DisableTilt          bool
	DisableParticleSpawn bool
}

// Policy is the current process-wide motion policy. A change applies to
// every Apply call made after it; requests already rewritten keep their
// result.
type Policy struct {
	PrefersReducedMotion bool
	Sensitivity          Sensitivity
}

const storeKeyPolicy = "a11y.policy"
const storeKeyCategoryPrefix = "a11y.categoryDefault."

// Gate owns the process-wide policy and per-category duration defaults,
// backed by an injected rtconfig.Store.
type Gate struct {
	store  rtconfig.Store
	policy Policy
}

// NewGate creates a Gate backed by store. If store already has a
// persisted policy under storeKeyPolicy, it is loaded; otherwise the
// gate starts with SensitivityNone / PrefersReducedMotion=false.
func NewGate(store rtconfig.Store) *Gate {

	g := &Gate{store: store}
	if v, ok := store.Get(storeKeyPolicy); ok {
		var p Policy
		if yaml.Unmarshal([]byte(v), &p) == nil {
			g.policy = p
		}
	}
	return g
}

// SetMotionPolicy updates the process-wide policy (§6).
func (g *Gate) SetMotionPolicy(p Policy) {
	g.policy = p
	if data, err := yaml.Marshal(p); err == nil {
		g.store.Set(storeKeyPolicy, string(data))
	}
}

// GetMotionPolicy returns the current policy.
func (g *Gate) GetMotionPolicy() Policy {
	return g.policy
}

// CategoryDefault is a house-style override for a category's default
// duration multiplier, applied before the sensitivity rules (§4.6
// "Supplemented feature").
type CategoryDefault struct {
	DurationMultiplier float64
}

// RegisterAnimationCategoryDefault records a house-style default for
// category (e.g. "our entrance stages default to 400ms" is expressed by
// the caller as a duration on the stage itself; this registers a
// multiplier applied on top of that duration for every request in this
// category, before sensitivity scaling).
func (g *Gate) RegisterAnimationCategoryDefault(category Category, def CategoryDefault) {
	if data, err := yaml.Marshal(def); err == nil {
		g.store.Set(categoryKey(category), string(data))
	}
}

func categoryKey(c Category) string {
	names := [...]string{"essential", "transition", "feedback", "decorative", "entrance", "exit"}
	idx := int(c)
	if idx < 0 || idx >= len(names) {
		return storeKeyCategoryPrefix + "unknown"
	}
	return storeKeyCategoryPrefix + names[idx]
}

func (g *Gate) categoryDefault(c Category) (CategoryDefault, bool) {
	v, ok := g.store.Get(categoryKey(c))
	if !ok {
		return CategoryDefault{}, false
	}
	var d CategoryDefault
	if yaml.Unmarshal([]byte(v), &d) != nil {
		return CategoryDefault{}, false
	}
	return d, true
}

// Apply rewrites req according to the current policy's published
// mapping rules (§4.7):
//
//   - sensitivity=none: decorative/feedback collapse to static; essential
//     plays full.
//   - sensitivity=low|medium: duration x0.7/x0.5; disable parallax, tilt,
//     particle spawn; keep opacity/color (i.e. never collapse).
//   - sensitivity=high: every non-essential category collapses to a fade
//     or static alternative if provided, else omitted.
//
// Downstream components (physics, spring, orchestrator) never branch on
// sensitivity themselves; they construct from the rewritten request.
func (g *Gate) Apply(req AnimationRequest) AnimationRequest {

	if def, ok := g.categoryDefault(req.Category); ok && def.DurationMultiplier > 0 {
		req.DurationMs *= def.DurationMultiplier
	}

	switch g.policy.Sensitivity {
	case SensitivityNone:
		if req.Category == CategoryDecorative || req.Category == CategoryFeedback {
			req.Collapse = true
		}
	case SensitivityLow:
		req.DurationMs *= 0.7
		req.DisableParallax = true
		req.DisableTilt = true
		req.DisableParticleSpawn = true
	case SensitivityMedium:
		req.DurationMs *= 0.5
		req.DisableParallax = true
		req.DisableTilt = true
		req.DisableParticleSpawn = true
	case SensitivityHigh:
		if req.Category != CategoryEssential {
			if req.FallbackAvailable {
				req.UseFadeFallback = true
			} else {
				req.Collapse = true
			}
		}
	}

	if g.policy.PrefersReducedMotion && req.Category != CategoryEssential {
		if req.FallbackAvailable {
			req.UseFadeFallback = true
		} else {
			req.Collapse = true
		}
	}

	return req
}
