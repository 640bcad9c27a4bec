// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

import (
	"github.com/galileo-glass/runtime/a11y"
	"github.com/galileo-glass/runtime/events"
	"github.com/galileo-glass/runtime/interaction"
	"github.com/galileo-glass/runtime/orchestrator"
	"github.com/galileo-glass/runtime/physics"
	"github.com/galileo-glass/runtime/quality"
	"github.com/galileo-glass/runtime/rtlog"
	"github.com/galileo-glass/runtime/spring"
	"github.com/galileo-glass/runtime/timing"
)

// Runtime is the single per-process facade: one timing.Provider, one
// accessibility gate, one quality detector, shared by every engine,
// sequence, spring, and interaction controller it constructs. Each
// constructed object still gets its own events.Emitter — an Emitter is a
// single-owner pub/sub channel (§4.2), not a shared bus.
type Runtime struct {
	tp      *timing.Provider
	log     *rtlog.Logger
	gate    *a11y.Gate
	quality *quality.Detector
}

// New wires env into a Runtime. log may be nil; a Runtime built with a
// nil logger swallows caught panics/reference errors silently, matching
// rtlog.Logger's own documented behavior with zero writers.
func New(env Environment, log *rtlog.Logger) *Runtime {

	if log == nil {
		log = rtlog.New("galileo")
	}

	tp := timing.NewProvider(env.NowProvider, env.FrameSource, log)
	gate := a11y.NewGate(env.Storage)

	if env.PrefersReducedMotion != nil && env.PrefersReducedMotion() {
		policy := gate.GetMotionPolicy()
		policy.PrefersReducedMotion = true
		gate.SetMotionPolicy(policy)
	}

	det := quality.NewDetector(env.Probe, env.Storage)

	return &Runtime{tp: tp, log: log, gate: gate, quality: det}
}

// Disposable is satisfied by every handle CreateEngine/CreateSequence/
// CreateSpring/CreateInteraction returns, and is what the C9 hook
// registry (hooks.go) calls on unmount.
type Disposable interface {
	Dispose()
}

// --- Accessibility API (§6) ---

// SetMotionPolicy updates the process-wide motion policy. It applies to
// every Create* call made afterwards; sequences, springs and interaction
// controllers that already exist keep the request as the gate rewrote it
// when they were created.
func (r *Runtime) SetMotionPolicy(p a11y.Policy) {
	r.gate.SetMotionPolicy(p)
}

// GetMotionPolicy returns the current process-wide motion policy.
func (r *Runtime) GetMotionPolicy() a11y.Policy {
	return r.gate.GetMotionPolicy()
}

// RegisterAnimationCategoryDefault registers a house-style duration
// multiplier for category, applied before sensitivity scaling.
func (r *Runtime) RegisterAnimationCategoryDefault(category a11y.Category, def a11y.CategoryDefault) {
	r.gate.RegisterAnimationCategoryDefault(category, def)
}

// --- Quality API (§6) ---

// GetQualityTier returns the effective device quality tier.
func (r *Runtime) GetQualityTier() quality.Tier {
	return r.quality.GetQualityTier()
}

// GetQualityCapabilities returns the capability bitmap for the effective
// tier.
func (r *Runtime) GetQualityCapabilities() quality.Capabilities {
	return r.quality.GetCapabilities()
}

// ForceQualityTier pins the effective tier; nil restores detection.
func (r *Runtime) ForceQualityTier(tier *quality.Tier) {
	r.quality.ForceQualityTier(tier)
}

// OnQualityChange subscribes to effective-tier transitions.
func (r *Runtime) OnQualityChange(cb func(quality.Tier)) func() {
	return r.quality.OnQualityChange(cb)
}

// ResampleQuality re-runs the quality probe; hosts call this on
// visibility or configuration change (§4.8).
func (r *Runtime) ResampleQuality() {
	r.quality.Resample()
}

// --- Engine API (§6) ---

// EngineHandle wraps a physics.Engine with the emitter and frame
// subscription the facade owns on its behalf.
type EngineHandle struct {
	*physics.Engine
	emitter *events.Emitter
}

// Dispose stops the engine's tick subscription and closes its emitter.
// Idempotent.
func (h *EngineHandle) Dispose() {
	h.Stop()
	h.emitter.Close()
}

// CreateEngine constructs and starts a physics engine (§6: "engine =
// createEngine(...)"). Rigid-body simulation has no inherent duration or
// animation category, so engine construction does not run through the
// accessibility gate — the gate governs springs, sequences, and
// interaction amplitudes, where a duration/category naturally exists.
func (r *Runtime) CreateEngine(cfg physics.EngineConfig) (*EngineHandle, error) {

	emitter := events.NewEmitter(r.log)
	eng, err := physics.NewEngine(cfg, r.tp, emitter, r.log)
	if err != nil {
		return nil, err
	}
	eng.Start()
	return &EngineHandle{Engine: eng, emitter: emitter}, nil
}

// --- Orchestrator API (§6) ---

// SequenceHandle wraps an orchestrator.Sequence with its emitter.
type SequenceHandle struct {
	*orchestrator.Sequence
	emitter *events.Emitter
}

// Dispose stops the sequence and closes its emitter. Idempotent.
func (h *SequenceHandle) Dispose() {
	h.Stop()
	h.emitter.Close()
}

// CreateSequence rewrites req through the accessibility gate, scales (or
// collapses) every stage's timing accordingly, and constructs a Sequence
// (§4.7: "gate rewrites requests before ... C6 sees them"). req.DurationMs
// should carry the sequence's nominal total duration; gate.Apply's
// scaling of that number is applied proportionally to every stage's
// Duration and Delay. Collapse reduces every stage to duration/delay 0,
// so Play() still walks the full dependency order but settles instantly.
func (r *Runtime) CreateSequence(cfg orchestrator.SequenceConfig, req a11y.AnimationRequest) (*SequenceHandle, error) {

	applied := r.gate.Apply(req)
	cfg.Stages = rescaleStages(cfg.Stages, req.DurationMs, applied)

	emitter := events.NewEmitter(r.log)
	seq, err := orchestrator.New(cfg, r.tp, emitter, r.log)
	if err != nil {
		return nil, err
	}
	return &SequenceHandle{Sequence: seq, emitter: emitter}, nil
}

func rescaleStages(stages []orchestrator.StageConfig, nominal float64, applied a11y.AnimationRequest) []orchestrator.StageConfig {

	if applied.Collapse {
		out := make([]orchestrator.StageConfig, len(stages))
		for i, sc := range stages {
			sc.Duration = 0
			sc.Delay = 0
			out[i] = sc
		}
		return out
	}

	scale := 1.0
	if applied.UseFadeFallback {
		scale = 0.3
	} else if nominal > 0 {
		scale = applied.DurationMs / nominal
	}
	if scale == 1.0 {
		return stages
	}

	out := make([]orchestrator.StageConfig, len(stages))
	for i, sc := range stages {
		sc.Duration *= scale
		sc.Delay *= scale
		out[i] = sc
	}
	return out
}

// --- Spring API (§6) ---

// SpringHandle wraps a ScalarSpring, applying the accessibility gate's
// Collapse verdict by settling immediately instead of animating.
type SpringHandle struct {
	inner    *spring.ScalarSpring
	emitter  *events.Emitter
	collapse bool
}

// Update drives the spring toward target, or — if the gate collapsed this
// request — snaps to it immediately and still notifies OnRest.
func (h *SpringHandle) Update(target float64, opts ...spring.Config) {
	if h.collapse {
		h.inner.Set(target)
		h.emitter.Emit("spring:rest", target)
		return
	}
	h.inner.Update(target, opts...)
}

// Set jumps to value without animating and without notifying OnRest.
func (h *SpringHandle) Set(value float64) { h.inner.Set(value) }

// Value returns the current position.
func (h *SpringHandle) Value() float64 { return h.inner.Value() }

// OnRest subscribes to settle notifications.
func (h *SpringHandle) OnRest(cb func(float64)) events.Unsubscribe { return h.inner.OnRest(cb) }

// Stop freezes the spring in place.
func (h *SpringHandle) Stop() { h.inner.Stop() }

// Dispose stops the spring and closes its emitter. Idempotent.
func (h *SpringHandle) Dispose() {
	h.inner.Stop()
	h.emitter.Close()
}

// CreateSpring rewrites req through the accessibility gate and constructs
// a scalar spring; a collapsed request is driven instantly rather than
// animated (§6: "createSpring(config)").
func (r *Runtime) CreateSpring(cfg spring.Config, initial float64, req a11y.AnimationRequest) (*SpringHandle, error) {

	applied := r.gate.Apply(req)

	emitter := events.NewEmitter(r.log)
	s, err := spring.NewScalarSpring(cfg, initial, r.tp, emitter, r.log)
	if err != nil {
		return nil, err
	}
	return &SpringHandle{inner: s, emitter: emitter, collapse: applied.Collapse}, nil
}

// VectorSpringHandle is CreateVectorSpring's counterpart to SpringHandle.
type VectorSpringHandle struct {
	inner    *spring.VectorSpring
	emitter  *events.Emitter
	collapse bool
}

// Update drives every named axis toward targets, or snaps instantly if
// the gate collapsed this request.
func (h *VectorSpringHandle) Update(targets map[string]float64, opts ...spring.Config) {
	if h.collapse {
		h.inner.Set(targets)
		h.emitter.Emit("spring:rest", targets)
		return
	}
	h.inner.Update(targets, opts...)
}

// Set jumps every axis to values without animating.
func (h *VectorSpringHandle) Set(values map[string]float64) { h.inner.Set(values) }

// Value returns the current position of every axis.
func (h *VectorSpringHandle) Value() map[string]float64 { return h.inner.Value() }

// OnRest subscribes to settle notifications.
func (h *VectorSpringHandle) OnRest(cb func(map[string]float64)) events.Unsubscribe {
	return h.inner.OnRest(cb)
}

// Stop freezes every axis in place.
func (h *VectorSpringHandle) Stop() { h.inner.Stop() }

// Dispose stops the spring and closes its emitter. Idempotent.
func (h *VectorSpringHandle) Dispose() {
	h.inner.Stop()
	h.emitter.Close()
}

// CreateVectorSpring is CreateSpring's multi-axis counterpart (§6:
// "createVectorSpring(config, axes[])").
func (r *Runtime) CreateVectorSpring(cfg spring.Config, axes []string, initial map[string]float64, req a11y.AnimationRequest) (*VectorSpringHandle, error) {

	applied := r.gate.Apply(req)

	emitter := events.NewEmitter(r.log)
	s, err := spring.NewVectorSpring(cfg, axes, initial, r.tp, emitter, r.log)
	if err != nil {
		return nil, err
	}
	return &VectorSpringHandle{inner: s, emitter: emitter, collapse: applied.Collapse}, nil
}

// --- Interaction API (§6) ---

// InteractionHandle wraps an interaction.Controller with its emitter.
type InteractionHandle struct {
	*interaction.Controller
	emitter *events.Emitter
}

// Dispose detaches the controller and closes its emitter. Idempotent.
func (h *InteractionHandle) Dispose() {
	h.Detach()
	h.emitter.Close()
}

// CreateInteraction rewrites req through the accessibility gate, zeroing
// the amplitudes the gate disables, then constructs a Controller bound to
// engine's virtual body (§6: "createInteraction({ element, mode,
// ...modeSpecific })" — the element itself is the caller's concern via
// the C9 hook registry in hooks.go, not this constructor).
func (r *Runtime) CreateInteraction(cfg interaction.Config, engine *EngineHandle, req a11y.AnimationRequest) (*InteractionHandle, error) {

	applied := r.gate.Apply(req)
	if applied.DisableTilt {
		cfg.TiltAmplitude = 0
	}
	if applied.DisableParallax {
		cfg.RotateAmplitude = 0
	}

	emitter := events.NewEmitter(r.log)
	c, err := interaction.New(cfg, engine.Engine, r.tp, emitter, r.log)
	if err != nil {
		return nil, err
	}
	return &InteractionHandle{Controller: c, emitter: emitter}, nil
}
