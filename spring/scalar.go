// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spring

import (
	"github.com/galileo-glass/runtime/events"
	"github.com/galileo-glass/runtime/rtconfig"
	"github.com/galileo-glass/runtime/rtlog"
	"github.com/galileo-glass/runtime/timing"
)

// Settle thresholds: a spring is considered at rest once its position is
// within epsPosition of target and its speed is below epsVelocity, for
// two consecutive ticks (guards against a single lucky sample near a
// zero-crossing during an underdamped overshoot).
const (
	epsPosition      = 0.01
	epsVelocity      = 0.01
	settleTicksNeeded = 2
)

const eventRest = "spring:rest"

// ScalarSpring drives a single numeric value toward a target under the
// shared Config law (§4.4). Grounded on the teacher's SpringState.Update,
// generalized from a bare struct method called by the embedder's own
// loop into a self-ticking primitive subscribed to the shared
// timing.Provider, since this runtime owns the frame loop rather than
// handing dt to the caller each frame.
type ScalarSpring struct {
	cfg Config

	tp      *timing.Provider
	emitter *events.Emitter
	log     *rtlog.Logger

	position float64
	velocity float64
	target   float64

	ticking     bool
	handle      timing.Handle
	settleTicks int
}

// NewScalarSpring creates a spring at rest at initial.
func NewScalarSpring(cfg Config, initial float64, tp *timing.Provider, emitter *events.Emitter, log *rtlog.Logger) (*ScalarSpring, error) {

	if err := rtconfig.Validate(cfg); err != nil {
		return nil, &ValidationError{Err: err}
	}
	return &ScalarSpring{
		cfg:      cfg,
		tp:       tp,
		emitter:  emitter,
		log:      log,
		position: initial,
		target:   initial,
	}, nil
}

// Value returns the spring's current position.
func (s *ScalarSpring) Value() float64 { return s.position }

// Update drives the spring toward target. If opts is provided, its first
// element replaces the spring's config for this and all subsequent
// updates until changed again (§4.4: "update(target, opts?)").
func (s *ScalarSpring) Update(target float64, opts ...Config) {

	if len(opts) > 0 {
		s.cfg = opts[0]
	}
	s.target = target
	s.settleTicks = 0
	s.startTicking()
}

// Set instantaneously moves the spring to value, zeroing velocity and
// stopping any in-flight motion. Per contract this never emits onRest
// (§4.4: "set() is instantaneous and never emits onRest").
func (s *ScalarSpring) Set(value float64) {

	s.position = value
	s.velocity = 0
	s.target = value
	s.settleTicks = 0
	s.stopTicking()
}

// Stop freezes the spring at its current position without snapping to
// target and without emitting onRest.
func (s *ScalarSpring) Stop() {
	s.stopTicking()
}

// OnRest subscribes to rest notifications, delivered once per settle
// (queued, so a listener can itself call Update without re-entering the
// tick that produced it).
func (s *ScalarSpring) OnRest(cb func(value float64)) events.Unsubscribe {

	return s.emitter.On(eventRest, func(p interface{}) {
		cb(p.(float64))
	})
}

func (s *ScalarSpring) startTicking() {

	if s.ticking {
		return
	}
	s.ticking = true
	s.handle = s.tp.Subscribe(func(dt float64, now int64) {
		s.tick(dt / 1000)
		s.emitter.Drain()
	})
}

func (s *ScalarSpring) stopTicking() {

	if !s.ticking {
		return
	}
	s.tp.Unsubscribe(s.handle)
	s.ticking = false
}

func (s *ScalarSpring) tick(dt float64) {

	displacement := s.position - s.target
	springForce := -s.cfg.Tension * displacement
	dampingForce := -s.cfg.dampingCoefficient() * s.velocity
	accel := (springForce + dampingForce) / s.cfg.mass()

	s.velocity += accel * dt
	s.position += s.velocity * dt

	settled := abs(s.position-s.target) < epsPosition && abs(s.velocity) < epsVelocity
	if settled {
		s.settleTicks++
	} else {
		s.settleTicks = 0
	}

	if s.settleTicks >= settleTicksNeeded {
		s.position = s.target
		s.velocity = 0
		s.stopTicking()
		s.emitter.EnqueueForFrame(eventRest, s.position)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
