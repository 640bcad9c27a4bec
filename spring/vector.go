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

// VectorSpring runs N independently-settling scalar axes sharing one
// Config and emits a single onRest once every axis has settled (§4.4:
// "Vector spring runs N independent scalar springs sharing the same
// config and emits a single onRest when all components settle").
// Grounded on the teacher's Spring2D/Spring4D (fixed 2/4-axis structs of
// SpringState), generalized to an arbitrary axis count/name set since
// the spec does not fix a dimensionality.
type VectorSpring struct {
	cfg Config

	tp      *timing.Provider
	emitter *events.Emitter
	log     *rtlog.Logger

	axes     []string
	position map[string]float64
	velocity map[string]float64
	target   map[string]float64

	ticking     bool
	handle      timing.Handle
	settleTicks int
}

// NewVectorSpring creates a VectorSpring over the given axis names, each
// initialized to initial[axis] (defaulting to 0 for an axis not present
// in the map).
func NewVectorSpring(cfg Config, axes []string, initial map[string]float64, tp *timing.Provider, emitter *events.Emitter, log *rtlog.Logger) (*VectorSpring, error) {

	if err := rtconfig.Validate(cfg); err != nil {
		return nil, &ValidationError{Err: err}
	}

	position := make(map[string]float64, len(axes))
	target := make(map[string]float64, len(axes))
	for _, a := range axes {
		v := initial[a]
		position[a] = v
		target[a] = v
	}

	return &VectorSpring{
		cfg:      cfg,
		tp:       tp,
		emitter:  emitter,
		log:      log,
		axes:     append([]string(nil), axes...),
		position: position,
		velocity: make(map[string]float64, len(axes)),
		target:   target,
	}, nil
}

// Value returns the current position of every axis.
func (s *VectorSpring) Value() map[string]float64 {

	out := make(map[string]float64, len(s.axes))
	for _, a := range s.axes {
		out[a] = s.position[a]
	}
	return out
}

// Update drives every named axis in targets toward its new value. Axes
// not present in targets keep their existing target.
func (s *VectorSpring) Update(targets map[string]float64, opts ...Config) {

	if len(opts) > 0 {
		s.cfg = opts[0]
	}
	for axis, t := range targets {
		if _, ok := s.position[axis]; !ok {
			continue
		}
		s.target[axis] = t
	}
	s.settleTicks = 0
	s.startTicking()
}

// Set instantaneously moves every axis in values to its given position,
// zeroing velocity. Never emits onRest.
func (s *VectorSpring) Set(values map[string]float64) {

	for axis, v := range values {
		if _, ok := s.position[axis]; !ok {
			continue
		}
		s.position[axis] = v
		s.velocity[axis] = 0
		s.target[axis] = v
	}
	s.settleTicks = 0
	s.stopTicking()
}

// Stop freezes every axis at its current position.
func (s *VectorSpring) Stop() {
	s.stopTicking()
}

// OnRest subscribes to the single rest notification emitted once every
// axis has settled.
func (s *VectorSpring) OnRest(cb func(values map[string]float64)) events.Unsubscribe {

	return s.emitter.On(eventRest, func(p interface{}) {
		cb(p.(map[string]float64))
	})
}

func (s *VectorSpring) startTicking() {

	if s.ticking {
		return
	}
	s.ticking = true
	s.handle = s.tp.Subscribe(func(dt float64, now int64) {
		s.tick(dt / 1000)
		s.emitter.Drain()
	})
}

func (s *VectorSpring) stopTicking() {

	if !s.ticking {
		return
	}
	s.tp.Unsubscribe(s.handle)
	s.ticking = false
}

func (s *VectorSpring) tick(dt float64) {

	allSettled := true
	c := s.cfg.dampingCoefficient()
	mass := s.cfg.mass()

	for _, axis := range s.axes {
		pos, vel, tgt := s.position[axis], s.velocity[axis], s.target[axis]

		displacement := pos - tgt
		springForce := -s.cfg.Tension * displacement
		dampingForce := -c * vel
		accel := (springForce + dampingForce) / mass

		vel += accel * dt
		pos += vel * dt

		s.position[axis] = pos
		s.velocity[axis] = vel

		if !(abs(pos-tgt) < epsPosition && abs(vel) < epsVelocity) {
			allSettled = false
		}
	}

	if allSettled {
		s.settleTicks++
	} else {
		s.settleTicks = 0
	}

	if s.settleTicks >= settleTicksNeeded {
		for _, axis := range s.axes {
			s.position[axis] = s.target[axis]
			s.velocity[axis] = 0
		}
		s.stopTicking()
		s.emitter.EnqueueForFrame(eventRest, s.Value())
	}
}
