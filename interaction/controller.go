// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interaction implements the pointer/gesture-to-force mapping
// (C5 in the design): a Controller owns a virtual, non-rendered physics
// body and reads its state back each tick, so the interaction layer
// itself carries no physics logic — it only configures a body (and,
// in spring mode, a spring) and republishes state for the UI. Pointer
// normalization is grounded on the teacher's camera/control idiom
// (camera/control/orbit_control.go's start/end/delta event tracking),
// generalized from camera-orbit deltas to the spec's device-agnostic
// {translate, scale, rotate, isHovered, isPressed, relativePointer}
// state.
package interaction

import (
	"github.com/galileo-glass/runtime/events"
	"github.com/galileo-glass/runtime/physics"
	"github.com/galileo-glass/runtime/rtconfig"
	"github.com/galileo-glass/runtime/rtlog"
	"github.com/galileo-glass/runtime/spring"
	"github.com/galileo-glass/runtime/timing"
	"github.com/galileo-glass/runtime/vecmath"
)

// Mode selects how pointer input is translated into motion (§4.5).
type Mode int

const (
	// SpringMode springs the scale toward 1+ScaleAmplitude while pressed
	// and pushes the body away from the pointer offset, scaled by
	// RotateAmplitude. It drives no rotation and does not read
	// TiltAmplitude.
	SpringMode Mode = iota
	// MagneticMode attracts or repels a body within Radius; the sign of
	// Strength selects polarity.
	MagneticMode
	// GestureMode is pan/swipe/pinch/rotate with momentum decay and
	// optional bounds.
	GestureMode
)

// Config configures a Controller. Only the fields relevant to Mode are
// consulted.
type Config struct {
	Mode Mode

	// SpringMode fields.
	Spring          spring.Config
	ScaleAmplitude  float64
	RotateAmplitude float64
	TiltAmplitude   float64

	// MagneticMode fields.
	Radius   float64 `validate:"omitempty,gt=0"`
	Strength float64

	// GestureMode fields.
	MomentumDecay float64 `validate:"omitempty,gte=0,lte=1"`
	Bounds        *physics.Bounds
}

// PointerEvent is a normalized pointer/touch/stylus sample. Callers
// translate device-specific events (mouse, touch, pen) into this one
// shape before calling HandlePointer, keeping the controller itself
// device-agnostic (§4.5: "inputs normalize pointer, touch, and stylus
// events into a single event stream").
type PointerEvent struct {
	X, Y     float64 // viewport-relative coordinates
	Width    float64 // viewport/element width, for relative-pointer normalization
	Height   float64
	Pressed  bool
	Hovering bool
}

// State is the data published to the UI each tick (§4.5).
type State struct {
	Translate       vecmath.Vector3
	Scale           float64
	Rotate          vecmath.Vector3
	IsHovered       bool
	IsPressed       bool
	RelativePointer vecmath.Vector2 // always in [-1,1]^2, computed even when the body is static
}

const eventChange = "interaction:change"

// Controller maps pointer input to forces on a virtual body and
// publishes the resulting State once per tick.
type Controller struct {
	cfg    Config
	engine *physics.Engine
	tp     *timing.Provider
	events *events.Emitter
	log    *rtlog.Logger

	bodyID      string
	scaleSpring *spring.ScalarSpring

	lastPointer PointerEvent
	state       State

	handle   timing.Handle
	attached bool
}

// New creates a Controller. engine is the shared physics engine the
// controller's virtual body lives in; it is never rendered and carries
// no collision shape of its own significance (a tiny circle, for the
// narrow phase's sake, with a collision filter that matches nothing).
func New(cfg Config, engine *physics.Engine, tp *timing.Provider, emitter *events.Emitter, log *rtlog.Logger) (*Controller, error) {

	if err := rtconfig.Validate(cfg); err != nil {
		return nil, &ValidationError{Err: err}
	}

	bodyID, err := engine.AddBody(physics.BodyConfig{
		Shape:           physics.NewCircleShape(0.01),
		Mass:            1,
		CollisionFilter: physics.CollisionFilter{Category: 1, Mask: 0},
	})
	if err != nil {
		return nil, err
	}

	c := &Controller{
		cfg:    cfg,
		engine: engine,
		tp:     tp,
		events: emitter,
		log:    log,
		bodyID: bodyID,
	}

	if cfg.Mode == SpringMode {
		sc := cfg.Spring
		if sc.Tension == 0 {
			sc = spring.Default()
		}
		scaleSpring, err := spring.NewScalarSpring(sc, 1, tp, events.NewEmitter(log), log)
		if err != nil {
			return nil, err
		}
		c.scaleSpring = scaleSpring
	}

	c.handle = tp.Subscribe(func(dt float64, now int64) {
		c.tick(dt / 1000)
	})
	c.attached = true

	return c, nil
}

// HandlePointer feeds a normalized pointer sample into the controller.
// The resulting force/target is applied on the next tick.
func (c *Controller) HandlePointer(evt PointerEvent) {
	c.lastPointer = evt
}

// State returns the most recently published state.
func (c *Controller) State() State { return c.state }

// OnChange subscribes to the per-tick state publication.
func (c *Controller) OnChange(cb func(State)) events.Unsubscribe {

	return c.events.On(eventChange, func(p interface{}) {
		cb(p.(State))
	})
}

// Detach stops ticking and releases the virtual body. Idempotent.
func (c *Controller) Detach() {

	if !c.attached {
		return
	}
	c.attached = false
	c.tp.Unsubscribe(c.handle)
	if c.scaleSpring != nil {
		c.scaleSpring.Stop()
	}
	c.engine.RemoveBody(c.bodyID)
}

func (c *Controller) tick(dt float64) {

	if !c.attached {
		return
	}

	rel := relativePointer(c.lastPointer)

	switch c.cfg.Mode {
	case SpringMode:
		c.tickSpringMode(rel)
	case MagneticMode:
		c.tickMagneticMode(rel)
	case GestureMode:
		c.tickGestureMode(rel)
	}

	body, ok := c.engine.GetBody(c.bodyID)
	if !ok {
		return
	}

	scale := 1.0
	if c.scaleSpring != nil {
		scale = c.scaleSpring.Value()
	}

	c.state = State{
		Translate:       vecmath.Vector3{X: body.Position.X, Y: body.Position.Y},
		Scale:           scale,
		Rotate:          vecmath.Vector3{Z: body.Angle},
		IsHovered:       c.lastPointer.Hovering,
		IsPressed:       c.lastPointer.Pressed,
		RelativePointer: rel,
	}
	c.events.Emit(eventChange, c.state)
}

// relativePointer is always computed even when the body is static, so
// downstream magnetic effects can continue (§4.5).
func relativePointer(evt PointerEvent) vecmath.Vector2 {

	if evt.Width <= 0 || evt.Height <= 0 {
		return vecmath.Vector2{}
	}
	rx := (evt.X/evt.Width)*2 - 1
	ry := (evt.Y/evt.Height)*2 - 1
	return vecmath.Vector2{X: clampUnit(rx), Y: clampUnit(ry)}
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// tickSpringMode drives the scale spring toward 1 + ScaleAmplitude*pressed
// and applies a force of -rel*RotateAmplitude to the virtual body, which
// moves the published Translate opposite to the pointer offset. It does
// not rotate the body, so State.Rotate carries the body's unchanged
// angle, and it does not read TiltAmplitude.
func (c *Controller) tickSpringMode(rel vecmath.Vector2) {

	target := 1.0
	if c.lastPointer.Pressed {
		target += c.cfg.ScaleAmplitude
	}
	if c.scaleSpring != nil {
		c.scaleSpring.Update(target)
	}

	restore := rel
	restore.MultiplyScalar(-1)
	c.engine.ApplyForce(c.bodyID, vecmath.Vector2{
		X: restore.X * c.cfg.RotateAmplitude,
		Y: restore.Y * c.cfg.RotateAmplitude,
	}, nil)
}

// tickMagneticMode attracts (Strength>0) or repels (Strength<0) the
// virtual body toward the pointer position when within Radius.
func (c *Controller) tickMagneticMode(rel vecmath.Vector2) {

	body, ok := c.engine.GetBody(c.bodyID)
	if !ok {
		return
	}
	pointerWorld := vecmath.Vector2{X: rel.X * c.cfg.Radius, Y: rel.Y * c.cfg.Radius}
	delta := pointerWorld
	delta.Sub(body.Position)
	dist := delta.Length()
	if dist > c.cfg.Radius || dist < 1e-9 {
		return
	}
	dir := delta.Normalize()
	falloff := 1 - dist/c.cfg.Radius
	dir.MultiplyScalar(c.cfg.Strength * falloff)
	c.engine.ApplyForce(c.bodyID, dir, nil)
}

// tickGestureMode applies exponential momentum decay to the virtual
// body's velocity each tick; pointer deltas drive the body via
// ApplyImpulse from the embedder (gesture recognition itself — pan
// distance, pinch scale, swipe velocity — is a UI-layer concern upstream
// of this controller, consistent with §4.5's device-agnostic contract).
func (c *Controller) tickGestureMode(rel vecmath.Vector2) {

	body, ok := c.engine.GetBody(c.bodyID)
	if !ok {
		return
	}
	decay := c.cfg.MomentumDecay
	if decay <= 0 {
		decay = 0.95
	}
	damped := body.Velocity
	damped.MultiplyScalar(decay)
	c.engine.UpdateBody(c.bodyID, physics.BodyUpdate{Velocity: &damped})
}
