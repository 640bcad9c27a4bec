// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import "github.com/galileo-glass/runtime/vecmath"

// SleepState mirrors the teacher's BodySleepState (physics/body.go),
// generalized from a 3D rigid body to the spec's 2D one. sleepTick moves
// a body straight from Awake to Sleeping; no body ever enters Sleepy.
type SleepState int

const (
	Awake SleepState = iota
	Sleepy
	Sleeping
)

const (
	defaultSleepVelocityLimit = 0.05
	defaultSleepAngularLimit  = 0.05
	defaultSleepTimeLimit     = 500 // ms, T_sleep per §4.3.8
)

// BodyConfig describes a body to add to an Engine. Fields left zero take
// the documented defaults (mass=1, friction=0, restitution=0,
// collision filter collides with everything).
type BodyConfig struct {
	ID              string `validate:"omitempty"`
	Shape           Shape
	Position        vecmath.Vector2
	Velocity        vecmath.Vector2
	Angle           float64
	AngularVelocity float64
	Mass            float64 `validate:"omitempty,gt=0"`
	Friction        float64 `validate:"gte=0,lte=1"`
	Restitution     float64 `validate:"gte=0,lte=1"`
	IsStatic        bool
	CollisionFilter CollisionFilter
	UserData        interface{}
}

// BodyState is the immutable snapshot returned by Engine.GetBody/GetAll.
// Callers hold this value, never the internal *body.
type BodyState struct {
	ID              string
	Shape           Shape
	Position        vecmath.Vector2
	Velocity        vecmath.Vector2
	Angle           float64
	AngularVelocity float64
	Mass            float64
	Friction        float64
	Restitution     float64
	IsStatic        bool
	IsSleeping      bool
	CollisionFilter CollisionFilter
	UserData        interface{}
}

// body is the engine-internal mutable representation. Callers never see
// this type directly; all external access goes through opaque string ids
// and the BodyState snapshot (§9: "cyclic ownership... use opaque string
// ids... never direct back-references").
type body struct {
	id   string
	cfg  BodyConfig

	position        vecmath.Vector2
	velocity        vecmath.Vector2
	angle           float64
	angularVelocity float64

	mass    float64
	invMass float64

	friction    float64
	restitution float64
	isStatic    bool
	filter      CollisionFilter
	userData    interface{}

	pendingForces []Force

	sleepState     SleepState
	quietFor       float64 // ms spent below the sleep thresholds
}

func newBody(cfg BodyConfig) *body {

	b := &body{
		id:          cfg.ID,
		cfg:         cfg,
		position:    cfg.Position,
		velocity:    cfg.Velocity,
		angle:       cfg.Angle,
		angularVelocity: cfg.AngularVelocity,
		friction:    cfg.Friction,
		restitution: cfg.Restitution,
		isStatic:    cfg.IsStatic,
		filter:      cfg.CollisionFilter,
		userData:    cfg.UserData,
		sleepState:  Awake,
	}

	if b.filter == (CollisionFilter{}) {
		b.filter = DefaultCollisionFilter()
	}

	mass := cfg.Mass
	if mass <= 0 {
		mass = 1
	}
	b.mass = mass

	if b.isStatic {
		b.mass = 0 // reported as infinite via invMass == 0
		b.invMass = 0
		b.velocity = vecmath.Vector2{}
		b.angularVelocity = 0
	} else {
		b.invMass = 1 / b.mass
	}

	return b
}

func (b *body) state() BodyState {

	return BodyState{
		ID:              b.id,
		Shape:           b.cfg.Shape,
		Position:        b.position,
		Velocity:        b.velocity,
		Angle:           b.angle,
		AngularVelocity: b.angularVelocity,
		Mass:            b.mass,
		Friction:        b.friction,
		Restitution:     b.restitution,
		IsStatic:        b.isStatic,
		IsSleeping:      b.sleepState == Sleeping,
		CollisionFilter: b.filter,
		UserData:        b.userData,
	}
}

// wake transitions a non-static body back to Awake and resets its sleep
// timer; called whenever a force, impulse, or contact touches the body
// (§4.3.8: "woken by any applied force, constraint impulse, or contact").
func (b *body) wake() {

	if b.isStatic {
		return
	}
	b.sleepState = Awake
	b.quietFor = 0
}

// sleepTick advances the sleep timer and transitions Awake -> Sleeping once
// the body has been quiet for at least T_sleep (§4.3.8, §8 invariant 2).
func (b *body) sleepTick(dt float64, velLimit, angLimit, timeLimit float64) {

	if b.isStatic || b.sleepState == Sleeping {
		return
	}

	speedSq := b.velocity.LengthSq()
	angSq := b.angularVelocity * b.angularVelocity

	if speedSq < velLimit*velLimit && angSq < angLimit*angLimit {
		b.quietFor += dt
		if b.quietFor >= timeLimit {
			b.sleepState = Sleeping
			b.velocity = vecmath.Vector2{}
			b.angularVelocity = 0
		}
	} else {
		b.quietFor = 0
	}
}

func (b *body) boundingRadius() float64 {

	return b.cfg.Shape.boundingRadius()
}

// The accessors below let a *body satisfy constraint.Body without the
// constraint package importing physics (physics imports constraint).

func (b *body) Position() vecmath.Vector2      { return b.position }
func (b *body) SetPosition(p vecmath.Vector2)  { b.position = p }
func (b *body) Velocity() vecmath.Vector2      { return b.velocity }
func (b *body) SetVelocity(v vecmath.Vector2)  { b.velocity = v }
func (b *body) InverseMass() float64           { return b.invMass }
func (b *body) Angle() float64                 { return b.angle }
func (b *body) SetAngle(a float64)             { b.angle = a }
func (b *body) AngularVelocity() float64       { return b.angularVelocity }
func (b *body) SetAngularVelocity(w float64)   { b.angularVelocity = w }
func (b *body) Wake()                          { b.wake() }
