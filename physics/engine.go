// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package physics implements the rigid-body simulation (C3 in the
// design): bodies, forces, constraints, broad/narrow-phase collision
// detection, and collision response, generalized from the teacher's
// physics.Simulation (3D quaternion rigid bodies) down to the 2D body
// model this runtime needs.
package physics

import (
	"math"
	"sort"
	"strconv"

	"github.com/galileo-glass/runtime/events"
	"github.com/galileo-glass/runtime/physics/collision"
	"github.com/galileo-glass/runtime/physics/constraint"
	"github.com/galileo-glass/runtime/physics/solver"
	"github.com/galileo-glass/runtime/rtconfig"
	"github.com/galileo-glass/runtime/rtlog"
	"github.com/galileo-glass/runtime/timing"
	"github.com/galileo-glass/runtime/vecmath"
)

const defaultFixedStep = 1.0 / 60.0 // seconds

// EngineConfig configures a new Engine (§6: "engine = createEngine({
// gravity?, bounds?, fixedStep?, solverIterations? })").
type EngineConfig struct {
	Gravity          vecmath.Vector2
	Bounds           *Bounds
	FixedStep        float64 `validate:"omitempty,gt=0"`
	SolverIterations int     `validate:"omitempty,gt=0"`
}

// Engine is the C3 physics world: a body table, a constraint table, and
// the per-tick integration/collision pipeline. Callers never hold a
// *body or *constraint.Distance directly — every operation is keyed by
// opaque string id and reads/writes go through BodyState snapshots.
type Engine struct {
	cfg EngineConfig

	log      *rtlog.Logger
	timing   *timing.Provider
	emitter  *events.Emitter

	bodies       map[string]*body
	nextBodyID   int
	constraints  map[string]constraint.Constraint
	nextConstrID int

	broadphase *collision.SpatialHash
	matrix     *collision.Matrix
	solve      *solver.Solver

	running bool
	paused  bool
	handle  timing.Handle
}

// NewEngine creates an Engine. log and emitter may be supplied by the
// caller (typically the runtime facade, C9) so that all subsystems share
// one logger/emitter family; tp drives Start/Stop's per-tick callback.
func NewEngine(cfg EngineConfig, tp *timing.Provider, emitter *events.Emitter, log *rtlog.Logger) (*Engine, error) {

	if err := rtconfig.Validate(cfg); err != nil {
		return nil, &ValidationError{Err: err}
	}
	if cfg.FixedStep <= 0 {
		cfg.FixedStep = defaultFixedStep
	}
	if cfg.SolverIterations <= 0 {
		cfg.SolverIterations = solver.DefaultIterations
	}

	s := solver.New()
	s.Iterations = cfg.SolverIterations

	return &Engine{
		cfg:         cfg,
		log:         log,
		timing:      tp,
		emitter:     emitter,
		bodies:      make(map[string]*body),
		constraints: make(map[string]constraint.Constraint),
		broadphase:  collision.NewSpatialHash(1),
		matrix:      collision.NewMatrix(),
		solve:       s,
	}, nil
}

// SetGravity updates the gravity vector applied to every non-static,
// non-sleeping body. Physics tuning is read-only after creation except
// for this (§6).
func (e *Engine) SetGravity(g vecmath.Vector2) {
	e.cfg.Gravity = g
}

// AddBody adds a body described by cfg and returns its id. If cfg.ID is
// empty an id is generated.
func (e *Engine) AddBody(cfg BodyConfig) (string, error) {

	if err := rtconfig.Validate(cfg); err != nil {
		return "", &ValidationError{Err: err}
	}
	if cfg.ID == "" {
		e.nextBodyID++
		cfg.ID = genID("body", e.nextBodyID)
	}
	e.bodies[cfg.ID] = newBody(cfg)
	return cfg.ID, nil
}

// RemoveBody removes a body and invalidates any further writes to it.
// Repeated RemoveBody(id) is a no-op (§8: idempotence property).
func (e *Engine) RemoveBody(id string) {

	delete(e.bodies, id)
	for _, pair := range e.matrix.Pairs() {
		if pair[0] == id || pair[1] == id {
			e.matrix.Set(pair[0], pair[1], false)
		}
	}
}

// GetBody returns the current state of id, or ok=false if it doesn't
// exist (§4.3: "getBody(id) -> state|null").
func (e *Engine) GetBody(id string) (BodyState, bool) {

	b, ok := e.bodies[id]
	if !ok {
		return BodyState{}, false
	}
	return b.state(), true
}

// GetAll returns a snapshot of every body's state keyed by id.
func (e *Engine) GetAll() map[string]BodyState {

	out := make(map[string]BodyState, len(e.bodies))
	for id, b := range e.bodies {
		out[id] = b.state()
	}
	return out
}

// BodyUpdate is the partial patch accepted by UpdateBody: only velocity
// and position may be poked directly (§4.3: "unsafe direct poke;
// velocity and position only").
type BodyUpdate struct {
	Position *vecmath.Vector2
	Velocity *vecmath.Vector2
}

// UpdateBody applies an unsafe direct poke to id's position and/or
// velocity. An unknown id is silently ignored and logged at debug level
// (§7 reference-error semantics for high-frequency calls).
func (e *Engine) UpdateBody(id string, patch BodyUpdate) {

	b, ok := e.bodies[id]
	if !ok {
		e.debugf("updateBody: unknown id %q", id)
		return
	}
	if patch.Position != nil {
		b.position = *patch.Position
	}
	if patch.Velocity != nil {
		b.velocity = *patch.Velocity
	}
	b.wake()
}

// ApplyForce queues a force onto id. The next integration sub-step
// consumes every queued force and then clears the queue, so a force that
// should keep acting is applied again each tick. point is accepted for
// API compatibility but ignored:
// torque from off-center application is a documented limitation (§4.3).
func (e *Engine) ApplyForce(id string, vec vecmath.Vector2, point *vecmath.Vector2) {

	b, ok := e.bodies[id]
	if !ok {
		e.debugf("applyForce: unknown id %q", id)
		return
	}
	b.pendingForces = append(b.pendingForces, Force{Vector: vec, Point: point})
	b.wake()
}

// ApplyImpulse applies an instantaneous velocity change to id, scaled by
// inverse mass. point is accepted but ignored (see ApplyForce).
func (e *Engine) ApplyImpulse(id string, vec vecmath.Vector2, point *vecmath.Vector2) {

	b, ok := e.bodies[id]
	if !ok {
		e.debugf("applyImpulse: unknown id %q", id)
		return
	}
	delta := vec
	delta.MultiplyScalar(b.invMass)
	b.velocity.Add(delta)
	b.wake()
}

// distanceConstraintBody/hinge adapters satisfy constraint.Body by
// closing over the engine's *body without exposing it.
type bodyRef struct{ b *body }

func (r bodyRef) Position() vecmath.Vector2     { return r.b.Position() }
func (r bodyRef) SetPosition(p vecmath.Vector2) { r.b.SetPosition(p) }
func (r bodyRef) Velocity() vecmath.Vector2     { return r.b.Velocity() }
func (r bodyRef) SetVelocity(v vecmath.Vector2) { r.b.SetVelocity(v) }
func (r bodyRef) InverseMass() float64          { return r.b.InverseMass() }
func (r bodyRef) Angle() float64                { return r.b.Angle() }
func (r bodyRef) SetAngle(a float64)            { r.b.SetAngle(a) }
func (r bodyRef) AngularVelocity() float64      { return r.b.AngularVelocity() }
func (r bodyRef) SetAngularVelocity(w float64)  { r.b.SetAngularVelocity(w) }
func (r bodyRef) Wake()                         { r.b.Wake() }

// DistanceConstraintConfig describes a distance (rod) constraint to add
// via AddConstraint (§3).
type DistanceConstraintConfig struct {
	ID         string
	BodyA      string `validate:"required"`
	BodyB      string `validate:"required"`
	RestLength float64
	Stiffness  float64
	Damping    float64
}

// HingeConstraintConfig describes a hinge (pin joint) constraint.
type HingeConstraintConfig struct {
	ID           string
	BodyA        string `validate:"required"`
	BodyB        string `validate:"required"`
	LocalAnchorA vecmath.Vector2
	LocalAnchorB vecmath.Vector2
	MotorTorque  float64
	HasLimits    bool
	MinAngle     float64
	MaxAngle     float64
}

// AddDistanceConstraint adds a distance constraint between two existing
// bodies. Referencing an unknown body is rejected (§7: "Adding a
// constraint referencing unknown bodies is rejected").
func (e *Engine) AddDistanceConstraint(cfg DistanceConstraintConfig) (string, error) {

	a, okA := e.bodies[cfg.BodyA]
	b, okB := e.bodies[cfg.BodyB]
	if !okA {
		return "", &ReferenceError{Op: "addConstraint", ID: cfg.BodyA}
	}
	if !okB {
		return "", &ReferenceError{Op: "addConstraint", ID: cfg.BodyB}
	}

	id := cfg.ID
	if id == "" {
		e.nextConstrID++
		id = genID("constraint", e.nextConstrID)
	}
	c := constraint.NewDistance(id, bodyRef{a}, bodyRef{b}, cfg.RestLength, cfg.Stiffness, cfg.Damping)
	e.constraints[id] = c
	return id, nil
}

// AddHingeConstraint adds a hinge constraint between two existing bodies.
func (e *Engine) AddHingeConstraint(cfg HingeConstraintConfig) (string, error) {

	a, okA := e.bodies[cfg.BodyA]
	b, okB := e.bodies[cfg.BodyB]
	if !okA {
		return "", &ReferenceError{Op: "addConstraint", ID: cfg.BodyA}
	}
	if !okB {
		return "", &ReferenceError{Op: "addConstraint", ID: cfg.BodyB}
	}

	id := cfg.ID
	if id == "" {
		e.nextConstrID++
		id = genID("constraint", e.nextConstrID)
	}
	h := constraint.NewHinge(id, bodyRef{a}, bodyRef{b}, cfg.LocalAnchorA, cfg.LocalAnchorB)
	if cfg.MotorTorque != 0 {
		h.SetMotor(cfg.MotorTorque)
	}
	if cfg.HasLimits {
		h.SetLimits(cfg.MinAngle, cfg.MaxAngle)
	}
	e.constraints[id] = h
	return id, nil
}

// RemoveConstraint removes a constraint; unknown ids are a no-op.
func (e *Engine) RemoveConstraint(id string) {
	delete(e.constraints, id)
}

// CollisionEvent is the payload delivered to onCollisionStart/Active/End
// listeners.
type CollisionEvent struct {
	BodyA, BodyB string
	Normal       vecmath.Vector2
	Depth        float64
	Point        vecmath.Vector2
}

const (
	eventCollisionStart  = "physics:collisionStart"
	eventCollisionActive = "physics:collisionActive"
	eventCollisionEnd    = "physics:collisionEnd"
)

// OnCollisionStart/Active/End subscribe to contact-set transitions
// (§4.3 step 7). Events are queued for delivery on the next Drain, so a
// listener can never re-enter the tick synchronously (§5).
func (e *Engine) OnCollisionStart(cb func(CollisionEvent)) events.Unsubscribe {
	return e.emitter.On(eventCollisionStart, func(p interface{}) { cb(p.(CollisionEvent)) })
}

func (e *Engine) OnCollisionActive(cb func(CollisionEvent)) events.Unsubscribe {
	return e.emitter.On(eventCollisionActive, func(p interface{}) { cb(p.(CollisionEvent)) })
}

func (e *Engine) OnCollisionEnd(cb func(CollisionEvent)) events.Unsubscribe {
	return e.emitter.On(eventCollisionEnd, func(p interface{}) { cb(p.(CollisionEvent)) })
}

// Start begins ticking the engine off the shared timing.Provider. A
// second Start call while already running is a no-op.
func (e *Engine) Start() {

	if e.running {
		return
	}
	e.running = true
	e.paused = false
	e.handle = e.timing.Subscribe(func(dt float64, now int64) {
		if e.paused {
			return
		}
		e.Step(dt / 1000) // provider dt is milliseconds; engine works in seconds
	})
}

// Pause suspends ticking without tearing down the frame subscription.
func (e *Engine) Pause() { e.paused = true }

// Resume un-pauses a paused engine.
func (e *Engine) Resume() { e.paused = false }

// Stop halts ticking and unsubscribes from the timing provider.
func (e *Engine) Stop() {

	if !e.running {
		return
	}
	e.timing.Unsubscribe(e.handle)
	e.running = false
	e.paused = false
}

// Step advances the simulation by dt seconds, splitting into fixed
// sub-steps per §4.3 step 1. Exposed directly for manual stepping in
// tests ("step(dt?)").
func (e *Engine) Step(dt float64) {

	defer func() {
		if r := recover(); r != nil && e.log != nil {
			e.log.Error("physics step panicked: %v", r)
		}
	}()

	if dt <= 0 {
		return
	}
	step := e.cfg.FixedStep
	subSteps := int(math.Ceil(dt / step))
	if subSteps < 1 {
		subSteps = 1
	}
	if subSteps > 8 {
		subSteps = 8 // cap sub-stepping so a long stall doesn't stall the caller
	}
	sub := dt / float64(subSteps)
	for i := 0; i < subSteps; i++ {
		e.substep(sub)
	}
	e.emitter.Drain()
}

func (e *Engine) substep(dt float64) {

	e.integrate(dt)
	e.solveConstraints(dt)
	e.resolveCollisions(dt)
	e.applySleepPolicy(dt)
}

// integrate is step 2: semi-implicit Euler for every awake, non-static
// body, accumulating gravity plus pending per-tick forces.
func (e *Engine) integrate(dt float64) {

	for _, b := range e.bodies {
		if b.isStatic || b.sleepState == Sleeping {
			continue
		}

		accel := e.cfg.Gravity
		for _, f := range b.pendingForces {
			scaled := f.Vector
			scaled.MultiplyScalar(b.invMass)
			accel.Add(scaled)
		}
		b.pendingForces = b.pendingForces[:0]

		accel.MultiplyScalar(dt)
		b.velocity.Add(accel)

		disp := b.velocity
		disp.MultiplyScalar(dt)
		b.position.Add(disp)
		b.angle += b.angularVelocity * dt

		if e.cfg.Bounds != nil {
			e.cfg.Bounds.clampToBounds(b)
		}
	}
}

// solveConstraints is step 3: a fixed Gauss-Seidel iteration count over
// every registered constraint.
func (e *Engine) solveConstraints(dt float64) {

	if len(e.constraints) == 0 {
		return
	}
	list := make([]solver.Solvable, 0, len(e.constraints))
	for _, c := range e.constraints {
		list = append(list, c)
	}
	e.solve.Solve(list, dt)
}

// resolveCollisions runs steps 4-7: broad phase, narrow phase, impulse
// response, and contact-set diffing for start/active/end events.
func (e *Engine) resolveCollisions(dt float64) {

	ids := make([]string, 0, len(e.bodies))
	maxRadius := 0.0
	for id, b := range e.bodies {
		ids = append(ids, id)
		if r := b.boundingRadius(); r > maxRadius {
			maxRadius = r
		}
	}
	// Body ids are iterated from a map everywhere above; sort them so the
	// broad phase's candidate order (and therefore collision-event
	// emission order) is deterministic and stable across ticks, not an
	// artifact of map iteration (§5(ii)).
	sort.Strings(ids)
	if maxRadius <= 0 {
		maxRadius = 1
	}
	e.broadphase.Resize(maxRadius * 2)

	items := make([]collision.Item, 0, len(ids))
	for _, id := range ids {
		b := e.bodies[id]
		r := b.boundingRadius()
		items = append(items, collision.Item{
			ID: id,
			Box: collision.AABB{
				MinX: b.position.X - r, MinY: b.position.Y - r,
				MaxX: b.position.X + r, MaxY: b.position.Y + r,
			},
		})
	}

	previouslyColliding := make(map[[2]string]bool)
	for _, pair := range e.matrix.Pairs() {
		previouslyColliding[pair] = true
	}

	candidates := e.broadphase.FindPairs(items)
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i][0] != candidates[j][0] {
			return candidates[i][0] < candidates[j][0]
		}
		return candidates[i][1] < candidates[j][1]
	})
	currentlyColliding := make(map[[2]string]bool)

	for _, pair := range candidates {
		a, b := e.bodies[pair[0]], e.bodies[pair[1]]
		if a == nil || b == nil {
			continue
		}
		if a.isStatic && b.isStatic {
			continue
		}
		if a.sleepState == Sleeping && b.sleepState == Sleeping {
			continue
		}
		if !filtersCollide(a.filter, b.filter) {
			continue
		}

		c, ok := narrowPhase(a, b)
		if !ok {
			continue
		}
		currentlyColliding[pair] = true
		e.respond(a, b, c)
		e.matrix.Set(pair[0], pair[1], true)

		evt := CollisionEvent{BodyA: pair[0], BodyB: pair[1], Normal: c.normal, Depth: c.depth, Point: c.point}
		if previouslyColliding[pair] {
			e.emitter.EnqueueForFrame(eventCollisionActive, evt)
		} else {
			e.emitter.EnqueueForFrame(eventCollisionStart, evt)
		}
	}

	// Pairs that were colliding last tick but aren't anymore emit "end"
	// (§4.3 step 7). previouslyColliding is a map, so its key order is
	// randomized per run; collect and sort the ended pairs before
	// emitting so "end" events are reported in body-id order too.
	ended := make([][2]string, 0, len(previouslyColliding))
	for pair := range previouslyColliding {
		if !currentlyColliding[pair] {
			ended = append(ended, pair)
		}
	}
	sort.Slice(ended, func(i, j int) bool {
		if ended[i][0] != ended[j][0] {
			return ended[i][0] < ended[j][0]
		}
		return ended[i][1] < ended[j][1]
	})
	for _, pair := range ended {
		e.matrix.Set(pair[0], pair[1], false)
		e.emitter.EnqueueForFrame(eventCollisionEnd, CollisionEvent{BodyA: pair[0], BodyB: pair[1]})
	}
}

// respond applies penetration correction, restitution, and Coulomb
// friction for a confirmed contact (§4.3 step 6).
func (e *Engine) respond(a, b *body, c contact) {

	invMassA, invMassB := a.invMass, b.invMass
	totalInv := invMassA + invMassB
	if totalInv == 0 {
		return
	}

	// Positional correction: push the bodies apart along the normal,
	// weighted by inverse mass.
	correctionMag := c.depth / totalInv
	correction := c.normal
	correction.MultiplyScalar(correctionMag)
	if invMassA > 0 {
		delta := correction
		delta.MultiplyScalar(-invMassA)
		a.position.Add(delta)
	}
	if invMassB > 0 {
		delta := correction
		delta.MultiplyScalar(invMassB)
		b.position.Add(delta)
	}

	// Relative velocity along the normal.
	relVel := b.velocity
	relVel.Sub(a.velocity)
	velAlongNormal := relVel.Dot(c.normal)
	if velAlongNormal > 0 {
		// Separating already; no impulse needed.
	} else {
		restitution := combineRestitution(a.restitution, b.restitution)
		j := -(1 + restitution) * velAlongNormal / totalInv
		impulse := c.normal
		impulse.MultiplyScalar(j)
		if invMassA > 0 {
			delta := impulse
			delta.MultiplyScalar(-invMassA)
			a.velocity.Add(delta)
		}
		if invMassB > 0 {
			delta := impulse
			delta.MultiplyScalar(invMassB)
			b.velocity.Add(delta)
		}

		// Coulomb friction on the tangential component.
		relVel = b.velocity
		relVel.Sub(a.velocity)
		tangent := relVel
		tangentAlongNormal := tangent.Dot(c.normal)
		along := c.normal
		along.MultiplyScalar(tangentAlongNormal)
		tangent.Sub(along)
		if tl := tangent.Length(); tl > 1e-9 {
			tangent.MultiplyScalar(1 / tl)
			jt := -relVel.Dot(tangent) / totalInv
			mu := combineFriction(a.friction, b.friction)
			if jt > j*mu {
				jt = j * mu
			} else if jt < -j*mu {
				jt = -j * mu
			}
			frictionImpulse := tangent
			frictionImpulse.MultiplyScalar(jt)
			if invMassA > 0 {
				delta := frictionImpulse
				delta.MultiplyScalar(-invMassA)
				a.velocity.Add(delta)
			}
			if invMassB > 0 {
				delta := frictionImpulse
				delta.MultiplyScalar(invMassB)
				b.velocity.Add(delta)
			}
		}
	}

	a.wake()
	b.wake()
}

// applySleepPolicy is step 8.
func (e *Engine) applySleepPolicy(dt float64) {

	for _, b := range e.bodies {
		b.sleepTick(dt*1000, defaultSleepVelocityLimit, defaultSleepAngularLimit, defaultSleepTimeLimit)
	}
}

func (e *Engine) debugf(format string, args ...interface{}) {
	if e.log != nil {
		e.log.Debug(format, args...)
	}
}

func genID(prefix string, n int) string {
	return prefix + "-" + strconv.Itoa(n)
}
