// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package constraint implements the positional constraints the physics
// engine can solve between pairs of bodies: distance constraints (rods)
// and hinge constraints (pin joints with optional motors and limits).
//
// The teacher's physics/constraint and physics/equation packages built
// constraints from SPOOK-parameterized Jacobian equations solved by a
// global Gauss-Seidel pass over velocity-space equations. That machinery
// is sized for 3D rigid bodies with full inertia tensors; the spec's 2D
// bodies have no rotational inertia to speak of; so constraints here are
// expressed directly as Baumgarte-style positional correction plus a
// velocity-space damping term, solved per-constraint rather than via a
// shared Jacobian matrix. This is a deliberate simplification, recorded
// in the grounding ledger.
package constraint

import "github.com/galileo-glass/runtime/vecmath"

// Body is the minimal view of a physics body a constraint needs. The
// physics engine's body type satisfies it without the constraint package
// importing physics (which would create an import cycle, since physics
// imports constraint).
type Body interface {
	Position() vecmath.Vector2
	SetPosition(vecmath.Vector2)
	Velocity() vecmath.Vector2
	SetVelocity(vecmath.Vector2)
	InverseMass() float64
	Angle() float64
	SetAngle(float64)
	AngularVelocity() float64
	SetAngularVelocity(float64)
	Wake()
}

// Constraint is a solvable relationship between one or two bodies,
// applied once per solver iteration (§4.3.3: "constraint solving: N
// Gauss-Seidel iterations, default 10").
type Constraint interface {
	ID() string
	Solve(dt float64)
}
