// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import "github.com/galileo-glass/runtime/vecmath"

// Hinge pins two bodies' local anchor points together, optionally driving
// relative rotation with a motor torque and clamping it to an angular
// range (§3: "hinge constraint: pins an anchor point, optional motor
// torque, optional angle limits").
//
// It is implemented as a zero-rest-length Distance constraint between the
// two world anchor points (coincidence), plus a direct angular-velocity
// integration for the motor and a position-space clamp for the limits,
// since the 2D bodies here carry no rotational inertia for a proper
// motorized revolute-joint solve.
type Hinge struct {
	id string

	a, b Body

	localAnchorA, localAnchorB vecmath.Vector2

	motorTorque float64 // angular impulse applied to b's angular velocity per solve, or 0

	hasLimits            bool
	minAngle, maxAngle   float64
}

// NewHinge creates a hinge pinning a's localAnchorA to b's localAnchorB
// (both offsets from each body's own position, unrotated).
func NewHinge(id string, a, b Body, localAnchorA, localAnchorB vecmath.Vector2) *Hinge {

	return &Hinge{
		id:           id,
		a:            a,
		b:            b,
		localAnchorA: localAnchorA,
		localAnchorB: localAnchorB,
	}
}

// SetMotor sets a constant angular impulse applied to body b each solve
// iteration. Pass 0 to disable the motor.
func (h *Hinge) SetMotor(torque float64) {
	h.motorTorque = torque
}

// SetLimits constrains b's angle, relative to a's, to [min, max] radians.
func (h *Hinge) SetLimits(min, max float64) {
	h.hasLimits = true
	h.minAngle, h.maxAngle = min, max
}

// ClearLimits removes any angular limit.
func (h *Hinge) ClearLimits() {
	h.hasLimits = false
}

func (h *Hinge) ID() string { return h.id }

func (h *Hinge) anchorWorld(body Body, local vecmath.Vector2) vecmath.Vector2 {

	w := local.Rotated(body.Angle())
	w.Add(body.Position())
	return w
}

// Solve pulls the two world anchor points together, applies the motor
// torque (if any) to b's angular velocity, and clamps b's relative angle
// to the configured limits (if any).
func (h *Hinge) Solve(dt float64) {

	anchorA := h.anchorWorld(h.a, h.localAnchorA)
	anchorB := h.anchorWorld(h.b, h.localAnchorB)

	delta := anchorB
	delta.Sub(anchorA)
	dist := delta.Length()

	invMassA := h.a.InverseMass()
	invMassB := h.b.InverseMass()
	totalInvMass := invMassA + invMassB

	if dist > 1e-9 && totalInvMass > 0 {
		axis := delta
		axis.MultiplyScalar(1 / dist)

		correction := axis
		correction.MultiplyScalar(dist / totalInvMass)

		if invMassA > 0 {
			move := correction
			move.MultiplyScalar(invMassA)
			pos := h.a.Position()
			pos.Add(move)
			h.a.SetPosition(pos)
			h.a.Wake()
		}
		if invMassB > 0 {
			move := correction
			move.MultiplyScalar(-invMassB)
			pos := h.b.Position()
			pos.Add(move)
			h.b.SetPosition(pos)
			h.b.Wake()
		}
	}

	if h.motorTorque != 0 && invMassB > 0 {
		w := h.b.AngularVelocity()
		w += h.motorTorque * dt
		h.b.SetAngularVelocity(w)
		h.b.Wake()
	}

	if h.hasLimits && invMassB > 0 {
		relative := h.b.Angle() - h.a.Angle()
		clamped := relative
		if clamped < h.minAngle {
			clamped = h.minAngle
		} else if clamped > h.maxAngle {
			clamped = h.maxAngle
		}
		if clamped != relative {
			h.b.SetAngle(h.a.Angle() + clamped)
			h.b.SetAngularVelocity(0)
		}
	}
}
