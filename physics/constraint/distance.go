// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

// Distance holds two bodies at a fixed separation, matching §3's
// "distance constraint: holds two bodies at a target distance, with
// configurable stiffness and damping".
type Distance struct {
	id string

	a, b Body

	restLength float64
	stiffness  float64 // 0..1, fraction of positional error corrected per solve
	damping    float64 // 0..1, fraction of relative velocity along the axis removed per solve
}

// NewDistance creates a distance constraint between a and b. If
// restLength is zero or negative, it is computed from the bodies'
// current separation (a "rigid rod" at creation-time distance).
func NewDistance(id string, a, b Body, restLength, stiffness, damping float64) *Distance {

	if restLength <= 0 {
		delta := b.Position()
		delta.Sub(a.Position())
		restLength = delta.Length()
	}
	if stiffness <= 0 {
		stiffness = 1
	}
	return &Distance{
		id:         id,
		a:          a,
		b:          b,
		restLength: restLength,
		stiffness:  stiffness,
		damping:    damping,
	}
}

func (d *Distance) ID() string { return d.id }

// Solve applies one Gauss-Seidel iteration: a positional correction that
// moves both bodies (weighted by inverse mass) toward restLength, plus a
// velocity-space damping term along the constraint axis.
func (d *Distance) Solve(dt float64) {

	delta := d.b.Position()
	delta.Sub(d.a.Position())
	dist := delta.Length()
	if dist < 1e-9 {
		return
	}
	axis := delta
	axis.MultiplyScalar(1 / dist)

	invMassA := d.a.InverseMass()
	invMassB := d.b.InverseMass()
	totalInvMass := invMassA + invMassB
	if totalInvMass == 0 {
		return // both static, nothing to correct
	}

	errAmt := dist - d.restLength
	correction := axis
	correction.MultiplyScalar(errAmt * d.stiffness / totalInvMass)

	if invMassA > 0 {
		moveA := correction
		moveA.MultiplyScalar(invMassA)
		pos := d.a.Position()
		pos.Add(moveA)
		d.a.SetPosition(pos)
		d.a.Wake()
	}
	if invMassB > 0 {
		moveB := correction
		moveB.MultiplyScalar(-invMassB)
		pos := d.b.Position()
		pos.Add(moveB)
		d.b.SetPosition(pos)
		d.b.Wake()
	}

	if d.damping <= 0 {
		return
	}

	relVel := d.b.Velocity()
	relVel.Sub(d.a.Velocity())
	alongAxis := relVel.Dot(axis)
	impulseMag := -alongAxis * d.damping / totalInvMass
	impulse := axis
	impulse.MultiplyScalar(impulseMag)

	if invMassA > 0 {
		dv := impulse
		dv.MultiplyScalar(-invMassA)
		v := d.a.Velocity()
		v.Add(dv)
		d.a.SetVelocity(v)
	}
	if invMassB > 0 {
		dv := impulse
		dv.MultiplyScalar(invMassB)
		v := d.b.Velocity()
		v.Add(dv)
		d.b.SetVelocity(v)
	}
}
