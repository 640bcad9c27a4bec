// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import "math"

// combineFriction and combineRestitution derive the per-contact Coulomb
// friction and restitution coefficients from the two bodies' material
// properties, grounded on the teacher's ContactMaterial (physics/material.go)
// concept of deriving a contact-pair value from two per-body materials,
// simplified from a registered contact-material table to fixed rules:
// friction is the geometric mean of the two values, restitution the
// larger of the two.
func combineFriction(a, b float64) float64 {

	return math.Sqrt(a * b)
}

func combineRestitution(a, b float64) float64 {

	if a > b {
		return a
	}
	return b
}
