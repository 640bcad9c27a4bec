// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vecmath

import "math"

// Vector3 is a 3D vector with X, Y and Z components. Per the data model, Z
// is only meaningful for angular state (e.g. rotate.z for a 2D interaction
// target) — the physics engine itself is strictly 2D and never populates Z.
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

// NewVector3 creates a new Vector3 with the given components.
func NewVector3(x, y, z float64) Vector3 {

	return Vector3{X: x, Y: y, Z: z}
}

// Set sets this vector's components and returns the updated vector.
func (v *Vector3) Set(x, y, z float64) *Vector3 {

	v.X, v.Y, v.Z = x, y, z
	return v
}

// Clone returns a copy of this vector.
func (v Vector3) Clone() Vector3 {

	return v
}

// Add adds other to this vector and returns the updated vector.
func (v *Vector3) Add(other Vector3) *Vector3 {

	v.X += other.X
	v.Y += other.Y
	v.Z += other.Z
	return v
}

// MultiplyScalar multiplies each component of this vector by s.
func (v *Vector3) MultiplyScalar(s float64) *Vector3 {

	v.X *= s
	v.Y *= s
	v.Z *= s
	return v
}

// Length returns the length of this vector.
func (v Vector3) Length() float64 {

	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Lerp returns the linear interpolation between v and other at parameter alpha.
func (v Vector3) Lerp(other Vector3, alpha float64) Vector3 {

	return Vector3{
		X: v.X + (other.X-v.X)*alpha,
		Y: v.Y + (other.Y-v.Y)*alpha,
		Z: v.Z + (other.Z-v.Z)*alpha,
	}
}
