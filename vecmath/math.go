// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vecmath

import "math"

const Pi = math.Pi

const degToRadFactor = math.Pi / 180
const radToDegFactor = 180.0 / math.Pi

// DegToRad converts a number from degrees to radians.
func DegToRad(degrees float64) float64 {

	return degrees * degToRadFactor
}

// RadToDeg converts a number from radians to degrees.
func RadToDeg(radians float64) float64 {

	return radians * radToDegFactor
}

// Clamp clamps x to the closed interval [a, b].
func Clamp(x, a, b float64) float64 {

	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}

// Lerp linearly interpolates between a and b at parameter t.
func Lerp(a, b, t float64) float64 {

	return a + (b-a)*t
}
