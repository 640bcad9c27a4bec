// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import "github.com/galileo-glass/runtime/vecmath"

// Force is a per-step impulse request attached to a body (§3 data model).
// Point offsets are accepted but ignored: torque application at
// non-center points is a documented limitation carried over from the
// distilled spec (§9 open question) and reserved for a future version.
type Force struct {
	Vector    vecmath.Vector2
	Point     *vecmath.Vector2
	OneShot   bool
	isImpulse bool
}

// CollisionFilter controls which bodies may collide with one another.
// Two bodies only generate contacts when (a.Category & b.Mask) != 0 AND
// (b.Category & a.Mask) != 0 (§4.3.6).
type CollisionFilter struct {
	Category uint32
	Mask     uint32
}

// DefaultCollisionFilter collides with everything.
func DefaultCollisionFilter() CollisionFilter {

	return CollisionFilter{Category: 1, Mask: 0xFFFFFFFF}
}

func filtersCollide(a, b CollisionFilter) bool {

	return a.Category&b.Mask != 0 && b.Category&a.Mask != 0
}
