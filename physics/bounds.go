// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

// Bounds is an optional world AABB (§4.3: "optional world AABB; bodies
// crossing a boundary either clamp with restitution=bounds.bounce or
// trigger a user callback").
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
	// Bounce is the restitution applied when a body is clamped back
	// inside the bounds. Ignored if OnExit is non-nil.
	Bounce float64
	// OnExit, if set, is called instead of clamping whenever a body
	// crosses a boundary; the engine takes no further action on that
	// body for this tick.
	OnExit func(bodyID string, state BodyState)
}

// clampToBounds pushes b back inside bounds along whichever axis it
// crossed and reflects the corresponding velocity component scaled by
// bounds.Bounce, or invokes bounds.OnExit if configured.
func (bounds *Bounds) clampToBounds(b *body) {

	if bounds == nil || b.isStatic {
		return
	}

	r := b.boundingRadius()
	crossed := false

	minX, maxX := bounds.MinX+r, bounds.MaxX-r
	minY, maxY := bounds.MinY+r, bounds.MaxY-r

	if b.position.X < minX {
		crossed = true
	} else if b.position.X > maxX {
		crossed = true
	}
	if b.position.Y < minY {
		crossed = true
	} else if b.position.Y > maxY {
		crossed = true
	}
	if !crossed {
		return
	}

	if bounds.OnExit != nil {
		bounds.OnExit(b.id, b.state())
		return
	}

	if b.position.X < minX {
		b.position.X = minX
		b.velocity.X = -b.velocity.X * bounds.Bounce
	} else if b.position.X > maxX {
		b.position.X = maxX
		b.velocity.X = -b.velocity.X * bounds.Bounce
	}
	if b.position.Y < minY {
		b.position.Y = minY
		b.velocity.Y = -b.velocity.Y * bounds.Bounce
	} else if b.position.Y > maxY {
		b.position.Y = maxY
		b.velocity.Y = -b.velocity.Y * bounds.Bounce
	}
	b.wake()
}
