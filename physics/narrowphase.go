// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"math"

	"github.com/galileo-glass/runtime/vecmath"
)

// contact is the narrow-phase result for a single colliding pair: the
// manifold normal (pointing from a to b) and penetration depth, matching
// the teacher's narrowphase.go "normal + depth" contact manifold, reduced
// to a single representative point in 2D rather than a full polygon clip.
type contact struct {
	normal vecmath.Vector2 // unit, points from a toward b
	depth  float64
	point  vecmath.Vector2
}

// worldVertices returns the shape's vertices transformed by the body's
// current position and angle.
func worldVertices(b *body) []vecmath.Vector2 {

	local := b.cfg.Shape.localVertices()
	out := make([]vecmath.Vector2, len(local))
	for i, v := range local {
		out[i] = v.Rotated(b.angle)
		out[i].Add(b.position)
	}
	return out
}

// narrowPhase dispatches on the shape kinds of a and b (§9: tagged
// variants, switch on the tag field) to produce a contact, or ok=false if
// the shapes don't currently overlap.
func narrowPhase(a, b *body) (contact, bool) {

	switch {
	case a.cfg.Shape.Kind == Circle && b.cfg.Shape.Kind == Circle:
		return circleCircle(a, b)
	case a.cfg.Shape.Kind == Circle:
		return circlePolygon(a, b, false)
	case b.cfg.Shape.Kind == Circle:
		return circlePolygon(b, a, true)
	default:
		return polygonPolygon(a, b)
	}
}

// circleCircle is the analytic circle-circle test (§4.3.5).
func circleCircle(a, b *body) (contact, bool) {

	delta := vecmath.Vector2{}
	delta.SubVectors(b.position, a.position)
	dist := delta.Length()
	radiusSum := a.cfg.Shape.Radius + b.cfg.Shape.Radius
	if dist >= radiusSum {
		return contact{}, false
	}

	var normal vecmath.Vector2
	if dist > 1e-9 {
		normal = delta.Normalize()
	} else {
		normal = vecmath.Vector2{X: 1, Y: 0}
	}
	offset := normal
	offset.MultiplyScalar(a.cfg.Shape.Radius)
	point := a.position
	point.Add(offset)

	return contact{
		normal: normal,
		depth:  radiusSum - dist,
		point:  point,
	}, true
}

// circlePolygon tests a circle against a polygon (rectangles are
// converted to 4-vertex polygons by worldVertices). swapped indicates the
// circle was the second argument, so the returned normal is flipped to
// keep the "points from a toward b" convention.
func circlePolygon(circle, poly *body, swapped bool) (contact, bool) {

	verts := worldVertices(poly)
	n := len(verts)

	best := math.Inf(-1)
	var bestNormal vecmath.Vector2
	var bestEdgeStart, bestEdgeEnd vecmath.Vector2

	for i := 0; i < n; i++ {
		v0 := verts[i]
		v1 := verts[(i+1)%n]
		edge := v1
		edge.Sub(v0)
		// Perp turns the edge counter-clockwise, which for the polygon's
		// counter-clockwise winding points into the polygon; sep is the
		// circle center's signed distance outside this edge.
		normal := edge.Perp().Normalize()

		toCircle := circle.position
		toCircle.Sub(v0)
		sep := -toCircle.Dot(normal)

		if sep > best {
			best = sep
			bestNormal = normal
			bestEdgeStart, bestEdgeEnd = v0, v1
		}
	}

	r := circle.cfg.Shape.Radius

	if best > r {
		return contact{}, false
	}

	var normal vecmath.Vector2
	var depth float64
	var point vecmath.Vector2

	if best < 0 {
		// Circle center is inside the polygon: push out along the
		// nearest edge normal.
		normal = bestNormal
		depth = r - best
		point = circle.position
	} else {
		// Circle center is outside: find the closest point on the
		// nearest edge (clamped to the segment) and test against that.
		edge := bestEdgeEnd
		edge.Sub(bestEdgeStart)
		toCircle := circle.position
		toCircle.Sub(bestEdgeStart)
		t := 0.0
		if l2 := edge.LengthSq(); l2 > 1e-9 {
			t = toCircle.Dot(edge) / l2
			if t < 0 {
				t = 0
			} else if t > 1 {
				t = 1
			}
		}
		closest := bestEdgeStart.Lerp(bestEdgeEnd, t)
		delta := closest
		delta.Sub(circle.position)
		dist := delta.Length()
		if dist >= r {
			return contact{}, false
		}
		if dist > 1e-9 {
			normal = delta.Normalize()
		} else {
			normal = bestNormal
		}
		depth = r - dist
		point = closest
	}

	if swapped {
		normal.Negate()
	}
	return contact{normal: normal, depth: depth, point: point}, true
}

// polygonPolygon is the separating-axis test for two convex polygons
// (rectangles included, via their 4-vertex form), matching §4.3.5's
// "rectangle-rectangle (SAT), polygon-polygon (SAT)".
func polygonPolygon(a, b *body) (contact, bool) {

	vertsA := worldVertices(a)
	vertsB := worldVertices(b)

	minDepth := math.Inf(1)
	var minAxis vecmath.Vector2

	axes := append(edgeNormals(vertsA), edgeNormals(vertsB)...)
	for _, axis := range axes {
		minA, maxA := projectPolygon(vertsA, axis)
		minB, maxB := projectPolygon(vertsB, axis)

		overlap := math.Min(maxA, maxB) - math.Max(minA, minB)
		if overlap <= 0 {
			return contact{}, false
		}
		if overlap < minDepth {
			minDepth = overlap
			minAxis = axis
			// Ensure the axis points from a toward b.
			centerA := polygonCenter(vertsA)
			centerB := polygonCenter(vertsB)
			d := centerB
			d.Sub(centerA)
			if d.Dot(minAxis) < 0 {
				minAxis.Negate()
			}
		}
	}

	point := contactPoint(vertsA, vertsB, minAxis)
	return contact{normal: minAxis, depth: minDepth, point: point}, true
}

func edgeNormals(verts []vecmath.Vector2) []vecmath.Vector2 {

	n := len(verts)
	out := make([]vecmath.Vector2, n)
	for i := 0; i < n; i++ {
		edge := verts[(i+1)%n]
		edge.Sub(verts[i])
		out[i] = edge.Perp().Normalize()
	}
	return out
}

func projectPolygon(verts []vecmath.Vector2, axis vecmath.Vector2) (min, max float64) {

	min = math.Inf(1)
	max = math.Inf(-1)
	for _, v := range verts {
		p := v.Dot(axis)
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	return
}

func polygonCenter(verts []vecmath.Vector2) vecmath.Vector2 {

	var c vecmath.Vector2
	for _, v := range verts {
		c.Add(v)
	}
	c.MultiplyScalar(1 / float64(len(verts)))
	return c
}

// contactPoint approximates the manifold point as the vertex of polygon a
// that projects deepest along the separating axis, which is adequate for
// the spec's single-point CollisionEvent (§3) rather than a full clipped
// manifold.
func contactPoint(vertsA, vertsB []vecmath.Vector2, axis vecmath.Vector2) vecmath.Vector2 {

	best := math.Inf(-1)
	var bestPoint vecmath.Vector2
	for _, v := range vertsA {
		p := v.Dot(axis)
		if p > best {
			best = p
			bestPoint = v
		}
	}
	return bestPoint
}
