// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import "github.com/galileo-glass/runtime/vecmath"

// ShapeKind tags the variant held by a Shape. Per the design notes on
// polymorphic shapes, callers and the narrow phase switch on this field
// rather than relying on structural typing.
type ShapeKind int

const (
	// Circle is defined by Radius.
	Circle ShapeKind = iota
	// Rectangle is defined by Width/Height, centered on the body position.
	Rectangle
	// Polygon is defined by Vertices, in local (un-rotated, un-translated)
	// body space, wound consistently (counter-clockwise).
	Polygon
)

// Shape is a tagged union over the body geometries the spec supports.
type Shape struct {
	Kind     ShapeKind
	Radius   float64
	Width    float64
	Height   float64
	Vertices []vecmath.Vector2
}

// NewCircleShape creates a circle shape of the given radius.
func NewCircleShape(radius float64) Shape {

	return Shape{Kind: Circle, Radius: radius}
}

// NewRectangleShape creates an axis-aligned (before body rotation)
// rectangle shape of the given width/height.
func NewRectangleShape(width, height float64) Shape {

	return Shape{Kind: Rectangle, Width: width, Height: height}
}

// NewPolygonShape creates a convex polygon shape from local-space vertices.
func NewPolygonShape(vertices []vecmath.Vector2) Shape {

	return Shape{Kind: Polygon, Vertices: vertices}
}

// localVertices returns the shape's vertices in local body space for SAT
// narrow-phase and broad-phase bounding-radius purposes. Circles have no
// vertex representation and return nil.
func (s Shape) localVertices() []vecmath.Vector2 {

	switch s.Kind {
	case Rectangle:
		hw, hh := s.Width/2, s.Height/2
		return []vecmath.Vector2{
			{X: -hw, Y: -hh},
			{X: hw, Y: -hh},
			{X: hw, Y: hh},
			{X: -hw, Y: hh},
		}
	case Polygon:
		return s.Vertices
	default:
		return nil
	}
}

// boundingRadius returns the radius of a circle fully enclosing the shape,
// used to size the broad-phase spatial hash cell (§4.3.4: "a spatial hash
// grid sized to the largest body's bounding radius x2").
func (s Shape) boundingRadius() float64 {

	switch s.Kind {
	case Circle:
		return s.Radius
	default:
		r := 0.0
		for _, v := range s.localVertices() {
			if l := v.Length(); l > r {
				r = l
			}
		}
		return r
	}
}
