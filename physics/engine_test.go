// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galileo-glass/runtime/events"
	"github.com/galileo-glass/runtime/rtlog"
	"github.com/galileo-glass/runtime/timing"
	"github.com/galileo-glass/runtime/vecmath"
)

type noopFrameSource struct{}

func (noopFrameSource) Start(tick func()) (stop func()) { return func() {} }

func newTestEngine(t *testing.T, cfg EngineConfig) *Engine {
	tp := timing.NewProvider(func() int64 { return 0 }, noopFrameSource{}, nil)
	e, err := NewEngine(cfg, tp, events.NewEmitter(nil), rtlog.New("test"))
	require.NoError(t, err)
	return e
}

func TestEngineGravityIntegratesVelocity(t *testing.T) {

	e := newTestEngine(t, EngineConfig{Gravity: vecmath.Vector2{Y: -10}})
	id, err := e.AddBody(BodyConfig{Shape: NewCircleShape(1), Mass: 1})
	require.NoError(t, err)

	e.Step(1.0) // one full second, well beyond the 8 sub-step cap

	st, ok := e.GetBody(id)
	require.True(t, ok)
	assert.Less(t, st.Velocity.Y, 0.0, "gravity should have pulled velocity negative")
}

func TestEngineStaticBodyNeverMoves(t *testing.T) {

	e := newTestEngine(t, EngineConfig{Gravity: vecmath.Vector2{Y: -10}})
	id, err := e.AddBody(BodyConfig{Shape: NewCircleShape(1), IsStatic: true, Position: vecmath.Vector2{X: 5, Y: 5}})
	require.NoError(t, err)

	e.Step(1.0)

	st, ok := e.GetBody(id)
	require.True(t, ok)
	assert.Equal(t, vecmath.Vector2{X: 5, Y: 5}, st.Position)
}

func TestEngineCollisionStartActiveEndSequence(t *testing.T) {

	e := newTestEngine(t, EngineConfig{})

	a, err := e.AddBody(BodyConfig{Shape: NewCircleShape(1), Position: vecmath.Vector2{X: -0.5, Y: 0}})
	require.NoError(t, err)
	b, err := e.AddBody(BodyConfig{Shape: NewCircleShape(1), Position: vecmath.Vector2{X: 0.5, Y: 0}})
	require.NoError(t, err)

	var starts, actives, ends int
	e.OnCollisionStart(func(CollisionEvent) { starts++ })
	e.OnCollisionActive(func(CollisionEvent) { actives++ })
	e.OnCollisionEnd(func(CollisionEvent) { ends++ })

	e.Step(0.001)
	assert.Equal(t, 1, starts)
	assert.Equal(t, 0, actives)

	// the collision response projects the pair fully apart, so put them
	// back into overlap for the second step
	e.UpdateBody(a, BodyUpdate{Position: &vecmath.Vector2{X: -0.5, Y: 0}})
	e.UpdateBody(b, BodyUpdate{Position: &vecmath.Vector2{X: 0.5, Y: 0}})
	e.Step(0.001)
	assert.Equal(t, 1, starts, "a stable overlap should not re-fire start")
	assert.Equal(t, 1, actives)

	e.UpdateBody(a, BodyUpdate{Position: &vecmath.Vector2{X: -50, Y: 0}})
	e.Step(0.001)
	assert.Equal(t, 1, ends)

	_ = b
}

func TestEngineCollisionFilterPreventsContact(t *testing.T) {

	e := newTestEngine(t, EngineConfig{})

	_, err := e.AddBody(BodyConfig{
		Shape:           NewCircleShape(1),
		Position:        vecmath.Vector2{X: -0.5, Y: 0},
		CollisionFilter: CollisionFilter{Category: 1, Mask: 1},
	})
	require.NoError(t, err)
	_, err = e.AddBody(BodyConfig{
		Shape:           NewCircleShape(1),
		Position:        vecmath.Vector2{X: 0.5, Y: 0},
		CollisionFilter: CollisionFilter{Category: 2, Mask: 2},
	})
	require.NoError(t, err)

	var starts int
	e.OnCollisionStart(func(CollisionEvent) { starts++ })
	e.Step(0.001)

	assert.Zero(t, starts)
}

func TestEngineSleepAfterQuiescence(t *testing.T) {

	e := newTestEngine(t, EngineConfig{})
	id, err := e.AddBody(BodyConfig{Shape: NewCircleShape(1)})
	require.NoError(t, err)

	for i := 0; i < 600; i++ {
		e.Step(0.001) // 600ms of stillness, past the 500ms sleep threshold
	}

	st, ok := e.GetBody(id)
	require.True(t, ok)
	assert.True(t, st.IsSleeping)
}

func TestEngineDistanceConstraintPullsBodiesTogether(t *testing.T) {

	e := newTestEngine(t, EngineConfig{})
	a, err := e.AddBody(BodyConfig{Shape: NewCircleShape(0.1), Position: vecmath.Vector2{X: 0, Y: 0}})
	require.NoError(t, err)
	b, err := e.AddBody(BodyConfig{Shape: NewCircleShape(0.1), Position: vecmath.Vector2{X: 10, Y: 0}})
	require.NoError(t, err)

	_, err = e.AddDistanceConstraint(DistanceConstraintConfig{ID: "c1", BodyA: a, BodyB: b, RestLength: 1, Stiffness: 1})
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		e.Step(0.016)
	}

	sa, _ := e.GetBody(a)
	sb, _ := e.GetBody(b)
	assert.Less(t, sa.Position.DistanceTo(sb.Position), 10.0)
}

func TestEngineAddConstraintRejectsUnknownBody(t *testing.T) {

	e := newTestEngine(t, EngineConfig{})
	_, err := e.AddDistanceConstraint(DistanceConstraintConfig{ID: "c1", BodyA: "missing", BodyB: "also-missing"})
	assert.Error(t, err)
}

func TestEngineBoundsClampsPosition(t *testing.T) {

	e := newTestEngine(t, EngineConfig{
		Gravity: vecmath.Vector2{Y: -50},
		Bounds:  &Bounds{MinX: -10, MinY: 0, MaxX: 10, MaxY: 10, Bounce: 0.5},
	})
	id, err := e.AddBody(BodyConfig{Shape: NewCircleShape(0.5), Position: vecmath.Vector2{X: 0, Y: 1}})
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		e.Step(0.016)
	}

	st, ok := e.GetBody(id)
	require.True(t, ok)
	assert.GreaterOrEqual(t, st.Position.Y, 0.0-1e-6)
}
