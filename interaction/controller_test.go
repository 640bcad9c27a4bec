// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galileo-glass/runtime/events"
	"github.com/galileo-glass/runtime/physics"
	"github.com/galileo-glass/runtime/rtlog"
	"github.com/galileo-glass/runtime/spring"
	"github.com/galileo-glass/runtime/timing"
	"github.com/galileo-glass/runtime/vecmath"
)

type manualFrameSource struct {
	tick func()
}

func (m *manualFrameSource) Start(tick func()) (stop func()) {
	m.tick = tick
	return func() { m.tick = nil }
}

func newTestRig(t *testing.T) (*physics.Engine, *timing.Provider, *manualFrameSource) {
	src := &manualFrameSource{}
	tp := timing.NewProvider(func() int64 { return 0 }, src, nil)
	e, err := physics.NewEngine(physics.EngineConfig{}, tp, events.NewEmitter(nil), rtlog.New("test"))
	require.NoError(t, err)
	return e, tp, src
}

func TestControllerMagneticModeAttractsTowardPointer(t *testing.T) {

	e, tp, src := newTestRig(t)
	cfg := Config{Mode: MagneticMode, Radius: 10, Strength: 5}

	c, err := New(cfg, e, tp, events.NewEmitter(nil), rtlog.New("test"))
	require.NoError(t, err)
	defer c.Detach()

	c.HandlePointer(PointerEvent{X: 75, Y: 50, Width: 100, Height: 100})

	for i := 0; i < 5; i++ {
		src.tick()
		e.Step(0.05)
	}

	st := c.State()
	assert.NotEqual(t, float64(0), st.Translate.X, "the virtual body should have moved toward the pointer")
}

func TestControllerMagneticModeIgnoresOutOfRangePointer(t *testing.T) {

	e, tp, src := newTestRig(t)
	cfg := Config{Mode: MagneticMode, Radius: 1, Strength: 5}

	c, err := New(cfg, e, tp, events.NewEmitter(nil), rtlog.New("test"))
	require.NoError(t, err)
	defer c.Detach()

	// pointer at the far edge of the viewport maps to rel=(1,1), scaled by
	// Radius this lands outside the attraction range.
	c.HandlePointer(PointerEvent{X: 100, Y: 100, Width: 100, Height: 100})

	for i := 0; i < 5; i++ {
		src.tick()
		e.Step(0.05)
	}

	st := c.State()
	assert.Equal(t, 0.0, st.Translate.X)
	assert.Equal(t, 0.0, st.Translate.Y)
}

func TestControllerSpringModeScalesTowardPressedAmplitude(t *testing.T) {

	e, tp, src := newTestRig(t)
	cfg := Config{
		Mode:           SpringMode,
		Spring:         spring.Press(),
		ScaleAmplitude: 0.2,
	}

	c, err := New(cfg, e, tp, events.NewEmitter(nil), rtlog.New("test"))
	require.NoError(t, err)
	defer c.Detach()

	c.HandlePointer(PointerEvent{Pressed: true, Width: 100, Height: 100})

	for i := 0; i < 200; i++ {
		src.tick()
		e.Step(0.016)
	}

	st := c.State()
	assert.InDelta(t, 1.2, st.Scale, 0.05)
}

func TestControllerSpringModeReturnsToRestScaleWhenReleased(t *testing.T) {

	e, tp, src := newTestRig(t)
	cfg := Config{Mode: SpringMode, Spring: spring.Press(), ScaleAmplitude: 0.2}

	c, err := New(cfg, e, tp, events.NewEmitter(nil), rtlog.New("test"))
	require.NoError(t, err)
	defer c.Detach()

	c.HandlePointer(PointerEvent{Pressed: false, Width: 100, Height: 100})

	for i := 0; i < 200; i++ {
		src.tick()
		e.Step(0.016)
	}

	st := c.State()
	assert.InDelta(t, 1.0, st.Scale, 0.05)
}

func TestControllerGestureModeDecaysVelocity(t *testing.T) {

	e, tp, src := newTestRig(t)
	cfg := Config{Mode: GestureMode, MomentumDecay: 0.5}

	c, err := New(cfg, e, tp, events.NewEmitter(nil), rtlog.New("test"))
	require.NoError(t, err)
	defer c.Detach()

	all := e.GetAll()
	require.Len(t, all, 1)
	var bodyID string
	for id := range all {
		bodyID = id
	}

	// simulate an initial swipe by giving the virtual body velocity directly,
	// as an upstream gesture recognizer would via ApplyImpulse.
	e.ApplyImpulse(bodyID, vecmath.Vector2{X: 10}, nil)
	before, _ := e.GetBody(bodyID)
	require.Greater(t, before.Velocity.X, 0.0)

	for i := 0; i < 3; i++ {
		src.tick() // applies the 0.5 decay factor to velocity
		e.Step(0.05)
	}

	after, _ := e.GetBody(bodyID)
	assert.Less(t, after.Velocity.X, before.Velocity.X, "momentum should decay each tick")
	assert.Greater(t, c.State().Translate.X, 0.0, "decayed momentum should still have carried the body forward")
}

func TestControllerOnChangePublishesEachTick(t *testing.T) {

	e, tp, src := newTestRig(t)
	cfg := Config{Mode: MagneticMode, Radius: 5, Strength: 1}

	c, err := New(cfg, e, tp, events.NewEmitter(nil), rtlog.New("test"))
	require.NoError(t, err)
	defer c.Detach()

	var seen int
	c.OnChange(func(State) { seen++ })

	for i := 0; i < 4; i++ {
		src.tick()
		e.Step(0.01)
	}

	assert.Equal(t, 4, seen)
}

func TestControllerDetachStopsTicking(t *testing.T) {

	e, tp, src := newTestRig(t)
	cfg := Config{Mode: MagneticMode, Radius: 5, Strength: 1}

	c, err := New(cfg, e, tp, events.NewEmitter(nil), rtlog.New("test"))
	require.NoError(t, err)

	c.Detach()
	assert.Nil(t, src.tick, "Detach should have unsubscribed the controller's only listener")

	// idempotent
	c.Detach()

	_, ok := e.GetBody("")
	assert.False(t, ok)
}

func TestRelativePointerClampsToUnitSquare(t *testing.T) {

	rel := relativePointer(PointerEvent{X: 500, Y: -500, Width: 100, Height: 100})
	assert.Equal(t, 1.0, rel.X)
	assert.Equal(t, -1.0, rel.Y)
}

func TestRelativePointerZeroWithoutViewportSize(t *testing.T) {

	rel := relativePointer(PointerEvent{X: 10, Y: 10})
	assert.Equal(t, 0.0, rel.X)
	assert.Equal(t, 0.0, rel.Y)
}
