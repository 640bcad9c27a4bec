// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// manualFrameSource is a FrameSource the test drives by hand; Start just
// records the tick function and a started flag instead of running a real
// loop.
type manualFrameSource struct {
	tick      func()
	started   int
	stopCalls int
}

func (m *manualFrameSource) Start(tick func()) (stop func()) {
	m.tick = tick
	m.started++
	return func() { m.stopCalls++ }
}

func (m *manualFrameSource) fire() { m.tick() }

func TestProviderStartsOnFirstSubscribeStopsOnLastUnsubscribe(t *testing.T) {

	now := int64(0)
	src := &manualFrameSource{}
	p := NewProvider(func() int64 { return now }, src, nil)

	h1 := p.Subscribe(func(dt float64, n int64) {})
	assert.Equal(t, 1, src.started)

	h2 := p.Subscribe(func(dt float64, n int64) {})
	assert.Equal(t, 1, src.started, "second subscribe must not restart the frame source")

	p.Unsubscribe(h1)
	assert.Equal(t, 0, src.stopCalls)

	p.Unsubscribe(h2)
	assert.Equal(t, 1, src.stopCalls)
}

func TestProviderClampsDt(t *testing.T) {

	now := int64(0)
	src := &manualFrameSource{}
	p := NewProvider(func() int64 { return now }, src, nil)

	var dts []float64
	p.Subscribe(func(dt float64, n int64) { dts = append(dts, dt) })

	src.fire() // first tick: no previous reading, dt == minDT
	now += 1000
	src.fire() // huge gap, clamped to maxDT
	now += 10
	src.fire() // within range

	assert.Equal(t, float64(minDT), dts[0])
	assert.Equal(t, float64(maxDT), dts[1])
	assert.Equal(t, float64(10), dts[2])
}

func TestProviderPanicInOneListenerDoesNotSuppressOthers(t *testing.T) {

	now := int64(0)
	src := &manualFrameSource{}
	p := NewProvider(func() int64 { return now }, src, nil)

	var secondCalled bool
	p.Subscribe(func(dt float64, n int64) { panic("boom") })
	p.Subscribe(func(dt float64, n int64) { secondCalled = true })

	assert.NotPanics(t, func() { src.fire() })
	assert.True(t, secondCalled)
}
