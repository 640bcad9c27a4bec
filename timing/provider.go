// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timing implements the single monotonic frame ticker the rest of
// the runtime drives off of (C1 in the design). It generalizes the
// teacher's core.TimerManager (one-shot/periodic callbacks keyed by id)
// into a per-frame subscriber list, and borrows core.Dispatcher's
// registration-order, panic-contained iteration for the per-tick fan-out.
package timing

import "github.com/galileo-glass/runtime/rtlog"

// NowFunc returns a strictly monotonic millisecond timestamp. Hosts inject
// a concrete implementation (e.g. wrapping performance.now() or
// time.Since(start)); the runtime never reads wall-clock time itself.
type NowFunc func() int64

// FrameSource is the host-supplied frame loop (e.g. requestAnimationFrame,
// or a ticker goroutine). Start begins invoking tick once per frame until
// the returned stop function is called; Start/stop must be safe to call
// repeatedly as subscriber count transitions to/from zero.
type FrameSource interface {
	Start(tick func()) (stop func())
}

// FrameCallback is invoked once per frame with the clamped delta (in
// milliseconds) since the previous tick and the current monotonic time.
type FrameCallback func(dt float64, now int64)

// Handle identifies a registered FrameCallback for Unsubscribe.
type Handle int

const (
	minDT = 1
	maxDT = 50
)

type listener struct {
	handle Handle
	cb     FrameCallback
}

// Provider is the single ticker per process. It is created by runtime
// bootstrap and injected into every subsystem that needs ticks (physics
// engine, springs, orchestrator sequences); no subsystem owns its own
// frame loop.
type Provider struct {
	now         NowFunc
	frameSource FrameSource
	log         *rtlog.Logger

	listeners []listener
	nextID    Handle
	lastTick  int64
	haveLast  bool
	stopFrame func()
}

// NewProvider creates a Provider driven by the given now/frame source.
func NewProvider(now NowFunc, frameSource FrameSource, log *rtlog.Logger) *Provider {

	return &Provider{now: now, frameSource: frameSource, log: log, nextID: 1}
}

// Now returns the current monotonic millisecond reading.
func (p *Provider) Now() int64 {

	return p.now()
}

// Subscribe registers cb to be invoked once per frame. On the first
// subscriber the underlying frame loop is (re)started synchronously.
func (p *Provider) Subscribe(cb FrameCallback) Handle {

	h := p.nextID
	p.nextID++
	p.listeners = append(p.listeners, listener{handle: h, cb: cb})

	if len(p.listeners) == 1 {
		p.haveLast = false
		p.stopFrame = p.frameSource.Start(p.onFrame)
	}
	return h
}

// Unsubscribe removes the callback identified by handle. After Unsubscribe
// returns, that callback is guaranteed not to be invoked again. On zero
// remaining subscribers the underlying frame loop is paused.
func (p *Provider) Unsubscribe(handle Handle) {

	for i, l := range p.listeners {
		if l.handle == handle {
			p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
			break
		}
	}
	if len(p.listeners) == 0 && p.stopFrame != nil {
		p.stopFrame()
		p.stopFrame = nil
	}
}

// onFrame is invoked by the frame source once per frame. It computes a
// clamped dt, then dispatches to a snapshot of listeners taken at the start
// of the tick (registration order) so that Unsubscribe calls made by one
// listener never affect delivery to listeners later in the same tick, and
// so that a panicking listener never suppresses the rest.
func (p *Provider) onFrame() {

	now := p.now()
	var dt float64
	if !p.haveLast {
		dt = minDT
		p.haveLast = true
	} else {
		dt = float64(now - p.lastTick)
	}
	p.lastTick = now

	if dt < minDT {
		dt = minDT
	}
	if dt > maxDT {
		dt = maxDT
	}

	snapshot := make([]listener, len(p.listeners))
	copy(snapshot, p.listeners)

	for _, l := range snapshot {
		p.safeInvoke(l, dt, now)
	}
}

func (p *Provider) safeInvoke(l listener, dt float64, now int64) {

	defer func() {
		if r := recover(); r != nil && p.log != nil {
			p.log.Error("frame listener %d panicked: %v", l.handle, r)
		}
	}()
	l.cb(dt, now)
}
