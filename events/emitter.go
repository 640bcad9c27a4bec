// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events implements the typed, ordered, re-entrancy-safe pub/sub
// channel used across the runtime (C2 in the design). It generalizes the
// teacher's core.Dispatcher — snapshot-then-iterate dispatch, per-id
// unsubscribe — and adds a queued mode that drains on the frame boundary
// instead of re-entering the caller synchronously, which is what the
// distilled spec's "Maximum update depth exceeded" note asks for.
package events

import (
	"github.com/galileo-glass/runtime/rtlog"
)

// Callback receives the payload of a dispatched event.
type Callback func(payload interface{})

// Unsubscribe removes a previously registered listener. Safe to call more
// than once; the second call is a no-op.
type Unsubscribe func()

type subscription struct {
	id int
	cb Callback
}

const queueCapacity = 1024

// Emitter is a typed pub/sub channel keyed by event name. Immediate
// listeners registered with On are invoked synchronously from Emit;
// listeners fed by EnqueueForFrame are invoked only when Drain runs, once
// per tick, by the owning subsystem (physics.Engine, orchestrator.Sequence,
// spring.ScalarSpring).
type Emitter struct {
	listeners map[string][]subscription
	nextID    int

	queue chan queuedEvent
	done  chan struct{}
	closed bool

	log *rtlog.Logger
}

type queuedEvent struct {
	name    string
	payload interface{}
}

// NewEmitter creates an Emitter. log may be nil, in which case
// user-callback panics are swallowed silently instead of logged.
func NewEmitter(log *rtlog.Logger) *Emitter {

	return &Emitter{
		listeners: make(map[string][]subscription),
		queue:     make(chan queuedEvent, queueCapacity),
		done:      make(chan struct{}),
		log:       log,
	}
}

// On registers cb for events named name. Returns a function that removes
// the registration; unsubscribing during a Dispatch/Emit only affects
// subsequent emits, never the one in progress (snapshot semantics below).
func (e *Emitter) On(name string, cb Callback) Unsubscribe {

	id := e.nextID
	e.nextID++
	e.listeners[name] = append(e.listeners[name], subscription{id: id, cb: cb})

	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		subs := e.listeners[name]
		for i, s := range subs {
			if s.id == id {
				e.listeners[name] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Emit dispatches name/payload synchronously to a snapshot of the
// listeners registered at call time. A listener that panics is caught and
// logged; it does not suppress delivery to the remaining listeners.
func (e *Emitter) Emit(name string, payload interface{}) {

	subs := e.listeners[name]
	if len(subs) == 0 {
		return
	}
	snapshot := make([]subscription, len(subs))
	copy(snapshot, subs)

	for _, s := range snapshot {
		e.safeInvoke(s, payload)
	}
}

func (e *Emitter) safeInvoke(s subscription, payload interface{}) {

	defer func() {
		if r := recover(); r != nil && e.log != nil {
			e.log.Error("event listener panicked: %v", r)
		}
	}()
	s.cb(payload)
}

// EnqueueForFrame queues name/payload for delivery on the next Drain call
// instead of dispatching immediately. Producers that run inside the
// integration step (collision start/active/end, spring onRest) must use
// this instead of Emit so that a listener's own state update can never
// re-enter the integrator synchronously.
func (e *Emitter) EnqueueForFrame(name string, payload interface{}) {

	if e.closed {
		return
	}
	select {
	case e.queue <- queuedEvent{name: name, payload: payload}:
	default:
		if e.log != nil {
			e.log.Warn("event queue full, dropping %q", name)
		}
	}
}

// Drain dispatches every event that was queued strictly before this call.
// Events enqueued by a listener invoked during Drain are delivered on the
// *next* Drain, bounding a single tick's work and preventing the unbounded
// recursion the queued mode exists to avoid.
func (e *Emitter) Drain() {

	pending := len(e.queue)
	for i := 0; i < pending; i++ {
		if e.closed {
			return
		}
		item := <-e.queue
		e.Emit(item.name, item.payload)
	}
}

// Close stops any in-flight Drain reads and marks the emitter closed;
// subsequent EnqueueForFrame calls are dropped. Idempotent.
func (e *Emitter) Close() {

	if e.closed {
		return
	}
	e.closed = true
	close(e.done)
}
