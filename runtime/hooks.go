// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

// Hooks memoizes one Disposable handle per UI element id and wires its
// lifecycle to the element's mount/unmount (§4.9: "thin adapters that
// memoize engine/orchestrator handles for one UI element each"). The
// contract is unmount ⇒ stop() ⇒ dispose, double-dispose is idempotent,
// and events published after dispose are dropped — the last two already
// fall out of each handle's own Dispose/emitter.Close semantics; Hooks
// itself only needs to guarantee a given element id is constructed and
// disposed at most once per mount cycle.
type Hooks struct {
	bound map[string]*binding
}

type binding struct {
	handle   Disposable
	disposed bool
}

// NewHooks creates an empty registry.
func NewHooks() *Hooks {
	return &Hooks{bound: make(map[string]*binding)}
}

// Mount returns the existing handle for elementID if one is already bound
// and not disposed, otherwise calls factory and memoizes the result.
// Calling Mount again for an element already mounted is a no-op read,
// matching idempotent-mount semantics.
func (h *Hooks) Mount(elementID string, factory func() (Disposable, error)) (Disposable, error) {

	if b, ok := h.bound[elementID]; ok && !b.disposed {
		return b.handle, nil
	}
	handle, err := factory()
	if err != nil {
		return nil, err
	}
	h.bound[elementID] = &binding{handle: handle}
	return handle, nil
}

// Unmount disposes elementID's bound handle, if any, and forgets the
// binding. Safe to call more than once or for an id never mounted.
func (h *Hooks) Unmount(elementID string) {

	b, ok := h.bound[elementID]
	if !ok || b.disposed {
		return
	}
	b.disposed = true
	b.handle.Dispose()
	delete(h.bound, elementID)
}

// UnmountAll disposes every currently bound element, in no particular
// order — used for whole-tree teardown.
func (h *Hooks) UnmountAll() {
	for id := range h.bound {
		h.Unmount(id)
	}
}
