// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import "fmt"

// ReferenceError is returned by AddConstraint when it names a body id
// that is not currently in the engine (§7: "Reference error — operation
// on an id that no longer exists"). applyForce/applyImpulse/updateBody
// do not return this: per the same section they fail silently (logged in
// debug) instead, since those are high-frequency per-frame calls where a
// stale id is expected during teardown races.
type ReferenceError struct {
	Op string
	ID string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("physics: %s: unknown body id %q", e.Op, e.ID)
}

// ValidationError wraps a rejected constructor argument (§7: "Validation
// error — invalid constructor args... rejected at call site").
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "physics: validation: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
