// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spring

// ValidationError wraps a rejected Config (negative tension, etc.), per
// the spec's validation-error taxonomy (§7).
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "spring: validation: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
