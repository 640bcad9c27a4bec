// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interaction

// ValidationError wraps a rejected Config.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "interaction: validation: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
