// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rtconfig

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports that a constructor config failed schema
// validation. It is never thrown across the frame loop; it is returned
// synchronously from the call site per the spec's error taxonomy.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {

	return fmt.Sprintf("invalid configuration: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {

	return e.Err
}

var v = validator.New()

// Validate runs struct-tag schema validation (positive durations/mass,
// enum membership via `oneof`, required fields) over cfg and wraps any
// failure in a *ValidationError. Callers additionally run structural
// checks the tag language can't express (e.g. acyclic dependency graphs)
// before or after calling Validate.
func Validate(cfg interface{}) error {

	if err := v.Struct(cfg); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}
