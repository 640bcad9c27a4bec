// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orchestrator

import "fmt"

// ValidationError wraps a go-playground/validator failure for a
// SequenceConfig or StageConfig.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("orchestrator: invalid config: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// GraphError reports a problem with the stage dependency DAG itself
// (unknown dependency id, cycle) — unrecoverable, fails construction
// rather than play.
type GraphError struct {
	StageID string
	Reason  string
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("orchestrator: stage %q: %s", e.StageID, e.Reason)
}

// StageRecoveredError is emitted (never returned) when a stage's target
// disappears mid-play; the stage is skipped and the sequence continues.
type StageRecoveredError struct {
	StageID string
	Reason  string
}

func (e *StageRecoveredError) Error() string {
	return fmt.Sprintf("orchestrator: stage %q recovered: %s", e.StageID, e.Reason)
}
